package versions

import (
	"context"
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/typespub/pkg/datafile"
	"github.com/matzehuels/typespub/pkg/errors"
	"github.com/matzehuels/typespub/pkg/integrations/npm"
	"github.com/matzehuels/typespub/pkg/observability"
	"github.com/matzehuels/typespub/pkg/packages"
	"github.com/matzehuels/typespub/pkg/parallel"
	"github.com/matzehuels/typespub/pkg/semver"
)

// DefaultConcurrency is the number of registry requests in flight.
const DefaultConcurrency = 25

// Fetcher retrieves packuments from the registry. A package the registry
// does not know yields (nil, nil).
type Fetcher interface {
	FetchPackument(ctx context.Context, fullName string, refresh bool) (*npm.Packument, error)
}

// Info is what the registry says about the version the resolver compares
// against.
type Info struct {
	Version     semver.Version
	ContentHash string
	Deprecated  bool
}

// Options configures a Resolver.
type Options struct {
	Fetcher     Fetcher
	Scope       string      // Registry scope, defaults to packages.DefaultScope
	Concurrency int         // Registry requests in flight, defaults to DefaultConcurrency
	Logger      *log.Logger // Defaults to discarding output
}

// Resolver computes the next version of every package.
type Resolver struct {
	fetcher     Fetcher
	scope       string
	concurrency int
	logger      *log.Logger
}

// NewResolver returns a Resolver using opts.
func NewResolver(opts Options) *Resolver {
	r := &Resolver{
		fetcher:     opts.Fetcher,
		scope:       opts.Scope,
		concurrency: opts.Concurrency,
		logger:      opts.Logger,
	}
	if r.scope == "" {
		r.scope = packages.DefaultScope
	}
	if r.concurrency <= 0 {
		r.concurrency = DefaultConcurrency
	}
	if r.logger == nil {
		r.logger = log.New(io.Discard)
	}
	return r
}

// Result is the outcome of a resolution run.
type Result struct {
	Versions  Versions
	Changes   []string // Sorted names of packages to publish
	Additions []string // Sorted subset of Changes never published before
}

// Save writes both change lists and then the version map to dir. Each file
// is replaced atomically but the three are not written as a unit: when Save
// fails, versions.json is left as it was and the lists may already be new.
// Later stages key off versions.json, so a failed Save is safe to repeat.
func (r *Result) Save(dir string) error {
	if err := WriteChanges(dir, r.Changes); err != nil {
		return err
	}
	if err := WriteAdditions(dir, r.Additions); err != nil {
		return err
	}
	return r.Versions.Save(dir)
}

type job struct {
	typings   *packages.TypingsData
	notNeeded *packages.NotNeeded
}

func (j job) name() string {
	if j.typings != nil {
		return j.typings.Name
	}
	return j.notNeeded.Name
}

type decision struct {
	entry Entry
	class observability.Classification
}

// Determine fetches registry information for every package in all and
// decides each package's version. With forceUpdate every live package is
// treated as changed.
//
// Any fatal condition, such as an unreachable registry or a live package
// whose published version is deprecated, cancels the outstanding requests
// and is returned; no partial result is produced. A name listed more than
// once is rejected before any request is made.
func (r *Resolver) Determine(ctx context.Context, all *packages.AllPackages, forceUpdate bool) (*Result, error) {
	if err := all.CheckUnique(); err != nil {
		return nil, err
	}
	jobs := make([]job, 0, all.Len())
	for _, t := range all.Typings {
		jobs = append(jobs, job{typings: t})
	}
	for _, n := range all.NotNeeded {
		jobs = append(jobs, job{notNeeded: n})
	}

	r.logger.Info("fetching registry versions", "packages", len(jobs), "concurrency", r.concurrency)
	decisions, err := parallel.MapFailFast(ctx, r.concurrency, jobs, func(ctx context.Context, j job) (decision, error) {
		if j.typings != nil {
			return r.decideTypings(ctx, j.typings, forceUpdate)
		}
		return r.decideNotNeeded(ctx, j.notNeeded)
	})
	if err != nil {
		return nil, err
	}

	res := &Result{Versions: make(Versions, len(jobs)), Changes: []string{}, Additions: []string{}}
	hooks := observability.Resolver()
	for i, d := range decisions {
		name := jobs[i].name()
		res.Versions[name] = d.entry
		hooks.OnClassified(ctx, name, d.class)

		switch d.class {
		case observability.Added:
			r.logger.Info("Added", "package", name, "version", d.entry.Version)
			res.Additions = append(res.Additions, name)
			res.Changes = append(res.Changes, name)
		case observability.Changed:
			r.logger.Info("Changed", "package", name, "version", d.entry.Version)
			res.Changes = append(res.Changes, name)
		case observability.NowDeprecated:
			r.logger.Info("Now deprecated", "package", name, "version", d.entry.Version)
			res.Changes = append(res.Changes, name)
		}
	}
	slices.Sort(res.Changes)
	slices.Sort(res.Additions)
	return res, nil
}

func (r *Resolver) decideTypings(ctx context.Context, pkg *packages.TypingsData, forceUpdate bool) (decision, error) {
	declared := pkg.Declared()
	fullName := packages.FullNpmName(r.scope, pkg.Name)

	info, err := r.fetchInfo(ctx, fullName, &declared)
	if err != nil {
		return decision{}, err
	}

	isAdd := info == nil
	prev, prevHash := semver.None, ""
	if !isAdd {
		if info.Deprecated {
			return decision{}, errors.New(errors.ErrCodeRegistryInconsistency,
				"%s@%s is deprecated on the registry but still exists upstream", fullName, info.Version)
		}
		prev, prevHash = info.Version, info.ContentHash
	}

	if !forceUpdate && !isAdd && prevHash == pkg.ContentHash {
		return decision{
			entry: Entry{Version: prev, ContentHash: prevHash},
			class: observability.Unchanged,
		}, nil
	}

	class := observability.Changed
	if isAdd {
		class = observability.Added
	}
	return decision{
		entry: Entry{Version: prev.Update(declared), ContentHash: pkg.ContentHash},
		class: class,
	}, nil
}

func (r *Resolver) decideNotNeeded(ctx context.Context, pkg *packages.NotNeeded) (decision, error) {
	fullName := packages.FullNpmName(r.scope, pkg.Name)

	info, err := r.fetchInfo(ctx, fullName, nil)
	if err != nil {
		return decision{}, err
	}
	if info != nil && info.Deprecated {
		return decision{
			entry: Entry{Version: info.Version, ContentHash: info.ContentHash, Deprecated: true},
			class: observability.Unchanged,
		}, nil
	}

	version := semver.Version{}
	if pkg.AsOfVersion != "" {
		if version, err = semver.Parse(pkg.AsOfVersion); err != nil {
			return decision{}, errors.Wrap(errors.ErrCodeInvalidPackage, err, "%s: asOfVersion", pkg.Name)
		}
	}
	entry := Entry{Version: version, Deprecated: true}
	if info != nil {
		entry.ContentHash = info.ContentHash
	}
	return decision{entry: entry, class: observability.NowDeprecated}, nil
}

// fetchInfo returns the registry info for the version to compare against, or
// nil if the package was never published. With a declared major.minor the
// highest patch in that line wins; otherwise, or when that line was never
// published, the latest tag does.
func (r *Resolver) fetchInfo(ctx context.Context, fullName string, declared *semver.MajorMinor) (*Info, error) {
	doc, err := r.fetcher.FetchPackument(ctx, fullName, true)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", fullName)
	}
	if doc == nil {
		return nil, nil
	}

	key := doc.Latest()
	if declared != nil {
		if v, ok := semver.LatestPatch(doc.VersionKeys(), *declared); ok {
			key = v.String()
		}
	}
	version, err := semver.Parse(key)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRegistryInconsistency, err, "%s: latest tag", fullName)
	}

	meta, ok := doc.Versions[key]
	if !ok {
		return nil, errors.New(errors.ErrCodeRegistryInconsistency, "%s: version %s is tagged but not listed", fullName, key)
	}
	return &Info{
		Version:     version,
		ContentHash: meta.ContentHash,
		Deprecated:  meta.Deprecated.IsSet(),
	}, nil
}

// DetermineAndSave runs Determine and writes the result to dir. Nothing is
// written when resolution fails.
func (r *Resolver) DetermineAndSave(ctx context.Context, all *packages.AllPackages, forceUpdate bool, dir string) (*Result, error) {
	res, err := r.Determine(ctx, all, forceUpdate)
	if err != nil {
		return nil, err
	}
	if err := res.Save(dir); err != nil {
		return nil, err
	}
	r.logger.Debug("wrote version data", "dir", dir, "files", []string{
		datafile.Path(dir, VersionsFile), datafile.Path(dir, ChangesFile), datafile.Path(dir, AdditionsFile),
	})
	return res, nil
}

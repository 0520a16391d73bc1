// Package versions decides which packages need publishing and with which
// version.
//
// [Resolver.Determine] compares each package's local content hash with the
// hash stored on the registry's copy and classifies it as added, changed,
// unchanged or newly deprecated. The resulting [Versions] map and change
// lists are persisted as data files for the publishing stage:
//
//   - versions.json: every package's version, content hash and deprecation
//   - version-changes.json: names of packages to publish
//   - version-additions.json: the subset of changes never published before
package versions

import (
	"slices"

	"github.com/matzehuels/typespub/pkg/datafile"
	"github.com/matzehuels/typespub/pkg/errors"
	"github.com/matzehuels/typespub/pkg/semver"
)

// Data file names inside the data directory.
const (
	VersionsFile  = "versions.json"
	ChangesFile   = "version-changes.json"
	AdditionsFile = "version-additions.json"
)

// Entry is the version record of one package.
type Entry struct {
	Version     semver.Version `json:"version"`
	ContentHash string         `json:"contentHash"`
	Deprecated  bool           `json:"deprecated"`
}

// Versions maps package names to their version records.
type Versions map[string]Entry

// Load reads versions.json from dir.
func Load(dir string) (Versions, error) {
	v := Versions{}
	if err := datafile.Read(dir, VersionsFile, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// Save writes v to versions.json in dir with keys in sorted order.
func (v Versions) Save(dir string) error {
	return datafile.Write(dir, VersionsFile, v)
}

// VersionInfo returns the record for name. A package without a record is a
// MISSING_VERSION error: a later stage asked about a package the resolver
// never saw.
func (v Versions) VersionInfo(name string) (Entry, error) {
	e, ok := v[name]
	if !ok {
		return Entry{}, errors.New(errors.ErrCodeMissingVersion, "no version info for %s", name)
	}
	return e, nil
}

// Names returns the package names in sorted order.
func (v Versions) Names() []string {
	names := make([]string, 0, len(v))
	for name := range v {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

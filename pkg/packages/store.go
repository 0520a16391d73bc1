package packages

import (
	"cmp"
	"context"
	"slices"

	"github.com/matzehuels/typespub/pkg/datafile"
	"github.com/matzehuels/typespub/pkg/errors"
)

// Data files produced by the upstream parser.
const (
	TypesDataFile = "typesData.json"
	NotNeededFile = "notNeededPackages.json"
)

// Store provides the package descriptors for a run.
type Store interface {
	// ReadAll returns every package, live and not-needed.
	ReadAll(ctx context.Context) (*AllPackages, error)
	// Read returns the live package with the given name, or a NOT_FOUND error.
	Read(ctx context.Context, name string) (*TypingsData, error)
}

// FileStore reads package descriptors from the parser's data directory.
type FileStore struct {
	dir string
}

// NewFileStore returns a store over the data files in dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

type notNeededFile struct {
	Packages []*NotNeeded `json:"packages"`
}

// ReadAll loads typesData.json and, when present, notNeededPackages.json.
// A name may appear only once across both files.
func (s *FileStore) ReadAll(ctx context.Context) (*AllPackages, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	typings, err := s.readTypings()
	if err != nil {
		return nil, err
	}

	var nn notNeededFile
	if datafile.Exists(s.dir, NotNeededFile) {
		if err := datafile.Read(s.dir, NotNeededFile, &nn); err != nil {
			return nil, err
		}
	}
	for _, n := range nn.Packages {
		if err := errors.ValidatePackageName(n.Name); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPackage, err, "%s", NotNeededFile)
		}
	}
	slices.SortFunc(nn.Packages, func(a, b *NotNeeded) int { return cmp.Compare(a.Name, b.Name) })

	all := &AllPackages{Typings: typings, NotNeeded: nn.Packages}
	if err := all.CheckUnique(); err != nil {
		return nil, err
	}
	return all, nil
}

// Read loads a single live package.
func (s *FileStore) Read(ctx context.Context, name string) (*TypingsData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	typings, err := s.readTypings()
	if err != nil {
		return nil, err
	}
	for _, t := range typings {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, errors.New(errors.ErrCodeNotFound, "package %q not found in %s", name, TypesDataFile)
}

func (s *FileStore) readTypings() ([]*TypingsData, error) {
	var raw map[string]*TypingsData
	if err := datafile.Read(s.dir, TypesDataFile, &raw); err != nil {
		return nil, err
	}

	typings := make([]*TypingsData, 0, len(raw))
	for key, t := range raw {
		if t == nil {
			return nil, errors.New(errors.ErrCodeInvalidPackage, "%s: empty entry for %q", TypesDataFile, key)
		}
		if t.Name == "" {
			t.Name = key
		}
		if err := validate(t); err != nil {
			return nil, err
		}
		typings = append(typings, t)
	}
	slices.SortFunc(typings, func(a, b *TypingsData) int { return cmp.Compare(a.Name, b.Name) })
	return typings, nil
}

func validate(t *TypingsData) error {
	if err := errors.ValidatePackageName(t.Name); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPackage, err, "%s", TypesDataFile)
	}
	if p := t.Dir(); p != t.Name {
		if err := errors.ValidatePath(p); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPackage, err, "%s: package %q", TypesDataFile, t.Name)
		}
	}
	if t.Major < 0 || t.Minor < 0 {
		return errors.New(errors.ErrCodeInvalidPackage, "%s: package %q declares negative version %d.%d",
			TypesDataFile, t.Name, t.Major, t.Minor)
	}
	return nil
}

var _ Store = (*FileStore)(nil)

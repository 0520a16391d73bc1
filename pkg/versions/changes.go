package versions

import (
	"slices"

	"github.com/matzehuels/typespub/pkg/datafile"
	"github.com/matzehuels/typespub/pkg/errors"
	"github.com/matzehuels/typespub/pkg/packages"
)

// WriteChanges writes the names of changed packages to
// version-changes.json, sorted.
func WriteChanges(dir string, names []string) error {
	return writeList(dir, ChangesFile, names)
}

// ReadChanges reads version-changes.json.
func ReadChanges(dir string) ([]string, error) {
	return readList(dir, ChangesFile)
}

// WriteAdditions writes the names of never-published packages to
// version-additions.json, sorted.
func WriteAdditions(dir string, names []string) error {
	return writeList(dir, AdditionsFile, names)
}

// ReadAdditions reads version-additions.json.
func ReadAdditions(dir string) ([]string, error) {
	return readList(dir, AdditionsFile)
}

func writeList(dir, file string, names []string) error {
	sorted := slices.Clone(names)
	if sorted == nil {
		sorted = []string{}
	}
	slices.Sort(sorted)
	return datafile.Write(dir, file, sorted)
}

func readList(dir, file string) ([]string, error) {
	var names []string
	if err := datafile.Read(dir, file, &names); err != nil {
		return nil, err
	}
	return names, nil
}

// ChangedPackages resolves change-list names against the package set. Names
// are looked up among live packages first, then not-needed ones; a name in
// neither is a NOT_FOUND error.
func ChangedPackages(all *packages.AllPackages, changes []string) ([]*packages.TypingsData, []*packages.NotNeeded, error) {
	var typings []*packages.TypingsData
	var notNeeded []*packages.NotNeeded
	for _, name := range changes {
		if t, ok := all.Find(name); ok {
			typings = append(typings, t)
			continue
		}
		if n, ok := all.FindNotNeeded(name); ok {
			notNeeded = append(notNeeded, n)
			continue
		}
		return nil, nil, errors.New(errors.ErrCodeNotFound, "changed package %s is not in the package set", name)
	}
	return typings, notNeeded, nil
}

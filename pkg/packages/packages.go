// Package packages describes the type-declaration packages built from the
// upstream tree and loads them from the parser's data files.
//
// Two kinds of package exist. [TypingsData] is a live package whose
// declarations are tested and published. [NotNeeded] is a package whose
// library now ships its own types; it is published once more as a deprecated
// stub and then left alone.
package packages

import (
	"github.com/matzehuels/typespub/pkg/errors"
	"github.com/matzehuels/typespub/pkg/semver"
)

// DefaultScope is the registry scope every package is published under.
const DefaultScope = "types"

// TypingsData describes one live package for a single run.
type TypingsData struct {
	Name           string            `json:"name"`                   // Unscoped name, e.g. "jquery" or "@babel/core"
	Major          int               `json:"major"`                  // Declared major version of the library
	Minor          int               `json:"minor"`                  // Declared minor version of the library
	ContentHash    string            `json:"contentHash"`            // Fingerprint of the current files
	HasPackageJSON bool              `json:"hasPackageJson"`         // Whether the directory carries a package.json
	Files          []string          `json:"files"`                  // Declaration and test files, relative to Dir
	Dependencies   map[string]string `json:"dependencies,omitempty"` // Installable dependencies (name -> range)
	Directory      string            `json:"directory,omitempty"`    // Directory below the types root, defaults to Name
}

// Dir returns the package directory relative to the types root.
func (d *TypingsData) Dir() string {
	if d.Directory != "" {
		return d.Directory
	}
	return d.Name
}

// Declared returns the library version the package declares.
func (d *TypingsData) Declared() semver.MajorMinor {
	return semver.MajorMinor{Major: d.Major, Minor: d.Minor}
}

// NeedsInstall reports whether the package has dependencies to install
// before it can compile.
func (d *TypingsData) NeedsInstall() bool { return len(d.Dependencies) > 0 }

// NotNeeded describes a package that is no longer needed because its library
// bundles its own declarations.
type NotNeeded struct {
	Name          string `json:"typingsPackageName"`
	LibraryName   string `json:"libraryName"`
	SourceRepoURL string `json:"sourceRepoURL"`
	AsOfVersion   string `json:"asOfVersion,omitempty"` // First library version with bundled types
}

// AllPackages is the full package set of a run, sorted by name within each
// kind.
type AllPackages struct {
	Typings   []*TypingsData
	NotNeeded []*NotNeeded
}

// Find returns the live package with the given name.
func (a *AllPackages) Find(name string) (*TypingsData, bool) {
	for _, t := range a.Typings {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// FindNotNeeded returns the not-needed package with the given name.
func (a *AllPackages) FindNotNeeded(name string) (*NotNeeded, bool) {
	for _, n := range a.NotNeeded {
		if n.Name == name {
			return n, true
		}
	}
	return nil, false
}

// Len returns the number of packages of both kinds.
func (a *AllPackages) Len() int { return len(a.Typings) + len(a.NotNeeded) }

// CheckUnique returns an INVALID_PACKAGE error when a name is used by more
// than one package, live or not-needed.
func (a *AllPackages) CheckUnique() error {
	seen := make(map[string]string, a.Len())
	add := func(name, kind string) error {
		if prev, ok := seen[name]; ok {
			return errors.New(errors.ErrCodeInvalidPackage, "package %q is listed more than once (%s and %s)", name, prev, kind)
		}
		seen[name] = kind
		return nil
	}
	for _, t := range a.Typings {
		if err := add(t.Name, TypesDataFile); err != nil {
			return err
		}
	}
	for _, n := range a.NotNeeded {
		if err := add(n.Name, NotNeededFile); err != nil {
			return err
		}
	}
	return nil
}

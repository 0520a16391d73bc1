package semver

import (
	"fmt"
	"math"
	"strconv"

	mm "github.com/Masterminds/semver/v3"

	"github.com/matzehuels/typespub/pkg/errors"
)

// Version is a three-component version number. The zero value is 0.0.0.
type Version struct {
	Major int `json:"major"`
	Minor int `json:"minor"`
	Patch int `json:"patch"`
}

// None is the previous version of a package that has never been published.
// It orders before every parsable version.
var None = Version{Major: -1, Minor: -1, Patch: -1}

// MajorMinor is the version pair a package declares upstream.
type MajorMinor struct {
	Major int `json:"major"`
	Minor int `json:"minor"`
}

// String formats m as "MAJOR.MINOR".
func (m MajorMinor) String() string {
	return fmt.Sprintf("%d.%d", m.Major, m.Minor)
}

// TryParse parses s as MAJOR.MINOR.PATCH. Prefixes, prerelease tags, build
// metadata, leading zeros and components that do not fit an int are
// rejected; ok is false for anything else.
func TryParse(s string) (Version, bool) {
	v, err := mm.StrictNewVersion(s)
	if err != nil || v.Prerelease() != "" || v.Metadata() != "" {
		return Version{}, false
	}
	if v.Major() > math.MaxInt || v.Minor() > math.MaxInt || v.Patch() > math.MaxInt {
		return Version{}, false
	}
	return Version{
		Major: int(v.Major()),
		Minor: int(v.Minor()),
		Patch: int(v.Patch()),
	}, true
}

// Parse is like TryParse but returns an INVALID_VERSION error for input that
// does not parse.
func Parse(s string) (Version, error) {
	v, ok := TryParse(s)
	if !ok {
		return Version{}, errors.New(errors.ErrCodeInvalidVersion, "unexpected semver: %q", s)
	}
	return v, nil
}

// MustParse is like Parse but panics on error. It is intended for tests and
// package-level constants.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String formats v as "MAJOR.MINOR.PATCH".
func (v Version) String() string {
	return strconv.Itoa(v.Major) + "." + strconv.Itoa(v.Minor) + "." + strconv.Itoa(v.Patch)
}

// IsNone reports whether v is the never-published sentinel.
func (v Version) IsNone() bool { return v == None }

// MajorMinor returns the major and minor components of v.
func (v Version) MajorMinor() MajorMinor {
	return MajorMinor{Major: v.Major, Minor: v.Minor}
}

// Compare returns -1, 0 or +1 depending on whether v is less than, equal to,
// or greater than o, comparing major, then minor, then patch.
func (v Version) Compare(o Version) int {
	if c := cmpInt(v.Major, o.Major); c != 0 {
		return c
	}
	if c := cmpInt(v.Minor, o.Minor); c != 0 {
		return c
	}
	return cmpInt(v.Patch, o.Patch)
}

// Less reports whether v orders before o.
func (v Version) Less(o Version) bool { return v.Compare(o) < 0 }

// Equal reports whether v and o have identical components.
func (v Version) Equal(o Version) bool { return v == o }

// Update computes the version to publish after a content change.
//
// If declared matches v's major and minor, the patch is bumped. Otherwise the
// declared pair has moved upstream and the patch restarts at zero.
func (v Version) Update(declared MajorMinor) Version {
	if declared.Major == v.Major && declared.Minor == v.Minor {
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	}
	return Version{Major: declared.Major, Minor: declared.Minor, Patch: 0}
}

// LatestPatch returns the highest version among keys whose major and minor
// equal want. Keys that do not parse, such as non-semver tags, are skipped.
func LatestPatch(keys []string, want MajorMinor) (Version, bool) {
	best, found := None, false
	for _, k := range keys {
		v, ok := TryParse(k)
		if !ok || v.MajorMinor() != want {
			continue
		}
		if !found || best.Less(v) {
			best, found = v, true
		}
	}
	return best, found
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

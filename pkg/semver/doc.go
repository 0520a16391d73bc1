// Package semver implements the version arithmetic used to publish
// type-declaration packages.
//
// # Versions
//
// A [Version] has exactly three non-negative components. Version strings are
// accepted only in the form MAJOR.MINOR.PATCH: [Parse] returns an error for
// anything else and [TryParse] reports ok=false, which lets callers skip the
// non-semver keys that registries publish next to real releases.
//
// [None] ({-1,-1,-1}) stands in for the previous version of a package that
// has never been published and orders before every real version.
//
// # Increment Rule
//
// [Version.Update] is applied only when a package's content has changed:
//
//	prev := semver.MustParse("1.2.5")
//	prev.Update(semver.MajorMinor{Major: 1, Minor: 2}) // 1.2.6
//	prev.Update(semver.MajorMinor{Major: 1, Minor: 3}) // 1.3.0
//
// Unchanged packages keep their previous version verbatim.
//
// # Latest Patch
//
// [LatestPatch] selects the highest published patch under a fixed
// major.minor, which is how a package pinned to an older upstream line keeps
// receiving patch releases on that line.
package semver

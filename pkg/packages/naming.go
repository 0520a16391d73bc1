package packages

import "strings"

// MangleScoped flattens a scoped library name so it can live under a single
// registry scope: "@babel/core" becomes "babel__core". Unscoped names are
// returned unchanged.
func MangleScoped(name string) string {
	if rest, ok := strings.CutPrefix(name, "@"); ok {
		if scope, pkg, found := strings.Cut(rest, "/"); found {
			return scope + "__" + pkg
		}
	}
	return name
}

// FullNpmName returns the published name of a package, e.g.
// FullNpmName("types", "@babel/core") returns "@types/babel__core".
func FullNpmName(scope, name string) string {
	return "@" + scope + "/" + MangleScoped(name)
}

// EscapedName returns the registry path segment for a published name. The
// registry expects the scope separator percent-encoded.
func EscapedName(fullName string) string {
	return strings.ReplaceAll(fullName, "/", "%2f")
}

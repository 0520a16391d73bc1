package errors

import (
	"io/fs"
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

// maxNameLength is the registry limit on package names.
const maxNameLength = 214

// packageNamePattern matches an unscoped or scoped registry name. No segment
// may start with a dot, which also rules out "." and ".." segments.
var packageNamePattern = regexp.MustCompile(`^(@[a-z0-9~-][a-z0-9_.~-]*/)?[a-z0-9~-][a-z0-9_.~-]*$`)

// ValidatePackageName reports whether name can be published. Names become
// directories below the types root and path segments of registry URLs.
func ValidatePackageName(name string) error {
	switch {
	case name == "":
		return New(ErrCodeInvalidPackage, "package name cannot be empty")
	case len(name) > maxNameLength:
		return New(ErrCodeInvalidPackage, "package name %.20q... is longer than %d characters", name, maxNameLength)
	case strings.ToLower(name) != name:
		return New(ErrCodeInvalidPackage, "package name %q must be lowercase", name)
	case !packageNamePattern.MatchString(name):
		return New(ErrCodeInvalidPackage, "invalid package name %q", name)
	}
	return nil
}

// ValidatePath reports whether p is a clean, slash-separated path relative to
// the types root.
func ValidatePath(p string) error {
	switch {
	case p == "":
		return New(ErrCodeInvalidPath, "path cannot be empty")
	case strings.IndexFunc(p, unicode.IsControl) >= 0:
		return New(ErrCodeInvalidPath, "path %q contains control characters", p)
	case strings.ContainsRune(p, '\\'):
		return New(ErrCodeInvalidPath, "path %q must use forward slashes", p)
	case p == "." || !fs.ValidPath(p):
		return New(ErrCodeInvalidPath, "path %q must be relative and must not contain . or .. elements", p)
	}
	return nil
}

// ValidateURL reports whether rawURL is an absolute http or https URL.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid URL %q", rawURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return New(ErrCodeInvalidInput, "URL %q must use http or https", rawURL)
	}
	if u.Host == "" {
		return New(ErrCodeInvalidInput, "URL %q has no host", rawURL)
	}
	return nil
}

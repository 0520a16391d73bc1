package integrations

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// httpTimeout bounds every registry request, retries excluded.
const httpTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when the registry does not know a package.
	ErrNotFound = errors.New("not found")

	// ErrNetwork is returned for transport failures and unexpected statuses.
	ErrNetwork = errors.New("network error")
)

// NewHTTPClient creates an HTTP client with the registry request timeout.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// hostShorthands are the "host:user/repo" prefixes npm accepts in a
// repository field.
var hostShorthands = map[string]string{
	"github":    "github.com",
	"gitlab":    "gitlab.com",
	"bitbucket": "bitbucket.org",
}

// NormalizeRepoURL converts a repository reference as found in package
// metadata to a browsable https URL. It understands the git+ prefix, git://
// and ssh:// URLs, scp-style "git@host:path", npm shorthands such as
// "github:user/repo" and bare "user/repo", and drops a .git suffix.
// References it cannot interpret are returned trimmed.
func NormalizeRepoURL(raw string) string {
	s := strings.TrimPrefix(strings.TrimSpace(raw), "git+")
	if s == "" {
		return ""
	}

	host, path, ok := splitRepo(s)
	if !ok {
		return strings.TrimSuffix(s, ".git")
	}
	path = strings.TrimSuffix(strings.Trim(path, "/"), ".git")
	if path == "" {
		return "https://" + host
	}
	return "https://" + host + "/" + path
}

func splitRepo(s string) (host, path string, ok bool) {
	if !strings.Contains(s, "://") {
		if user, rest, found := strings.Cut(s, "@"); found && !strings.Contains(user, "/") {
			if h, p, found := strings.Cut(rest, ":"); found {
				return h, p, true
			}
		}
	}

	if u, err := url.Parse(s); err == nil && u.Host != "" {
		switch u.Scheme {
		case "http", "https", "git", "ssh":
			return u.Host, u.Path, true
		}
		return "", "", false
	}

	if prefix, p, found := strings.Cut(s, ":"); found {
		h, known := hostShorthands[prefix]
		return h, p, known
	}
	if strings.Count(s, "/") == 1 && !strings.HasPrefix(s, "/") {
		return "github.com", s, true
	}
	return "", "", false
}

package npm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/typespub/pkg/cache"
	"github.com/matzehuels/typespub/pkg/integrations"
	"github.com/matzehuels/typespub/pkg/packages"
)

// DefaultURL is the public npm registry.
const DefaultURL = "https://registry.npmjs.org"

// Packument is the registry document describing every published version of
// a package.
type Packument struct {
	Name     string             `json:"name"`
	DistTags map[string]string  `json:"dist-tags"`
	Versions map[string]Version `json:"versions"`
}

// Version is the part of a published version's manifest the publisher reads.
type Version struct {
	Version     string     `json:"version"`
	ContentHash string     `json:"typesPublisherContentHash,omitempty"`
	Deprecated  Deprecated `json:"deprecated,omitempty"`
}

// Latest returns the version tagged "latest", or "" if there is none.
func (p *Packument) Latest() string { return p.DistTags["latest"] }

// VersionKeys returns the published version strings in sorted order.
func (p *Packument) VersionKeys() []string {
	keys := make([]string, 0, len(p.Versions))
	for k := range p.Versions {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Deprecated is the deprecation message of a version. The registry stores a
// string; a boolean true is accepted as well and kept as "true".
type Deprecated string

// IsSet reports whether the version is deprecated.
func (d Deprecated) IsSet() bool { return d != "" }

// UnmarshalJSON accepts a string, a boolean or null.
func (d *Deprecated) UnmarshalJSON(data []byte) error {
	switch s := string(bytes.TrimSpace(data)); s {
	case "null", "false":
		*d = ""
		return nil
	case "true":
		*d = "true"
		return nil
	}
	var msg string
	if err := json.Unmarshal(data, &msg); err != nil {
		return err
	}
	*d = Deprecated(msg)
	return nil
}

// Client fetches packuments from an npm-compatible registry.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient returns a client for the registry at baseURL. Responses are
// cached in c for ttl; c may be nil.
func NewClient(baseURL string, c cache.Cache, ttl time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	headers := map[string]string{"Accept": "application/json"}
	return &Client{
		Client:  integrations.NewClient(c, "npm", ttl, headers),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// BaseURL returns the registry the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// FetchPackument returns the packument for fullName, e.g. "@types/node".
// A package the registry does not know, whether it answers 404, an empty
// object, an error document or a document without dist-tags, yields
// (nil, nil). When refresh is true the cache is not consulted.
func (c *Client) FetchPackument(ctx context.Context, fullName string, refresh bool) (*Packument, error) {
	var doc Packument
	err := c.Cached(ctx, fullName, refresh, &doc, func() error {
		return c.fetch(ctx, fullName, &doc)
	})
	if errors.Is(err, integrations.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *Client) fetch(ctx context.Context, fullName string, doc *Packument) error {
	var data registryResponse
	if err := c.Get(ctx, c.baseURL+"/"+packages.EscapedName(fullName), &data); err != nil {
		return err
	}
	if data.Error != "" || len(data.DistTags) == 0 {
		return integrations.ErrNotFound
	}

	*doc = Packument{
		Name:     data.Name,
		DistTags: data.DistTags,
		Versions: data.Versions,
	}
	if doc.Versions == nil {
		doc.Versions = map[string]Version{}
	}
	return nil
}

type registryResponse struct {
	Name     string             `json:"name"`
	Error    string             `json:"error"`
	DistTags map[string]string  `json:"dist-tags"`
	Versions map[string]Version `json:"versions"`
}

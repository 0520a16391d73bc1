package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/matzehuels/typespub/pkg/cache"
	"github.com/matzehuels/typespub/pkg/httputil"
	"github.com/matzehuels/typespub/pkg/observability"
)

// Client provides shared HTTP functionality for registry API clients.
// It handles caching, retry logic, and common request headers.
type Client struct {
	http      *http.Client
	cache     cache.Cache
	namespace string
	ttl       time.Duration
	headers   map[string]string
	retry     httputil.Policy
}

// NewClient creates a Client with the given cache and default headers.
// Cache keys are prefixed with namespace and entries expire after ttl.
// A nil cache disables caching. Pass nil for headers if no default headers
// are needed.
func NewClient(c cache.Cache, namespace string, ttl time.Duration, headers map[string]string) *Client {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Client{
		http:      NewHTTPClient(),
		cache:     c,
		namespace: namespace,
		ttl:       ttl,
		headers:   headers,
		retry:     httputil.Policy{}.WithDefaults(),
	}
}

// SetHTTPClient replaces the underlying HTTP client, e.g. with an
// httptest server's client.
func (c *Client) SetHTTPClient(h *http.Client) { c.http = h }

// SetRetryPolicy replaces the retry policy used for every fetch.
func (c *Client) SetRetryPolicy(p httputil.Policy) { c.retry = p.WithDefaults() }

// Cached retrieves a value from cache or executes fetch and caches the result.
// If refresh is true, the cache is not read, but a successful fetch still
// updates it. The fetch function should populate v; on success, v is stored
// in the cache. Transient fetch errors are retried according to the policy.
func (c *Client) Cached(ctx context.Context, key string, refresh bool, v any, fetch func() error) error {
	key = cache.Key(c.namespace, key)
	if !refresh {
		if data, ok, _ := c.cache.Get(ctx, key); ok && json.Unmarshal(data, v) == nil {
			return nil
		}
	}
	if err := httputil.RetryWithPolicy(ctx, c.retry, fetch); err != nil {
		return err
	}
	if data, err := json.Marshal(v); err == nil {
		_ = c.cache.Set(ctx, key, data, c.ttl)
	}
	return nil
}

// Get performs an HTTP GET request and JSON-decodes the response into v.
// It uses the client's default headers. Get does not retry; wrap it in
// [Client.Cached] or [httputil.Retry] for that.
func (c *Client) Get(ctx context.Context, url string, v any) error {
	return c.GetWithHeaders(ctx, url, nil, v)
}

// GetWithHeaders performs an HTTP GET with additional headers merged with defaults.
// Request-specific headers override client defaults for the same key.
func (c *Client) GetWithHeaders(ctx context.Context, url string, headers map[string]string, v any) error {
	body, err := c.doRequest(ctx, url, headers)
	if err != nil {
		return err
	}
	defer body.Close()
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrNetwork, err)
	}
	return nil
}

func (c *Client) doRequest(ctx context.Context, rawURL string, headers map[string]string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	host, path := requestTarget(req.URL)
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, httputil.Retryable(fmt.Errorf("%w: %v", ErrNetwork, err))
	}
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

func requestTarget(u *url.URL) (host, path string) {
	if p := u.EscapedPath(); p != "" {
		return u.Host, p
	}
	return u.Host, "/"
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusTooManyRequests, code >= 500:
		return httputil.Retryable(fmt.Errorf("%w: status %d", ErrNetwork, code))
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}

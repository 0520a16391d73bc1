package integrations

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/typespub/pkg/cache"
	"github.com/matzehuels/typespub/pkg/httputil"
	"github.com/matzehuels/typespub/pkg/observability"
)

var fastRetry = httputil.Policy{Attempts: 3, Delay: time.Millisecond}

func newTestClient(t *testing.T, server *httptest.Server, headers map[string]string) (*Client, *cache.FileCache) {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { c.Close() })

	client := NewClient(c, "test", time.Hour, headers)
	client.SetRetryPolicy(fastRetry)
	if server != nil {
		client.SetHTTPClient(server.Client())
	}
	return client, c
}

func TestNewClient(t *testing.T) {
	headers := map[string]string{"Authorization": "Bearer token"}
	client, c := newTestClient(t, nil, headers)

	if client.http == nil {
		t.Error("NewClient() http client is nil")
	}
	if client.cache != c {
		t.Error("NewClient() cache not set correctly")
	}
	if client.headers["Authorization"] != "Bearer token" {
		t.Error("NewClient() headers not set correctly")
	}
}

func TestNewClientNilCache(t *testing.T) {
	client := NewClient(nil, "test", time.Hour, nil)
	if _, ok := client.cache.(cache.NullCache); !ok {
		t.Errorf("NewClient(nil) cache = %T, want NullCache", client.cache)
	}
	if client.headers != nil {
		t.Error("NewClient() should allow nil headers")
	}
}

func TestClientGet(t *testing.T) {
	type response struct {
		Message string `json:"message"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		json.NewEncoder(w).Encode(response{Message: "hello"})
	}))
	defer server.Close()

	client, _ := newTestClient(t, server, nil)

	var resp response
	if err := client.Get(context.Background(), server.URL, &resp); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if resp.Message != "hello" {
		t.Errorf("Get() message = %q, want %q", resp.Message, "hello")
	}
}

func TestClientGetWithHeadersOverridesDefaults(t *testing.T) {
	var gotDefault, gotOverride string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotDefault = r.Header.Get("X-Default")
		gotOverride = r.Header.Get("X-Override")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer server.Close()

	client, _ := newTestClient(t, server, map[string]string{"X-Default": "default", "X-Override": "default"})

	var resp map[string]string
	err := client.GetWithHeaders(context.Background(), server.URL, map[string]string{"X-Override": "overridden"}, &resp)
	if err != nil {
		t.Fatalf("GetWithHeaders() error: %v", err)
	}
	if gotDefault != "default" {
		t.Errorf("default header = %q, want %q", gotDefault, "default")
	}
	if gotOverride != "overridden" {
		t.Errorf("override header = %q, want %q", gotOverride, "overridden")
	}
}

func TestClientGetMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>"))
	}))
	defer server.Close()

	client, _ := newTestClient(t, server, nil)

	var resp map[string]string
	if err := client.Get(context.Background(), server.URL, &resp); !errors.Is(err, ErrNetwork) {
		t.Errorf("Get() error = %v, want ErrNetwork", err)
	}
}

func TestClientGet404(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client, _ := newTestClient(t, server, nil)

	var resp map[string]string
	if err := client.Get(context.Background(), server.URL, &resp); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestClientGet500(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, _ := newTestClient(t, server, nil)

	var resp map[string]string
	err := client.Get(context.Background(), server.URL, &resp)
	if err == nil {
		t.Fatal("Get() should return error for 500")
	}
	if !httputil.IsRetryable(err) {
		t.Errorf("Get() error should be retryable, got %T", err)
	}
}

func TestClientCachedRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"v": "ok"})
	}))
	defer server.Close()

	client, _ := newTestClient(t, server, nil)

	var resp map[string]string
	err := client.Cached(context.Background(), "k", true, &resp, func() error {
		return client.Get(context.Background(), server.URL, &resp)
	})
	if err != nil {
		t.Fatalf("Cached() error: %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("server called %d times, want 3", calls.Load())
	}
	if resp["v"] != "ok" {
		t.Errorf("resp = %v", resp)
	}
}

func TestClientCachedGivesUpAfterPolicy(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client, _ := newTestClient(t, server, nil)

	var resp map[string]string
	err := client.Cached(context.Background(), "k", true, &resp, func() error {
		return client.Get(context.Background(), server.URL, &resp)
	})
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("Cached() error = %v, want ErrNetwork", err)
	}
	if calls.Load() != int32(fastRetry.Attempts) {
		t.Errorf("server called %d times, want %d", calls.Load(), fastRetry.Attempts)
	}
}

func TestClientCached(t *testing.T) {
	client, c := newTestClient(t, nil, nil)

	type testData struct {
		Value string `json:"value"`
	}
	fetchCount := 0
	fetch := func(v *testData) func() error {
		return func() error {
			fetchCount++
			*v = testData{Value: "fetched"}
			return nil
		}
	}

	var first testData
	if err := client.Cached(context.Background(), "key", false, &first, fetch(&first)); err != nil {
		t.Fatalf("Cached() error: %v", err)
	}
	if fetchCount != 1 {
		t.Fatalf("fetch count = %d, want 1", fetchCount)
	}

	// Entry was stored under the namespaced key.
	if _, ok, _ := c.Get(context.Background(), cache.Key("test", "key")); !ok {
		t.Error("value not stored under namespaced key")
	}

	var second testData
	if err := client.Cached(context.Background(), "key", false, &second, fetch(&second)); err != nil {
		t.Fatalf("Cached() error: %v", err)
	}
	if fetchCount != 1 {
		t.Errorf("fetch count = %d, want 1 (served from cache)", fetchCount)
	}
	if second.Value != "fetched" {
		t.Errorf("cached value = %q, want %q", second.Value, "fetched")
	}
}

func TestClientCachedRefresh(t *testing.T) {
	client, _ := newTestClient(t, nil, nil)

	fetchCount := 0
	var value string
	fetch := func() error {
		fetchCount++
		value = "fetched"
		return nil
	}

	for range 2 {
		if err := client.Cached(context.Background(), "key", true, &value, fetch); err != nil {
			t.Fatalf("Cached() error: %v", err)
		}
	}
	if fetchCount != 2 {
		t.Errorf("fetch count = %d, want 2", fetchCount)
	}
}

func TestClientCachedFetchError(t *testing.T) {
	client, c := newTestClient(t, nil, nil)

	fetchCount := 0
	var value string
	err := client.Cached(context.Background(), "missing", false, &value, func() error {
		fetchCount++
		return ErrNotFound
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Cached() error = %v, want ErrNotFound", err)
	}
	if fetchCount != 1 {
		t.Errorf("fetch count = %d, want 1 (not found is not retried)", fetchCount)
	}
	if _, ok, _ := c.Get(context.Background(), cache.Key("test", "missing")); ok {
		t.Error("failed fetch was cached")
	}
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	requests  atomic.Int32
	responses atomic.Int32
	lastPath  atomic.Value
}

func (h *recordingHTTPHooks) OnRequest(_ context.Context, _, _, path string) {
	h.requests.Add(1)
	h.lastPath.Store(path)
}

func (h *recordingHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {
	h.responses.Add(1)
}

func TestClientEmitsHTTPHooks(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{}"))
	}))
	defer server.Close()

	client, _ := newTestClient(t, server, nil)
	var resp map[string]any
	if err := client.Get(context.Background(), server.URL+"/@types%2fnode", &resp); err != nil {
		t.Fatal(err)
	}
	if hooks.requests.Load() != 1 || hooks.responses.Load() != 1 {
		t.Errorf("hooks saw %d requests, %d responses, want 1 each", hooks.requests.Load(), hooks.responses.Load())
	}
	if p, _ := hooks.lastPath.Load().(string); p != "/@types%2fnode" {
		t.Errorf("request path = %q, want /@types%%2fnode", p)
	}
}

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		name      string
		code      int
		wantErr   bool
		wantType  error
		retryable bool
	}{
		{name: "200 OK", code: 200},
		{name: "404 Not Found", code: 404, wantErr: true, wantType: ErrNotFound},
		{name: "429 Too Many Requests", code: 429, wantErr: true, retryable: true},
		{name: "500 Internal Server Error", code: 500, wantErr: true, retryable: true},
		{name: "502 Bad Gateway", code: 502, wantErr: true, retryable: true},
		{name: "503 Service Unavailable", code: 503, wantErr: true, retryable: true},
		{name: "400 Bad Request", code: 400, wantErr: true, wantType: ErrNetwork},
		{name: "403 Forbidden", code: 403, wantErr: true, wantType: ErrNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkStatus(tt.code)

			if !tt.wantErr {
				if err != nil {
					t.Errorf("checkStatus() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("checkStatus() should return error")
			}
			if tt.wantType != nil && !errors.Is(err, tt.wantType) {
				t.Errorf("checkStatus() error = %v, want %v", err, tt.wantType)
			}
			if got := httputil.IsRetryable(err); got != tt.retryable {
				t.Errorf("IsRetryable = %v, want %v", got, tt.retryable)
			}
		})
	}
}

func TestNormalizeRepoURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"https url", "https://github.com/user/repo", "https://github.com/user/repo"},
		{"with .git suffix", "https://github.com/user/repo.git", "https://github.com/user/repo"},
		{"git@ to https", "git@github.com:user/repo", "https://github.com/user/repo"},
		{"git:// to https", "git://github.com/user/repo", "https://github.com/user/repo"},
		{"git+ prefix", "git+https://github.com/user/repo", "https://github.com/user/repo"},
		{"with spaces", "  https://github.com/user/repo  ", "https://github.com/user/repo"},
		{"combined", "git+git@github.com:user/repo.git", "https://github.com/user/repo"},
		{"ssh url", "git+ssh://git@gitlab.com/group/sub/repo.git", "https://gitlab.com/group/sub/repo"},
		{"trailing slash", "https://github.com/user/repo/", "https://github.com/user/repo"},
		{"host only", "https://example.com", "https://example.com"},
		{"shorthand", "github:user/repo", "https://github.com/user/repo"},
		{"bitbucket shorthand", "bitbucket:team/repo", "https://bitbucket.org/team/repo"},
		{"bare shorthand", "user/repo", "https://github.com/user/repo"},
		{"unknown scheme", "mailto:dev@example.com", "mailto:dev@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeRepoURL(tt.input); got != tt.want {
				t.Errorf("NormalizeRepoURL(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

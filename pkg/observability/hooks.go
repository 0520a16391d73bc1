// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about package testing, version resolution, and registry
// requests.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetTesterHooks(&myTesterHooks{})
//	    observability.SetResolverHooks(&myResolverHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Tester().OnStepStart(ctx, pkg, "compile")
//	// ... run compiler ...
//	observability.Tester().OnStepComplete(ctx, pkg, "compile", duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Tester Hooks
// =============================================================================

// TesterHooks receives events from the per-package test steps.
type TesterHooks interface {
	OnStepStart(ctx context.Context, pkg, step string)
	OnStepComplete(ctx context.Context, pkg, step string, duration time.Duration, err error)
}

// =============================================================================
// Resolver Hooks
// =============================================================================

// Classification is the resolver's verdict for one package.
type Classification string

const (
	Unchanged     Classification = "unchanged"
	Changed       Classification = "changed"
	Added         Classification = "added"
	NowDeprecated Classification = "deprecated"
)

// ResolverHooks receives events from version resolution.
type ResolverHooks interface {
	OnClassified(ctx context.Context, pkg string, c Classification)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopTesterHooks is a no-op implementation of TesterHooks.
type NoopTesterHooks struct{}

func (NoopTesterHooks) OnStepStart(context.Context, string, string)                          {}
func (NoopTesterHooks) OnStepComplete(context.Context, string, string, time.Duration, error) {}

// NoopResolverHooks is a no-op implementation of ResolverHooks.
type NoopResolverHooks struct{}

func (NoopResolverHooks) OnClassified(context.Context, string, Classification) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	testerHooks   TesterHooks   = NoopTesterHooks{}
	resolverHooks ResolverHooks = NoopResolverHooks{}
	httpHooks     HTTPHooks     = NoopHTTPHooks{}
	hooksMu       sync.RWMutex
)

// SetTesterHooks registers custom tester hooks.
// This should be called once at application startup before any tests run.
func SetTesterHooks(h TesterHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		testerHooks = h
	}
}

// SetResolverHooks registers custom resolver hooks.
func SetResolverHooks(h ResolverHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		resolverHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before any HTTP operations.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Tester returns the registered tester hooks.
func Tester() TesterHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return testerHooks
}

// Resolver returns the registered resolver hooks.
func Resolver() ResolverHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return resolverHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	testerHooks = NoopTesterHooks{}
	resolverHooks = NoopResolverHooks{}
	httpHooks = NoopHTTPHooks{}
}

// Package integrations provides the HTTP plumbing for package registry APIs.
//
// # Overview
//
// The registry itself is served by a subpackage:
//
//   - [npm]: the npm-compatible registry the type packages are published to
//
// # Client Pattern
//
// Registry clients embed [Client] and add decoding for their API:
//
//	client := npm.NewClient(npm.DefaultURL, c, 24*time.Hour)
//	doc, err := client.FetchPackument(ctx, "@types/node", true) // true = skip cache read
//
// [Client] handles:
//   - HTTP requests with a 10 second timeout
//   - Retry with exponential backoff for network errors, 429 and 5xx
//   - Response caching through [cache.Cache], keyed per namespace
//   - Request events for [observability.HTTPHooks]
//
// A 404 is reported as [ErrNotFound] and never retried. All other transport
// failures wrap [ErrNetwork].
//
// [npm]: github.com/matzehuels/typespub/pkg/integrations/npm
// [cache.Cache]: github.com/matzehuels/typespub/pkg/cache.Cache
// [observability.HTTPHooks]: github.com/matzehuels/typespub/pkg/observability.HTTPHooks
package integrations

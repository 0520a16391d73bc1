// Package httputil provides HTTP utilities for the registry client.
//
// # Retry
//
// [Retry] re-runs a request when it fails with a transient error:
//
//   - Network errors (connection refused, timeouts)
//   - 5xx server errors
//
// Callers mark an error as transient by wrapping it with [Retryable]. Any
// other error is returned on the first attempt, so a 404 from the registry
// costs one request.
//
//	err := httputil.RetryWithPolicy(ctx, httputil.Policy{}, func() error {
//	    return client.get(ctx, url, &v)
//	})
//
// # Configuration
//
// A zero [Policy] means 3 attempts with a 1 second initial delay that
// doubles after each failure. Tests shorten the delay by setting
// Policy.Delay.
package httputil

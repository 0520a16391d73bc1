// Package npm provides an HTTP client for the npm registry API.
//
// # Overview
//
// This package fetches packuments, the per-package documents listing every
// published version, from the npm registry (https://registry.npmjs.org) or
// any registry speaking the same protocol.
//
// # Usage
//
//	client := npm.NewClient(npm.DefaultURL, c, 24*time.Hour)
//
//	doc, err := client.FetchPackument(ctx, "@types/node", true)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if doc == nil {
//	    fmt.Println("never published")
//	}
//	fmt.Println(doc.Latest())
//
// # Packument
//
// Only the fields the publisher needs are decoded:
//
//   - dist-tags: the "latest" tag drives version selection
//   - versions: each version's typesPublisherContentHash and deprecated flag
//
// # Missing packages
//
// The registry has several ways of saying a package does not exist: a 404,
// an empty object, an object with an "error" field, or a document without
// dist-tags. All of them are reported as a nil packument and a nil error.
//
// # Caching
//
// Responses are cached to reduce load on the registry. Pass refresh=true to
// skip the cache read; the fresh response still replaces the cached entry.
package npm

// Package deckclient provides the primary entry point for constructing a
// Tooldeck API client that implements the tooldeck.Client interface.
//
// It layers configuration, HTTP transport, caching, and interceptors on top
// of the resource interfaces and types defined in the tooldeck package. Most
// applications should import deckclient to build a client, then use the
// returned tooldeck.Client to access resource-specific clients, for example
// Apps(), Actions(), Connections(), etc.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/tooldeck-io/tooldeck-go/pkg/deckclient"
//	  "github.com/tooldeck-io/tooldeck-go/pkg/tooldeck"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // Minimal: a base URL and an API key. Both are required; New fails
//	  // fast with a configuration error when either is missing.
//	  cli, err := deckclient.NewWithAPIKey("https://api.tooldeck.example", "td_live_...")
//	  if err != nil { log.Fatal(err) }
//
//	  // Or with a full config when you need retries, caching, or logging:
//	  cli, err = deckclient.New(&tooldeck.Config{
//	    BaseURL:  "https://api.tooldeck.example",
//	    APIKey:   "td_live_...",
//	    RetryMax: 3,
//	    Cache:    &tooldeck.CacheConfig{Type: tooldeck.CacheTypeMemory},
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  // Use resource clients via the tooldeck.Client interface
//	  apps, err := cli.Apps().List(ctx, tooldeck.NewQueryParams().WithPerPage(10))
//	  if err != nil { log.Fatal(err) }
//	  _ = apps
//	}
//
// # Base URL normalization
//
// New trims a trailing slash from Config.BaseURL and assumes "https://" when
// the URL carries no scheme, so "api.tooldeck.example" and
// "https://api.tooldeck.example/" configure the same client.
//
// # Helpers
//
// The package also provides the convenience constructor NewWithAPIKey that
// wraps New with the appropriate configuration.
package deckclient

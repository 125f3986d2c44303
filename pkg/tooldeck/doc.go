// Package tooldeck provides types, interfaces, and helpers for working with
// the Tooldeck platform API.
//
// # Overview
//
// The tooldeck package defines the domain types (e.g., App, Action,
// Connection, Trigger, AuthScheme) and the interfaces for resource-oriented
// clients (e.g., AppsClient, ActionsClient). A concrete implementation of
// these clients is provided by the deckclient package, which wires
// configuration and transport. Most consumers should import deckclient to
// construct a client and then interact with the resource client interfaces
// exposed here.
//
// Getting a client
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
//	  cli, err := deckclient.New(&tooldeck.Config{
//	    APIKey:  "td_live_...",
//	    BaseURL: "https://api.tooldeck.example",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  // List the first page of apps
//	  apps, err := cli.Apps().List(ctx, tooldeck.NewQueryParams().WithPerPage(50))
//	  if err != nil { log.Fatal(err) }
//	  _ = apps
//	}
//
// # The response envelope
//
// Every terminal API response carries a JSON envelope with exactly one of a
// "data" or an "error" field. DecodeEnvelope turns a RawResponse into an
// Envelope without ever failing past its own boundary: a body that cannot be
// parsed becomes an Envelope carrying a synthesized decode error that
// preserves the raw bytes. Envelope.Result is the single place where envelope
// contents become either a payload or a typed *Error.
//
// # Errors
//
// All failures surface as *Error values tagged with an ErrorKind
// (configuration, malformed request, network, timeout, decode, empty payload,
// not found, and so on). Helpers such as IsNotFound, IsTimeout, and
// IsMalformedRequest make it easy to branch on common cases, and Unwrap keeps
// errors.Is working against underlying causes like context.DeadlineExceeded.
//
// # Queries and pagination
//
// Use QueryParams to express common list options (page, per_page, order_by,
// search, filters). The package also provides helpers for iterating or
// collecting paginated results:
//
//	it := tooldeck.NewPageIterator(ctx, cli.Apps().List, nil)
//	for it.HasNext() {
//	  app, err := it.Next()
//	  if err != nil { break }
//	  _ = app
//	}
//
// or fetch all results at once:
//
//	all, err := tooldeck.FetchAllPages(ctx, cli.Apps().List, nil, tooldeck.DefaultPaginationOptions())
//	if err != nil { /* handle error */ }
//	_ = all
//
// # Interceptors and caching
//
// The package includes generic building blocks such as request/response
// interceptors (for logging, extra headers, metrics, rate limiting, circuit
// breaking) and a pluggable Cache abstraction with in-memory and NATS KV
// backends. The deckclient package composes these pieces when they are set on
// Config; by default the client is a pure pass-through with no caching.
package tooldeck

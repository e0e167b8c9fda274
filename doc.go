// Package d1 provides a client for Cloudflare D1, the serverless SQLite
// database, over its HTTPS JSON API.
//
// The package pairs a statement builder (the sqlbuild subpackage) with a
// thin HTTP client:
//   - Building parameterized SQL from structured descriptors, with strict
//     identifier validation and ?-placeholder binding
//   - Executing statements via the /query and /raw endpoints with bearer
//     token auth and the standard Cloudflare response envelope
//   - Table-level helpers (insert, select, update, delete, DDL, schema
//     inspection) and opaque cursor pagination
//   - Decoding result rows into caller structs
//
// # Quick Start
//
//	package main
//
//	import (
//	    "context"
//	    "fmt"
//	    "log"
//	    "os"
//
//	    "github.com/jezweb/go-d1"
//	    "github.com/jezweb/go-d1/auth"
//	    "github.com/jezweb/go-d1/sqlbuild"
//	)
//
//	func main() {
//	    client, err := d1.New(d1.Config{
//	        AccountID:   os.Getenv("CLOUDFLARE_ACCOUNT_ID"),
//	        DatabaseID:  os.Getenv("D1_DATABASE_ID"),
//	        Credentials: auth.Bearer(os.Getenv("CLOUDFLARE_API_TOKEN")),
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    ctx := context.Background()
//	    rows, err := client.QueryRows(ctx, sqlbuild.Raw(
//	        `SELECT name, email FROM "users" WHERE "active" = ?`,
//	        sqlbuild.Bool(true),
//	    ))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    for _, row := range rows {
//	        fmt.Println(row["name"], row["email"])
//	    }
//	}
//
// # Architecture
//
// The builder and the transport are strictly layered:
//
//   - sqlbuild: pure functions from descriptors to Statement values.
//     No I/O, no state, no knowledge of HTTP.
//   - Client: posts Statement values as {sql, params} JSON bodies and
//     unwraps the {success, result[], errors[]} envelope.
//   - Table helpers: compose the two for common operations.
//
// Builder errors (bad identifiers, malformed conditions, empty inserts)
// are synchronous and surface before any network interaction begins.
//
// # Authentication
//
// Credentials come from the auth subpackage. API tokens are recommended:
//
//	auth.Bearer("cloudflare-api-token")
//
// Rotating tokens can be fetched per request with auth.TokenFunc, and
// legacy email/key pairs are supported via auth.Key.
//
// # Logging
//
// The package logs through log/slog at debug level: one line per
// statement with a request id, and one with D1's execution metadata.
// Configure via Config.Logger or Config.LogLevel; the default is
// slog.Default().
//
// # Context Cancellation
//
// Every executing method takes a context.Context and stops as soon as it
// is canceled. The builders themselves never block and take no context.
//
// # Retries
//
// The client performs exactly one attempt per call. Builder errors are
// caller bugs and never worth retrying; for transient transport errors,
// wrap the client or install a retrying http.Client via
// Config.HTTPClient.
package d1

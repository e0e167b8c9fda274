// Package auth supplies request credentials for the Cloudflare API.
//
// The package follows an interface-based design: the client accepts any
// Credentials implementation and applies it to each outgoing request.
// Use Bearer for API tokens (the recommended Cloudflare auth scheme),
// Key for legacy email/key pairs, or TokenFunc to fetch tokens
// dynamically (e.g. from a secrets manager).
package auth

import (
	"context"
	"errors"
	"net/http"
)

// ErrNoCredentials indicates the credential source produced nothing
// usable (e.g. an empty token).
var ErrNoCredentials = errors.New("no credentials available")

// Credentials attaches authorization to an outgoing API request.
// Implementations MUST be safe for concurrent use; the client calls
// Apply from any goroutine issuing a query.
type Credentials interface {
	// Apply sets the authorization header(s) on req. The context is the
	// request's context; implementations fetching tokens remotely should
	// respect its deadline.
	Apply(ctx context.Context, req *http.Request) error
}

package auth

import (
	"context"
	"net/http"
)

// bearerCredentials holds a static API token.
type bearerCredentials struct {
	token string
}

// Bearer creates Credentials from a static Cloudflare API token.
// This is the simplest way to authenticate.
//
// Example:
//
//	client, err := d1.New(d1.Config{
//	    AccountID:   accountID,
//	    DatabaseID:  databaseID,
//	    Credentials: auth.Bearer(os.Getenv("CLOUDFLARE_API_TOKEN")),
//	})
func Bearer(token string) Credentials {
	return &bearerCredentials{token: token}
}

// Apply implements Credentials for bearerCredentials.
func (b *bearerCredentials) Apply(_ context.Context, req *http.Request) error {
	if b.token == "" {
		return ErrNoCredentials
	}
	req.Header.Set("Authorization", "Bearer "+b.token)
	return nil
}

// tokenFuncCredentials wraps a user-provided token source.
type tokenFuncCredentials struct {
	fetch func(ctx context.Context) (string, error)
}

// TokenFunc creates Credentials that fetch a bearer token per request.
// Use this when tokens rotate or live in an external secrets store. The
// function may be called concurrently.
func TokenFunc(fetch func(ctx context.Context) (string, error)) Credentials {
	return &tokenFuncCredentials{fetch: fetch}
}

// Apply implements Credentials for tokenFuncCredentials.
func (t *tokenFuncCredentials) Apply(ctx context.Context, req *http.Request) error {
	token, err := t.fetch(ctx)
	if err != nil {
		return err
	}
	if token == "" {
		return ErrNoCredentials
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return nil
}

// keyCredentials holds a legacy email/key pair.
type keyCredentials struct {
	email string
	key   string
}

// Key creates Credentials from a legacy Cloudflare email and global API
// key pair. Prefer Bearer with a scoped API token.
func Key(email, key string) Credentials {
	return &keyCredentials{email: email, key: key}
}

// Apply implements Credentials for keyCredentials.
func (k *keyCredentials) Apply(_ context.Context, req *http.Request) error {
	if k.email == "" || k.key == "" {
		return ErrNoCredentials
	}
	req.Header.Set("X-Auth-Email", k.email)
	req.Header.Set("X-Auth-Key", k.key)
	return nil
}

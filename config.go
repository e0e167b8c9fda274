package d1

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jezweb/go-d1/auth"
)

// defaultBaseURL is the Cloudflare API root.
const defaultBaseURL = "https://api.cloudflare.com/client/v4"

// Config contains configuration for a D1 client.
type Config struct {
	// AccountID is the Cloudflare account identifier.
	// REQUIRED: MUST be non-empty.
	AccountID string

	// DatabaseID is the D1 database identifier (UUID).
	// REQUIRED: MUST be non-empty.
	DatabaseID string

	// Credentials authorizes API requests.
	// REQUIRED: MUST NOT be nil. See the auth package.
	Credentials auth.Credentials

	// BaseURL overrides the Cloudflare API root.
	// OPTIONAL: Defaults to https://api.cloudflare.com/client/v4.
	// Useful for tests and API gateways.
	BaseURL string

	// HTTPClient issues the requests.
	// OPTIONAL: Defaults to http.DefaultClient. Timeouts, proxies, and
	// retries belong to this client; the library performs one attempt
	// per call.
	HTTPClient *http.Client

	// Logger for internal logging.
	// OPTIONAL: Uses slog.Default() if nil.
	// Note: If LogLevel is specified, a new logger will be created with
	// that level.
	Logger *slog.Logger

	// LogLevel sets the logging level.
	// OPTIONAL: If nil, uses Info level.
	// If Logger is also provided, LogLevel is ignored (use a
	// pre-configured logger).
	LogLevel *slog.Level

	// DisableCompression turns off gzip response encoding.
	// OPTIONAL: Compression is on by default.
	DisableCompression bool
}

// Standard errors returned by the d1 package.
var (
	// ErrInvalidConfig indicates Config validation failed.
	ErrInvalidConfig = errors.New("invalid client config")

	// ErrUnauthorized indicates the API rejected the credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidCursor indicates a pagination cursor was corrupt or was
	// issued for a different table.
	ErrInvalidCursor = errors.New("invalid page cursor")
)

// validate checks the required fields.
func (c *Config) validate() error {
	if c.AccountID == "" {
		return fmt.Errorf("%w: account id is required", ErrInvalidConfig)
	}
	if c.DatabaseID == "" {
		return fmt.Errorf("%w: database id is required", ErrInvalidConfig)
	}
	if c.Credentials == nil {
		return fmt.Errorf("%w: credentials are required", ErrInvalidConfig)
	}
	return nil
}

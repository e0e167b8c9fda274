package d1

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/jezweb/go-d1/internal/gzipbody"
	"github.com/jezweb/go-d1/sqlbuild"
)

// Client executes statements against a Cloudflare D1 database over the
// HTTPS JSON API. Safe for concurrent use.
type Client struct {
	httpClient *http.Client
	creds      authApplier
	logger     *slog.Logger
	queryURL   string
	rawURL     string
	compress   bool
}

// authApplier mirrors auth.Credentials without re-importing it here.
type authApplier interface {
	Apply(ctx context.Context, req *http.Request) error
}

// Row is one result row keyed by column name. Values are decoded JSON
// scalars: nil, bool, float64, or string. Use DecodeRows for typed
// access.
type Row = map[string]any

// QueryMeta reports execution statistics returned by D1.
type QueryMeta struct {
	ServedBy    string  `json:"served_by"`
	Duration    float64 `json:"duration"`
	Changes     int64   `json:"changes"`
	LastRowID   int64   `json:"last_row_id"`
	RowsRead    int64   `json:"rows_read"`
	RowsWritten int64   `json:"rows_written"`
	SizeAfter   int64   `json:"size_after"`
	ChangedDB   bool    `json:"changed_db"`
}

// QueryResult is one result set: D1 returns one per statement in the
// submitted SQL text.
type QueryResult struct {
	Rows []Row
	Meta QueryMeta
}

// RawResult is one result set in columnar form, as returned by the /raw
// endpoint.
type RawResult struct {
	Columns []string
	Values  [][]any
	Meta    QueryMeta
}

// APIError is an error entry from the D1 response envelope.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("d1 api error %d: %s", e.Code, e.Message)
}

// New creates a Client. Returns ErrInvalidConfig if required fields are
// missing.
func New(cfg Config) (*Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		if cfg.LogLevel != nil {
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: *cfg.LogLevel}))
		} else {
			logger = slog.Default()
		}
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	base := strings.TrimSuffix(cfg.BaseURL, "/")
	if base == "" {
		base = defaultBaseURL
	}
	dbURL := fmt.Sprintf("%s/accounts/%s/d1/database/%s", base, cfg.AccountID, cfg.DatabaseID)

	return &Client{
		httpClient: httpClient,
		creds:      cfg.Credentials,
		logger:     logger,
		queryURL:   dbURL + "/query",
		rawURL:     dbURL + "/raw",
		compress:   !cfg.DisableCompression,
	}, nil
}

// queryRequest is the wire body for /query and /raw.
type queryRequest struct {
	SQL    string           `json:"sql"`
	Params []sqlbuild.Value `json:"params"`
}

// envelope is the Cloudflare response wrapper.
type envelope struct {
	Result   []resultEnvelope `json:"result"`
	Success  bool             `json:"success"`
	Errors   []APIError       `json:"errors"`
	Messages []apiMessage     `json:"messages"`
}

type apiMessage struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// resultEnvelope defers decoding of the per-statement results, whose
// shape differs between /query (row objects) and /raw (columnar).
type resultEnvelope struct {
	Results json.RawMessage `json:"results"`
	Success bool            `json:"success"`
	Meta    QueryMeta       `json:"meta"`
}

// rawResults is the /raw results shape.
type rawResults struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// Query executes a statement and returns its result sets with rows as
// column-keyed maps. Multi-statement SQL yields one QueryResult per
// statement.
func (c *Client) Query(ctx context.Context, stmt sqlbuild.Statement) ([]QueryResult, error) {
	results, err := c.do(ctx, c.queryURL, stmt)
	if err != nil {
		return nil, err
	}

	out := make([]QueryResult, 0, len(results))
	for i, r := range results {
		qr := QueryResult{Meta: r.Meta}
		if len(r.Results) > 0 {
			if err := json.Unmarshal(r.Results, &qr.Rows); err != nil {
				return nil, fmt.Errorf("failed to decode result set %d: %w", i, err)
			}
		}
		out = append(out, qr)
	}
	return out, nil
}

// QueryRows executes a statement and returns the rows of its first
// result set.
func (c *Client) QueryRows(ctx context.Context, stmt sqlbuild.Statement) ([]Row, error) {
	results, err := c.Query(ctx, stmt)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0].Rows, nil
}

// Exec executes a statement for its side effects and returns the first
// result set's metadata (changes, last insert rowid, and so on).
func (c *Client) Exec(ctx context.Context, stmt sqlbuild.Statement) (*QueryMeta, error) {
	results, err := c.do(ctx, c.queryURL, stmt)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return &QueryMeta{}, nil
	}
	meta := results[0].Meta
	return &meta, nil
}

// Raw executes a statement through the /raw endpoint, which returns
// columnar result sets. Cheaper than Query for wide results since column
// names are not repeated per row.
func (c *Client) Raw(ctx context.Context, stmt sqlbuild.Statement) ([]RawResult, error) {
	results, err := c.do(ctx, c.rawURL, stmt)
	if err != nil {
		return nil, err
	}

	out := make([]RawResult, 0, len(results))
	for i, r := range results {
		rr := RawResult{Meta: r.Meta}
		if len(r.Results) > 0 {
			var cols rawResults
			if err := json.Unmarshal(r.Results, &cols); err != nil {
				return nil, fmt.Errorf("failed to decode raw result set %d: %w", i, err)
			}
			rr.Columns = cols.Columns
			rr.Values = cols.Rows
		}
		out = append(out, rr)
	}
	return out, nil
}

// do posts a statement to the given endpoint and unwraps the response
// envelope. Builder-level errors never reach here: callers hold a fully
// built Statement before any network I/O starts.
func (c *Client) do(ctx context.Context, url string, stmt sqlbuild.Statement) ([]resultEnvelope, error) {
	params := stmt.Params
	if params == nil {
		params = []sqlbuild.Value{}
	}
	body, err := json.Marshal(queryRequest{SQL: stmt.SQL, Params: params})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.compress {
		// Explicit header: opts out of net/http's transparent handling so
		// the gzip path stays visible here.
		req.Header.Set("Accept-Encoding", "gzip")
	}
	if err := c.creds.Apply(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to apply credentials: %w", err)
	}

	reqID := uuid.NewString()
	c.logger.Debug("executing d1 statement",
		"request_id", reqID,
		"sql", stmt.SQL,
		"params", len(stmt.Params),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	reader, err := gzipbody.Reader(resp)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	payload, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("unexpected response from the d1 api (status %d): %w", resp.StatusCode, err)
	}

	if !env.Success || len(env.Errors) > 0 {
		apiErr := envelopeError(env)
		c.logger.Debug("d1 statement failed",
			"request_id", reqID,
			"status", resp.StatusCode,
			"error", apiErr,
		)
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return nil, fmt.Errorf("%w: %s", ErrUnauthorized, apiErr)
		}
		return nil, apiErr
	}

	if len(env.Result) > 0 {
		meta := env.Result[0].Meta
		c.logger.Debug("d1 statement complete",
			"request_id", reqID,
			"duration_ms", meta.Duration,
			"rows_read", meta.RowsRead,
			"rows_written", meta.RowsWritten,
		)
	}
	return env.Result, nil
}

// envelopeError picks the most useful error out of a failed envelope.
func envelopeError(env envelope) error {
	if len(env.Errors) > 0 {
		e := env.Errors[0]
		return &e
	}
	return &APIError{Message: "request was not successful"}
}

package d1

import (
	"encoding/base64"
	"fmt"

	"github.com/jezweb/go-d1/internal/msgpack"
)

// pageCursor is the decoded content of a pagination token. Cursors are
// opaque to callers: MessagePack-encoded and base64url-wrapped, carrying
// the table name so a token cannot be replayed against another table.
type pageCursor struct {
	Table  string `msgpack:"t"`
	Offset int    `msgpack:"o"`
	Limit  int    `msgpack:"l"`
}

// encodePageCursor creates an opaque continuation token.
func encodePageCursor(c pageCursor) (string, error) {
	data, err := msgpack.Encode(c)
	if err != nil {
		return "", fmt.Errorf("failed to encode cursor: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// decodePageCursor parses an opaque continuation token.
func decodePageCursor(token string) (*pageCursor, error) {
	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	var c pageCursor
	if err := msgpack.Decode(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	if c.Table == "" || c.Limit <= 0 || c.Offset < 0 {
		return nil, ErrInvalidCursor
	}
	return &c, nil
}

// Package msgpack wraps MessagePack encoding for opaque tokens such as
// pagination cursors.
package msgpack

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Encode serializes a Go value into MessagePack format.
//
// Example:
//
//	type cursor struct {
//	    Table  string `msgpack:"t"`
//	    Offset int    `msgpack:"o"`
//	}
//	data, err := msgpack.Encode(cursor{Table: "users", Offset: 50})
func Encode(v any) ([]byte, error) {
	data, err := msgpack.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode MessagePack: %w", err)
	}
	return data, nil
}

// Decode deserializes MessagePack data into a Go value. The v parameter
// should be a pointer to the target structure.
func Decode(data []byte, v any) error {
	if len(data) == 0 {
		return fmt.Errorf("empty MessagePack data")
	}
	if err := msgpack.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode MessagePack: %w", err)
	}
	return nil
}

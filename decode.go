package d1

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// DecodeRows decodes result rows into a slice of caller structs. dest
// must be a pointer to a slice. Field mapping uses the `d1` struct tag,
// falling back to case-insensitive field names; numeric JSON values are
// weakly converted, so INTEGER columns decode into Go ints even though
// the wire carries float64.
//
// Example:
//
//	type User struct {
//	    ID    int64  `d1:"id"`
//	    Email string `d1:"email"`
//	}
//
//	var users []User
//	rows, err := client.QueryRows(ctx, stmt)
//	if err == nil {
//	    err = d1.DecodeRows(rows, &users)
//	}
func DecodeRows(rows []Row, dest any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "d1",
		Result:           dest,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to build row decoder: %w", err)
	}
	if err := dec.Decode(rows); err != nil {
		return fmt.Errorf("failed to decode rows: %w", err)
	}
	return nil
}

// DecodeRow decodes a single row into a caller struct. dest must be a
// pointer to a struct. See DecodeRows for mapping rules.
func DecodeRow(row Row, dest any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "d1",
		Result:           dest,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to build row decoder: %w", err)
	}
	if err := dec.Decode(row); err != nil {
		return fmt.Errorf("failed to decode row: %w", err)
	}
	return nil
}

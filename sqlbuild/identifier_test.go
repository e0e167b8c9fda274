package sqlbuild

import (
	"errors"
	"testing"
)

func TestValidIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		ident   string
		wantErr bool
	}{
		{name: "simple", ident: "users"},
		{name: "leading underscore", ident: "_internal"},
		{name: "mixed case", ident: "CreatedAt"},
		{name: "digits after first", ident: "table2"},
		{name: "single letter", ident: "x"},
		{name: "single underscore", ident: "_"},
		{name: "empty", ident: "", wantErr: true},
		{name: "leading digit", ident: "2fast", wantErr: true},
		{name: "embedded space", ident: "user name", wantErr: true},
		{name: "semicolon injection", ident: "users; DROP TABLE users", wantErr: true},
		{name: "quote injection", ident: `users"`, wantErr: true},
		{name: "dash", ident: "user-name", wantErr: true},
		{name: "dot qualified", ident: "main.users", wantErr: true},
		{name: "unicode letter", ident: "naïve", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidIdentifier(tt.ident)
			if tt.wantErr {
				var identErr *InvalidIdentifierError
				if !errors.As(err, &identErr) {
					t.Fatalf("ValidIdentifier(%q) = %v, want InvalidIdentifierError", tt.ident, err)
				}
				if identErr.Name != tt.ident {
					t.Errorf("error carries name %q, want %q", identErr.Name, tt.ident)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidIdentifier(%q) = %v, want nil", tt.ident, err)
			}
		})
	}
}

func TestQuoteIdent(t *testing.T) {
	if got := quoteIdent("users"); got != `"users"` {
		t.Errorf("quoteIdent(users) = %s, want %q", got, `"users"`)
	}
}

package sqlbuild

// ValidIdentifier checks a candidate table or column name. A valid
// identifier starts with an ASCII letter or underscore followed by
// letters, digits, or underscores. Every builder applies this to every
// caller-supplied name before it reaches statement text; bound values are
// exempt because they are never interpolated.
func ValidIdentifier(name string) error {
	if len(name) == 0 {
		return &InvalidIdentifierError{Name: name}
	}
	if c := name[0]; !isLetter(c) && c != '_' {
		return &InvalidIdentifierError{Name: name}
	}
	for i := 1; i < len(name); i++ {
		c := name[i]
		if !isLetter(c) && !isDigit(c) && c != '_' {
			return &InvalidIdentifierError{Name: name}
		}
	}
	return nil
}

// quoteIdent wraps a validated identifier in double quotes. Callers must
// run ValidIdentifier first; the character set makes escaping unnecessary.
func quoteIdent(name string) string {
	return `"` + name + `"`
}

// isLetter returns true if c is an ASCII letter.
func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// isDigit returns true if c is an ASCII digit.
func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

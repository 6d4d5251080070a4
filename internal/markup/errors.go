package markup

import "fmt"

// ErrorKind separates positions where no token can start at all from
// positions where a required delimiter or tag is missing.
type ErrorKind int

const (
	ErrLex ErrorKind = iota
	ErrStructure
)

// SyntaxError is a fatal parse failure. Offset is the byte position in the
// original input at which the lexer or parser stopped.
type SyntaxError struct {
	Kind     ErrorKind
	Offset   int
	Expected string
	Found    string
}

func (e *SyntaxError) Error() string {
	kind := "lex error"
	if e.Kind == ErrStructure {
		kind = "structural error"
	}
	return fmt.Sprintf("markup: %s at offset %d: expected %s, found %s", kind, e.Offset, e.Expected, e.Found)
}

func lexErr(offset int, expected, found string) *SyntaxError {
	return &SyntaxError{Kind: ErrLex, Offset: offset, Expected: expected, Found: found}
}

func structErr(offset int, expected, found string) *SyntaxError {
	return &SyntaxError{Kind: ErrStructure, Offset: offset, Expected: expected, Found: found}
}

package cssom

import "fmt"

// ErrorKind separates positions where no lexical unit can start from
// positions where a required delimiter is missing.
type ErrorKind int

const (
	ErrLex ErrorKind = iota
	ErrStructure
)

// SyntaxError is a fatal stylesheet parse failure at a byte offset.
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
	return fmt.Sprintf("cssom: %s at offset %d: expected %s, found %s", kind, e.Offset, e.Expected, e.Found)
}

func structErr(offset int, expected, found string) *SyntaxError {
	return &SyntaxError{Kind: ErrStructure, Offset: offset, Expected: expected, Found: found}
}

func lexErr(offset int, expected, found string) *SyntaxError {
	return &SyntaxError{Kind: ErrLex, Offset: offset, Expected: expected, Found: found}
}

// internal/markup/token.go
package markup

import (
	"fmt"
	"strings"
)

// TokenKind discriminates the lexer output.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenText
	TokenStartTag
	TokenSelfClosingTag
	TokenEndTag
	TokenComment
)

// Token is one lexical unit of the markup stream. Text carries the payload
// for text runs, comments and end tags; Tag and Attrs are populated for
// start and self-closing tags.
type Token struct {
	Kind  TokenKind
	Text  string
	Tag   Tag
	Attrs []Attr
}

func (t Token) String() string {
	switch t.Kind {
	case TokenText:
		return t.Text
	case TokenStartTag:
		return fmt.Sprintf("<%s>", t.tagBody())
	case TokenSelfClosingTag:
		return fmt.Sprintf("<%s />", t.tagBody())
	case TokenEndTag:
		return fmt.Sprintf("</%s>", t.Text)
	case TokenComment:
		return fmt.Sprintf("<!-- %s -->", t.Text)
	default:
		return ""
	}
}

func (t Token) tagBody() string {
	var b strings.Builder
	b.WriteString(t.Tag.String())
	for _, a := range t.Attrs {
		fmt.Fprintf(&b, " %s=%q", a.Key, a.Val)
	}
	return b.String()
}

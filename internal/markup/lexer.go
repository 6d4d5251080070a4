// internal/markup/lexer.go
package markup

import "strings"

// Lexer walks the raw document text with one character of lookahead and
// produces the token stream consumed by the DOM builder. It only ever
// moves forward; there is no backtracking.
type Lexer struct {
	input string
	pos   int
}

func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// Next returns the next token, or TokenEOF once the input is exhausted.
// Whitespace between tokens is skipped; inside a text run, whitespace runs
// collapse to a single space and trailing whitespace is trimmed.
func (l *Lexer) Next() (Token, error) {
	l.skipWhitespace()
	if l.eof() {
		return Token{Kind: TokenEOF}, nil
	}
	if l.current() == '<' {
		return l.lexMarkup()
	}
	return l.lexText()
}

func (l *Lexer) lexMarkup() (Token, error) {
	l.pos++ // '<'
	if l.eof() {
		return Token{}, structErr(l.pos, "tag name, '!' or '/'", "end of input")
	}
	switch l.current() {
	case '!':
		return l.lexComment()
	case '/':
		return l.lexEndTag()
	default:
		return l.lexStartTag()
	}
}

func (l *Lexer) lexStartTag() (Token, error) {
	name := l.consumeIdent()
	if name == "" {
		// Lenient fallback for an anonymous tag, not an error.
		name = "div"
	}
	tok := Token{Kind: TokenStartTag, Tag: TagFrom(name)}
	for {
		l.skipWhitespace()
		if l.eof() {
			return Token{}, structErr(l.pos, "'>' or '/>'", "end of input")
		}
		switch ch := l.current(); {
		case ch == '>':
			l.pos++
			return tok, nil
		case ch == '/':
			l.pos++
			if l.eof() || l.current() != '>' {
				return Token{}, structErr(l.pos, "'>'", l.found())
			}
			l.pos++
			tok.Kind = TokenSelfClosingTag
			return tok, nil
		case isAlpha(ch):
			key, val, err := l.lexAttr()
			if err != nil {
				return Token{}, err
			}
			tok.Attrs = putAttr(tok.Attrs, AttrKeyFrom(key), val)
		default:
			return Token{}, lexErr(l.pos, "attribute, '>' or '/>'", l.found())
		}
	}
}

func (l *Lexer) lexAttr() (key, val string, err error) {
	start := l.pos
	for !l.eof() && isAlpha(l.current()) {
		l.pos++
	}
	key = l.input[start:l.pos]
	l.skipWhitespace()
	if l.eof() || l.current() != '=' {
		return "", "", structErr(l.pos, "'='", l.found())
	}
	l.pos++
	l.skipWhitespace()
	if l.eof() || l.current() != '"' {
		return "", "", structErr(l.pos, `'"'`, l.found())
	}
	l.pos++
	vstart := l.pos
	for !l.eof() && l.current() != '"' {
		l.pos++
	}
	if l.eof() {
		return "", "", structErr(l.pos, `closing '"'`, "end of input")
	}
	val = l.input[vstart:l.pos]
	l.pos++ // closing quote
	return key, val, nil
}

func (l *Lexer) lexEndTag() (Token, error) {
	l.pos++ // '/'
	l.skipWhitespace()
	name := l.consumeIdent()
	l.skipWhitespace()
	if l.eof() || l.current() != '>' {
		return Token{}, structErr(l.pos, "'>'", l.found())
	}
	l.pos++
	return Token{Kind: TokenEndTag, Text: name}, nil
}

func (l *Lexer) lexComment() (Token, error) {
	l.pos++ // '!'
	if !strings.HasPrefix(l.input[l.pos:], "--") {
		return Token{}, structErr(l.pos, "'--'", l.found())
	}
	l.pos += 2
	end := strings.Index(l.input[l.pos:], "-->")
	if end < 0 {
		return Token{}, structErr(len(l.input), "'-->'", "end of input")
	}
	body := strings.TrimSpace(l.input[l.pos : l.pos+end])
	l.pos += end + 3
	return Token{Kind: TokenComment, Text: body}, nil
}

func (l *Lexer) lexText() (Token, error) {
	start := l.pos
	for !l.eof() && l.current() != '<' && l.current() != '>' {
		l.pos++
	}
	text := collapseWhitespace(l.input[start:l.pos])
	if text == "" {
		return Token{}, lexErr(start, "text or tag", l.found())
	}
	return Token{Kind: TokenText, Text: text}, nil
}

// rawText consumes everything up to the next '<' verbatim. The DOM builder
// uses it for inline stylesheet content, which must not be normalized.
func (l *Lexer) rawText() string {
	start := l.pos
	for !l.eof() && l.current() != '<' {
		l.pos++
	}
	return l.input[start:l.pos]
}

func (l *Lexer) consumeIdent() string {
	start := l.pos
	for !l.eof() && isAlnum(l.current()) {
		l.pos++
	}
	return l.input[start:l.pos]
}

func (l *Lexer) eof() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) current() byte {
	return l.input[l.pos]
}

func (l *Lexer) skipWhitespace() {
	for !l.eof() && isSpace(l.current()) {
		l.pos++
	}
}

// found describes the character at the cursor for error messages.
func (l *Lexer) found() string {
	if l.eof() {
		return "end of input"
	}
	return "'" + string(l.current()) + "'"
}

func putAttr(attrs []Attr, key AttrKey, val string) []Attr {
	for i, a := range attrs {
		if a.Key == key {
			attrs[i].Val = val
			return attrs
		}
	}
	return append(attrs, Attr{Key: key, Val: val})
}

func collapseWhitespace(s string) string {
	var b strings.Builder
	inRun := false
	for i := 0; i < len(s); i++ {
		if isSpace(s[i]) {
			inRun = true
			continue
		}
		if inRun && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inRun = false
		b.WriteByte(s[i])
	}
	return b.String()
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isAlnum(ch byte) bool {
	return isAlpha(ch) || (ch >= '0' && ch <= '9')
}

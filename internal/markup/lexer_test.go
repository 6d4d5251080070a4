// internal/markup/lexer_test.go
package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lexAll drains the lexer into a slice, stopping at EOF or error.
func lexAll(t *testing.T, input string) []Token {
	t.Helper()
	l := NewLexer(input)
	var toks []Token
	for {
		tok, err := l.Next()
		require.NoError(t, err)
		if tok.Kind == TokenEOF {
			return toks
		}
		toks = append(toks, tok)
	}
}

func TestLexerTokenStream(t *testing.T) {
	toks := lexAll(t, `<div id="main" class="wide"><p>hello</p></div>`)

	require.Len(t, toks, 5)
	assert.Equal(t, TokenStartTag, toks[0].Kind)
	assert.Equal(t, Tag{Name: TagDiv}, toks[0].Tag)
	assert.Equal(t, []Attr{
		{Key: AttrKey{Name: AttrID}, Val: "main"},
		{Key: AttrKey{Name: AttrClass}, Val: "wide"},
	}, toks[0].Attrs)

	assert.Equal(t, TokenStartTag, toks[1].Kind)
	assert.Equal(t, Tag{Name: TagP}, toks[1].Tag)

	assert.Equal(t, Token{Kind: TokenText, Text: "hello"}, toks[2])
	assert.Equal(t, TokenEndTag, toks[3].Kind)
	assert.Equal(t, "p", toks[3].Text)
	assert.Equal(t, TokenEndTag, toks[4].Kind)
	assert.Equal(t, "div", toks[4].Text)
}

func TestLexerSelfClosingTag(t *testing.T) {
	toks := lexAll(t, `<meta content="utf-8" />`)

	require.Len(t, toks, 1)
	assert.Equal(t, TokenSelfClosingTag, toks[0].Kind)
	assert.Equal(t, Tag{Name: TagMeta}, toks[0].Tag)
	assert.Equal(t, []Attr{{Key: AttrKey{Name: AttrOther, Raw: "content"}, Val: "utf-8"}}, toks[0].Attrs)
}

func TestLexerComment(t *testing.T) {
	toks := lexAll(t, `<!--   a banner comment   -->`)

	require.Len(t, toks, 1)
	assert.Equal(t, Token{Kind: TokenComment, Text: "a banner comment"}, toks[0])
}

func TestLexerCollapsesTextWhitespace(t *testing.T) {
	toks := lexAll(t, "<p>one   two\n\t three </p>")

	require.Len(t, toks, 3)
	assert.Equal(t, "one two three", toks[1].Text)
}

func TestLexerAnonymousTagDefaultsToDiv(t *testing.T) {
	toks := lexAll(t, `<>content</>`)

	require.Len(t, toks, 3)
	assert.Equal(t, TokenStartTag, toks[0].Kind)
	assert.Equal(t, Tag{Name: TagDiv}, toks[0].Tag)
}

func TestLexerDuplicateAttributeOverwrites(t *testing.T) {
	toks := lexAll(t, `<a href="first" href="second">`)

	require.Len(t, toks, 1)
	assert.Equal(t, []Attr{{Key: AttrKey{Name: AttrHref}, Val: "second"}}, toks[0].Attrs)
}

func TestLexerUnknownTagBecomesOther(t *testing.T) {
	toks := lexAll(t, `<custom5>`)

	require.Len(t, toks, 1)
	assert.Equal(t, Tag{Name: TagOther, Raw: "custom5"}, toks[0].Tag)
}

func TestLexerErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		kind     ErrorKind
		expected string
	}{
		{"attribute missing equals", `<div id >`, ErrStructure, "'='"},
		{"attribute missing quote", `<div id=main>`, ErrStructure, `'"'`},
		{"unterminated attribute value", `<div id="main`, ErrStructure, `closing '"'`},
		{"malformed comment opener", `<!regular>`, ErrStructure, "'--'"},
		{"unterminated comment", `<!-- still open`, ErrStructure, "'-->'"},
		{"truncated tag", `<`, ErrStructure, "tag name, '!' or '/'"},
		{"unterminated end tag", `</div`, ErrStructure, "'>'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLexer(tt.input)
			var err error
			for err == nil {
				var tok Token
				tok, err = l.Next()
				if err == nil && tok.Kind == TokenEOF {
					t.Fatalf("lexer reached EOF without error for %q", tt.input)
				}
			}
			var serr *SyntaxError
			require.ErrorAs(t, err, &serr)
			assert.Equal(t, tt.kind, serr.Kind)
			assert.Equal(t, tt.expected, serr.Expected)
		})
	}
}

func TestTokenString(t *testing.T) {
	tests := []struct {
		tok  Token
		want string
	}{
		{Token{Kind: TokenStartTag, Tag: Tag{Name: TagDiv}, Attrs: []Attr{{Key: AttrKey{Name: AttrID}, Val: "x"}}}, `<div id="x">`},
		{Token{Kind: TokenSelfClosingTag, Tag: Tag{Name: TagMeta}}, `<meta />`},
		{Token{Kind: TokenEndTag, Text: "div"}, `</div>`},
		{Token{Kind: TokenComment, Text: "c"}, `<!-- c -->`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.tok.String())
	}
}

// internal/cssom/parser.go
// Recursive-descent stylesheet parser. Single forward pass over a byte
// cursor, one character of lookahead, no backtracking. Recursion depth
// tracks selector combinator nesting, so pathologically long combinator
// chains can exhaust the call stack.
package cssom

import (
	"fmt"
	"strconv"

	"github.com/xkilldash9x/quill/internal/markup"
)

// Parser holds the cursor state for one stylesheet parse.
type Parser struct {
	input   string
	pos     int
	recover bool
}

// Option configures a Parser.
type Option func(*Parser)

// WithRecovery makes malformed rules non-fatal: on a syntax error the
// parser skips to the next '}' and resumes with the following rule. The
// default is to abort on the first error.
func WithRecovery() Option {
	return func(p *Parser) { p.recover = true }
}

func NewParser(input string, opts ...Option) *Parser {
	p := &Parser{input: input}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse consumes the whole input and builds a StyleSheet.
func Parse(input string, opts ...Option) (*StyleSheet, error) {
	return NewParser(input, opts...).Parse()
}

func (p *Parser) Parse() (*StyleSheet, error) {
	sheet := &StyleSheet{}
	for {
		p.consumeWhitespace()
		if p.eof() {
			return sheet, nil
		}
		rule, err := p.parseRule()
		if err != nil {
			if p.recover {
				p.skipRule()
				continue
			}
			return nil, err
		}
		sheet.Rules = append(sheet.Rules, rule)
	}
}

// skipRule advances past the closing brace of the current rule.
func (p *Parser) skipRule() {
	for !p.eof() {
		if p.consumeChar() == '}' {
			return
		}
	}
}

func (p *Parser) parseRule() (Rule, error) {
	var rule Rule
	for {
		sel, err := p.parseSelector()
		if err != nil {
			return Rule{}, err
		}
		rule.Selectors = append(rule.Selectors, sel)

		p.consumeWhitespace()
		switch p.currentChar() {
		case ',':
			p.consumeChar()
		case '{':
			p.consumeChar()
			decls, err := p.parseDeclarations()
			if err != nil {
				return Rule{}, err
			}
			rule.Declarations = decls
			return rule, nil
		default:
			return Rule{}, structErr(p.pos, "',' or '{'", p.found())
		}
	}
}

// parseSelector parses one selector of a group: a compound selector
// optionally followed by a combinator. Combinators right-associate
// because the right operand recursively consumes the rest of the
// selector, so "a > b > c" nests as Child(a, Child(b, c)).
func (p *Parser) parseSelector() (Selector, error) {
	left, err := p.parseCompound()
	if err != nil {
		return Selector{}, err
	}

	p.consumeWhitespace()
	var kind SelectorKind
	switch p.currentChar() {
	case '>':
		kind = SelectorChild
	case '+':
		kind = SelectorAdjacent
	default:
		return left, nil
	}
	p.consumeChar()

	right, err := p.parseSelector()
	if err != nil {
		return Selector{}, err
	}
	return Selector{Kind: kind, Left: &left, Right: &right}, nil
}

// parseCompound parses a tag selector with any number of class and id
// constraints chained onto it. Whitespace between the parts is
// tolerated, so "div .box" compounds the same as "div.box".
func (p *Parser) parseCompound() (Selector, error) {
	p.consumeWhitespace()

	var sel *Selector
	if isValidIdentifierStart(p.currentChar()) {
		sel = &Selector{Kind: SelectorTag, Tag: markup.TagFrom(p.parseIdentifier())}
	}

	for {
		p.consumeWhitespace()
		switch p.currentChar() {
		case '.':
			p.consumeChar()
			sel = &Selector{Kind: SelectorClass, Name: p.parseIdentifier(), Left: sel}
		case '#':
			p.consumeChar()
			sel = &Selector{Kind: SelectorID, Name: p.parseIdentifier(), Left: sel}
		default:
			if sel == nil {
				return Selector{}, structErr(p.pos, "selector", p.found())
			}
			return *sel, nil
		}
	}
}

func (p *Parser) parseDeclarations() ([]Declaration, error) {
	var decls []Declaration
	for {
		p.consumeWhitespace()
		if p.currentChar() == '}' {
			p.consumeChar()
			return decls, nil
		}
		if p.eof() {
			return nil, structErr(p.pos, "'}'", p.found())
		}
		expanded, err := p.parseDeclaration()
		if err != nil {
			return nil, err
		}
		decls = append(decls, expanded...)
	}
}

// parseDeclaration parses "property: value;". Shorthand margin and
// padding expand in place into their four directional declarations, so
// the result slice usually holds one declaration but may hold four.
func (p *Parser) parseDeclaration() ([]Declaration, error) {
	name := p.parseIdentifier()
	if name == "" {
		return nil, lexErr(p.pos, "property name", p.found())
	}
	prop := PropertyFrom(name)

	p.consumeWhitespace()
	if p.currentChar() != ':' {
		return nil, structErr(p.pos, "':'", p.found())
	}
	p.consumeChar()
	p.consumeWhitespace()

	var decls []Declaration
	switch {
	case prop.isSpacing():
		lengths, err := p.parseLengths()
		if err != nil {
			return nil, err
		}
		if prop.isShorthand() {
			decls = expandShorthand(prop, lengths)
		} else {
			decls = []Declaration{{Property: prop, Value: Value{Kind: ValueLength, Length: lengths[0]}}}
		}
	case prop.Name == PropDisplay:
		decls = []Declaration{{Property: prop, Value: Value{Kind: ValueDisplay, Display: DisplayFrom(p.parseIdentifier())}}}
	case prop.Name == PropColor || prop.Name == PropBackgroundColor:
		v, err := p.parseColorOrKeyword()
		if err != nil {
			return nil, err
		}
		decls = []Declaration{{Property: prop, Value: v}}
	default:
		v, err := p.parseGenericValue()
		if err != nil {
			return nil, err
		}
		decls = []Declaration{{Property: prop, Value: v}}
	}

	p.consumeWhitespace()
	if p.currentChar() != ';' {
		return nil, structErr(p.pos, "';'", p.found())
	}
	p.consumeChar()
	return decls, nil
}

// parseLengths consumes one to four whitespace-separated length tokens.
// A bare identifier token is the auto keyword; a number takes the
// identifier immediately following it as its unit, absent or unknown
// units meaning pixels.
func (p *Parser) parseLengths() ([]Length, error) {
	var out []Length
	for {
		p.consumeWhitespace()
		ch := p.currentChar()
		switch {
		case ch == ';':
			if len(out) == 0 || len(out) > 4 {
				return nil, structErr(p.pos, "one to four length values", fmt.Sprintf("%d values", len(out)))
			}
			return out, nil
		case isDigit(ch) || ch == '.':
			n, err := p.parseNumber()
			if err != nil {
				return nil, err
			}
			out = append(out, Actual(n, UnitFrom(p.parseIdentifier())))
		case isValidIdentifierStart(ch):
			p.parseIdentifier()
			out = append(out, Auto())
		default:
			return nil, structErr(p.pos, "length or ';'", p.found())
		}
	}
}

func (p *Parser) parseNumber() (float64, error) {
	start := p.pos
	for !p.eof() && (isDigit(p.currentChar()) || p.currentChar() == '.') {
		p.pos++
	}
	n, err := strconv.ParseFloat(p.input[start:p.pos], 64)
	if err != nil {
		return 0, lexErr(start, "number", p.input[start:p.pos])
	}
	return n, nil
}

// parseColorOrKeyword parses a "#rrggbb" or "#rrggbbaa" hex color. A
// value not starting with '#' is preserved as a raw keyword instead.
func (p *Parser) parseColorOrKeyword() (Value, error) {
	if p.currentChar() != '#' {
		return p.parseGenericValue()
	}
	p.consumeChar()

	var channels [3]uint8
	for i := range channels {
		c, ok := p.hexPair()
		if !ok {
			return Value{}, lexErr(p.pos, "two hex digits", p.found())
		}
		channels[i] = c
	}
	// Alpha is optional and defaults to fully transparent.
	alpha, _ := p.hexPair()
	return Value{Kind: ValueColor, Color: Color{R: channels[0], G: channels[1], B: channels[2], A: alpha}}, nil
}

// hexPair consumes two hex digits if both are present, otherwise it
// consumes nothing.
func (p *Parser) hexPair() (uint8, bool) {
	if p.pos+2 > len(p.input) {
		return 0, false
	}
	v, err := strconv.ParseUint(p.input[p.pos:p.pos+2], 16, 8)
	if err != nil {
		return 0, false
	}
	p.pos += 2
	return uint8(v), true
}

// parseGenericValue dispatches on the first character: '#' parses as a
// color, a digit as a single length, anything else as a raw keyword.
func (p *Parser) parseGenericValue() (Value, error) {
	ch := p.currentChar()
	switch {
	case ch == '#':
		return p.parseColorOrKeyword()
	case isDigit(ch) || ch == '.':
		n, err := p.parseNumber()
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: ValueLength, Length: Actual(n, UnitFrom(p.parseIdentifier()))}, nil
	case isValidIdentifierStart(ch):
		return Keyword(p.parseIdentifier()), nil
	default:
		return Value{}, lexErr(p.pos, "value", p.found())
	}
}

var shorthandSides = map[PropertyName][4]PropertyName{
	PropMargin:  {PropMarginTop, PropMarginRight, PropMarginBottom, PropMarginLeft},
	PropPadding: {PropPaddingTop, PropPaddingRight, PropPaddingBottom, PropPaddingLeft},
}

// expandShorthand applies the standard 1/2/3/4-value side distribution
// and emits one declaration per side in top, right, bottom, left order.
func expandShorthand(prop Property, lengths []Length) []Declaration {
	var top, right, bottom, left Length
	switch len(lengths) {
	case 1:
		top, right, bottom, left = lengths[0], lengths[0], lengths[0], lengths[0]
	case 2:
		top, right, bottom, left = lengths[0], lengths[1], lengths[0], lengths[1]
	case 3:
		top, right, bottom, left = lengths[0], lengths[1], lengths[2], lengths[1]
	default:
		top, right, bottom, left = lengths[0], lengths[1], lengths[2], lengths[3]
	}
	sides := shorthandSides[prop.Name]
	values := [4]Length{top, right, bottom, left}
	decls := make([]Declaration, 0, 4)
	for i, side := range sides {
		decls = append(decls, Declaration{
			Property: Property{Name: side},
			Value:    Value{Kind: ValueLength, Length: values[i]},
		})
	}
	return decls
}

// --- Lexer-like helpers ---

func (p *Parser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *Parser) currentChar() byte {
	if p.eof() {
		return 0
	}
	return p.input[p.pos]
}

func (p *Parser) consumeChar() byte {
	ch := p.currentChar()
	if !p.eof() {
		p.pos++
	}
	return ch
}

func (p *Parser) consumeWhitespace() {
	for !p.eof() && isWhitespace(p.currentChar()) {
		p.pos++
	}
}

func (p *Parser) parseIdentifier() string {
	start := p.pos
	for !p.eof() && isValidIdentifierChar(p.currentChar()) {
		p.pos++
	}
	return p.input[start:p.pos]
}

// found describes the character at the cursor for error messages.
func (p *Parser) found() string {
	if p.eof() {
		return "end of input"
	}
	return strconv.QuoteRune(rune(p.input[p.pos]))
}

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isValidIdentifierStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isValidIdentifierChar(ch byte) bool {
	return isValidIdentifierStart(ch) || (ch >= '0' && ch <= '9') || ch == '-'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

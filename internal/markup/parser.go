// internal/markup/parser.go
package markup

// Parser assembles the token stream into a document tree. Construction is
// a single recursive descent: each element consumes tokens until an end
// tag closes it. Recursion depth is bounded only by input nesting.
type Parser struct {
	lex *Lexer
}

// Parse builds exactly one tree from the input. A stray end tag or
// exhausted input where a node was expected is a structural error.
func Parse(input string) (*Node, error) {
	p := &Parser{lex: NewLexer(input)}
	node, err := p.parseNode()
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, structErr(p.lex.pos, "document", "end of input")
	}
	if node.Type == endTagNode {
		return nil, structErr(p.lex.pos, "node", "end tag")
	}
	return node, nil
}

// ParseFragment builds a sequence of sibling trees until the input is
// exhausted, for documents without a single root.
func ParseFragment(input string) ([]*Node, error) {
	p := &Parser{lex: NewLexer(input)}
	var nodes []*Node
	for {
		node, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		if node == nil {
			return nodes, nil
		}
		if node.Type == endTagNode {
			return nil, structErr(p.lex.pos, "node", "end tag")
		}
		nodes = append(nodes, node)
	}
}

// parseNode returns the next node, the endTagNode sentinel when a subtree
// closes, or nil at end of input.
func (p *Parser) parseNode() (*Node, error) {
	tok, err := p.lex.Next()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case TokenEOF:
		return nil, nil
	case TokenText:
		return &Node{Type: TextNode, Data: tok.Text}, nil
	case TokenComment:
		return &Node{Type: CommentNode, Data: tok.Text}, nil
	case TokenEndTag:
		return &Node{Type: endTagNode}, nil
	case TokenSelfClosingTag:
		return NewElement(tok.Tag, tok.Attrs, nil), nil
	case TokenStartTag:
		el := &Element{Tag: tok.Tag}
		for _, a := range tok.Attrs {
			el.setAttr(a.Key, a.Val)
		}
		if el.Tag.Name == TagStyle {
			el.Children, err = p.parseStyleContent()
		} else {
			el.Children, err = p.parseChildren()
		}
		if err != nil {
			return nil, err
		}
		return &Node{Type: ElementNode, Element: el}, nil
	default:
		return nil, lexErr(p.lex.pos, "token", "unknown token")
	}
}

func (p *Parser) parseChildren() ([]*Node, error) {
	var children []*Node
	for {
		node, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		if node == nil {
			return nil, structErr(p.lex.pos, "end tag", "end of input")
		}
		if node.Type == endTagNode {
			return children, nil
		}
		children = append(children, node)
	}
}

// parseStyleContent keeps the raw text of a <style> element verbatim so
// the stylesheet parser sees exactly what the author wrote.
func (p *Parser) parseStyleContent() ([]*Node, error) {
	raw := p.lex.rawText()
	tok, err := p.lex.Next()
	if err != nil {
		return nil, err
	}
	if tok.Kind != TokenEndTag {
		return nil, structErr(p.lex.pos, "end tag", tok.String())
	}
	if raw == "" {
		return nil, nil
	}
	return []*Node{{Type: StyleTextNode, Data: raw}}, nil
}

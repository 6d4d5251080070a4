// internal/markup/node.go
package markup

import (
	"fmt"
	"strings"
)

// TagName is the closed set of element names the engine knows about.
// Anything else is carried through as TagOther with the raw name preserved.
type TagName int

const (
	TagOther TagName = iota
	TagHTML
	TagMain
	TagHead
	TagMeta
	TagBody
	TagTitle
	TagScript
	TagStyle
	TagArticle
	TagDiv
	TagP
	TagH1
	TagH2
	TagH3
	TagA
)

var tagNames = map[string]TagName{
	"html":    TagHTML,
	"main":    TagMain,
	"head":    TagHead,
	"meta":    TagMeta,
	"body":    TagBody,
	"title":   TagTitle,
	"script":  TagScript,
	"style":   TagStyle,
	"article": TagArticle,
	"div":     TagDiv,
	"p":       TagP,
	"h1":      TagH1,
	"h2":      TagH2,
	"h3":      TagH3,
	"a":       TagA,
}

var tagStrings = func() map[TagName]string {
	m := make(map[TagName]string, len(tagNames))
	for s, n := range tagNames {
		m[n] = s
	}
	return m
}()

// Tag identifies an element. Raw is set only when Name == TagOther.
// Tags compare with ==, so two <custom> elements share the same Tag value.
type Tag struct {
	Name TagName
	Raw  string
}

// TagFrom maps a lexed tag name onto the closed enumeration.
func TagFrom(name string) Tag {
	if n, ok := tagNames[name]; ok {
		return Tag{Name: n}
	}
	return Tag{Name: TagOther, Raw: name}
}

func (t Tag) String() string {
	if t.Name == TagOther {
		return t.Raw
	}
	return tagStrings[t.Name]
}

// AttrName is the closed set of attribute keys the engine cares about.
type AttrName int

const (
	AttrOther AttrName = iota
	AttrID
	AttrClass
	AttrHref
)

var attrNames = map[string]AttrName{
	"id":    AttrID,
	"class": AttrClass,
	"href":  AttrHref,
}

var attrStrings = func() map[AttrName]string {
	m := make(map[AttrName]string, len(attrNames))
	for s, n := range attrNames {
		m[n] = s
	}
	return m
}()

// AttrKey identifies an attribute. Raw is set only when Name == AttrOther.
type AttrKey struct {
	Name AttrName
	Raw  string
}

// AttrKeyFrom maps a lexed attribute key onto the enumeration.
func AttrKeyFrom(key string) AttrKey {
	if n, ok := attrNames[key]; ok {
		return AttrKey{Name: n}
	}
	return AttrKey{Name: AttrOther, Raw: key}
}

func (k AttrKey) String() string {
	if k.Name == AttrOther {
		return k.Raw
	}
	return attrStrings[k.Name]
}

// Attr is a single key="value" pair. Keys are unique per element; the
// slice preserves the order attributes appeared in the source.
type Attr struct {
	Key AttrKey
	Val string
}

// NodeType discriminates the Node union.
type NodeType int

const (
	TextNode NodeType = iota
	StyleTextNode
	ElementNode
	CommentNode
	// endTagNode is produced only while parsing, as the signal that a
	// subtree is complete. It never appears in a finished tree.
	endTagNode
)

// Node is one vertex of the document tree. Data carries the payload for
// text, stylesheet and comment nodes; Element is set only for elements.
type Node struct {
	Type    NodeType
	Data    string
	Element *Element
}

// Element is a named node with attributes and ordered children.
type Element struct {
	Tag      Tag
	Attrs    []Attr
	Children []*Node
}

// NewText builds a text node. Exposed for tests and tree construction.
func NewText(s string) *Node {
	return &Node{Type: TextNode, Data: s}
}

// NewComment builds a comment node.
func NewComment(s string) *Node {
	return &Node{Type: CommentNode, Data: s}
}

// NewElement builds an element node.
func NewElement(tag Tag, attrs []Attr, children []*Node) *Node {
	return &Node{Type: ElementNode, Element: &Element{Tag: tag, Attrs: attrs, Children: children}}
}

// Attr returns the value for key and whether the element carries it.
func (e *Element) Attr(key AttrKey) (string, bool) {
	for _, a := range e.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// ID returns the element's id attribute, or "" when absent.
func (e *Element) ID() string {
	v, _ := e.Attr(AttrKey{Name: AttrID})
	return v
}

// Classes returns the element's class attribute, or "" when absent.
func (e *Element) Classes() string {
	v, _ := e.Attr(AttrKey{Name: AttrClass})
	return v
}

// setAttr inserts or overwrites in place, keeping first-seen order.
func (e *Element) setAttr(key AttrKey, val string) {
	for i, a := range e.Attrs {
		if a.Key == key {
			e.Attrs[i].Val = val
			return
		}
	}
	e.Attrs = append(e.Attrs, Attr{Key: key, Val: val})
}

// ExtractStylesheet locates the first <style> element depth-first and
// returns its single child's raw text content verbatim. The boolean is
// false when the document carries no inline stylesheet.
func (n *Node) ExtractStylesheet() (string, bool) {
	el := n.findStyle()
	if el == nil || len(el.Children) == 0 {
		return "", false
	}
	child := el.Children[0]
	if child.Type != StyleTextNode {
		return "", false
	}
	return child.Data, true
}

func (n *Node) findStyle() *Element {
	if n.Type != ElementNode {
		return nil
	}
	if n.Element.Tag.Name == TagStyle {
		return n.Element
	}
	for _, child := range n.Element.Children {
		if el := child.findStyle(); el != nil {
			return el
		}
	}
	return nil
}

// String renders the subtree as indented markup, mainly for debugging.
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b, 0)
	return b.String()
}

func (n *Node) write(b *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)
	switch n.Type {
	case TextNode, StyleTextNode:
		fmt.Fprintf(b, "%s%s\n", indent, n.Data)
	case CommentNode:
		fmt.Fprintf(b, "%s<!-- %s -->\n", indent, n.Data)
	case ElementNode:
		b.WriteString(indent)
		b.WriteByte('<')
		b.WriteString(n.Element.Tag.String())
		for _, a := range n.Element.Attrs {
			fmt.Fprintf(b, " %s=%q", a.Key, a.Val)
		}
		if len(n.Element.Children) == 0 {
			b.WriteString(" />\n")
			return
		}
		b.WriteString(">\n")
		for _, child := range n.Element.Children {
			child.write(b, depth+1)
		}
		fmt.Fprintf(b, "%s</%s>\n", indent, n.Element.Tag)
	}
}

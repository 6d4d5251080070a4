// internal/rendertree/encode.go
package rendertree

import (
	"fmt"
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/xlab/treeprint"

	"github.com/xkilldash9x/quill/internal/markup"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// String renders the tree in a box-drawing layout for debugging.
func (r *RenderObject) String() string {
	tree := treeprint.NewWithRoot(r.label())
	r.addChildren(tree)
	return tree.String()
}

func (r *RenderObject) addChildren(branch treeprint.Tree) {
	for _, child := range r.Children {
		if len(child.Children) == 0 {
			branch.AddNode(child.label())
			continue
		}
		child.addChildren(branch.AddBranch(child.label()))
	}
}

func (r *RenderObject) label() string {
	switch r.Node.Type {
	case markup.ElementNode:
		var b strings.Builder
		b.WriteString(r.Node.Element.Tag.String())
		if id := r.Node.Element.ID(); id != "" {
			b.WriteString("#" + id)
		}
		if cls := r.Node.Element.Classes(); cls != "" {
			b.WriteString("." + cls)
		}
		if len(r.Styles) > 0 {
			b.WriteString(" {" + r.styleSummary() + "}")
		}
		return b.String()
	case markup.CommentNode:
		return "<!-- " + r.Node.Data + " -->"
	default:
		return fmt.Sprintf("%q", r.Node.Data)
	}
}

// styleSummary lists the resolved declarations in property order so the
// output is stable across runs.
func (r *RenderObject) styleSummary() string {
	parts := make([]string, 0, len(r.Styles))
	for prop, val := range r.Styles {
		parts = append(parts, prop.String()+": "+val.String())
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}

// nodeJSON is the wire shape of a render-tree node.
type nodeJSON struct {
	Kind       string            `json:"kind"`
	Tag        string            `json:"tag,omitempty"`
	Text       string            `json:"text,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Styles     map[string]string `json:"styles,omitempty"`
	Children   []*nodeJSON       `json:"children,omitempty"`
}

func (r *RenderObject) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.dto())
}

// EncodeJSON renders the tree as indented JSON.
func (r *RenderObject) EncodeJSON() ([]byte, error) {
	return json.MarshalIndent(r.dto(), "", "  ")
}

func (r *RenderObject) dto() *nodeJSON {
	n := &nodeJSON{}
	switch r.Node.Type {
	case markup.ElementNode:
		n.Kind = "element"
		n.Tag = r.Node.Element.Tag.String()
		if len(r.Node.Element.Attrs) > 0 {
			n.Attributes = make(map[string]string, len(r.Node.Element.Attrs))
			for _, a := range r.Node.Element.Attrs {
				n.Attributes[a.Key.String()] = a.Val
			}
		}
	case markup.CommentNode:
		n.Kind = "comment"
	case markup.StyleTextNode:
		n.Kind = "style-text"
	default:
		n.Kind = "text"
	}
	if n.Kind != "element" {
		n.Text = r.Node.Data
	}
	if len(r.Styles) > 0 {
		n.Styles = make(map[string]string, len(r.Styles))
		for prop, val := range r.Styles {
			n.Styles[prop.String()] = val.String()
		}
	}
	for _, child := range r.Children {
		n.Children = append(n.Children, child.dto())
	}
	return n
}

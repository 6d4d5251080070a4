// internal/rendertree/rendertree.go
// Render-tree construction: prunes non-visual and display:none subtrees
// out of the DOM and annotates every surviving node with its resolved
// style map. The output tree is the entire contract handed to a layout
// engine.
package rendertree

import (
	"github.com/xkilldash9x/quill/internal/cascade"
	"github.com/xkilldash9x/quill/internal/cssom"
	"github.com/xkilldash9x/quill/internal/markup"
)

// RenderObject is one node of the render tree: the retained DOM node,
// its resolved styles and the surviving children in document order.
type RenderObject struct {
	Node     *markup.Node
	Styles   cssom.StyleMap
	Children []*RenderObject
}

// Tags that never produce visual output. Their subtrees are dropped
// before any style resolution happens.
var nonVisualTags = map[markup.TagName]bool{
	markup.TagMeta:   true,
	markup.TagScript: true,
}

// Build converts a DOM subtree into a render tree. It returns nil when
// the node is excluded: elements with a non-visual tag, and elements
// whose cascade resolves display to none, disappear together with their
// whole subtree. Text and comment nodes always survive and carry an
// empty style map.
func Build(node *markup.Node, sheet *cssom.StyleSheet) *RenderObject {
	if node.Type != markup.ElementNode {
		return &RenderObject{Node: node, Styles: cssom.StyleMap{}}
	}

	el := node.Element
	if nonVisualTags[el.Tag.Name] {
		return nil
	}

	styles := cascade.Resolve(sheet, el)
	if styles.DisplayOf() == cssom.DisplayNone {
		return nil
	}

	obj := &RenderObject{Node: node, Styles: styles}
	for _, child := range el.Children {
		if c := Build(child, sheet); c != nil {
			obj.Children = append(obj.Children, c)
		}
	}
	return obj
}

// Display returns the node's resolved display mode, defaulting to block
// when no display declaration applied.
func (r *RenderObject) Display() cssom.Display {
	return r.Styles.DisplayOf()
}

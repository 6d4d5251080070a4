// internal/cascade/cascade.go
// Selector matching and cascade resolution. Pure functions over an
// immutable DOM element and stylesheet, safe for concurrent use.
package cascade

import (
	"github.com/xkilldash9x/quill/internal/cssom"
	"github.com/xkilldash9x/quill/internal/markup"
)

// Matches reports whether sel applies to el.
//
// Class and id matching compares the whole attribute string, with a
// missing attribute reading as "". A selector with an empty class or id
// name therefore never matches anything: parsing is lenient about ".{"
// but the resulting selector is inert.
//
// Child and Adjacent selectors are never evaluated structurally. The
// matcher has no parent or sibling context to test them against, so a
// combinator selector matches nothing; only its parse-tree shape is
// observable.
func Matches(sel *cssom.Selector, el *markup.Element) bool {
	switch sel.Kind {
	case cssom.SelectorTag:
		return el.Tag == sel.Tag
	case cssom.SelectorClass:
		if sel.Name == "" || el.Classes() != sel.Name {
			return false
		}
		return sel.Left == nil || Matches(sel.Left, el)
	case cssom.SelectorID:
		if sel.Name == "" || el.ID() != sel.Name {
			return false
		}
		return sel.Left == nil || Matches(sel.Left, el)
	default:
		return false
	}
}

// Resolve computes the property map that the cascade assigns to el.
//
// Rules apply in stylesheet order. Within one rule the selector group is
// scanned in order and the first match decides; the remaining selectors
// of that rule are not tested. Declarations of later matching rules
// overwrite earlier ones per property. There is no specificity
// weighting, order alone decides.
func Resolve(sheet *cssom.StyleSheet, el *markup.Element) cssom.StyleMap {
	styles := make(cssom.StyleMap)
	for _, rule := range sheet.Rules {
		for i := range rule.Selectors {
			if !Matches(&rule.Selectors[i], el) {
				continue
			}
			for _, decl := range rule.Declarations {
				styles[decl.Property] = decl.Value
			}
			break
		}
	}
	return styles
}

// internal/cascade/cascade_test.go
package cascade

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/quill/internal/cssom"
	"github.com/xkilldash9x/quill/internal/markup"
)

func element(t *testing.T, doc string) *markup.Element {
	t.Helper()
	node, err := markup.Parse(doc)
	require.NoError(t, err)
	require.Equal(t, markup.ElementNode, node.Type)
	return node.Element
}

func sheet(t *testing.T, css string) *cssom.StyleSheet {
	t.Helper()
	s, err := cssom.Parse(css)
	require.NoError(t, err)
	return s
}

func selector(t *testing.T, src string) *cssom.Selector {
	t.Helper()
	s := sheet(t, src+" { }")
	return &s.Rules[0].Selectors[0]
}

func TestMatches(t *testing.T) {
	divBox := element(t, `<div class="box"></div>`)
	spanBox := element(t, `<span class="box"></span>`)
	plain := element(t, `<div></div>`)
	main := element(t, `<div id="main"></div>`)

	tests := []struct {
		name     string
		selector string
		el       *markup.Element
		want     bool
	}{
		{"tag match", "div", divBox, true},
		{"tag mismatch", "p", divBox, false},
		{"bare class", ".box", divBox, true},
		{"bare class on other tag", ".box", spanBox, true},
		{"class mismatch", ".panel", divBox, false},
		{"class absent", ".box", plain, false},
		{"id match", "#main", main, true},
		{"id absent", "#main", plain, false},
		{"compound conjunction", "div.box", divBox, true},
		{"compound tag mismatch", "div.box", spanBox, false},
		{"compound class mismatch", "div.panel", divBox, false},
		{"compound id", "div#main", main, true},
		// Combinators shape the parse tree but are never evaluated
		// structurally, so they match nothing.
		{"child never matches", "div > div", divBox, false},
		{"adjacent never matches", "div + div", divBox, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(selector(t, tt.selector), tt.el))
		})
	}
}

func TestMatchesWholeClassString(t *testing.T) {
	// The class attribute is compared as a whole string, not word by word.
	el := element(t, `<div class="box wide"></div>`)

	assert.False(t, Matches(selector(t, ".box"), el))
	assert.True(t, Matches(&cssom.Selector{Kind: cssom.SelectorClass, Name: "box wide"}, el))
}

func TestMatchesEmptyNameNeverMatches(t *testing.T) {
	// An element without a class reads as class "", but a selector with
	// an empty name is inert rather than a universal match.
	plain := element(t, `<div></div>`)
	sel := &cssom.Selector{Kind: cssom.SelectorClass}

	assert.False(t, Matches(sel, plain))
}

func TestResolveLastRuleWins(t *testing.T) {
	s := sheet(t, `
		div { margin-top: 10px; display: block; }
		.box { margin-top: 2px; }
	`)
	el := element(t, `<div class="box"></div>`)

	styles := Resolve(s, el)
	assert.Equal(t, cssom.StyleMap{
		{Name: cssom.PropMarginTop}: {Kind: cssom.ValueLength, Length: cssom.Actual(2, cssom.Px)},
		{Name: cssom.PropDisplay}:   {Kind: cssom.ValueDisplay, Display: cssom.DisplayBlock},
	}, styles)
}

func TestResolveFirstMatchingSelectorDecides(t *testing.T) {
	// Both selectors of the group match; the rule still applies once.
	s := sheet(t, `div, .box { margin-top: 7px; }`)
	el := element(t, `<div class="box"></div>`)

	styles := Resolve(s, el)
	require.Len(t, styles, 1)
	assert.Equal(t, cssom.Actual(7, cssom.Px), styles[cssom.Property{Name: cssom.PropMarginTop}].Length)
}

func TestResolveNonMatchingRuleContributesNothing(t *testing.T) {
	s := sheet(t, `span { margin-top: 1px; }`)
	el := element(t, `<div></div>`)

	assert.Empty(t, Resolve(s, el))
}

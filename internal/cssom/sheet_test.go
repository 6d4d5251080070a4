// internal/cssom/sheet_test.go
package cssom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectorString(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"div", "div"},
		{".box", ".box"},
		{"div.box", "div.box"},
		{"div.table > p#box", "div.table > p#box"},
		{"h1 + h2", "h1 + h2"},
		{"a > b > c", "a > b > c"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			sel := firstSelector(t, tt.input)
			assert.Equal(t, tt.want, sel.String())
		})
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		val  Value
		want string
	}{
		{Value{Kind: ValueColor, Color: Color{R: 0xaa, G: 0x11, B: 0xff, A: 0x22}}, "#aa11ff22"},
		{Value{Kind: ValueLength, Length: Actual(10.5, Px)}, "10.5px"},
		{Value{Kind: ValueLength, Length: Actual(50, Pct)}, "50%"},
		{Value{Kind: ValueLength, Length: Auto()}, "auto"},
		{Value{Kind: ValueDisplay, Display: DisplayInlineBlock}, "inline-block"},
		{Keyword("wavy"), "wavy"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.val.String())
	}
}

// Serializing a parsed sheet and parsing it again must produce the same
// object model. Colors carry an explicit alpha so the text form is exact.
func TestSheetRoundTrip(t *testing.T) {
	input := `div.table > p#box, h1 {
	margin-top: 10.5px;
	padding-left: 2em;
	width: 600px;
	display: inline-block;
	color: #aa11ff22;
}`

	sheet, err := Parse(input)
	require.NoError(t, err)

	reparsed, err := Parse(sheet.String())
	require.NoError(t, err)

	if diff := cmp.Diff(sheet, reparsed); diff != "" {
		t.Errorf("round trip mismatch (-first +second):\n%s", diff)
	}
}

func TestStyleMapDisplayOf(t *testing.T) {
	displayProp := Property{Name: PropDisplay}

	tests := []struct {
		name   string
		styles StyleMap
		want   Display
	}{
		{"absent defaults to block", StyleMap{}, DisplayBlock},
		{"explicit none", StyleMap{displayProp: {Kind: ValueDisplay, Display: DisplayNone}}, DisplayNone},
		{"explicit flex", StyleMap{displayProp: {Kind: ValueDisplay, Display: DisplayFlex}}, DisplayFlex},
		{"non-display value reads as inline", StyleMap{displayProp: Keyword("visible")}, DisplayInline},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.styles.DisplayOf())
		})
	}
}

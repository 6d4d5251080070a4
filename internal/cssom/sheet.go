// internal/cssom/sheet.go
package cssom

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xkilldash9x/quill/internal/markup"
)

// StyleSheet is the parsed stylesheet object model: an ordered list of
// rules. It is immutable once built and safe for concurrent reads.
type StyleSheet struct {
	Rules []Rule
}

// Rule pairs a comma-separated selector group with its declarations.
// The rule applies to an element if any selector in the group matches.
type Rule struct {
	Selectors    []Selector
	Declarations []Declaration
}

// SelectorKind discriminates the Selector union.
type SelectorKind int

const (
	SelectorTag SelectorKind = iota
	SelectorClass
	SelectorID
	SelectorChild
	SelectorAdjacent
)

// Selector is a recursive sum type. For Class and ID, Left is the
// optional compound operand constraining the same element (div.box); for
// Child and Adjacent, Left and Right are the combinator operands, owned
// outright.
type Selector struct {
	Kind  SelectorKind
	Tag   markup.Tag
	Name  string
	Left  *Selector
	Right *Selector
}

func (s *Selector) String() string {
	switch s.Kind {
	case SelectorTag:
		return s.Tag.String()
	case SelectorClass:
		if s.Left != nil {
			return s.Left.String() + "." + s.Name
		}
		return "." + s.Name
	case SelectorID:
		if s.Left != nil {
			return s.Left.String() + "#" + s.Name
		}
		return "#" + s.Name
	case SelectorChild:
		return s.Left.String() + " > " + s.Right.String()
	case SelectorAdjacent:
		return s.Left.String() + " + " + s.Right.String()
	default:
		return ""
	}
}

// PropertyName is the closed set of declaration properties.
type PropertyName int

const (
	PropOther PropertyName = iota
	PropMargin
	PropMarginLeft
	PropMarginRight
	PropMarginTop
	PropMarginBottom
	PropPadding
	PropPaddingLeft
	PropPaddingRight
	PropPaddingTop
	PropPaddingBottom
	PropWidth
	PropHeight
	PropDisplay
	PropColor
	PropBackgroundColor
	PropBorderRadius
)

// The lookup is case-sensitive: "Margin" is an unknown property.
var propertyNames = map[string]PropertyName{
	"margin":           PropMargin,
	"margin-left":      PropMarginLeft,
	"margin-right":     PropMarginRight,
	"margin-top":       PropMarginTop,
	"margin-bottom":    PropMarginBottom,
	"padding":          PropPadding,
	"padding-left":     PropPaddingLeft,
	"padding-right":    PropPaddingRight,
	"padding-top":      PropPaddingTop,
	"padding-bottom":   PropPaddingBottom,
	"width":            PropWidth,
	"height":           PropHeight,
	"display":          PropDisplay,
	"color":            PropColor,
	"background-color": PropBackgroundColor,
	"border-radius":    PropBorderRadius,
}

var propertyStrings = func() map[PropertyName]string {
	m := make(map[PropertyName]string, len(propertyNames))
	for s, n := range propertyNames {
		m[n] = s
	}
	return m
}()

// Property identifies a declaration property. Raw is set only for
// PropOther. Property is comparable and used as the StyleMap key.
type Property struct {
	Name PropertyName
	Raw  string
}

// PropertyFrom resolves a declaration name through the fixed table.
func PropertyFrom(name string) Property {
	if n, ok := propertyNames[name]; ok {
		return Property{Name: n}
	}
	return Property{Name: PropOther, Raw: name}
}

func (p Property) String() string {
	if p.Name == PropOther {
		return p.Raw
	}
	return propertyStrings[p.Name]
}

// isSpacing reports whether the property takes the length-list grammar.
func (p Property) isSpacing() bool {
	return p.Name >= PropMargin && p.Name <= PropPaddingBottom
}

// isShorthand reports whether the property expands into four sides.
func (p Property) isShorthand() bool {
	return p.Name == PropMargin || p.Name == PropPadding
}

// Declaration is one property: value pair.
type Declaration struct {
	Property Property
	Value    Value
}

func (d Declaration) String() string {
	return fmt.Sprintf("%s: %s;", d.Property, d.Value)
}

// ValueKind discriminates the Value union.
type ValueKind int

const (
	ValueKeyword ValueKind = iota
	ValueColor
	ValueLength
	ValueDisplay
)

// Value is a declaration value. Exactly one of the payload fields is
// meaningful, selected by Kind; Keyword carries unrecognized raw text.
type Value struct {
	Kind    ValueKind
	Color   Color
	Length  Length
	Display Display
	Keyword string
}

func (v Value) String() string {
	switch v.Kind {
	case ValueColor:
		return v.Color.String()
	case ValueLength:
		return v.Length.String()
	case ValueDisplay:
		return v.Display.String()
	default:
		return v.Keyword
	}
}

// Keyword wraps raw text as a Value.
func Keyword(s string) Value {
	return Value{Kind: ValueKeyword, Keyword: s}
}

// Color is an RGBA color with 8-bit channels. Alpha defaults to 0 when
// the source omits it.
type Color struct {
	R, G, B, A uint8
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// Length is either the auto keyword or an amount with a unit.
type Length struct {
	Auto   bool
	Amount float64
	Unit   Unit
}

// Auto is the auto length keyword.
func Auto() Length {
	return Length{Auto: true}
}

// Actual builds a concrete length.
func Actual(amount float64, unit Unit) Length {
	return Length{Amount: amount, Unit: unit}
}

func (l Length) String() string {
	if l.Auto {
		return "auto"
	}
	return strconv.FormatFloat(l.Amount, 'f', -1, 64) + l.Unit.String()
}

// Unit is a length unit. Unrecognized unit names fall back to Px.
type Unit int

const (
	Px Unit = iota
	Em
	Ex
	Ch
	Rem
	Vh
	Vw
	Vmin
	Vmax
	Mm
	Q
	Cm
	In
	Pt
	Pc
	Pct
)

var unitNames = map[string]Unit{
	"px":   Px,
	"em":   Em,
	"ex":   Ex,
	"ch":   Ch,
	"rem":  Rem,
	"vh":   Vh,
	"vw":   Vw,
	"vmin": Vmin,
	"vmax": Vmax,
	"mm":   Mm,
	"q":    Q,
	"cm":   Cm,
	"in":   In,
	"pt":   Pt,
	"pc":   Pc,
	"%":    Pct,
}

var unitStrings = func() map[Unit]string {
	m := make(map[Unit]string, len(unitNames))
	for s, u := range unitNames {
		m[u] = s
	}
	return m
}()

// UnitFrom maps a unit identifier through the fixed table; anything
// unrecognized, including the empty string, defaults to pixels.
func UnitFrom(name string) Unit {
	if u, ok := unitNames[name]; ok {
		return u
	}
	return Px
}

func (u Unit) String() string {
	return unitStrings[u]
}

// Display is the closed set of display keywords.
type Display int

const (
	DisplayBlock Display = iota
	DisplayNone
	DisplayInline
	DisplayInlineBlock
	DisplayFlex
)

var displayNames = map[string]Display{
	"none":         DisplayNone,
	"block":        DisplayBlock,
	"inline":       DisplayInline,
	"inline-block": DisplayInlineBlock,
	"flex":         DisplayFlex,
}

var displayStrings = func() map[Display]string {
	m := make(map[Display]string, len(displayNames))
	for s, d := range displayNames {
		m[d] = s
	}
	return m
}()

// DisplayFrom maps a display keyword; anything unrecognized defaults to
// block.
func DisplayFrom(name string) Display {
	if d, ok := displayNames[name]; ok {
		return d
	}
	return DisplayBlock
}

func (d Display) String() string {
	return displayStrings[d]
}

// StyleMap holds the declarations that won the cascade for one element.
type StyleMap map[Property]Value

// DisplayOf returns the resolved display property, defaulting to block
// when the map has no display declaration, and inline when the
// declaration carries a non-display value.
func (m StyleMap) DisplayOf() Display {
	v, ok := m[Property{Name: PropDisplay}]
	if !ok {
		return DisplayBlock
	}
	if v.Kind != ValueDisplay {
		return DisplayInline
	}
	return v.Display
}

func (s *StyleSheet) String() string {
	parts := make([]string, 0, len(s.Rules))
	for _, r := range s.Rules {
		parts = append(parts, r.String())
	}
	return strings.Join(parts, "\n\n")
}

func (r Rule) String() string {
	var b strings.Builder
	for i, sel := range r.Selectors {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(sel.String())
	}
	b.WriteString(" {\n")
	for _, d := range r.Declarations {
		b.WriteString("\t")
		b.WriteString(d.String())
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}

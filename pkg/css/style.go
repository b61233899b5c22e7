package css

import (
	"sort"
	"strings"
)

// ComputedStyle is the resolved value of every property for one element.
// It is built by the cascade and read-only afterwards.
type ComputedStyle struct {
	props map[string]Value
}

func newComputedStyle() *ComputedStyle {
	return &ComputedStyle{props: make(map[string]Value)}
}

// NewComputedStyle builds a style from explicit values, expanding
// shorthands. It is meant for constructing fixtures and synthetic styles.
func NewComputedStyle(decls ...Declaration) *ComputedStyle {
	s := newComputedStyle()
	for _, d := range decls {
		for _, l := range Expand(d) {
			s.props[l.Name] = l.Value
		}
	}
	return s
}

func (s *ComputedStyle) Get(name string) (Value, bool) {
	if s == nil {
		return Value{}, false
	}
	v, ok := s.props[name]
	return v, ok
}

// Value returns the value of name, or the zero Value when unset.
func (s *ComputedStyle) Value(name string) Value {
	v, _ := s.Get(name)
	return v
}

// Lookup returns the value of name, then of fallback, then def.
func (s *ComputedStyle) Lookup(name, fallback string, def Value) Value {
	if v, ok := s.Get(name); ok {
		return v
	}
	if v, ok := s.Get(fallback); ok {
		return v
	}
	return def
}

// Keyword returns the keyword value of name, or "" for non-keywords.
func (s *ComputedStyle) Keyword(name string) string {
	v, ok := s.Get(name)
	if !ok || v.Kind != KindKeyword {
		return ""
	}
	return v.Keyword
}

// Color returns the color value of name, or transparent.
func (s *ComputedStyle) Color(name string) Color {
	v, ok := s.Get(name)
	if !ok || v.Kind != KindColor {
		return Transparent
	}
	return v.Color
}

// Len is the number of properties in the style.
func (s *ComputedStyle) Len() int {
	if s == nil {
		return 0
	}
	return len(s.props)
}

// Properties returns the property names in sorted order.
func (s *ComputedStyle) Properties() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.props))
	for name := range s.props {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Equal reports whether both styles hold the same values.
func (s *ComputedStyle) Equal(other *ComputedStyle) bool {
	if s.Len() != other.Len() {
		return false
	}
	for name, v := range s.props {
		if ov, ok := other.props[name]; !ok || ov != v {
			return false
		}
	}
	return true
}

func (s *ComputedStyle) String() string {
	var sb strings.Builder
	for i, name := range s.Properties() {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(name)
		sb.WriteString(": ")
		sb.WriteString(s.props[name].String())
	}
	return sb.String()
}

// DisplayType is the outer display of an element.
type DisplayType string

const (
	DisplayBlock       DisplayType = "block"
	DisplayInline      DisplayType = "inline"
	DisplayInlineBlock DisplayType = "inline-block"
	DisplayListItem    DisplayType = "list-item"
	DisplayNone        DisplayType = "none"
)

// Display returns the display type; unknown keywords read as inline.
func (s *ComputedStyle) Display() DisplayType {
	switch d := DisplayType(s.Keyword("display")); d {
	case DisplayBlock, DisplayInlineBlock, DisplayListItem, DisplayNone:
		return d
	}
	return DisplayInline
}

// IsBlockLevel reports whether the element generates a block box.
func (s *ComputedStyle) IsBlockLevel() bool {
	d := s.Display()
	return d == DisplayBlock || d == DisplayListItem
}

// Hidden reports visibility: hidden or collapse.
func (s *ComputedStyle) Hidden() bool {
	v := s.Keyword("visibility")
	return v == "hidden" || v == "collapse"
}

// inherited lists the properties a child takes from its parent when no
// rule sets them.
var inherited = map[string]bool{
	"color":       true,
	"font-size":   true,
	"font-family": true,
	"font-weight": true,
	"font-style":  true,
	"line-height": true,
	"text-align":  true,
	"visibility":  true,
}

// IsInherited reports whether name inherits by default.
func IsInherited(name string) bool {
	return inherited[name]
}

// initialValues holds the value of every property that has one when
// neither a rule nor inheritance provides it. Border colors are absent:
// they default to the element's color.
var initialValues = func() map[string]Value {
	m := map[string]Value{
		"display":          Keyword("inline"),
		"background-color": ColorValue(Transparent),
		"width":            Auto,
		"height":           Auto,
		"color":            ColorValue(Black),
		"font-size":        Px(DefaultFontSize),
		"visibility":       Keyword("visible"),
	}
	for _, edge := range edges {
		m["margin-"+edge] = Px(0)
		m["padding-"+edge] = Px(0)
		m["border-"+edge+"-width"] = Px(0)
		m["border-"+edge+"-style"] = Keyword("none")
	}
	return m
}()

// InitialValue returns the initial value of name.
func InitialValue(name string) (Value, bool) {
	v, ok := initialValues[name]
	return v, ok
}

// DefaultStyle is the style of the root's synthetic parent: every initial
// value and nothing else.
func DefaultStyle() *ComputedStyle {
	s := newComputedStyle()
	for name, v := range initialValues {
		s.props[name] = v
	}
	for _, edge := range edges {
		s.props["border-"+edge+"-color"] = ColorValue(Black)
	}
	return s
}

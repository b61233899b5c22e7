package css

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Unit is the unit of a length value.
type Unit int

const (
	UnitPx Unit = iota
	UnitPercent
	UnitEm
	UnitRem
)

func (u Unit) String() string {
	switch u {
	case UnitPx:
		return "px"
	case UnitPercent:
		return "%"
	case UnitEm:
		return "em"
	case UnitRem:
		return "rem"
	}
	return fmt.Sprintf("Unit(%d)", int(u))
}

// ParseUnit maps a unit suffix to a Unit. Unknown suffixes report false.
func ParseUnit(s string) (Unit, bool) {
	switch strings.ToLower(s) {
	case "px", "":
		return UnitPx, true
	case "%":
		return UnitPercent, true
	case "em":
		return UnitEm, true
	case "rem":
		return UnitRem, true
	}
	return UnitPx, false
}

// ValueKind tags the variant held by a Value.
type ValueKind int

const (
	KindKeyword ValueKind = iota
	KindLength
	KindColor
)

// Value is a specified or computed property value: a keyword, a length
// with its unit, or a color. Only the fields of the active Kind are set.
type Value struct {
	Kind    ValueKind
	Keyword string
	Number  float64
	Unit    Unit
	Color   Color
}

func Keyword(k string) Value {
	return Value{Kind: KindKeyword, Keyword: k}
}

func Length(n float64, u Unit) Value {
	return Value{Kind: KindLength, Number: n, Unit: u}
}

// Px is shorthand for a pixel length.
func Px(n float64) Value {
	return Length(n, UnitPx)
}

func ColorValue(c Color) Value {
	return Value{Kind: KindColor, Color: c}
}

// Auto is the "auto" keyword.
var Auto = Keyword("auto")

func (v Value) IsKeyword(k string) bool {
	return v.Kind == KindKeyword && v.Keyword == k
}

func (v Value) IsAuto() bool {
	return v.IsKeyword("auto")
}

func (v Value) IsLength() bool {
	return v.Kind == KindLength
}

func (v Value) String() string {
	switch v.Kind {
	case KindLength:
		return strconv.FormatFloat(v.Number, 'f', -1, 64) + v.Unit.String()
	case KindColor:
		return v.Color.String()
	}
	return v.Keyword
}

// Reference carries what relative lengths resolve against.
type Reference struct {
	ContainingWidth float64 // percentages
	RootFontSize    float64 // rem
	DefaultFontSize float64 // em
}

const (
	DefaultRootFontSize = 16.0
	DefaultFontSize     = 16.0
)

// NewReference returns a Reference with the default font size constants.
func NewReference(containingWidth float64) Reference {
	return Reference{
		ContainingWidth: containingWidth,
		RootFontSize:    DefaultRootFontSize,
		DefaultFontSize: DefaultFontSize,
	}
}

// WithWidth returns a copy of r resolving percentages against w.
func (r Reference) WithWidth(w float64) Reference {
	r.ContainingWidth = w
	return r
}

// ToPx converts v to absolute pixels. Keywords and colors have no length
// and convert to 0.
func (v Value) ToPx(ref Reference) float64 {
	if v.Kind != KindLength {
		return 0
	}
	switch v.Unit {
	case UnitPx:
		return v.Number
	case UnitPercent:
		return v.Number * ref.ContainingWidth / 100
	case UnitEm:
		return v.Number * ref.DefaultFontSize
	case UnitRem:
		return v.Number * ref.RootFontSize
	}
	return 0
}

// ToRem expresses v in root font size units.
func (v Value) ToRem(ref Reference) float64 {
	if ref.RootFontSize == 0 {
		return 0
	}
	return v.ToPx(ref) / ref.RootFontSize
}

// ToEm expresses v in default font size units.
func (v Value) ToEm(ref Reference) float64 {
	if ref.DefaultFontSize == 0 {
		return 0
	}
	return v.ToPx(ref) / ref.DefaultFontSize
}

// Color is a non-premultiplied RGBA color.
type Color struct {
	R, G, B, A uint8
}

var (
	Black       = Color{0, 0, 0, 255}
	White       = Color{255, 255, 255, 255}
	Transparent = Color{0, 0, 0, 0}
)

// Visible reports whether painting c has any effect.
func (c Color) Visible() bool {
	return c.A > 0
}

// NRGBA converts c for use with image/color consumers.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func (c Color) String() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

var namedColors = map[string]Color{
	"black":       Black,
	"white":       White,
	"transparent": Transparent,
	"red":         {255, 0, 0, 255},
	"green":       {0, 128, 0, 255},
	"blue":        {0, 0, 255, 255},
	"yellow":      {255, 255, 0, 255},
	"cyan":        {0, 255, 255, 255},
	"aqua":        {0, 255, 255, 255},
	"magenta":     {255, 0, 255, 255},
	"fuchsia":     {255, 0, 255, 255},
	"gray":        {128, 128, 128, 255},
	"grey":        {128, 128, 128, 255},
	"orange":      {255, 165, 0, 255},
	"purple":      {128, 0, 128, 255},
	"pink":        {255, 192, 203, 255},
	"brown":       {165, 42, 42, 255},
	"lime":        {0, 255, 0, 255},
	"navy":        {0, 0, 128, 255},
	"teal":        {0, 128, 128, 255},
	"olive":       {128, 128, 0, 255},
	"maroon":      {128, 0, 0, 255},
	"silver":      {192, 192, 192, 255},
}

// ParseColor parses a named color, #rgb, #rgba, #rrggbb, #rrggbbaa,
// rgb(r, g, b) or rgba(r, g, b, a).
func ParseColor(s string) (Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, true
	}
	if strings.HasPrefix(s, "#") {
		return parseHexColor(s[1:])
	}
	if strings.HasPrefix(s, "rgb(") || strings.HasPrefix(s, "rgba(") {
		return parseRGBColor(s)
	}
	return Color{}, false
}

func parseHexColor(hex string) (Color, bool) {
	for _, r := range hex {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return Color{}, false
		}
	}
	digit := func(i int) uint8 {
		v, _ := strconv.ParseUint(hex[i:i+1], 16, 8)
		return uint8(v)
	}
	pair := func(i int) uint8 {
		v, _ := strconv.ParseUint(hex[i:i+2], 16, 8)
		return uint8(v)
	}
	switch len(hex) {
	case 3:
		return Color{digit(0) * 17, digit(1) * 17, digit(2) * 17, 255}, true
	case 4:
		return Color{digit(0) * 17, digit(1) * 17, digit(2) * 17, digit(3) * 17}, true
	case 6:
		return Color{pair(0), pair(2), pair(4), 255}, true
	case 8:
		return Color{pair(0), pair(2), pair(4), pair(6)}, true
	}
	return Color{}, false
}

func parseRGBColor(s string) (Color, bool) {
	open := strings.IndexByte(s, '(')
	end := strings.LastIndexByte(s, ')')
	if open < 0 || end < open {
		return Color{}, false
	}
	parts := strings.FieldsFunc(s[open+1:end], func(r rune) bool {
		return r == ',' || r == ' ' || r == '/'
	})
	if len(parts) != 3 && len(parts) != 4 {
		return Color{}, false
	}
	c := Color{A: 255}
	channels := []*uint8{&c.R, &c.G, &c.B}
	for i, ch := range channels {
		v, ok := parseChannel(parts[i], 255)
		if !ok {
			return Color{}, false
		}
		*ch = v
	}
	if len(parts) == 4 {
		v, ok := parseChannel(parts[3], 1)
		if !ok {
			return Color{}, false
		}
		c.A = v
	}
	return c, true
}

// parseChannel scales a channel given either as a number in [0, max] or
// as a percentage to the 0-255 range.
func parseChannel(s string, max float64) (uint8, bool) {
	scale := 255 / max
	if strings.HasSuffix(s, "%") {
		s = strings.TrimSuffix(s, "%")
		max = 100
		scale = 255.0 / 100
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	f = clamp(f, 0, max) * scale
	return uint8(f + 0.5), true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

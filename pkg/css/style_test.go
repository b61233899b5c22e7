package css

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseColor(t *testing.T) {
	tests := map[string]Color{
		"red":                 {255, 0, 0, 255},
		"Blue":                {0, 0, 255, 255},
		"green":               {0, 128, 0, 255},
		"#fff":                White,
		"#0008":               {0, 0, 0, 136},
		"#336699":             {0x33, 0x66, 0x99, 255},
		"#33669980":           {0x33, 0x66, 0x99, 0x80},
		"rgb(10, 20, 30)":     {10, 20, 30, 255},
		"rgb(100%, 0%, 0%)":   {255, 0, 0, 255},
		"rgba(0, 0, 0, 0)":    Transparent,
		"rgba(300, -5, 0, 2)": {255, 0, 0, 255},
		"transparent":         Transparent,
	}
	for in, want := range tests {
		got, ok := ParseColor(in)
		if assert.True(t, ok, in) {
			assert.Equal(t, want, got, in)
		}
	}

	for _, bad := range []string{"", "#12", "#ggg", "rgb(1,2)", "notacolor"} {
		_, ok := ParseColor(bad)
		assert.False(t, ok, bad)
	}
}

func TestValue_ToPx(t *testing.T) {
	ref := NewReference(400)

	assert.Equal(t, 12.0, Px(12).ToPx(ref))
	assert.Equal(t, 100.0, Length(25, UnitPercent).ToPx(ref))
	assert.Equal(t, 32.0, Length(2, UnitEm).ToPx(ref))
	assert.Equal(t, 24.0, Length(1.5, UnitRem).ToPx(ref))
	assert.Equal(t, 0.0, Auto.ToPx(ref))
	assert.Equal(t, 0.0, ColorValue(Black).ToPx(ref))

	ref.RootFontSize = 10
	assert.Equal(t, 2.0, Px(20).ToRem(ref))
	assert.Equal(t, 1.25, Px(20).ToEm(ref))
	assert.Equal(t, 50.0, Length(50, UnitPercent).ToPx(ref.WithWidth(100)))
}

func TestComputedStyle_Accessors(t *testing.T) {
	s := NewComputedStyle(
		Declaration{"display", Keyword("block")},
		Declaration{"margin", Px(4)},
		Declaration{"color", ColorValue(White)},
	)

	assert.Equal(t, DisplayBlock, s.Display())
	assert.True(t, s.IsBlockLevel())
	assert.Equal(t, Px(4), s.Value("margin-left"))
	assert.Equal(t, White, s.Color("color"))
	assert.Equal(t, Transparent, s.Color("background-color"))
	assert.Equal(t, "", s.Keyword("color"))
	assert.Equal(t, 6, s.Len())

	assert.Equal(t, Px(4), s.Lookup("margin-top", "margin", Px(0)))
	assert.Equal(t, Px(4), s.Lookup("padding-top", "margin-top", Px(0)))
	assert.Equal(t, Auto, s.Lookup("width", "max-width", Auto))
}

func TestComputedStyle_Display(t *testing.T) {
	for kw, want := range map[string]DisplayType{
		"block":        DisplayBlock,
		"list-item":    DisplayListItem,
		"inline-block": DisplayInlineBlock,
		"none":         DisplayNone,
		"inline":       DisplayInline,
		"flex":         DisplayInline,
	} {
		s := NewComputedStyle(Declaration{"display", Keyword(kw)})
		assert.Equal(t, want, s.Display(), kw)
	}
	var nilStyle *ComputedStyle
	assert.Equal(t, DisplayInline, nilStyle.Display())
}

func TestComputedStyle_Equal(t *testing.T) {
	a := NewComputedStyle(Declaration{"width", Px(1)})
	b := NewComputedStyle(Declaration{"width", Px(1)})
	c := NewComputedStyle(Declaration{"width", Px(2)})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.Equal(t, "width: 1px", a.String())
}

func TestDefaultStyle(t *testing.T) {
	s := DefaultStyle()

	assert.Equal(t, DisplayInline, s.Display())
	assert.Equal(t, Auto, s.Value("width"))
	assert.Equal(t, Black, s.Color("color"))
	assert.Equal(t, Transparent, s.Color("background-color"))
	assert.Equal(t, Px(DefaultFontSize), s.Value("font-size"))
	for _, edge := range []string{"top", "right", "bottom", "left"} {
		assert.Equal(t, Px(0), s.Value("margin-"+edge))
		assert.Equal(t, Px(0), s.Value("border-"+edge+"-width"))
	}
}

package css

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxpaint/pkg/html"
)

func resolve(t *testing.T, sheet string, node *html.Node, parent *ComputedStyle) *ComputedStyle {
	t.Helper()
	return Resolve(node, ParseStylesheet(sheet).Rules, parent)
}

func TestResolve_ElementSelector(t *testing.T) {
	style := resolve(t, `div { color: red; }`, html.NewElement("div", nil), nil)
	assert.Equal(t, Color{255, 0, 0, 255}, style.Color("color"))
}

func TestResolve_SpecificityOverride(t *testing.T) {
	node := html.NewElement("div", map[string]string{"class": "highlight", "id": "header"})

	style := resolve(t, `
		#header { color: green; }
		.highlight { color: blue; }
		div { color: red; }
	`, node, nil)
	assert.Equal(t, Color{0, 128, 0, 255}, style.Color("color"), "id beats class beats tag regardless of order")

	style = resolve(t, `
		.highlight { color: blue; }
		div { color: red; }
	`, node, nil)
	assert.Equal(t, Color{0, 0, 255, 255}, style.Color("color"))
}

func TestResolve_SourceOrderBreaksTies(t *testing.T) {
	node := html.NewElement("p", map[string]string{"class": "a b"})
	style := resolve(t, `.a { width: 10px } .b { width: 20px }`, node, nil)
	assert.Equal(t, Px(20), style.Value("width"))

	style = resolve(t, `.b { width: 20px } .a { width: 10px }`, node, nil)
	assert.Equal(t, Px(10), style.Value("width"))
}

func TestResolve_LastDeclarationInRuleWins(t *testing.T) {
	style := resolve(t, `p { margin: 5px; margin-left: 1px }`, html.NewElement("p", nil), nil)
	assert.Equal(t, Px(1), style.Value("margin-left"))
	assert.Equal(t, Px(5), style.Value("margin-right"))

	style = resolve(t, `p { margin-left: 1px; margin: 5px }`, html.NewElement("p", nil), nil)
	assert.Equal(t, Px(5), style.Value("margin-left"))
}

func TestResolve_InlineStyleWins(t *testing.T) {
	node := html.NewElement("div", map[string]string{"id": "x", "style": "width: 42px"})
	style := resolve(t, `#x { width: 10px; height: 5px }`, node, nil)

	assert.Equal(t, Px(42), style.Value("width"))
	assert.Equal(t, Px(5), style.Value("height"))
}

func TestResolve_InitialValues(t *testing.T) {
	style := resolve(t, ``, html.NewElement("span", nil), nil)

	assert.Equal(t, DisplayInline, style.Display())
	assert.Equal(t, Auto, style.Value("width"))
	assert.Equal(t, Auto, style.Value("height"))
	assert.Equal(t, Transparent, style.Color("background-color"))
	assert.Equal(t, Px(0), style.Value("padding-top"))
	assert.Equal(t, Px(0), style.Value("border-left-width"))
	assert.Equal(t, Black, style.Color("color"))
	assert.Equal(t, Black, style.Color("border-top-color"))
}

func TestResolve_UserAgentDefaults(t *testing.T) {
	assert.Equal(t, DisplayBlock, resolve(t, ``, html.NewElement("div", nil), nil).Display())
	assert.Equal(t, DisplayListItem, resolve(t, ``, html.NewElement("li", nil), nil).Display())
	assert.Equal(t, DisplayNone, resolve(t, ``, html.NewElement("head", nil), nil).Display())
	assert.Equal(t, DisplayInline, resolve(t, ``, html.NewElement("em", nil), nil).Display())

	// Author rules override the defaults, even with lower specificity.
	style := resolve(t, `* { display: inline }`, html.NewElement("div", nil), nil)
	assert.Equal(t, DisplayInline, style.Display())
}

func TestResolve_Inheritance(t *testing.T) {
	parent := resolve(t, `div { color: red; font-size: 20px; width: 100px; visibility: hidden }`,
		html.NewElement("div", nil), nil)
	child := resolve(t, `p { font-size: 12px }`, html.NewElement("p", nil), parent)

	assert.Equal(t, Color{255, 0, 0, 255}, child.Color("color"))
	assert.Equal(t, Px(12), child.Value("font-size"))
	assert.Equal(t, Auto, child.Value("width"), "width is not inherited")
	assert.True(t, child.Hidden())
	assert.Equal(t, Color{255, 0, 0, 255}, child.Color("border-bottom-color"), "border color follows color")
}

func TestResolve_InheritAndInitialKeywords(t *testing.T) {
	parent := NewComputedStyle(
		Declaration{"width", Px(300)},
		Declaration{"color", ColorValue(White)},
	)
	child := resolve(t, `p { width: inherit; color: initial; padding-left: inherit }`,
		html.NewElement("p", nil), parent)

	assert.Equal(t, Px(300), child.Value("width"))
	assert.Equal(t, Black, child.Color("color"))
	assert.Equal(t, Px(0), child.Value("padding-left"), "parent without the property yields the initial value")
}

func TestResolve_BorderColor(t *testing.T) {
	style := resolve(t, `p { color: blue; border-top: 1px solid; border-left: 2px solid red }`,
		html.NewElement("p", nil), nil)
	assert.Equal(t, Color{0, 0, 255, 255}, style.Color("border-top-color"))
	assert.Equal(t, Color{255, 0, 0, 255}, style.Color("border-left-color"))
}

func TestResolve_Idempotent(t *testing.T) {
	rules := ParseStylesheet(`div { margin: 1px 2px } .x { color: red } #y { width: 5% }`).Rules
	node := html.NewElement("div", map[string]string{"class": "x", "id": "y"})

	first := Resolve(node, rules, nil)
	second := Resolve(node, rules, nil)
	assert.True(t, first.Equal(second))
	require.Len(t, rules, 3, "rules are not modified")
}

func TestStyleTree(t *testing.T) {
	text := html.NewText("hello")
	p := html.NewElement("p", map[string]string{"class": "c"}, text)
	root := html.NewElement("html", nil,
		html.NewElement("body", nil, p, html.NewComment("note")))

	styles := StyleTree(root, ParseStylesheet(`body { color: red } .c { width: 50px }`).Rules)

	assert.Len(t, styles, 3, "only elements get styles")
	assert.NotContains(t, styles, text)
	assert.Equal(t, Px(50), styles[p].Value("width"))
	assert.Equal(t, Color{255, 0, 0, 255}, styles[p].Color("color"))
	assert.Equal(t, DisplayBlock, styles[root].Display())

	assert.Empty(t, StyleTree(nil, nil))
}

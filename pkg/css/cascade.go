package css

import (
	"boxpaint/pkg/html"
)

// userAgentCSS is the built-in stylesheet. It only fills properties the
// author rules leave unset.
const userAgentCSS = `
html, body, div, p, section, article, header, footer, nav, main, aside,
h1, h2, h3, h4, h5, h6, ul, ol, dl, dt, dd, blockquote, pre, form,
fieldset, figure, figcaption, address, hr, table, center { display: block; }
li { display: list-item; }
head, style, script, title, meta, link, template, noscript { display: none; }
`

var userAgentRules = ParseStylesheet(userAgentCSS).Rules

// UserAgentRules returns the built-in rules.
func UserAgentRules() []Rule {
	return append([]Rule(nil), userAgentRules...)
}

// Resolve computes the style of node from the author rules and the
// parent's computed style. A nil parent stands for DefaultStyle.
//
// Inline style declarations come first, then matching rules by descending
// specificity and source order; within a rule the last declaration counts.
// The first value written for a property wins.
func Resolve(node *html.Node, rules []Rule, parent *ComputedStyle) *ComputedStyle {
	if parent == nil {
		parent = DefaultStyle()
	}
	style := newComputedStyle()
	set := func(decls []Declaration) {
		for i := len(decls) - 1; i >= 0; i-- {
			for _, d := range Expand(decls[i]) {
				if _, ok := style.props[d.Name]; !ok {
					style.props[d.Name] = d.Value
				}
			}
		}
	}

	// Inline styles have highest precedence
	if attr, ok := node.GetAttribute("style"); ok {
		set(ParseInlineStyle(attr))
	}
	for _, rule := range MatchingRules(node, rules) {
		set(rule.Declarations)
	}
	// User agent defaults only where authors are silent
	for _, rule := range MatchingRules(node, userAgentRules) {
		set(rule.Declarations)
	}

	// Explicit keywords
	for name, v := range style.props {
		switch {
		case v.IsKeyword("inherit"):
			if pv, ok := parent.Get(name); ok {
				style.props[name] = pv
			} else if iv, ok := initialValues[name]; ok {
				style.props[name] = iv
			} else {
				delete(style.props, name)
			}
		case v.IsKeyword("initial"), v.IsKeyword("unset") && !inherited[name]:
			if iv, ok := initialValues[name]; ok {
				style.props[name] = iv
			} else {
				delete(style.props, name)
			}
		case v.IsKeyword("unset"):
			delete(style.props, name)
		}
	}

	for name := range inherited {
		if _, ok := style.props[name]; ok {
			continue
		}
		if pv, ok := parent.Get(name); ok {
			style.props[name] = pv
		}
	}
	for name, v := range initialValues {
		if _, ok := style.props[name]; !ok {
			style.props[name] = v
		}
	}

	// Border colors follow the element's color.
	color := style.props["color"]
	for _, edge := range edges {
		name := "border-" + edge + "-color"
		v, ok := style.props[name]
		if !ok || v.IsKeyword("currentcolor") || v.Kind != KindColor {
			style.props[name] = color
		}
	}
	return style
}

// StyleTree resolves the style of every element under root exactly once,
// parents before children. Text and comment nodes get no entry.
func StyleTree(root *html.Node, rules []Rule) map[*html.Node]*ComputedStyle {
	styles := make(map[*html.Node]*ComputedStyle)
	if root == nil {
		return styles
	}
	var visit func(n *html.Node, parent *ComputedStyle)
	visit = func(n *html.Node, parent *ComputedStyle) {
		if n.Type != html.ElementNode {
			return
		}
		style := Resolve(n, rules, parent)
		styles[n] = style
		for _, child := range n.Children {
			visit(child, style)
		}
	}
	visit(root, nil)
	return styles
}

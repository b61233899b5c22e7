package css

import (
	"boxpaint/pkg/html"
)

// Matches reports whether an element node satisfies the selector. Text and
// comment nodes never match, and neither does the empty selector.
func Matches(node *html.Node, sel SimpleSelector) bool {
	if node == nil || node.Type != html.ElementNode {
		return false
	}
	if sel.IsEmpty() {
		return false
	}

	// Match element
	if sel.Tag != "" && node.TagName != sel.Tag {
		return false
	}

	// Match ID
	if sel.ID != "" {
		if id, ok := node.ID(); !ok || id != sel.ID {
			return false
		}
	}

	// Match classes (all must be present)
	if len(sel.Classes) > 0 {
		classes := node.Classes()
		for _, c := range sel.Classes {
			if _, ok := classes[c]; !ok {
				return false
			}
		}
	}
	return true
}

// MatchingRules returns the rules whose selector matches node, highest
// priority first.
func MatchingRules(node *html.Node, rules []Rule) []Rule {
	matched := make([]Rule, 0)
	for _, rule := range rules {
		if Matches(node, rule.Selector) {
			matched = append(matched, rule)
		}
	}
	SortByPriority(matched)
	return matched
}

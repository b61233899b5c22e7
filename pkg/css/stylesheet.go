package css

import (
	"fmt"
	"sort"
	"strings"
)

// SimpleSelector is a tag/id/class selector without combinators.
// Absent fields are not compared when matching.
type SimpleSelector struct {
	Tag       string
	ID        string
	Classes   []string
	Universal bool // "*" with nothing else
}

// Specificity is (id count, class count, tag count), compared lexicographically.
type Specificity [3]int

// Less reports whether s ranks below other.
func (s Specificity) Less(other Specificity) bool {
	for i := range s {
		if s[i] != other[i] {
			return s[i] < other[i]
		}
	}
	return false
}

func (s Specificity) String() string {
	return fmt.Sprintf("(%d,%d,%d)", s[0], s[1], s[2])
}

func (sel SimpleSelector) Specificity() Specificity {
	var spec Specificity
	if sel.ID != "" {
		spec[0] = 1
	}
	spec[1] = len(sel.Classes)
	if sel.Tag != "" {
		spec[2] = 1
	}
	return spec
}

// IsEmpty reports whether sel is the non-matching sentinel: no field set
// and not universal.
func (sel SimpleSelector) IsEmpty() bool {
	return sel.Tag == "" && sel.ID == "" && len(sel.Classes) == 0 && !sel.Universal
}

func (sel SimpleSelector) String() string {
	var sb strings.Builder
	if sel.Tag != "" {
		sb.WriteString(sel.Tag)
	} else if sel.Universal {
		sb.WriteByte('*')
	}
	if sel.ID != "" {
		sb.WriteByte('#')
		sb.WriteString(sel.ID)
	}
	for _, c := range sel.Classes {
		sb.WriteByte('.')
		sb.WriteString(c)
	}
	return sb.String()
}

// Declaration is one property: value pair.
type Declaration struct {
	Name  string
	Value Value
}

func (d Declaration) String() string {
	return d.Name + ": " + d.Value.String()
}

// Rule is a selector plus its declarations in source order. SourceOrder is
// the position of the originating rule set in the stylesheet; the rules
// produced from one selector list share it.
type Rule struct {
	Selector     SimpleSelector
	Declarations []Declaration
	SourceOrder  int
}

// Declaration returns the last declaration for name in the rule.
func (r Rule) Declaration(name string) (Value, bool) {
	for i := len(r.Declarations) - 1; i >= 0; i-- {
		if r.Declarations[i].Name == name {
			return r.Declarations[i].Value, true
		}
	}
	return Value{}, false
}

// Stylesheet represents a parsed CSS stylesheet
type Stylesheet struct {
	Rules    []Rule
	Warnings []string
}

// next is the source order the next appended rule set receives.
func (s *Stylesheet) next() int {
	if len(s.Rules) == 0 {
		return 0
	}
	return s.Rules[len(s.Rules)-1].SourceOrder + 1
}

// Concat joins stylesheets in order, renumbering source order so later
// sheets rank after earlier ones.
func Concat(sheets ...*Stylesheet) *Stylesheet {
	out := &Stylesheet{Rules: make([]Rule, 0)}
	for _, sheet := range sheets {
		if sheet == nil {
			continue
		}
		base := out.next()
		for _, r := range sheet.Rules {
			r.SourceOrder += base
			out.Rules = append(out.Rules, r)
		}
		out.Warnings = append(out.Warnings, sheet.Warnings...)
	}
	return out
}

// RulesBySelector returns the rules whose selector prints as sel.
func (s *Stylesheet) RulesBySelector(sel string) []Rule {
	var rules []Rule
	for _, r := range s.Rules {
		if r.Selector.String() == sel {
			rules = append(rules, r)
		}
	}
	return rules
}

// byPriority orders matched rules from highest to lowest priority:
// specificity descending, then source order descending.
type byPriority []Rule

func (p byPriority) Len() int      { return len(p) }
func (p byPriority) Swap(i, j int) { p[i], p[j] = p[j], p[i] }
func (p byPriority) Less(i, j int) bool {
	si, sj := p[i].Selector.Specificity(), p[j].Selector.Specificity()
	if si != sj {
		return sj.Less(si)
	}
	return p[i].SourceOrder > p[j].SourceOrder
}

// SortByPriority sorts rules so the winning rule comes first.
func SortByPriority(rules []Rule) {
	sort.Stable(byPriority(rules))
}

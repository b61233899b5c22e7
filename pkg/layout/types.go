package layout

import (
	"fmt"
	"strings"

	"github.com/xlab/treeprint"

	"boxpaint/pkg/css"
	"boxpaint/pkg/html"
)

// Rect represents a rectangular region. Origin is top-left, y grows downward.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// ExpandedBy grows r outward by the edge sizes.
func (r Rect) ExpandedBy(e EdgeSizes) Rect {
	return Rect{
		X:      r.X - e.Left,
		Y:      r.Y - e.Top,
		Width:  r.Width + e.Left + e.Right,
		Height: r.Height + e.Top + e.Bottom,
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g %gx%g)", r.X, r.Y, r.Width, r.Height)
}

// EdgeSizes holds the four sides of a margin, border or padding.
type EdgeSizes struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

func (e EdgeSizes) Horizontal() float64 { return e.Left + e.Right }
func (e EdgeSizes) Vertical() float64   { return e.Top + e.Bottom }

// IsZero reports whether every side is zero.
func (e EdgeSizes) IsZero() bool {
	return e == EdgeSizes{}
}

// Dimensions is the CSS box model of one box.
type Dimensions struct {
	Content Rect
	Padding EdgeSizes
	Border  EdgeSizes
	Margin  EdgeSizes
}

func (d Dimensions) PaddingBox() Rect {
	return d.Content.ExpandedBy(d.Padding)
}

func (d Dimensions) BorderBox() Rect {
	return d.PaddingBox().ExpandedBy(d.Border)
}

func (d Dimensions) MarginBox() Rect {
	return d.BorderBox().ExpandedBy(d.Margin)
}

// BoxType distinguishes element boxes from the anonymous wrappers around
// runs of inline content.
type BoxType int

const (
	BlockBox BoxType = iota
	AnonymousBox
)

func (t BoxType) String() string {
	switch t {
	case BlockBox:
		return "Block"
	case AnonymousBox:
		return "Anonymous"
	}
	return fmt.Sprintf("BoxType(%d)", int(t))
}

// Box is a node of the layout tree. Anonymous boxes have neither Node nor
// Style.
type Box struct {
	Type       BoxType
	Dimensions Dimensions
	Node       *html.Node
	Style      *css.ComputedStyle
	Children   []*Box
}

func newBlockBox(node *html.Node, style *css.ComputedStyle) *Box {
	return &Box{Type: BlockBox, Node: node, Style: style}
}

func newAnonymousBox() *Box {
	return &Box{Type: AnonymousBox}
}

// Walk visits b and its descendants in pre-order.
func (b *Box) Walk(fn func(*Box)) {
	fn(b)
	for _, c := range b.Children {
		c.Walk(fn)
	}
}

// Count returns the number of boxes in the subtree.
func (b *Box) Count() int {
	n := 0
	b.Walk(func(*Box) { n++ })
	return n
}

// Label describes the box for tree dumps.
func (b *Box) Label() string {
	var sb strings.Builder
	sb.WriteString(b.Type.String())
	if b.Node != nil {
		sb.WriteString(" <")
		sb.WriteString(b.Node.TagName)
		if id, ok := b.Node.ID(); ok {
			sb.WriteString("#" + id)
		}
		if class, ok := b.Node.GetAttribute("class"); ok {
			for _, c := range strings.Fields(class) {
				sb.WriteString("." + c)
			}
		}
		sb.WriteString(">")
	}
	sb.WriteString(" ")
	sb.WriteString(b.Dimensions.Content.String())
	return sb.String()
}

// Dump renders the layout tree with content rects.
func (b *Box) Dump() string {
	tree := treeprint.NewWithRoot(b.Label())
	for _, c := range b.Children {
		dumpBox(tree, c)
	}
	return tree.String()
}

func dumpBox(branch treeprint.Tree, b *Box) {
	if len(b.Children) == 0 {
		branch.AddNode(b.Label())
		return
	}
	sub := branch.AddBranch(b.Label())
	for _, c := range b.Children {
		dumpBox(sub, c)
	}
}

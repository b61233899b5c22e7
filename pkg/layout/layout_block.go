package layout

import (
	"math"

	"go.uber.org/zap"

	"boxpaint/pkg/css"
)

// layoutBlock lays out box and its subtree against cb and returns the
// height of its margin box, which the caller adds to its running content
// height.
func (le *LayoutEngine) layoutBlock(box *Box, cb ContainingBlock) float64 {
	if box.Type == AnonymousBox {
		return le.layoutAnonymous(box, cb)
	}

	// Width depends on the parent; height depends on the children.
	le.calculateBlockWidth(box, cb)
	le.calculateBlockPosition(box, cb)
	le.layoutBlockChildren(box)
	le.calculateBlockHeight(box)

	return box.Dimensions.MarginBox().Height
}

// layoutAnonymous gives an anonymous box the full containing width and
// zero edges.
func (le *LayoutEngine) layoutAnonymous(box *Box, cb ContainingBlock) float64 {
	d := &box.Dimensions
	*d = Dimensions{}
	d.Content.X = cb.X
	d.Content.Y = cb.Y + cb.Height
	d.Content.Width = math.Max(cb.Width, 0)
	le.layoutBlockChildren(box)
	return d.Content.Height
}

// calculateBlockWidth resolves width, horizontal margins, borders and
// paddings. When the sum does not match the containing width the slack is
// absorbed by, in order of preference, an auto width, the auto margins, or
// the right margin.
func (le *LayoutEngine) calculateBlockWidth(box *Box, cb ContainingBlock) {
	style := box.Style
	ref := le.ref.WithWidth(cb.Width)

	width := lookup(style, "width", css.Auto)
	widthAuto := !width.IsLength()

	marginLeft := lookup(style, "margin-left", css.Px(0))
	marginRight := lookup(style, "margin-right", css.Px(0))
	mlAuto, mrAuto := marginLeft.IsAuto(), marginRight.IsAuto()

	w := 0.0
	if !widthAuto {
		w = math.Max(width.ToPx(ref), 0)
	}
	ml := marginLeft.ToPx(ref)
	mr := marginRight.ToPx(ref)
	bl := lookup(style, "border-left-width", css.Px(0)).ToPx(ref)
	br := lookup(style, "border-right-width", css.Px(0)).ToPx(ref)
	pl := lookup(style, "padding-left", css.Px(0)).ToPx(ref)
	pr := lookup(style, "padding-right", css.Px(0)).ToPx(ref)

	total := ml + mr + bl + br + pl + pr + w

	// If width is not auto and the total is wider than the container,
	// treat auto margins as 0.
	if !widthAuto && total > cb.Width {
		mlAuto, mrAuto = false, false
	}

	underflow := cb.Width - total

	switch {
	case !widthAuto && !mlAuto && !mrAuto:
		// Over-constrained: the right margin takes the difference.
		mr += underflow
	case !widthAuto && !mlAuto && mrAuto:
		mr = underflow
	case !widthAuto && mlAuto && !mrAuto:
		ml = underflow
	case !widthAuto && mlAuto && mrAuto:
		ml = underflow / 2
		mr = underflow / 2
	default:
		// Auto width: auto margins become 0 and the width fills the rest.
		if underflow >= 0 {
			w = underflow
		} else {
			// Width can't be negative; shrink the right margin instead.
			w = 0
			mr += underflow
		}
	}

	d := &box.Dimensions
	d.Content.Width = w
	d.Margin.Left, d.Margin.Right = ml, mr
	d.Border.Left, d.Border.Right = bl, br
	d.Padding.Left, d.Padding.Right = pl, pr
}

// calculateBlockPosition resolves the vertical edges and places the
// content box below the siblings already laid out in cb.
func (le *LayoutEngine) calculateBlockPosition(box *Box, cb ContainingBlock) {
	style := box.Style
	ref := le.ref.WithWidth(cb.Width)
	d := &box.Dimensions

	// Vertical percentages resolve against the containing width as well.
	d.Margin.Top = lookup(style, "margin-top", css.Px(0)).ToPx(ref)
	d.Margin.Bottom = lookup(style, "margin-bottom", css.Px(0)).ToPx(ref)
	d.Border.Top = lookup(style, "border-top-width", css.Px(0)).ToPx(ref)
	d.Border.Bottom = lookup(style, "border-bottom-width", css.Px(0)).ToPx(ref)
	d.Padding.Top = lookup(style, "padding-top", css.Px(0)).ToPx(ref)
	d.Padding.Bottom = lookup(style, "padding-bottom", css.Px(0)).ToPx(ref)

	d.Content.X = cb.X + d.Margin.Left + d.Border.Left + d.Padding.Left
	d.Content.Y = cb.Y + cb.Height + d.Margin.Top + d.Border.Top + d.Padding.Top
}

// layoutBlockChildren stacks the children vertically inside the content
// box. The content height becomes the sum of their margin box heights.
func (le *LayoutEngine) layoutBlockChildren(box *Box) {
	inner := box.containingBlock()
	for _, child := range box.Children {
		inner.Height += le.layoutBlock(child, inner)
	}
	box.Dimensions.Content.Height = inner.Height
}

// calculateBlockHeight applies an explicit height. Percentage heights are
// treated as auto.
func (le *LayoutEngine) calculateBlockHeight(box *Box) {
	height, ok := box.Style.Get("height")
	if !ok || !height.IsLength() {
		return
	}
	if height.Unit == css.UnitPercent {
		le.log.Debug("Ignoring percentage height", zap.String("box", box.Label()))
		return
	}
	box.Dimensions.Content.Height = math.Max(height.ToPx(le.ref), 0)
}

// lookup returns the value of name, or def when the style lacks it.
func lookup(style *css.ComputedStyle, name string, def css.Value) css.Value {
	v, ok := style.Get(name)
	if !ok {
		return def
	}
	return v
}

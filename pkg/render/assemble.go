package render

import (
	"math"

	"boxpaint/pkg/css"
	"boxpaint/pkg/layout"
)

// EdgeColors holds a color per border side.
type EdgeColors struct {
	Top    css.Color
	Right  css.Color
	Bottom css.Color
	Left   css.Color
}

// BorderPaint describes the border of one item. Sides with zero width or
// a transparent color are not painted.
type BorderPaint struct {
	Widths layout.EdgeSizes
	Colors EdgeColors
}

// RenderItem is one paintable box. Rect is the border box; a nil
// Background or Border means there is nothing to paint for it.
type RenderItem struct {
	Rect       layout.Rect
	Background *css.Color
	Border     *BorderPaint
}

// Assemble flattens the layout tree into paint order: parents before
// children, siblings in document order.
func Assemble(root *layout.Box) []RenderItem {
	items := make([]RenderItem, 0)
	if root == nil {
		return items
	}
	root.Walk(func(box *layout.Box) {
		if item, ok := renderItem(box); ok {
			items = append(items, item)
		}
	})
	return items
}

func renderItem(box *layout.Box) (RenderItem, bool) {
	style := box.Style
	if style == nil || style.Hidden() {
		return RenderItem{}, false
	}
	item := RenderItem{Rect: box.Dimensions.BorderBox()}

	if bg := style.Color("background-color"); bg.Visible() {
		item.Background = &bg
	}

	widths := box.Dimensions.Border
	colors := EdgeColors{
		Top:    style.Color("border-top-color"),
		Right:  style.Color("border-right-color"),
		Bottom: style.Color("border-bottom-color"),
		Left:   style.Color("border-left-color"),
	}
	if visibleSide(widths.Top, colors.Top) || visibleSide(widths.Right, colors.Right) ||
		visibleSide(widths.Bottom, colors.Bottom) || visibleSide(widths.Left, colors.Left) {
		item.Border = &BorderPaint{Widths: widths, Colors: colors}
	}

	if item.Background == nil && item.Border == nil {
		return RenderItem{}, false
	}
	return item, true
}

func visibleSide(width float64, c css.Color) bool {
	return width > 0 && c.Visible()
}

// MaxCanvasDimension bounds either side of the canvas, so a document with
// an enormous box still paints into a bounded image.
const MaxCanvasDimension = 16384

// CanvasSize returns the pixel size of the root's margin box, rounded up.
// Dimensions below one pixel fall back to the given viewport size; all
// dimensions are clamped to MaxCanvasDimension.
func CanvasSize(root *layout.Box, viewportWidth, viewportHeight int) Size {
	size := Size{Width: viewportWidth, Height: viewportHeight}
	if root != nil {
		mb := root.Dimensions.MarginBox()
		if w := Ceil(mb.X + mb.Width); w >= 1 {
			size.Width = w
		}
		if h := Ceil(mb.Y + mb.Height); h >= 1 {
			size.Height = h
		}
	}
	size.Width = min(size.Width, MaxCanvasDimension)
	size.Height = min(size.Height, MaxCanvasDimension)
	return size
}

// Clamped reports whether the root's margin box does not fit in a canvas
// of size.
func Clamped(root *layout.Box, size Size) bool {
	if root == nil {
		return false
	}
	mb := root.Dimensions.MarginBox()
	return Ceil(mb.X+mb.Width) > size.Width || Ceil(mb.Y+mb.Height) > size.Height
}

// Size is a canvas size in whole pixels.
type Size struct {
	Width  int
	Height int
}

// Ceil rounds v up to a whole pixel.
func Ceil(v float64) int {
	return int(math.Ceil(v))
}

package render

import (
	"fmt"
	"image"
	"io"

	"github.com/fogleman/gg"

	"boxpaint/pkg/css"
	"boxpaint/pkg/layout"
)

// Painter rasterizes render items onto an RGBA canvas.
type Painter struct {
	context *gg.Context
}

func NewPainter(width, height int) *Painter {
	return &Painter{context: gg.NewContext(width, height)}
}

// Paint clears the canvas to white and draws items in order.
func (p *Painter) Paint(items []RenderItem) {
	p.context.SetRGB(1, 1, 1)
	p.context.Clear()

	for _, item := range items {
		p.drawItem(item)
	}
}

func (p *Painter) drawItem(item RenderItem) {
	r := item.Rect
	if item.Background != nil && r.Width > 0 && r.Height > 0 {
		p.fillRect(r.X, r.Y, r.Width, r.Height, *item.Background)
	}
	if item.Border != nil {
		p.drawBorder(r, item.Border)
	}
}

// drawBorder paints each side as a rectangle inside the border box. Top
// and bottom span the full width; left and right fit between them.
func (p *Painter) drawBorder(r layout.Rect, b *BorderPaint) {
	w, c := b.Widths, b.Colors
	inner := r.Height - w.Top - w.Bottom

	if visibleSide(w.Top, c.Top) {
		p.fillRect(r.X, r.Y, r.Width, w.Top, c.Top)
	}
	if visibleSide(w.Right, c.Right) {
		p.fillRect(r.X+r.Width-w.Right, r.Y+w.Top, w.Right, inner, c.Right)
	}
	if visibleSide(w.Bottom, c.Bottom) {
		p.fillRect(r.X, r.Y+r.Height-w.Bottom, r.Width, w.Bottom, c.Bottom)
	}
	if visibleSide(w.Left, c.Left) {
		p.fillRect(r.X, r.Y+w.Top, w.Left, inner, c.Left)
	}
}

func (p *Painter) fillRect(x, y, width, height float64, c css.Color) {
	if width <= 0 || height <= 0 {
		return
	}
	p.context.SetColor(c.NRGBA())
	p.context.DrawRectangle(x, y, width, height)
	p.context.Fill()
}

// Image returns the canvas.
func (p *Painter) Image() image.Image {
	return p.context.Image()
}

func (p *Painter) SavePNG(filename string) error {
	if err := p.context.SavePNG(filename); err != nil {
		return fmt.Errorf("saving %s: %w", filename, err)
	}
	return nil
}

// EncodePNG writes the canvas to w as PNG.
func (p *Painter) EncodePNG(w io.Writer) error {
	return p.context.EncodePNG(w)
}

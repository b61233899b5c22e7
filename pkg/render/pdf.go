package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"codeberg.org/go-pdf/fpdf"

	"boxpaint/pkg/css"
)

// ErrUnknownFormat is returned for output formats other than png and pdf.
var ErrUnknownFormat = errors.New("unknown output format")

// Format is an output file format.
type Format string

const (
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"
)

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPNG, FormatPDF:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Extension is the file name extension for the format, with the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// WritePDF writes items as a single page the size of the canvas. One
// pixel maps to one point.
func WritePDF(w io.Writer, items []RenderItem, size Size) error {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: float64(size.Width), Ht: float64(size.Height)},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	fill := func(x, y, width, height float64, c css.Color) {
		if width <= 0 || height <= 0 || !c.Visible() {
			return
		}
		pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
		pdf.SetAlpha(float64(c.A)/255, "Normal")
		pdf.Rect(x, y, width, height, "F")
	}

	for _, item := range items {
		r := item.Rect
		if item.Background != nil {
			fill(r.X, r.Y, r.Width, r.Height, *item.Background)
		}
		if b := item.Border; b != nil {
			wd, c := b.Widths, b.Colors
			inner := r.Height - wd.Top - wd.Bottom
			fill(r.X, r.Y, r.Width, wd.Top, c.Top)
			fill(r.X+r.Width-wd.Right, r.Y+wd.Top, wd.Right, inner, c.Right)
			fill(r.X, r.Y+r.Height-wd.Bottom, r.Width, wd.Bottom, c.Bottom)
			fill(r.X, r.Y+wd.Top, wd.Left, inner, c.Left)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

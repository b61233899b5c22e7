package render

import (
	"bytes"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxpaint/pkg/css"
	"boxpaint/pkg/layout"
)

var (
	red  = css.Color{R: 255, A: 255}
	blue = css.Color{B: 255, A: 255}
)

func pixel(p *Painter, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(p.Image().At(x, y)).(color.NRGBA)
}

func TestPainter_Background(t *testing.T) {
	p := NewPainter(20, 20)
	p.Paint([]RenderItem{{Rect: layout.Rect{X: 5, Y: 5, Width: 10, Height: 10}, Background: &red}})

	assert.Equal(t, red.NRGBA(), pixel(p, 5, 5))
	assert.Equal(t, red.NRGBA(), pixel(p, 14, 14))
	assert.Equal(t, css.White.NRGBA(), pixel(p, 4, 4))
	assert.Equal(t, css.White.NRGBA(), pixel(p, 15, 15))
}

func TestPainter_BorderOverBackground(t *testing.T) {
	p := NewPainter(20, 20)
	p.Paint([]RenderItem{{
		Rect:       layout.Rect{X: 0, Y: 0, Width: 20, Height: 20},
		Background: &red,
		Border: &BorderPaint{
			Widths: layout.EdgeSizes{Top: 2, Left: 3},
			Colors: EdgeColors{Top: blue, Right: blue, Bottom: blue, Left: blue},
		},
	}})

	assert.Equal(t, blue.NRGBA(), pixel(p, 10, 1), "top edge")
	assert.Equal(t, blue.NRGBA(), pixel(p, 2, 10), "left edge")
	assert.Equal(t, red.NRGBA(), pixel(p, 10, 10), "inside")
	assert.Equal(t, red.NRGBA(), pixel(p, 19, 19), "zero-width sides are not painted")
}

func TestPainter_PaintOrder(t *testing.T) {
	p := NewPainter(10, 10)
	p.Paint([]RenderItem{
		{Rect: layout.Rect{Width: 10, Height: 10}, Background: &red},
		{Rect: layout.Rect{Width: 5, Height: 10}, Background: &blue},
	})

	assert.Equal(t, blue.NRGBA(), pixel(p, 2, 5))
	assert.Equal(t, red.NRGBA(), pixel(p, 7, 5))
}

func TestPainter_EncodeAndSavePNG(t *testing.T) {
	p := NewPainter(8, 4)
	p.Paint(nil)

	var buf bytes.Buffer
	require.NoError(t, p.EncodePNG(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())
	assert.Equal(t, 4, img.Bounds().Dy())

	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, p.SavePNG(path))
	assert.FileExists(t, path)

	assert.Error(t, p.SavePNG(filepath.Join(t.TempDir(), "missing", "out.png")))
}

func TestWritePDF(t *testing.T) {
	half := css.Color{G: 128, A: 128}
	items := []RenderItem{
		{Rect: layout.Rect{X: 10, Y: 10, Width: 100, Height: 50}, Background: &half},
		{
			Rect: layout.Rect{Width: 200, Height: 100},
			Border: &BorderPaint{
				Widths: layout.EdgeSizes{Top: 1, Right: 1, Bottom: 1, Left: 1},
				Colors: EdgeColors{Top: red, Right: red, Bottom: red, Left: red},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, items, Size{Width: 200, Height: 100}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

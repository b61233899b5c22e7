package pipeline

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"boxpaint/pkg/config"
	"boxpaint/pkg/css"
	"boxpaint/pkg/layout"
	"boxpaint/pkg/render"
)

func findBox(root *layout.Box, id string) *layout.Box {
	var found *layout.Box
	if root == nil {
		return nil
	}
	root.Walk(func(b *layout.Box) {
		if found == nil && b.Node != nil {
			if v, ok := b.Node.ID(); ok && v == id {
				found = b
			}
		}
	})
	return found
}

func TestRender_SpecificityBeatsSourceOrder(t *testing.T) {
	res, err := New(nil, nil).Render(`<div class="a" id="b"></div>`, `.a { color: red } #b { color: blue }`)
	require.NoError(t, err)

	node := res.Document.Root.Find("b")
	require.NotNil(t, node)
	assert.Equal(t, css.Color{B: 255, A: 255}, res.Styles[node].Color("color"))

	res, err = New(nil, nil).Render(`<div class="a" id="b"></div>`, `#b { color: blue } .a { color: red }`)
	require.NoError(t, err)
	assert.Equal(t, css.Color{B: 255, A: 255}, res.Styles[res.Document.Root.Find("b")].Color("color"))
}

func TestRender_DisplayNoneProducesNothing(t *testing.T) {
	res, err := New(nil, nil).Render(
		`<div id="keep" style="height: 5px"></div><div id="gone" class="x"><p id="inner">text</p></div>`,
		`#gone { display: none; background-color: red } .x { border: 2px solid black } p { background-color: blue }`)
	require.NoError(t, err)

	assert.NotNil(t, findBox(res.Root, "keep"))
	assert.Nil(t, findBox(res.Root, "gone"))
	assert.Nil(t, findBox(res.Root, "inner"))
	assert.Empty(t, res.Items)
}

func TestRender_ScenarioLayout(t *testing.T) {
	res, err := New(nil, nil).Render(`
		<div id="a" style="width: 200px"></div>
		<div id="b"></div>
		<div id="c1" class="h"></div><div id="c2" class="h"></div>`,
		`#b { margin-left: 10px } .h { height: 50px }`)
	require.NoError(t, err)

	a, b := findBox(res.Root, "a"), findBox(res.Root, "b")
	assert.Equal(t, 200.0, a.Dimensions.Content.Width)
	assert.Equal(t, 0.0, a.Dimensions.Content.X)
	assert.Equal(t, 790.0, b.Dimensions.Content.Width)
	assert.Equal(t, 10.0, b.Dimensions.Content.X)

	c1, c2 := findBox(res.Root, "c1"), findBox(res.Root, "c2")
	assert.Equal(t, c1.Dimensions.Content.Y+50, c2.Dimensions.Content.Y)
}

func TestRender_DocumentStylesFollowUserStylesheet(t *testing.T) {
	res, err := New(nil, nil).Render(
		`<style>p { width: 20px }</style><p id="p"></p>`,
		`p { width: 10px }`)
	require.NoError(t, err)

	assert.Equal(t, 20.0, findBox(res.Root, "p").Dimensions.Content.Width)
	require.Len(t, res.Rules, 2)
	assert.Equal(t, 0, res.Rules[0].SourceOrder)
	assert.Equal(t, 1, res.Rules[1].SourceOrder)
}

func TestRender_Warnings(t *testing.T) {
	res, err := New(nil, nil).Render(`<p></p>`, `div p { color: red } p:hover { color: blue }`)
	require.NoError(t, err)
	assert.Len(t, res.Warnings, 2)
	assert.Empty(t, res.Rules)
}

func TestRender_CanvasSize(t *testing.T) {
	cfg := config.Default()
	cfg.Viewport.Width = 300
	cfg.Viewport.Height = 200

	res, err := New(cfg, nil).Render(`<div style="height: 40.5px"></div>`, ``)
	require.NoError(t, err)
	assert.Equal(t, render.Size{Width: 300, Height: 41}, res.Canvas)

	res, err = New(cfg, nil).Render(``, ``)
	require.NoError(t, err)
	assert.Equal(t, render.Size{Width: 300, Height: 200}, res.Canvas, "empty document uses the viewport")
}

func TestRender_HugeDocumentIsCropped(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	res, err := New(nil, zap.New(core)).Render(`<div style="height: 100000000px; background: red"></div>`, ``)
	require.NoError(t, err)
	assert.Equal(t, render.Size{Width: 800, Height: render.MaxCanvasDimension}, res.Canvas)
	assert.Equal(t, 1, logs.FilterMessageSnippet("maximum canvas size").Len())

	img := res.Image()
	assert.Equal(t, render.MaxCanvasDimension, img.Bounds().Dy())
	r, g, b, _ := img.At(10, render.MaxCanvasDimension-1).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0, 0}, [3]uint32{r, g, b})
}

func TestRender_FontSizes(t *testing.T) {
	cfg := config.Default()
	cfg.Fonts.RootSize = 10
	cfg.Fonts.DefaultSize = 20

	res, err := New(cfg, nil).Render(`<div id="d"></div>`, `#d { margin-left: 2rem; padding-left: 1em }`)
	require.NoError(t, err)
	d := findBox(res.Root, "d")
	assert.Equal(t, 20.0, d.Dimensions.Margin.Left)
	assert.Equal(t, 20.0, d.Dimensions.Padding.Left)
}

func TestResult_Encode(t *testing.T) {
	res, err := New(nil, nil).Render(`<div style="height: 30px; background: red"></div>`, ``)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, res.Encode(&buf, render.FormatPNG))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 30, img.Bounds().Dy())

	buf.Reset()
	require.NoError(t, res.Encode(&buf, render.FormatPDF))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))

	assert.ErrorIs(t, res.Encode(&buf, render.Format("bmp")), render.ErrUnknownFormat)

	r, g, b, _ := res.Image().At(400, 15).RGBA()
	assert.Equal(t, []uint32{0xffff, 0, 0}, []uint32{r, g, b})
}

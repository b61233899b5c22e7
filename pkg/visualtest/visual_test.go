package visualtest

import (
	"image"
	"image/color"
	"image/draw"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxpaint/pkg/config"
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return img
}

func TestCompare_Identical(t *testing.T) {
	img := solid(10, 10, color.RGBA{255, 0, 0, 255})

	result, err := Compare(img, solid(10, 10, color.RGBA{255, 0, 0, 255}), DefaultOptions())
	require.NoError(t, err)
	assert.True(t, result.Match)
	assert.Zero(t, result.DifferentPixels)
	assert.Equal(t, 100, result.TotalPixels)
}

func TestCompare_Different(t *testing.T) {
	img1 := solid(10, 10, color.RGBA{255, 0, 0, 255})
	img2 := solid(10, 10, color.RGBA{255, 0, 0, 255})
	img2.Set(3, 3, color.RGBA{0, 0, 255, 255})

	opts := DefaultOptions()
	opts.SaveDiffImage = true
	result, err := Compare(img1, img2, opts)
	require.NoError(t, err)
	assert.False(t, result.Match)
	assert.Equal(t, 1, result.DifferentPixels)
	assert.Equal(t, 255, result.MaxDifference)
	require.NotNil(t, result.Diff)
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, result.Diff.RGBAAt(3, 3))

	opts.MaxDifferentPercent = 1
	result, err = Compare(img1, img2, opts)
	require.NoError(t, err)
	assert.True(t, result.Match, "1% of pixels may differ")
}

func TestCompare_Tolerance(t *testing.T) {
	img1 := solid(4, 4, color.RGBA{100, 100, 100, 255})
	img2 := solid(4, 4, color.RGBA{103, 100, 100, 255})

	result, err := Compare(img1, img2, CompareOptions{Tolerance: 2})
	require.NoError(t, err)
	assert.False(t, result.Match)

	result, err = Compare(img1, img2, CompareOptions{Tolerance: 3})
	require.NoError(t, err)
	assert.True(t, result.Match)
}

func TestCompare_Fuzzy(t *testing.T) {
	white := color.RGBA{255, 255, 255, 255}
	black := color.RGBA{0, 0, 0, 255}
	img1 := solid(5, 5, white)
	img2 := solid(5, 5, white)
	img1.Set(2, 2, black)
	img2.Set(3, 2, black)

	result, err := Compare(img1, img2, CompareOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, result.DifferentPixels)

	result, err = Compare(img1, img2, CompareOptions{FuzzyRadius: 1})
	require.NoError(t, err)
	assert.True(t, result.Match)
}

func TestCompare_SizeMismatch(t *testing.T) {
	_, err := Compare(solid(2, 2, color.Black), solid(3, 2, color.Black), DefaultOptions())
	assert.Error(t, err)
}

func TestRenderToFileAndCompare(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Viewport.Width = 100

	a := filepath.Join(dir, "out", "a.png")
	b := filepath.Join(dir, "b.png")
	require.NoError(t, RenderToFile(`<div class="x"></div>`, `.x { height: 10px; background: blue }`, a, cfg))
	require.NoError(t, RenderToFile(`<div style="height: 10px; background-color: #00f"></div>`, ``, b, cfg))

	result, err := CompareImages(a, b, DefaultOptions())
	require.NoError(t, err)
	assert.True(t, result.Match)
	assert.Equal(t, 100*10, result.TotalPixels)

	_, err = CompareImages(filepath.Join(dir, "missing.png"), b, DefaultOptions())
	assert.Error(t, err)
}

func TestUpdateReferenceImage(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Viewport.Width = 50

	src := filepath.Join("testdata", "reftests", "display-none-ref.html")
	dest := filepath.Join(dir, "ref", "display-none.png")
	require.NoError(t, UpdateReferenceImage(src, dest, cfg))

	img, err := loadPNG(dest)
	require.NoError(t, err)
	assert.Equal(t, 50, img.Bounds().Dx())

	assert.Error(t, RenderHTMLFile(filepath.Join(dir, "missing.html"), dest, cfg))
}

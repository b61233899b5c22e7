// Package visualtest compares rendered images pixel by pixel and runs
// reference tests: pairs of documents expected to paint identically.
package visualtest

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// CompareResult contains the results of an image comparison
type CompareResult struct {
	Match           bool
	DifferentPixels int
	TotalPixels     int
	MaxDifference   int // Max color channel difference found
	// Diff marks differing pixels in red over a grayscale copy of the
	// actual image. It is set only when requested.
	Diff *image.RGBA
}

// CompareOptions configures the image comparison
type CompareOptions struct {
	// Tolerance: maximum allowed difference per color channel (0-255)
	Tolerance int

	// FuzzyRadius: if > 0, a pixel matches if it matches any expected
	// pixel within this radius
	FuzzyRadius int

	// MaxDifferentPercent: if > 0, pass if the percentage of different
	// pixels is <= this value
	MaxDifferentPercent float64

	// SaveDiffImage: if true, a diff image is built and, when
	// DiffImagePath is set and the images differ, written there
	SaveDiffImage bool
	DiffImagePath string
}

// DefaultOptions returns exact comparison. Boxes are axis-aligned and
// painted without text, so renders are deterministic.
func DefaultOptions() CompareOptions {
	return CompareOptions{}
}

// Compare compares two images of the same bounds.
func Compare(actual, expected image.Image, opts CompareOptions) (*CompareResult, error) {
	bounds := actual.Bounds()
	if bounds != expected.Bounds() {
		return &CompareResult{}, fmt.Errorf("image dimensions differ: actual=%v, expected=%v", bounds, expected.Bounds())
	}

	result := &CompareResult{
		Match:       true,
		TotalPixels: bounds.Dx() * bounds.Dy(),
	}
	if opts.SaveDiffImage {
		result.Diff = image.NewRGBA(bounds)
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			a := actual.At(x, y)
			diff := pixelDiff(a, expected.At(x, y))
			if diff > result.MaxDifference {
				result.MaxDifference = diff
			}

			differs := diff > opts.Tolerance &&
				!(opts.FuzzyRadius > 0 && fuzzyMatch(a, expected, x, y, opts.FuzzyRadius, opts.Tolerance))
			if differs {
				result.Match = false
				result.DifferentPixels++
			}
			if result.Diff != nil {
				if differs {
					result.Diff.Set(x, y, color.RGBA{255, 0, 0, 255})
				} else {
					result.Diff.Set(x, y, color.GrayModel.Convert(a))
				}
			}
		}
	}

	// Check if percentage of different pixels is acceptable
	if !result.Match && opts.MaxDifferentPercent > 0 && result.TotalPixels > 0 {
		pct := float64(result.DifferentPixels) / float64(result.TotalPixels) * 100
		if pct <= opts.MaxDifferentPercent {
			result.Match = true
		}
	}

	if result.Diff != nil && !result.Match && opts.DiffImagePath != "" {
		if err := savePNG(result.Diff, opts.DiffImagePath); err != nil {
			return result, fmt.Errorf("failed to save diff image: %w", err)
		}
	}
	return result, nil
}

// CompareImages compares two PNG files.
func CompareImages(actualPath, expectedPath string, opts CompareOptions) (*CompareResult, error) {
	actual, err := loadPNG(actualPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load actual image: %w", err)
	}
	expected, err := loadPNG(expectedPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load expected image: %w", err)
	}
	return Compare(actual, expected, opts)
}

// pixelDiff is the largest 8-bit channel difference between two colors.
func pixelDiff(a, b color.Color) int {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return max(
		absDiff(ar>>8, br>>8),
		absDiff(ag>>8, bg>>8),
		absDiff(ab>>8, bb>>8),
		absDiff(aa>>8, ba>>8),
	)
}

// fuzzyMatch checks if the actual pixel matches any expected pixel within radius
func fuzzyMatch(a color.Color, expected image.Image, x, y, radius, tolerance int) bool {
	bounds := expected.Bounds()
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			p := image.Pt(x+dx, y+dy)
			if !p.In(bounds) {
				continue
			}
			if pixelDiff(a, expected.At(p.X, p.Y)) <= tolerance {
				return true
			}
		}
	}
	return false
}

func loadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return png.Decode(f)
}

func savePNG(img image.Image, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}

func absDiff(a, b uint32) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

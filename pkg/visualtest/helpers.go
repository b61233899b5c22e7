package visualtest

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"boxpaint/pkg/config"
	"boxpaint/pkg/pipeline"
)

// RenderImage renders markup and a stylesheet to an image.
func RenderImage(markup, stylesheet string, cfg *config.Config) (image.Image, error) {
	res, err := pipeline.New(cfg, nil).Render(markup, stylesheet)
	if err != nil {
		return nil, fmt.Errorf("render error: %w", err)
	}
	return res.Image(), nil
}

// RenderToFile renders markup and a stylesheet to a PNG file, creating
// the output directory if needed.
func RenderToFile(markup, stylesheet, outputPath string, cfg *config.Config) error {
	img, err := RenderImage(markup, stylesheet, cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := savePNG(img, outputPath); err != nil {
		return fmt.Errorf("save error: %w", err)
	}
	return nil
}

// RenderHTMLFile renders an HTML file, which carries its styles in
// <style> elements, to a PNG file.
func RenderHTMLFile(htmlPath, outputPath string, cfg *config.Config) error {
	markup, err := os.ReadFile(htmlPath)
	if err != nil {
		return fmt.Errorf("failed to read HTML file: %w", err)
	}
	return RenderToFile(string(markup), "", outputPath, cfg)
}

// UpdateReferenceImage regenerates a reference image after an intended
// rendering change.
func UpdateReferenceImage(htmlPath, referencePath string, cfg *config.Config) error {
	fmt.Printf("Updating reference image: %s\n", referencePath)
	return RenderHTMLFile(htmlPath, referencePath, cfg)
}

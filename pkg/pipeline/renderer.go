// Package pipeline runs markup and a stylesheet through every rendering
// stage: parsing, cascade, layout and render tree assembly.
package pipeline

import (
	"fmt"
	"image"
	"io"

	"go.uber.org/zap"

	"boxpaint/pkg/config"
	"boxpaint/pkg/css"
	"boxpaint/pkg/html"
	"boxpaint/pkg/layout"
	"boxpaint/pkg/render"
)

// Renderer renders documents with a fixed configuration.
type Renderer struct {
	cfg  *config.Config
	log  *zap.Logger
	html *html.Parser
	css  *css.Parser
}

// Result holds the output of every stage. Root is nil when the document
// root is not displayed.
type Result struct {
	Document *html.Document
	Rules    []css.Rule
	Warnings []string
	Styles   map[*html.Node]*css.ComputedStyle
	Root     *layout.Box
	Items    []render.RenderItem
	Canvas   render.Size
}

// New creates a renderer. A nil cfg uses the defaults and a nil log
// discards output.
func New(cfg *config.Config, log *zap.Logger) *Renderer {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{
		cfg:  cfg,
		log:  log,
		html: html.NewParser(log),
		css:  css.NewParser(log),
	}
}

// Render runs the pipeline. The user stylesheet comes first, followed by
// the document's <style> elements in order, so later sheets win ties.
func (r *Renderer) Render(markup, stylesheet string) (*Result, error) {
	doc, err := r.html.Parse(markup)
	if err != nil {
		return nil, fmt.Errorf("rendering document: %w", err)
	}

	sheets := make([]*css.Stylesheet, 0, len(doc.Stylesheets)+1)
	sheets = append(sheets, r.css.Parse([]byte(stylesheet), "user stylesheet"))
	for _, text := range doc.Stylesheets {
		sheets = append(sheets, r.css.Parse([]byte(text), "<style>"))
	}
	all := css.Concat(sheets...)
	for _, w := range all.Warnings {
		r.log.Debug("Stylesheet warning", zap.String("warning", w))
	}

	styles := css.StyleTree(doc.Root, all.Rules)

	vw, vh := r.cfg.Viewport.Width, r.cfg.Viewport.Height
	engine := layout.NewLayoutEngine(vw, vh, r.log)
	engine.SetFontSizes(r.cfg.Fonts.RootSize, r.cfg.Fonts.DefaultSize)
	root := engine.Layout(engine.Build(doc.Root, styles))

	items := render.Assemble(root)
	canvas := render.CanvasSize(root, render.Ceil(vw), render.Ceil(vh))
	if render.Clamped(root, canvas) {
		mb := root.Dimensions.MarginBox()
		r.log.Warn("Document exceeds the maximum canvas size, output is cropped",
			zap.Float64("width", mb.X+mb.Width),
			zap.Float64("height", mb.Y+mb.Height),
			zap.Int("max", render.MaxCanvasDimension))
	}

	r.log.Debug("Rendered document",
		zap.Int("rules", len(all.Rules)),
		zap.Int("elements", len(styles)),
		zap.Int("items", len(items)),
		zap.Int("width", canvas.Width),
		zap.Int("height", canvas.Height))

	return &Result{
		Document: doc,
		Rules:    all.Rules,
		Warnings: all.Warnings,
		Styles:   styles,
		Root:     root,
		Items:    items,
		Canvas:   canvas,
	}, nil
}

// Image paints the render items onto a canvas of the result's size.
func (res *Result) Image() image.Image {
	p := render.NewPainter(res.Canvas.Width, res.Canvas.Height)
	p.Paint(res.Items)
	return p.Image()
}

// Encode writes the result in the given format.
func (res *Result) Encode(w io.Writer, format render.Format) error {
	switch format {
	case render.FormatPNG:
		p := render.NewPainter(res.Canvas.Width, res.Canvas.Height)
		p.Paint(res.Items)
		return p.EncodePNG(w)
	case render.FormatPDF:
		return render.WritePDF(w, res.Items, res.Canvas)
	}
	return fmt.Errorf("%w: %q", render.ErrUnknownFormat, format)
}

package layout

import (
	"go.uber.org/zap"

	"boxpaint/pkg/css"
	"boxpaint/pkg/html"
)

// LayoutEngine computes box geometry for a layout tree against a fixed
// viewport.
type LayoutEngine struct {
	viewport struct {
		width  float64
		height float64
	}
	ref css.Reference
	log *zap.Logger
}

func NewLayoutEngine(viewportWidth, viewportHeight float64, log *zap.Logger) *LayoutEngine {
	if log == nil {
		log = zap.NewNop()
	}
	le := &LayoutEngine{
		ref: css.NewReference(viewportWidth),
		log: log.Named("layout"),
	}
	le.viewport.width = viewportWidth
	le.viewport.height = viewportHeight
	return le
}

// SetFontSizes sets the sizes rem and em lengths resolve against.
func (le *LayoutEngine) SetFontSizes(rootSize, defaultSize float64) {
	le.ref.RootFontSize = rootSize
	le.ref.DefaultFontSize = defaultSize
}

// Viewport returns the configured viewport size.
func (le *LayoutEngine) Viewport() (width, height float64) {
	return le.viewport.width, le.viewport.height
}

// Build builds the layout tree for root, logging pruned elements.
func (le *LayoutEngine) Build(root *html.Node, styles map[*html.Node]*css.ComputedStyle) *Box {
	b := &builder{styles: styles, log: le.log}
	return b.build(root)
}

// Layout lays out the tree rooted at root inside the viewport and returns
// root. A nil root is returned unchanged.
func (le *LayoutEngine) Layout(root *Box) *Box {
	if root == nil {
		return nil
	}
	le.layoutBlock(root, Viewport(le.viewport.width))
	le.log.Debug("Layout complete",
		zap.Int("boxes", root.Count()),
		zap.Stringer("margin_box", root.Dimensions.MarginBox()))
	return root
}

package layout

import (
	"go.uber.org/zap"

	"boxpaint/pkg/css"
	"boxpaint/pkg/html"
)

type builder struct {
	styles map[*html.Node]*css.ComputedStyle
	log    *zap.Logger
}

// BuildLayoutTree builds the layout tree for root from precomputed styles.
// It returns nil when the root has display: none. Every box in the result
// is laid out as a block: runs of inline content are wrapped in anonymous
// boxes and inline elements inside them are treated as blocks.
func BuildLayoutTree(root *html.Node, styles map[*html.Node]*css.ComputedStyle) *Box {
	b := &builder{styles: styles, log: zap.NewNop()}
	return b.build(root)
}

func (b *builder) style(node *html.Node) *css.ComputedStyle {
	if s, ok := b.styles[node]; ok && s != nil {
		return s
	}
	// Elements missing from the style map get initial values.
	return css.DefaultStyle()
}

func (b *builder) build(node *html.Node) *Box {
	if node == nil || node.Type != html.ElementNode {
		return nil
	}
	style := b.style(node)
	if style.Display() == css.DisplayNone {
		b.log.Debug("Pruned element", zap.String("tag", node.TagName))
		return nil
	}
	box := newBlockBox(node, style)
	b.buildChildren(box, node)
	return box
}

func (b *builder) buildChildren(box *Box, node *html.Node) {
	box.Children = make([]*Box, 0, len(node.Children))

	// anon is the anonymous box collecting the current inline run.
	var anon *Box
	inlineRun := func() *Box {
		if anon == nil {
			anon = newAnonymousBox()
			box.Children = append(box.Children, anon)
		}
		return anon
	}

	for _, child := range node.Children {
		switch child.Type {
		case html.CommentNode:
			continue
		case html.TextNode:
			if child.IsWhitespace() {
				continue
			}
			inlineRun()
		case html.ElementNode:
			style := b.style(child)
			if style.Display() == css.DisplayNone {
				b.log.Debug("Pruned element", zap.String("tag", child.TagName))
				continue
			}
			childBox := b.build(child)
			if style.IsBlockLevel() {
				anon = nil
				box.Children = append(box.Children, childBox)
				continue
			}
			run := inlineRun()
			run.Children = append(run.Children, childBox)
		}
	}
}

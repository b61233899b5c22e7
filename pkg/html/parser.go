package html

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	nethtml "golang.org/x/net/html"
)

// Parser converts markup into the package's node tree.
type Parser struct {
	log *zap.Logger
}

func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("html-parser")}
}

// Parse parses markup with a no-op logger.
func Parse(markup string) (*Document, error) {
	return NewParser(nil).Parse(markup)
}

// Parse builds a Document from markup. The tokenizer is forgiving, so
// missing or mismatched closing tags are repaired rather than reported.
// The document root is the top-level <html> element.
func (p *Parser) Parse(markup string) (*Document, error) {
	tree, err := nethtml.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parsing markup: %w", err)
	}

	doc := &Document{Stylesheets: make([]string, 0)}
	for c := tree.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == nethtml.ElementNode {
			doc.Root = p.convert(c, doc)
			break
		}
	}
	if doc.Root == nil {
		// x/net/html synthesizes <html> for any input, so this is a fallback only.
		doc.Root = NewElement("html", nil)
	}

	p.log.Debug("Parsed markup",
		zap.Int("bytes", len(markup)),
		zap.Int("stylesheets", len(doc.Stylesheets)))
	return doc, nil
}

func (p *Parser) convert(src *nethtml.Node, doc *Document) *Node {
	var n *Node
	switch src.Type {
	case nethtml.ElementNode:
		n = NewElement(src.Data, convertAttributes(src.Attr))
		if src.Data == "style" {
			doc.Stylesheets = append(doc.Stylesheets, textContent(src))
		}
	case nethtml.TextNode:
		n = NewText(src.Data)
	case nethtml.CommentNode:
		n = NewComment(src.Data)
	default:
		// Doctype and raw document nodes carry nothing for rendering.
		return nil
	}

	for c := src.FirstChild; c != nil; c = c.NextSibling {
		if child := p.convert(c, doc); child != nil {
			n.AddChild(child)
		}
	}
	return n
}

func convertAttributes(attrs []nethtml.Attribute) map[string]string {
	if len(attrs) == 0 {
		return nil
	}
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		// First occurrence wins, as in browsers.
		if _, dup := m[a.Key]; !dup {
			m[a.Key] = a.Val
		}
	}
	return m
}

func textContent(n *nethtml.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == nethtml.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}

package html

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xlab/treeprint"
)

type Node struct {
	Type       NodeType
	TagName    string
	Attributes map[string]string
	Text       string // Text and comment data
	Children   []*Node
	Parent     *Node
}

type NodeType int

const (
	ElementNode NodeType = iota
	TextNode
	CommentNode
)

func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	case CommentNode:
		return "comment"
	}
	return fmt.Sprintf("NodeType(%d)", int(t))
}

// Document is the parsed markup: the root element plus the contents of
// every <style> element in document order.
type Document struct {
	Root        *Node
	Stylesheets []string
}

// NewElement creates an element node and adopts the given children.
func NewElement(tag string, attrs map[string]string, children ...*Node) *Node {
	n := &Node{
		Type:       ElementNode,
		TagName:    tag,
		Attributes: attrs,
		Children:   make([]*Node, 0, len(children)),
	}
	for _, c := range children {
		n.AddChild(c)
	}
	return n
}

// NewText creates a detached text node.
func NewText(text string) *Node {
	return &Node{Type: TextNode, Text: text}
}

// NewComment creates a detached comment node.
func NewComment(text string) *Node {
	return &Node{Type: CommentNode, Text: text}
}

func (n *Node) GetAttribute(name string) (string, bool) {
	if n.Attributes == nil {
		return "", false
	}
	val, ok := n.Attributes[name]
	return val, ok
}

// ID returns the value of the id attribute.
func (n *Node) ID() (string, bool) {
	return n.GetAttribute("id")
}

// Classes returns the whitespace-separated class names of the node as a set.
func (n *Node) Classes() map[string]struct{} {
	classAttr, ok := n.GetAttribute("class")
	if !ok {
		return nil
	}
	fields := strings.Fields(classAttr)
	classes := make(map[string]struct{}, len(fields))
	for _, c := range fields {
		classes[c] = struct{}{}
	}
	return classes
}

// HasClass reports whether name is one of the node's classes.
func (n *Node) HasClass(name string) bool {
	_, ok := n.Classes()[name]
	return ok
}

// IsElement reports whether n is an element, optionally with one of the given tag names.
func (n *Node) IsElement(tags ...string) bool {
	if n == nil || n.Type != ElementNode {
		return false
	}
	if len(tags) == 0 {
		return true
	}
	for _, t := range tags {
		if n.TagName == t {
			return true
		}
	}
	return false
}

// IsWhitespace reports whether n is a text node without visible characters.
func (n *Node) IsWhitespace() bool {
	return n.Type == TextNode && strings.TrimSpace(n.Text) == ""
}

// AddChild adds a child node and sets up the parent relationship
func (n *Node) AddChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// AppendText creates a text node and adds it as a child
func (n *Node) AppendText(text string) {
	if text == "" {
		return
	}
	n.AddChild(NewText(text))
}

// Walk visits n and its descendants depth-first in document order.
// Returning false from fn skips the node's subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// Find returns the first element in document order with the given id.
func (n *Node) Find(id string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if v, ok := c.ID(); ok && c.Type == ElementNode && v == id {
			found = c
			return false
		}
		return true
	})
	return found
}

// Label is a one-line description used in tree dumps.
func (n *Node) Label() string {
	switch n.Type {
	case TextNode:
		return fmt.Sprintf("Text: %q", strings.TrimSpace(n.Text))
	case CommentNode:
		return fmt.Sprintf("Comment: <!-- %s -->", n.Text)
	}
	var sb strings.Builder
	sb.WriteString("Element: <")
	sb.WriteString(n.TagName)
	// Sort attributes for deterministic output
	keys := make([]string, 0, len(n.Attributes))
	for k := range n.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&sb, " %s=%q", k, n.Attributes[k])
	}
	sb.WriteByte('>')
	return sb.String()
}

// Dump renders the subtree rooted at n as an indented tree.
func (n *Node) Dump() string {
	tree := treeprint.NewWithRoot(n.Label())
	for _, child := range n.Children {
		dumpNode(tree, child)
	}
	return tree.String()
}

func dumpNode(branch treeprint.Tree, n *Node) {
	if n.IsWhitespace() {
		return
	}
	if len(n.Children) == 0 {
		branch.AddNode(n.Label())
		return
	}
	sub := branch.AddBranch(n.Label())
	for _, child := range n.Children {
		dumpNode(sub, child)
	}
}

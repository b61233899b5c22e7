package layout

// ContainingBlock is what a child is laid out against: the parent's
// content position and width, plus the height the parent has accumulated
// from the children laid out so far.
type ContainingBlock struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Viewport is the initial containing block of the root box.
func Viewport(width float64) ContainingBlock {
	return ContainingBlock{Width: width}
}

// containingBlock returns b's content box as a containing block with no
// accumulated height.
func (b *Box) containingBlock() ContainingBlock {
	c := b.Dimensions.Content
	return ContainingBlock{X: c.X, Y: c.Y, Width: c.Width}
}

package layout

import "fmt"

// Position is a point on the design canvas.
type Position struct {
	X float64
	Y float64
}

// Pos is a shorthand constructor for Position.
func Pos(x, y float64) Position {
	return Position{X: x, Y: y}
}

// String returns the position as "(x, y)".
func (p Position) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Size is the width and height of a component on the canvas.
type Size struct {
	Width  float64
	Height float64
}

// Sz is a shorthand constructor for Size.
func Sz(w, h float64) Size {
	return Size{Width: w, Height: h}
}

// String returns the size as "WxH".
func (s Size) String() string {
	return fmt.Sprintf("%gx%g", s.Width, s.Height)
}

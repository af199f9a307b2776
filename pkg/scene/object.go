// Package scene contains the drawable objects of the animation library:
// polygons, text, and raw SVG fragments, plus the Object interface that
// custom objects implement.
package scene

import "github.com/kinemalab/kinema/pkg/svg"

// Object is anything that can render itself into an SVG node. The returned
// z value orders objects within a frame; higher values draw on top.
type Object interface {
	Render() (z int, node svg.Node)
}

// Point is a 2D coordinate. Scenes are authored around the origin; the
// renderer centers the origin on the canvas.
type Point struct {
	X, Y float64
}

// Pt is shorthand for constructing a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Direction names one of the four cardinal placements used when positioning
// objects relative to each other.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the horizontal extent.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

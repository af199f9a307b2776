package scene

import (
	"math"
	"strconv"
	"strings"

	"github.com/kinemalab/kinema/pkg/svg"
)

// Polygon is a closed shape drawn by connecting its points in order, plus
// the final point back to the first.
type Polygon struct {
	Points       []Point
	FillColor    Color
	OutlineColor Color
	StrokeWidth  float64
	Z            int
}

// NewPolygon creates a polygon with the default fill, outline, and stroke
// width.
func NewPolygon(points ...Point) *Polygon {
	return &Polygon{
		Points:       points,
		FillColor:    RGB(255, 255, 255),
		OutlineColor: RGB(100, 100, 100),
		StrokeWidth:  10,
	}
}

// Clone returns a deep copy of the polygon.
func (p *Polygon) Clone() *Polygon {
	c := *p
	c.Points = append([]Point(nil), p.Points...)
	return &c
}

// AddPoint appends a vertex.
func (p *Polygon) AddPoint(x, y float64) *Polygon {
	p.Points = append(p.Points, Pt(x, y))
	return p
}

// Shift translates every vertex by (x, y).
func (p *Polygon) Shift(x, y float64) *Polygon {
	for i := range p.Points {
		p.Points[i].X += x
		p.Points[i].Y += y
	}
	return p
}

// Fill sets the fill color.
func (p *Polygon) Fill(c Color) *Polygon {
	p.FillColor = c
	return p
}

// Outline sets the outline color.
func (p *Polygon) Outline(c Color) *Polygon {
	p.OutlineColor = c
	return p
}

// Stroke sets the outline stroke width.
func (p *Polygon) Stroke(width float64) *Polygon {
	p.StrokeWidth = width
	return p
}

// ZIndex sets the draw order of the polygon.
func (p *Polygon) ZIndex(z int) *Polygon {
	p.Z = z
	return p
}

// Render serializes the polygon into an SVG <polygon> element.
func (p *Polygon) Render() (int, svg.Node) {
	el := svg.NewElement("polygon").
		Set("points", FormatPoints(p.Points)).
		Set("stroke-width", p.StrokeWidth).
		Set("fill", p.FillColor.CSS()).
		Set("stroke", p.OutlineColor.CSS())
	if p.FillColor.A < 255 {
		el.Set("fill-opacity", p.FillColor.Opacity())
	}
	if p.OutlineColor.A < 255 {
		el.Set("stroke-opacity", p.OutlineColor.Opacity())
	}
	return p.Z, el
}

// Bounds returns the exact bounding box of the vertices. Stroke width is
// not included.
func (p *Polygon) Bounds() Bounds {
	b := Bounds{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	for _, pt := range p.Points {
		b.MinX = math.Min(b.MinX, pt.X)
		b.MinY = math.Min(b.MinY, pt.Y)
		b.MaxX = math.Max(b.MaxX, pt.X)
		b.MaxY = math.Max(b.MaxY, pt.Y)
	}
	if len(p.Points) == 0 {
		return Bounds{}
	}
	return b
}

// FormatPoints renders a point list as an SVG points attribute value.
func FormatPoints(points []Point) string {
	var b strings.Builder
	for i, pt := range points {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.FormatFloat(pt.X, 'f', -1, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(pt.Y, 'f', -1, 64))
	}
	return b.String()
}

package anim

import (
	"github.com/kinemalab/kinema/pkg/scene"
	"github.com/kinemalab/kinema/pkg/svg"
)

// PolygonMorph interpolates one polygon into another: vertices, fill,
// outline, and stroke width all blend with progress. When the two shapes
// have different vertex counts, the shorter ring gains synthetic points at
// construction so every frame interpolates rings of equal length.
type PolygonMorph struct {
	from, to *scene.Polygon
	fromRing []scene.Point
	toRing   []scene.Point
}

// NewPolygonMorph builds a morph from one polygon to another.
func NewPolygonMorph(from, to *scene.Polygon) *PolygonMorph {
	fromRing, toRing := equalizeRings(from.Points, to.Points)
	return &PolygonMorph{
		from:     from,
		to:       to,
		fromRing: fromRing,
		toRing:   toRing,
	}
}

// Frame renders the intermediate polygon at the given progress.
func (m *PolygonMorph) Frame(progress float64) (int, svg.Node) {
	points := make([]scene.Point, len(m.fromRing))
	for i := range m.fromRing {
		a, b := m.fromRing[i], m.toRing[i]
		points[i] = scene.Pt(
			a.X+(b.X-a.X)*progress,
			a.Y+(b.Y-a.Y)*progress,
		)
	}

	p := scene.NewPolygon(points...).
		Fill(m.from.FillColor.Lerp(m.to.FillColor, progress)).
		Outline(m.from.OutlineColor.Lerp(m.to.OutlineColor, progress)).
		Stroke(m.from.StrokeWidth + (m.to.StrokeWidth-m.from.StrokeWidth)*progress)

	return p.Render()
}

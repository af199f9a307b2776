package anim

import (
	"math"

	"github.com/kinemalab/kinema/pkg/scene"
	"github.com/kinemalab/kinema/pkg/svg"
)

// PolygonDraw traces a polygon outline from its first point to its last,
// filling the partial shape as it goes.
type PolygonDraw struct {
	Polygon *scene.Polygon
}

// Frame renders the partially drawn polygon: the filled body without an
// outline, plus a polyline tracing the completed edges and the in-progress
// segment.
func (d PolygonDraw) Frame(progress float64) (int, svg.Node) {
	total := len(d.Polygon.Points)
	if total == 0 {
		return d.Polygon.Z, svg.Group()
	}

	done := int(math.Floor(float64(total) * progress))
	if done >= total {
		return d.Polygon.Render()
	}

	points := append([]scene.Point(nil), d.Polygon.Points[:done+1]...)

	start := d.Polygon.Points[done]
	end := d.Polygon.Points[(done+1)%total]
	segProgress := progress*float64(total) - float64(done)
	points = append(points, scene.Pt(
		start.X+(end.X-start.X)*segProgress,
		start.Y+(end.Y-start.Y)*segProgress,
	))

	body := d.Polygon.Clone()
	body.Points = points
	body.OutlineColor = scene.RGBA(0, 0, 0, 0)
	z, bodyNode := body.Render()

	line := svg.NewElement("polyline").
		Set("points", scene.FormatPoints(points)).
		Set("fill", "none").
		Set("stroke-width", d.Polygon.StrokeWidth).
		Set("stroke", d.Polygon.OutlineColor.CSS())
	if d.Polygon.OutlineColor.A < 255 {
		line.Set("stroke-opacity", d.Polygon.OutlineColor.Opacity())
	}

	return z, svg.Group().Add(bodyNode).Add(line)
}

package anim

import (
	"strings"
	"testing"

	"github.com/kinemalab/kinema/pkg/scene"
)

func square(scale float64) *scene.Polygon {
	return scene.NewPolygon(
		scene.Pt(0, 0),
		scene.Pt(scale, 0),
		scene.Pt(scale, scale),
		scene.Pt(0, scale),
	)
}

func triangle(scale float64) *scene.Polygon {
	return scene.NewPolygon(
		scene.Pt(0, 0),
		scene.Pt(scale, 0),
		scene.Pt(scale/2, scale),
	)
}

func TestMorphEndpoints(t *testing.T) {
	from := square(100).Fill(scene.RGB(200, 0, 0))
	to := triangle(100).Fill(scene.RGB(0, 0, 200))
	m := NewPolygonMorph(from, to)

	_, startNode := m.Frame(0)
	if !strings.Contains(startNode.Markup(), from.FillColor.CSS()) {
		t.Errorf("progress 0 should carry the source fill: %s", startNode.Markup())
	}

	_, endNode := m.Frame(1)
	if !strings.Contains(endNode.Markup(), to.FillColor.CSS()) {
		t.Errorf("progress 1 should carry the target fill: %s", endNode.Markup())
	}
}

func TestMorphRingLengthsEqual(t *testing.T) {
	m := NewPolygonMorph(triangle(50), square(50))
	if len(m.fromRing) != len(m.toRing) {
		t.Fatalf("ring lengths differ: %d vs %d", len(m.fromRing), len(m.toRing))
	}
	if len(m.fromRing) != 4 {
		t.Errorf("ring length = %d, want 4", len(m.fromRing))
	}
}

func TestMorphEndpointVerticesPreserved(t *testing.T) {
	from := triangle(100)
	to := square(100)
	m := NewPolygonMorph(from, to)

	// Every original target vertex must appear in the equalized target ring.
	for _, want := range to.Points {
		found := false
		for _, got := range m.toRing {
			if got == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("target vertex %+v missing from equalized ring %+v", want, m.toRing)
		}
	}
}

func TestEqualizeRingsSameLengthIsCopy(t *testing.T) {
	a := []scene.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}
	b := []scene.Point{{X: 2, Y: 2}, {X: 3, Y: 3}}

	ea, eb := equalizeRings(a, b)
	ea[0].X = 99
	if a[0].X == 99 {
		t.Error("equalizeRings aliased its input")
	}
	if len(ea) != 2 || len(eb) != 2 {
		t.Errorf("lengths = %d, %d", len(ea), len(eb))
	}
}

func TestProjectOntoSegment(t *testing.T) {
	a, b := scene.Pt(0, 0), scene.Pt(10, 0)

	pt, d := projectOntoSegment(a, b, scene.Pt(5, 3))
	if pt != scene.Pt(5, 0) || d != 3 {
		t.Errorf("projection = %+v dist %v, want (5,0) dist 3", pt, d)
	}

	// Beyond the segment end the projection clamps to the endpoint.
	pt, _ = projectOntoSegment(a, b, scene.Pt(20, 0))
	if pt != b {
		t.Errorf("projection = %+v, want %+v", pt, b)
	}
}

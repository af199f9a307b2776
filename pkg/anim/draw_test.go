package anim

import (
	"strings"
	"testing"

	"github.com/kinemalab/kinema/pkg/scene"
)

func TestPolygonDrawComplete(t *testing.T) {
	p := square(100)
	d := PolygonDraw{Polygon: p}

	_, node := d.Frame(1)
	_, full := p.Render()
	if node.Markup() != full.Markup() {
		t.Errorf("progress 1 should render the full polygon:\n%s\nvs\n%s",
			node.Markup(), full.Markup())
	}
}

func TestPolygonDrawPartial(t *testing.T) {
	p := square(100).Outline(scene.RGB(10, 20, 30))
	d := PolygonDraw{Polygon: p}

	_, node := d.Frame(0.5) // 2 of 4 edges done, third in progress
	markup := node.Markup()

	if !strings.Contains(markup, "<polyline") {
		t.Fatalf("partial draw missing polyline: %s", markup)
	}
	// Body outline is suppressed while drawing; the traced line carries it.
	if !strings.Contains(markup, `stroke-opacity="0"`) {
		t.Errorf("body outline not hidden: %s", markup)
	}
	if !strings.Contains(markup, `stroke="#0a141e"`) {
		t.Errorf("polyline missing outline color: %s", markup)
	}
}

func TestPolygonDrawHalfSegment(t *testing.T) {
	p := scene.NewPolygon(scene.Pt(0, 0), scene.Pt(10, 0), scene.Pt(10, 10), scene.Pt(0, 10))
	d := PolygonDraw{Polygon: p}

	// progress 0.375 = 1.5 edges: second edge half drawn, tip at (10, 5).
	_, node := d.Frame(0.375)
	if !strings.Contains(node.Markup(), "10,5") {
		t.Errorf("expected in-progress tip 10,5: %s", node.Markup())
	}
}

func TestPolygonDrawEmpty(t *testing.T) {
	d := PolygonDraw{Polygon: scene.NewPolygon()}
	_, node := d.Frame(0.5)
	if node.Markup() != "<g/>" {
		t.Errorf("empty polygon draw = %s", node.Markup())
	}
}

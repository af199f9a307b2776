package scenefile

import (
	"strings"
	"testing"
)

const validScene = `canvas:
  width: 1280
  height: 720
  fps: 30
objects:
  - name: backdrop
    kind: raw
    markup: '<rect x="-640" y="-360" width="1280" height="720" fill="#202020"/>'
    static: true
  - name: square
    kind: polygon
    points:
      - {x: -100, y: -100}
      - {x: 100, y: -100}
      - {x: 100, y: 100}
      - {x: -100, y: 100}
    fill: "#ff8800"
  - name: title
    kind: text
    text: Shapes
    y: -300
    size: 120
animations:
  - object: square
    enter:
      kind: draw
      duration: 2
    lifetime: 3
  - object: title
    enter:
      kind: type
      after: square.enter
    exit:
      kind: fade
      with: square.exit
`

func TestParse_ValidScene(t *testing.T) {
	doc, err := Parse([]byte(validScene))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if doc.Canvas.Width != 1280 || doc.Canvas.FPS != 30 {
		t.Errorf("canvas = %+v", doc.Canvas)
	}
	if len(doc.Objects) != 3 {
		t.Errorf("objects = %d, want 3", len(doc.Objects))
	}
	if len(doc.Animations) != 2 {
		t.Errorf("animations = %d, want 2", len(doc.Animations))
	}
}

func TestParse_UnknownFieldRejected(t *testing.T) {
	scene := `objects:
  - name: a
    kind: text
    text: hi
    colour: "#fff"
animations:
  - object: a
    lifetime: 1
`
	if _, err := Parse([]byte(scene)); err == nil {
		t.Fatal("Parse() with unknown field succeeded, want error")
	}
}

func TestParse_Empty(t *testing.T) {
	if _, err := Parse(nil); err == nil {
		t.Fatal("Parse() of empty input succeeded, want error")
	}
}

func TestValidate_Errors(t *testing.T) {
	cases := []struct {
		name    string
		scene   string
		wantErr string
	}{
		{
			name:    "no objects",
			scene:   "objects: []\n",
			wantErr: "no objects",
		},
		{
			name: "duplicate name",
			scene: `objects:
  - {name: a, kind: text, text: x, static: true}
  - {name: a, kind: text, text: y, static: true}
`,
			wantErr: "duplicate name",
		},
		{
			name: "polygon too few points",
			scene: `objects:
  - name: tri
    kind: polygon
    points:
      - {x: 0, y: 0}
      - {x: 1, y: 0}
    static: true
`,
			wantErr: "at least 3 points",
		},
		{
			name: "unknown kind",
			scene: `objects:
  - {name: a, kind: sprite, static: true}
`,
			wantErr: "unknown kind",
		},
		{
			name: "bad color",
			scene: `objects:
  - {name: a, kind: text, text: x, color: chartreuse-ish, static: true}
`,
			wantErr: "chartreuse-ish",
		},
		{
			name: "animation references unknown object",
			scene: `objects:
  - {name: a, kind: text, text: x, static: true}
animations:
  - {object: b, lifetime: 1}
`,
			wantErr: "unknown object",
		},
		{
			name: "no exit or lifetime",
			scene: `objects:
  - {name: a, kind: text, text: x}
animations:
  - object: a
    enter: {kind: fade}
`,
			wantErr: "exit or a lifetime",
		},
		{
			name: "draw on text",
			scene: `objects:
  - {name: a, kind: text, text: x}
animations:
  - object: a
    enter: {kind: draw}
    lifetime: 1
`,
			wantErr: "requires a polygon",
		},
		{
			name: "forward reference",
			scene: `objects:
  - {name: a, kind: text, text: x}
  - {name: b, kind: text, text: y}
animations:
  - object: a
    enter: {kind: fade, after: b.enter}
    lifetime: 1
  - {object: b, lifetime: 1}
`,
			wantErr: "earlier animated object",
		},
		{
			name: "unanimated object",
			scene: `objects:
  - {name: a, kind: text, text: x}
`,
			wantErr: "neither static nor animated",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.scene))
			if err == nil {
				t.Fatal("Parse() succeeded, want error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error = %q, want to contain %q", err, tc.wantErr)
			}
		})
	}
}

func TestSplitRef(t *testing.T) {
	name, phase, err := splitRef("square.enter")
	if err != nil {
		t.Fatalf("splitRef() error = %v", err)
	}
	if name != "square" || phase != "enter" {
		t.Errorf("splitRef() = %q, %q", name, phase)
	}

	for _, bad := range []string{"square", ".enter", "square.", ""} {
		if _, _, err := splitRef(bad); err == nil {
			t.Errorf("splitRef(%q) succeeded, want error", bad)
		}
	}
}

package scene

import (
	"strconv"
	"unicode/utf8"

	"github.com/kinemalab/kinema/pkg/svg"
)

// The average word length used to convert words-per-minute typing speed
// into a duration.
const avgWordLength = 5.0

// glyphWidthRatio approximates the advance width of a glyph as a fraction
// of the font size. Used for metric-based bounds; good enough for layout,
// not for typesetting.
const glyphWidthRatio = 0.6

// Text is a positioned text object.
type Text struct {
	Content  string
	X, Y     float64
	FontSize float64
	Color    Color
	// Anchor controls where (X, Y) sits relative to the rendered text:
	// "start", "middle", or "end".
	Anchor string
	Z      int
}

// NewText creates a text object with the default size, color, and anchor.
func NewText(content string) *Text {
	return &Text{
		Content:  content,
		FontSize: 100,
		Color:    RGB(255, 255, 255),
		Anchor:   "middle",
	}
}

// Clone returns a copy of the text object.
func (t *Text) Clone() *Text {
	c := *t
	return &c
}

// At sets the anchor position.
func (t *Text) At(x, y float64) *Text {
	t.X = x
	t.Y = y
	return t
}

// Size sets the font size.
func (t *Text) Size(fontSize float64) *Text {
	t.FontSize = fontSize
	return t
}

// WithAnchor sets the text anchor ("start", "middle", or "end").
func (t *Text) WithAnchor(anchor string) *Text {
	t.Anchor = anchor
	return t
}

// WithColor sets the text color.
func (t *Text) WithColor(c Color) *Text {
	t.Color = c
	return t
}

// ZIndex sets the draw order of the text.
func (t *Text) ZIndex(z int) *Text {
	t.Z = z
	return t
}

// Shift moves the text by (x, y).
func (t *Text) Shift(x, y float64) *Text {
	t.X += x
	t.Y += y
	return t
}

// Beside positions the text on the given side of another text object.
func (t *Text) Beside(other *Text, dir Direction) *Text {
	b := other.Bounds()
	switch dir {
	case Left:
		t.X, t.Y = b.MinX, other.Y
	case Right:
		t.X, t.Y = b.MaxX, other.Y
	case Up:
		t.X, t.Y = other.X, b.MinY
	case Down:
		t.X, t.Y = other.X, b.MaxY
	}
	return t
}

// TypingDuration returns the seconds it would take to type the content at
// the given words-per-minute speed.
func (t *Text) TypingDuration(wpm float64) float64 {
	return float64(len(t.Content)) / avgWordLength / wpm * 60
}

// Render serializes the text as flattened glyph outlines in a single SVG
// <path>, positioned with (X, Y) on the baseline. The rasterizer does not
// draw <text> elements, which is why glyphs are flattened here; a plain
// <text> element is the fallback if the embedded font fails to parse.
func (t *Text) Render() (int, svg.Node) {
	f := defaultFace()
	if f == nil {
		el := svg.NewElement("text").
			Set("x", t.X).
			Set("y", t.Y).
			Set("font-size", t.FontSize).
			Set("fill", t.Color.CSS()).
			Set("text-anchor", t.Anchor).
			Add(svg.Text(t.Content))
		return t.Z, el
	}

	lay := f.layoutString(t.Content, t.FontSize)
	if lay.path == "" {
		return t.Z, svg.Group()
	}

	x := t.X
	switch t.Anchor {
	case "start":
	case "end":
		x -= lay.width
	default: // middle
		x -= lay.width / 2
	}

	el := svg.NewElement("path").
		Set("d", lay.path).
		Set("transform", "translate("+fmtCoord(x)+","+fmtCoord(t.Y)+")").
		Set("fill", t.Color.CSS())
	if t.Color.A < 255 {
		el.Set("fill-opacity", t.Color.Opacity())
	}
	return t.Z, el
}

// Bounds returns the bounding box of the shaped text, honoring the anchor.
// The box comes from the face's advances and vertical metrics; when the
// embedded font is unavailable it degrades to a glyph-count approximation.
func (t *Text) Bounds() Bounds {
	width := float64(utf8.RuneCountInString(t.Content)) * t.FontSize * glyphWidthRatio
	ascent := t.FontSize * 0.8
	descent := t.FontSize * 0.2
	if f := defaultFace(); f != nil {
		lay := f.layoutString(t.Content, t.FontSize)
		width, ascent, descent = lay.width, lay.ascent, lay.descent
	}

	var minX float64
	switch t.Anchor {
	case "start":
		minX = t.X
	case "end":
		minX = t.X - width
	default: // middle
		minX = t.X - width/2
	}

	// The y position is the text baseline.
	return Bounds{
		MinX: minX,
		MinY: t.Y - ascent,
		MaxX: minX + width,
		MaxY: t.Y + descent,
	}
}

func fmtCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

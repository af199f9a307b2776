package anim

import (
	"fmt"
	"hash/fnv"
	"math"

	"github.com/kinemalab/kinema/pkg/scene"
	"github.com/kinemalab/kinema/pkg/svg"
)

// TextType types text out character by character, showing a trailing "_"
// cursor until the full content is visible.
type TextType struct {
	Text *scene.Text
}

// Frame renders the typed prefix of the text.
func (t TextType) Frame(progress float64) (int, svg.Node) {
	runes := []rune(t.Text.Content)
	done := int(math.Floor(float64(len(runes)) * progress))
	if done > len(runes) {
		done = len(runes)
	}

	partial := t.Text.Clone()
	if done < len(runes) {
		partial.Content = string(runes[:done]) + "_"
	}
	return partial.Render()
}

// TextReveal uncovers text left to right behind a widening clip rectangle.
// It is the closest SVG-native analogue to stroking the glyph outlines.
type TextReveal struct {
	Text *scene.Text
}

// Frame renders the text clipped to the revealed fraction of its bounds.
func (t TextReveal) Frame(progress float64) (int, svg.Node) {
	b := t.Text.Bounds()
	clipID := fmt.Sprintf("reveal-%08x", contentHash(t.Text.Content))

	rect := svg.NewElement("rect").
		Set("x", b.MinX).
		Set("y", b.MinY).
		Set("width", b.Width()*progress).
		Set("height", b.Height())

	defs := svg.NewElement("defs").
		Add(svg.NewElement("clipPath").Set("id", clipID).Add(rect))

	z, text := t.Text.Render()
	clipped := svg.Group().
		Set("clip-path", fmt.Sprintf("url(#%s)", clipID)).
		Add(text)

	return z, svg.Group().Add(defs).Add(clipped)
}

func contentHash(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}

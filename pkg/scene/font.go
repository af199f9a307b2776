package scene

import (
	"strconv"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// face is the embedded fallback typeface. Pure-Go SVG rasterizers do not
// draw <text> elements, so text is flattened to glyph outline paths at
// render time.
type face struct {
	font *sfnt.Font

	mu  sync.Mutex
	buf sfnt.Buffer
}

var (
	faceOnce sync.Once
	faceInst *face
)

// defaultFace returns the shared Go Regular face, or nil if the embedded
// font fails to parse.
func defaultFace() *face {
	faceOnce.Do(func() {
		f, err := sfnt.Parse(goregular.TTF)
		if err != nil {
			return
		}
		faceInst = &face{font: f}
	})
	return faceInst
}

// layout is the flattened outline of a string at a font size. The path
// origin sits at the start of the baseline; y grows downward, matching SVG.
type layout struct {
	path    string
	width   float64
	ascent  float64
	descent float64
}

// layoutString shapes the content at the given size: glyph outlines are
// concatenated into one SVG path, advanced and kerned along the baseline.
func (f *face) layoutString(content string, size float64) layout {
	f.mu.Lock()
	defer f.mu.Unlock()

	ppem := fixed.Int26_6(size * 64)

	var (
		b       strings.Builder
		penX    fixed.Int26_6
		prev    sfnt.GlyphIndex
		hasPrev bool
	)
	for _, r := range content {
		gi, err := f.font.GlyphIndex(&f.buf, r)
		if err != nil || gi == 0 {
			// Missing glyph: advance half an em and break the kerning pair.
			penX += ppem / 2
			hasPrev = false
			continue
		}
		if hasPrev {
			if k, err := f.font.Kern(&f.buf, prev, gi, ppem, font.HintingNone); err == nil {
				penX += k
			}
		}
		if segs, err := f.font.LoadGlyph(&f.buf, gi, ppem, nil); err == nil {
			appendSegments(&b, segs, fixedToFloat(penX))
		}
		adv, err := f.font.GlyphAdvance(&f.buf, gi, ppem, font.HintingNone)
		if err != nil {
			adv = ppem / 2
		}
		penX += adv
		prev, hasPrev = gi, true
	}

	lay := layout{path: b.String(), width: fixedToFloat(penX)}
	if m, err := f.font.Metrics(&f.buf, ppem, font.HintingNone); err == nil {
		lay.ascent = fixedToFloat(m.Ascent)
		lay.descent = fixedToFloat(m.Descent)
	} else {
		lay.ascent = size * 0.8
		lay.descent = size * 0.2
	}
	return lay
}

// appendSegments writes one glyph's contours as absolute path commands,
// shifted right by dx. Fill treats each contour as closed, so no explicit
// close commands are needed.
func appendSegments(b *strings.Builder, segs sfnt.Segments, dx float64) {
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			b.WriteByte('M')
			writePoint(b, seg.Args[0], dx)
		case sfnt.SegmentOpLineTo:
			b.WriteByte('L')
			writePoint(b, seg.Args[0], dx)
		case sfnt.SegmentOpQuadTo:
			b.WriteByte('Q')
			writePoint(b, seg.Args[0], dx)
			b.WriteByte(' ')
			writePoint(b, seg.Args[1], dx)
		case sfnt.SegmentOpCubeTo:
			b.WriteByte('C')
			writePoint(b, seg.Args[0], dx)
			b.WriteByte(' ')
			writePoint(b, seg.Args[1], dx)
			b.WriteByte(' ')
			writePoint(b, seg.Args[2], dx)
		}
	}
}

func writePoint(b *strings.Builder, p fixed.Point26_6, dx float64) {
	b.WriteString(strconv.FormatFloat(dx+fixedToFloat(p.X), 'f', -1, 64))
	b.WriteByte(',')
	b.WriteString(strconv.FormatFloat(fixedToFloat(p.Y), 'f', -1, 64))
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

package anim

import (
	"math"

	"github.com/kinemalab/kinema/pkg/scene"
)

// equalizeRings returns copies of a and b extended to the same length so
// that interpolating point-by-point between them is smooth. The shorter
// ring gains synthetic points projected onto its edges; the longer ring is
// reordered so matched points line up.
func equalizeRings(a, b []scene.Point) ([]scene.Point, []scene.Point) {
	switch {
	case len(a) < len(b):
		short, long := insertMissing(a, b)
		return short, long
	case len(a) > len(b):
		short, long := insertMissing(b, a)
		return long, short
	default:
		return append([]scene.Point(nil), a...), append([]scene.Point(nil), b...)
	}
}

// insertMissing grows short to the length of long. Both rings are
// normalized to their top-left corner so matching is translation-invariant.
//
// Each short point claims its closest unclaimed long point. Every remaining
// long point is projected onto the short ring's edges and attached to the
// edge it falls closest to. The rebuilt rings interleave the claimed points
// with the projected ones in edge order.
func insertMissing(short, long []scene.Point) ([]scene.Point, []scene.Point) {
	shortOrigin := topLeft(short)
	shortNorm := translate(short, -shortOrigin.X, -shortOrigin.Y)

	longOrigin := topLeft(long)
	longNorm := translate(long, -longOrigin.X, -longOrigin.Y)

	// Pool of long-ring indices still unclaimed.
	type indexed struct {
		idx int
		pt  scene.Point
	}
	pool := make([]indexed, len(longNorm))
	for i, pt := range longNorm {
		pool[i] = indexed{idx: i, pt: pt}
	}

	// Each short point claims the closest remaining long point.
	static := make([]indexed, 0, len(shortNorm))
	for _, pt := range shortNorm {
		best := 0
		bestDist := math.Inf(1)
		for i, cand := range pool {
			if d := dist(pt, cand.pt); d < bestDist {
				best, bestDist = i, d
			}
		}
		static = append(static, indexed{idx: pool[best].idx, pt: pt})
		pool = append(pool[:best], pool[best+1:]...)
	}

	// Attach every leftover long point to the short edge it projects
	// closest onto.
	type projected struct {
		idx int
		pt  scene.Point
	}
	segments := make([][]projected, len(shortNorm))
	for _, cand := range pool {
		bestSeg := 0
		bestDist := math.Inf(1)
		var bestPt scene.Point
		for i := range shortNorm {
			edgeA := shortNorm[i]
			edgeB := shortNorm[(i+1)%len(shortNorm)]
			pt, d := projectOntoSegment(edgeA, edgeB, cand.pt)
			if d < bestDist {
				bestSeg, bestDist, bestPt = i, d, pt
			}
		}
		segments[bestSeg] = append(segments[bestSeg], projected{idx: cand.idx, pt: bestPt})
	}

	// Rebuild both rings in matched order.
	longIdx := make([]int, 0, len(long))
	shortOut := make([]scene.Point, 0, len(long))
	for i, seg := range segments {
		longIdx = append(longIdx, static[i].idx)
		shortOut = append(shortOut, static[i].pt)
		for _, p := range seg {
			longIdx = append(longIdx, p.idx)
			shortOut = append(shortOut, p.pt)
		}
	}

	longOut := make([]scene.Point, len(longIdx))
	for i, idx := range longIdx {
		longOut[i] = long[idx]
	}
	return translate(shortOut, shortOrigin.X, shortOrigin.Y), longOut
}

// projectOntoSegment returns the point on segment ab closest to p, plus the
// distance from p to that point.
func projectOntoSegment(a, b, p scene.Point) (scene.Point, float64) {
	abX, abY := b.X-a.X, b.Y-a.Y
	lenSq := abX*abX + abY*abY
	if lenSq == 0 {
		return a, dist(a, p)
	}
	t := ((p.X-a.X)*abX + (p.Y-a.Y)*abY) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	q := scene.Pt(a.X+abX*t, a.Y+abY*t)
	return q, dist(q, p)
}

func dist(a, b scene.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

func translate(points []scene.Point, x, y float64) []scene.Point {
	out := make([]scene.Point, len(points))
	for i, p := range points {
		out[i] = scene.Pt(p.X+x, p.Y+y)
	}
	return out
}

// topLeft returns the component-wise minimum of the points.
func topLeft(points []scene.Point) scene.Point {
	min := scene.Pt(math.Inf(1), math.Inf(1))
	for _, p := range points {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
	}
	return min
}

// Package render turns a timeline of objects and animations into video: it
// plans per-frame content, rasterizes frames in parallel, and hands them to
// an encoder in order.
package render

import (
	"math"
	"sort"
	"strconv"

	"github.com/kinemalab/kinema/pkg/anim"
	"github.com/kinemalab/kinema/pkg/scene"
	"github.com/kinemalab/kinema/pkg/svg"
)

// tailFrames pads the end of the video so the final state lingers briefly
// instead of cutting on the last animation frame.
const tailFrames = 10

// layer is a pre-rendered node with its draw order.
type layer struct {
	z    int
	node svg.Node
}

// Timeline holds everything that appears in the video. The video length
// derives from the end of the last exit animation.
type Timeline struct {
	statics  []layer
	animated []anim.Object
}

// AddObject adds a static object, visible for the whole video. A timeline
// with only static objects has zero duration and renders only the tail.
func (t *Timeline) AddObject(o scene.Object) *Timeline {
	z, node := o.Render()
	t.statics = append(t.statics, layer{z: z, node: node})
	return t
}

// AddAnimation adds an animated object with enter and exit transitions.
func (t *Timeline) AddAnimation(o anim.Object) *Timeline {
	t.animated = append(t.animated, o)
	return t
}

// EndTime returns the timeline duration in seconds.
func (t *Timeline) EndTime() float64 {
	var end float64
	for _, o := range t.animated {
		end = math.Max(end, o.Exit.End)
	}
	return end
}

// framePlan is everything needed to composite one frame.
type framePlan struct {
	time    float64
	statics []layer
	active  []anim.Container
}

// plan expands the timeline into per-frame content at the given frame rate.
func (t *Timeline) plan(fps int) []framePlan {
	frameCount := int(math.Ceil(t.EndTime()*float64(fps))) + tailFrames
	frameDuration := 1 / float64(fps)

	frames := make([]framePlan, frameCount)
	for i := range frames {
		frames[i].time = float64(i) * frameDuration
		frames[i].statics = append([]layer(nil), t.statics...)
	}

	addActive := func(c anim.Container) {
		first, last := frameRange(c.Start, c.End, fps)
		for i := first; i < last && i < frameCount; i++ {
			frames[i].active = append(frames[i].active, c)
		}
	}

	for _, o := range t.animated {
		addActive(o.Enter)
		addActive(o.Exit)

		// The object itself is on screen between enter and exit.
		z, node := o.Subject.Render()
		first, last := frameRange(o.Enter.End, o.Exit.Start, fps)
		for i := first; i < last && i < frameCount; i++ {
			frames[i].statics = append(frames[i].statics, layer{z: z, node: node})
		}
	}

	return frames
}

// frameRange converts a time window in seconds to a half-open frame index
// range [first, last).
func frameRange(start, end float64, fps int) (int, int) {
	first := int(math.Floor(start * float64(fps)))
	last := int(math.Ceil(end * float64(fps)))
	if first < 0 {
		first = 0
	}
	return first, last
}

// composite builds the SVG document for one frame. The coordinate origin
// is centered on the canvas; layers stack by z, stable for equal values.
func composite(width, height int, f framePlan) *svg.Element {
	layers := append([]layer(nil), f.statics...)
	for _, c := range f.active {
		z, node := c.At(f.time)
		layers = append(layers, layer{z: z, node: node})
	}
	sort.SliceStable(layers, func(i, j int) bool { return layers[i].z < layers[j].z })

	centered := svg.Group().
		Set("transform", fmtTranslate(float64(width)/2, float64(height)/2))
	for _, l := range layers {
		centered.Add(l.node)
	}

	return svg.Document(width, height).Add(centered)
}

func fmtTranslate(x, y float64) string {
	fx := strconv.FormatFloat(x, 'f', -1, 64)
	fy := strconv.FormatFloat(y, 'f', -1, 64)
	return "translate(" + fx + ", " + fy + ")"
}

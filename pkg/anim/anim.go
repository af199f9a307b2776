// Package anim contains the animation system: the Animation interface, the
// Container timing wrapper with its combinators, and animations for the
// built-in scene objects.
package anim

import (
	"github.com/kinemalab/kinema/pkg/scene"
	"github.com/kinemalab/kinema/pkg/svg"
)

// Animation produces the frame content for a progress value in [0, 1].
// Implementations can assume progress is already clamped.
type Animation interface {
	Frame(progress float64) (z int, node svg.Node)
}

// None renders nothing. Useful when an object should simply appear or
// vanish without a transition.
type None struct{}

// Frame returns an empty group.
func (None) Frame(float64) (int, svg.Node) {
	return 0, svg.Group()
}

// Reverse plays another animation backwards.
type Reverse struct {
	Anim Animation
}

// Frame evaluates the wrapped animation at 1 - progress.
func (r Reverse) Frame(progress float64) (int, svg.Node) {
	return r.Anim.Frame(1 - progress)
}

// Fade fades an object in by ramping group opacity. The subject is rendered
// once at construction time.
type Fade struct {
	z    int
	node svg.Node
}

// NewFade creates a fade-in animation for the given object.
func NewFade(subject scene.Object) *Fade {
	z, node := subject.Render()
	return &Fade{z: z, node: node}
}

// Frame wraps the pre-rendered subject in a group with opacity equal to
// progress.
func (f *Fade) Frame(progress float64) (int, svg.Node) {
	g := svg.Group().Set("opacity", progress).Add(f.node)
	return f.z, g
}

package anim

import "github.com/kinemalab/kinema/pkg/svg"

// Container wraps an Animation with a position on the timeline. Start and
// End are in seconds. The zero Container is not useful; construct with
// NewContainer.
//
// Combinators return modified copies, so containers can be positioned
// relative to one another without aliasing.
type Container struct {
	Anim  Animation
	Start float64
	End   float64
}

// NewContainer wraps an animation with the default placement: one second
// starting at zero.
func NewContainer(a Animation) Container {
	return Container{Anim: a, Start: 0, End: 1}
}

// At evaluates the animation at an absolute timeline time, clamping the
// derived progress to [0, 1].
func (c Container) At(time float64) (int, svg.Node) {
	progress := 1.0
	if c.End > c.Start {
		progress = (time - c.Start) / (c.End - c.Start)
	}
	if progress < 0 {
		progress = 0
	} else if progress > 1 {
		progress = 1
	}
	return c.Anim.Frame(progress)
}

// Duration returns the length of the container in seconds.
func (c Container) Duration() float64 {
	return c.End - c.Start
}

// WithDuration moves End so the container lasts the given seconds.
func (c Container) WithDuration(seconds float64) Container {
	c.End = c.Start + seconds
	return c
}

// KeepEnd moves Start so the container lasts the given seconds while
// keeping its end time.
func (c Container) KeepEnd(seconds float64) Container {
	c.Start = c.End - seconds
	return c
}

// Delay shifts the container by the given seconds.
func (c Container) Delay(seconds float64) Container {
	c.Start += seconds
	c.End += seconds
	return c
}

// After moves the container to begin when other ends, preserving duration.
func (c Container) After(other Container) Container {
	d := c.Duration()
	c.Start = other.End
	c.End = c.Start + d
	return c
}

// StartWith aligns the container's start with other's start.
func (c Container) StartWith(other Container) Container {
	c.Start = other.Start
	return c
}

// EndWith aligns the container's end with other's end.
func (c Container) EndWith(other Container) Container {
	c.End = other.End
	return c
}

// Sync adopts both the start and end of other.
func (c Container) Sync(other Container) Container {
	c.Start = other.Start
	c.End = other.End
	return c
}

// Reversed plays the animation backwards within the same time window.
func (c Container) Reversed() Container {
	c.Anim = Reverse{Anim: c.Anim}
	return c
}

package anim

import "github.com/kinemalab/kinema/pkg/scene"

// Object pairs a scene object with its enter and exit animations. The
// object itself is drawn between the end of the enter animation and the
// start of the exit animation.
type Object struct {
	Subject scene.Object
	Enter   Container
	Exit    Container
}

// Lifetime moves the exit so the object stays on screen for the given
// seconds after its enter animation completes. The exit keeps its duration.
func (o Object) Lifetime(seconds float64) Object {
	d := o.Exit.Duration()
	o.Exit.Start = o.Enter.End + seconds
	o.Exit = o.Exit.WithDuration(d)
	return o
}

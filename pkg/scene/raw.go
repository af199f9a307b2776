package scene

import "github.com/kinemalab/kinema/pkg/svg"

// Raw is an object that renders a verbatim SVG fragment. The fragment is
// inserted into frames without validation or escaping.
type Raw struct {
	Markup string
	Z      int
}

// NewRaw creates a raw SVG object.
func NewRaw(markup string) *Raw {
	return &Raw{Markup: markup}
}

// ZIndex sets the draw order of the fragment.
func (r *Raw) ZIndex(z int) *Raw {
	r.Z = z
	return r
}

// Render returns the fragment unchanged.
func (r *Raw) Render() (int, svg.Node) {
	return r.Z, svg.Raw(r.Markup)
}

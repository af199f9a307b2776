// Package svg provides a minimal SVG document model: elements with ordered
// attributes and children that serialize to stable, deterministic markup.
// It is the rendering target for scene objects and animations.
package svg

import (
	"fmt"
	"strconv"
	"strings"
)

// Node is anything that can serialize itself as an SVG fragment.
type Node interface {
	// Markup returns the SVG text for the node.
	Markup() string
}

// attr is a single element attribute. Attributes keep insertion order so
// that serializing the same tree twice yields identical bytes.
type attr struct {
	name  string
	value string
}

// Element is an SVG element with attributes and child nodes.
type Element struct {
	tag      string
	attrs    []attr
	children []Node
}

// NewElement creates an element with the given tag.
func NewElement(tag string) *Element {
	return &Element{tag: tag}
}

// Group creates an empty <g> element.
func Group() *Element {
	return NewElement("g")
}

// Document creates a root <svg> element with the given pixel dimensions and
// a matching viewBox.
func Document(width, height int) *Element {
	return NewElement("svg").
		Set("xmlns", "http://www.w3.org/2000/svg").
		Set("viewBox", fmt.Sprintf("0 0 %d %d", width, height)).
		Set("width", width).
		Set("height", height)
}

// Set assigns an attribute, replacing an existing value for the same name
// in place. Values may be strings, integers, or floats; floats render with
// the shortest exact representation.
func (e *Element) Set(name string, value any) *Element {
	v := formatValue(value)
	for i := range e.attrs {
		if e.attrs[i].name == name {
			e.attrs[i].value = v
			return e
		}
	}
	e.attrs = append(e.attrs, attr{name: name, value: v})
	return e
}

// Add appends a child node.
func (e *Element) Add(child Node) *Element {
	e.children = append(e.children, child)
	return e
}

// Markup serializes the element and its subtree.
func (e *Element) Markup() string {
	var b strings.Builder
	e.writeTo(&b)
	return b.String()
}

func (e *Element) writeTo(b *strings.Builder) {
	b.WriteByte('<')
	b.WriteString(e.tag)
	for _, a := range e.attrs {
		b.WriteByte(' ')
		b.WriteString(a.name)
		b.WriteString(`="`)
		b.WriteString(escape(a.value))
		b.WriteByte('"')
	}
	if len(e.children) == 0 {
		b.WriteString("/>")
		return
	}
	b.WriteByte('>')
	for _, c := range e.children {
		if el, ok := c.(*Element); ok {
			el.writeTo(b)
		} else {
			b.WriteString(c.Markup())
		}
	}
	b.WriteString("</")
	b.WriteString(e.tag)
	b.WriteByte('>')
}

// Text is an escaped character-data node.
type Text string

// Markup returns the escaped text content.
func (t Text) Markup() string {
	return escape(string(t))
}

// Raw is a verbatim markup fragment inserted without escaping.
type Raw string

// Markup returns the fragment as-is.
func (r Raw) Markup() string {
	return string(r)
}

// formatValue renders an attribute value. Floats use the shortest exact
// decimal form so coordinates stay compact and stable.
func formatValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	default:
		return fmt.Sprint(v)
	}
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escape(s string) string {
	return escaper.Replace(s)
}

// Package scenefile loads declarative YAML scene descriptions and compiles
// them into renderable timelines.
package scenefile

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kinemalab/kinema/pkg/scene"
)

// Document is a parsed scene file.
type Document struct {
	Canvas     CanvasSpec      `yaml:"canvas"`
	Objects    []ObjectSpec    `yaml:"objects"`
	Animations []AnimationSpec `yaml:"animations"`
}

// CanvasSpec overrides the configured canvas for a single scene.
// Zero values fall back to the global configuration.
type CanvasSpec struct {
	Width  int `yaml:"width,omitempty"`
	Height int `yaml:"height,omitempty"`
	FPS    int `yaml:"fps,omitempty"`
}

// ObjectSpec declares a named drawable object.
type ObjectSpec struct {
	Name    string  `yaml:"name"`
	Kind    string  `yaml:"kind"` // polygon, text, raw
	Z       int     `yaml:"z,omitempty"`
	Static  bool    `yaml:"static,omitempty"` // drawn for the whole scene, no animation entry needed
	Points  []Coord `yaml:"points,omitempty"`
	Fill    string  `yaml:"fill,omitempty"`
	Outline string  `yaml:"outline,omitempty"`
	Stroke  float64 `yaml:"stroke,omitempty"`
	Text    string  `yaml:"text,omitempty"`
	X       float64 `yaml:"x,omitempty"`
	Y       float64 `yaml:"y,omitempty"`
	Size    float64 `yaml:"size,omitempty"`
	Color   string  `yaml:"color,omitempty"`
	Anchor  string  `yaml:"anchor,omitempty"`
	Markup  string  `yaml:"markup,omitempty"`
}

// Coord is a point in scene coordinates, origin at the canvas center.
type Coord struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// AnimationSpec places a named object on the timeline.
type AnimationSpec struct {
	Object   string      `yaml:"object"`
	Enter    *EffectSpec `yaml:"enter,omitempty"`
	Exit     *EffectSpec `yaml:"exit,omitempty"`
	Lifetime float64     `yaml:"lifetime,omitempty"` // seconds on screen after enter, alternative to exit timing
}

// EffectSpec describes one enter or exit effect.
type EffectSpec struct {
	Kind     string  `yaml:"kind"` // fade, none, draw, morph, type, reveal
	Target   string  `yaml:"target,omitempty"` // other endpoint of a morph
	Duration float64 `yaml:"duration,omitempty"`
	Delay    float64 `yaml:"delay,omitempty"`
	After    string  `yaml:"after,omitempty"` // "<object>.enter" or "<object>.exit"
	With     string  `yaml:"with,omitempty"`  // start together with "<object>.enter" or "<object>.exit"
	Reversed bool    `yaml:"reversed,omitempty"`
}

// Load reads and parses a scene file from disk.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: scene path comes from the CLI user
	if err != nil {
		return nil, fmt.Errorf("reading scene file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a scene document, rejecting unknown fields so typos in
// scene files surface as errors instead of silently dropped settings.
func Parse(data []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("scene file is empty")
		}
		return nil, fmt.Errorf("parsing scene file: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks referential integrity: every animation must reference a
// declared object, morph targets must exist, and sequencing references
// ("after", "with") may only point at earlier animation entries.
func (d *Document) Validate() error {
	if len(d.Objects) == 0 {
		return fmt.Errorf("scene declares no objects")
	}

	objects := make(map[string]ObjectSpec, len(d.Objects))
	for i, o := range d.Objects {
		if o.Name == "" {
			return fmt.Errorf("objects[%d]: missing name", i)
		}
		if _, dup := objects[o.Name]; dup {
			return fmt.Errorf("objects[%d]: duplicate name %q", i, o.Name)
		}
		switch o.Kind {
		case "polygon":
			if len(o.Points) < 3 {
				return fmt.Errorf("object %q: polygon needs at least 3 points", o.Name)
			}
		case "text":
			if o.Text == "" {
				return fmt.Errorf("object %q: text object needs text", o.Name)
			}
		case "raw":
			if o.Markup == "" {
				return fmt.Errorf("object %q: raw object needs markup", o.Name)
			}
		default:
			return fmt.Errorf("object %q: unknown kind %q", o.Name, o.Kind)
		}
		for _, c := range []string{o.Fill, o.Outline, o.Color} {
			if c == "" {
				continue
			}
			if _, err := scene.ParseColor(c); err != nil {
				return fmt.Errorf("object %q: %w", o.Name, err)
			}
		}
		objects[o.Name] = o
	}

	animated := make(map[string]bool, len(d.Animations))
	for i, a := range d.Animations {
		spec, ok := objects[a.Object]
		if !ok {
			return fmt.Errorf("animations[%d]: unknown object %q", i, a.Object)
		}
		if spec.Static {
			return fmt.Errorf("animations[%d]: object %q is static", i, a.Object)
		}
		if animated[a.Object] {
			return fmt.Errorf("animations[%d]: object %q animated twice", i, a.Object)
		}
		if a.Exit == nil && a.Lifetime <= 0 {
			return fmt.Errorf("animations[%d]: object %q needs an exit or a lifetime", i, a.Object)
		}
		for _, eff := range []*EffectSpec{a.Enter, a.Exit} {
			if eff == nil {
				continue
			}
			if err := validateEffect(eff, spec, objects, animated); err != nil {
				return fmt.Errorf("animations[%d]: object %q: %w", i, a.Object, err)
			}
		}
		animated[a.Object] = true
	}

	for name, o := range objects {
		if !o.Static && !animated[name] {
			return fmt.Errorf("object %q is neither static nor animated", name)
		}
	}
	return nil
}

func validateEffect(eff *EffectSpec, obj ObjectSpec, objects map[string]ObjectSpec, animated map[string]bool) error {
	switch eff.Kind {
	case "fade", "none":
	case "draw", "morph":
		if obj.Kind != "polygon" {
			return fmt.Errorf("%s effect requires a polygon, got %s", eff.Kind, obj.Kind)
		}
		if eff.Kind == "morph" {
			target, ok := objects[eff.Target]
			if !ok {
				return fmt.Errorf("morph target %q not declared", eff.Target)
			}
			if target.Kind != "polygon" {
				return fmt.Errorf("morph target %q is not a polygon", eff.Target)
			}
		}
	case "type", "reveal":
		if obj.Kind != "text" {
			return fmt.Errorf("%s effect requires a text object, got %s", eff.Kind, obj.Kind)
		}
	default:
		return fmt.Errorf("unknown effect kind %q", eff.Kind)
	}
	if eff.Duration < 0 {
		return fmt.Errorf("negative duration %v", eff.Duration)
	}
	for _, ref := range []string{eff.After, eff.With} {
		if ref == "" {
			continue
		}
		name, phase, err := splitRef(ref)
		if err != nil {
			return err
		}
		if !animated[name] {
			return fmt.Errorf("reference %q must name an earlier animated object", ref)
		}
		if phase != "enter" && phase != "exit" {
			return fmt.Errorf("reference %q: phase must be enter or exit", ref)
		}
	}
	return nil
}

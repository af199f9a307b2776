package scenefile

import (
	"fmt"
	"strings"

	"github.com/kinemalab/kinema/pkg/anim"
	"github.com/kinemalab/kinema/pkg/models"
	"github.com/kinemalab/kinema/pkg/render"
	"github.com/kinemalab/kinema/pkg/scene"
)

const defaultEffectDuration = 1.0

// Compile turns a validated document into a configured renderer. Canvas
// settings in the document override the global configuration.
func Compile(doc *Document, cfg *models.GlobalConfig) (*render.Renderer, error) {
	width, height, fps := cfg.Width, cfg.Height, cfg.FPS
	if doc.Canvas.Width > 0 {
		width = doc.Canvas.Width
	}
	if doc.Canvas.Height > 0 {
		height = doc.Canvas.Height
	}
	if doc.Canvas.FPS > 0 {
		fps = doc.Canvas.FPS
	}

	objects := make(map[string]scene.Object, len(doc.Objects))
	for _, spec := range doc.Objects {
		obj, err := buildObject(spec)
		if err != nil {
			return nil, err
		}
		objects[spec.Name] = obj
	}

	r := render.New(width, height).SetFPS(fps)
	if cfg.Workers > 0 {
		r.SetWorkers(cfg.Workers)
	}
	tl := r.Timeline()

	for _, spec := range doc.Objects {
		if spec.Static {
			tl.AddObject(objects[spec.Name])
		}
	}

	// Containers for already-placed animations, keyed "<object>.enter"
	// and "<object>.exit", so later entries can sequence against them.
	placed := make(map[string]anim.Container)

	for _, a := range doc.Animations {
		subject := objects[a.Object]

		enter, err := buildContainer(a.Enter, subject, objects, placed, false)
		if err != nil {
			return nil, fmt.Errorf("object %q enter: %w", a.Object, err)
		}

		exit, err := buildContainer(a.Exit, subject, objects, placed, true)
		if err != nil {
			return nil, fmt.Errorf("object %q exit: %w", a.Object, err)
		}

		obj := anim.Object{Subject: subject, Enter: enter, Exit: exit}
		// An unplaced exit follows the enter; a lifetime overrides it.
		if a.Exit == nil || (a.Exit.After == "" && a.Exit.With == "") {
			obj.Exit = obj.Exit.After(obj.Enter)
			if a.Exit != nil && a.Exit.Delay > 0 {
				obj.Exit = obj.Exit.Delay(a.Exit.Delay)
			}
		}
		if a.Lifetime > 0 {
			obj = obj.Lifetime(a.Lifetime)
		}

		tl.AddAnimation(obj)
		placed[a.Object+".enter"] = obj.Enter
		placed[a.Object+".exit"] = obj.Exit
	}

	return r, nil
}

// buildObject constructs the concrete scene object for a spec. Specs are
// assumed validated.
func buildObject(spec ObjectSpec) (scene.Object, error) {
	switch spec.Kind {
	case "polygon":
		p := scene.NewPolygon()
		for _, c := range spec.Points {
			p.AddPoint(c.X, c.Y)
		}
		if spec.Fill != "" {
			c, err := scene.ParseColor(spec.Fill)
			if err != nil {
				return nil, fmt.Errorf("object %q fill: %w", spec.Name, err)
			}
			p.Fill(c)
		}
		if spec.Outline != "" {
			c, err := scene.ParseColor(spec.Outline)
			if err != nil {
				return nil, fmt.Errorf("object %q outline: %w", spec.Name, err)
			}
			p.Outline(c)
		}
		if spec.Stroke > 0 {
			p.Stroke(spec.Stroke)
		}
		return p.ZIndex(spec.Z), nil

	case "text":
		t := scene.NewText(spec.Text).At(spec.X, spec.Y)
		if spec.Size > 0 {
			t.Size(spec.Size)
		}
		if spec.Color != "" {
			c, err := scene.ParseColor(spec.Color)
			if err != nil {
				return nil, fmt.Errorf("object %q color: %w", spec.Name, err)
			}
			t.WithColor(c)
		}
		if spec.Anchor != "" {
			t.WithAnchor(spec.Anchor)
		}
		return t.ZIndex(spec.Z), nil

	case "raw":
		return scene.NewRaw(spec.Markup).ZIndex(spec.Z), nil
	}
	return nil, fmt.Errorf("object %q: unknown kind %q", spec.Name, spec.Kind)
}

// buildContainer builds and places the animation container for one effect.
// Exit effects play their animation in reverse, so a fade becomes a
// fade-out; the Reversed flag flips that again.
func buildContainer(eff *EffectSpec, subject scene.Object, objects map[string]scene.Object, placed map[string]anim.Container, isExit bool) (anim.Container, error) {
	if eff == nil {
		eff = &EffectSpec{Kind: "fade"}
	}

	a, err := buildEffect(eff, subject, objects)
	if err != nil {
		return anim.Container{}, err
	}

	dur := eff.Duration
	if dur <= 0 {
		dur = defaultEffectDuration
	}

	c := anim.NewContainer(a).WithDuration(dur)
	if eff.After != "" {
		ref, err := lookupRef(placed, eff.After)
		if err != nil {
			return anim.Container{}, err
		}
		c = c.After(ref)
	}
	if eff.With != "" {
		ref, err := lookupRef(placed, eff.With)
		if err != nil {
			return anim.Container{}, err
		}
		c = c.StartWith(ref).WithDuration(dur)
	}
	if eff.Delay > 0 {
		c = c.Delay(eff.Delay)
	}
	if isExit != eff.Reversed {
		c = c.Reversed()
	}
	return c, nil
}

func buildEffect(eff *EffectSpec, subject scene.Object, objects map[string]scene.Object) (anim.Animation, error) {
	switch eff.Kind {
	case "none":
		return anim.None{}, nil
	case "fade":
		return anim.NewFade(subject), nil
	case "draw":
		p, ok := subject.(*scene.Polygon)
		if !ok {
			return nil, fmt.Errorf("draw effect requires a polygon")
		}
		return anim.PolygonDraw{Polygon: p}, nil
	case "morph":
		// The morph ends at the subject's own shape so the static object
		// picks up seamlessly where the enter animation stops. Target is
		// the other endpoint: enters morph from it, reversed exits morph
		// back into it.
		to, ok := subject.(*scene.Polygon)
		if !ok {
			return nil, fmt.Errorf("morph effect requires a polygon")
		}
		from, ok := objects[eff.Target].(*scene.Polygon)
		if !ok {
			return nil, fmt.Errorf("morph target %q is not a polygon", eff.Target)
		}
		return anim.NewPolygonMorph(from, to), nil
	case "type":
		t, ok := subject.(*scene.Text)
		if !ok {
			return nil, fmt.Errorf("type effect requires a text object")
		}
		return anim.TextType{Text: t}, nil
	case "reveal":
		t, ok := subject.(*scene.Text)
		if !ok {
			return nil, fmt.Errorf("reveal effect requires a text object")
		}
		return anim.TextReveal{Text: t}, nil
	}
	return nil, fmt.Errorf("unknown effect kind %q", eff.Kind)
}

// splitRef splits "<object>.<phase>" sequencing references.
func splitRef(ref string) (name, phase string, err error) {
	i := strings.LastIndex(ref, ".")
	if i <= 0 || i == len(ref)-1 {
		return "", "", fmt.Errorf("reference %q: want <object>.enter or <object>.exit", ref)
	}
	return ref[:i], ref[i+1:], nil
}

func lookupRef(placed map[string]anim.Container, ref string) (anim.Container, error) {
	c, ok := placed[ref]
	if !ok {
		return anim.Container{}, fmt.Errorf("reference %q does not match a placed animation", ref)
	}
	return c, nil
}

package anim

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/kinemalab/kinema/pkg/scene"
)

func TestTextTypePartial(t *testing.T) {
	txt := scene.NewText("hello")
	a := TextType{Text: txt}

	_, node := a.Frame(0.4) // 2 of 5 runes, plus the cursor

	expected := txt.Clone()
	expected.Content = "he_"
	_, want := expected.Render()
	if node.Markup() != want.Markup() {
		t.Errorf("partial typing markup = %s, want %s", node.Markup(), want.Markup())
	}
}

func TestTextTypeComplete(t *testing.T) {
	txt := scene.NewText("hello")
	a := TextType{Text: txt}

	_, node := a.Frame(1)
	_, full := txt.Render()
	if node.Markup() != full.Markup() {
		t.Errorf("complete typing markup = %s, want %s", node.Markup(), full.Markup())
	}

	_, partial := a.Frame(0.4)
	if partial.Markup() == node.Markup() {
		t.Error("partial frame identical to complete frame")
	}
}

func TestTextTypeDoesNotMutateSubject(t *testing.T) {
	txt := scene.NewText("hello")
	TextType{Text: txt}.Frame(0.5)
	if txt.Content != "hello" {
		t.Errorf("subject content mutated: %q", txt.Content)
	}
}

func TestTextRevealClip(t *testing.T) {
	txt := scene.NewText("reveal me").Size(50)
	a := TextReveal{Text: txt}

	_, node := a.Frame(0.5)
	markup := node.Markup()

	for _, part := range []string{"<defs>", "<clipPath", "clip-path=", "<path"} {
		if !strings.Contains(markup, part) {
			t.Errorf("markup missing %q: %s", part, markup)
		}
	}

	// Clip width scales with progress.
	halfWidth := txt.Bounds().Width() * 0.5
	want := fmt.Sprintf(`width="%s"`, strconv.FormatFloat(halfWidth, 'f', -1, 64))
	if !strings.Contains(markup, want) {
		t.Errorf("expected clip %s in %s", want, markup)
	}
}

func TestTextRevealDeterministicClipID(t *testing.T) {
	txt := scene.NewText("stable")
	a := TextReveal{Text: txt}

	_, first := a.Frame(0.3)
	_, second := a.Frame(0.3)
	if first.Markup() != second.Markup() {
		t.Error("reveal markup differs between identical frames")
	}
}

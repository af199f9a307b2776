package anim

import (
	"strings"
	"testing"

	"github.com/kinemalab/kinema/pkg/scene"
	"github.com/kinemalab/kinema/pkg/svg"
)

// progressRecorder captures the progress values passed to Frame.
type progressRecorder struct {
	got []float64
}

func (r *progressRecorder) Frame(progress float64) (int, svg.Node) {
	r.got = append(r.got, progress)
	return 0, svg.Group()
}

func TestContainerAtClampsProgress(t *testing.T) {
	rec := &progressRecorder{}
	c := NewContainer(rec)
	c.Start, c.End = 2, 4

	times := []float64{0, 2, 3, 4, 10}
	want := []float64{0, 0, 0.5, 1, 1}
	for _, tm := range times {
		c.At(tm)
	}
	for i, p := range rec.got {
		if p != want[i] {
			t.Errorf("At(%v) progress = %v, want %v", times[i], p, want[i])
		}
	}
}

func TestContainerZeroDuration(t *testing.T) {
	rec := &progressRecorder{}
	c := Container{Anim: rec, Start: 1, End: 1}
	c.At(5)
	if rec.got[0] != 1 {
		t.Errorf("zero-duration container progress = %v, want 1", rec.got[0])
	}
}

func TestCombinators(t *testing.T) {
	base := NewContainer(None{}) // [0, 1]

	d := base.WithDuration(3)
	if d.Start != 0 || d.End != 3 {
		t.Errorf("WithDuration: [%v, %v]", d.Start, d.End)
	}

	k := d.KeepEnd(1)
	if k.Start != 2 || k.End != 3 {
		t.Errorf("KeepEnd: [%v, %v]", k.Start, k.End)
	}

	del := base.Delay(2)
	if del.Start != 2 || del.End != 3 {
		t.Errorf("Delay: [%v, %v]", del.Start, del.End)
	}

	after := base.WithDuration(2).After(del)
	if after.Start != 3 || after.End != 5 {
		t.Errorf("After: [%v, %v]", after.Start, after.End)
	}

	sw := after.StartWith(del)
	if sw.Start != del.Start || sw.End != after.End {
		t.Errorf("StartWith: [%v, %v]", sw.Start, sw.End)
	}

	ew := base.EndWith(after)
	if ew.Start != base.Start || ew.End != after.End {
		t.Errorf("EndWith: [%v, %v]", ew.Start, ew.End)
	}

	sync := base.Sync(after)
	if sync.Start != after.Start || sync.End != after.End {
		t.Errorf("Sync: [%v, %v]", sync.Start, sync.End)
	}
}

func TestCombinatorsDoNotAlias(t *testing.T) {
	base := NewContainer(None{})
	_ = base.Delay(5)
	if base.Start != 0 || base.End != 1 {
		t.Errorf("Delay mutated receiver: [%v, %v]", base.Start, base.End)
	}
}

func TestReversed(t *testing.T) {
	rec := &progressRecorder{}
	c := NewContainer(rec).Reversed()
	c.At(0.25)
	if rec.got[0] != 0.75 {
		t.Errorf("Reversed progress = %v, want 0.75", rec.got[0])
	}
}

func TestLifetime(t *testing.T) {
	square := scene.NewPolygon(scene.Pt(0, 0), scene.Pt(1, 0), scene.Pt(1, 1))
	obj := Object{
		Subject: square,
		Enter:   NewContainer(NewFade(square)).WithDuration(2),
		Exit:    NewContainer(None{}).WithDuration(0.5),
	}

	obj = obj.Lifetime(3)
	if obj.Exit.Start != 5 {
		t.Errorf("Exit.Start = %v, want 5", obj.Exit.Start)
	}
	if obj.Exit.Duration() != 0.5 {
		t.Errorf("Exit duration = %v, want 0.5", obj.Exit.Duration())
	}
}

func TestFadeOpacity(t *testing.T) {
	square := scene.NewPolygon(scene.Pt(0, 0), scene.Pt(1, 0), scene.Pt(1, 1)).ZIndex(7)
	f := NewFade(square)

	z, node := f.Frame(0.25)
	if z != 7 {
		t.Errorf("z = %d, want 7", z)
	}
	if !strings.Contains(node.Markup(), `opacity="0.25"`) {
		t.Errorf("markup missing opacity: %s", node.Markup())
	}
}

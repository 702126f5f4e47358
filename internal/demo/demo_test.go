package demo

import (
	"math"
	"testing"

	"github.com/cutoff/knobkit/internal/tone"
)

func peak(e *tone.Engine, frames int) float64 {
	buf := make([]float32, frames*2)
	e.Process(buf)
	var p float64
	for _, s := range buf {
		if a := math.Abs(float64(s)); a > p {
			p = a
		}
	}
	return p
}

func TestBuildDemoBoard(t *testing.T) {
	d, err := Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if got := len(d.Controls()); got != 8 {
		t.Fatalf("control count = %d, want 8", got)
	}
	for id, want := range map[string]string{
		"gain":      "knob",
		"resonance": "slider",
		"wave":      "selector",
		"power":     "switch",
	} {
		if got := d.Kinds[id]; got != want {
			t.Errorf("kind of %s = %q, want %q", id, got, want)
		}
	}
	b, ok := d.Mapper.BindingOf(d.Control("gain"))
	if !ok || !b.Wide || b.CC != 7 {
		t.Fatalf("gain binding = %+v ok=%v, want wide cc 7", b, ok)
	}
}

func TestBindSynthFollowsControls(t *testing.T) {
	d, err := Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	e := tone.New(48000, tone.DefaultParams())
	d.BindSynth(e)

	e.NoteOn(69, d.NoteVelocity())
	if p := peak(e, 2400); p < 0.01 {
		t.Fatalf("peak = %f, want signal with power on", p)
	}
	d.Control("power").SetValue(0)
	if p := peak(e, 2400); p != 0 {
		t.Fatalf("peak = %f, want silence with power off", p)
	}
}

func TestAccentBoostsVelocity(t *testing.T) {
	d, err := Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if v := d.NoteVelocity(); v != 100 {
		t.Fatalf("NoteVelocity() = %d, want 100", v)
	}
	d.Control("accent").SetValue(1)
	if v := d.NoteVelocity(); v != 127 {
		t.Fatalf("NoteVelocity() = %d, want 127 with accent held", v)
	}
}

func TestMirrorSnapshot(t *testing.T) {
	d, err := Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	state := Mirror(d.Board)
	if state.Board != "knobkit demo" {
		t.Fatalf("board name = %q", state.Board)
	}
	if len(state.Controls) != 8 {
		t.Fatalf("control count = %d, want 8", len(state.Controls))
	}
	first := state.Controls[0]
	if first.ID != "gain" || first.Kind != "continuous" || first.Text != "0.0dB" {
		t.Fatalf("first control = %+v", first)
	}
	for _, cs := range state.Controls {
		if cs.ID == "wave" && cs.Kind != "selector" {
			t.Errorf("wave kind = %q, want selector", cs.Kind)
		}
	}
}

package tone

import (
	"math"
	"testing"
)

func peakOf(e *Engine, frames int) float64 {
	buf := make([]float32, frames*2)
	e.Process(buf)
	var peak float64
	for _, s := range buf {
		if a := math.Abs(float64(s)); a > peak {
			peak = a
		}
	}
	return peak
}

func TestNoteOnProducesSignal(t *testing.T) {
	e := New(48000, DefaultParams())
	id := e.NoteOn(69, 100)
	if id < 0 {
		t.Fatalf("invalid voice id")
	}
	if peak := peakOf(e, 4800); peak < 0.01 {
		t.Fatalf("peak = %f, want audible signal", peak)
	}
}

func TestReleaseDecaysToSilence(t *testing.T) {
	e := New(48000, DefaultParams())
	id := e.NoteOn(69, 100)
	peakOf(e, 4800)
	e.NoteOff(id)
	peakOf(e, 24000) // two release times
	if peak := peakOf(e, 4800); peak > 1e-4 {
		t.Fatalf("peak after release = %f, want silence", peak)
	}
	if n := e.ActiveVoiceCount(); n != 0 {
		t.Fatalf("ActiveVoiceCount() = %d, want 0", n)
	}
}

func TestWaveTypesProduceOutput(t *testing.T) {
	for _, w := range []Wave{WaveSine, WaveTriangle, WaveSquare, WaveSaw, WaveNoise} {
		e := New(48000, DefaultParams())
		e.SetWave(w)
		e.NoteOn(60, 100)
		if peak := peakOf(e, 2000); peak < 0.001 {
			t.Errorf("wave %d produced no output", w)
		}
	}
}

func TestVoiceStealingKeepsCount(t *testing.T) {
	p := DefaultParams()
	p.Voices = 2
	e := New(48000, p)
	e.NoteOn(60, 100)
	e.NoteOn(64, 100)
	e.NoteOn(67, 100)
	if n := e.ActiveVoiceCount(); n != 2 {
		t.Fatalf("ActiveVoiceCount() = %d, want 2", n)
	}
}

func TestCutoffDampsHighNote(t *testing.T) {
	open := New(48000, DefaultParams())
	open.SetWave(WaveSaw)
	open.NoteOn(81, 127)
	openPeak := peakOf(open, 4800)

	closed := New(48000, DefaultParams())
	closed.SetWave(WaveSaw)
	closed.SetCutoff(60)
	closed.NoteOn(81, 127)
	closedPeak := peakOf(closed, 4800)

	if closedPeak >= openPeak/2 {
		t.Fatalf("closed peak %f vs open peak %f, want strong damping", closedPeak, openPeak)
	}
}

func TestMasterGainSilencesOutput(t *testing.T) {
	e := New(48000, DefaultParams())
	e.SetMasterGain(0)
	e.NoteOn(69, 127)
	if peak := peakOf(e, 2000); peak != 0 {
		t.Fatalf("peak = %f, want 0 with master gain 0", peak)
	}
}

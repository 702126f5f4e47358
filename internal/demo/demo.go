// Package demo owns the board shared by the example frontends: the built-in
// definition, the synthesizer glue and the snapshot conversion for the
// remote mirror.
package demo

import (
	"math"

	"github.com/cutoff/knobkit"
	"github.com/cutoff/knobkit/boardfile"
	"github.com/cutoff/knobkit/internal/tone"
	"github.com/cutoff/knobkit/midimap"
	"github.com/cutoff/knobkit/param"
	"github.com/cutoff/knobkit/remote"
)

// mixHeadroom scales the summed voices so a full chord at unity gain stays
// clear of the clamp.
const mixHeadroom = 0.3

// Board bundles the built board with what the frontends need around it: the
// MIDI mapper and the widget kind per control id, which the built board no
// longer carries.
type Board struct {
	*knobkit.Board
	Mapper *midimap.Mapper
	Kinds  map[string]string // control id -> knob|slider|switch|selector
}

// Build constructs the built-in demo board.
func Build() (*Board, error) {
	return FromFile(boardfile.DefaultFile())
}

// FromFile builds a board definition, keeping the widget kinds alongside.
func FromFile(f *boardfile.File) (*Board, error) {
	board, mapper, err := f.Build()
	if err != nil {
		return nil, err
	}
	kinds := make(map[string]string, len(f.Controls))
	for _, c := range f.Controls {
		kind := c.Type
		if kind == "" {
			kind = "knob"
		}
		kinds[c.ID] = kind
	}
	return &Board{Board: board, Mapper: mapper, Kinds: kinds}, nil
}

// BindSynth applies the board's current state to the engine and keeps it
// applied as controls move.
func (d *Board) BindSynth(e *tone.Engine) {
	d.SyncSynth(e)
	d.OnChange(func(c *knobkit.Control) { d.ApplySynth(e, c) })
}

// SyncSynth pushes every control's current value into the synthesizer.
func (d *Board) SyncSynth(e *tone.Engine) {
	for _, c := range d.Controls() {
		d.ApplySynth(e, c)
	}
}

// ApplySynth routes one control change into the synthesizer. Gain, level and
// power multiply into the engine's single master gain; accent is read at
// note-on time instead.
func (d *Board) ApplySynth(e *tone.Engine, c *knobkit.Control) {
	switch c.ID() {
	case "gain", "level", "power":
		e.SetMasterGain(d.masterGain())
	case "pan":
		e.SetPan(c.Value() / 100)
	case "cutoff":
		e.SetCutoff(c.Value())
	case "resonance":
		e.SetResonance(c.Value() / 100)
	case "wave":
		e.SetWave(tone.Wave(c.Index()))
	}
}

// NoteVelocity returns the velocity for a new note, boosted while the accent
// switch is held.
func (d *Board) NoteVelocity() int {
	if a := d.Control("accent"); a != nil && a.On() {
		return 127
	}
	return 100
}

func (d *Board) masterGain() float64 {
	if p := d.Control("power"); p != nil && !p.On() {
		return 0
	}
	gain := 1.0
	if g := d.Control("gain"); g != nil {
		gain = math.Pow(10, g.Value()/20)
	}
	level := 1.0
	if l := d.Control("level"); l != nil {
		level = l.Value() / 100
	}
	return gain * level * mixHeadroom
}

// StateOf snapshots one control for the remote mirror.
func StateOf(c *knobkit.Control) remote.ControlState {
	return remote.ControlState{
		ID:         c.ID(),
		Name:       c.Name(),
		Kind:       kindOf(c.Def()),
		Text:       c.Text(),
		Value:      c.Value(),
		Normalized: c.Normalized(),
	}
}

// Mirror snapshots a whole board for remote.Server.SetBoard.
func Mirror(b *knobkit.Board) remote.BoardState {
	controls := b.Controls()
	states := make([]remote.ControlState, len(controls))
	for i, c := range controls {
		states[i] = StateOf(c)
	}
	return remote.BoardState{Board: b.Name(), Controls: states}
}

func kindOf(d param.Def) string {
	switch d.(type) {
	case param.Switch:
		return "switch"
	case param.Selector:
		return "selector"
	default:
		return "continuous"
	}
}

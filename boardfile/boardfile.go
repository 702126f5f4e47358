// Package boardfile loads control board definitions from YAML and builds the
// board plus its MIDI mapper. Files are the primary configuration surface;
// unknown fields are rejected to catch typos early.
package boardfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cutoff/knobkit"
	"github.com/cutoff/knobkit/control"
	"github.com/cutoff/knobkit/midimap"
	"github.com/cutoff/knobkit/param"
)

// File is one board definition document.
type File struct {
	Board    string          `yaml:"board"`
	Controls []ControlConfig `yaml:"controls"`
}

// ControlConfig is one control entry. Type selects the widget and the
// controller kind: knob and slider are continuous, switch and selector are
// discrete. The numeric fields mirror param.Continuous.
type ControlConfig struct {
	ID          string         `yaml:"id"`
	Type        string         `yaml:"type"`
	Label       string         `yaml:"label,omitempty"`
	Min         float64        `yaml:"min,omitempty"`
	Max         float64        `yaml:"max,omitempty"`
	Scale       string         `yaml:"scale,omitempty"`
	Unit        string         `yaml:"unit,omitempty"`
	Default     float64        `yaml:"default,omitempty"`
	Resolution  int            `yaml:"resolution,omitempty"`
	Step        float64        `yaml:"step,omitempty"`
	Bipolar     bool           `yaml:"bipolar,omitempty"`
	Sensitivity float64        `yaml:"sensitivity,omitempty"`
	Direction   string         `yaml:"direction,omitempty"`
	Momentary   bool           `yaml:"momentary,omitempty"`
	OnLabel     string         `yaml:"on_label,omitempty"`
	OffLabel    string         `yaml:"off_label,omitempty"`
	Options     []OptionConfig `yaml:"options,omitempty"`
	Mapping     string         `yaml:"mapping,omitempty"`
	MIDI        *MIDIConfig    `yaml:"midi,omitempty"`
}

// OptionConfig is one selector choice. Code is consulted only under custom
// mapping.
type OptionConfig struct {
	Value float64 `yaml:"value"`
	Label string  `yaml:"label,omitempty"`
	Code  uint32  `yaml:"code,omitempty"`
}

// MIDIConfig binds a control to a CC address. Channel is 1..16 as printed on
// hardware; wide selects a 14-bit MSB/LSB pair.
type MIDIConfig struct {
	Channel int  `yaml:"channel"`
	CC      int  `yaml:"cc"`
	Wide    bool `yaml:"wide,omitempty"`
}

// Parse decodes a single YAML document. Unknown fields and trailing
// documents are errors.
func Parse(r io.Reader) (*File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode board yaml: %w", err)
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); err == nil {
		return nil, errors.New("decode board yaml: unexpected trailing document")
	} else if !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode board yaml: %w", err)
	}
	return &f, nil
}

// Load reads and parses a board file.
func Load(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read board file: %w", err)
	}
	return Parse(bytes.NewReader(b))
}

// Build constructs the board and its MIDI mapper. Errors carry the control's
// position and id so a long file stays debuggable.
func (f *File) Build() (*knobkit.Board, *midimap.Mapper, error) {
	if len(f.Controls) == 0 {
		return nil, nil, errors.New("board has no controls")
	}
	board := knobkit.NewBoard(knobkit.WithName(f.Board))
	mapper := midimap.New()
	for i, cfg := range f.Controls {
		def, opts, err := cfg.definition()
		if err != nil {
			return nil, nil, fmt.Errorf("control %d (%s): %w", i, cfg.ID, err)
		}
		ctrl, err := board.Add(def, opts...)
		if err != nil {
			return nil, nil, fmt.Errorf("control %d (%s): %w", i, cfg.ID, err)
		}
		if cfg.MIDI != nil {
			if err := bindMIDI(mapper, ctrl, *cfg.MIDI); err != nil {
				return nil, nil, fmt.Errorf("control %d (%s): %w", i, cfg.ID, err)
			}
		}
	}
	return board, mapper, nil
}

func (c ControlConfig) definition() (param.Def, []knobkit.ControlOption, error) {
	info := param.Info{ID: c.ID, Name: c.Label, Resolution: c.Resolution}
	var opts []knobkit.ControlOption
	if c.Sensitivity > 0 {
		opts = append(opts, knobkit.WithSensitivity(c.Sensitivity))
	}
	if c.Direction != "" {
		dir, err := control.ParseDirection(c.Direction)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, knobkit.WithDirection(dir))
	}

	switch c.Type {
	case "knob", "slider", "":
		scale, err := param.ParseScale(c.Scale)
		if err != nil {
			return nil, nil, err
		}
		return param.Continuous{
			Info:    info,
			Min:     c.Min,
			Max:     c.Max,
			Step:    c.Step,
			Default: c.Default,
			Unit:    c.Unit,
			Scale:   scale,
			Bipolar: c.Bipolar,
		}, opts, nil
	case "switch":
		return param.Switch{
			Info:      info,
			Momentary: c.Momentary,
			OnLabel:   c.OnLabel,
			OffLabel:  c.OffLabel,
			Default:   c.Default >= 0.5,
		}, opts, nil
	case "selector":
		mapping, err := param.ParseMapping(c.Mapping)
		if err != nil {
			return nil, nil, err
		}
		options := make([]param.Option, len(c.Options))
		for i, o := range c.Options {
			options[i] = param.Option{Value: o.Value, Label: o.Label, Code: o.Code}
		}
		return param.Selector{
			Info:    info,
			Options: options,
			Mapping: mapping,
			Default: c.Default,
		}, opts, nil
	default:
		return nil, nil, fmt.Errorf("invalid type %q (expected knob|slider|switch|selector)", c.Type)
	}
}

func bindMIDI(m *midimap.Mapper, ctrl *knobkit.Control, cfg MIDIConfig) error {
	if cfg.Channel < 1 || cfg.Channel > 16 {
		return fmt.Errorf("midi channel %d out of range 1..16", cfg.Channel)
	}
	if cfg.CC < 0 || cfg.CC > 119 {
		return fmt.Errorf("midi cc %d out of range 0..119", cfg.CC)
	}
	channel := uint8(cfg.Channel - 1)
	if cfg.Wide {
		return m.Bind14(channel, uint8(cfg.CC), ctrl)
	}
	return m.Bind(channel, uint8(cfg.CC), ctrl)
}

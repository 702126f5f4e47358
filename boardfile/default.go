package boardfile

// DefaultFile returns the demo board the example hosts fall back to when no
// file is given. Keep it exercising every control kind so the demos double
// as a smoke test.
func DefaultFile() *File {
	return &File{
		Board: "knobkit demo",
		Controls: []ControlConfig{
			{
				ID: "gain", Type: "knob", Label: "Gain",
				Min: -60, Max: 6, Step: 0.5, Unit: "dB", Resolution: 14,
				MIDI: &MIDIConfig{Channel: 1, CC: 7, Wide: true},
			},
			{
				ID: "pan", Type: "knob", Label: "Pan",
				Min: -100, Max: 100, Step: 1, Unit: "%", Bipolar: true,
				MIDI: &MIDIConfig{Channel: 1, CC: 10},
			},
			{
				ID: "cutoff", Type: "knob", Label: "Cutoff",
				Min: 20, Max: 20000, Default: 1200, Unit: "Hz",
				Scale: "log", Resolution: 14, Direction: "circular",
				MIDI: &MIDIConfig{Channel: 1, CC: 74},
			},
			{
				ID: "resonance", Type: "slider", Label: "Resonance",
				Min: 0, Max: 100, Step: 1, Default: 20, Unit: "%",
				Direction: "horizontal",
				MIDI:      &MIDIConfig{Channel: 1, CC: 71},
			},
			{
				ID: "level", Type: "slider", Label: "Level",
				Min: 0, Max: 100, Step: 1, Default: 80, Unit: "%",
				Direction: "horizontal",
			},
			{
				ID: "wave", Type: "selector", Label: "Wave",
				Options: []OptionConfig{
					{Value: 0, Label: "Sine"},
					{Value: 1, Label: "Triangle"},
					{Value: 2, Label: "Square"},
					{Value: 3, Label: "Saw"},
					{Value: 4, Label: "Noise"},
				},
			},
			{
				ID: "power", Type: "switch", Label: "Power", Default: 1,
			},
			{
				ID: "accent", Type: "switch", Label: "Accent",
				Momentary: true, OnLabel: "Hit", OffLabel: "---",
			},
		},
	}
}

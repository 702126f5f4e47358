package param

import "testing"

func TestFactoryBipolarPan(t *testing.T) {
	p := NewBipolar("pan", "Pan", 100, "%")
	if p.Min != -100 || p.Max != 100 {
		t.Fatalf("range = [%v, %v], want [-100, 100]", p.Min, p.Max)
	}
	if p.Default != 0 {
		t.Errorf("default = %v, want 0", p.Default)
	}
	if !p.Bipolar {
		t.Error("bipolar flag not set")
	}
	if err := Validate(p); err != nil {
		t.Errorf("validate: %v", err)
	}
}

func TestFactoryMIDIResolutions(t *testing.T) {
	p7 := NewMIDI7("mod", "Mod Wheel")
	if got := p7.MaxCode(); got != 127 {
		t.Errorf("7-bit max code = %d, want 127", got)
	}
	if p7.Max != 127 || p7.Step != 1 {
		t.Errorf("7-bit range/step = %v/%v, want 127/1", p7.Max, p7.Step)
	}
	p14 := NewMIDI14("pitch", "Pitch")
	if got := p14.MaxCode(); got != 16383 {
		t.Errorf("14-bit max code = %d, want 16383", got)
	}
	if p14.Max != 16383 {
		t.Errorf("14-bit max = %v, want 16383", p14.Max)
	}
}

func TestFactoryFrequencyLogDefault(t *testing.T) {
	p := NewFrequency("cutoff", "Cutoff", 20, 20000)
	if ScaleName(p.Scale) != "log" {
		t.Errorf("scale = %s, want log", ScaleName(p.Scale))
	}
	if p.Default != 1000 {
		t.Errorf("default = %v, want 1000", p.Default)
	}
	low := NewFrequency("lfo", "LFO Rate", 0.1, 20)
	if low.Default != 20 {
		t.Errorf("default should clamp into range, got %v want 20", low.Default)
	}
}

func TestFactoryGainDefaultClamps(t *testing.T) {
	p := NewGainDB("gain", "Gain", -60, 6)
	if p.Default != 0 || p.Unit != "dB" {
		t.Errorf("default/unit = %v/%q, want 0/dB", p.Default, p.Unit)
	}
	cut := NewGainDB("trim", "Trim", -60, -10)
	if cut.Default != -10 {
		t.Errorf("default should clamp into range, got %v want -10", cut.Default)
	}
}

func TestFactorySelector(t *testing.T) {
	p := NewSelector("wave", "Waveform", "Sine", "Triangle", "Square")
	if len(p.Options) != 3 {
		t.Fatalf("option count = %d, want 3", len(p.Options))
	}
	if p.Options[2].Value != 2 || p.Options[2].Label != "Square" {
		t.Errorf("option 2 = %+v, want value 2 label Square", p.Options[2])
	}
	if p.Mapping != MapSpread {
		t.Errorf("mapping = %v, want spread", p.Mapping)
	}
}

func TestFactorySwitches(t *testing.T) {
	tog := NewToggle("pwr", "Power", "On", "Off")
	if tog.Momentary {
		t.Error("toggle should not be momentary")
	}
	mom := NewMomentary("tap", "Tap", "Held", "Idle")
	if !mom.Momentary {
		t.Error("momentary flag not set")
	}
}

func TestValidateRejectsBadDefs(t *testing.T) {
	cases := []struct {
		name string
		def  Def
	}{
		{"empty id", Continuous{Min: 0, Max: 1}},
		{"inverted range", Continuous{Info: Info{ID: "x"}, Min: 10, Max: 0}},
		{"negative step", Continuous{Info: Info{ID: "x"}, Min: 0, Max: 1, Step: -0.1}},
		{"step over range", Continuous{Info: Info{ID: "x"}, Min: 0, Max: 1, Step: 2}},
		{"resolution too wide", Continuous{Info: Info{ID: "x", Resolution: 33}, Min: 0, Max: 1}},
		{"no options", Selector{Info: Info{ID: "x"}}},
		{"duplicate values", Selector{Info: Info{ID: "x"}, Options: []Option{{Value: 1}, {Value: 1}}}},
		{"custom code overflow", Selector{
			Info:    Info{ID: "x", Resolution: 7},
			Options: []Option{{Value: 0, Code: 500}},
			Mapping: MapCustom,
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := Validate(tc.def); err == nil {
				t.Errorf("Validate accepted %+v", tc.def)
			}
		})
	}
}

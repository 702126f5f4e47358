package param

// Factory constructors for the common parameter shapes. Each returns a
// plain definition that can be adjusted further before use.

// NewMIDI7 builds a controller-style parameter over 0..127 with a 7-bit
// pivot.
func NewMIDI7(id, name string) Continuous {
	return Continuous{
		Info: Info{ID: id, Name: name, Resolution: 7},
		Min:  0,
		Max:  127,
		Step: 1,
	}
}

// NewMIDI14 builds a high-resolution controller parameter over 0..16383
// with a 14-bit pivot.
func NewMIDI14(id, name string) Continuous {
	return Continuous{
		Info: Info{ID: id, Name: name, Resolution: 14},
		Min:  0,
		Max:  16383,
		Step: 1,
	}
}

// NewBipolar builds a parameter spanning [-extent, +extent] centered on a
// zero default.
func NewBipolar(id, name string, extent float64, unit string) Continuous {
	return Continuous{
		Info:    Info{ID: id, Name: name},
		Min:     -extent,
		Max:     extent,
		Default: 0,
		Unit:    unit,
		Bipolar: true,
	}
}

// NewPercent builds a 0..100 percentage parameter with whole-number steps.
func NewPercent(id, name string) Continuous {
	return Continuous{
		Info: Info{ID: id, Name: name},
		Min:  0,
		Max:  100,
		Step: 1,
		Unit: "%",
	}
}

// NewGainDB builds a gain parameter in decibels, defaulting to unity (0dB)
// when the range allows it.
func NewGainDB(id, name string, min, max float64) Continuous {
	return Continuous{
		Info:    Info{ID: id, Name: name},
		Min:     min,
		Max:     max,
		Default: clampRange(0, min, max),
		Unit:    "dB",
	}
}

// NewFrequency builds a log-scaled frequency parameter in Hz, defaulting
// near 1kHz.
func NewFrequency(id, name string, min, max float64) Continuous {
	return Continuous{
		Info:    Info{ID: id, Name: name},
		Min:     min,
		Max:     max,
		Default: clampRange(1000, min, max),
		Unit:    "Hz",
		Scale:   Log,
	}
}

// NewToggle builds a latching switch.
func NewToggle(id, name, onLabel, offLabel string) Switch {
	return Switch{
		Info:     Info{ID: id, Name: name},
		OnLabel:  onLabel,
		OffLabel: offLabel,
	}
}

// NewMomentary builds a switch that releases to off with the pointer or
// key.
func NewMomentary(id, name, onLabel, offLabel string) Switch {
	return Switch{
		Info:      Info{ID: id, Name: name},
		Momentary: true,
		OnLabel:   onLabel,
		OffLabel:  offLabel,
	}
}

// NewSelector builds an ordered-choice parameter with option values
// 0..n-1 spread across the code space.
func NewSelector(id, name string, labels ...string) Selector {
	opts := make([]Option, len(labels))
	for i, label := range labels {
		opts[i] = Option{Value: float64(i), Label: label}
	}
	return Selector{
		Info:    Info{ID: id, Name: name},
		Options: opts,
	}
}

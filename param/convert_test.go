package param

import (
	"math"
	"testing"
)

func TestLinearContinuousScenario(t *testing.T) {
	c := NewConverter(Continuous{Info: Info{ID: "amt"}, Min: 0, Max: 100, Step: 1})
	if got := c.Normalize(50); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("normalize(50) = %v, want 0.5", got)
	}
	if got := c.Denormalize(0.5); got != 50 {
		t.Errorf("denormalize(0.5) = %v, want exactly 50", got)
	}
	if got := c.ToMIDI(100); got != math.MaxUint32 {
		t.Errorf("toMidi(100) = %d, want %d", got, uint32(math.MaxUint32))
	}
	if got := c.ToMIDI(0); got != 0 {
		t.Errorf("toMidi(0) = %d, want 0", got)
	}
}

func TestNormalizeBoundaryExact(t *testing.T) {
	for _, tc := range builtinScales {
		t.Run(tc.name, func(t *testing.T) {
			c := NewConverter(Continuous{Info: Info{ID: "g"}, Min: -60, Max: 6, Scale: tc.scale})
			if got := c.Normalize(-60); got != 0 {
				t.Errorf("normalize(min) = %v, want exactly 0", got)
			}
			if got := c.Normalize(6); got != 1 {
				t.Errorf("normalize(max) = %v, want exactly 1", got)
			}
		})
	}
}

func TestNormalizeMonotonic(t *testing.T) {
	for _, tc := range builtinScales {
		t.Run(tc.name, func(t *testing.T) {
			c := NewConverter(Continuous{Info: Info{ID: "f"}, Min: 20, Max: 20000, Scale: tc.scale})
			prev := c.Normalize(20)
			for i := 1; i <= 200; i++ {
				x := 20 + float64(i)/200*(20000-20)
				cur := c.Normalize(x)
				if cur < prev {
					t.Fatalf("normalize decreasing at %v: %v then %v", x, prev, cur)
				}
				prev = cur
			}
		})
	}
}

func TestRoundTripUnstepped(t *testing.T) {
	c := NewConverter(Continuous{Info: Info{ID: "w"}, Min: -1, Max: 1})
	for i := 0; i <= 50; i++ {
		x := -1 + float64(i)/25
		got := c.Denormalize(c.Normalize(x))
		if math.Abs(got-x) > 1e-6 {
			t.Fatalf("denormalize(normalize(%v)) = %v, drift too large", x, got)
		}
	}
}

func TestQuantizationIdempotent(t *testing.T) {
	c := NewConverter(Continuous{Info: Info{ID: "q"}, Min: 0, Max: 100, Step: 0.5})
	once := c.Denormalize(c.Normalize(33.337))
	twice := c.Denormalize(c.Normalize(once))
	if once != twice {
		t.Errorf("second round-trip moved the value: %v then %v", once, twice)
	}
	if once != 33.5 {
		t.Errorf("quantized round-trip = %v, want 33.5", once)
	}
}

func TestSevenBitPivot(t *testing.T) {
	c := NewConverter(Continuous{Info: Info{ID: "cc", Resolution: 7}, Min: 0, Max: 100})
	if got := c.MaxCode(); got != 127 {
		t.Fatalf("max code = %d, want 127", got)
	}
	got := c.FromMIDI(64)
	if math.Abs(got-50.3937007874) > 1e-9 {
		t.Errorf("fromMidi(64) = %v, want 50.3937007874", got)
	}
	if code := c.ToMIDI(got); code != 64 {
		t.Errorf("toMidi(fromMidi(64)) = %d, want 64", code)
	}
	if got := c.FromMIDI(200); got != 100 {
		t.Errorf("fromMidi over max code = %v, want 100", got)
	}
}

func TestContinuousClampAndContinue(t *testing.T) {
	c := NewConverter(Continuous{Info: Info{ID: "l"}, Min: 0, Max: 10})
	if got := c.Normalize(-5); got != 0 {
		t.Errorf("normalize below min = %v, want 0", got)
	}
	if got := c.Normalize(25); got != 1 {
		t.Errorf("normalize above max = %v, want 1", got)
	}
	if got := c.Denormalize(-0.3); got != 0 {
		t.Errorf("denormalize below 0 = %v, want 0", got)
	}
	if got := c.Denormalize(1.7); got != 10 {
		t.Errorf("denormalize above 1 = %v, want 10", got)
	}
}

func TestDegenerateRangeIsSafe(t *testing.T) {
	c := NewConverter(Continuous{Info: Info{ID: "flat"}, Min: 5, Max: 5})
	if got := c.Normalize(5); got != 0 {
		t.Errorf("normalize on empty range = %v, want 0", got)
	}
	if got := c.Normalize(99); math.IsNaN(got) {
		t.Error("normalize on empty range produced NaN")
	}
}

func TestSwitchConversions(t *testing.T) {
	c := NewConverter(Switch{Info: Info{ID: "pwr"}})
	if got := c.Normalize(1); got != 1 {
		t.Errorf("normalize(on) = %v, want 1", got)
	}
	if got := c.Normalize(0); got != 0 {
		t.Errorf("normalize(off) = %v, want 0", got)
	}
	if got := c.Denormalize(0.5); got != 1 {
		t.Errorf("denormalize(0.5) = %v, want on at the threshold", got)
	}
	if got := c.Denormalize(0.49); got != 0 {
		t.Errorf("denormalize(0.49) = %v, want off", got)
	}
	if got := c.ToMIDI(1); got != c.MaxCode() {
		t.Errorf("toMidi(on) = %d, want %d", got, c.MaxCode())
	}
}

func waveSelector(mapping Mapping, resolution int) Selector {
	return Selector{
		Info:    Info{ID: "wave", Resolution: resolution},
		Options: []Option{{0, "Sine", 0}, {1, "Triangle", 40}, {2, "Square", 80}, {3, "Saw", 127}},
		Mapping: mapping,
	}
}

func TestSelectorSpread(t *testing.T) {
	c := NewConverter(waveSelector(MapSpread, 0))
	if got := c.Normalize(1); math.Abs(got-1.0/3) > 1e-9 {
		t.Errorf("normalize(option 1 of 4) = %v, want 1/3", got)
	}
	if got := c.Denormalize(0.26); got != 1 {
		t.Errorf("denormalize(0.26) = %v, want option value 1", got)
	}
	if got := c.Denormalize(1); got != 3 {
		t.Errorf("denormalize(1) = %v, want last option value 3", got)
	}
}

func TestSelectorSequential(t *testing.T) {
	c := NewConverter(waveSelector(MapSequential, 7))
	if got := c.ToMIDI(2); got != 2 {
		t.Errorf("toMidi(option 2) = %d, want raw index 2", got)
	}
	if got := c.FromMIDI(1); got != 1 {
		t.Errorf("fromMidi(1) = %v, want option value 1", got)
	}
	if got := c.FromMIDI(100); got != 3 {
		t.Errorf("fromMidi past the option count = %v, want last option value", got)
	}
}

func TestSelectorCustomCodes(t *testing.T) {
	c := NewConverter(waveSelector(MapCustom, 7))
	if got := c.ToMIDI(2); got != 80 {
		t.Errorf("toMidi(option 2) = %d, want explicit code 80", got)
	}
	if got := c.FromMIDI(59); got != 1 {
		t.Errorf("fromMidi(59) = %v, want nearest code 40's value", got)
	}
	// 60 is equidistant from codes 40 and 80; the earlier option wins.
	if got := c.FromMIDI(60); got != 1 {
		t.Errorf("fromMidi(60) = %v, want tie resolved to first option", got)
	}
}

func TestSelectorUnmatchedValueFallsBack(t *testing.T) {
	c := NewConverter(waveSelector(MapSpread, 0))
	if got := c.Index(99.9); got != 0 {
		t.Errorf("index of unmatched value = %d, want 0", got)
	}
	if got := c.ToMIDI(99.9); got != 0 {
		t.Errorf("toMidi of unmatched value = %d, want first option code", got)
	}
}

func TestSelectorSingleOption(t *testing.T) {
	c := NewConverter(Selector{
		Info:    Info{ID: "only"},
		Options: []Option{{Value: 7, Label: "Only"}},
	})
	if got := c.Normalize(7); got != 0 {
		t.Errorf("normalize with one option = %v, want 0", got)
	}
	if got := c.Denormalize(0.9); got != 7 {
		t.Errorf("denormalize with one option = %v, want 7", got)
	}
}

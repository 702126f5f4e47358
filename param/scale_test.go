package param

import (
	"math"
	"testing"
)

var builtinScales = []struct {
	name  string
	scale Scale
}{
	{"linear", Linear},
	{"log", Log},
	{"exp", Exp},
}

func TestScaleEndpointsExact(t *testing.T) {
	for _, tc := range builtinScales {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.scale.Forward(0); got != 0 {
				t.Errorf("forward(0) = %v, want exactly 0", got)
			}
			if got := tc.scale.Forward(1); got != 1 {
				t.Errorf("forward(1) = %v, want exactly 1", got)
			}
			if got := tc.scale.Inverse(0); got != 0 {
				t.Errorf("inverse(0) = %v, want exactly 0", got)
			}
			if got := tc.scale.Inverse(1); got != 1 {
				t.Errorf("inverse(1) = %v, want exactly 1", got)
			}
		})
	}
}

func TestScaleRoundTrip(t *testing.T) {
	for _, tc := range builtinScales {
		t.Run(tc.name, func(t *testing.T) {
			for i := 0; i <= 100; i++ {
				x := float64(i) / 100
				got := tc.scale.Inverse(tc.scale.Forward(x))
				if math.Abs(got-x) > 1e-12 {
					t.Fatalf("inverse(forward(%v)) = %v, want %v", x, got, x)
				}
			}
		})
	}
}

func TestScaleMonotonic(t *testing.T) {
	for _, tc := range builtinScales {
		t.Run(tc.name, func(t *testing.T) {
			prev := tc.scale.Forward(0)
			for i := 1; i <= 200; i++ {
				x := float64(i) / 200
				cur := tc.scale.Forward(x)
				if cur <= prev {
					t.Fatalf("forward not increasing at %v: %v then %v", x, prev, cur)
				}
				prev = cur
			}
		})
	}
}

func TestScaleClampsOutOfRange(t *testing.T) {
	for _, tc := range builtinScales {
		if got := tc.scale.Forward(-0.5); got != 0 {
			t.Errorf("%s forward(-0.5) = %v, want 0", tc.name, got)
		}
		if got := tc.scale.Forward(1.5); got != 1 {
			t.Errorf("%s forward(1.5) = %v, want 1", tc.name, got)
		}
	}
}

func TestLogBulgesUpExpMirrors(t *testing.T) {
	if got := Log.Forward(0.5); got <= 0.5 {
		t.Errorf("log forward(0.5) = %v, want > 0.5", got)
	}
	if got := Exp.Forward(0.5); got >= 0.5 {
		t.Errorf("exp forward(0.5) = %v, want < 0.5", got)
	}
	for i := 1; i < 10; i++ {
		x := float64(i) / 10
		if Exp.Forward(x) != Log.Inverse(x) {
			t.Fatalf("exp forward(%v) != log inverse(%v)", x, x)
		}
	}
}

func TestParseScale(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"linear", "linear"},
		{"", "linear"},
		{"LOG", "log"},
		{" exp ", "exp"},
	}
	for _, tc := range cases {
		s, err := ParseScale(tc.in)
		if err != nil {
			t.Fatalf("ParseScale(%q): %v", tc.in, err)
		}
		if got := ScaleName(s); got != tc.want {
			t.Errorf("ParseScale(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
	if _, err := ParseScale("sqrt"); err == nil {
		t.Error("ParseScale(\"sqrt\") should fail")
	}
}

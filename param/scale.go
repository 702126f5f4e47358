package param

import (
	"fmt"
	"math"
	"strings"
)

// Scale warps a normalized position in [0,1]. Forward maps a linear position
// to the warped one and Inverse undoes it; both clamp their input and return
// exact 0 and 1 at the endpoints. Implementations are stateless and safe to
// share across converters.
type Scale interface {
	Forward(x float64) float64
	Inverse(y float64) float64
}

// Built-in scales.
var (
	Linear Scale = linearScale{}
	Log    Scale = logScale{}
	Exp    Scale = expScale{}
)

const eMinusOne = math.E - 1

type linearScale struct{}

func (linearScale) Forward(x float64) float64 { return clamp01(x) }
func (linearScale) Inverse(y float64) float64 { return clamp01(y) }

type logScale struct{}

func (logScale) Forward(x float64) float64 {
	x = clamp01(x)
	if x == 0 || x == 1 {
		return x
	}
	return clamp01(math.Log1p(x * eMinusOne))
}

func (logScale) Inverse(y float64) float64 {
	y = clamp01(y)
	if y == 0 || y == 1 {
		return y
	}
	return clamp01(math.Expm1(y) / eMinusOne)
}

// expScale is the mirror of logScale: its forward pass is the log inverse.
type expScale struct{}

func (expScale) Forward(x float64) float64 { return logScale{}.Inverse(x) }
func (expScale) Inverse(y float64) float64 { return logScale{}.Forward(y) }

// ParseScale resolves a scale by its configuration name. An empty name means
// linear.
func ParseScale(name string) (Scale, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "linear":
		return Linear, nil
	case "log":
		return Log, nil
	case "exp":
		return Exp, nil
	default:
		return nil, fmt.Errorf("invalid scale %q (expected linear|log|exp)", name)
	}
}

// ScaleName returns the configuration name of a built-in scale. Nil and
// unknown scales report "linear".
func ScaleName(s Scale) string {
	switch s.(type) {
	case logScale:
		return "log"
	case expScale:
		return "exp"
	default:
		return "linear"
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

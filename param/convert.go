package param

import "math"

// Converter performs the conversions for one definition. The quantized
// integer pivot code is the canonical intermediate: every path runs
// real -> normalized -> pivot -> normalized -> real, which makes repeated
// round-trips idempotent once a value lands on the quantization grid. All
// operations are pure and clamp out-of-range inputs instead of failing.
//
// Definitions with min > max or an empty option list violate the documented
// preconditions (see Validate); conversion behavior is then unspecified.
type Converter struct {
	def     Def
	maxCode uint32
}

// NewConverter builds a converter for d.
func NewConverter(d Def) Converter {
	return Converter{def: d, maxCode: d.ParamInfo().MaxCode()}
}

// Def returns the definition the converter was built for.
func (c Converter) Def() Def { return c.def }

// MaxCode returns the top pivot code for the definition's resolution.
func (c Converter) MaxCode() uint32 { return c.maxCode }

// ToMIDI converts a real value to its pivot code.
func (c Converter) ToMIDI(real float64) uint32 {
	switch p := c.def.(type) {
	case Continuous:
		scaled := scaleOf(p).Forward(position(p, real))
		return uint32(math.Round(scaled * float64(c.maxCode)))
	case Switch:
		if real >= 0.5 {
			return c.maxCode
		}
		return 0
	case Selector:
		if len(p.Options) == 0 {
			return 0
		}
		return c.optionCode(p, indexOfValue(p, real))
	}
	return 0
}

// FromMIDI converts a pivot code back to a real value.
func (c Converter) FromMIDI(code uint32) float64 {
	if code > c.maxCode {
		code = c.maxCode
	}
	switch p := c.def.(type) {
	case Continuous:
		return realAt(p, float64(code)/float64(c.maxCode))
	case Switch:
		if float64(code)/float64(c.maxCode) >= 0.5 {
			return 1
		}
		return 0
	case Selector:
		if len(p.Options) == 0 {
			return 0
		}
		return p.Options[c.indexForCode(p, code)].Value
	}
	return 0
}

// Normalize converts a real value to [0,1] through the pivot. Exactly 0 at
// the range minimum and exactly 1 at the maximum.
func (c Converter) Normalize(real float64) float64 {
	return float64(c.ToMIDI(real)) / float64(c.maxCode)
}

// Denormalize converts a normalized value back to a real one through the
// pivot.
func (c Converter) Denormalize(norm float64) float64 {
	return c.FromMIDI(uint32(math.Round(clamp01(norm) * float64(c.maxCode))))
}

// Index returns the option index a real value resolves to. Unmatched values
// fall back to the first option. Zero for non-selector definitions.
func (c Converter) Index(real float64) int {
	if p, ok := c.def.(Selector); ok {
		return indexOfValue(p, real)
	}
	return 0
}

func position(p Continuous, real float64) float64 {
	if p.Max <= p.Min {
		return 0
	}
	real = clampRange(real, p.Min, p.Max)
	return (real - p.Min) / (p.Max - p.Min)
}

func realAt(p Continuous, norm float64) float64 {
	pos := scaleOf(p).Inverse(clamp01(norm))
	v := p.Min + pos*(p.Max-p.Min)
	if p.Step > 0 {
		v = math.Round((v-p.Min)/p.Step)*p.Step + p.Min
		v = roundDecimals(v)
		v = clampRange(v, p.Min, p.Max)
	}
	return v
}

func (c Converter) optionCode(p Selector, idx int) uint32 {
	count := len(p.Options)
	switch p.Mapping {
	case MapSequential:
		if uint64(idx) >= uint64(c.maxCode) {
			return c.maxCode
		}
		return uint32(idx)
	case MapCustom:
		return p.Options[idx].Code
	default:
		if count <= 1 {
			return 0
		}
		frac := float64(idx) / float64(count-1)
		return uint32(math.Round(frac * float64(c.maxCode)))
	}
}

func (c Converter) indexForCode(p Selector, code uint32) int {
	count := len(p.Options)
	if count <= 1 {
		return 0
	}
	switch p.Mapping {
	case MapSequential:
		if uint64(code) >= uint64(count) {
			return count - 1
		}
		return int(code)
	case MapCustom:
		best, bestDist := 0, math.Inf(1)
		for i, opt := range p.Options {
			if d := math.Abs(float64(opt.Code) - float64(code)); d < bestDist {
				best, bestDist = i, d
			}
		}
		return best
	default:
		norm := float64(code) / float64(c.maxCode)
		return int(math.Round(norm * float64(count-1)))
	}
}

func indexOfValue(p Selector, v float64) int {
	for i, opt := range p.Options {
		if opt.Value == v {
			return i
		}
	}
	return 0
}

func scaleOf(p Continuous) Scale {
	if p.Scale == nil {
		return Linear
	}
	return p.Scale
}

// roundDecimals rounds to 10 decimal digits to absorb floating-point drift
// introduced by step quantization.
func roundDecimals(v float64) float64 {
	return math.Round(v*1e10) / 1e10
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

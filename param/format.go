package param

import (
	"math"
	"strconv"
	"unicode/utf8"
)

// Format renders a real value for display, with the definition's unit
// suffix when it has one.
func (c Converter) Format(v float64) string {
	return c.format(v, true)
}

// MaxDisplayText returns the widest candidate display string, letting hosts
// reserve label space before any value is shown. Ties keep the first
// candidate.
func (c Converter) MaxDisplayText(withUnit bool) string {
	switch p := c.def.(type) {
	case Continuous:
		best := c.format(p.Min, withUnit)
		if s := c.format(p.Max, withUnit); utf8.RuneCountInString(s) > utf8.RuneCountInString(best) {
			best = s
		}
		return best
	case Switch:
		on, off := switchLabels(p)
		if utf8.RuneCountInString(off) > utf8.RuneCountInString(on) {
			return off
		}
		return on
	case Selector:
		best := ""
		for _, opt := range p.Options {
			if s := c.format(opt.Value, withUnit); utf8.RuneCountInString(s) > utf8.RuneCountInString(best) {
				best = s
			}
		}
		return best
	}
	return ""
}

func (c Converter) format(v float64, withUnit bool) string {
	switch p := c.def.(type) {
	case Continuous:
		s := strconv.FormatFloat(v, 'f', precisionOf(p), 64)
		if withUnit && p.Unit != "" {
			s += p.Unit
		}
		return s
	case Switch:
		on, off := switchLabels(p)
		if v >= 0.5 {
			return on
		}
		return off
	case Selector:
		for _, opt := range p.Options {
			if opt.Value == v && opt.Label != "" {
				return opt.Label
			}
		}
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return ""
}

// precisionOf derives the display precision from the step size,
// ceil(log10(1/step)) with a floor of zero. Unstepped parameters show two
// decimals.
func precisionOf(p Continuous) int {
	if p.Step <= 0 {
		return 2
	}
	prec := int(math.Ceil(math.Log10(1 / p.Step)))
	if prec < 0 {
		return 0
	}
	return prec
}

func switchLabels(p Switch) (on, off string) {
	on, off = p.OnLabel, p.OffLabel
	if on == "" {
		on = "On"
	}
	if off == "" {
		off = "Off"
	}
	return on, off
}

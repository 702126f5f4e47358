package param

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultResolution is the pivot bit width used when a definition leaves
// Resolution at zero.
const DefaultResolution = 32

// Info holds the identity fields shared by every parameter kind. Resolution
// is the pivot bit width in 1..32; zero selects DefaultResolution.
type Info struct {
	ID         string
	Name       string
	Resolution int
}

// ParamInfo satisfies Def for every type that embeds Info.
func (i Info) ParamInfo() Info { return i }

// MaxCode returns the top pivot code, 2^resolution - 1.
func (i Info) MaxCode() uint32 {
	res := i.Resolution
	if res <= 0 || res > 32 {
		res = DefaultResolution
	}
	return uint32(uint64(1)<<uint(res) - 1)
}

// Def is a parameter definition: Continuous, Switch, or Selector.
type Def interface {
	ParamInfo() Info
	defMarker()
}

// Continuous is a real-valued parameter over [Min, Max]. Step of zero means
// unstepped; a nil Scale means Linear. Min < Max is a precondition for
// conversions; hosts accepting untrusted definitions should run Validate.
type Continuous struct {
	Info
	Min     float64
	Max     float64
	Step    float64
	Default float64
	Unit    string
	Scale   Scale
	Bipolar bool
}

func (Continuous) defMarker() {}

// Switch is an on/off parameter. A momentary switch releases to off when the
// pointer or key goes up; a toggle latches.
type Switch struct {
	Info
	Momentary bool
	OnLabel   string
	OffLabel  string
	Default   bool
}

func (Switch) defMarker() {}

// Mapping selects how Selector options occupy the pivot code space.
type Mapping int

const (
	// MapSpread distributes options evenly across the full code range.
	MapSpread Mapping = iota
	// MapSequential assigns codes 0,1,2,... in option order.
	MapSequential
	// MapCustom uses each option's explicit Code.
	MapCustom
)

// Option is one Selector choice. Code is consulted only under MapCustom.
type Option struct {
	Value float64
	Label string
	Code  uint32
}

// Selector is an ordered-choice parameter. Options must be non-empty with
// unique values; this is a precondition for conversions, checked by
// Validate.
type Selector struct {
	Info
	Options []Option
	Mapping Mapping
	Default float64
}

func (Selector) defMarker() {}

// DefaultOf returns a definition's default as a real value. Switch defaults
// map to 0 or 1.
func DefaultOf(d Def) float64 {
	switch p := d.(type) {
	case Continuous:
		return p.Default
	case Switch:
		if p.Default {
			return 1
		}
		return 0
	case Selector:
		return p.Default
	}
	return 0
}

// KindOf names a definition's kind for listings and error messages.
func KindOf(d Def) string {
	switch d.(type) {
	case Continuous:
		return "continuous"
	case Switch:
		return "switch"
	case Selector:
		return "selector"
	}
	return "unknown"
}

// Validate checks the documented definition preconditions. Conversions do
// not re-check them.
func Validate(d Def) error {
	info := d.ParamInfo()
	if strings.TrimSpace(info.ID) == "" {
		return errors.New("parameter id must not be empty")
	}
	if info.Resolution < 0 || info.Resolution > 32 {
		return fmt.Errorf("parameter %q: resolution %d out of range 1..32", info.ID, info.Resolution)
	}
	switch p := d.(type) {
	case Continuous:
		if p.Min > p.Max {
			return fmt.Errorf("parameter %q: min %v greater than max %v", info.ID, p.Min, p.Max)
		}
		if p.Step < 0 {
			return fmt.Errorf("parameter %q: negative step %v", info.ID, p.Step)
		}
		if p.Step > 0 && p.Step > p.Max-p.Min {
			return fmt.Errorf("parameter %q: step %v exceeds range %v", info.ID, p.Step, p.Max-p.Min)
		}
	case Switch:
		// nothing beyond the shared checks
	case Selector:
		if len(p.Options) == 0 {
			return fmt.Errorf("parameter %q: selector needs at least one option", info.ID)
		}
		seen := make(map[float64]int, len(p.Options))
		for i, opt := range p.Options {
			if j, dup := seen[opt.Value]; dup {
				return fmt.Errorf("parameter %q: options %d and %d share value %v", info.ID, j, i, opt.Value)
			}
			seen[opt.Value] = i
			if p.Mapping == MapCustom && opt.Code > info.MaxCode() {
				return fmt.Errorf("parameter %q: option %d code %d exceeds max code %d", info.ID, i, opt.Code, info.MaxCode())
			}
		}
	default:
		return fmt.Errorf("parameter %q: unknown definition type %T", info.ID, d)
	}
	return nil
}

// ParseMapping resolves a mapping mode by its configuration name. An empty
// name means spread.
func ParseMapping(name string) (Mapping, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "spread":
		return MapSpread, nil
	case "sequential":
		return MapSequential, nil
	case "custom":
		return MapCustom, nil
	default:
		return 0, fmt.Errorf("invalid mapping %q (expected spread|sequential|custom)", name)
	}
}

// MappingName returns the configuration name of a mapping mode.
func MappingName(m Mapping) string {
	switch m {
	case MapSequential:
		return "sequential"
	case MapCustom:
		return "custom"
	default:
		return "spread"
	}
}

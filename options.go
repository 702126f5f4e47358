package knobkit

import "github.com/cutoff/knobkit/control"

// ControlOption customizes one control at Add time.
type ControlOption func(*controlSettings)

func WithSensitivity(v float64) ControlOption {
	return func(s *controlSettings) {
		if v > 0 {
			s.sensitivity = v
		}
	}
}

func WithWheelSensitivity(v float64) ControlOption {
	return func(s *controlSettings) {
		if v > 0 {
			s.wheelSensitivity = v
		}
	}
}

func WithKeyboardStep(v float64) ControlOption {
	return func(s *controlSettings) {
		if v > 0 {
			s.keyboardStep = v
		}
	}
}

func WithDirection(d control.Direction) ControlOption {
	return func(s *controlSettings) {
		s.direction = d
	}
}

func WithInputMode(m control.Mode) ControlOption {
	return func(s *controlSettings) {
		s.mode = m
	}
}

// WithDisabled creates the control inert; SetDisabled re-enables it later.
func WithDisabled() ControlOption {
	return func(s *controlSettings) {
		s.disabled = true
	}
}

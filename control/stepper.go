package control

// StepperConfig configures a stepper over an ordered option list.
type StepperConfig struct {
	Count    int
	Index    int
	OnChange func(index int)
	Disabled bool
}

// Stepper cycles and steps through an ordered option list by index. Option
// semantics stay with the caller; the stepper only moves the index.
type Stepper struct {
	cfg   StepperConfig
	index int
}

func NewStepper(cfg StepperConfig) *Stepper {
	return &Stepper{cfg: cfg, index: clampIndex(cfg.Index, cfg.Count)}
}

// CycleNext advances by one, wrapping past the end.
func (s *Stepper) CycleNext() {
	if s.cfg.Disabled || s.cfg.Count <= 1 {
		return
	}
	s.moveTo((s.index + 1) % s.cfg.Count)
}

// StepNext advances by one and stops silently at the end.
func (s *Stepper) StepNext() {
	if s.cfg.Disabled || s.cfg.Count <= 1 {
		return
	}
	if s.index+1 < s.cfg.Count {
		s.moveTo(s.index + 1)
	}
}

// StepPrev retreats by one and stops silently at the start.
func (s *Stepper) StepPrev() {
	if s.cfg.Disabled || s.cfg.Count <= 1 {
		return
	}
	if s.index > 0 {
		s.moveTo(s.index - 1)
	}
}

// Click cycles unless the originating event was already consumed by another
// gesture.
func (s *Stepper) Click(defaultPrevented bool) {
	if defaultPrevented {
		return
	}
	s.CycleNext()
}

// Key handles a keyboard event by name and reports whether it was consumed.
func (s *Stepper) Key(name string) bool {
	if s.cfg.Disabled {
		return false
	}
	switch name {
	case " ", "Enter":
		s.CycleNext()
	case "ArrowRight", "ArrowUp":
		s.StepNext()
	case "ArrowLeft", "ArrowDown":
		s.StepPrev()
	default:
		return false
	}
	return true
}

// Index returns the current option index.
func (s *Stepper) Index() int { return s.index }

// SetIndex moves directly to an index, clamped into range. No change
// callback fires: the host is telling the stepper, not asking.
func (s *Stepper) SetIndex(index int) {
	s.index = clampIndex(index, s.cfg.Count)
}

// SetCount resizes the option list, clamping the index into it.
func (s *Stepper) SetCount(count int) {
	s.cfg.Count = count
	s.index = clampIndex(s.index, count)
}

func (s *Stepper) SetDisabled(disabled bool) { s.cfg.Disabled = disabled }

func (s *Stepper) moveTo(index int) {
	s.index = index
	if s.cfg.OnChange != nil {
		s.cfg.OnChange(index)
	}
}

func clampIndex(index, count int) int {
	if count <= 0 || index < 0 {
		return 0
	}
	if index >= count {
		return count - 1
	}
	return index
}

package control

// ButtonConfig configures a boolean press controller.
type ButtonConfig struct {
	Momentary bool
	OnChange  func(on bool)
	Disabled  bool
}

// Button implements toggle and momentary switch presses, including painting
// across a row of switches with the pointer held down. The host feeds it
// local pointer and key events plus the window-global pointer state via
// SetGlobalDown.
type Button struct {
	cfg        ButtonConfig
	on         bool
	pressed    bool
	globalDown bool
}

func NewButton(cfg ButtonConfig) *Button { return &Button{cfg: cfg} }

// PointerDown handles a press on the control: toggles flip, momentaries
// latch on until release.
func (b *Button) PointerDown(defaultPrevented bool) {
	if b.cfg.Disabled || defaultPrevented {
		return
	}
	b.press()
}

// PointerUp handles a release over the control. Toggle mode ignores it.
func (b *Button) PointerUp(defaultPrevented bool) {
	if b.cfg.Disabled || defaultPrevented {
		return
	}
	b.releaseMomentary()
}

// PointerEnter handles the pointer arriving with the global button still
// held: a paint-across gesture re-toggles, or re-presses a momentary.
func (b *Button) PointerEnter(defaultPrevented bool) {
	if b.cfg.Disabled || defaultPrevented || !b.globalDown {
		return
	}
	b.press()
}

// PointerLeave handles the pointer leaving mid-press. A held momentary
// releases (drag-out); toggles are unaffected.
func (b *Button) PointerLeave(defaultPrevented bool) {
	if b.cfg.Disabled || defaultPrevented {
		return
	}
	b.releaseMomentary()
}

// SetGlobalDown tracks the window-level pointer state. Lowering it settles
// a held momentary press even when the control is disabled, so a release
// outside the element never leaves the value latched on.
func (b *Button) SetGlobalDown(down bool) {
	b.globalDown = down
	if !down {
		b.releaseMomentary()
	}
}

// KeyDown mirrors PointerDown for Space and Enter; reports consumption.
func (b *Button) KeyDown(name string, defaultPrevented bool) bool {
	if name != " " && name != "Enter" {
		return false
	}
	if b.cfg.Disabled || defaultPrevented {
		return false
	}
	b.press()
	return true
}

// KeyUp mirrors PointerUp for Space and Enter.
func (b *Button) KeyUp(name string, defaultPrevented bool) bool {
	if name != " " && name != "Enter" {
		return false
	}
	if b.cfg.Disabled || defaultPrevented {
		return false
	}
	b.releaseMomentary()
	return true
}

// On returns the stored value.
func (b *Button) On() bool { return b.on }

// SetOn writes the stored value without firing the change callback.
func (b *Button) SetOn(on bool) { b.on = on }

// Pressed reports an active momentary press.
func (b *Button) Pressed() bool { return b.pressed }

func (b *Button) SetDisabled(disabled bool) { b.cfg.Disabled = disabled }

// Dispose settles a pending momentary release so teardown never leaks a
// stuck-on switch. Idempotent.
func (b *Button) Dispose() { b.releaseMomentary() }

func (b *Button) press() {
	if b.cfg.Momentary {
		b.pressed = true
		b.setOn(true)
		return
	}
	b.setOn(!b.on)
}

func (b *Button) releaseMomentary() {
	if b.cfg.Momentary && b.pressed {
		b.pressed = false
		b.setOn(false)
	}
}

func (b *Button) setOn(on bool) {
	if b.on == on {
		return
	}
	b.on = on
	if b.cfg.OnChange != nil {
		b.cfg.OnChange(on)
	}
}

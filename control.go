package knobkit

import (
	"github.com/cutoff/knobkit/control"
	"github.com/cutoff/knobkit/param"
)

// Control binds one parameter definition to its converter and interaction
// controller. The stored value lives in normalized form and is snapped
// through the resolution grid on every write, so Value, Normalized and Text
// always agree.
type Control struct {
	board *Board
	def   param.Def
	conv  param.Converter
	norm  float64

	cont    *control.Continuous
	stepper *control.Stepper
	button  *control.Button

	settings controlSettings
}

type controlSettings struct {
	sensitivity      float64
	wheelSensitivity float64
	keyboardStep     float64
	direction        control.Direction
	mode             control.Mode
	disabled         bool
}

func newControl(b *Board, def param.Def, opts ...ControlOption) *Control {
	c := &Control{board: b, def: def, conv: param.NewConverter(def)}
	c.settings.sensitivity = control.DefaultSensitivity
	c.settings.wheelSensitivity = control.DefaultWheelSensitivity
	c.settings.keyboardStep = control.DefaultKeyboardStep
	for _, opt := range opts {
		opt(&c.settings)
	}
	c.norm = c.conv.Normalize(param.DefaultOf(def))
	switch p := def.(type) {
	case param.Continuous:
		c.buildContinuous(p)
	case param.Switch:
		c.buildButton(p)
	case param.Selector:
		c.buildStepper(p)
	}
	return c
}

func (c *Control) buildContinuous(p param.Continuous) {
	stepNorm := 0.0
	if p.Step > 0 && p.Max > p.Min {
		stepNorm = p.Step / (p.Max - p.Min)
	}
	// Arrow keys move coarse parameters by at least one step; without this a
	// key press smaller than half a step would round back to the old value.
	keyStep := c.settings.keyboardStep
	if stepNorm > keyStep {
		keyStep = stepNorm
	}
	c.cont = control.NewContinuous(control.ContinuousConfig{
		Adjust: func(delta, sens float64) {
			c.setNormalized(c.norm + delta*sens)
		},
		Mode:             c.settings.mode,
		Direction:        c.settings.direction,
		Sensitivity:      control.AdaptiveSensitivity(c.settings.sensitivity, stepNorm),
		WheelSensitivity: control.AdaptiveSensitivity(c.settings.wheelSensitivity, stepNorm),
		KeyboardStep:     keyStep,
		Step:             stepNorm,
		Disabled:         c.settings.disabled,
	})
}

func (c *Control) buildButton(p param.Switch) {
	c.button = control.NewButton(control.ButtonConfig{
		Momentary: p.Momentary,
		Disabled:  c.settings.disabled,
		OnChange: func(on bool) {
			if on {
				c.setNormalized(1)
			} else {
				c.setNormalized(0)
			}
		},
	})
	c.button.SetOn(c.norm >= 0.5)
}

func (c *Control) buildStepper(p param.Selector) {
	c.stepper = control.NewStepper(control.StepperConfig{
		Count:    len(p.Options),
		Disabled: c.settings.disabled,
		OnChange: func(idx int) {
			if idx >= 0 && idx < len(p.Options) {
				c.setNormalized(c.conv.Normalize(p.Options[idx].Value))
			}
		},
	})
	c.stepper.SetIndex(c.conv.Index(param.DefaultOf(c.def)))
}

// setNormalized clamps and snaps a normalized value through the pivot grid,
// stores it, and notifies board listeners when the stored value moved.
func (c *Control) setNormalized(norm float64) {
	snapped := c.conv.Normalize(c.conv.Denormalize(clampNorm(norm)))
	if snapped == c.norm {
		return
	}
	c.norm = snapped
	c.syncController()
	c.board.notifyChanged(c)
}

// syncController keeps the discrete controllers' mirrored state in line with
// the stored value after programmatic writes.
func (c *Control) syncController() {
	switch {
	case c.stepper != nil:
		c.stepper.SetIndex(c.conv.Index(c.Value()))
	case c.button != nil:
		c.button.SetOn(c.norm >= 0.5)
	}
}

// ID returns the definition's identifier.
func (c *Control) ID() string { return c.def.ParamInfo().ID }

// Name returns the display name, falling back to the id.
func (c *Control) Name() string {
	if n := c.def.ParamInfo().Name; n != "" {
		return n
	}
	return c.ID()
}

// Def returns the parameter definition behind this control.
func (c *Control) Def() param.Def { return c.def }

// Converter returns the value converter for this control's definition.
func (c *Control) Converter() param.Converter { return c.conv }

// Value returns the current real value.
func (c *Control) Value() float64 { return c.conv.Denormalize(c.norm) }

// SetValue stores a real value, snapping it to the parameter's grid.
func (c *Control) SetValue(v float64) { c.setNormalized(c.conv.Normalize(v)) }

// Normalized returns the current normalized value in [0, 1].
func (c *Control) Normalized() float64 { return c.norm }

// SetNormalized stores a normalized value.
func (c *Control) SetNormalized(norm float64) { c.setNormalized(norm) }

// Text renders the current value for display.
func (c *Control) Text() string { return c.conv.Format(c.Value()) }

// MaxText returns the widest text this control can display.
func (c *Control) MaxText(withUnit bool) string { return c.conv.MaxDisplayText(withUnit) }

// On reports the current state of a switch control.
func (c *Control) On() bool { return c.norm >= 0.5 }

// Index returns the active option index of a selector control, 0 otherwise.
func (c *Control) Index() int {
	if c.stepper != nil {
		return c.stepper.Index()
	}
	return 0
}

// Dragging reports whether a drag is in flight on a continuous control.
func (c *Control) Dragging() bool { return c.cont != nil && c.cont.Dragging() }

// Disabled reports whether the control ignores input.
func (c *Control) Disabled() bool { return c.settings.disabled }

// SetDisabled toggles input handling for the control.
func (c *Control) SetDisabled(disabled bool) {
	c.settings.disabled = disabled
	switch {
	case c.cont != nil:
		c.cont.SetDisabled(disabled)
	case c.stepper != nil:
		c.stepper.SetDisabled(disabled)
	case c.button != nil:
		c.button.SetDisabled(disabled)
	}
}

// PointerDown begins an interaction at (x, y) inside the control's bounds.
func (c *Control) PointerDown(x, y float64, bounds control.Rect) {
	switch {
	case c.cont != nil:
		c.cont.Press(x, y, bounds)
	case c.button != nil:
		c.button.PointerDown(false)
	}
}

// PointerMove feeds pointer motion to an active drag.
func (c *Control) PointerMove(x, y float64) {
	if c.cont != nil {
		c.cont.Move(x, y)
	}
}

// PointerUp ends a pointer interaction. For continuous controls the release
// may arrive from anywhere on screen.
func (c *Control) PointerUp() {
	switch {
	case c.cont != nil:
		c.cont.Release()
	case c.button != nil:
		c.button.PointerUp(false)
	}
}

// PointerEnter reports the pointer crossing into a switch control.
func (c *Control) PointerEnter() {
	if c.button != nil {
		c.button.PointerEnter(false)
	}
}

// PointerLeave reports the pointer crossing out of a switch control.
func (c *Control) PointerLeave() {
	if c.button != nil {
		c.button.PointerLeave(false)
	}
}

// Click fires a click gesture, advancing selector controls to the next
// option.
func (c *Control) Click() {
	if c.stepper != nil {
		c.stepper.Click(false)
	}
}

// Wheel scrolls a continuous control by delta wheel units.
func (c *Control) Wheel(delta float64) {
	if c.cont != nil {
		c.cont.Wheel(delta)
	}
}

// Key routes a key press by name and reports whether it was consumed.
func (c *Control) Key(name string) bool {
	switch {
	case c.cont != nil:
		return c.cont.Key(name)
	case c.stepper != nil:
		return c.stepper.Key(name)
	case c.button != nil:
		return c.button.KeyDown(name, false)
	}
	return false
}

// KeyUp routes a key release; only momentary switches care.
func (c *Control) KeyUp(name string) bool {
	if c.button != nil {
		return c.button.KeyUp(name, false)
	}
	return false
}

// Dispose settles any in-flight interaction on this control.
func (c *Control) Dispose() {
	switch {
	case c.cont != nil:
		c.cont.Dispose()
	case c.button != nil:
		c.button.Dispose()
	}
}

// Continuous exposes the drag controller behind a continuous control, nil
// for other kinds. Hosts that track defaultPrevented talk to it directly.
func (c *Control) Continuous() *control.Continuous { return c.cont }

// Stepper exposes the option controller behind a selector control, nil for
// other kinds.
func (c *Control) Stepper() *control.Stepper { return c.stepper }

// Button exposes the switch controller behind a switch control, nil for
// other kinds.
func (c *Control) Button() *control.Button { return c.button }

func clampNorm(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

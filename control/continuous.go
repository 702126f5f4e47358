package control

import (
	"fmt"
	"math"
	"strings"
)

// Defaults shared by the interaction controllers.
const (
	// DefaultSensitivity is the drag sensitivity in normalized units per
	// pixel (full travel over roughly 200px).
	DefaultSensitivity = 0.005
	// DefaultWheelSensitivity is the normalized change per wheel notch.
	DefaultWheelSensitivity = 0.05
	// DefaultKeyboardStep is the normalized change for one arrow press.
	DefaultKeyboardStep = 0.01
	// TargetPixelsPerStep bounds how far a drag travels to cross one step
	// of a stepped parameter.
	TargetPixelsPerStep = 30.0
)

// AdaptiveSensitivity boosts a base drag sensitivity so that one step of a
// stepped parameter needs no more than TargetPixelsPerStep of travel.
// Callers apply this before constructing a controller.
func AdaptiveSensitivity(base, stepNorm float64) float64 {
	if stepNorm > 0 {
		if boosted := stepNorm / TargetPixelsPerStep; boosted > base {
			return boosted
		}
	}
	return base
}

// Mode restricts which input kinds a continuous controller accepts.
type Mode int

const (
	InputBoth Mode = iota
	InputDrag
	InputWheel
)

// Direction selects how pointer movement maps to value change.
type Direction int

const (
	// Vertical increases the value as the pointer moves up.
	Vertical Direction = iota
	// Horizontal increases the value as the pointer moves right.
	Horizontal
	// Omni sums the vertical and horizontal contributions; opposing axes
	// can cancel to zero.
	Omni
	// Circular follows the pointer angle around the target center, one
	// degree counting as one pixel.
	Circular
)

// ParseDirection resolves a drag direction by its configuration name. An
// empty name means vertical.
func ParseDirection(name string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "vertical":
		return Vertical, nil
	case "horizontal":
		return Horizontal, nil
	case "omni":
		return Omni, nil
	case "circular":
		return Circular, nil
	default:
		return 0, fmt.Errorf("invalid direction %q (expected vertical|horizontal|omni|circular)", name)
	}
}

// DirectionName returns the configuration name of a direction.
func DirectionName(d Direction) string {
	switch d {
	case Horizontal:
		return "horizontal"
	case Omni:
		return "omni"
	case Circular:
		return "circular"
	default:
		return "vertical"
	}
}

// Rect is a target bounding box in host pixel coordinates, used to anchor
// circular drags.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) CenterX() float64 { return r.X + r.W/2 }
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// AdjustFunc receives value-adjustment intents. The host applies
// normalized += delta*sensitivity, clamped to [0,1].
type AdjustFunc func(delta, sensitivity float64)

// ContinuousConfig configures a continuous controller. Zero values for the
// numeric fields select the package defaults.
type ContinuousConfig struct {
	Adjust           AdjustFunc
	Mode             Mode
	Direction        Direction
	Sensitivity      float64
	WheelSensitivity float64
	KeyboardStep     float64
	Step             float64 // normalized quantum; 0 disables step accumulation
	Disabled         bool
	OnDragStart      func()
	OnDragEnd        func()
}

// Continuous translates pointer, wheel, and keyboard events into value
// adjustments. It holds one drag session at a time; sub-step input
// accumulates until a whole step can be flushed. Methods are not safe for
// concurrent use: a controller belongs to the host's event loop.
type Continuous struct {
	cfg      ContinuousConfig
	dragging bool
	startX   float64
	startY   float64
	centerX  float64
	centerY  float64
	dragAcc  float64
	wheelAcc float64
}

func NewContinuous(cfg ContinuousConfig) *Continuous {
	return &Continuous{cfg: cfg}
}

// UpdateConfig replaces the whole configuration. New values take effect on
// the next event, never retroactively; an in-flight drag keeps its session
// state.
func (c *Continuous) UpdateConfig(cfg ContinuousConfig) { c.cfg = cfg }

// SetDisabled flips only the disabled flag.
func (c *Continuous) SetDisabled(disabled bool) { c.cfg.Disabled = disabled }

// Dragging reports whether a drag session is active.
func (c *Continuous) Dragging() bool { return c.dragging }

// Press starts a drag session at (x, y). The target rect anchors circular
// drags. Ignored when disabled, wheel-only, or already dragging.
func (c *Continuous) Press(x, y float64, target Rect) {
	if c.cfg.Disabled || c.cfg.Mode == InputWheel || c.dragging {
		return
	}
	c.dragging = true
	c.startX, c.startY = x, y
	c.centerX, c.centerY = target.CenterX(), target.CenterY()
	c.dragAcc = 0
	if c.cfg.OnDragStart != nil {
		c.cfg.OnDragStart()
	}
}

// Move advances an active drag. A zero raw delta fires no callback and
// leaves the start coordinates untouched.
func (c *Continuous) Move(x, y float64) {
	if !c.dragging {
		return
	}
	raw := c.rawDelta(x, y)
	if raw == 0 {
		return
	}
	c.apply(raw, c.sensitivity(), &c.dragAcc)
	c.startX, c.startY = x, y
}

// Release ends the drag session. The release may arrive from anywhere on
// screen; duplicate releases are no-ops.
func (c *Continuous) Release() {
	if !c.dragging {
		return
	}
	c.dragging = false
	if c.cfg.OnDragEnd != nil {
		c.cfg.OnDragEnd()
	}
}

// Wheel applies a wheel delta. Wheel and drag keep separate accumulators so
// mixed input modes do not cross-talk. Ignored when disabled or drag-only.
func (c *Continuous) Wheel(delta float64) {
	if c.cfg.Disabled || c.cfg.Mode == InputDrag || delta == 0 {
		return
	}
	c.apply(delta, c.wheelSensitivity(), &c.wheelAcc)
}

// Key handles a keyboard event by name and reports whether it was consumed.
// One arrow press moves the value by exactly the keyboard step regardless of
// drag sensitivity; Home and End saturate at the bounds.
func (c *Continuous) Key(name string) bool {
	if c.cfg.Disabled {
		return false
	}
	var raw float64
	switch name {
	case "ArrowUp", "ArrowRight":
		raw = 1
	case "ArrowDown", "ArrowLeft":
		raw = -1
	case "Home":
		raw = -1 / c.sensitivity()
	case "End":
		raw = 1 / c.sensitivity()
	default:
		return false
	}
	if c.cfg.Adjust != nil {
		sens := c.sensitivity()
		c.cfg.Adjust(raw*c.keyboardStep()/sens, sens)
	}
	return true
}

// Dispose force-releases an in-flight drag so a torn-down control never
// leaks a stuck session. Idempotent.
func (c *Continuous) Dispose() { c.Release() }

func (c *Continuous) rawDelta(x, y float64) float64 {
	switch c.cfg.Direction {
	case Horizontal:
		return x - c.startX
	case Omni:
		return (c.startY - y) + (x - c.startX)
	case Circular:
		prev := angleDeg(c.startX-c.centerX, c.startY-c.centerY)
		cur := angleDeg(x-c.centerX, y-c.centerY)
		return wrapDeg(cur - prev)
	default:
		return c.startY - y
	}
}

func (c *Continuous) apply(raw, sensitivity float64, acc *float64) {
	if c.cfg.Adjust == nil {
		return
	}
	step := c.cfg.Step
	if step <= 0 {
		c.cfg.Adjust(raw, sensitivity)
		return
	}
	*acc += raw * sensitivity
	if math.Abs(*acc) >= step {
		steps := math.Trunc(*acc / step)
		c.cfg.Adjust(steps*step, 1.0)
		*acc -= steps * step
	}
}

func (c *Continuous) sensitivity() float64 {
	if c.cfg.Sensitivity > 0 {
		return c.cfg.Sensitivity
	}
	return DefaultSensitivity
}

func (c *Continuous) wheelSensitivity() float64 {
	if c.cfg.WheelSensitivity > 0 {
		return c.cfg.WheelSensitivity
	}
	return DefaultWheelSensitivity
}

func (c *Continuous) keyboardStep() float64 {
	if c.cfg.KeyboardStep > 0 {
		return c.cfg.KeyboardStep
	}
	return DefaultKeyboardStep
}

func angleDeg(dx, dy float64) float64 {
	return math.Atan2(dy, dx) * 180 / math.Pi
}

// wrapDeg folds an angular difference onto [-180, 180] so a crossing of the
// +/-180 seam takes the short way around.
func wrapDeg(d float64) float64 {
	if d > 180 {
		return d - 360
	}
	if d < -180 {
		return d + 360
	}
	return d
}

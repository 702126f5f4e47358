package knobkit

import (
	"fmt"

	"github.com/cutoff/knobkit/control"
	"github.com/cutoff/knobkit/param"
)

// Board is an ordered set of controls sharing one host event loop. Like the
// controllers it owns, a board is single-threaded: construct it, mutate it,
// and feed it input from the same goroutine, typically the UI loop.
type Board struct {
	name     string
	controls []*Control
	byID     map[string]*Control
	onChange []func(*Control)
}

// BoardOption configures a board at construction time.
type BoardOption func(*Board)

// WithName labels the board for listings and remote mirrors.
func WithName(name string) BoardOption {
	return func(b *Board) { b.name = name }
}

// WithChangeListener registers a callback fired after any control's stored
// value moves. Listeners run synchronously in registration order.
func WithChangeListener(fn func(*Control)) BoardOption {
	return func(b *Board) { b.onChange = append(b.onChange, fn) }
}

func NewBoard(opts ...BoardOption) *Board {
	b := &Board{byID: make(map[string]*Control)}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name returns the board label.
func (b *Board) Name() string { return b.name }

// OnChange registers a change listener after construction, for hosts that
// receive an already-built board.
func (b *Board) OnChange(fn func(*Control)) {
	b.onChange = append(b.onChange, fn)
}

// Add validates a definition and attaches a control for it.
func (b *Board) Add(def param.Def, opts ...ControlOption) (*Control, error) {
	if err := param.Validate(def); err != nil {
		return nil, err
	}
	id := def.ParamInfo().ID
	if _, dup := b.byID[id]; dup {
		return nil, fmt.Errorf("duplicate control id %q", id)
	}
	c := newControl(b, def, opts...)
	b.controls = append(b.controls, c)
	b.byID[id] = c
	return c, nil
}

// Control returns the control with the given id, or nil.
func (b *Board) Control(id string) *Control {
	return b.byID[id]
}

// Controls returns the controls in the order they were added. The slice is
// shared; callers must not mutate it.
func (b *Board) Controls() []*Control { return b.controls }

// SetGlobalPointer fans the window-level pointer state to every switch
// control, driving paint-across gestures and outside-the-element releases.
func (b *Board) SetGlobalPointer(down bool) {
	for _, c := range b.controls {
		if c.button != nil {
			c.button.SetGlobalDown(down)
		}
	}
}

// Dispose settles every in-flight interaction: drags end, momentary
// switches release.
func (b *Board) Dispose() {
	for _, c := range b.controls {
		c.Dispose()
	}
}

func (b *Board) notifyChanged(c *Control) {
	for _, fn := range b.onChange {
		fn(c)
	}
}

// Package midimap routes MIDI control change messages to board controls and
// renders feedback messages for motorized or LED-ring surfaces. It is
// driver-agnostic: the host owns the ports and passes messages through.
package midimap

import (
	"fmt"
	"log/slog"
	"math"

	"gitlab.com/gomidi/midi/v2"

	"github.com/cutoff/knobkit"
)

// maxCC is the last assignable controller number; 120..127 are channel mode
// messages.
const maxCC = 119

// Binding describes one control's CC address. Wide bindings use the MSB/LSB
// controller pair (CC, CC+32).
type Binding struct {
	Channel uint8
	CC      uint8
	Wide    bool
	Control *knobkit.Control
}

type binding struct {
	Binding
	msb     uint8
	msbSeen bool
}

type ccKey struct {
	channel uint8
	cc      uint8
}

// Option configures a Mapper.
type Option func(*Mapper)

func WithLogger(logger *slog.Logger) Option {
	return func(m *Mapper) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// Mapper holds the CC bindings for one board. Like the board it feeds, a
// mapper is single-threaded: route incoming messages from the same loop that
// runs the UI.
type Mapper struct {
	logger *slog.Logger
	byCC   map[ccKey]*binding
	byCtrl map[*knobkit.Control]*binding
	order  []*binding
}

func New(opts ...Option) *Mapper {
	m := &Mapper{
		logger: slog.Default(),
		byCC:   make(map[ccKey]*binding),
		byCtrl: make(map[*knobkit.Control]*binding),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Bind maps a 7-bit controller to a control. Incoming values 0..127 write
// the control's normalized value.
func (m *Mapper) Bind(channel, cc uint8, ctrl *knobkit.Control) error {
	return m.bind(Binding{Channel: channel, CC: cc, Control: ctrl})
}

// Bind14 maps a 14-bit MSB/LSB controller pair to a control. ccMSB must be
// below 32 so the LSB companion lands on ccMSB+32. The MSB latches; the LSB
// applies the combined value.
func (m *Mapper) Bind14(channel, ccMSB uint8, ctrl *knobkit.Control) error {
	if ccMSB >= 32 {
		return fmt.Errorf("wide binding needs cc below 32, got %d", ccMSB)
	}
	return m.bind(Binding{Channel: channel, CC: ccMSB, Wide: true, Control: ctrl})
}

func (m *Mapper) bind(spec Binding) error {
	if spec.Control == nil {
		return fmt.Errorf("cannot bind a nil control")
	}
	if spec.Channel > 15 {
		return fmt.Errorf("channel %d out of range 0..15", spec.Channel)
	}
	if spec.CC > maxCC {
		return fmt.Errorf("cc %d out of range 0..%d", spec.CC, maxCC)
	}
	if _, dup := m.byCtrl[spec.Control]; dup {
		return fmt.Errorf("control %q already bound", spec.Control.ID())
	}
	keys := []ccKey{{spec.Channel, spec.CC}}
	if spec.Wide {
		keys = append(keys, ccKey{spec.Channel, spec.CC + 32})
	}
	for _, k := range keys {
		if prev, taken := m.byCC[k]; taken {
			return fmt.Errorf("cc %d on channel %d already bound to %q", k.cc, k.channel, prev.Control.ID())
		}
	}
	b := &binding{Binding: spec}
	for _, k := range keys {
		m.byCC[k] = b
	}
	m.byCtrl[spec.Control] = b
	m.order = append(m.order, b)
	return nil
}

// HandleMessage routes a control change message to its bound control and
// reports whether the message was consumed. Non-CC and unbound messages are
// left for the host.
func (m *Mapper) HandleMessage(msg midi.Message) bool {
	var channel, cc, value uint8
	if !msg.GetControlChange(&channel, &cc, &value) {
		return false
	}
	b, ok := m.byCC[ccKey{channel, cc}]
	if !ok {
		return false
	}
	switch {
	case !b.Wide:
		b.Control.SetNormalized(float64(value) / 127)
	case cc == b.CC:
		// MSB latches and waits for the LSB; surfaces always send the pair.
		b.msb, b.msbSeen = value, true
		return true
	default:
		msb := b.msb
		if !b.msbSeen {
			// LSB arrived first: refine the control's current coarse value
			// instead of jumping toward zero.
			msb = uint8(wideOf(b.Control) >> 7)
		}
		wide := uint16(msb)<<7 | uint16(value)
		b.Control.SetNormalized(float64(wide) / 16383)
	}
	m.logger.Debug("midi cc applied",
		"control", b.Control.ID(),
		"channel", channel,
		"cc", cc,
		"value", value,
		"text", b.Control.Text())
	return true
}

// Feedback renders the control's current value as outbound CC messages: one
// for a 7-bit binding, the MSB/LSB pair for a wide one. Nil when the control
// is not bound.
func (m *Mapper) Feedback(ctrl *knobkit.Control) []midi.Message {
	b, ok := m.byCtrl[ctrl]
	if !ok {
		return nil
	}
	if !b.Wide {
		v := uint8(math.Round(ctrl.Normalized() * 127))
		return []midi.Message{midi.ControlChange(b.Channel, b.CC, v)}
	}
	wide := wideOf(ctrl)
	return []midi.Message{
		midi.ControlChange(b.Channel, b.CC, uint8(wide>>7)),
		midi.ControlChange(b.Channel, b.CC+32, uint8(wide&0x7f)),
	}
}

// BindingOf returns the binding for a control.
func (m *Mapper) BindingOf(ctrl *knobkit.Control) (Binding, bool) {
	b, ok := m.byCtrl[ctrl]
	if !ok {
		return Binding{}, false
	}
	return b.Binding, true
}

// Bindings returns all bindings in bind order.
func (m *Mapper) Bindings() []Binding {
	out := make([]Binding, len(m.order))
	for i, b := range m.order {
		out[i] = b.Binding
	}
	return out
}

func wideOf(ctrl *knobkit.Control) uint16 {
	return uint16(math.Round(ctrl.Normalized() * 16383))
}

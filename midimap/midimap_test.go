package midimap

import (
	"strings"
	"testing"

	"gitlab.com/gomidi/midi/v2"

	"github.com/cutoff/knobkit"
	"github.com/cutoff/knobkit/param"
)

func testBoard(t *testing.T) (*knobkit.Board, *knobkit.Control, *knobkit.Control) {
	t.Helper()
	b := knobkit.NewBoard()
	level, err := b.Add(param.NewPercent("level", "Level"))
	if err != nil {
		t.Fatalf("add level: %v", err)
	}
	fine, err := b.Add(param.NewMIDI14("fine", "Fine"))
	if err != nil {
		t.Fatalf("add fine: %v", err)
	}
	return b, level, fine
}

func TestBindRejects(t *testing.T) {
	_, level, fine := testBoard(t)
	m := New()
	if err := m.Bind(0, 120, level); err == nil {
		t.Fatalf("cc 120 is a channel mode message, bind should fail")
	}
	if err := m.Bind(16, 7, level); err == nil {
		t.Fatalf("channel 16 should fail")
	}
	if err := m.Bind14(0, 32, fine); err == nil {
		t.Fatalf("wide bind at cc 32 should fail")
	}
	if err := m.Bind(0, 7, level); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if err := m.Bind(0, 7, fine); err == nil || !strings.Contains(err.Error(), "level") {
		t.Fatalf("duplicate address error should name the holder, got %v", err)
	}
	if err := m.Bind(1, 7, level); err == nil || !strings.Contains(err.Error(), "already bound") {
		t.Fatalf("rebinding a control should fail, got %v", err)
	}
}

func TestBindRejectsWideCollision(t *testing.T) {
	_, level, fine := testBoard(t)
	m := New()
	if err := m.Bind(0, 33, level); err != nil {
		t.Fatalf("bind: %v", err)
	}
	// A wide binding at cc 1 needs cc 33 for its LSB.
	if err := m.Bind14(0, 1, fine); err == nil {
		t.Fatalf("wide bind overlapping an existing LSB address should fail")
	}
}

func TestHandleMessageSevenBit(t *testing.T) {
	_, level, _ := testBoard(t)
	m := New()
	if err := m.Bind(0, 7, level); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if !m.HandleMessage(midi.ControlChange(0, 7, 127)) {
		t.Fatalf("bound cc should be consumed")
	}
	if got := level.Value(); got != 100 {
		t.Fatalf("value after cc 127 = %v, want 100", got)
	}
	m.HandleMessage(midi.ControlChange(0, 7, 64))
	if got := level.Value(); got != 50 {
		t.Fatalf("value after cc 64 = %v, want 50", got)
	}
	if m.HandleMessage(midi.ControlChange(0, 8, 10)) {
		t.Fatalf("unbound cc should pass through")
	}
	if m.HandleMessage(midi.ControlChange(1, 7, 10)) {
		t.Fatalf("bound cc on another channel should pass through")
	}
	if m.HandleMessage(midi.NoteOn(0, 60, 100)) {
		t.Fatalf("non-cc messages should pass through")
	}
}

func TestHandleMessageWide(t *testing.T) {
	_, _, fine := testBoard(t)
	m := New()
	if err := m.Bind14(0, 1, fine); err != nil {
		t.Fatalf("bind14: %v", err)
	}
	before := fine.Value()
	if !m.HandleMessage(midi.ControlChange(0, 1, 64)) {
		t.Fatalf("msb should be consumed")
	}
	if got := fine.Value(); got != before {
		t.Fatalf("msb alone must only latch, value moved to %v", got)
	}
	if !m.HandleMessage(midi.ControlChange(0, 33, 0)) {
		t.Fatalf("lsb should be consumed")
	}
	if got := fine.Value(); got != 8192 {
		t.Fatalf("value after msb/lsb pair = %v, want 8192", got)
	}
}

func TestHandleMessageLSBFirstRefines(t *testing.T) {
	_, _, fine := testBoard(t)
	m := New()
	if err := m.Bind14(0, 1, fine); err != nil {
		t.Fatalf("bind14: %v", err)
	}
	fine.SetValue(8192)
	// Without a latched MSB the LSB refines the current coarse value instead
	// of dropping toward zero.
	m.HandleMessage(midi.ControlChange(0, 33, 127))
	if got := fine.Value(); got != 8319 {
		t.Fatalf("value after lone lsb = %v, want 8319", got)
	}
}

func TestFeedback(t *testing.T) {
	_, level, fine := testBoard(t)
	m := New()
	if err := m.Bind(0, 7, level); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if err := m.Bind14(1, 2, fine); err != nil {
		t.Fatalf("bind14: %v", err)
	}

	level.SetValue(100)
	msgs := m.Feedback(level)
	if len(msgs) != 1 {
		t.Fatalf("7-bit feedback message count = %d, want 1", len(msgs))
	}
	var ch, cc, val uint8
	if !msgs[0].GetControlChange(&ch, &cc, &val) {
		t.Fatalf("feedback is not a control change")
	}
	if ch != 0 || cc != 7 || val != 127 {
		t.Fatalf("feedback = ch %d cc %d val %d, want ch 0 cc 7 val 127", ch, cc, val)
	}

	fine.SetValue(8192)
	msgs = m.Feedback(fine)
	if len(msgs) != 2 {
		t.Fatalf("wide feedback message count = %d, want 2", len(msgs))
	}
	msgs[0].GetControlChange(&ch, &cc, &val)
	if ch != 1 || cc != 2 || val != 64 {
		t.Fatalf("msb feedback = ch %d cc %d val %d, want ch 1 cc 2 val 64", ch, cc, val)
	}
	msgs[1].GetControlChange(&ch, &cc, &val)
	if ch != 1 || cc != 34 || val != 0 {
		t.Fatalf("lsb feedback = ch %d cc %d val %d, want ch 1 cc 34 val 0", ch, cc, val)
	}

	_, other, _ := testBoard(t)
	if got := m.Feedback(other); got != nil {
		t.Fatalf("feedback for an unbound control should be nil, got %v", got)
	}
}

func TestBindings(t *testing.T) {
	_, level, fine := testBoard(t)
	m := New()
	if err := m.Bind(0, 7, level); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if err := m.Bind14(0, 1, fine); err != nil {
		t.Fatalf("bind14: %v", err)
	}
	all := m.Bindings()
	if len(all) != 2 {
		t.Fatalf("bindings count = %d, want 2", len(all))
	}
	if all[0].Control != level || all[1].Control != fine {
		t.Fatalf("bindings out of bind order")
	}
	b, ok := m.BindingOf(fine)
	if !ok || !b.Wide || b.CC != 1 {
		t.Fatalf("binding of fine = %+v ok=%v", b, ok)
	}
	if _, ok := m.BindingOf(nil); ok {
		t.Fatalf("binding of nil control should report false")
	}
}

package control

import "sort"

// NoNote marks a pointer that is pressed but not over a playable region.
const NoNote = -1

// NoteTrackerConfig wires the note callbacks. The pointer id is the host's
// stable identifier for a touch or mouse session.
type NoteTrackerConfig struct {
	OnNoteOn  func(note, pointerID int)
	OnNoteOff func(note, pointerID int)
}

// NoteTracker maps live pointers to sounding notes, one session per
// pointer, so independent fingers can glissando without disturbing each
// other.
type NoteTracker struct {
	cfg    NoteTrackerConfig
	active map[int]int
}

func NewNoteTracker(cfg NoteTrackerConfig) *NoteTracker {
	return &NoteTracker{cfg: cfg, active: make(map[int]int)}
}

// PointerDown begins a session. A stale session for the same pointer is
// force-released first. note may be NoNote for a press outside any key.
func (n *NoteTracker) PointerDown(id, note int) {
	if old, ok := n.active[id]; ok {
		n.noteOff(old, id)
		delete(n.active, id)
	}
	n.active[id] = note
	n.noteOn(note, id)
}

// PointerMove slides a session to a new note. Untracked pointers are
// ignored so hovering never causes phantom glissando. On a note change the
// old note goes off strictly before the new one goes on.
func (n *NoteTracker) PointerMove(id, note int) {
	old, ok := n.active[id]
	if !ok || old == note {
		return
	}
	n.noteOff(old, id)
	n.active[id] = note
	n.noteOn(note, id)
}

// PointerUp ends a session, releasing its note if one is sounding.
func (n *NoteTracker) PointerUp(id int) {
	note, ok := n.active[id]
	if !ok {
		return
	}
	delete(n.active, id)
	n.noteOff(note, id)
}

// CancelAll force-releases every session in ascending pointer order, used
// on unmount or focus loss so no note keeps sounding.
func (n *NoteTracker) CancelAll() {
	ids := make([]int, 0, len(n.active))
	for id := range n.active {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		n.noteOff(n.active[id], id)
		delete(n.active, id)
	}
}

// Held returns the note tracked for a pointer.
func (n *NoteTracker) Held(id int) (note int, ok bool) {
	note, ok = n.active[id]
	return note, ok
}

// ActiveNotes returns the distinct sounding notes in ascending order.
func (n *NoteTracker) ActiveNotes() []int {
	seen := make(map[int]bool, len(n.active))
	notes := make([]int, 0, len(n.active))
	for _, note := range n.active {
		if note == NoNote || seen[note] {
			continue
		}
		seen[note] = true
		notes = append(notes, note)
	}
	sort.Ints(notes)
	return notes
}

func (n *NoteTracker) noteOn(note, id int) {
	if note != NoNote && n.cfg.OnNoteOn != nil {
		n.cfg.OnNoteOn(note, id)
	}
}

func (n *NoteTracker) noteOff(note, id int) {
	if note != NoNote && n.cfg.OnNoteOff != nil {
		n.cfg.OnNoteOff(note, id)
	}
}

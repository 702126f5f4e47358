// Package remote mirrors a control board over websockets. Connected clients
// get a board snapshot on connect and per-control change events afterwards;
// they may send set requests back. The package carries no dependency on the
// board types: hosts translate controls into ControlState and apply
// SetRequest themselves, which keeps the wire format stable while the board
// API evolves.
package remote

import "time"

// Wire message types.
const (
	TypeBoardInit      = "board_init"
	TypeControlChanged = "control_changed"
	TypeSet            = "set"
)

// ControlState is the wire form of one control.
type ControlState struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Kind       string  `json:"kind"`
	Text       string  `json:"text"`
	Value      float64 `json:"value"`
	Normalized float64 `json:"normalized"`
}

// BoardState is the snapshot sent on connect.
type BoardState struct {
	Board    string         `json:"board"`
	Controls []ControlState `json:"controls"`
}

// SetRequest asks the host to move a control to a normalized value.
type SetRequest struct {
	ID         string  `json:"id"`
	Normalized float64 `json:"normalized"`
}

// envelope frames every message on the wire.
type envelope struct {
	Type string     `json:"type"`
	Ts   *time.Time `json:"ts,omitempty"`
	Data any        `json:"data,omitempty"`
}

package remote

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const defaultCoalesceWindow = 50 * time.Millisecond

// ServerConfig sizes the server queues. Zero values pick defaults.
type ServerConfig struct {
	Hub HubConfig
	// RequestBuf sizes the inbound set-request queue.
	RequestBuf int
	// UpdateBuf sizes the publish queue.
	UpdateBuf int
	// CoalesceWindow bounds how often one control hits the wire; a drag in
	// flight publishes far faster than clients need to see.
	CoalesceWindow time.Duration
}

// Server mirrors one board: it serves the websocket endpoint, broadcasts
// published control states, and surfaces inbound set requests. The host
// publishes from its own loop and drains Requests there, so the board never
// crosses goroutines.
type Server struct {
	logger   *slog.Logger
	hub      *Hub
	window   time.Duration
	updates  chan ControlState
	requests chan SetRequest

	mu    sync.Mutex
	board BoardState
	index map[string]int
}

// NewServer constructs the server. Call SetBoard with the initial snapshot,
// Register on a mux, and Run in a goroutine.
func NewServer(logger *slog.Logger, cfg ServerConfig) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	requestBuf := cfg.RequestBuf
	if requestBuf <= 0 {
		requestBuf = 64
	}
	updateBuf := cfg.UpdateBuf
	if updateBuf <= 0 {
		updateBuf = 128
	}
	window := cfg.CoalesceWindow
	if window <= 0 {
		window = defaultCoalesceWindow
	}
	return &Server{
		logger:   logger,
		hub:      NewHub(logger, cfg.Hub),
		window:   window,
		updates:  make(chan ControlState, updateBuf),
		requests: make(chan SetRequest, requestBuf),
	}
}

func (s *Server) Hub() *Hub { return s.hub }

// Requests returns the inbound set-request stream. Drain it from the host
// loop; requests are dropped when nobody drains.
func (s *Server) Requests() <-chan SetRequest { return s.requests }

// SetBoard installs the snapshot served to newly connected clients. The
// controls slice is copied.
func (s *Server) SetBoard(b BoardState) {
	controls := append([]ControlState(nil), b.Controls...)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.board = BoardState{Board: b.Board, Controls: controls}
	s.index = make(map[string]int, len(controls))
	for i, c := range controls {
		s.index[c.ID] = i
	}
}

// Publish enqueues a control state for broadcast. It never blocks; when the
// queue is full the state is dropped and the next publish catches clients
// up.
func (s *Server) Publish(st ControlState) {
	select {
	case s.updates <- st:
	default:
		s.logger.Warn("remote update queue full, dropping state", "control", st.ID)
	}
}

// Run drives the hub and the broadcaster until ctx is canceled.
func (s *Server) Run(ctx context.Context) {
	go s.hub.Run(ctx)
	s.runBroadcaster(ctx)
}

// runBroadcaster coalesces published states per control: within a window the
// latest state wins, so a drag burst costs one frame per control per window.
func (s *Server) runBroadcaster(ctx context.Context) {
	pending := make(map[string]ControlState)
	var order []string
	var timer *time.Timer
	var timerCh <-chan time.Time

	flush := func() {
		now := time.Now().UTC()
		for _, id := range order {
			st := pending[id]
			s.rememberState(st)
			msg, err := json.Marshal(envelope{Type: TypeControlChanged, Ts: &now, Data: st})
			if err != nil {
				s.logger.Warn("remote marshal failed", "error", err, "control", id)
				continue
			}
			s.hub.BroadcastBytes(msg)
		}
		clear(pending)
		order = order[:0]
	}

	for {
		select {
		case <-ctx.Done():
			flush()
			if timer != nil {
				timer.Stop()
			}
			return

		case <-timerCh:
			flush()
			timer, timerCh = nil, nil

		case st := <-s.updates:
			if _, queued := pending[st.ID]; !queued {
				order = append(order, st.ID)
			}
			pending[st.ID] = st
			if timer == nil {
				timer = time.NewTimer(s.window)
				timerCh = timer.C
			}
		}
	}
}

func (s *Server) rememberState(st ControlState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i, ok := s.index[st.ID]; ok {
		s.board.Controls[i] = st
	}
}

func (s *Server) snapshot() BoardState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return BoardState{
		Board:    s.board.Board,
		Controls: append([]ControlState(nil), s.board.Controls...),
	}
}

var upgrader = websocket.Upgrader{
	// Origin policy is the embedding host's concern.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Register mounts the websocket handler on mux.
func (s *Server) Register(mux *http.ServeMux, path string) {
	if mux == nil {
		return
	}
	mux.HandleFunc(path, s.ServeWS)
}

// ServeWS upgrades the connection, registers the client, and queues the
// board snapshot as the first frame.
func (s *Server) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("remote upgrade failed", "error", err)
		return
	}
	client := NewClient(s.hub, conn, r.RemoteAddr, s.logger)
	client.onMessage = s.handleInbound
	s.hub.register <- client

	// The pumps outlive this handler: net/http cancels r.Context() on
	// return, which would tear the session down mid-connect.
	go client.writePump(context.Background())
	go client.readPump(context.Background())

	now := time.Now().UTC()
	init, err := json.Marshal(envelope{Type: TypeBoardInit, Ts: &now, Data: s.snapshot()})
	if err != nil {
		s.logger.Warn("remote marshal failed", "error", err, "type", TypeBoardInit)
		return
	}
	select {
	case client.send <- init:
	default:
		s.hub.unregister <- client
	}
}

func (s *Server) handleInbound(raw []byte) {
	var env struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		s.logger.Warn("remote bad frame", "error", err)
		return
	}
	if env.Type != TypeSet {
		return
	}
	var req SetRequest
	if err := json.Unmarshal(env.Data, &req); err != nil {
		s.logger.Warn("remote bad set request", "error", err)
		return
	}
	select {
	case s.requests <- req:
	default:
		s.logger.Warn("remote request queue full, dropping set", "control", req.ID)
	}
}

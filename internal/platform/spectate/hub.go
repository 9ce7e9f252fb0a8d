// Package spectate streams live game frames to WebSocket viewers.
//
// Players publish frames into a Hub under their session ID; viewers connect
// to /ws?session=<id> and receive every frame as JSON. Slow viewers lose
// old frames rather than slowing down the game.
package spectate

import (
	"encoding/json"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	// clientBuffer is how many frames a viewer may lag behind.
	clientBuffer = 16
	writeTimeout = 5 * time.Second
)

// Frame is one message sent to viewers.
type Frame struct {
	Session string    `json:"session"`
	Game    string    `json:"game"`
	Player  string    `json:"player"`
	Ended   bool      `json:"ended,omitempty"`
	At      time.Time `json:"at"`
	State   any       `json:"state,omitempty"`
}

// SessionInfo describes a live session in the listing.
type SessionInfo struct {
	ID      string    `json:"id"`
	Game    string    `json:"game"`
	Player  string    `json:"player"`
	Viewers int       `json:"viewers"`
	Started time.Time `json:"started"`
}

type client struct {
	frames chan Frame
}

// push queues f, dropping the oldest queued frame when full.
func (c *client) push(f Frame) {
	for {
		select {
		case c.frames <- f:
			return
		default:
		}
		select {
		case <-c.frames:
		default:
		}
	}
}

type session struct {
	info    SessionInfo
	last    *Frame
	clients map[*client]struct{}
}

// Hub fans frames out from publishers to viewers. It is safe for
// concurrent use.
type Hub struct {
	mu       sync.Mutex
	sessions map[string]*session
	upgrader websocket.Upgrader
	logger   *log.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		sessions: make(map[string]*session),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Open registers a session. Opening an existing ID replaces its metadata
// and keeps connected viewers.
func (h *Hub) Open(id, game, player string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.sessions[id]
	if !ok {
		s = &session{clients: make(map[*client]struct{})}
		h.sessions[id] = s
	}
	s.info = SessionInfo{ID: id, Game: game, Player: player, Started: time.Now()}
	s.last = nil
	h.logger.Debug("spectate session opened", "session", id, "game", game, "player", player)
}

// Publish sends state to every viewer of the session. Unknown sessions are
// ignored.
func (h *Hub) Publish(id string, state any) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.sessions[id]
	if !ok {
		return
	}
	f := Frame{
		Session: id,
		Game:    s.info.Game,
		Player:  s.info.Player,
		At:      time.Now(),
		State:   state,
	}
	s.last = &f
	for c := range s.clients {
		c.push(f)
	}
}

// Close ends a session. Viewers get a final frame with Ended set and are
// disconnected.
func (h *Hub) Close(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.sessions[id]
	if !ok {
		return
	}
	delete(h.sessions, id)

	end := Frame{Session: id, Game: s.info.Game, Player: s.info.Player, Ended: true, At: time.Now()}
	for c := range s.clients {
		c.push(end)
		close(c.frames)
	}
	h.logger.Debug("spectate session closed", "session", id)
}

// Sessions lists live sessions, oldest first.
func (h *Hub) Sessions() []SessionInfo {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]SessionInfo, 0, len(h.sessions))
	for _, s := range h.sessions {
		info := s.info
		info.Viewers = len(s.clients)
		out = append(out, info)
	}
	slices.SortFunc(out, func(a, b SessionInfo) int {
		if c := a.Started.Compare(b.Started); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// subscribe attaches a viewer and queues the latest frame, if any.
func (h *Hub) subscribe(id string) (*client, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.sessions[id]
	if !ok {
		return nil, false
	}
	c := &client{frames: make(chan Frame, clientBuffer)}
	s.clients[c] = struct{}{}
	if s.last != nil {
		c.push(*s.last)
	}
	return c, true
}

// unsubscribe detaches a viewer. It is a no-op after Close.
func (h *Hub) unsubscribe(id string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.sessions[id]
	if !ok {
		return
	}
	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		close(c.frames)
	}
}

// Handler returns the HTTP routes: /ws for viewers and /sessions for the
// JSON listing.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.serveWS)
	mux.HandleFunc("/sessions", h.serveSessions)
	return mux
}

func (h *Hub) serveSessions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.Sessions()); err != nil {
		h.logger.Warn("encode sessions", "error", err)
	}
}

func (h *Hub) serveWS(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("session")
	c, ok := h.subscribe(id)
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.unsubscribe(id, c)
		h.logger.Warn("websocket upgrade", "error", err)
		return
	}
	h.logger.Info("viewer connected", "session", id, "remote", r.RemoteAddr)

	// Viewers never send anything useful; reading detects disconnects.
	go func() {
		defer h.unsubscribe(id, c)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	h.writeLoop(conn, c)
	h.logger.Info("viewer disconnected", "session", id, "remote", r.RemoteAddr)
}

// writeLoop sends frames until the session ends or the viewer goes away.
func (h *Hub) writeLoop(conn *websocket.Conn, c *client) {
	defer conn.Close()

	for f := range c.frames {
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(f); err != nil {
			return
		}
	}
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session ended"),
		time.Now().Add(writeTimeout))
}

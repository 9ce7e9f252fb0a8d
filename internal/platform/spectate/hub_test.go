package spectate

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

func newTestHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub(log.New(io.Discard))
	srv := httptest.NewServer(hub.Handler())
	t.Cleanup(srv.Close)
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, id string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?session=" + id
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) Frame {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var f Frame
	if err := conn.ReadJSON(&f); err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	return f
}

// waitViewers polls until the session has n viewers.
func waitViewers(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		sessions := hub.Sessions()
		if len(sessions) == 1 && sessions[0].Viewers == n {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("session never reached %d viewers", n)
}

func TestViewerReceivesFrames(t *testing.T) {
	hub, srv := newTestHub(t)
	hub.Open("s1", "boomtris", "alice")
	hub.Publish("s1", map[string]int{"score": 10})

	conn := dial(t, srv, "s1")

	// The latest frame is replayed on connect.
	f := readFrame(t, conn)
	if f.Session != "s1" || f.Game != "boomtris" || f.Player != "alice" {
		t.Errorf("frame header = %+v", f)
	}
	state, ok := f.State.(map[string]any)
	if !ok || state["score"] != float64(10) {
		t.Errorf("frame state = %#v", f.State)
	}

	waitViewers(t, hub, 1)
	hub.Publish("s1", map[string]int{"score": 20})
	f = readFrame(t, conn)
	if state := f.State.(map[string]any); state["score"] != float64(20) {
		t.Errorf("second frame state = %#v", f.State)
	}
}

func TestCloseEndsStream(t *testing.T) {
	hub, srv := newTestHub(t)
	hub.Open("s1", "boomtris", "bob")

	conn := dial(t, srv, "s1")
	waitViewers(t, hub, 1)

	hub.Close("s1")
	f := readFrame(t, conn)
	if !f.Ended {
		t.Errorf("expected ended frame, got %+v", f)
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		t.Errorf("ReadMessage() error = %v, want normal closure", err)
	}
	if n := len(hub.Sessions()); n != 0 {
		t.Errorf("sessions after close = %d, want 0", n)
	}
}

func TestUnknownSession(t *testing.T) {
	_, srv := newTestHub(t)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?session=missing"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("expected dial error")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Errorf("response = %v, want 404", resp)
	}
}

func TestSessionsListing(t *testing.T) {
	hub, srv := newTestHub(t)
	hub.Open("a", "boomtris", "alice")
	hub.Open("b", "boomtris_classic", "bob")

	resp, err := http.Get(srv.URL + "/sessions")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var got []SessionInfo
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("sessions = %d, want 2", len(got))
	}
	ids := map[string]string{}
	for _, s := range got {
		ids[s.ID] = s.Game
	}
	if ids["a"] != "boomtris" || ids["b"] != "boomtris_classic" {
		t.Errorf("sessions = %v", ids)
	}
}

func TestPushDropsOldest(t *testing.T) {
	c := &client{frames: make(chan Frame, 2)}
	for i := range 5 {
		c.push(Frame{Session: string(rune('a' + i))})
	}

	var got []string
	for range 2 {
		got = append(got, (<-c.frames).Session)
	}
	if strings.Join(got, "") != "de" {
		t.Errorf("queued frames = %v, want [d e]", got)
	}
}

func TestPublishUnknownSessionIgnored(t *testing.T) {
	hub := NewHub(log.New(io.Discard))
	hub.Publish("nope", 1)
	hub.Close("nope")
	if n := len(hub.Sessions()); n != 0 {
		t.Errorf("sessions = %d, want 0", n)
	}
}

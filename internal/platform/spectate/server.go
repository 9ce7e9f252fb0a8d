package spectate

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

// Server serves a Hub over HTTP.
type Server struct {
	hub    *Hub
	server *http.Server
}

// NewServer creates a server for hub listening on addr (e.g. ":8080").
func NewServer(addr string, hub *Hub) *Server {
	return &Server{
		hub: hub,
		server: &http.Server{
			Addr:              addr,
			Handler:           hub.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Start begins serving in the background and returns the bound address.
func (s *Server) Start() (string, error) {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return "", fmt.Errorf("spectate: listen %s: %w", s.server.Addr, err)
	}

	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.hub.logger.Error("spectate server error", "error", err)
		}
	}()

	s.hub.logger.Info("spectator server listening", "address", ln.Addr().String())
	return ln.Addr().String(), nil
}

// Shutdown stops accepting viewers and waits for handlers to finish.
// Open WebSocket connections are closed by closing their sessions.
func (s *Server) Shutdown(ctx context.Context) error {
	for _, info := range s.hub.Sessions() {
		s.hub.Close(info.ID)
	}
	return s.server.Shutdown(ctx)
}

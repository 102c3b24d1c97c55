package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/biovault/bvconsole/internal/logging"
)

// HandlerFunc executes one command. The returned value is JSON-encoded into
// the response result.
type HandlerFunc func(ctx context.Context, args json.RawMessage) (any, error)

// Server accepts WebSocket connections and dispatches commands against a
// registry of handlers.
type Server struct {
	upgrader websocket.Upgrader
	log      zerolog.Logger

	mu       sync.RWMutex
	handlers map[string]HandlerFunc
}

// NewServer creates a server with an empty command registry.
func NewServer() *Server {
	return &Server{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// The bridge binds to loopback; the webview sends no Origin
			// header a browser check would accept.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		log:      logging.Component("bridge"),
		handlers: make(map[string]HandlerFunc),
	}
}

// Handle registers a command handler, replacing any previous one.
func (s *Server) Handle(cmd string, h HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[cmd] = h
}

func (s *Server) handler(cmd string) (HandlerFunc, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.handlers[cmd]
	return h, ok
}

// ListenAndServe serves the bridge on addr until the context is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		// Cancellation is how the daemon stops; a clean shutdown is not an
		// error.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// ServeHTTP upgrades the request and runs the connection loop.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("websocket handshake failed")
		return
	}
	s.serveConn(r.Context(), conn)
}

func (s *Server) serveConn(ctx context.Context, conn *websocket.Conn) {
	connID := uuid.NewString()
	log := s.log.With().Str("conn_id", connID).Str("remote", conn.RemoteAddr().String()).Logger()
	log.Debug().Msg("connection opened")
	defer log.Debug().Msg("connection closed")
	defer conn.Close()

	// Single writer goroutine: gorilla connections allow one concurrent
	// writer, and a slow command must not block reads.
	out := make(chan Response, 256)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for resp := range out {
			if err := conn.WriteJSON(resp); err != nil {
				log.Warn().Err(err).Msg("write failed")
				return
			}
		}
	}()

	var inflight sync.WaitGroup
	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug().Err(err).Msg("read ended")
			}
			break
		}
		if msgType != websocket.TextMessage {
			continue
		}

		var req Request
		if err := json.Unmarshal(data, &req); err != nil {
			log.Warn().Err(err).Msg("unparseable request")
			continue
		}
		log.Debug().Uint32("id", req.ID).Str("cmd", req.Cmd).Msg("request")

		// Each request runs concurrently so one slow command doesn't stall
		// the bridge.
		inflight.Add(1)
		go func() {
			defer inflight.Done()
			resp := s.execute(ctx, req)
			select {
			case out <- resp:
			case <-writerDone: // writer gone, drop the response
			}
		}()
	}

	inflight.Wait()
	close(out)
	<-writerDone
}

func (s *Server) execute(ctx context.Context, req Request) Response {
	h, ok := s.handler(req.Cmd)
	if !ok {
		s.log.Warn().Str("cmd", req.Cmd).Msg("unhandled command")
		return Response{ID: req.ID, Error: fmt.Sprintf("unhandled command: %s", req.Cmd)}
	}

	result, err := h(ctx, req.Args)
	if err != nil {
		return Response{ID: req.ID, Error: err.Error()}
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return Response{ID: req.ID, Error: fmt.Sprintf("encode result: %v", err)}
	}
	return Response{ID: req.ID, Result: raw}
}

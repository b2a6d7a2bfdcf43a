package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/felixgeelhaar/studio/pkg/domain/events"
)

const wsWriteTimeout = 10 * time.Second

// WSHandler streams domain events over a websocket, for clients that
// prefer a socket over SSE.
type WSHandler struct {
	log      zerolog.Logger
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[chan *events.Event]struct{}
}

// NewWSHandler creates a websocket handler. It receives events through
// the server's dispatcher, see HandleEvent.
func NewWSHandler(log zerolog.Logger) *WSHandler {
	return &WSHandler{
		log: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The mockup is served from the same origin; dev setups
			// proxy through it.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[chan *events.Event]struct{}),
	}
}

// HandleEvent broadcasts one event to every connected socket. Never
// blocks: slow clients drop events.
func (h *WSHandler) HandleEvent(ctx context.Context, e *events.Event) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.clients {
		select {
		case ch <- e:
		default:
		}
	}
	return nil
}

func (h *WSHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	ch := make(chan *events.Event, 64)
	h.mu.Lock()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, ch)
		h.mu.Unlock()
		close(ch)
	}()

	// Reader loop: we never expect client messages, but reading is how
	// close frames surface.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-done:
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		}
	}
}

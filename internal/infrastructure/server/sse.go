package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/felixgeelhaar/studio/pkg/domain/events"
)

// SSEHandler streams domain events via Server-Sent Events.
type SSEHandler struct {
	mu      sync.RWMutex
	clients map[chan *events.Event]struct{}
}

// NewSSEHandler creates an SSE handler. It receives events through the
// server's dispatcher, see HandleEvent.
func NewSSEHandler() *SSEHandler {
	return &SSEHandler{
		clients: make(map[chan *events.Event]struct{}),
	}
}

// HandleEvent broadcasts one event to every connected client. It is
// registered as a dispatcher handler and never blocks: slow clients
// drop events.
func (h *SSEHandler) HandleEvent(ctx context.Context, e *events.Event) error {
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

// ServeHTTP handles SSE connections. A comma-separated "types" query
// parameter narrows the stream to matching event types.
func (h *SSEHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	typeFilter := make(map[string]bool)
	if types := r.URL.Query().Get("types"); types != "" {
		for _, t := range strings.Split(types, ",") {
			typeFilter[strings.TrimSpace(t)] = true
		}
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

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

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if len(typeFilter) > 0 && !typeFilter[event.Type] {
				continue
			}

			data, err := json.Marshal(event)
			if err != nil {
				continue
			}
			_, _ = fmt.Fprintf(w, "id: %s\n", event.ID)
			_, _ = fmt.Fprintf(w, "event: %s\n", event.Type)
			_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()
		}
	}
}

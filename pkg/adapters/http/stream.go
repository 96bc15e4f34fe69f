package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/aretw0/seqline/pkg/domain"
)

// StreamManager fans lifeline events out to SSE subscribers, keyed by diagram name.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- string]struct{}
	logger      *slog.Logger
}

// NewStreamManager creates an empty manager. A nil logger discards output.
func NewStreamManager(logger *slog.Logger) *StreamManager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &StreamManager{
		subscribers: make(map[string]map[chan<- string]struct{}),
		logger:      logger,
	}
}

// Subscribe registers a listener for a diagram. The returned function unsubscribes and
// closes the channel.
func (sm *StreamManager) Subscribe(diagram string) (chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 64)
	if _, ok := sm.subscribers[diagram]; !ok {
		sm.subscribers[diagram] = make(map[chan<- string]struct{})
	}
	sm.subscribers[diagram][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[diagram]; ok {
			if _, ok := subs[ch]; !ok {
				return
			}
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, diagram)
			}
		}
	}
}

// Broadcast sends msg to every subscriber of the diagram. Slow subscribers lose messages.
func (sm *StreamManager) Broadcast(diagram string, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers[diagram] {
		select {
		case ch <- msg:
		default:
			sm.logger.Warn("SSE: client buffer full, dropping event", "diagram", diagram)
		}
	}
}

// Hooks returns lifecycle hooks that broadcast every lifeline event as JSON.
func (sm *StreamManager) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnLifeline: func(_ context.Context, e *domain.LifelineEvent) {
			payload, err := json.Marshal(e)
			if err != nil {
				sm.logger.Error("SSE: event encode failed", "error", err)
				return
			}
			sm.Broadcast(e.Diagram, string(payload))
		},
	}
}

// SubscribeEvents handles the GET /events?diagram=<name> request (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	diagram := strings.TrimSpace(r.URL.Query().Get("diagram"))
	if diagram == "" {
		http.Error(w, "missing diagram parameter", http.StatusBadRequest)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: streaming not supported")
		return
	}

	ch, cancel := s.Streams.Subscribe(diagram)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()
	s.logger.Info("SSE: client subscribed", "diagram", diagram)

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE: client disconnected", "diagram", diagram)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: lifeline\ndata: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

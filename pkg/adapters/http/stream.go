package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/sulaimaniyah/undangan/internal/logging"
	"github.com/sulaimaniyah/undangan/pkg/domain"
)

// StreamManager handles active SSE connections and turns published
// snapshots into diffs against the previous snapshot of the same session.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- string]struct{} // SessionID -> Set of Channels

	lastMu sync.Mutex
	last   map[string]*domain.Snapshot

	logger *slog.Logger
}

// NewStreamManager creates a manager. A nil logger discards output.
func NewStreamManager(logger *slog.Logger) *StreamManager {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &StreamManager{
		subscribers: make(map[string]map[chan<- string]struct{}),
		last:        make(map[string]*domain.Snapshot),
		logger:      logger,
	}
}

// Subscribe registers a buffered channel for a session. The returned
// function unsubscribes and closes the channel.
func (sm *StreamManager) Subscribe(sessionID string) (<-chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	if _, ok := sm.subscribers[sessionID]; !ok {
		sm.subscribers[sessionID] = make(map[chan<- string]struct{})
	}
	sm.subscribers[sessionID][ch] = struct{}{}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			sm.mu.Lock()
			defer sm.mu.Unlock()
			if subs, ok := sm.subscribers[sessionID]; ok {
				delete(subs, ch)
				if len(subs) == 0 {
					delete(sm.subscribers, sessionID)
				}
			}
			close(ch)
		})
	}
}

// Publish diffs snap against the last published snapshot of its session
// and broadcasts the diff. It is registered as a session listener.
func (sm *StreamManager) Publish(snap *domain.Snapshot) {
	sm.lastMu.Lock()
	prev := sm.last[snap.SessionID]
	if prev != nil && snap.UpdatedAt.Before(prev.UpdatedAt) {
		sm.lastMu.Unlock()
		return
	}
	sm.last[snap.SessionID] = snap.Clone()
	sm.lastMu.Unlock()

	diff := domain.Diff(prev, snap)
	if diff == nil {
		return
	}
	raw, err := json.Marshal(diff)
	if err != nil {
		sm.logger.Error("sse: marshal diff failed", "session_id", snap.SessionID, "error", err)
		return
	}
	sm.Broadcast(snap.SessionID, string(raw))
}

// Broadcast sends msg to every subscriber of a session. Slow clients drop messages.
func (sm *StreamManager) Broadcast(sessionID string, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers[sessionID] {
		select {
		case ch <- msg:
		default:
			sm.logger.Warn("sse: client buffer full, dropping message", "session_id", sessionID)
		}
	}
}

// Subscribers returns the number of open streams for a session.
func (sm *StreamManager) Subscribers(sessionID string) int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers[sessionID])
}

// serve streams diffs for sessionID until the client disconnects.
// watch optionally filters by view, form, outcome or reveal.
func (sm *StreamManager) serve(w http.ResponseWriter, r *http.Request, sessionID, watch string) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := sm.Subscribe(sessionID)
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	var watchList []string
	for _, f := range strings.Split(watch, ",") {
		if f = strings.TrimSpace(f); f != "" {
			watchList = append(watchList, f)
		}
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if len(watchList) > 0 && !matchesWatch(msg, watchList) {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func matchesWatch(msg string, watchList []string) bool {
	var diff domain.SnapshotDiff
	if err := json.Unmarshal([]byte(msg), &diff); err != nil {
		return true
	}
	for _, field := range watchList {
		switch field {
		case "view":
			if diff.View != nil {
				return true
			}
		case "form":
			if diff.Form != nil || diff.FormError != nil {
				return true
			}
		case "outcome":
			if diff.Outcome != nil || diff.OutcomeCleared {
				return true
			}
		case "reveal":
			if len(diff.Revealed) > 0 || diff.Rearmed {
				return true
			}
		}
	}
	return false
}

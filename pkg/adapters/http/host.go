package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/sulaimaniyah/undangan/pkg/domain"
)

// Client-side event names carried in HX-Trigger.
const (
	EventScroll = "undangan:scroll"
	EventAudio  = "undangan:audio"
)

// ErrNoHost is returned when a host capability is used outside a request.
var ErrNoHost = errors.New("no host directive sink in context")

type directivesKey struct{}

// directives collects host requests made while handling one HTTP request.
type directives struct {
	mu     sync.Mutex
	events map[string]any
}

func withDirectives(ctx context.Context) (context.Context, *directives) {
	d := &directives{events: make(map[string]any)}
	return context.WithValue(ctx, directivesKey{}, d), d
}

func directivesFrom(ctx context.Context) (*directives, bool) {
	d, ok := ctx.Value(directivesKey{}).(*directives)
	return d, ok
}

func (d *directives) add(event string, detail any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events[event] = detail
}

// write sets HX-Trigger when any directive was queued.
func (d *directives) write(w http.ResponseWriter) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.events) == 0 {
		return nil
	}
	raw, err := json.Marshal(d.events)
	if err != nil {
		return err
	}
	w.Header().Set("HX-Trigger", string(raw))
	return nil
}

// HostBridge implements ports.Scroller and ports.AudioPlayer by queueing
// directives on the in-flight request. One bridge serves every session.
type HostBridge struct{}

// NewHostBridge creates a bridge.
func NewHostBridge() *HostBridge {
	return &HostBridge{}
}

// ScrollTo implements ports.Scroller.
func (HostBridge) ScrollTo(ctx context.Context, section domain.Section) error {
	d, ok := directivesFrom(ctx)
	if !ok {
		return ErrNoHost
	}
	d.add(EventScroll, map[string]string{"section": string(section)})
	return nil
}

// Play implements ports.AudioPlayer. Autoplay failures are reported back
// by the page through POST /audio/failed.
func (HostBridge) Play(ctx context.Context) error {
	d, ok := directivesFrom(ctx)
	if !ok {
		return ErrNoHost
	}
	d.add(EventAudio, map[string]string{"action": "play"})
	return nil
}

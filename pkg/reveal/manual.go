package reveal

import (
	"sort"
	"sync"

	"github.com/sulaimaniyah/undangan/pkg/domain"
)

type watch struct {
	threshold float64
	onVisible func(domain.Section)
}

// ManualObserver is an in-process ports.Observer driven by explicit reports.
// The HTTP adapter feeds it from browser intersection beacons; tests use it
// to fire callbacks synchronously.
type ManualObserver struct {
	mu      sync.Mutex
	watches map[domain.Section]watch
}

// NewManualObserver creates an observer with nothing watched.
func NewManualObserver() *ManualObserver {
	return &ManualObserver{watches: make(map[domain.Section]watch)}
}

// Observe implements ports.Observer.
func (o *ManualObserver) Observe(section domain.Section, threshold float64, onVisible func(domain.Section)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.watches[section] = watch{threshold: threshold, onVisible: onVisible}
}

// Unobserve implements ports.Observer.
func (o *ManualObserver) Unobserve(section domain.Section) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.watches, section)
}

// Disconnect implements ports.Observer.
func (o *ManualObserver) Disconnect() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.watches = make(map[domain.Section]watch)
}

// Report records that ratio (0..1) of section is in view. It fires the
// callback when the section is watched and the ratio reaches its threshold,
// and reports whether it did.
func (o *ManualObserver) Report(section domain.Section, ratio float64) bool {
	o.mu.Lock()
	w, ok := o.watches[section]
	o.mu.Unlock()

	if !ok || ratio < w.threshold {
		return false
	}
	w.onVisible(section)
	return true
}

// Watching returns the currently watched sections, sorted by name.
func (o *ManualObserver) Watching() []domain.Section {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]domain.Section, 0, len(o.watches))
	for s := range o.watches {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

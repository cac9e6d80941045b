package ports

import (
	"context"

	"github.com/sulaimaniyah/undangan/pkg/domain"
)

// Observer abstracts the host's viewport-intersection mechanism.
type Observer interface {
	// Observe starts watching section. onVisible is called once at least
	// threshold (0..1) of the section's area is in view. Callbacks may arrive
	// asynchronously and more than once.
	Observe(section domain.Section, threshold float64, onVisible func(domain.Section))

	// Unobserve stops watching a single section.
	Unobserve(section domain.Section)

	// Disconnect stops watching every section and releases all resources.
	Disconnect()
}

// Scroller asks the host to bring a section into view.
type Scroller interface {
	ScrollTo(ctx context.Context, section domain.Section) error
}

// AudioPlayer starts the looping background track.
// Playback is best-effort; hosts may refuse (e.g. autoplay policy).
type AudioPlayer interface {
	Play(ctx context.Context) error
}

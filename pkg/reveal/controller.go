package reveal

import (
	"sync"

	"github.com/sulaimaniyah/undangan/pkg/domain"
	"github.com/sulaimaniyah/undangan/pkg/ports"
)

// DefaultThreshold is the share of a section's area that must be in view.
const DefaultThreshold = 0.4

// Controller marks sections visible once they are sufficiently in view.
// Safe for concurrent use; observer callbacks may arrive from any goroutine.
type Controller struct {
	mu sync.Mutex
	// armMu serialises the disconnect and observe sequences of Arm, Rearm,
	// Restore and Close so two armings cannot interleave on the observer.
	armMu sync.Mutex

	observer  ports.Observer
	threshold float64
	onReveal  func(domain.Section)

	sections   []domain.Section
	visible    map[domain.Section]bool
	order      []domain.Section
	generation uint64
	closed     bool
}

// Option configures the Controller.
type Option func(*Controller)

// WithThreshold overrides DefaultThreshold.
func WithThreshold(t float64) Option {
	return func(c *Controller) {
		if t > 0 && t <= 1 {
			c.threshold = t
		}
	}
}

// WithOnReveal registers a callback fired once per section per arming.
func WithOnReveal(fn func(domain.Section)) Option {
	return func(c *Controller) {
		c.onReveal = fn
	}
}

// New creates a Controller on top of observer. Nothing is watched until Arm.
func New(observer ports.Observer, opts ...Option) *Controller {
	c := &Controller{
		observer:  observer,
		threshold: DefaultThreshold,
		visible:   make(map[domain.Section]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Arm sets the watched section set and starts observing every section
// that is not visible yet. Calling Arm again replaces the set.
func (c *Controller) Arm(sections ...domain.Section) {
	c.armMu.Lock()
	defer c.armMu.Unlock()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.sections = append([]domain.Section(nil), sections...)
	c.generation++
	gen := c.generation
	pending := c.pendingLocked()
	c.mu.Unlock()

	c.observer.Disconnect()
	c.observe(gen, pending)
}

// Rearm clears every visible flag and re-watches exactly the armed set.
func (c *Controller) Rearm() {
	c.armMu.Lock()
	defer c.armMu.Unlock()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.visible = make(map[domain.Section]bool)
	c.order = nil
	c.generation++
	gen := c.generation
	pending := append([]domain.Section(nil), c.sections...)
	c.mu.Unlock()

	c.observer.Disconnect()
	c.observe(gen, pending)
}

// Restore marks sections visible without firing callbacks and stops watching them.
// It is used when a session is rebuilt from a stored snapshot.
func (c *Controller) Restore(visible []domain.Section) {
	c.armMu.Lock()
	defer c.armMu.Unlock()

	c.mu.Lock()
	var done []domain.Section
	for _, s := range visible {
		if c.visible[s] {
			continue
		}
		c.visible[s] = true
		c.order = append(c.order, s)
		done = append(done, s)
	}
	closed := c.closed
	c.mu.Unlock()

	if closed {
		return
	}
	for _, s := range done {
		c.observer.Unobserve(s)
	}
}

// Close disconnects the observer. The controller cannot be re-armed afterwards.
func (c *Controller) Close() {
	c.armMu.Lock()
	defer c.armMu.Unlock()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.generation++
	c.mu.Unlock()

	c.observer.Disconnect()
}

// Visible reports whether section already revealed.
func (c *Controller) Visible(section domain.Section) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visible[section]
}

// VisibleSections returns the revealed sections in reveal order.
func (c *Controller) VisibleSections() []domain.Section {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.Section(nil), c.order...)
}

// Sections returns the armed set.
func (c *Controller) Sections() []domain.Section {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.Section(nil), c.sections...)
}

func (c *Controller) pendingLocked() []domain.Section {
	var out []domain.Section
	for _, s := range c.sections {
		if !c.visible[s] {
			out = append(out, s)
		}
	}
	return out
}

func (c *Controller) observe(gen uint64, sections []domain.Section) {
	for _, s := range sections {
		c.observer.Observe(s, c.threshold, func(section domain.Section) {
			c.markVisible(gen, section)
		})
	}
}

// markVisible ignores callbacks from an older arming so late events
// cannot leak into a restarted flow.
func (c *Controller) markVisible(gen uint64, section domain.Section) {
	c.mu.Lock()
	if c.closed || gen != c.generation || c.visible[section] {
		c.mu.Unlock()
		return
	}
	c.visible[section] = true
	c.order = append(c.order, section)
	onReveal := c.onReveal
	c.mu.Unlock()

	c.observer.Unobserve(section)
	c.rewatchIfRearmed(gen, section)

	if onReveal != nil {
		onReveal(section)
	}
}

// rewatchIfRearmed restores the watch on section when a re-arming ran
// between marking it visible and unobserving it; that Unobserve removed
// the new arming's watch, not the old one.
func (c *Controller) rewatchIfRearmed(gen uint64, section domain.Section) {
	if _, lost := c.lostWatch(gen, section); !lost {
		return
	}

	// Checked again under armMu so the watch carries the latest generation.
	c.armMu.Lock()
	defer c.armMu.Unlock()
	if current, lost := c.lostWatch(gen, section); lost {
		c.observe(current, []domain.Section{section})
	}
}

func (c *Controller) lostWatch(gen uint64, section domain.Section) (uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	lost := !c.closed && c.generation != gen && !c.visible[section] && c.armedLocked(section)
	return c.generation, lost
}

func (c *Controller) armedLocked(section domain.Section) bool {
	for _, s := range c.sections {
		if s == section {
			return true
		}
	}
	return false
}

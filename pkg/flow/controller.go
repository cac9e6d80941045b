package flow

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sulaimaniyah/undangan/internal/logging"
	"github.com/sulaimaniyah/undangan/pkg/domain"
	"github.com/sulaimaniyah/undangan/pkg/form"
	"github.com/sulaimaniyah/undangan/pkg/ports"
	"github.com/sulaimaniyah/undangan/pkg/reveal"
)

// View is the read model rendered by presentation layers.
type View struct {
	SessionID string
	State     domain.ViewState
	Recipient domain.RecipientInfo
	Form      domain.FormState
	FormError string
	Outcome   *domain.SubmissionOutcome
	Visible   map[domain.Section]bool

	// Busy is true while a confirmation call is in flight.
	Busy bool

	// ShowMap is true on the confirmation page for guests who will attend.
	ShowMap bool
}

// onScreen are the view states in which the invitation pages are shown.
// Pages stay interactive while a confirmation is in flight.
var onScreen = []domain.ViewState{domain.ViewBrowsing, domain.ViewSubmitting}

// visibilityReporter is implemented by observers that accept external reports.
type visibilityReporter interface {
	Report(section domain.Section, ratio float64) bool
}

// Controller drives one session's page flow. Safe for concurrent use.
type Controller struct {
	mu sync.Mutex

	id        string
	view      domain.ViewState
	recipient domain.RecipientInfo
	form      *form.Holder
	outcome   *domain.SubmissionOutcome
	createdAt time.Time
	updatedAt time.Time
	closed    bool

	reveal    *reveal.Controller
	observer  ports.Observer
	scroller  ports.Scroller
	audio     ports.AudioPlayer
	confirmer ports.Confirmer

	hooks      domain.LifecycleHooks
	onChange   func(*domain.Snapshot)
	logger     *slog.Logger
	formOpts   []form.HolderOption
	revealOpts []reveal.Option
}

// New creates a Browsing flow for the given recipient and arms reveal
// tracking for every section.
func New(sessionID string, recipient domain.RecipientInfo, confirmer ports.Confirmer, opts ...Option) *Controller {
	now := time.Now().UTC()
	c := &Controller{
		id:        sessionID,
		view:      domain.ViewBrowsing,
		recipient: recipient,
		confirmer: confirmer,
		scroller:  nopScroller{},
		audio:     nopAudio{},
		logger:    logging.NewNop(),
		createdAt: now,
		updatedAt: now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.observer == nil {
		c.observer = reveal.NewManualObserver()
	}
	c.form = form.NewHolder(c.formOpts...)
	c.reveal = reveal.New(c.observer, append(c.revealOpts, reveal.WithOnReveal(c.revealed))...)
	c.reveal.Arm(domain.Sections()...)
	return c
}

// ID returns the session id.
func (c *Controller) ID() string {
	return c.id
}

// Advance scrolls to target. Advancing to the details section is the
// "open invitation" action and also starts background audio.
func (c *Controller) Advance(ctx context.Context, target domain.Section) error {
	section, err := domain.ParseSection(string(target))
	if err != nil {
		return err
	}

	c.mu.Lock()
	if err := c.guardLocked("advance", onScreen...); err != nil {
		c.mu.Unlock()
		return err
	}
	c.mu.Unlock()

	if h := c.hooks.OnAdvance; h != nil {
		h(ctx, &domain.AdvanceEvent{EventBase: c.event(domain.EventAdvance), Target: section})
	}

	if err := c.scroller.ScrollTo(ctx, section); err != nil {
		c.logger.Debug("scroll request failed", "session_id", c.id, "section", section, "error", err)
	}
	if section == domain.SectionDetails {
		if err := c.audio.Play(ctx); err != nil {
			c.logger.Warn("audio playback failed", "session_id", c.id, "error", err)
		}
	}
	return nil
}

// Update sets a single form field. Edits made while a confirmation is in
// flight do not affect the submitted values.
func (c *Controller) Update(field, value string) error {
	c.mu.Lock()
	if err := c.guardLocked("update", onScreen...); err != nil {
		c.mu.Unlock()
		return err
	}
	if err := c.form.Update(field, value); err != nil {
		c.mu.Unlock()
		return err
	}
	snap := c.touchLocked()
	c.mu.Unlock()

	c.notify(snap)
	return nil
}

// FieldUpdate is a form value sent together with a submission.
type FieldUpdate struct {
	Field string
	Value string
}

// Submit applies updates, validates the form and makes one confirmation
// attempt. A second Submit while the first is running returns
// ErrSubmissionInFlight and has no effect, its updates included. A valid
// submission always ends in Confirmed.
func (c *Controller) Submit(ctx context.Context, updates ...FieldUpdate) (domain.SubmissionOutcome, error) {
	c.mu.Lock()
	if c.view == domain.ViewSubmitting && !c.closed {
		c.mu.Unlock()
		return domain.SubmissionOutcome{}, domain.ErrSubmissionInFlight
	}
	if err := c.guardLocked("submit", domain.ViewBrowsing); err != nil {
		c.mu.Unlock()
		return domain.SubmissionOutcome{}, err
	}

	for i, u := range updates {
		if err := c.form.Update(u.Field, u.Value); err != nil {
			var snap *domain.Snapshot
			if i > 0 {
				snap = c.touchLocked()
			}
			c.mu.Unlock()
			if snap != nil {
				c.notify(snap)
			}
			return domain.SubmissionOutcome{}, err
		}
	}

	if err := c.form.Validate(); err != nil {
		snap := c.touchLocked()
		c.mu.Unlock()
		c.notify(snap)
		return domain.SubmissionOutcome{}, err
	}

	c.view = domain.ViewSubmitting
	submitted := c.form.State()
	snap := c.touchLocked()
	c.mu.Unlock()

	c.transitioned(ctx, domain.ViewBrowsing, domain.ViewSubmitting)
	if h := c.hooks.OnSubmit; h != nil {
		h(ctx, &domain.SubmitEvent{EventBase: c.event(domain.EventSubmit), Attending: submitted.Attending})
	}
	c.notify(snap)

	start := time.Now()
	outcome := c.confirmer.Confirm(ctx, submitted)
	elapsed := time.Since(start)

	c.mu.Lock()
	c.view = domain.ViewConfirmed
	c.outcome = &outcome
	snap = c.touchLocked()
	c.mu.Unlock()

	c.logger.Info("rsvp confirmed",
		"session_id", c.id,
		"attending", string(submitted.Attending),
		"result", outcome.Result(),
		"duration", elapsed,
	)
	if h := c.hooks.OnOutcome; h != nil {
		h(ctx, &domain.OutcomeEvent{EventBase: c.event(domain.EventOutcome), Succeeded: outcome.Succeeded, Duration: elapsed})
	}
	c.transitioned(ctx, domain.ViewSubmitting, domain.ViewConfirmed)
	c.notify(snap)

	return outcome, nil
}

// Restart leaves the confirmation page: the form is reset, the outcome
// cleared and every section will play its reveal animation again.
func (c *Controller) Restart(ctx context.Context) error {
	c.mu.Lock()
	if err := c.guardLocked("restart", domain.ViewConfirmed); err != nil {
		c.mu.Unlock()
		return err
	}
	c.form.Reset()
	c.outcome = nil
	c.view = domain.ViewBrowsing
	c.mu.Unlock()

	// Observers may report synchronously from Observe, which re-enters
	// revealed; the flow lock must be free here.
	c.reveal.Rearm()

	c.mu.Lock()
	snap := c.touchLocked()
	c.mu.Unlock()

	c.transitioned(ctx, domain.ViewConfirmed, domain.ViewBrowsing)
	c.notify(snap)
	return nil
}

// ReportVisibility forwards a viewport report to the observer. It reports
// whether a section became visible. Reports are dropped while the
// confirmation page replaces the sections.
func (c *Controller) ReportVisibility(section domain.Section, ratio float64) (bool, error) {
	if _, err := domain.ParseSection(string(section)); err != nil {
		return false, err
	}
	r, ok := c.observer.(visibilityReporter)
	if !ok {
		return false, nil
	}

	c.mu.Lock()
	shown := c.guardLocked("report", onScreen...) == nil
	c.mu.Unlock()
	if !shown {
		return false, nil
	}
	return r.Report(section, ratio), nil
}

// View returns the current read model.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		SessionID: c.id,
		State:     c.view,
		Recipient: c.recipient,
		Form:      c.form.State(),
		FormError: c.form.Error(),
		Busy:      c.view == domain.ViewSubmitting,
		Visible:   make(map[domain.Section]bool),
	}
	if c.outcome != nil {
		o := *c.outcome
		v.Outcome = &o
	}
	for _, s := range c.reveal.VisibleSections() {
		v.Visible[s] = true
	}
	v.ShowMap = c.view == domain.ViewConfirmed && v.Form.Attending.Attending()
	return v
}

// Snapshot returns a persistable copy of the flow.
func (c *Controller) Snapshot() *domain.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Restore replaces the flow state with snap. A snapshot taken while a
// confirmation was in flight is restored as Browsing with its form intact,
// since the call did not survive.
func (c *Controller) Restore(snap *domain.Snapshot) error {
	if snap == nil {
		return fmt.Errorf("restore %s: nil snapshot", c.id)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return domain.ErrSessionClosed
	}
	c.recipient = snap.Recipient
	c.form.Restore(snap.Form, snap.FormError)
	c.createdAt = snap.CreatedAt
	c.updatedAt = snap.UpdatedAt

	c.view = domain.ViewBrowsing
	c.outcome = nil
	if snap.View == domain.ViewConfirmed && snap.Outcome != nil {
		o := *snap.Outcome
		c.view = domain.ViewConfirmed
		c.outcome = &o
	}
	c.reveal.Restore(snap.Visible)
	c.mu.Unlock()
	return nil
}

// Close releases viewport observation. Further actions return ErrSessionClosed.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	c.reveal.Close()
}

func (c *Controller) guardLocked(action string, allowed ...domain.ViewState) error {
	if c.closed {
		return domain.ErrSessionClosed
	}
	for _, v := range allowed {
		if c.view == v {
			return nil
		}
	}
	return fmt.Errorf("%w: %s from %s", domain.ErrInvalidTransition, action, c.view)
}

func (c *Controller) touchLocked() *domain.Snapshot {
	c.updatedAt = time.Now().UTC()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() *domain.Snapshot {
	snap := &domain.Snapshot{
		SessionID: c.id,
		View:      c.view,
		Recipient: c.recipient,
		Form:      c.form.State(),
		FormError: c.form.Error(),
		Visible:   c.reveal.VisibleSections(),
		CreatedAt: c.createdAt,
		UpdatedAt: c.updatedAt,
	}
	if len(snap.Visible) == 0 {
		snap.Visible = nil
	}
	if c.outcome != nil {
		o := *c.outcome
		snap.Outcome = &o
	}
	return snap
}

// revealed runs on the observer's goroutine after reveal has released its lock.
func (c *Controller) revealed(section domain.Section) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	snap := c.touchLocked()
	c.mu.Unlock()

	if h := c.hooks.OnReveal; h != nil {
		h(context.Background(), &domain.RevealEvent{EventBase: c.event(domain.EventReveal), Section: section})
	}
	c.notify(snap)
}

func (c *Controller) transitioned(ctx context.Context, from, to domain.ViewState) {
	c.logger.Debug("view transition", "session_id", c.id, "from", from, "to", to)
	if h := c.hooks.OnTransition; h != nil {
		h(ctx, &domain.TransitionEvent{EventBase: c.event(domain.EventTransition), From: from, To: to})
	}
}

func (c *Controller) event(t domain.EventType) domain.EventBase {
	return domain.EventBase{Timestamp: time.Now().UTC(), Type: t, SessionID: c.id}
}

func (c *Controller) notify(snap *domain.Snapshot) {
	if c.onChange != nil {
		c.onChange(snap)
	}
}

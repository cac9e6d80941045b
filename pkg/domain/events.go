package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventTransition EventType = "transition"
	EventAdvance    EventType = "advance"
	EventSubmit     EventType = "submit"
	EventOutcome    EventType = "outcome"
	EventReveal     EventType = "reveal"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id"`
}

// TransitionEvent represents a change of view state.
type TransitionEvent struct {
	EventBase
	From ViewState `json:"from"`
	To   ViewState `json:"to"`
}

// AdvanceEvent represents an explicit "next page" action.
type AdvanceEvent struct {
	EventBase
	Target Section `json:"target"`
}

// SubmitEvent represents an accepted RSVP submission.
type SubmitEvent struct {
	EventBase
	Attending Attendance `json:"attending"`
}

// OutcomeEvent represents the resolution of a submission.
type OutcomeEvent struct {
	EventBase
	Succeeded bool          `json:"succeeded"`
	Duration  time.Duration `json:"duration"`
}

// RevealEvent represents a section becoming visible.
type RevealEvent struct {
	EventBase
	Section Section `json:"section"`
}

// LifecycleHooks defines callbacks for flow observability.
type LifecycleHooks struct {
	OnTransition func(context.Context, *TransitionEvent)
	OnAdvance    func(context.Context, *AdvanceEvent)
	OnSubmit     func(context.Context, *SubmitEvent)
	OnOutcome    func(context.Context, *OutcomeEvent)
	OnReveal     func(context.Context, *RevealEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnTransition: chain(h.OnTransition, other.OnTransition),
		OnAdvance:    chain(h.OnAdvance, other.OnAdvance),
		OnSubmit:     chain(h.OnSubmit, other.OnSubmit),
		OnOutcome:    chain(h.OnOutcome, other.OnOutcome),
		OnReveal:     chain(h.OnReveal, other.OnReveal),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}

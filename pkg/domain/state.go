package domain

import "time"

// Snapshot represents a serializable view of one flow session.
// Stores persist it and the event stream diffs it.
type Snapshot struct {
	// SessionID identifies the browser session that owns the flow.
	SessionID string `json:"session_id"`

	// View is the current view state.
	View ViewState `json:"view"`

	// Recipient is resolved once at session start.
	Recipient RecipientInfo `json:"recipient"`

	// Form holds the RSVP field values.
	Form FormState `json:"form"`

	// FormError is the inline validation message (empty when valid).
	FormError string `json:"form_error,omitempty"`

	// Outcome is set only while View == ViewConfirmed.
	Outcome *SubmissionOutcome `json:"outcome,omitempty"`

	// Visible lists sections that already played their reveal animation, in reveal order.
	Visible []Section `json:"visible,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Sealed carries the encrypted snapshot when the store encrypts at rest.
	// The guest fields are then left empty.
	Sealed string `json:"sealed,omitempty"`
}

// NewSnapshot creates a clean Browsing snapshot for a new session.
func NewSnapshot(sessionID string, recipient RecipientInfo) *Snapshot {
	now := time.Now().UTC()
	return &Snapshot{
		SessionID: sessionID,
		View:      ViewBrowsing,
		Recipient: recipient,
		Form:      DefaultForm(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a deep copy so callers cannot mutate stored snapshots by pointer.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	c := *s
	if s.Outcome != nil {
		o := *s.Outcome
		c.Outcome = &o
	}
	if s.Visible != nil {
		c.Visible = append([]Section(nil), s.Visible...)
	}
	return &c
}

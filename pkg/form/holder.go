package form

import (
	"fmt"
	"strings"

	"github.com/sulaimaniyah/undangan/pkg/domain"
)

// NameRequiredMessage is shown next to the name field when it is left empty.
const NameRequiredMessage = "Mohon masukkan nama Anda."

// ValidationError is a field-scoped failure surfaced inline in the form.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Holder owns the FormState and its error text.
// It is not safe for concurrent use; the flow controller serialises access.
type Holder struct {
	state    domain.FormState
	err      string
	maxInput int
}

// HolderOption configures a Holder.
type HolderOption func(*Holder)

// WithMaxInputSize overrides DefaultMaxInputSize for the name field.
func WithMaxInputSize(n int) HolderOption {
	return func(h *Holder) {
		h.maxInput = n
	}
}

// NewHolder returns a holder with default field values.
func NewHolder(opts ...HolderOption) *Holder {
	h := &Holder{
		state:    domain.DefaultForm(),
		maxInput: DefaultMaxInputSize,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// State returns a copy of the current field values.
func (h *Holder) State() domain.FormState {
	return h.state
}

// Error returns the current error text, empty when there is none.
func (h *Holder) Error() string {
	return h.err
}

// Update sets a single field. Other fields are left unchanged.
// An invalid value leaves the whole state unchanged.
func (h *Holder) Update(field, value string) error {
	switch field {
	case domain.FieldName:
		clean, err := Sanitize(value, h.maxInput)
		if err != nil {
			return fmt.Errorf("field %s: %w", field, err)
		}
		h.state.Name = clean
	case domain.FieldAttending:
		a, err := domain.ParseAttendance(value)
		if err != nil {
			return err
		}
		h.state.Attending = a
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownField, field)
	}
	return nil
}

// Reset restores the defaults and clears the error.
func (h *Holder) Reset() {
	h.state = domain.DefaultForm()
	h.err = ""
}

// Validate checks the name field. On failure the message is kept as the
// current error; on success the error is cleared.
func (h *Holder) Validate() error {
	if strings.TrimSpace(h.state.Name) == "" {
		h.err = NameRequiredMessage
		return &ValidationError{Field: domain.FieldName, Message: NameRequiredMessage}
	}
	h.err = ""
	return nil
}

// Restore replaces the state and error, used when rebuilding from a snapshot.
func (h *Holder) Restore(state domain.FormState, errText string) {
	if state.Attending != domain.AttendanceNo {
		state.Attending = domain.AttendanceYes
	}
	h.state = state
	h.err = errText
}

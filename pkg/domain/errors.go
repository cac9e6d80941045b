package domain

import "errors"

var (
	// ErrSessionNotFound is returned when a session ID does not exist in the store.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionClosed is returned by a flow that has been closed.
	ErrSessionClosed = errors.New("session closed")

	// ErrInvalidTransition is returned when an action is not allowed in the current view state.
	ErrInvalidTransition = errors.New("invalid view transition")

	// ErrSubmissionInFlight is returned when a submit arrives while another is still running.
	ErrSubmissionInFlight = errors.New("submission already in flight")

	// ErrUnknownSection is returned for a section name that is not part of the invitation.
	ErrUnknownSection = errors.New("unknown section")

	// ErrUnknownField is returned when a form update names a field the form does not have.
	ErrUnknownField = errors.New("unknown form field")

	// ErrInvalidAttendance is returned for an attendance value other than yes or no.
	ErrInvalidAttendance = errors.New("invalid attendance value")
)

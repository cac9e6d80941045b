// Package form holds the RSVP field values and the inline validation error.
package form

package domain

import "fmt"

// Attendance is the guest's answer to "Apakah Anda akan hadir?".
// Only the two enumerated values are representable.
type Attendance string

const (
	AttendanceYes Attendance = "yes"
	AttendanceNo  Attendance = "no"
)

// ParseAttendance converts a raw form value into an Attendance.
func ParseAttendance(raw string) (Attendance, error) {
	switch Attendance(raw) {
	case AttendanceYes:
		return AttendanceYes, nil
	case AttendanceNo:
		return AttendanceNo, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidAttendance, raw)
	}
}

// Label returns the localized term used in prompts and summaries.
func (a Attendance) Label() string {
	if a == AttendanceNo {
		return "Berhalangan"
	}
	return "Hadir"
}

// Attending reports whether the guest will attend.
func (a Attendance) Attending() bool {
	return a == AttendanceYes
}

// FormState holds the current RSVP field values.
type FormState struct {
	Name      string     `json:"name"`
	Attending Attendance `json:"attending"`
}

// DefaultForm returns the form as it is shown on a fresh page.
func DefaultForm() FormState {
	return FormState{Name: "", Attending: AttendanceYes}
}

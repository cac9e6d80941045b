package domain

import "fmt"

// ViewState is the mode of the page flow.
type ViewState string

const (
	ViewBrowsing   ViewState = "browsing"   // Sections are shown, form is editable
	ViewSubmitting ViewState = "submitting" // A confirmation is in flight
	ViewConfirmed  ViewState = "confirmed"  // Terminal thank-you page
)

// Section is one page container of the invitation.
type Section string

const (
	SectionCover   Section = "cover"
	SectionDetails Section = "details"
	SectionAgenda  Section = "agenda"
	SectionRSVP    Section = "rsvp"
)

// Sections returns all sections in page order.
func Sections() []Section {
	return []Section{SectionCover, SectionDetails, SectionAgenda, SectionRSVP}
}

// ParseSection validates a raw section name.
func ParseSection(raw string) (Section, error) {
	for _, s := range Sections() {
		if string(s) == raw {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSection, raw)
}

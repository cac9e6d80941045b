// Package graph draws the page flow as a Mermaid flowchart.
package graph

import (
	"fmt"
	"strings"

	"github.com/sulaimaniyah/undangan/pkg/domain"
)

// Overlay contains session state to highlight on the graph.
type Overlay struct {
	Visible []domain.Section
	Current domain.ViewState
}

// OverlayFor builds an overlay from a stored snapshot.
func OverlayFor(snap *domain.Snapshot) *Overlay {
	if snap == nil {
		return nil
	}
	return &Overlay{Visible: snap.Visible, Current: snap.View}
}

// GenerateMermaid produces a Mermaid flowchart of the invitation flow.
// Sections are drawn as pages inside the browsing state:
// - View states: ((Circle))
// - Sections: [Rectangle]
// - The RSVP form: [/Parallelogram/]
// Overlay styles mark revealed sections and the current view state.
func GenerateMermaid(overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, v := range []domain.ViewState{domain.ViewBrowsing, domain.ViewSubmitting, domain.ViewConfirmed} {
		fmt.Fprintf(&sb, "    %s((\"%s\"))\n", v, v)
	}

	sb.WriteString("    subgraph pages\n")
	sections := domain.Sections()
	for _, s := range sections {
		opener, closer := "[", "]"
		if s == domain.SectionRSVP {
			opener, closer = "[/", "/]" // Input
		}
		fmt.Fprintf(&sb, "        %s%s\"%s\"%s\n", sectionID(s), opener, s, closer)
	}
	for i := 0; i+1 < len(sections); i++ {
		arrow := "-->"
		if sections[i+1] == domain.SectionDetails {
			arrow = "-- \"♪ audio\" -->"
		}
		fmt.Fprintf(&sb, "        %s %s %s\n", sectionID(sections[i]), arrow, sectionID(sections[i+1]))
	}
	sb.WriteString("    end\n")

	fmt.Fprintf(&sb, "    %s -.- pages\n", domain.ViewBrowsing)
	fmt.Fprintf(&sb, "    %s -- \"submit\" --> %s\n", sectionID(domain.SectionRSVP), domain.ViewSubmitting)
	fmt.Fprintf(&sb, "    %s -- \"generated / fallback\" --> %s\n", domain.ViewSubmitting, domain.ViewConfirmed)
	fmt.Fprintf(&sb, "    %s -. \"restart\" .-> %s\n", domain.ViewConfirmed, domain.ViewBrowsing)

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[domain.Section]bool)
		for _, s := range overlay.Visible {
			if seen[s] {
				continue
			}
			seen[s] = true
			fmt.Fprintf(&sb, "    class %s visited;\n", sectionID(s))
		}
		if overlay.Current != "" {
			fmt.Fprintf(&sb, "    class %s current;\n", overlay.Current)
		}
	}

	return sb.String()
}

func sectionID(s domain.Section) string {
	return "page_" + string(s)
}

package graph_test

import (
	"strings"
	"testing"

	"github.com/sulaimaniyah/undangan/internal/presentation/graph"
	"github.com/sulaimaniyah/undangan/pkg/domain"
)

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name        string
		overlay     *graph.Overlay
		contains    []string
		notContains []string
	}{
		{
			name:    "States And Pages",
			overlay: nil,
			contains: []string{
				"browsing((\"browsing\"))",
				"confirmed((\"confirmed\"))",
				"page_cover[\"cover\"]",
				"page_rsvp[/\"rsvp\"/]",
				"page_cover -- \"♪ audio\" --> page_details",
				"page_details --> page_agenda",
				"page_rsvp -- \"submit\" --> submitting",
				"confirmed -. \"restart\" .-> browsing",
			},
			notContains: []string{"classDef"},
		},
		{
			name: "Overlay",
			overlay: graph.OverlayFor(&domain.Snapshot{
				View:    domain.ViewConfirmed,
				Visible: []domain.Section{domain.SectionCover, domain.SectionDetails, domain.SectionCover},
			}),
			contains: []string{
				"classDef visited",
				"class page_cover visited;",
				"class page_details visited;",
				"class confirmed current;",
			},
			notContains: []string{"class page_agenda visited;"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.overlay)
			for _, s := range tt.contains {
				if !strings.Contains(got, s) {
					t.Errorf("expected output to contain %q\ngot:\n%s", s, got)
				}
			}
			for _, s := range tt.notContains {
				if strings.Contains(got, s) {
					t.Errorf("expected output not to contain %q", s)
				}
			}
			if n := strings.Count(got, "class page_cover visited;"); n > 1 {
				t.Errorf("visited class applied %d times", n)
			}
		})
	}

	if graph.OverlayFor(nil) != nil {
		t.Error("nil snapshot should give nil overlay")
	}
}

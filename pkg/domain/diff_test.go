package domain

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestDiff(t *testing.T) {
	browsing := ViewBrowsing
	confirmed := ViewConfirmed
	emptyErr := ""
	defaultForm := DefaultForm()

	tests := []struct {
		name     string
		old      *Snapshot
		new      *Snapshot
		wantDiff *SnapshotDiff
	}{
		{
			name: "Initial Load (Old is Nil)",
			old:  nil,
			new: &Snapshot{
				SessionID: "sess-1",
				View:      ViewBrowsing,
				Form:      DefaultForm(),
				Visible:   []Section{SectionCover},
			},
			wantDiff: &SnapshotDiff{
				SessionID: "sess-1",
				View:      &browsing,
				Form:      &defaultForm,
				FormError: &emptyErr,
				Revealed:  []Section{SectionCover},
			},
		},
		{
			name: "No Changes",
			old: &Snapshot{
				SessionID: "sess-1",
				View:      ViewBrowsing,
				Form:      DefaultForm(),
				Visible:   []Section{SectionCover},
			},
			new: &Snapshot{
				SessionID: "sess-1",
				View:      ViewBrowsing,
				Form:      DefaultForm(),
				Visible:   []Section{SectionCover},
			},
			wantDiff: nil,
		},
		{
			name: "Confirmed With Outcome",
			old: &Snapshot{
				SessionID: "sess-1",
				View:      ViewBrowsing,
				Form:      FormState{Name: "Siti", Attending: AttendanceNo},
			},
			new: &Snapshot{
				SessionID: "sess-1",
				View:      ViewConfirmed,
				Form:      FormState{Name: "Siti", Attending: AttendanceNo},
				Outcome:   &SubmissionOutcome{Message: "Terima kasih", Succeeded: true},
			},
			wantDiff: &SnapshotDiff{
				SessionID: "sess-1",
				View:      &confirmed,
				Outcome:   &SubmissionOutcome{Message: "Terima kasih", Succeeded: true},
			},
		},
		{
			name: "Restart Clears Outcome And Visibility",
			old: &Snapshot{
				SessionID: "sess-1",
				View:      ViewConfirmed,
				Form:      FormState{Name: "Budi", Attending: AttendanceYes},
				Outcome:   &SubmissionOutcome{Message: "Terima kasih", Succeeded: false},
				Visible:   []Section{SectionCover, SectionDetails},
			},
			new: &Snapshot{
				SessionID: "sess-1",
				View:      ViewBrowsing,
				Form:      DefaultForm(),
			},
			wantDiff: &SnapshotDiff{
				SessionID:      "sess-1",
				View:           &browsing,
				Form:           &defaultForm,
				OutcomeCleared: true,
				Rearmed:        true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(tt.old, tt.new)
			if !reflect.DeepEqual(got, tt.wantDiff) {
				gotJSON, _ := json.Marshal(got)
				wantJSON, _ := json.Marshal(tt.wantDiff)
				t.Errorf("Diff() mismatch\n got: %s\nwant: %s", gotJSON, wantJSON)
			}
		})
	}
}

func TestDiff_JSONOmitsUnchangedFields(t *testing.T) {
	old := NewSnapshot("sess-2", DefaultRecipient())
	next := old.Clone()
	next.Visible = append(next.Visible, SectionAgenda)

	diff := Diff(old, next)
	if diff == nil {
		t.Fatal("expected a diff for a newly visible section")
	}

	data, err := json.Marshal(diff)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, `"revealed":["agenda"]`) {
		t.Errorf("expected revealed section in %s", s)
	}
	for _, key := range []string{`"view"`, `"form"`, `"outcome"`} {
		if strings.Contains(s, key) {
			t.Errorf("expected %s to be omitted from %s", key, s)
		}
	}
}

func TestParseAttendance(t *testing.T) {
	for _, raw := range []string{"yes", "no"} {
		if _, err := ParseAttendance(raw); err != nil {
			t.Errorf("ParseAttendance(%q) unexpected error: %v", raw, err)
		}
	}
	for _, raw := range []string{"", "maybe", "YES"} {
		if _, err := ParseAttendance(raw); err == nil {
			t.Errorf("ParseAttendance(%q) expected error", raw)
		}
	}
	if AttendanceYes.Label() != "Hadir" || AttendanceNo.Label() != "Berhalangan" {
		t.Errorf("unexpected labels: %q / %q", AttendanceYes.Label(), AttendanceNo.Label())
	}
}

func TestSnapshotClone_Isolated(t *testing.T) {
	s := NewSnapshot("sess-3", DefaultRecipient())
	s.Visible = []Section{SectionCover}
	s.Outcome = &SubmissionOutcome{Message: "a"}

	c := s.Clone()
	c.Visible[0] = SectionRSVP
	c.Outcome.Message = "b"

	if s.Visible[0] != SectionCover || s.Outcome.Message != "a" {
		t.Errorf("clone shares memory with original: %+v", s)
	}
}

package domain

// SnapshotDiff represents the changes between two snapshots.
// It is designed to be serialized to JSON for partial updates on the client.
type SnapshotDiff struct {
	// SessionID is always present to identify the target.
	SessionID string `json:"session_id"`

	View      *ViewState         `json:"view,omitempty"`
	Form      *FormState         `json:"form,omitempty"`
	FormError *string            `json:"form_error,omitempty"`
	Outcome   *SubmissionOutcome `json:"outcome,omitempty"`

	// OutcomeCleared is set when a restart dropped the previous outcome.
	OutcomeCleared bool `json:"outcome_cleared,omitempty"`

	// Revealed contains sections that became visible since the old snapshot.
	Revealed []Section `json:"revealed,omitempty"`

	// Rearmed is set when visibility flags were reset (restart).
	Rearmed bool `json:"rearmed,omitempty"`
}

// Diff calculates the difference between oldSnap and newSnap.
// If oldSnap is nil, it returns a diff representing the entire newSnap (initial load).
// It returns nil when nothing changed.
func Diff(oldSnap, newSnap *Snapshot) *SnapshotDiff {
	if newSnap == nil {
		return nil
	}

	diff := &SnapshotDiff{SessionID: newSnap.SessionID}

	if oldSnap == nil || oldSnap.View != newSnap.View {
		v := newSnap.View
		diff.View = &v
	}
	if oldSnap == nil || oldSnap.Form != newSnap.Form {
		f := newSnap.Form
		diff.Form = &f
	}
	if oldSnap == nil || oldSnap.FormError != newSnap.FormError {
		e := newSnap.FormError
		diff.FormError = &e
	}

	switch {
	case newSnap.Outcome != nil && (oldSnap == nil || oldSnap.Outcome == nil || *oldSnap.Outcome != *newSnap.Outcome):
		o := *newSnap.Outcome
		diff.Outcome = &o
	case newSnap.Outcome == nil && oldSnap != nil && oldSnap.Outcome != nil:
		diff.OutcomeCleared = true
	}

	diff.Revealed, diff.Rearmed = diffVisible(oldSnap, newSnap)

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

// diffVisible assumes visibility only grows between restarts.
func diffVisible(oldSnap, newSnap *Snapshot) ([]Section, bool) {
	if oldSnap == nil {
		if len(newSnap.Visible) == 0 {
			return nil, false
		}
		return append([]Section(nil), newSnap.Visible...), false
	}

	seen := make(map[Section]bool, len(oldSnap.Visible))
	for _, s := range oldSnap.Visible {
		seen[s] = true
	}

	var added []Section
	kept := 0
	for _, s := range newSnap.Visible {
		if seen[s] {
			kept++
			continue
		}
		added = append(added, s)
	}

	// Anything missing from the new set means the flags were reset.
	rearmed := kept < len(oldSnap.Visible)
	return added, rearmed
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *SnapshotDiff) IsEmpty() bool {
	return d.View == nil &&
		d.Form == nil &&
		d.FormError == nil &&
		d.Outcome == nil &&
		!d.OutcomeCleared &&
		len(d.Revealed) == 0 &&
		!d.Rearmed
}

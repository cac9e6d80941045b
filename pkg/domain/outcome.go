package domain

// SubmissionOutcome is the result of a confirmation attempt.
// Both a generated and a fallback message lead to the Confirmed view;
// Succeeded only records which of the two produced Message.
type SubmissionOutcome struct {
	Message   string `json:"message"`
	Succeeded bool   `json:"succeeded"`
}

// Generated wraps a message returned by the text-generation endpoint.
func Generated(message string) SubmissionOutcome {
	return SubmissionOutcome{Message: message, Succeeded: true}
}

// Fallback wraps the deterministic templated message.
func Fallback(message string) SubmissionOutcome {
	return SubmissionOutcome{Message: message, Succeeded: false}
}

// Result returns "generated" or "fallback".
func (o SubmissionOutcome) Result() string {
	if o.Succeeded {
		return "generated"
	}
	return "fallback"
}

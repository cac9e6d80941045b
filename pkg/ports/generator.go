package ports

import (
	"context"

	"github.com/sulaimaniyah/undangan/pkg/domain"
)

// Generator produces text from a single natural-language prompt.
// Implementations make exactly one outbound call per invocation.
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// Confirmer turns a submitted form into a thank-you outcome.
// It never fails: errors are absorbed into a fallback outcome.
type Confirmer interface {
	Confirm(ctx context.Context, form domain.FormState) domain.SubmissionOutcome
}

package confirm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sulaimaniyah/undangan/internal/logging"
	"github.com/sulaimaniyah/undangan/pkg/domain"
	"github.com/sulaimaniyah/undangan/pkg/ports"
)

// ErrEmptyResponse is reported when the generator returns blank text.
var ErrEmptyResponse = errors.New("generator returned empty text")

// Service implements ports.Confirmer.
type Service struct {
	generator ports.Generator
	model     string
	timeout   time.Duration
	logger    *slog.Logger
}

// Option configures the Service.
type Option func(*Service)

// WithModel overrides DefaultModel.
func WithModel(model string) Option {
	return func(s *Service) {
		if model != "" {
			s.model = model
		}
	}
}

// WithTimeout bounds the generator call. Zero means no bound.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.timeout = d
	}
}

// WithLogger configures a logger for generation failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates a confirmation service. A nil generator always
// yields the fallback message.
func NewService(generator ports.Generator, opts ...Option) *Service {
	s := &Service{
		generator: generator,
		model:     DefaultModel,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Model returns the configured model name.
func (s *Service) Model() string {
	return s.model
}

// Confirm makes one generation attempt. The form is not re-validated.
func (s *Service) Confirm(ctx context.Context, f domain.FormState) domain.SubmissionOutcome {
	text, err := s.generate(ctx, Prompt(f))
	if err != nil {
		s.logger.Warn("confirmation generation failed, using fallback",
			"model", s.model,
			"attending", string(f.Attending),
			"error", err,
		)
		return domain.Fallback(FallbackMessage(f.Name))
	}
	return domain.Generated(text)
}

func (s *Service) generate(ctx context.Context, prompt string) (text string, err error) {
	if s.generator == nil {
		return "", errors.New("no generator configured")
	}

	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("generator panic: %v", r)
		}
	}()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	text, err = s.generator.Generate(ctx, s.model, prompt)
	if err != nil {
		return "", err
	}
	// A client that ignores ctx still must not produce a late success.
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

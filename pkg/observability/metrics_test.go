package observability_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sulaimaniyah/undangan/internal/logging"
	"github.com/sulaimaniyah/undangan/pkg/domain"
	"github.com/sulaimaniyah/undangan/pkg/observability"
)

func TestMetricsHooks(t *testing.T) {
	m := observability.NewMetrics()
	h := m.Hooks()
	ctx := context.Background()

	h.OnTransition(ctx, &domain.TransitionEvent{From: domain.ViewBrowsing, To: domain.ViewSubmitting})
	h.OnSubmit(ctx, &domain.SubmitEvent{Attending: domain.AttendanceNo})
	h.OnOutcome(ctx, &domain.OutcomeEvent{Succeeded: false, Duration: 1500 * time.Millisecond})
	h.OnOutcome(ctx, &domain.OutcomeEvent{Succeeded: true, Duration: time.Second})
	h.OnAdvance(ctx, &domain.AdvanceEvent{Target: domain.SectionDetails})
	h.OnReveal(ctx, &domain.RevealEvent{Section: domain.SectionAgenda})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Transitions.WithLabelValues("browsing", "submitting")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Submissions.WithLabelValues("no")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Confirmations.WithLabelValues("fallback")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Confirmations.WithLabelValues("generated")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Advances.WithLabelValues("details")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Reveals.WithLabelValues("agenda")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.Duration))
}

func TestMetricsHandler(t *testing.T) {
	m := observability.NewMetrics()
	m.RegisterLiveSessions(func() int { return 3 })
	m.Hooks().OnAdvance(context.Background(), &domain.AdvanceEvent{Target: domain.SectionRSVP})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `undangan_advances_total{section="rsvp"} 1`)
	assert.Contains(t, string(body), "undangan_live_sessions 3")
}

func TestAuditHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, slog.LevelInfo, logging.FormatText)
	h := observability.AuditHooks(logger)

	h.OnAdvance(context.Background(), &domain.AdvanceEvent{Target: domain.SectionAgenda})
	assert.Empty(t, buf.String(), "advance is debug")

	h.OnOutcome(context.Background(), &domain.OutcomeEvent{EventBase: domain.EventBase{SessionID: "s1"}, Succeeded: true})
	assert.True(t, strings.Contains(buf.String(), "rsvp_outcome"))
	assert.Contains(t, buf.String(), "session_id=s1")
}

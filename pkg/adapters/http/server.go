package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/sulaimaniyah/undangan/internal/content"
	"github.com/sulaimaniyah/undangan/internal/logging"
	"github.com/sulaimaniyah/undangan/pkg/domain"
	"github.com/sulaimaniyah/undangan/pkg/flow"
	"github.com/sulaimaniyah/undangan/pkg/reveal"
	"github.com/sulaimaniyah/undangan/pkg/session"
)

// SessionCookie names the cookie that binds a browser to its flow.
const SessionCookie = "undangan_session"

// Server renders the invitation and routes page actions to session flows.
type Server struct {
	manager   *session.Manager
	content   *content.Content
	render    *renderer
	streams   *StreamManager
	metrics   http.Handler
	health    func(context.Context) error
	origins   []string
	secure    bool
	logger    *slog.Logger
	threshold float64

	router chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithStreams enables GET /events backed by sm.
func WithStreams(sm *StreamManager) Option {
	return func(s *Server) {
		s.streams = sm
	}
}

// WithMetrics mounts h at GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithHealthCheck makes GET /healthz report the result of check.
func WithHealthCheck(check func(context.Context) error) Option {
	return func(s *Server) {
		s.health = check
	}
}

// WithAllowedOrigins enables CORS for the given origins.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) {
		s.origins = append(s.origins, origins...)
	}
}

// WithSecureCookie marks the session cookie Secure.
func WithSecureCookie(secure bool) Option {
	return func(s *Server) {
		s.secure = secure
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRevealThreshold tells the page script which intersection ratio
// counts as visible. It should match the flows' threshold.
func WithRevealThreshold(t float64) Option {
	return func(s *Server) {
		if t > 0 && t <= 1 {
			s.threshold = t
		}
	}
}

// NewServer builds the router. A nil c uses the embedded content.
func NewServer(manager *session.Manager, c *content.Content, opts ...Option) (*Server, error) {
	if c == nil {
		c = content.Default()
	}
	r, err := newRenderer()
	if err != nil {
		return nil, err
	}
	s := &Server{
		manager:   manager,
		content:   c,
		render:    r,
		logger:    logging.NewNop(),
		threshold: reveal.DefaultThreshold,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(hostDirectives)

	if len(s.origins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.origins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "HX-Request", "HX-Current-URL", "HX-Target", "HX-Trigger"},
			ExposedHeaders:   []string{"HX-Trigger", "HX-Retarget", "HX-Reswap"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Get("/healthz", s.handleHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	assets, _ := fs.Sub(assetFS, "assets")
	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.FS(assets))))

	r.Get("/", s.handleIndex)
	r.Post("/advance/{section}", s.handleAdvance)
	r.Post("/rsvp/field", s.handleField)
	r.Post("/rsvp", s.handleSubmit)
	r.Post("/restart", s.handleRestart)
	r.Post("/sections/{section}/visibility", s.handleVisibility)
	r.Post("/audio/failed", s.handleAudioFailed)
	if s.streams != nil {
		r.Get("/events", s.handleEvents)
	}
	return r
}

// hostDirectives gives every request a sink for scroll and audio requests.
func hostDirectives(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, _ := withDirectives(r.Context())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			s.logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
				"htmx", isHTMX(r),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// sessionID returns the id from the cookie, or "" when absent.
func sessionID(r *http.Request) string {
	c, err := r.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	if _, err := uuid.Parse(c.Value); err != nil {
		return ""
	}
	return c.Value
}

func (s *Server) setSessionCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// flowFor returns the flow of an existing session. Actions never start a
// session; only GET / does.
func (s *Server) flowFor(r *http.Request) (*flow.Controller, error) {
	id := sessionID(r)
	if id == "" {
		return nil, domain.ErrSessionNotFound
	}
	if c, ok := s.manager.Get(id); ok {
		return c, nil
	}
	if _, err := s.manager.Load(r.Context(), id); err != nil {
		return nil, err
	}
	return s.manager.Open(r.Context(), id, nil)
}

// finish writes queued host directives and the status code.
func (s *Server) finish(w http.ResponseWriter, r *http.Request, status int) {
	if d, ok := directivesFrom(r.Context()); ok {
		if err := d.write(w); err != nil {
			s.logger.Error("writing host directives failed", "error", err)
		}
	}
	w.WriteHeader(status)
}

// renderView writes a template with the current view of c.
func (s *Server) renderView(w http.ResponseWriter, r *http.Request, status int, name string, c *flow.Controller) {
	var buf bytes.Buffer
	if err := s.render.execute(&buf, name, s.render.page(c.View(), s.content, s.threshold)); err != nil {
		s.logger.Error("render failed", "template", name, "session_id", c.ID(), "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	s.finish(w, r, status)
	_, _ = buf.WriteTo(w)
}

// fail maps domain errors to status codes.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	} else {
		s.logger.Debug("request rejected", "path", r.URL.Path, "status", status, "error", err)
	}
	http.Error(w, http.StatusText(status), status)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnknownSection),
		errors.Is(err, domain.ErrUnknownField),
		errors.Is(err, domain.ErrInvalidAttendance),
		isInputError(err):
		return http.StatusBadRequest
	case isValidationError(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrSubmissionInFlight),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrSessionClosed):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if s.health != nil {
		if err := s.health(r.Context()); err != nil {
			s.logger.Warn("health check failed", "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprintf(w, `{"status":"unavailable"}`)
			return
		}
	}
	fmt.Fprintf(w, `{"status":"ok"}`)
}

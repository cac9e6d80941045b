package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"

	"github.com/sulaimaniyah/undangan/pkg/domain"
	"github.com/sulaimaniyah/undangan/pkg/flow"
	"github.com/sulaimaniyah/undangan/pkg/form"
)

// fieldRequest is the body of POST /rsvp/field and POST /rsvp. Either the
// generic field/value pair or the named inputs may be sent.
type fieldRequest struct {
	Field     string  `mapstructure:"field"`
	Value     string  `mapstructure:"value"`
	Name      *string `mapstructure:"name"`
	Attending *string `mapstructure:"attending"`
}

func decodeFields(r *http.Request) (fieldRequest, error) {
	var req fieldRequest
	if err := r.ParseForm(); err != nil {
		return req, fmt.Errorf("%w: %v", domain.ErrUnknownField, err)
	}
	raw := make(map[string]any, len(r.PostForm))
	for k, v := range r.PostForm {
		if len(v) > 0 {
			raw[k] = v[len(v)-1]
		}
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &req,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return req, err
	}
	return req, dec.Decode(raw)
}

// updates lists the decoded fields in the order they are applied.
func (req fieldRequest) updates() []flow.FieldUpdate {
	var out []flow.FieldUpdate
	if req.Field != "" {
		out = append(out, flow.FieldUpdate{Field: req.Field, Value: req.Value})
	}
	if req.Name != nil {
		out = append(out, flow.FieldUpdate{Field: domain.FieldName, Value: *req.Name})
	}
	if req.Attending != nil {
		out = append(out, flow.FieldUpdate{Field: domain.FieldAttending, Value: *req.Attending})
	}
	return out
}

func isValidationError(err error) bool {
	var verr *form.ValidationError
	return errors.As(err, &verr)
}

func isInputError(err error) bool {
	return errors.Is(err, form.ErrInputTooLarge) || errors.Is(err, form.ErrInvalidUTF8)
}

// seeOther sends non-htmx form posts back to the page.
func (s *Server) seeOther(w http.ResponseWriter, r *http.Request, fragment string) {
	target := "/"
	if fragment != "" {
		target += "#" + fragment
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// handleIndex starts or resumes the browser's session. Launch parameters
// only matter for a new session.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	if id == "" {
		id = uuid.NewString()
	}
	c, err := s.manager.Open(r.Context(), id, r.URL.Query())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.setSessionCookie(w, id)
	s.renderView(w, r, http.StatusOK, "layout", c)
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	c, err := s.flowFor(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	section := domain.Section(chi.URLParam(r, "section"))
	if err := c.Advance(r.Context(), section); err != nil {
		s.fail(w, r, err)
		return
	}
	if !isHTMX(r) {
		s.seeOther(w, r, string(section))
		return
	}
	s.finish(w, r, http.StatusNoContent)
}

func (s *Server) handleField(w http.ResponseWriter, r *http.Request) {
	c, err := s.flowFor(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	req, err := decodeFields(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	updates := req.updates()
	if len(updates) == 0 {
		s.fail(w, r, fmt.Errorf("%w: no field in request", domain.ErrUnknownField))
		return
	}
	for _, u := range updates {
		if err := c.Update(u.Field, u.Value); err != nil {
			s.fail(w, r, err)
			return
		}
	}
	s.finish(w, r, http.StatusNoContent)
}

// handleSubmit runs the confirmation with the posted fields. The fields
// only land when the submission is accepted; a submit racing an in-flight
// one changes nothing. The call is detached from the request so a closed
// tab still ends Confirmed.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	c, err := s.flowFor(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	req, err := decodeFields(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	_, err = c.Submit(context.WithoutCancel(r.Context()), req.updates()...)
	switch {
	case err == nil:
		if !isHTMX(r) {
			s.seeOther(w, r, "")
			return
		}
		s.renderView(w, r, http.StatusOK, "app", c)
	case isValidationError(err), errors.Is(err, domain.ErrSubmissionInFlight):
		status := statusFor(err)
		if !isHTMX(r) {
			s.renderView(w, r, status, "layout", c)
			return
		}
		w.Header().Set("HX-Retarget", "#rsvp")
		w.Header().Set("HX-Reswap", "outerHTML")
		s.renderView(w, r, status, "rsvp", c)
	default:
		s.fail(w, r, err)
	}
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	c, err := s.flowFor(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := c.Restart(r.Context()); err != nil {
		s.fail(w, r, err)
		return
	}
	if !isHTMX(r) {
		s.seeOther(w, r, "")
		return
	}
	if d, ok := directivesFrom(r.Context()); ok {
		d.add(EventScroll, map[string]string{"section": string(domain.SectionCover)})
	}
	s.renderView(w, r, http.StatusOK, "app", c)
}

type visibilityResponse struct {
	Section domain.Section `json:"section"`
	Visible bool           `json:"visible"`
}

// handleVisibility accepts an intersection report from the page.
func (s *Server) handleVisibility(w http.ResponseWriter, r *http.Request) {
	c, err := s.flowFor(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	section, err := domain.ParseSection(chi.URLParam(r, "section"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	ratio, err := strconv.ParseFloat(r.URL.Query().Get("ratio"), 64)
	if err != nil || ratio < 0 || ratio > 1 {
		http.Error(w, "ratio must be a number between 0 and 1", http.StatusBadRequest)
		return
	}
	if _, err := c.ReportVisibility(section, ratio); err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	s.finish(w, r, http.StatusOK)
	resp := visibilityResponse{Section: section, Visible: c.View().Visible[section]}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("visibility response encode failed", "error", err)
	}
}

// handleAudioFailed records a blocked or failed autoplay. Playback
// failures never interrupt the flow.
func (s *Server) handleAudioFailed(w http.ResponseWriter, r *http.Request) {
	c, err := s.flowFor(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	_ = r.ParseForm()
	s.logger.Warn("audio playback failed", "session_id", c.ID(), "reason", r.PostForm.Get("reason"))
	s.finish(w, r, http.StatusNoContent)
}

// handleEvents streams snapshot diffs of the caller's session.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	c, err := s.flowFor(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.streams.serve(w, r, c.ID(), r.URL.Query().Get("watch"))
}

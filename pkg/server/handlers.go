package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	lerrors "github.com/vango-dev/memolab/internal/errors"
	"github.com/vango-dev/memolab/internal/lessons"
	"github.com/vango-dev/memolab/pkg/render"
	"github.com/vango-dev/memolab/pkg/vdom"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.writePage(w, lessons.HomePage(s.catalog.All()), lessons.PageTitle)
}

func (s *Server) handleLesson(w http.ResponseWriter, r *http.Request) {
	l, ok := s.lesson(w, r)
	if !ok {
		return
	}
	s.writePage(w, lessons.HomePage([]*lessons.Lesson{l}), l.Title+" | "+lessons.PageTitle)
}

func (s *Server) handleCounts(w http.ResponseWriter, r *http.Request) {
	l, ok := s.lesson(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, l.Holder().Snapshot())
}

func (s *Server) handleBump(w http.ResponseWriter, r *http.Request) {
	l, ok := s.lesson(w, r)
	if !ok {
		return
	}
	if err := l.Bump(r.Context(), chi.URLParam(r, "slot")); err != nil {
		s.writeError(w, err)
		return
	}
	s.respondLesson(w, r, l)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	l, ok := s.lesson(w, r)
	if !ok {
		return
	}
	if err := s.catalog.Reset(l.ID); err != nil {
		s.writeError(w, err)
		return
	}
	s.hub.Notify(Message{Type: MessageTypeReset, Lesson: l.ID})
	s.respondLesson(w, r, l)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"lessons": len(s.catalog.All()),
		"clients": s.hub.ClientCount(),
	})
}

func (s *Server) lesson(w http.ResponseWriter, r *http.Request) (*lessons.Lesson, bool) {
	id := chi.URLParam(r, "id")
	l, ok := s.catalog.Get(id)
	if !ok {
		s.writeError(w, lerrors.New(lerrors.CodeUnknownLesson).WithDetailf("lesson %q", id))
		return nil, false
	}
	return l, true
}

// respondLesson answers a POST with the snapshot for JSON clients and a
// redirect to the lesson's anchor on the home page otherwise.
func (s *Server) respondLesson(w http.ResponseWriter, r *http.Request, l *lessons.Lesson) {
	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, l.Holder().Snapshot())
		return
	}
	http.Redirect(w, r, "/#"+l.ID, http.StatusSeeOther)
}

func (s *Server) writePage(w http.ResponseWriter, body *vdom.VNode, title string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := s.renderer.RenderPage(w, render.PageData{
		Body:        body,
		Title:       title,
		Description: lessons.PageSubtitle,
		Styles:      []string{lessons.Stylesheet},
		Scripts:     []string{lessons.LiveScript},
	})
	if err != nil {
		s.logger.Error("render page", "error", err)
	}
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Code       string `json:"code,omitempty"`
	Message    string `json:"message"`
	Detail     string `json:"detail,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
	Cause      string `json:"cause,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	var le *lerrors.Error
	if !stderrors.As(err, &le) {
		s.logger.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Message: err.Error()})
		return
	}

	body := errorBody{Code: le.Code, Message: le.Message, Detail: le.Detail, Suggestion: le.Suggestion}
	if le.Wrapped != nil {
		body.Cause = le.Wrapped.Error()
	}
	status := statusFor(le.Code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "code", le.Code, "error", err)
	}
	writeJSON(w, status, body)
}

func statusFor(code string) int {
	switch code {
	case lerrors.CodeUnknownLesson, lerrors.CodeUnknownSlot, lerrors.CodeUnknownGate:
		return http.StatusNotFound
	case lerrors.CodeHolderDisposed:
		return http.StatusGone
	case lerrors.CodePassFailed:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

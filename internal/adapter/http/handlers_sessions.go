package adapthttp

import (
	"net/http"

	"fatrobin/internal/domain"
)

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, err := s.sessions.Create(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.writeSession(w, r, http.StatusCreated, sess)
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	switch r.Method {
	case http.MethodGet:
		sess, err := s.sessions.Get(ctx, id)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		s.writeSession(w, r, http.StatusOK, sess)

	case http.MethodDelete:
		if err := s.sessions.End(ctx, id); err != nil {
			writeServiceError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleSessionFields clears every input of a session.
func (s *Server) handleSessionFields(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, err := s.sessions.Clear(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.writeSession(w, r, http.StatusOK, sess)
}

// handleSessionField sets one input. {"value": null} clears it.
func (s *Server) handleSessionField(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var body struct {
		Value *float64 `json:"value"`
	}
	if err := parseBody(r, &body); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	field := domain.Field(r.PathValue("field"))
	sess, err := s.sessions.SetField(r.Context(), r.PathValue("id"), field, body.Value)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.writeSession(w, r, http.StatusOK, sess)
}

// writeSession renders the session together with its current report. The
// potencies query parameter overrides the default list.
func (s *Server) writeSession(w http.ResponseWriter, r *http.Request, status int, sess *domain.Session) {
	potencies, err := potenciesQuery(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	rep, err := s.dosing.Report(sess.Inputs, potencies)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeBody(w, r, status, sessionResponse{
		ID:        sess.ID,
		ExpiresAt: sess.ExpiresAt,
		Report:    toReportResponse(rep),
	})
}

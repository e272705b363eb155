package adapthttp

import (
	"net/http"

	"fatrobin/internal/app"
)

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req app.CalculateRequest
	if err := parseBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	rep, err := s.dosing.Calculate(req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeBody(w, r, http.StatusOK, toReportResponse(rep))
}

func (s *Server) handleCalculateStrict(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req app.StrictRequest
	if err := parseBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	res, err := s.dosing.CalculateStrict(req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeBody(w, r, http.StatusOK, res)
}

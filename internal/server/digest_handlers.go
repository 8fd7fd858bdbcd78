package server

import (
	"encoding/json"
	"net/http"

	"newsagent/internal/core"
)

// handleDigest handles POST /digest. The body is a DigestRequest; shape
// errors come back as 422 with one message per violated constraint, before
// the pipeline runs. The pipeline itself never produces an error response.
func (s *Server) handleDigest(w http.ResponseWriter, r *http.Request) {
	var req core.DigestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}

	req.ApplyDefaults()
	if problems := req.Validate(); len(problems) > 0 {
		s.respondError(w, http.StatusUnprocessableEntity, "invalid digest request", problems)
		return
	}

	resp := s.orchestrator.BuildDigest(r.Context(), req)
	s.respondJSON(w, http.StatusOK, resp)
}

package server

import (
	"encoding/json"
	"net/http"
	"time"
)

// Version is the service version reported by /api/status.
const Version = "1.0.0"

// HealthResponse is the /health payload.
type HealthResponse struct {
	Status string `json:"status"`
}

// StatusResponse is the /api/status payload.
type StatusResponse struct {
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

var serverStartTime = time.Now()

// handleHealth handles the /health endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// handleStatus handles the /api/status endpoint
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, StatusResponse{
		Version: Version,
		Uptime:  time.Since(serverStartTime).String(),
	})
}

// respondJSON writes a JSON response
func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("Failed to encode JSON response", "error", err)
	}
}

// respondError writes a JSON error body with the given status.
func (s *Server) respondError(w http.ResponseWriter, status int, message string, details []string) {
	body := map[string]interface{}{"error": message}
	if len(details) > 0 {
		body["details"] = details
	}
	s.respondJSON(w, status, body)
}

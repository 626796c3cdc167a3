package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
)

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// errorResponse writes an error response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// errorFromErr maps a domain error onto the wire
func (s *Server) errorFromErr(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("Internal error: %v", err)
		s.errorResponse(w, status, "Internal server error")
		return
	}
	s.errorResponse(w, status, err.Error())
}

// parseQueryInt reads a positive integer query parameter, falling back to
// def when absent or malformed and clamping to max.
func parseQueryInt(r *http.Request, key string, def, max int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	if max > 0 && n > max {
		return max
	}
	return n
}

// pageParams extracts page and limit from the request query.
func pageParams(r *http.Request) (page, limit int) {
	page = parseQueryInt(r, "page", 1, 0)
	limit = parseQueryInt(r, "limit", 20, 100)
	return page, limit
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "healthy"})
}

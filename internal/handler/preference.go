package handler

import (
	"net/http"

	"github.com/pkordes/travel-planner/backend/internal/middleware"
)

// GetPreferences handles GET /preferences.
func (s *Server) GetPreferences(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	prefs, err := s.preferences.Get(r.Context(), userID)
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

// ReplacePreferences handles PUT /preferences. Fields present in the body
// replace the stored lists; fields left out are kept.
func (s *Server) ReplacePreferences(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	var body map[string][]string
	if !decodeBody(w, r, &body) {
		return
	}

	prefs, err := s.preferences.Replace(r.Context(), userID, body)
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

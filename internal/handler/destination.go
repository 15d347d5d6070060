package handler

import (
	"net/http"
)

// ListDestinations handles GET /destinations.
// The optional ?q= query parameter filters destinations by name prefix.
func (s *Server) ListDestinations(w http.ResponseWriter, r *http.Request) {
	prefix, err := bindString(r, "q")
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}
	params, err := bindPagination(r)
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}

	dests, total, err := s.destinations.Suggest(r.Context(), prefix, params)
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, newListResponse(dests, params, total))
}

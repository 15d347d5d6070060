package handler

import (
	"context"
	"net/http"

	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/middleware"
)

// GeneratePackage handles POST /packages.
// The generated package is returned whether or not saving it to the user's
// history succeeds; a failed save is only logged.
func (s *Server) GeneratePackage(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	var req domain.TripRequest
	if !decodeBody(w, r, &req) {
		return
	}

	pkg, err := s.packages.Generate(r.Context(), userID, req)
	if err != nil {
		s.writeServiceError(w, r, err, "destination not found")
		return
	}

	if s.history != nil {
		ctx := context.WithoutCancel(r.Context())
		if _, err := s.history.Record(ctx, userID, pkg); err != nil {
			s.log.WarnContext(ctx, "package history not saved", "user_id", userID.String(), "error", err)
		}
	}

	writeJSON(w, http.StatusOK, pkg)
}

// ListPackages handles GET /packages, the caller's generated packages newest first.
func (s *Server) ListPackages(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	params, err := bindPagination(r)
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}

	records, total, err := s.history.List(r.Context(), userID, params)
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, newListResponse(records, params, total))
}

// Package handler implements the HTTP handlers for the travel planner API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, package.go, etc.) but share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// PackageGenerator defines the package-generation operation the handler depends on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type PackageGenerator interface {
	Generate(ctx context.Context, userID uuid.UUID, req domain.TripRequest) (domain.GeneratedPackage, error)
}

// HistoryServicer records and lists generated packages.
type HistoryServicer interface {
	Record(ctx context.Context, userID uuid.UUID, pkg domain.GeneratedPackage) (domain.PackageRecord, error)
	List(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.PackageRecord, int64, error)
}

// PreferenceServicer reads and replaces a user's preferences.
type PreferenceServicer interface {
	Get(ctx context.Context, userID uuid.UUID) (map[string][]string, error)
	Replace(ctx context.Context, userID uuid.UUID, fields map[string][]string) (map[string][]string, error)
}

// DestinationServicer serves destination suggestions.
type DestinationServicer interface {
	Suggest(ctx context.Context, prefix string, p domain.PaginationParams) ([]domain.Destination, int64, error)
}

// Server holds every handler dependency.
type Server struct {
	packages     PackageGenerator
	history      HistoryServicer
	preferences  PreferenceServicer
	destinations DestinationServicer
	log          *slog.Logger
}

// NewServer constructs the Server with all its dependencies. A nil logger
// falls back to slog.Default().
func NewServer(
	packages PackageGenerator,
	history HistoryServicer,
	preferences PreferenceServicer,
	destinations DestinationServicer,
	log *slog.Logger,
) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		packages:     packages,
		history:      history,
		preferences:  preferences,
		destinations: destinations,
		log:          log,
	}
}

// Routes returns the API router. Health and the OpenAPI document are public;
// everything else runs behind requireAuth.
func (s *Server) Routes(requireAuth func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Post("/packages", s.GeneratePackage)
		r.Get("/packages", s.ListPackages)
		r.Get("/preferences", s.GetPreferences)
		r.Put("/preferences", s.ReplacePreferences)
		r.Get("/destinations", s.ListDestinations)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, notFoundBody("route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: errorDetail{Code: "method_not_allowed", Message: "method not allowed"}})
	})
	return r
}

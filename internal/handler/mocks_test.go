package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/handler"
	"github.com/pkordes/travel-planner/backend/internal/middleware"
)

// mockPackageGenerator is a test double for handler.PackageGenerator.
type mockPackageGenerator struct {
	generate func(ctx context.Context, userID uuid.UUID, req domain.TripRequest) (domain.GeneratedPackage, error)
}

func (m *mockPackageGenerator) Generate(ctx context.Context, userID uuid.UUID, req domain.TripRequest) (domain.GeneratedPackage, error) {
	return m.generate(ctx, userID, req)
}

// mockHistoryServicer is a test double for handler.HistoryServicer.
type mockHistoryServicer struct {
	record func(ctx context.Context, userID uuid.UUID, pkg domain.GeneratedPackage) (domain.PackageRecord, error)
	list   func(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.PackageRecord, int64, error)
}

func (m *mockHistoryServicer) Record(ctx context.Context, userID uuid.UUID, pkg domain.GeneratedPackage) (domain.PackageRecord, error) {
	return m.record(ctx, userID, pkg)
}
func (m *mockHistoryServicer) List(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.PackageRecord, int64, error) {
	return m.list(ctx, userID, p)
}

// mockPreferenceServicer is a test double for handler.PreferenceServicer.
type mockPreferenceServicer struct {
	get     func(ctx context.Context, userID uuid.UUID) (map[string][]string, error)
	replace func(ctx context.Context, userID uuid.UUID, fields map[string][]string) (map[string][]string, error)
}

func (m *mockPreferenceServicer) Get(ctx context.Context, userID uuid.UUID) (map[string][]string, error) {
	return m.get(ctx, userID)
}
func (m *mockPreferenceServicer) Replace(ctx context.Context, userID uuid.UUID, fields map[string][]string) (map[string][]string, error) {
	return m.replace(ctx, userID, fields)
}

// mockDestinationServicer is a test double for handler.DestinationServicer.
type mockDestinationServicer struct {
	suggest func(ctx context.Context, prefix string, p domain.PaginationParams) ([]domain.Destination, int64, error)
}

func (m *mockDestinationServicer) Suggest(ctx context.Context, prefix string, p domain.PaginationParams) ([]domain.Destination, int64, error) {
	return m.suggest(ctx, prefix, p)
}

// compile-time checks: every mock must satisfy its handler interface.
var (
	_ handler.PackageGenerator    = (*mockPackageGenerator)(nil)
	_ handler.HistoryServicer     = (*mockHistoryServicer)(nil)
	_ handler.PreferenceServicer  = (*mockPreferenceServicer)(nil)
	_ handler.DestinationServicer = (*mockDestinationServicer)(nil)
)

// ---- helpers ---------------------------------------------------------------

var testUser = uuid.MustParse("5b7c4c1e-9a53-4c1e-8f5f-3d0f9b0a7e11")

// deps bundles the mocks a test wants wired; nil entries get empty mocks.
type deps struct {
	packages     *mockPackageGenerator
	history      *mockHistoryServicer
	preferences  *mockPreferenceServicer
	destinations *mockDestinationServicer
}

// fakeAuth authenticates every request as testUser.
func fakeAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(middleware.WithUserID(r.Context(), testUser)))
	})
}

// newHTTPHandler wires a Server with the given mocks into its chi router.
// This mirrors how main.go wires it in production, with auth stubbed.
func newHTTPHandler(d deps) http.Handler {
	if d.packages == nil {
		d.packages = &mockPackageGenerator{}
	}
	if d.history == nil {
		d.history = &mockHistoryServicer{
			record: func(_ context.Context, userID uuid.UUID, pkg domain.GeneratedPackage) (domain.PackageRecord, error) {
				return domain.PackageRecord{ID: uuid.New(), UserID: userID, Package: pkg}, nil
			},
		}
	}
	if d.preferences == nil {
		d.preferences = &mockPreferenceServicer{}
	}
	if d.destinations == nil {
		d.destinations = &mockDestinationServicer{}
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := handler.NewServer(d.packages, d.history, d.preferences, d.destinations, logger)
	return srv.Routes(fakeAuth)
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// errorEnvelope decodes the standard error body.
type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeError(t *testing.T, body io.Reader) errorEnvelope {
	t.Helper()
	var e errorEnvelope
	require.NoError(t, json.NewDecoder(body).Decode(&e))
	return e
}

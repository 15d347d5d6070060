package service_test

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/repo"
)

// mockCatalogRepo is a hand-written test double for repo.CatalogRepo.
// Each method is a function field; set only the ones your test needs.
// Candidates may be called from several goroutines, so every query it
// receives is recorded, in call order per kind, under a mutex.
type mockCatalogRepo struct {
	findByID   func(ctx context.Context, id uuid.UUID) (domain.Destination, error)
	findByName func(ctx context.Context, name string) (domain.Destination, error)
	list       func(ctx context.Context, prefix string, p domain.PaginationParams) ([]domain.Destination, int64, error)
	candidates func(ctx context.Context, q repo.CandidateQuery) ([]domain.CatalogItem, error)

	mu      sync.Mutex
	queries map[domain.Kind][]repo.CandidateQuery
}

func (m *mockCatalogRepo) FindDestinationByID(ctx context.Context, id uuid.UUID) (domain.Destination, error) {
	return m.findByID(ctx, id)
}
func (m *mockCatalogRepo) FindDestinationByName(ctx context.Context, name string) (domain.Destination, error) {
	return m.findByName(ctx, name)
}
func (m *mockCatalogRepo) ListDestinations(ctx context.Context, prefix string, p domain.PaginationParams) ([]domain.Destination, int64, error) {
	return m.list(ctx, prefix, p)
}
func (m *mockCatalogRepo) Candidates(ctx context.Context, q repo.CandidateQuery) ([]domain.CatalogItem, error) {
	m.mu.Lock()
	if m.queries == nil {
		m.queries = map[domain.Kind][]repo.CandidateQuery{}
	}
	m.queries[q.Kind] = append(m.queries[q.Kind], q)
	m.mu.Unlock()
	return m.candidates(ctx, q)
}

// queried returns the first query recorded for k and whether one was made.
func (m *mockCatalogRepo) queried(k domain.Kind) (repo.CandidateQuery, bool) {
	qs := m.queriesFor(k)
	if len(qs) == 0 {
		return repo.CandidateQuery{}, false
	}
	return qs[0], true
}

// queriesFor returns every query recorded for k.
func (m *mockCatalogRepo) queriesFor(k domain.Kind) []repo.CandidateQuery {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]repo.CandidateQuery(nil), m.queries[k]...)
}

// compile-time check: mockCatalogRepo must satisfy repo.CatalogRepo.
var _ repo.CatalogRepo = (*mockCatalogRepo)(nil)

// mockPreferenceRepo is a hand-written test double for repo.PreferenceRepo.
type mockPreferenceRepo struct {
	get     func(ctx context.Context, userID uuid.UUID) (domain.PreferenceSet, error)
	replace func(ctx context.Context, userID uuid.UUID, set domain.PreferenceSet) error
}

func (m *mockPreferenceRepo) Get(ctx context.Context, userID uuid.UUID) (domain.PreferenceSet, error) {
	return m.get(ctx, userID)
}
func (m *mockPreferenceRepo) Replace(ctx context.Context, userID uuid.UUID, set domain.PreferenceSet) error {
	return m.replace(ctx, userID, set)
}

// compile-time check: mockPreferenceRepo must satisfy repo.PreferenceRepo.
var _ repo.PreferenceRepo = (*mockPreferenceRepo)(nil)

// mockPackageRepo is a hand-written test double for repo.PackageRepo.
type mockPackageRepo struct {
	save       func(ctx context.Context, userID uuid.UUID, pkg domain.GeneratedPackage) (domain.PackageRecord, error)
	listByUser func(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.PackageRecord, int64, error)
}

func (m *mockPackageRepo) Save(ctx context.Context, userID uuid.UUID, pkg domain.GeneratedPackage) (domain.PackageRecord, error) {
	return m.save(ctx, userID, pkg)
}
func (m *mockPackageRepo) ListByUser(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.PackageRecord, int64, error) {
	return m.listByUser(ctx, userID, p)
}

// compile-time check: mockPackageRepo must satisfy repo.PackageRepo.
var _ repo.PackageRepo = (*mockPackageRepo)(nil)

package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/repo"
)

func packageFixture(dest string, total float64) domain.GeneratedPackage {
	items := domain.NewPackageItems()
	items.Food = append(items.Food, domain.CatalogItem{
		ID:    uuid.New(),
		Kind:  domain.KindFood,
		Name:  "Francesinha",
		Price: 12.5,
	})
	return domain.GeneratedPackage{
		Destination: dest,
		Budget:      1000,
		Adults:      2,
		DateIn:      "2025-07-10",
		DateOut:     "2025-07-12",
		Nights:      2,
		Days:        3,
		Items:       items,
		TotalCost:   total,
		UserPreferencesApplied: map[string][]string{
			string(domain.KindFood): {"Traditional"},
		},
	}
}

func TestPackageRepo_Save(t *testing.T) {
	r := repo.NewPackageRepo(newTestTx(t))
	user := uuid.New()
	pkg := packageFixture("Porto", 75)

	got, err := r.Save(context.Background(), user, pkg)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, user, got.UserID)
	assert.False(t, got.CreatedAt.IsZero())
	assert.Equal(t, "Porto", got.Package.Destination)
	assert.Equal(t, 75.0, got.Package.TotalCost)
	require.Len(t, got.Package.Items.Food, 1)
	assert.Equal(t, "Francesinha", got.Package.Items.Food[0].Name)
}

func TestPackageRepo_ListByUser(t *testing.T) {
	r := repo.NewPackageRepo(newTestTx(t))
	ctx := context.Background()
	user := uuid.New()

	for _, dest := range []string{"Porto", "Lisboa", "Faro"} {
		_, err := r.Save(ctx, user, packageFixture(dest, 10))
		require.NoError(t, err)
	}
	_, err := r.Save(ctx, uuid.New(), packageFixture("Braga", 10))
	require.NoError(t, err)

	page, total, err := r.ListByUser(ctx, user, domain.NewPaginationParams(ptr(1), ptr(2)))
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, page, 2)
	for _, rec := range page {
		assert.Equal(t, user, rec.UserID)
	}

	empty, total, err := r.ListByUser(ctx, uuid.New(), domain.NewPaginationParams(nil, nil))
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

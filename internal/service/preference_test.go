package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/service"
)

// memoryPreferenceRepo keeps preferences in a map, applying Replace the way
// the Postgres repo does.
func memoryPreferenceRepo() *mockPreferenceRepo {
	store := domain.PreferenceSet{}
	return &mockPreferenceRepo{
		get: func(context.Context, uuid.UUID) (domain.PreferenceSet, error) {
			out := domain.PreferenceSet{}
			for k, v := range store {
				out[k] = v
			}
			return out, nil
		},
		replace: func(_ context.Context, _ uuid.UUID, set domain.PreferenceSet) error {
			for k, v := range set {
				store[k] = v
			}
			return nil
		},
	}
}

func TestPreferenceService_Get_AllFieldsPresent(t *testing.T) {
	svc := service.NewPreferenceService(memoryPreferenceRepo())

	got, err := svc.Get(context.Background(), testUser)

	require.NoError(t, err)
	assert.Len(t, got, len(domain.PreferenceKinds))
	for _, opts := range got {
		assert.NotNil(t, opts)
		assert.Empty(t, opts)
	}
}

func TestPreferenceService_Replace_NormalizesLabels(t *testing.T) {
	svc := service.NewPreferenceService(memoryPreferenceRepo())

	got, err := svc.Replace(context.Background(), testUser, map[string][]string{
		"Accommodation": {" Hotel ", "Hotel", "", "Hostel"},
		"food":          {"Seafood"},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"Hotel", "Hostel"}, got["accommodation"])
	assert.Equal(t, []string{"Seafood"}, got["food"])
	assert.Empty(t, got["activity"])
}

func TestPreferenceService_Replace_PartialUpdateKeepsOtherFields(t *testing.T) {
	svc := service.NewPreferenceService(memoryPreferenceRepo())
	ctx := context.Background()

	_, err := svc.Replace(ctx, testUser, map[string][]string{"food": {"Seafood"}, "interests": {"Museum"}})
	require.NoError(t, err)
	got, err := svc.Replace(ctx, testUser, map[string][]string{"food": {}})
	require.NoError(t, err)

	assert.Empty(t, got["food"])
	assert.Equal(t, []string{"Museum"}, got["interests"])
}

func TestPreferenceService_Replace_Validation(t *testing.T) {
	repo := &mockPreferenceRepo{
		replace: func(context.Context, uuid.UUID, domain.PreferenceSet) error {
			t.Fatal("invalid input must not reach the repo")
			return nil
		},
	}
	svc := service.NewPreferenceService(repo)
	tooMany := make([]string, 51)
	for i := range tooMany {
		tooMany[i] = string(rune('a' + i%26))
	}

	tests := []struct {
		name   string
		fields map[string][]string
	}{
		{"unknown field", map[string][]string{"spa": {"Sauna"}}},
		{"events are not a preference", map[string][]string{"event": {"Concert"}}},
		{"duplicate field", map[string][]string{"food": {"a"}, "FOOD": {"b"}}},
		{"too many options", map[string][]string{"food": tooMany}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Replace(context.Background(), testUser, tc.fields)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestPreferenceService_RequiresUser(t *testing.T) {
	svc := service.NewPreferenceService(memoryPreferenceRepo())

	_, err := svc.Get(context.Background(), uuid.Nil)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = svc.Replace(context.Background(), uuid.Nil, nil)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

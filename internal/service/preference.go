package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/repo"
)

// maxOptionsPerKind bounds how many labels one preference field may hold.
const maxOptionsPerKind = 50

// PreferenceService reads and replaces a user's stored preferences.
type PreferenceService struct {
	repo repo.PreferenceRepo
}

// NewPreferenceService constructs a PreferenceService backed by the provided PreferenceRepo.
func NewPreferenceService(r repo.PreferenceRepo) *PreferenceService {
	return &PreferenceService{repo: r}
}

// Get returns the user's preferences keyed by field name, with every
// preference field present.
func (s *PreferenceService) Get(ctx context.Context, userID uuid.UUID) (map[string][]string, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("service.PreferenceService.Get: %w", domain.ErrUnauthenticated)
	}
	set, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.PreferenceService.Get: %w", err)
	}
	return set.Applied(), nil
}

// Replace validates the field names and labels, then overwrites the fields
// present in fields. Fields not mentioned keep their stored value.
func (s *PreferenceService) Replace(ctx context.Context, userID uuid.UUID, fields map[string][]string) (map[string][]string, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("service.PreferenceService.Replace: %w", domain.ErrUnauthenticated)
	}
	set, err := normalizePreferences(fields)
	if err != nil {
		return nil, fmt.Errorf("service.PreferenceService.Replace: %w", err)
	}
	if err := s.repo.Replace(ctx, userID, set); err != nil {
		return nil, fmt.Errorf("service.PreferenceService.Replace: %w", err)
	}
	return s.Get(ctx, userID)
}

// normalizePreferences maps field names onto kinds, trims labels, drops
// blanks and duplicates.
func normalizePreferences(fields map[string][]string) (domain.PreferenceSet, error) {
	set := make(domain.PreferenceSet, len(fields))
	for name, opts := range fields {
		k, err := domain.ParsePreferenceKind(name)
		if err != nil {
			return nil, err
		}
		if _, dup := set[k]; dup {
			return nil, fmt.Errorf("%w: preference %q given twice", domain.ErrValidation, k)
		}
		if len(opts) > maxOptionsPerKind {
			return nil, fmt.Errorf("%w: %s accepts at most %d options", domain.ErrValidation, k, maxOptionsPerKind)
		}

		seen := make(map[string]bool, len(opts))
		clean := []string{}
		for _, o := range opts {
			o = strings.TrimSpace(o)
			if o == "" || seen[o] {
				continue
			}
			seen[o] = true
			clean = append(clean, o)
		}
		set[k] = clean
	}
	return set, nil
}

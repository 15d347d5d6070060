package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/repo"
)

// DestinationService resolves destination names and serves suggestions.
// Resolved destinations are cached in memory; misses are not cached.
type DestinationService struct {
	repo  repo.CatalogRepo
	cache *cache.Cache
}

// NewDestinationService constructs a DestinationService. A ttl of zero or
// less disables caching.
func NewDestinationService(r repo.CatalogRepo, ttl time.Duration) *DestinationService {
	s := &DestinationService{repo: r}
	if ttl > 0 {
		s.cache = cache.New(ttl, 2*ttl)
	}
	return s
}

// Resolve looks a destination up by UUID or, failing that, by name
// (case-insensitive). Returns domain.ErrNotFound when nothing matches.
func (s *DestinationService) Resolve(ctx context.Context, nameOrID string) (domain.Destination, error) {
	key := strings.ToLower(strings.TrimSpace(nameOrID))
	if key == "" {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.Resolve: %w: destination is required", domain.ErrValidation)
	}
	if s.cache != nil {
		if v, ok := s.cache.Get(key); ok {
			return v.(domain.Destination), nil
		}
	}

	var (
		d   domain.Destination
		err error
	)
	if id, perr := uuid.Parse(key); perr == nil {
		d, err = s.repo.FindDestinationByID(ctx, id)
	} else {
		d, err = s.repo.FindDestinationByName(ctx, key)
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Destination{}, fmt.Errorf("service.DestinationService.Resolve: destination %q: %w", strings.TrimSpace(nameOrID), domain.ErrNotFound)
		}
		return domain.Destination{}, fmt.Errorf("service.DestinationService.Resolve: %w", err)
	}

	if s.cache != nil {
		s.cache.SetDefault(key, d)
	}
	return d, nil
}

// Suggest lists destinations whose name starts with prefix, one page at a time.
func (s *DestinationService) Suggest(ctx context.Context, prefix string, p domain.PaginationParams) ([]domain.Destination, int64, error) {
	out, total, err := s.repo.ListDestinations(ctx, prefix, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.DestinationService.Suggest: %w", err)
	}
	return out, total, nil
}

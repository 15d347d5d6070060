package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/repo"
)

// HistoryService records generated packages and lists them back per user.
type HistoryService struct {
	repo repo.PackageRepo
}

// NewHistoryService constructs a HistoryService backed by the provided PackageRepo.
func NewHistoryService(r repo.PackageRepo) *HistoryService {
	return &HistoryService{repo: r}
}

// Record saves pkg to the user's history.
func (s *HistoryService) Record(ctx context.Context, userID uuid.UUID, pkg domain.GeneratedPackage) (domain.PackageRecord, error) {
	if userID == uuid.Nil {
		return domain.PackageRecord{}, fmt.Errorf("service.HistoryService.Record: %w", domain.ErrUnauthenticated)
	}
	rec, err := s.repo.Save(ctx, userID, pkg)
	if err != nil {
		return domain.PackageRecord{}, fmt.Errorf("service.HistoryService.Record: %w", err)
	}
	return rec, nil
}

// List returns one page of the user's packages, newest first.
func (s *HistoryService) List(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.PackageRecord, int64, error) {
	if userID == uuid.Nil {
		return nil, 0, fmt.Errorf("service.HistoryService.List: %w", domain.ErrUnauthenticated)
	}
	out, total, err := s.repo.ListByUser(ctx, userID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.HistoryService.List: %w", err)
	}
	return out, total, nil
}

package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// PackageRepo persists generated packages as a per-user history.
type PackageRepo interface {
	// Save stores pkg for the user and returns the persisted record.
	Save(ctx context.Context, userID uuid.UUID, pkg domain.GeneratedPackage) (domain.PackageRecord, error)

	// ListByUser returns one page of the user's packages, newest first,
	// and the total number of packages the user has.
	ListByUser(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.PackageRecord, int64, error)
}

// pgPackageRepo is the Postgres implementation of PackageRepo.
type pgPackageRepo struct {
	db db
}

// NewPackageRepo constructs a PackageRepo backed by the provided db connection.
func NewPackageRepo(db db) PackageRepo {
	return &pgPackageRepo{db: db}
}

func (r *pgPackageRepo) Save(ctx context.Context, userID uuid.UUID, pkg domain.GeneratedPackage) (domain.PackageRecord, error) {
	const q = `
		INSERT INTO package_history (user_id, destination, budget, total_cost, payload)
		VALUES (@user_id, @destination, @budget, @total_cost, @payload)
		RETURNING id, user_id, payload, created_at`

	payload, err := json.Marshal(pkg)
	if err != nil {
		return domain.PackageRecord{}, fmt.Errorf("repo.PackageRepo.Save: marshal: %w", err)
	}
	args := pgx.NamedArgs{
		"user_id":     userID,
		"destination": pkg.Destination,
		"budget":      pkg.Budget,
		"total_cost":  pkg.TotalCost,
		"payload":     payload,
	}

	rec, err := scanPackageRecord(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.PackageRecord{}, fmt.Errorf("repo.PackageRepo.Save: %w", err)
	}
	return rec, nil
}

func (r *pgPackageRepo) ListByUser(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.PackageRecord, int64, error) {
	const countQ = `SELECT count(*) FROM package_history WHERE user_id = @user_id`
	const q = `
		SELECT id, user_id, payload, created_at
		FROM package_history
		WHERE user_id = @user_id
		ORDER BY created_at DESC, id DESC
		LIMIT @limit OFFSET @offset`

	var total int64
	if err := r.db.QueryRow(ctx, countQ, pgx.NamedArgs{"user_id": userID}).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.PackageRepo.ListByUser: count: %w", err)
	}

	args := pgx.NamedArgs{
		"user_id": userID,
		"limit":   p.Limit,
		"offset":  p.Offset(),
	}
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.PackageRepo.ListByUser: %w", err)
	}
	defer rows.Close()

	out := []domain.PackageRecord{}
	for rows.Next() {
		rec, err := scanPackageRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.PackageRepo.ListByUser: scan: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.PackageRepo.ListByUser: rows: %w", err)
	}
	return out, total, nil
}

// scanPackageRecord maps a package_history row into a domain.PackageRecord.
func scanPackageRecord(s scanner) (domain.PackageRecord, error) {
	var (
		rec     domain.PackageRecord
		id      pgtype.UUID
		userID  pgtype.UUID
		payload []byte
	)
	if err := s.Scan(&id, &userID, &payload, &rec.CreatedAt); err != nil {
		return domain.PackageRecord{}, err
	}
	if err := json.Unmarshal(payload, &rec.Package); err != nil {
		return domain.PackageRecord{}, fmt.Errorf("decode payload: %w", err)
	}
	rec.ID = uuid.UUID(id.Bytes)
	rec.UserID = uuid.UUID(userID.Bytes)
	return rec, nil
}

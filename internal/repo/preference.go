package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// PreferenceRepo stores the per-user option labels for each preference kind.
type PreferenceRepo interface {
	// Get returns the user's preferences. A user with no rows gets an empty
	// set, not an error.
	Get(ctx context.Context, userID uuid.UUID) (domain.PreferenceSet, error)

	// Replace overwrites every kind present in set for the user. Kinds mapped
	// to an empty list are cleared. Kinds absent from set are left alone.
	Replace(ctx context.Context, userID uuid.UUID, set domain.PreferenceSet) error
}

// pgPreferenceRepo is the Postgres implementation of PreferenceRepo.
type pgPreferenceRepo struct {
	db db
}

// NewPreferenceRepo constructs a PreferenceRepo backed by the provided db connection.
func NewPreferenceRepo(db db) PreferenceRepo {
	return &pgPreferenceRepo{db: db}
}

func (r *pgPreferenceRepo) Get(ctx context.Context, userID uuid.UUID) (domain.PreferenceSet, error) {
	const q = `
		SELECT category, options
		FROM user_preferences
		WHERE user_id = @user_id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.PreferenceRepo.Get: %w", err)
	}
	defer rows.Close()

	set := domain.PreferenceSet{}
	for rows.Next() {
		var (
			category string
			options  []string
		)
		if err := rows.Scan(&category, &options); err != nil {
			return nil, fmt.Errorf("repo.PreferenceRepo.Get: scan: %w", err)
		}
		k, err := domain.ParsePreferenceKind(category)
		if err != nil {
			// Rows for retired categories are ignored.
			continue
		}
		if options == nil {
			options = []string{}
		}
		set[k] = options
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.PreferenceRepo.Get: rows: %w", err)
	}
	return set, nil
}

func (r *pgPreferenceRepo) Replace(ctx context.Context, userID uuid.UUID, set domain.PreferenceSet) error {
	const upsert = `
		INSERT INTO user_preferences (user_id, category, options)
		VALUES (@user_id, @category, @options)
		ON CONFLICT (user_id, category)
		DO UPDATE SET options = EXCLUDED.options, updated_at = now()`

	// Iterate in a fixed order so concurrent writers lock rows consistently.
	for _, k := range domain.PreferenceKinds {
		opts, ok := set[k]
		if !ok {
			continue
		}
		args := pgx.NamedArgs{
			"user_id":  userID,
			"category": string(k),
			"options":  append([]string{}, opts...),
		}
		if _, err := r.db.Exec(ctx, upsert, args); err != nil {
			return fmt.Errorf("repo.PreferenceRepo.Replace(%s): %w", k, err)
		}
	}
	return nil
}

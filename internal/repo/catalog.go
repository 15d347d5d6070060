// Package repo contains all database access logic for the travel planner.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// With a pool every call acquires a connection and hands it back when the
// row set is closed, so each query is its own scoped acquisition.
// Integration tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// CandidateQuery selects catalog rows of one kind for a destination.
type CandidateQuery struct {
	DestinationID uuid.UUID
	Kind          domain.Kind

	// Categories restricts rows to these category labels. For preference
	// kinds an empty list means the user has no preference and nothing is
	// returned. For events it means no category filter.
	Categories []string

	// MaxPrice bounds the unit price when set.
	MaxPrice *float64

	Order domain.SortOrder
	Limit int

	// From and To bound events.event_at as [From, To). Ignored for other kinds.
	From *time.Time
	To   *time.Time
}

// CatalogRepo is the read side of the catalog: destinations and the seven
// per-kind item tables.
type CatalogRepo interface {
	// FindDestinationByID returns domain.ErrNotFound if no such destination exists.
	FindDestinationByID(ctx context.Context, id uuid.UUID) (domain.Destination, error)

	// FindDestinationByName matches the name case-insensitively.
	// Returns domain.ErrNotFound if nothing matches.
	FindDestinationByName(ctx context.Context, name string) (domain.Destination, error)

	// ListDestinations returns one page of destinations whose name starts
	// with prefix (case-insensitive), ordered by name, plus the total count.
	ListDestinations(ctx context.Context, prefix string, p domain.PaginationParams) ([]domain.Destination, int64, error)

	// Candidates returns matching items ordered by price (events by time),
	// ties broken by id. An empty result is not an error.
	Candidates(ctx context.Context, q CandidateQuery) ([]domain.CatalogItem, error)
}

// pgCatalogRepo is the Postgres implementation of CatalogRepo.
type pgCatalogRepo struct {
	db db
}

// NewCatalogRepo constructs a CatalogRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewCatalogRepo(db db) CatalogRepo {
	return &pgCatalogRepo{db: db}
}

// tableFor maps a kind to its catalog table. The switch is the only source
// of table names interpolated into SQL.
func tableFor(k domain.Kind) (string, error) {
	switch k {
	case domain.KindAccommodation:
		return "lodging", nil
	case domain.KindFood:
		return "meals", nil
	case domain.KindLocalTransport:
		return "local_transport", nil
	case domain.KindDestinationTransport:
		return "destination_transport", nil
	case domain.KindActivity:
		return "activities", nil
	case domain.KindInterest:
		return "interests", nil
	case domain.KindEvent:
		return "events", nil
	}
	return "", fmt.Errorf("%w: unknown catalog kind %q", domain.ErrValidation, k)
}

func (r *pgCatalogRepo) FindDestinationByID(ctx context.Context, id uuid.UUID) (domain.Destination, error) {
	const q = `
		SELECT id, name, country, created_at
		FROM destinations
		WHERE id = @id`

	d, err := scanDestination(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.CatalogRepo.FindDestinationByID: %w", err)
	}
	return d, nil
}

func (r *pgCatalogRepo) FindDestinationByName(ctx context.Context, name string) (domain.Destination, error) {
	const q = `
		SELECT id, name, country, created_at
		FROM destinations
		WHERE lower(name) = lower(@name)`

	d, err := scanDestination(r.db.QueryRow(ctx, q, pgx.NamedArgs{"name": strings.TrimSpace(name)}))
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.CatalogRepo.FindDestinationByName: %w", err)
	}
	return d, nil
}

func (r *pgCatalogRepo) ListDestinations(ctx context.Context, prefix string, p domain.PaginationParams) ([]domain.Destination, int64, error) {
	const q = `
		SELECT id, name, country, created_at, count(*) OVER () AS total
		FROM destinations
		WHERE name ILIKE @prefix || '%'
		ORDER BY name, id
		LIMIT @limit OFFSET @offset`

	args := pgx.NamedArgs{
		"prefix": escapeLike(prefix),
		"limit":  p.Limit,
		"offset": p.Offset(),
	}
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.CatalogRepo.ListDestinations: %w", err)
	}
	defer rows.Close()

	var (
		out   = []domain.Destination{}
		total int64
	)
	for rows.Next() {
		var (
			d  domain.Destination
			id pgtype.UUID
		)
		if err := rows.Scan(&id, &d.Name, &d.Country, &d.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("repo.CatalogRepo.ListDestinations: scan: %w", err)
		}
		d.ID = uuid.UUID(id.Bytes)
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.CatalogRepo.ListDestinations: rows: %w", err)
	}
	return out, total, nil
}

func (r *pgCatalogRepo) Candidates(ctx context.Context, cq CandidateQuery) ([]domain.CatalogItem, error) {
	table, err := tableFor(cq.Kind)
	if err != nil {
		return nil, fmt.Errorf("repo.CatalogRepo.Candidates: %w", err)
	}
	if cq.Kind.IsPreference() && len(cq.Categories) == 0 {
		return []domain.CatalogItem{}, nil
	}

	categories := cq.Categories
	if categories == nil {
		categories = []string{} // a nil slice encodes as NULL, which would match nothing
	}
	args := pgx.NamedArgs{
		"destination_id": cq.DestinationID,
		"categories":     categories,
		"max_price":      cq.MaxPrice,
		"limit":          cq.Limit,
	}

	eventCol := "NULL::timestamptz"
	orderBy := fmt.Sprintf("price %s, id ASC", cq.Order)
	var window string
	if cq.Kind == domain.KindEvent {
		eventCol = "event_at"
		orderBy = "event_at ASC, price ASC, id ASC"
		if cq.From != nil {
			window += " AND event_at >= @from"
			args["from"] = *cq.From
		}
		if cq.To != nil {
			window += " AND event_at < @to"
			args["to"] = *cq.To
		}
	}

	q := fmt.Sprintf(`
		SELECT id, destination_id, category, price, name, description, address, %s
		FROM %s
		WHERE destination_id = @destination_id
		  AND (cardinality(@categories::text[]) = 0 OR category = ANY(@categories::text[]))
		  AND (@max_price::numeric IS NULL OR price <= @max_price::numeric)%s
		ORDER BY %s
		LIMIT @limit`, eventCol, table, window, orderBy)

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.CatalogRepo.Candidates(%s): %w", cq.Kind, err)
	}
	defer rows.Close()

	items := []domain.CatalogItem{}
	for rows.Next() {
		it, err := scanItem(rows, cq.Kind)
		if err != nil {
			return nil, fmt.Errorf("repo.CatalogRepo.Candidates(%s): scan: %w", cq.Kind, err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.CatalogRepo.Candidates(%s): rows: %w", cq.Kind, err)
	}
	return items, nil
}

// scanDestination maps a single row into a domain.Destination.
func scanDestination(s scanner) (domain.Destination, error) {
	var (
		d  domain.Destination
		id pgtype.UUID
	)
	if err := s.Scan(&id, &d.Name, &d.Country, &d.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Destination{}, domain.ErrNotFound
		}
		return domain.Destination{}, err
	}
	d.ID = uuid.UUID(id.Bytes)
	return d, nil
}

// scanItem maps a catalog row into a domain.CatalogItem of kind k.
func scanItem(s scanner, k domain.Kind) (domain.CatalogItem, error) {
	var (
		it      domain.CatalogItem
		id      pgtype.UUID
		destID  pgtype.UUID
		eventAt pgtype.Timestamptz
	)
	err := s.Scan(&id, &destID, &it.Category, &it.Price, &it.Name, &it.Description, &it.Address, &eventAt)
	if err != nil {
		return domain.CatalogItem{}, err
	}
	it.ID = uuid.UUID(id.Bytes)
	it.DestinationID = uuid.UUID(destID.Bytes)
	it.Kind = k
	if eventAt.Valid {
		t := eventAt.Time.UTC()
		it.EventAt = &t
	}
	return it, nil
}

// escapeLike escapes LIKE metacharacters so a user prefix matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(strings.TrimSpace(s))
}

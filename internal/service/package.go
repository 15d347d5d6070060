// Package service contains the business logic for the travel planner.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/planner"
	"github.com/pkordes/travel-planner/backend/internal/repo"
)

// defaultConcurrency bounds the per-request category fan-out when no
// explicit limit is configured.
const defaultConcurrency = 4

// PackageService generates travel packages from a trip request, the user's
// stored preferences and the destination catalog.
type PackageService struct {
	catalog     repo.CatalogRepo
	prefs       repo.PreferenceRepo
	dests       *DestinationService
	policy      planner.Policy
	concurrency int
	log         *slog.Logger
}

// PackageOption configures a PackageService.
type PackageOption func(*PackageService)

// WithConcurrency caps how many category lookups run at once for one request.
// Values below 1 are ignored.
func WithConcurrency(n int) PackageOption {
	return func(s *PackageService) {
		if n >= 1 {
			s.concurrency = n
		}
	}
}

// WithLogger sets the logger used for degraded-category warnings.
func WithLogger(l *slog.Logger) PackageOption {
	return func(s *PackageService) {
		if l != nil {
			s.log = l
		}
	}
}

// NewPackageService constructs a PackageService.
func NewPackageService(
	catalog repo.CatalogRepo,
	prefs repo.PreferenceRepo,
	dests *DestinationService,
	policy planner.Policy,
	opts ...PackageOption,
) *PackageService {
	s := &PackageService{
		catalog:     catalog,
		prefs:       prefs,
		dests:       dests,
		policy:      policy,
		concurrency: defaultConcurrency,
		log:         slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Generate builds a package for the user. Input is validated before any data
// access. An unknown destination aborts with domain.ErrNotFound. A failing
// category lookup is logged and leaves that slot empty.
func (s *PackageService) Generate(ctx context.Context, userID uuid.UUID, req domain.TripRequest) (domain.GeneratedPackage, error) {
	stay, err := validateTripRequest(userID, req)
	if err != nil {
		return domain.GeneratedPackage{}, fmt.Errorf("service.PackageService.Generate: %w", err)
	}

	prefs, err := s.prefs.Get(ctx, userID)
	if err != nil {
		return domain.GeneratedPackage{}, fmt.Errorf("service.PackageService.Generate: preferences: %w", err)
	}

	dest, err := s.dests.Resolve(ctx, req.DestinationName)
	if err != nil {
		return domain.GeneratedPackage{}, fmt.Errorf("service.PackageService.Generate: %w", err)
	}

	party := planner.NewParty(req.Headcount(), stay)
	ceilings := s.policy.Allocate(req.Budget)
	order := s.policy.Order(req.Budget)

	sel := selection{
		dest:     dest,
		prefs:    prefs,
		stay:     stay,
		party:    party,
		ceilings: ceilings,
		order:    order,
	}
	items, err := s.selectItems(ctx, sel)
	if err != nil {
		return domain.GeneratedPackage{}, fmt.Errorf("service.PackageService.Generate: %w", err)
	}

	totals := planner.Aggregate(items, party)
	return domain.GeneratedPackage{
		Destination:            dest.Name,
		Budget:                 req.Budget,
		Adults:                 req.Adults,
		Children:               req.Children,
		DateIn:                 req.DateIn,
		DateOut:                req.DateOut,
		Nights:                 stay.Nights,
		Days:                   stay.Days,
		Items:                  items,
		TotalCost:              totals.Total,
		UserPreferencesApplied: prefs.Applied(),
		Breakdown:              breakdown(items, ceilings, totals),
	}, nil
}

// validateTripRequest rejects bad input and parses the stay.
func validateTripRequest(userID uuid.UUID, req domain.TripRequest) (planner.Stay, error) {
	if userID == uuid.Nil {
		return planner.Stay{}, domain.ErrUnauthenticated
	}
	if strings.TrimSpace(req.DestinationName) == "" {
		return planner.Stay{}, fmt.Errorf("%w: destinationName is required", domain.ErrValidation)
	}
	if math.IsNaN(req.Budget) || math.IsInf(req.Budget, 0) || req.Budget < 0 {
		return planner.Stay{}, fmt.Errorf("%w: budget must be a non-negative number", domain.ErrValidation)
	}
	if req.Adults < 1 {
		return planner.Stay{}, fmt.Errorf("%w: at least one adult is required", domain.ErrValidation)
	}
	if req.Children < 0 {
		return planner.Stay{}, fmt.Errorf("%w: children must not be negative", domain.ErrValidation)
	}
	return planner.NewStay(req.DateIn, req.DateOut)
}

// selection is the per-request input shared by every category lookup.
type selection struct {
	dest     domain.Destination
	prefs    domain.PreferenceSet
	stay     planner.Stay
	party    planner.Party
	ceilings planner.Ceilings
	order    domain.SortOrder
}

// selectItems fans out one lookup per category and fills the slots.
// Each goroutine writes only its own slot.
func (s *PackageService) selectItems(ctx context.Context, sel selection) (domain.PackageItems, error) {
	items := domain.NewPackageItems()

	var g errgroup.Group
	g.SetLimit(s.concurrency)

	for _, k := range domain.AllKinds {
		ceiling := sel.ceilings.For(k)
		if ceiling <= 0 {
			continue
		}
		if k.IsPreference() && len(sel.prefs.Options(k)) == 0 {
			continue
		}
		g.Go(func() error {
			cands, err := s.lookup(ctx, k, ceiling, sel)
			if err != nil {
				s.log.WarnContext(ctx, "category lookup failed; slot left empty",
					"kind", string(k),
					"destination_id", sel.dest.ID.String(),
					"error", err,
				)
				return nil
			}
			s.fill(&items, k, cands, ceiling, sel)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return domain.PackageItems{}, err
	}
	return items, nil
}

// lookup fetches the candidates for kind k. High-tier lodging asks for the
// priciest row within the tolerated ceiling and, only when none exists, for
// the priciest row overall.
func (s *PackageService) lookup(ctx context.Context, k domain.Kind, ceiling float64, sel selection) ([]domain.CatalogItem, error) {
	q := s.candidateQuery(k, ceiling, sel)
	if !highTierLodging(k, sel.order) {
		return s.catalog.Candidates(ctx, q)
	}

	cands, err := s.catalog.Candidates(ctx, q)
	if err != nil || len(cands) > 0 {
		return cands, err
	}
	q.MaxPrice = nil
	return s.catalog.Candidates(ctx, q)
}

// candidateQuery builds the catalog query for kind k.
func (s *PackageService) candidateQuery(k domain.Kind, ceiling float64, sel selection) repo.CandidateQuery {
	q := repo.CandidateQuery{
		DestinationID: sel.dest.ID,
		Kind:          k,
		Order:         sel.order,
		Limit:         s.policy.CandidateLimit,
	}
	if k.IsPreference() {
		q.Categories = sel.prefs.Options(k)
	}

	bound := ceiling
	if highTierLodging(k, sel.order) {
		bound = planner.ToleratedCeiling(ceiling, s.policy.AccommodationTolerance)
		q.Limit = 1
	}
	maxPrice := planner.MaxUnitPrice(k, bound, sel.party)
	q.MaxPrice = &maxPrice

	switch k {
	case domain.KindInterest:
		q.Order = domain.OrderAscending
	case domain.KindEvent:
		from, to := sel.stay.Window()
		q.From, q.To = &from, &to
		q.Order = domain.OrderAscending
	}
	return q
}

func highTierLodging(k domain.Kind, order domain.SortOrder) bool {
	return k == domain.KindAccommodation && order == domain.OrderDescending
}

// fill runs the selector for kind k and stores the result in its slot.
func (s *PackageService) fill(items *domain.PackageItems, k domain.Kind, cands []domain.CatalogItem, ceiling float64, sel selection) {
	p := s.policy
	switch k {
	case domain.KindAccommodation:
		items.Accommodation = planner.PickAccommodation(cands, ceiling, p.AccommodationTolerance, sel.order, sel.party)
	case domain.KindDestinationTransport:
		items.DestinationTransport = planner.PickFirstFit(cands, k, ceiling, sel.order, sel.party)
	case domain.KindLocalTransport:
		items.LocalTransport = planner.PickFirstFit(cands, k, ceiling, sel.order, sel.party)
	case domain.KindFood:
		items.Food = planner.FillMeals(cands, ceiling, sel.stay.Days*p.MealsPerDay, sel.order, sel.party)
	case domain.KindActivity:
		items.Activities = planner.FillWithinPool(cands, k, ceiling, sel.order, sel.party)
	case domain.KindInterest:
		items.Interests = planner.TopN(cands, p.TopN)
	case domain.KindEvent:
		items.Events = planner.EventsWithin(cands, sel.stay, p.TopN)
	}
}

// breakdown reports ceiling, cost and item count for every kind.
func breakdown(items domain.PackageItems, c planner.Ceilings, t planner.Totals) map[domain.Kind]domain.CategoryBreakdown {
	counts := map[domain.Kind]int{
		domain.KindFood:     len(items.Food),
		domain.KindActivity: len(items.Activities),
		domain.KindInterest: len(items.Interests),
		domain.KindEvent:    len(items.Events),
	}
	if items.Accommodation != nil {
		counts[domain.KindAccommodation] = 1
	}
	if items.DestinationTransport != nil {
		counts[domain.KindDestinationTransport] = 1
	}
	if items.LocalTransport != nil {
		counts[domain.KindLocalTransport] = 1
	}

	out := make(map[domain.Kind]domain.CategoryBreakdown, len(domain.AllKinds))
	for _, k := range domain.AllKinds {
		out[k] = domain.CategoryBreakdown{
			Ceiling: math.Round(c.For(k)*100) / 100,
			Cost:    t.ByKind[k],
			Items:   counts[k],
		}
	}
	return out
}

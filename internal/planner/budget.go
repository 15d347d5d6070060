package planner

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// Ceilings are the per-category spending limits derived from one budget.
type Ceilings struct {
	Accommodation        float64
	DestinationTransport float64
	LocalTransport       float64
	// FoodActivities is the combined pool; Food and Activities are its shares.
	FoodActivities float64
	Food           float64
	Activities     float64
	Interests      float64
	Events         float64
}

// Allocate splits budget into category ceilings using the policy weights.
// Shares are computed in decimal and cut to whole cents, so an item costing
// exactly its share fits and no ceiling exceeds weight × budget.
// A negative or NaN budget allocates nothing.
func (p Policy) Allocate(budget float64) Ceilings {
	if math.IsNaN(budget) || math.IsInf(budget, 0) || budget < 0 {
		budget = 0
	}
	b := decimal.NewFromFloat(budget)
	share := func(weight float64, of decimal.Decimal) decimal.Decimal {
		return decimal.NewFromFloat(weight).Mul(of).Truncate(2)
	}

	w := p.Weights
	pool := share(w.FoodActivities, b)
	return Ceilings{
		Accommodation:        share(w.Accommodation, b).InexactFloat64(),
		DestinationTransport: share(w.DestinationTransport, b).InexactFloat64(),
		LocalTransport:       share(w.LocalTransport, b).InexactFloat64(),
		FoodActivities:       pool.InexactFloat64(),
		Food:                 share(p.FoodShare, pool).InexactFloat64(),
		Activities:           share(p.ActivityShare, pool).InexactFloat64(),
		Interests:            share(w.Interests, b).InexactFloat64(),
		Events:               share(w.Events, b).InexactFloat64(),
	}
}

// For returns the ceiling that governs selection for kind k.
func (c Ceilings) For(k domain.Kind) float64 {
	switch k {
	case domain.KindAccommodation:
		return c.Accommodation
	case domain.KindDestinationTransport:
		return c.DestinationTransport
	case domain.KindLocalTransport:
		return c.LocalTransport
	case domain.KindFood:
		return c.Food
	case domain.KindActivity:
		return c.Activities
	case domain.KindInterest:
		return c.Interests
	case domain.KindEvent:
		return c.Events
	}
	return 0
}

// Order picks the candidate ordering for a budget: cheapest first at or
// below the high-budget threshold, priciest first above it.
func (p Policy) Order(budget float64) domain.SortOrder {
	if budget > p.HighBudgetThreshold {
		return domain.OrderDescending
	}
	return domain.OrderAscending
}

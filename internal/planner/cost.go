package planner

import (
	"github.com/shopspring/decimal"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// Party is the trip shape the cost formulas depend on.
type Party struct {
	Headcount int
	Nights    int
	Days      int
}

// NewParty combines a headcount with a parsed stay.
func NewParty(headcount int, s Stay) Party {
	return Party{Headcount: headcount, Nights: s.Nights, Days: s.Days}
}

// multiplier is the number of units a unit price is charged for:
//
//	accommodation          nights
//	destination transport  headcount × 2 (round trip)
//	local transport        days
//	everything else        headcount
func multiplier(k domain.Kind, p Party) int64 {
	var m int
	switch k {
	case domain.KindAccommodation:
		m = p.Nights
	case domain.KindDestinationTransport:
		m = p.Headcount * 2
	case domain.KindLocalTransport:
		m = p.Days
	default:
		m = p.Headcount
	}
	if m < 0 {
		return 0
	}
	return int64(m)
}

// ItemCost is the real cost of one item of kind k for the party.
// Negative prices count as zero.
func ItemCost(k domain.Kind, price float64, p Party) decimal.Decimal {
	if price <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(multiplier(k, p)))
}

// MaxUnitPrice converts a category ceiling into the highest unit price whose
// item cost still fits. When the multiplier is zero any price fits, so the
// ceiling itself is returned as a bound.
func MaxUnitPrice(k domain.Kind, ceiling float64, p Party) float64 {
	if ceiling <= 0 {
		return 0
	}
	m := multiplier(k, p)
	if m == 0 {
		return ceiling
	}
	return decimal.NewFromFloat(ceiling).Div(decimal.NewFromInt(m)).InexactFloat64()
}

// ToleratedCeiling is ceiling × tolerance in cents, the high-tier lodging limit.
func ToleratedCeiling(ceiling, tolerance float64) float64 {
	return decimal.NewFromFloat(ceiling).Mul(decimal.NewFromFloat(tolerance)).Truncate(2).InexactFloat64()
}

// Totals is the aggregated cost of a package.
type Totals struct {
	Total  float64
	ByKind map[domain.Kind]float64
}

// Aggregate applies the per-kind formulas to every filled slot and sums
// them. Each category and the total are rounded to 2 decimal places.
// Empty slots contribute 0.
func Aggregate(items domain.PackageItems, p Party) Totals {
	sums := map[domain.Kind]decimal.Decimal{}
	add := func(k domain.Kind, it *domain.CatalogItem) {
		if it == nil {
			return
		}
		sums[k] = sums[k].Add(ItemCost(k, it.Price, p))
	}

	add(domain.KindAccommodation, items.Accommodation)
	add(domain.KindDestinationTransport, items.DestinationTransport)
	add(domain.KindLocalTransport, items.LocalTransport)
	for i := range items.Food {
		add(domain.KindFood, &items.Food[i])
	}
	for i := range items.Activities {
		add(domain.KindActivity, &items.Activities[i])
	}
	for i := range items.Interests {
		add(domain.KindInterest, &items.Interests[i])
	}
	for i := range items.Events {
		add(domain.KindEvent, &items.Events[i])
	}

	total := decimal.Zero
	out := Totals{ByKind: make(map[domain.Kind]float64, len(domain.AllKinds))}
	for _, k := range domain.AllKinds {
		v := sums[k].Round(2)
		out.ByKind[k] = v.InexactFloat64()
		total = total.Add(sums[k])
	}
	out.Total = total.Round(2).InexactFloat64()
	return out
}

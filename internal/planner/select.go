package planner

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// SortCandidates returns a copy of items ordered by price in the given
// direction, ties broken by ascending ID.
func SortCandidates(items []domain.CatalogItem, order domain.SortOrder) []domain.CatalogItem {
	out := append([]domain.CatalogItem(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Price != out[j].Price {
			if order == domain.OrderDescending {
				return out[i].Price > out[j].Price
			}
			return out[i].Price < out[j].Price
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

// PickFirstFit returns the first candidate, in the given order, whose item
// cost fits within ceiling. Returns nil when nothing fits.
func PickFirstFit(cands []domain.CatalogItem, k domain.Kind, ceiling float64, order domain.SortOrder, p Party) *domain.CatalogItem {
	limit := decimal.NewFromFloat(ceiling)
	for _, c := range SortCandidates(cands, order) {
		if ItemCost(k, c.Price, p).LessThanOrEqual(limit) {
			return &c
		}
	}
	return nil
}

// PickAccommodation chooses the lodging slot.
// In ascending order it is the cheapest candidate that fits the ceiling.
// In descending order it is the priciest candidate whose cost fits within
// ceiling × tolerance, falling back to the single most expensive one.
func PickAccommodation(cands []domain.CatalogItem, ceiling, tolerance float64, order domain.SortOrder, p Party) *domain.CatalogItem {
	if len(cands) == 0 {
		return nil
	}
	if order == domain.OrderAscending {
		return PickFirstFit(cands, domain.KindAccommodation, ceiling, order, p)
	}

	sorted := SortCandidates(cands, domain.OrderDescending)
	limit := decimal.NewFromFloat(ToleratedCeiling(ceiling, tolerance))
	for _, c := range sorted {
		if ItemCost(domain.KindAccommodation, c.Price, p).LessThanOrEqual(limit) {
			return &c
		}
	}
	top := sorted[0]
	return &top
}

// FillMeals cycles through the ordered candidates adding meals while the
// running food cost stays within pool, until target meals are chosen.
// A full pass that adds nothing ends the loop, so unaffordable lists
// terminate early with fewer than target meals.
func FillMeals(cands []domain.CatalogItem, pool float64, target int, order domain.SortOrder, p Party) []domain.CatalogItem {
	out := []domain.CatalogItem{}
	if target <= 0 || len(cands) == 0 {
		return out
	}

	sorted := SortCandidates(cands, order)
	limit := decimal.NewFromFloat(pool)
	running := decimal.Zero
	for len(out) < target {
		added := false
		for _, c := range sorted {
			if len(out) >= target {
				break
			}
			cost := ItemCost(domain.KindFood, c.Price, p)
			if running.Add(cost).LessThanOrEqual(limit) {
				out = append(out, c)
				running = running.Add(cost)
				added = true
			}
		}
		if !added {
			break
		}
	}
	return out
}

// FillWithinPool walks the ordered candidates once and keeps every item
// whose cost still fits in what is left of pool.
func FillWithinPool(cands []domain.CatalogItem, k domain.Kind, pool float64, order domain.SortOrder, p Party) []domain.CatalogItem {
	out := []domain.CatalogItem{}
	limit := decimal.NewFromFloat(pool)
	running := decimal.Zero
	for _, c := range SortCandidates(cands, order) {
		cost := ItemCost(k, c.Price, p)
		if running.Add(cost).LessThanOrEqual(limit) {
			out = append(out, c)
			running = running.Add(cost)
		}
	}
	return out
}

// TopN returns the n cheapest candidates.
func TopN(cands []domain.CatalogItem, n int) []domain.CatalogItem {
	sorted := SortCandidates(cands, domain.OrderAscending)
	if n < 0 {
		n = 0
	}
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	if sorted == nil {
		return []domain.CatalogItem{}
	}
	return sorted
}

// EventsWithin keeps events dated inside the stay, orders them by start
// time (then price, then ID) and returns at most n.
func EventsWithin(cands []domain.CatalogItem, s Stay, n int) []domain.CatalogItem {
	out := []domain.CatalogItem{}
	for _, c := range cands {
		if c.EventAt != nil && s.Contains(*c.EventAt) {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.EventAt.Equal(*b.EventAt) {
			return a.EventAt.Before(*b.EventAt)
		}
		if a.Price != b.Price {
			return a.Price < b.Price
		}
		return a.ID.String() < b.ID.String()
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

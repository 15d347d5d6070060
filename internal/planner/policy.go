// Package planner holds the package-generation engine: stay duration,
// budget allocation, item selection and cost aggregation.
// Everything here is a pure function of its inputs. Database access and
// orchestration live in the service package.
package planner

import (
	"fmt"
	"os"

	"github.com/ghodss/yaml"
)

// Weights are the shares of the total budget given to each category pool.
type Weights struct {
	Accommodation        float64 `json:"accommodation"`
	DestinationTransport float64 `json:"destination_transport"`
	LocalTransport       float64 `json:"local_transport"`
	// FoodActivities is the combined pool later split by FoodShare and ActivityShare.
	FoodActivities float64 `json:"food_activities"`
	Interests      float64 `json:"interests"`
	Events         float64 `json:"events"`
}

// Policy is the full set of tunables for package generation.
type Policy struct {
	Weights Weights `json:"weights"`

	// FoodShare and ActivityShare split Weights.FoodActivities between meals
	// and activities. Their sum must not exceed 1.
	FoodShare     float64 `json:"food_share"`
	ActivityShare float64 `json:"activity_share"`

	// HighBudgetThreshold separates the two budget tiers. Budgets at or below
	// it favour the cheapest options, budgets above it the priciest that fit.
	HighBudgetThreshold float64 `json:"high_budget_threshold"`

	// AccommodationTolerance is the overrun factor allowed for lodging in the
	// high tier (1.2 allows 20% over the accommodation ceiling).
	AccommodationTolerance float64 `json:"accommodation_tolerance"`

	MealsPerDay    int `json:"meals_per_day"`
	TopN           int `json:"top_n"`
	CandidateLimit int `json:"candidate_limit"`
}

// DefaultPolicy returns the weights and thresholds the planner ships with.
func DefaultPolicy() Policy {
	return Policy{
		Weights: Weights{
			Accommodation:        0.35,
			DestinationTransport: 0.20,
			LocalTransport:       0.05,
			FoodActivities:       0.40,
			Interests:            0.05,
			Events:               0.05,
		},
		FoodShare:              0.60,
		ActivityShare:          0.40,
		HighBudgetThreshold:    2000,
		AccommodationTolerance: 1.2,
		MealsPerDay:            3,
		TopN:                   3,
		CandidateLimit:         50,
	}
}

// LoadPolicy reads a YAML (or JSON) policy file on top of DefaultPolicy, so
// the file only needs to name the values it overrides.
func LoadPolicy(path string) (Policy, error) {
	p := DefaultPolicy()
	b, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("planner.LoadPolicy: read: %w", err)
	}
	if err := yaml.Unmarshal(b, &p); err != nil {
		return p, fmt.Errorf("planner.LoadPolicy: unmarshal: %w", err)
	}
	if err := p.Validate(); err != nil {
		return p, fmt.Errorf("planner.LoadPolicy: %w", err)
	}
	return p, nil
}

// Validate rejects policies that would produce negative ceilings or loops
// with no work to do.
func (p Policy) Validate() error {
	w := p.Weights
	for name, v := range map[string]float64{
		"accommodation":         w.Accommodation,
		"destination_transport": w.DestinationTransport,
		"local_transport":       w.LocalTransport,
		"food_activities":       w.FoodActivities,
		"interests":             w.Interests,
		"events":                w.Events,
	} {
		if v < 0 {
			return fmt.Errorf("weight %s must not be negative", name)
		}
	}
	if p.FoodShare < 0 || p.ActivityShare < 0 || p.FoodShare+p.ActivityShare > 1 {
		return fmt.Errorf("food_share and activity_share must be non-negative and sum to at most 1")
	}
	if p.AccommodationTolerance < 1 {
		return fmt.Errorf("accommodation_tolerance must be at least 1")
	}
	if p.MealsPerDay < 1 || p.TopN < 1 || p.CandidateLimit < 1 {
		return fmt.Errorf("meals_per_day, top_n and candidate_limit must be positive")
	}
	return nil
}

// WeightSum is the total share of the budget the policy can hand out.
func (p Policy) WeightSum() float64 {
	w := p.Weights
	return w.Accommodation + w.DestinationTransport + w.LocalTransport + w.FoodActivities + w.Interests + w.Events
}

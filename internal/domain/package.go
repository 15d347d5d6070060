package domain

import (
	"time"

	"github.com/google/uuid"
)

// PackageItems holds the selected catalog rows per slot.
// Single-valued slots are nil when nothing was selected; multi-valued slots
// are empty (never nil) so they serialize as [].
type PackageItems struct {
	Accommodation        *CatalogItem  `json:"accommodation"`
	Food                 []CatalogItem `json:"food"`
	LocalTransport       *CatalogItem  `json:"localTransport"`
	DestinationTransport *CatalogItem  `json:"destinationTransport"`
	Activities           []CatalogItem `json:"activities"`
	Interests            []CatalogItem `json:"interests"`
	Events               []CatalogItem `json:"events"`
}

// NewPackageItems returns PackageItems with all multi-valued slots initialised.
func NewPackageItems() PackageItems {
	return PackageItems{
		Food:       []CatalogItem{},
		Activities: []CatalogItem{},
		Interests:  []CatalogItem{},
		Events:     []CatalogItem{},
	}
}

// CategoryBreakdown reports how much a category was allowed to spend and
// how much its selection actually costs.
type CategoryBreakdown struct {
	Ceiling float64 `json:"ceiling"`
	Cost    float64 `json:"cost"`
	Items   int     `json:"items"`
}

// GeneratedPackage is the result of one generation request. It is built
// fresh per request and is not persisted by the planner itself.
type GeneratedPackage struct {
	Destination            string                     `json:"destination"`
	Budget                 float64                    `json:"budget"`
	Adults                 int                        `json:"adults"`
	Children               int                        `json:"children"`
	DateIn                 string                     `json:"dateIn"`
	DateOut                string                     `json:"dateOut"`
	Nights                 int                        `json:"nights"`
	Days                   int                        `json:"days"`
	Items                  PackageItems               `json:"items"`
	TotalCost              float64                    `json:"totalCost"`
	UserPreferencesApplied map[string][]string        `json:"userPreferencesApplied"`
	Breakdown              map[Kind]CategoryBreakdown `json:"breakdown"`
}

// PackageRecord is a generated package saved to a user's history.
type PackageRecord struct {
	ID        uuid.UUID        `json:"id"`
	UserID    uuid.UUID        `json:"user_id"`
	Package   GeneratedPackage `json:"package"`
	CreatedAt time.Time        `json:"created_at"`
}

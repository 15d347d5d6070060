package domain

import (
	"time"

	"github.com/google/uuid"
)

// Destination is a city or region the catalog has items for.
// Callers address it either by ID or by its unique Name.
type Destination struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Country   string    `json:"country,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CatalogItem is one bookable row of any kind: a lodging, a meal, a local or
// destination transport option, an activity, an interest or an event.
// Price is the unit price; how it turns into a cost depends on Kind.
// EventAt is only set for events.
type CatalogItem struct {
	ID            uuid.UUID  `json:"id"`
	DestinationID uuid.UUID  `json:"destination_id"`
	Kind          Kind       `json:"kind"`
	Category      string     `json:"category"`
	Price         float64    `json:"price"`
	Name          string     `json:"name"`
	Description   string     `json:"description,omitempty"`
	Address       string     `json:"address,omitempty"`
	EventAt       *time.Time `json:"event_at,omitempty"`
}

// SortOrder is the price ordering applied to candidate lists.
// Ties on price are always broken by ID so results are deterministic.
type SortOrder int

const (
	OrderAscending SortOrder = iota
	OrderDescending
)

// String returns the SQL keyword for the order.
func (o SortOrder) String() string {
	if o == OrderDescending {
		return "DESC"
	}
	return "ASC"
}

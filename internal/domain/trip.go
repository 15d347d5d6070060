// Package domain contains the core data types for the travel planner.
// This package has no dependencies on repo, service or handler and is
// imported by every other internal package.
package domain

// TripRequest is what a client submits to get a package generated.
// DateIn and DateOut are kept as the raw strings the client sent; they may
// be ISO-8601 or DD/MM/YY and are parsed by the planner.
type TripRequest struct {
	DestinationName string  `json:"destinationName"`
	Budget          float64 `json:"budget"`
	Adults          int     `json:"adults"`
	Children        int     `json:"children"`
	DateIn          string  `json:"dateIn"`
	DateOut         string  `json:"dateOut"`
}

// Headcount is adults plus children.
func (r TripRequest) Headcount() int {
	return r.Adults + r.Children
}

package domain

import (
	"fmt"
	"strings"
)

// Kind identifies one catalog category. The set is closed: every catalog
// table, preference field and package slot maps to exactly one Kind.
type Kind string

const (
	KindAccommodation        Kind = "accommodation"
	KindFood                 Kind = "food"
	KindLocalTransport       Kind = "local_transport"
	KindDestinationTransport Kind = "destination_transport"
	KindActivity             Kind = "activity"
	KindInterest             Kind = "interests"
	KindEvent                Kind = "event"
)

// PreferenceKinds lists the six kinds a user can hold preferences for,
// in the order the package is assembled.
var PreferenceKinds = []Kind{
	KindAccommodation,
	KindDestinationTransport,
	KindLocalTransport,
	KindFood,
	KindActivity,
	KindInterest,
}

// AllKinds is PreferenceKinds plus events.
var AllKinds = append(append([]Kind{}, PreferenceKinds...), KindEvent)

// IsPreference reports whether users can store preferences for k.
// Events are cross-cutting and never preference-gated.
func (k Kind) IsPreference() bool {
	for _, p := range PreferenceKinds {
		if p == k {
			return true
		}
	}
	return false
}

// ParsePreferenceKind maps a preference field name to its Kind.
// Returns ErrValidation for anything outside the six preference fields.
func ParsePreferenceKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.IsPreference() {
		return "", fmt.Errorf("%w: unknown preference category %q", ErrValidation, s)
	}
	return k, nil
}

package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database (e.g. an unknown destination name).
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing destination, negative budget, malformed dates).
// It is always raised before any data access.
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrUnauthenticated is returned when a request carries no valid user identity.
// Handlers should map this to HTTP 401.
var ErrUnauthenticated = errors.New("unauthenticated")

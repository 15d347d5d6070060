package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// TokenVerifier turns a bearer token into the user it was issued for.
// *auth.Manager satisfies it.
type TokenVerifier interface {
	Parse(token string) (uuid.UUID, error)
}

type userIDKey struct{}

// WithUserID returns a copy of ctx carrying the authenticated user ID.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

// UserIDFromContext returns the user ID stored by the auth middleware.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey{}).(uuid.UUID)
	return id, ok && id != uuid.Nil
}

// NewAuthHandler returns a middleware that requires an
// "Authorization: Bearer <token>" header and stores the verified user ID in
// the request context. Missing or invalid credentials get 401.
func NewAuthHandler(v TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			parts := strings.Fields(r.Header.Get("Authorization"))
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				w.Header().Set("WWW-Authenticate", `Bearer realm="travel-planner"`)
				writeError(w, http.StatusUnauthorized, "unauthenticated", "missing or malformed bearer token")
				return
			}

			userID, err := v.Parse(parts[1])
			if err != nil {
				w.Header().Set("WWW-Authenticate", `Bearer realm="travel-planner", error="invalid_token"`)
				writeError(w, http.StatusUnauthorized, "unauthenticated", "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

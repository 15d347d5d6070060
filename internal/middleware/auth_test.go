package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/backend/internal/middleware"
)

// stubVerifier accepts exactly one token.
type stubVerifier struct {
	token string
	user  uuid.UUID
}

func (s stubVerifier) Parse(token string) (uuid.UUID, error) {
	if token != s.token {
		return uuid.Nil, errors.New("bad token")
	}
	return s.user, nil
}

// compile-time check: stubVerifier must satisfy middleware.TokenVerifier.
var _ middleware.TokenVerifier = stubVerifier{}

func TestAuthHandler_ValidToken_StoresUser(t *testing.T) {
	user := uuid.New()
	var seen uuid.UUID
	h := middleware.NewAuthHandler(stubVerifier{token: "good", user: user})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := middleware.UserIDFromContext(r.Context())
			require.True(t, ok)
			seen = id
			w.WriteHeader(http.StatusOK)
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/preferences", nil)
	req.Header.Set("Authorization", "bearer good")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, user, seen)
}

func TestAuthHandler_Rejects(t *testing.T) {
	h := middleware.NewAuthHandler(stubVerifier{token: "good", user: uuid.New()})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run without a valid token")
		}),
	)

	for name, header := range map[string]string{
		"missing":      "",
		"wrong scheme": "Basic good",
		"no token":     "Bearer",
		"extra parts":  "Bearer good extra",
		"bad token":    "Bearer nope",
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/preferences", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.NotEmpty(t, rec.Header().Get("WWW-Authenticate"))
			assert.Contains(t, rec.Body.String(), `"code":"unauthenticated"`)
		})
	}
}

func TestUserIDFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := middleware.UserIDFromContext(req.Context())
	assert.False(t, ok)

	_, ok = middleware.UserIDFromContext(middleware.WithUserID(req.Context(), uuid.Nil))
	assert.False(t, ok, "the nil UUID is not an identity")
}

package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsm-gustavo/users-graphql/internal/db"
)

func claimsProbe(out **db.Claims) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims, ok := ClaimsFromContext(r.Context()); ok {
			*out = claims
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddlewareValidToken(t *testing.T) {
	s := newTestService(t)
	tok, err := s.Issue("user-123", "a@b.com")
	require.NoError(t, err)

	var got *db.Claims
	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	res := httptest.NewRecorder()

	Middleware(s)(claimsProbe(&got)).ServeHTTP(res, req)

	require.NotNil(t, got)
	assert.Equal(t, "user-123", got.UserID)
	assert.Equal(t, "a@b.com", got.Email)
}

func TestMiddlewareMissingHeaderIsAnonymous(t *testing.T) {
	s := newTestService(t)

	var got *db.Claims
	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	res := httptest.NewRecorder()

	Middleware(s)(claimsProbe(&got)).ServeHTTP(res, req)

	assert.Nil(t, got)
	assert.Equal(t, http.StatusOK, res.Code)
}

func TestMiddlewareInvalidTokenIsAnonymous(t *testing.T) {
	s := newTestService(t)

	var got *db.Claims
	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	res := httptest.NewRecorder()

	Middleware(s)(claimsProbe(&got)).ServeHTTP(res, req)

	assert.Nil(t, got)
	assert.Equal(t, http.StatusOK, res.Code)
}

package jwtmiddleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	security "github.com/linemk/travel-insurance/internal/jwt-new"
	"github.com/linemk/travel-insurance/internal/jwt-new/jwtmiddleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "testsecret"

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sub, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "subject not found", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(sub))
	})
}

func serve(t *testing.T, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	handler := jwtmiddleware.New(testSecret)(okHandler())
	req := httptest.NewRequest(http.MethodPost, "/offers", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestMiddleware_MissingAuthorization(t *testing.T) {
	rr := serve(t, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "missing token"))
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
}

func TestMiddleware_InvalidAuthorizationFormat(t *testing.T) {
	rr := serve(t, "InvalidFormat")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "invalid token format"))
}

func TestMiddleware_InvalidToken(t *testing.T) {
	rr := serve(t, "Bearer invalid.token.value")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "invalid token"))
}

func TestMiddleware_WrongSecret(t *testing.T) {
	token, err := security.NewToken("ops", time.Hour, "another-secret")
	require.NoError(t, err)

	rr := serve(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestMiddleware_ExpiredToken(t *testing.T) {
	token, err := security.NewToken("ops", -time.Minute, testSecret)
	require.NoError(t, err)

	rr := serve(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestMiddleware_NotAdmin(t *testing.T) {
	claims := jwt.MapClaims{"sub": "guest", "role": "viewer"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	rr := serve(t, "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestMiddleware_ValidToken(t *testing.T) {
	token, err := security.NewToken("ops", time.Hour, testSecret)
	require.NoError(t, err)

	rr := serve(t, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ops", rr.Body.String())
}

func TestNewToken_EmptySecret(t *testing.T) {
	_, err := security.NewToken("ops", time.Hour, "")
	assert.ErrorIs(t, err, security.ErrEmptySecret)
}

func TestNew_PanicsWithoutSecret(t *testing.T) {
	assert.Panics(t, func() { jwtmiddleware.New("") })
}

func TestFromContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), jwtmiddleware.SubjectKey, "ops")
	sub, ok := jwtmiddleware.FromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "ops", sub)
}

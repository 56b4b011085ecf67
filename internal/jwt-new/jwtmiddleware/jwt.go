package jwtmiddleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	security "github.com/linemk/travel-insurance/internal/jwt-new"
)

type contextKey string

const SubjectKey contextKey = "subject"

// New создаёт middleware для проверки admin-токена.
func New(secret string) func(http.Handler) http.Handler {
	if secret == "" {
		panic("jwt secret is not set")
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Формат заголовка: "Bearer <token>"
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeDetail(w, http.StatusUnauthorized, "missing token")
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				writeDetail(w, http.StatusUnauthorized, "invalid token format")
				return
			}

			token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errors.New("unexpected signing method")
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				writeDetail(w, http.StatusUnauthorized, "invalid token")
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				writeDetail(w, http.StatusUnauthorized, "invalid token claims")
				return
			}
			if role, _ := claims["role"].(string); role != security.RoleAdmin {
				writeDetail(w, http.StatusForbidden, "forbidden")
				return
			}
			sub, ok := claims["sub"].(string)
			if !ok || sub == "" {
				writeDetail(w, http.StatusUnauthorized, "invalid token claims: sub not found")
				return
			}

			ctx := context.WithValue(r.Context(), SubjectKey, sub)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// writeDetail отвечает в том же формате, что и остальные ошибки API
func writeDetail(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"detail":"` + detail + `"}`))
}

// FromContext извлекает subject из контекста.
func FromContext(ctx context.Context) (string, bool) {
	sub, ok := ctx.Value(SubjectKey).(string)
	return sub, ok
}

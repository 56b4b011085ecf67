package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// RoleAdmin - роль, которой разрешено изменять предложения
const RoleAdmin = "admin"

var ErrEmptySecret = errors.New("jwt secret is empty")

// NewToken генерирует JWT-токен администратора с заданным временем жизни.
// У каждого токена свой jti.
func NewToken(subject string, ttl time.Duration, secret string) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": RoleAdmin,
		"exp":  now.Add(ttl).Unix(),
		"iat":  now.Unix(),
		"jti":  uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

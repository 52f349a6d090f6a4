package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/LeonardoCto/myeconomyback/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL matches the 21600s validity window of issued access tokens.
const DefaultTTL = 21600 * time.Second

// Manager mints and verifies the stateless access tokens that carry a user's
// email. There is no server-side revocation; a token is valid until it expires.
type Manager struct {
	key []byte
	ttl time.Duration
}

func NewManager(key []byte) *Manager {
	return &Manager{key: key, ttl: DefaultTTL}
}

// Issue signs a token for an already-verified email.
func (m *Manager) Issue(email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(m.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(m.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the embedded email.
// Any failure collapses to domain.ErrTokenInvalid.
func (m *Manager) Verify(raw string) (string, error) {
	t, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.key, nil
	})
	if err != nil || !t.Valid {
		return "", domain.ErrTokenInvalid
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return "", domain.ErrTokenInvalid
	}

	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", domain.ErrTokenInvalid
	}
	return email, nil
}

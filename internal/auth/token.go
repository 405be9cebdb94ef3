package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sunbonsys/backend/internal/models"
)

// ErrInvalidToken covers every verification failure. Tampered, expired and
// mis-signed tokens are deliberately indistinguishable to callers.
var ErrInvalidToken = errors.New("invalid token")

// Claims represents the claims carried by an admin token
type Claims struct {
	AccountID int64  `json:"account_id"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies signed admin tokens
type TokenManager struct {
	secretKey []byte
	lifetime  time.Duration
}

// NewTokenManager creates a TokenManager. An empty secret is refused so the
// server can never start issuing forgeable tokens.
func NewTokenManager(secret string, lifetime time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("token signing secret is required")
	}
	if lifetime == 0 {
		lifetime = 24 * time.Hour
	}
	return &TokenManager{
		secretKey: []byte(secret),
		lifetime:  lifetime,
	}, nil
}

// Issue creates a new signed token for an admin account
func (tm *TokenManager) Issue(account *models.AdminAccount) (string, error) {
	now := time.Now()
	claims := Claims{
		AccountID: account.ID,
		Email:     account.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.lifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secretKey)
}

// Verify validates a token and returns its claims. Any failure, including
// expiry, comes back as ErrInvalidToken.
func (tm *TokenManager) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return tm.secretKey, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

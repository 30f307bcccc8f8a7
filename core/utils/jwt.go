package utils

import (
	"errors"
	"fmt"
	"restaurant-directory/core/config"
	"restaurant-directory/core/constants"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

type TokenClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
	Scope  string    `json:"scope"`
	jwt.RegisteredClaims
}

func (c *TokenClaims) IsAdmin() bool {
	return c != nil && c.Role == constants.RoleAdmin
}

// Remaining is the time left before the token expires.
func (c *TokenClaims) Remaining() time.Duration {
	if c == nil || c.ExpiresAt == nil {
		return 0
	}
	return time.Until(c.ExpiresAt.Time)
}

func tokenSettings(scope string) ([]byte, time.Duration, error) {
	cfg, ok := config.GetSafe()
	if !ok || cfg.JWT.Secret == "" {
		return nil, 0, errors.New("jwt secret is not configured")
	}
	ttl := cfg.JWT.AccessTTL
	if scope == constants.ScopeTokenRefresh {
		ttl = cfg.JWT.RefreshTTL
	}
	if ttl == 0 {
		ttl = time.Hour
	}
	return []byte(cfg.JWT.Secret), ttl, nil
}

func GenerateToken(userID uuid.UUID, email, role, scope string) (string, error) {
	secret, ttl, err := tokenSettings(scope)
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := TokenClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
		Scope:  scope,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        GenerateRandomString(16),
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ValidateAndParseToken verifies the HS256 signature and expiry. Expired
// tokens wrap jwt.ErrTokenExpired.
func ValidateAndParseToken(tokenString string) (*TokenClaims, error) {
	secret, _, err := tokenSettings(constants.ScopeTokenAccess)
	if err != nil {
		return nil, err
	}

	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == uuid.Nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

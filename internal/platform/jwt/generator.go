// Package jwtmw issues HS256 access tokens and validates them in gin middleware.
package jwtmw

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// EnvKeyJWTSecret names the environment variable holding the HMAC secret.
	EnvKeyJWTSecret = "JWT_SECRET"
	// EnvKeyAccessTTL names the environment variable holding the access token lifetime.
	EnvKeyAccessTTL = "JWT_ACCESS_TTL"

	defaultAccessTTL = 15 * time.Minute
)

// Generator defines the interface for JWT token generation.
type Generator interface {
	// GenerateToken creates a signed JWT token for the given user.
	GenerateToken(userID string, email string) (string, error)
}

// generator implements the Generator interface.
type generator struct {
	secret     []byte
	expiration time.Duration
}

var _ Generator = (*generator)(nil)

// NewGenerator creates a new JWT generator with the provided secret and expiration duration.
func NewGenerator(secret string, expiration time.Duration) *generator {
	return &generator{
		secret:     []byte(secret),
		expiration: expiration,
	}
}

// AccessTTLFromEnv reads JWT_ACCESS_TTL, falling back to 15 minutes when unset or malformed.
func AccessTTLFromEnv() time.Duration {
	if v := os.Getenv(EnvKeyAccessTTL); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return defaultAccessTTL
}

// Expiration returns the lifetime of issued tokens.
func (g *generator) Expiration() time.Duration {
	return g.expiration
}

// GenerateToken creates a signed JWT token with standard claims.
func (g *generator) GenerateToken(userID string, email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   userID,
		"exp":   now.Add(g.expiration).Unix(),
		"iat":   now.Unix(),
		"email": email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

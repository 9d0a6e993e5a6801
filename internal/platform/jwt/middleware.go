package jwtmw

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const ContextUserID = "userID"

var (
	errMissingToken = errors.New("missing bearer token")
	errNoSecret     = errors.New("server misconfigured")
	errBadToken     = errors.New("invalid token")
)

// AuthRequired returns a Gin middleware function that validates JWT tokens
// and restricts access to authenticated users only.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := authenticate(c.GetHeader("Authorization"))
		switch {
		case errors.Is(err, errNoSecret):
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		case err != nil:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// OptionalAuth sets the user id when a valid bearer token is present and otherwise
// lets the request through anonymously.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, err := authenticate(c.GetHeader("Authorization")); err == nil {
			c.Set(ContextUserID, userID)
		}
		c.Next()
	}
}

// UserID returns the authenticated user id, or "" for anonymous requests.
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

func authenticate(header string) (string, error) {
	if !strings.HasPrefix(header, "Bearer ") {
		return "", errMissingToken
	}
	tokenStr := strings.TrimPrefix(header, "Bearer ")

	secret := os.Getenv(EnvKeyJWTSecret)
	if secret == "" {
		return "", errNoSecret
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		// only HMAC is accepted
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", errBadToken
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", errBadToken
	}
	return sub, nil
}

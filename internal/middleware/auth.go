package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/salon-booking/internal/domain/account"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
)

const ContextPrincipal = "principal"

var errNoToken = errors.New("no bearer token")

// OptionalAuth attaches a principal when a bearer token is sent and lets
// guests through. A token that is present but invalid is still rejected.
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := authenticate(c, secret)
		if errors.Is(err, errNoToken) {
			c.Next()
			return
		}
		if err != nil {
			httperr.Unauthorized(c, "invalid_token")
			c.Abort()
			return
		}

		c.Set(ContextPrincipal, p)
		c.Next()
	}
}

func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := authenticate(c, secret)
		if errors.Is(err, errNoToken) {
			httperr.Unauthorized(c, "unauthenticated")
			c.Abort()
			return
		}
		if err != nil {
			httperr.Unauthorized(c, "invalid_token")
			c.Abort()
			return
		}

		c.Set(ContextPrincipal, p)
		c.Next()
	}
}

// Principal returns the authenticated caller, or nil for guests.
func Principal(c *gin.Context) *account.Principal {
	v, ok := c.Get(ContextPrincipal)
	if !ok {
		return nil
	}
	p, _ := v.(*account.Principal)
	return p
}

func authenticate(c *gin.Context, secret string) (*account.Principal, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, errNoToken
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, errors.New("invalid authorization header")
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	userID, ok := claims["sub"].(float64)
	if !ok || userID <= 0 {
		return nil, errors.New("invalid token payload")
	}
	role, _ := claims["role"].(string)

	return &account.Principal{UserID: uint(userID), Role: role}, nil
}

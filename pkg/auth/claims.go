// Package auth provides JWT-based authentication for practice-engine.
// It validates tokens issued by the practice auth server using JWKS endpoints.
package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// ClaimsKey is the context key for storing JWT claims.
	ClaimsKey contextKey = "claims"
	// TokenKey is the context key for storing the raw JWT token string.
	TokenKey contextKey = "token"
)

// Role constants for caller roles within an account.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Claims represents the JWT claims structure issued by the auth server.
// It embeds RegisteredClaims for standard JWT fields (sub, iss, exp, etc.)
// and adds custom claims for account context.
type Claims struct {
	jwt.RegisteredClaims
	AccountID string   `json:"aid,omitempty"`   // Practice account UUID (the tenant)
	Email     string   `json:"email,omitempty"` // Caller email; stamped on created records as the owner
	Roles     []string `json:"roles,omitempty"` // Caller roles within the account
}

// HasRole reports whether the claims carry the given role.
func (c *Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// GetClaims retrieves JWT claims from the request context.
// Returns nil and false if claims are not present.
func GetClaims(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*Claims)
	return claims, ok
}

// GetToken retrieves the raw JWT token string from the request context.
// Returns empty string and false if token is not present.
func GetToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(TokenKey).(string)
	return token, ok
}

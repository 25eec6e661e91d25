package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// GetAccountIDFromContext extracts the account ID from JWT claims in the context.
// Returns uuid.Nil if not authenticated or claims are missing.
// Use this when you can handle uuid.Nil gracefully.
func GetAccountIDFromContext(ctx context.Context) uuid.UUID {
	claims, ok := GetClaims(ctx)
	if !ok || claims == nil {
		return uuid.Nil
	}

	if claims.AccountID == "" {
		return uuid.Nil
	}

	accountID, err := uuid.Parse(claims.AccountID)
	if err != nil {
		return uuid.Nil
	}

	return accountID
}

// RequireAccountFromContext extracts the account ID and caller email from JWT
// claims and returns an error if either is missing. Every owner-scoped
// operation goes through this: the account always comes from the token, never
// from the request payload.
func RequireAccountFromContext(ctx context.Context) (uuid.UUID, string, error) {
	claims, ok := GetClaims(ctx)
	if !ok || claims == nil {
		return uuid.Nil, "", fmt.Errorf("authentication required: no claims in context")
	}

	if claims.AccountID == "" {
		return uuid.Nil, "", fmt.Errorf("missing account ID in JWT claims")
	}

	accountID, err := uuid.Parse(claims.AccountID)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("invalid account ID format: %w", err)
	}

	if claims.Email == "" {
		return uuid.Nil, "", fmt.Errorf("missing email in JWT claims")
	}

	return accountID, claims.Email, nil
}

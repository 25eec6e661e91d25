package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestRequireAccountFromContext_Success(t *testing.T) {
	accountID := uuid.New()
	claims := &Claims{AccountID: accountID.String(), Email: "vet@practice.example"}
	ctx := context.WithValue(context.Background(), ClaimsKey, claims)

	gotID, gotEmail, err := RequireAccountFromContext(ctx)
	if err != nil {
		t.Fatalf("RequireAccountFromContext failed: %v", err)
	}
	if gotID != accountID {
		t.Errorf("expected account ID %v, got %v", accountID, gotID)
	}
	if gotEmail != "vet@practice.example" {
		t.Errorf("expected email vet@practice.example, got %q", gotEmail)
	}
}

func TestRequireAccountFromContext_NoClaims(t *testing.T) {
	_, _, err := RequireAccountFromContext(context.Background())
	if err == nil {
		t.Fatal("expected error without claims")
	}
}

func TestRequireAccountFromContext_MissingAccount(t *testing.T) {
	ctx := context.WithValue(context.Background(), ClaimsKey, &Claims{Email: "vet@practice.example"})
	_, _, err := RequireAccountFromContext(ctx)
	if err == nil {
		t.Fatal("expected error for missing account ID")
	}
}

func TestRequireAccountFromContext_MissingEmail(t *testing.T) {
	ctx := context.WithValue(context.Background(), ClaimsKey, &Claims{AccountID: uuid.New().String()})
	_, _, err := RequireAccountFromContext(ctx)
	if err == nil {
		t.Fatal("expected error for missing email")
	}
}

func TestGetAccountIDFromContext_InvalidUUID(t *testing.T) {
	ctx := context.WithValue(context.Background(), ClaimsKey, &Claims{AccountID: "not-a-uuid"})
	if got := GetAccountIDFromContext(ctx); got != uuid.Nil {
		t.Errorf("expected uuid.Nil for malformed account ID, got %v", got)
	}
}

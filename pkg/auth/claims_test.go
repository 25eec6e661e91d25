package auth

import (
	"context"
	"testing"
)

func TestClaims_HasRole(t *testing.T) {
	claims := &Claims{Roles: []string{"user", "admin"}}

	if !claims.HasRole(RoleAdmin) {
		t.Error("expected HasRole(admin) to be true")
	}
	if !claims.HasRole(RoleUser) {
		t.Error("expected HasRole(user) to be true")
	}
	if claims.HasRole("owner") {
		t.Error("expected HasRole(owner) to be false")
	}
}

func TestClaims_HasRole_Empty(t *testing.T) {
	claims := &Claims{}
	if claims.HasRole(RoleAdmin) {
		t.Error("expected no roles on empty claims")
	}
}

func TestGetClaims_Missing(t *testing.T) {
	_, ok := GetClaims(context.Background())
	if ok {
		t.Error("expected no claims in fresh context")
	}
}

func TestGetClaims_Present(t *testing.T) {
	want := &Claims{AccountID: "b2f9f3a0-0000-0000-0000-000000000000"}
	ctx := context.WithValue(context.Background(), ClaimsKey, want)

	got, ok := GetClaims(ctx)
	if !ok {
		t.Fatal("expected claims in context")
	}
	if got.AccountID != want.AccountID {
		t.Errorf("expected account ID %q, got %q", want.AccountID, got.AccountID)
	}
}

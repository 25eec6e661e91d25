package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// mockJWKSClient returns fixed claims or a fixed error.
type mockJWKSClient struct {
	claims *Claims
	err    error
}

func (m *mockJWKSClient) ValidateToken(tokenString string) (*Claims, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.claims, nil
}

func (m *mockJWKSClient) Close() {}

func newTestMiddleware(claims *Claims, err error) *Middleware {
	svc := NewAuthService(&mockJWKSClient{claims: claims, err: err}, zap.NewNop())
	return NewMiddleware(svc, zap.NewNop())
}

func TestRequireAuth_NoToken(t *testing.T) {
	m := newTestMiddleware(nil, errors.New("unused"))

	called := false
	handler := m.RequireAuth(func(w http.ResponseWriter, r *http.Request) { called = true })

	req := httptest.NewRequest(http.MethodPost, "/api/import", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if called {
		t.Error("handler should not run without identity")
	}
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	m := newTestMiddleware(nil, errors.New("token validation failed"))

	handler := m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run for invalid token")
	})

	req := httptest.NewRequest(http.MethodPost, "/api/import", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAuth_MissingAccountID(t *testing.T) {
	m := newTestMiddleware(&Claims{Email: "vet@practice.example"}, nil)

	handler := m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run without account ID")
	})

	req := httptest.NewRequest(http.MethodPost, "/api/import", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestRequireAuth_Success(t *testing.T) {
	accountID := uuid.New().String()
	m := newTestMiddleware(&Claims{AccountID: accountID, Email: "vet@practice.example"}, nil)

	var gotClaims *Claims
	handler := m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		gotClaims, _ = GetClaims(r.Context())
	})

	req := httptest.NewRequest(http.MethodPost, "/api/import", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotClaims == nil || gotClaims.AccountID != accountID {
		t.Error("expected claims in handler context")
	}
}

func TestRequireAdmin_NonAdmin(t *testing.T) {
	m := newTestMiddleware(&Claims{
		AccountID: uuid.New().String(),
		Email:     "vet@practice.example",
		Roles:     []string{RoleUser},
	}, nil)

	called := false
	handler := m.RequireAdmin(func(w http.ResponseWriter, r *http.Request) { called = true })

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/data", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
	if called {
		t.Error("handler should not run for non-admin caller")
	}
}

func TestRequireAdmin_Admin(t *testing.T) {
	m := newTestMiddleware(&Claims{
		AccountID: uuid.New().String(),
		Email:     "vet@practice.example",
		Roles:     []string{RoleAdmin},
	}, nil)

	called := false
	handler := m.RequireAdmin(func(w http.ResponseWriter, r *http.Request) { called = true })

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/data", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if !called {
		t.Error("handler should run for admin caller")
	}
}

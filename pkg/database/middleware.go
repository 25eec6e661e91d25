package database

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stridephysio/practice-engine/pkg/auth"
)

// WithTenantContext creates middleware that sets up a tenant-scoped DB connection.
// It runs AFTER auth middleware and uses the account ID from JWT claims — the
// caller cannot substitute another account, the claim always wins.
// The connection is automatically cleaned up after the handler returns.
func WithTenantContext(db *DB, logger *zap.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			claims, ok := auth.GetClaims(r.Context())
			if !ok || claims.AccountID == "" {
				logger.Error("Missing account context in claims")
				writeError(w, http.StatusInternalServerError, "internal_error", "Missing account context")
				return
			}

			accountID, err := uuid.Parse(claims.AccountID)
			if err != nil {
				logger.Error("Invalid account ID format in claims",
					zap.String("account_id", claims.AccountID),
					zap.Error(err))
				writeError(w, http.StatusBadRequest, "invalid_account_id", "Invalid account ID format")
				return
			}

			scope, err := db.WithTenant(r.Context(), accountID)
			if err != nil {
				logger.Error("Failed to acquire tenant connection",
					zap.String("account_id", accountID.String()),
					zap.Error(err))
				writeError(w, http.StatusInternalServerError, "database_error", "Database connection error")
				return
			}
			defer scope.Close()

			ctx := SetTenantScope(r.Context(), scope)
			next(w, r.WithContext(ctx))
		}
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, statusCode int, errorCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   errorCode,
		"message": message,
	})
}

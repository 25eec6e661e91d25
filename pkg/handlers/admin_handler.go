package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/stridephysio/practice-engine/pkg/auth"
	"github.com/stridephysio/practice-engine/pkg/services"
)

// BackfillRequest carries the cutoff date for a status backfill pass.
type BackfillRequest struct {
	Cutoff string `json:"cutoff"`
}

// AdminHandler handles admin-only destructive and corrective endpoints.
type AdminHandler struct {
	adminService services.AdminService
	logger       *zap.Logger
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(adminService services.AdminService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		logger:       logger,
	}
}

// RegisterRoutes registers admin routes. Both require the admin role, not
// merely an authenticated caller.
func (h *AdminHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware, tenantMiddleware TenantMiddleware) {
	mux.HandleFunc("DELETE /api/admin/data",
		authMiddleware.RequireAdmin(tenantMiddleware(h.DeleteAllData)))
	mux.HandleFunc("POST /api/admin/appointments/backfill",
		authMiddleware.RequireAdmin(tenantMiddleware(h.BackfillAppointments)))
}

// DeleteAllData handles DELETE /api/admin/data
func (h *AdminHandler) DeleteAllData(w http.ResponseWriter, r *http.Request) {
	counts, err := h.adminService.DeleteAllData(r.Context())
	if err != nil {
		h.logger.Error("Failed to delete account data", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "delete_all_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: counts}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// BackfillAppointments handles POST /api/admin/appointments/backfill
func (h *AdminHandler) BackfillAppointments(w http.ResponseWriter, r *http.Request) {
	var req BackfillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}
	if req.Cutoff == "" {
		if err := ErrorResponse(w, http.StatusBadRequest, "missing_cutoff", "Missing required field: cutoff"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	result, err := h.adminService.BackfillAppointmentStatus(r.Context(), req.Cutoff)
	if err != nil {
		h.logger.Error("Failed to backfill appointment status",
			zap.String("cutoff", req.Cutoff),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusBadRequest, "backfill_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: result}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

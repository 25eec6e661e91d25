package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/stridephysio/practice-engine/pkg/apperrors"
	"github.com/stridephysio/practice-engine/pkg/auth"
	"github.com/stridephysio/practice-engine/pkg/models"
	"github.com/stridephysio/practice-engine/pkg/services"
)

// HorseListResponse for GET /api/horses
type HorseListResponse struct {
	Horses []*models.Horse `json:"horses"`
	Total  int             `json:"total"`
}

// HorseHandler handles horse HTTP requests.
type HorseHandler struct {
	horseService services.HorseService
	logger       *zap.Logger
}

// NewHorseHandler creates a new horse handler.
func NewHorseHandler(horseService services.HorseService, logger *zap.Logger) *HorseHandler {
	return &HorseHandler{
		horseService: horseService,
		logger:       logger,
	}
}

// RegisterRoutes registers the horse handler's routes on the given mux.
func (h *HorseHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware, tenantMiddleware TenantMiddleware) {
	mux.HandleFunc("GET /api/horses",
		authMiddleware.RequireAuth(tenantMiddleware(h.List)))
	mux.HandleFunc("POST /api/horses",
		authMiddleware.RequireAuth(tenantMiddleware(h.Create)))
	mux.HandleFunc("GET /api/horses/{id}",
		authMiddleware.RequireAuth(tenantMiddleware(h.Get)))
	mux.HandleFunc("GET /api/horses/{id}/treatments",
		authMiddleware.RequireAuth(tenantMiddleware(h.Treatments)))
}

// List handles GET /api/horses
func (h *HorseHandler) List(w http.ResponseWriter, r *http.Request) {
	horses, err := h.horseService.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list horses", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "list_horses_failed", err.Error())
		return
	}

	response := HorseListResponse{Horses: horses, Total: len(horses)}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: response}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Create handles POST /api/horses
func (h *HorseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req services.CreateHorseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	horse, err := h.horseService.Create(r.Context(), req)
	if err != nil {
		h.logger.Error("Failed to create horse", zap.Error(err))
		h.writeError(w, http.StatusBadRequest, "create_horse_failed", err.Error())
		return
	}

	if err := WriteJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: horse}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/horses/{id}
func (h *HorseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	horse, err := h.horseService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "horse_not_found", "Horse not found")
			return
		}
		h.logger.Error("Failed to get horse", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "get_horse_failed", err.Error())
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: horse}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Treatments handles GET /api/horses/{id}/treatments
func (h *HorseHandler) Treatments(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	treatments, err := h.horseService.Treatments(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to list treatments", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "list_treatments_failed", err.Error())
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: treatments}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

func (h *HorseHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	if err := ErrorResponse(w, status, code, message); err != nil {
		h.logger.Error("Failed to write error response", zap.Error(err))
	}
}

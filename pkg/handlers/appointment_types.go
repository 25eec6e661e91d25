package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/stridephysio/practice-engine/pkg/auth"
	"github.com/stridephysio/practice-engine/pkg/models"
	"github.com/stridephysio/practice-engine/pkg/services"
)

// AppointmentTypeListResponse for GET /api/appointment-types
type AppointmentTypeListResponse struct {
	AppointmentTypes []*models.AppointmentType `json:"appointment_types"`
	Total            int                       `json:"total"`
}

// AppointmentTypeHandler handles appointment type HTTP requests.
type AppointmentTypeHandler struct {
	appointmentTypeService services.AppointmentTypeService
	logger                 *zap.Logger
}

// NewAppointmentTypeHandler creates a new appointment type handler.
func NewAppointmentTypeHandler(appointmentTypeService services.AppointmentTypeService, logger *zap.Logger) *AppointmentTypeHandler {
	return &AppointmentTypeHandler{
		appointmentTypeService: appointmentTypeService,
		logger:                 logger,
	}
}

// RegisterRoutes registers the appointment type handler's routes on the given mux.
func (h *AppointmentTypeHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware, tenantMiddleware TenantMiddleware) {
	mux.HandleFunc("GET /api/appointment-types",
		authMiddleware.RequireAuth(tenantMiddleware(h.List)))
	mux.HandleFunc("POST /api/appointment-types",
		authMiddleware.RequireAuth(tenantMiddleware(h.Create)))
}

// List handles GET /api/appointment-types
func (h *AppointmentTypeHandler) List(w http.ResponseWriter, r *http.Request) {
	appointmentTypes, err := h.appointmentTypeService.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list appointment types", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "list_appointment_types_failed", err.Error())
		return
	}

	response := AppointmentTypeListResponse{AppointmentTypes: appointmentTypes, Total: len(appointmentTypes)}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: response}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Create handles POST /api/appointment-types
func (h *AppointmentTypeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req services.CreateAppointmentTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	appointmentType, err := h.appointmentTypeService.Create(r.Context(), req)
	if err != nil {
		h.logger.Error("Failed to create appointment type", zap.Error(err))
		h.writeError(w, http.StatusBadRequest, "create_appointment_type_failed", err.Error())
		return
	}

	if err := WriteJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: appointmentType}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

func (h *AppointmentTypeHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	if err := ErrorResponse(w, status, code, message); err != nil {
		h.logger.Error("Failed to write error response", zap.Error(err))
	}
}

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

// AppointmentListResponse for GET /api/appointments
type AppointmentListResponse struct {
	Appointments []*models.Appointment `json:"appointments"`
	Total        int                   `json:"total"`
}

// AppointmentHandler handles appointment HTTP requests.
type AppointmentHandler struct {
	appointmentService services.AppointmentService
	logger             *zap.Logger
}

// NewAppointmentHandler creates a new appointment handler.
func NewAppointmentHandler(appointmentService services.AppointmentService, logger *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentService: appointmentService,
		logger:             logger,
	}
}

// RegisterRoutes registers the appointment handler's routes on the given mux.
func (h *AppointmentHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware, tenantMiddleware TenantMiddleware) {
	mux.HandleFunc("GET /api/appointments",
		authMiddleware.RequireAuth(tenantMiddleware(h.List)))
	mux.HandleFunc("POST /api/appointments",
		authMiddleware.RequireAuth(tenantMiddleware(h.Create)))
	mux.HandleFunc("GET /api/appointments/{id}",
		authMiddleware.RequireAuth(tenantMiddleware(h.Get)))
}

// List handles GET /api/appointments
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointmentService.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list appointments", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "list_appointments_failed", err.Error())
		return
	}

	response := AppointmentListResponse{Appointments: appointments, Total: len(appointments)}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: response}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Create handles POST /api/appointments
func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req services.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	appointment, err := h.appointmentService.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidStatus) {
			h.writeError(w, http.StatusBadRequest, "invalid_status", err.Error())
			return
		}
		h.logger.Error("Failed to create appointment", zap.Error(err))
		h.writeError(w, http.StatusBadRequest, "create_appointment_failed", err.Error())
		return
	}

	if err := WriteJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: appointment}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/appointments/{id}
func (h *AppointmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	appointment, err := h.appointmentService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "appointment_not_found", "Appointment not found")
			return
		}
		h.logger.Error("Failed to get appointment", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "get_appointment_failed", err.Error())
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: appointment}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

func (h *AppointmentHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	if err := ErrorResponse(w, status, code, message); err != nil {
		h.logger.Error("Failed to write error response", zap.Error(err))
	}
}

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

// ClientListResponse for GET /api/clients
type ClientListResponse struct {
	Clients []*models.Client `json:"clients"`
	Total   int              `json:"total"`
}

// ClientHandler handles client HTTP requests.
type ClientHandler struct {
	clientService services.ClientService
	horseService  services.HorseService
	logger        *zap.Logger
}

// NewClientHandler creates a new client handler.
func NewClientHandler(clientService services.ClientService, horseService services.HorseService, logger *zap.Logger) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
		horseService:  horseService,
		logger:        logger,
	}
}

// RegisterRoutes registers the client handler's routes on the given mux.
func (h *ClientHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware, tenantMiddleware TenantMiddleware) {
	mux.HandleFunc("GET /api/clients",
		authMiddleware.RequireAuth(tenantMiddleware(h.List)))
	mux.HandleFunc("POST /api/clients",
		authMiddleware.RequireAuth(tenantMiddleware(h.Create)))
	mux.HandleFunc("GET /api/clients/{id}",
		authMiddleware.RequireAuth(tenantMiddleware(h.Get)))
	mux.HandleFunc("GET /api/clients/{id}/horses",
		authMiddleware.RequireAuth(tenantMiddleware(h.Horses)))
}

// List handles GET /api/clients
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.clientService.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list clients", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "list_clients_failed", err.Error())
		return
	}

	response := ClientListResponse{Clients: clients, Total: len(clients)}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: response}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Create handles POST /api/clients
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req services.CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	client, err := h.clientService.Create(r.Context(), req)
	if err != nil {
		h.logger.Error("Failed to create client", zap.Error(err))
		h.writeError(w, http.StatusBadRequest, "create_client_failed", err.Error())
		return
	}

	if err := WriteJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: client}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/clients/{id}
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	client, err := h.clientService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "client_not_found", "Client not found")
			return
		}
		h.logger.Error("Failed to get client", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "get_client_failed", err.Error())
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: client}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Horses handles GET /api/clients/{id}/horses
func (h *ClientHandler) Horses(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	horses, err := h.horseService.ListByClient(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to list client horses", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "list_horses_failed", err.Error())
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: horses}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

func (h *ClientHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	if err := ErrorResponse(w, status, code, message); err != nil {
		h.logger.Error("Failed to write error response", zap.Error(err))
	}
}

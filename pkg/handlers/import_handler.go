package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/stridephysio/practice-engine/pkg/apperrors"
	"github.com/stridephysio/practice-engine/pkg/auth"
	"github.com/stridephysio/practice-engine/pkg/importer"
	"github.com/stridephysio/practice-engine/pkg/models"
	"github.com/stridephysio/practice-engine/pkg/services"
)

// ImportRequest is the envelope every import call carries: which stage to
// run and that stage's data.
type ImportRequest struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

// stageData is the data payload of a single-stage call: the source record
// arrays plus any idMaps produced by earlier stage calls.
type stageData struct {
	models.ImportPayload
	IDMaps map[string]map[string]string `json:"idMaps,omitempty"`
}

// StageResponse is the per-stage reply. The caller passes IDMap back in on
// subsequent stage calls; the server holds no mapping state between calls.
type StageResponse struct {
	Success  bool                     `json:"success"`
	Type     string                   `json:"type"`
	Imported int                      `json:"imported"`
	Failed   int                      `json:"failed"`
	IDMap    map[string]string        `json:"idMap"`
	Details  map[string]int           `json:"details,omitempty"`
	Failures []importer.RecordFailure `json:"failures,omitempty"`
}

// FullImportResponse is the reply to a full six-stage run.
type FullImportResponse struct {
	Success bool                 `json:"success"`
	Results *importer.FullResult `json:"results"`
}

// ImportHandler handles legacy-data import requests.
type ImportHandler struct {
	importService services.ImportService
	logger        *zap.Logger
}

// NewImportHandler creates a new import handler.
func NewImportHandler(importService services.ImportService, logger *zap.Logger) *ImportHandler {
	return &ImportHandler{
		importService: importService,
		logger:        logger,
	}
}

// RegisterRoutes registers the import route on the given mux.
func (h *ImportHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware, tenantMiddleware TenantMiddleware) {
	mux.HandleFunc("POST /api/import",
		authMiddleware.RequireAuth(tenantMiddleware(h.Run)))
}

// Run handles POST /api/import
func (h *ImportHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}
	if req.Action == "" {
		h.writeError(w, http.StatusBadRequest, "missing_action", "Missing required field: action")
		return
	}

	var data stageData
	if len(req.Data) > 0 {
		if err := json.Unmarshal(req.Data, &data); err != nil {
			h.writeError(w, http.StatusBadRequest, "invalid_data", "Invalid data payload")
			return
		}
	}

	if req.Action == services.ActionFull {
		h.runFull(w, r, data.ImportPayload)
		return
	}

	result, err := h.importService.RunStage(r.Context(), req.Action, services.StageRequest{
		Payload: data.ImportPayload,
		IDMaps:  data.IDMaps,
	})
	if err != nil {
		h.writeServiceError(w, req.Action, err)
		return
	}

	response := StageResponse{
		Success:  true,
		Type:     result.Type,
		Imported: result.Imported,
		Failed:   result.Failed,
		IDMap:    result.IDMap,
		Details:  result.Details,
		Failures: result.Failures,
	}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

func (h *ImportHandler) runFull(w http.ResponseWriter, r *http.Request, payload models.ImportPayload) {
	result, err := h.importService.RunFull(r.Context(), payload)
	if err != nil {
		h.writeServiceError(w, services.ActionFull, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, FullImportResponse{Success: true, Results: result}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

func (h *ImportHandler) writeServiceError(w http.ResponseWriter, action string, err error) {
	h.logger.Error("Import failed",
		zap.String("action", action),
		zap.Error(err))

	switch {
	case errors.Is(err, apperrors.ErrImportInProgress):
		h.writeError(w, http.StatusConflict, "import_in_progress", "An import run is already in progress for this account")
	case errors.Is(err, apperrors.ErrMappingConflict):
		h.writeError(w, http.StatusBadRequest, "mapping_conflict", err.Error())
	default:
		h.writeError(w, http.StatusInternalServerError, "import_failed", err.Error())
	}
}

func (h *ImportHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	if err := ErrorResponse(w, status, code, message); err != nil {
		h.logger.Error("Failed to write error response", zap.Error(err))
	}
}

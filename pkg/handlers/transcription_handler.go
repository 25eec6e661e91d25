package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/stridephysio/practice-engine/pkg/auth"
	"github.com/stridephysio/practice-engine/pkg/services"
)

// Voice notes top out around a few minutes of audio; 25 MB matches the
// provider's own upload limit.
const maxAudioUploadBytes = 25 << 20

// TranscriptionHandler proxies audio uploads to the speech-to-text provider.
type TranscriptionHandler struct {
	transcriptionService services.TranscriptionService
	logger               *zap.Logger
}

// NewTranscriptionHandler creates a new transcription handler.
func NewTranscriptionHandler(transcriptionService services.TranscriptionService, logger *zap.Logger) *TranscriptionHandler {
	return &TranscriptionHandler{
		transcriptionService: transcriptionService,
		logger:               logger,
	}
}

// RegisterRoutes registers the transcription route on the given mux.
// No tenant middleware: the proxy never touches the entity store.
func (h *TranscriptionHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("POST /api/transcriptions",
		authMiddleware.RequireAuth(h.Transcribe))
}

// Transcribe handles POST /api/transcriptions. Expects a multipart form with
// an "audio" file field.
func (h *TranscriptionHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxAudioUploadBytes)

	file, header, err := r.FormFile("audio")
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "missing_audio", "Missing audio file upload"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}
	defer file.Close()

	result, err := h.transcriptionService.Transcribe(r.Context(), file, header.Filename)
	if err != nil {
		h.logger.Error("Transcription failed",
			zap.String("filename", header.Filename),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusBadGateway, "transcription_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: result}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

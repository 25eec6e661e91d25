package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/stridephysio/practice-engine/pkg/auth"
	"github.com/stridephysio/practice-engine/pkg/importer"
	"github.com/stridephysio/practice-engine/pkg/models"
	"github.com/stridephysio/practice-engine/pkg/services"
)

// stubAuthService authenticates any request carrying an Authorization header
// and returns the configured claims.
type stubAuthService struct {
	claims *auth.Claims
}

func (s *stubAuthService) ValidateRequest(r *http.Request) (*auth.Claims, string, error) {
	if r.Header.Get("Authorization") == "" {
		return nil, "", auth.ErrMissingAuthorization
	}
	return s.claims, "stub-token", nil
}

func (s *stubAuthService) RequireAccountID(claims *auth.Claims) error {
	if claims.AccountID == "" {
		return auth.ErrMissingAccountID
	}
	return nil
}

func newTestMiddleware(claims *auth.Claims) *auth.Middleware {
	return auth.NewMiddleware(&stubAuthService{claims: claims}, zap.NewNop())
}

// passthroughTenant skips the database scope; handler tests exercise routing
// and status codes, not storage.
func passthroughTenant(next http.HandlerFunc) http.HandlerFunc {
	return next
}

type stubImportService struct {
	stageResult *importer.StageResult
	fullResult  *importer.FullResult
	err         error

	gotAction string
	gotReq    services.StageRequest
}

func (s *stubImportService) RunStage(_ context.Context, action string, req services.StageRequest) (*importer.StageResult, error) {
	s.gotAction = action
	s.gotReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.stageResult, nil
}

func (s *stubImportService) RunFull(_ context.Context, _ models.ImportPayload) (*importer.FullResult, error) {
	s.gotAction = services.ActionFull
	if s.err != nil {
		return nil, s.err
	}
	return s.fullResult, nil
}

type stubAdminService struct {
	counts   *services.DeleteCounts
	backfill *services.BackfillResult
	err      error

	gotCutoff string
}

func (s *stubAdminService) DeleteAllData(_ context.Context) (*services.DeleteCounts, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.counts, nil
}

func (s *stubAdminService) BackfillAppointmentStatus(_ context.Context, cutoff string) (*services.BackfillResult, error) {
	s.gotCutoff = cutoff
	if s.err != nil {
		return nil, s.err
	}
	return s.backfill, nil
}

type stubTranscriptionService struct {
	result *services.TranscriptionResult
	err    error
}

func (s *stubTranscriptionService) Transcribe(_ context.Context, _ io.Reader, _ string) (*services.TranscriptionResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

var errStub = errors.New("stub failure")

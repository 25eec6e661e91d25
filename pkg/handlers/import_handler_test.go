package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stridephysio/practice-engine/pkg/apperrors"
	"github.com/stridephysio/practice-engine/pkg/auth"
	"github.com/stridephysio/practice-engine/pkg/importer"
	"github.com/stridephysio/practice-engine/pkg/services"
)

func newImportTestServer(stub *stubImportService) *http.ServeMux {
	handler := NewImportHandler(stub, zap.NewNop())
	claims := &auth.Claims{AccountID: uuid.New().String(), Email: "vet@example.com"}
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, newTestMiddleware(claims), passthroughTenant)
	return mux
}

func postImport(mux *http.ServeMux, body string, authed bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/import", strings.NewReader(body))
	if authed {
		req.Header.Set("Authorization", "Bearer test")
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestImportHandler_RequiresAuth(t *testing.T) {
	mux := newImportTestServer(&stubImportService{})

	rec := postImport(mux, `{"action":"clients","data":{}}`, false)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestImportHandler_MissingAction(t *testing.T) {
	mux := newImportTestServer(&stubImportService{})

	rec := postImport(mux, `{"data":{}}`, true)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	if !strings.Contains(body["message"], "action") {
		t.Errorf("error must name the missing field, got %q", body["message"])
	}
}

func TestImportHandler_InvalidJSON(t *testing.T) {
	mux := newImportTestServer(&stubImportService{})

	rec := postImport(mux, `{not json`, true)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestImportHandler_StageSuccess(t *testing.T) {
	stub := &stubImportService{
		stageResult: &importer.StageResult{
			Type:     "client",
			Imported: 2,
			Failed:   0,
			IDMap:    map[string]string{"c-1": uuid.New().String()},
		},
	}
	mux := newImportTestServer(stub)

	body := `{"action":"clients","data":{"clients":[{"source_id":"c-1","name":"Alice"},{"source_id":"c-2","name":"Bob"}]}}`
	rec := postImport(mux, body, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	if stub.gotAction != services.ActionClients {
		t.Errorf("action = %q", stub.gotAction)
	}
	if len(stub.gotReq.Payload.Clients) != 2 {
		t.Errorf("payload clients = %d, want 2", len(stub.gotReq.Payload.Clients))
	}

	var response StageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if !response.Success || response.Imported != 2 || response.Type != "client" {
		t.Errorf("response = %+v", response)
	}
	if len(response.IDMap) != 1 {
		t.Errorf("idMap entries = %d, want 1", len(response.IDMap))
	}
}

func TestImportHandler_ForwardsIDMaps(t *testing.T) {
	stub := &stubImportService{stageResult: &importer.StageResult{Type: "horse"}}
	mux := newImportTestServer(stub)

	clientID := uuid.New().String()
	body := `{"action":"horses","data":{"horses":[],"idMaps":{"client":{"c-1":"` + clientID + `"}}}}`
	rec := postImport(mux, body, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	if stub.gotReq.IDMaps["client"]["c-1"] != clientID {
		t.Errorf("idMaps not forwarded: %+v", stub.gotReq.IDMaps)
	}
}

func TestImportHandler_RunInProgress(t *testing.T) {
	stub := &stubImportService{err: apperrors.ErrImportInProgress}
	mux := newImportTestServer(stub)

	rec := postImport(mux, `{"action":"clients","data":{}}`, true)
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

func TestImportHandler_FullRun(t *testing.T) {
	stub := &stubImportService{
		fullResult: &importer.FullResult{
			Clients: &importer.StageResult{Type: "client", Imported: 1},
		},
	}
	mux := newImportTestServer(stub)

	rec := postImport(mux, `{"action":"full","data":{"clients":[{"source_id":"c-1","name":"Alice"}]}}`, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var response FullImportResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if !response.Success || response.Results.Clients.Imported != 1 {
		t.Errorf("response = %+v", response)
	}
}

func TestImportHandler_ServiceFailure(t *testing.T) {
	stub := &stubImportService{err: errStub}
	mux := newImportTestServer(stub)

	rec := postImport(mux, `{"action":"clients","data":{}}`, true)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

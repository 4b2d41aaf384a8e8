package report

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aicare-lung/monitoring-service/internal/auth"
	"github.com/aicare-lung/monitoring-service/internal/triage"
	"github.com/gorilla/mux"
)

// mockService implements ServiceInterface with function fields
type mockService struct {
	ingestReportFunc       func(ctx context.Context, req CreateReportRequest) (*SymptomReport, error)
	listReportsFunc        func(ctx context.Context) ([]SymptomReport, error)
	listPatientReportsFunc func(ctx context.Context, patientID string) ([]SymptomReport, error)
	getReportFunc          func(ctx context.Context, id string) (*SymptomReport, error)
	pendingAlertsFunc      func(ctx context.Context) ([]SymptomReport, error)
	handleAlertFunc        func(ctx context.Context, id string, req HandleAlertRequest) error
}

func (m *mockService) IngestReport(ctx context.Context, req CreateReportRequest) (*SymptomReport, error) {
	if m.ingestReportFunc != nil {
		return m.ingestReportFunc(ctx, req)
	}
	return nil, nil
}

func (m *mockService) ListReports(ctx context.Context) ([]SymptomReport, error) {
	if m.listReportsFunc != nil {
		return m.listReportsFunc(ctx)
	}
	return nil, nil
}

func (m *mockService) ListPatientReports(ctx context.Context, patientID string) ([]SymptomReport, error) {
	if m.listPatientReportsFunc != nil {
		return m.listPatientReportsFunc(ctx, patientID)
	}
	return nil, nil
}

func (m *mockService) GetReport(ctx context.Context, id string) (*SymptomReport, error) {
	if m.getReportFunc != nil {
		return m.getReportFunc(ctx, id)
	}
	return nil, ErrReportNotFound
}

func (m *mockService) PendingAlerts(ctx context.Context) ([]SymptomReport, error) {
	if m.pendingAlertsFunc != nil {
		return m.pendingAlertsFunc(ctx)
	}
	return nil, nil
}

func (m *mockService) HandleAlert(ctx context.Context, id string, req HandleAlertRequest) error {
	if m.handleAlertFunc != nil {
		return m.handleAlertFunc(ctx, id, req)
	}
	return nil
}

func authedRequest(req *http.Request, userID string) *http.Request {
	principal := &auth.Principal{UserID: userID, Roles: []string{"NURSE"}}
	return req.WithContext(auth.ContextWithPrincipal(req.Context(), principal))
}

// TestHandlerIngestReport_Success tests a successful check-in submission
func TestHandlerIngestReport_Success(t *testing.T) {
	mockSvc := &mockService{
		ingestReportFunc: func(ctx context.Context, req CreateReportRequest) (*SymptomReport, error) {
			return &SymptomReport{
				ID:         "report-123",
				PatientID:  req.PatientID,
				AlertLevel: triage.LevelRed,
				Timestamp:  time.Now(),
			}, nil
		},
	}
	handler := NewHandler(mockSvc)

	body, _ := json.Marshal(CreateReportRequest{PatientID: "p1", PainScore: 8})
	req := httptest.NewRequest(http.MethodPost, "/reports", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.IngestReport(rec, req)

	if rec.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rec.Code)
	}

	var response ReportSuccessResponse
	json.NewDecoder(rec.Body).Decode(&response)
	if !response.Success {
		t.Error("Expected success to be true")
	}
	if response.Report == nil || response.Report.AlertLevel != triage.LevelRed {
		t.Error("Expected red report in response")
	}
}

// TestHandlerIngestReport_InvalidJSON tests malformed payloads
func TestHandlerIngestReport_InvalidJSON(t *testing.T) {
	handler := NewHandler(&mockService{})

	req := httptest.NewRequest(http.MethodPost, "/reports", bytes.NewReader([]byte("not json")))
	rec := httptest.NewRecorder()

	handler.IngestReport(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

// TestHandlerIngestReport_MissingPatient tests validation mapping to 400
func TestHandlerIngestReport_MissingPatient(t *testing.T) {
	mockSvc := &mockService{
		ingestReportFunc: func(ctx context.Context, req CreateReportRequest) (*SymptomReport, error) {
			return nil, ErrMissingPatientID
		},
	}
	handler := NewHandler(mockSvc)

	body, _ := json.Marshal(CreateReportRequest{})
	req := httptest.NewRequest(http.MethodPost, "/reports", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.IngestReport(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

// TestHandlerGetReport_NotFound tests the 404 mapping
func TestHandlerGetReport_NotFound(t *testing.T) {
	handler := NewHandler(&mockService{})

	req := httptest.NewRequest(http.MethodGet, "/reports/missing", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "missing"})
	rec := httptest.NewRecorder()

	handler.GetReport(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

// TestHandlerHandleAlert_DefaultsToPrincipal tests that the authenticated
// user becomes the handler of record when none is given
func TestHandlerHandleAlert_DefaultsToPrincipal(t *testing.T) {
	var gotHandler string
	mockSvc := &mockService{
		handleAlertFunc: func(ctx context.Context, id string, req HandleAlertRequest) error {
			gotHandler = req.HandlerID
			return nil
		},
	}
	handler := NewHandler(mockSvc)

	body, _ := json.Marshal(HandleAlertRequest{Action: "called_patient"})
	req := httptest.NewRequest(http.MethodPost, "/alerts/r1/handle", bytes.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"id": "r1"})
	req = authedRequest(req, "nurse-7")
	rec := httptest.NewRecorder()

	handler.HandleAlert(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
	if gotHandler != "nurse-7" {
		t.Errorf("Expected handler 'nurse-7', got '%s'", gotHandler)
	}
}

// TestHandlerHandleAlert_Unauthenticated tests missing principal
func TestHandlerHandleAlert_Unauthenticated(t *testing.T) {
	handler := NewHandler(&mockService{})

	body, _ := json.Marshal(HandleAlertRequest{Action: "called_patient"})
	req := httptest.NewRequest(http.MethodPost, "/alerts/r1/handle", bytes.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"id": "r1"})
	rec := httptest.NewRecorder()

	handler.HandleAlert(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

// TestHandlerHandleAlert_Conflict tests the already-handled mapping to 409
func TestHandlerHandleAlert_Conflict(t *testing.T) {
	mockSvc := &mockService{
		handleAlertFunc: func(ctx context.Context, id string, req HandleAlertRequest) error {
			return ErrAlreadyHandled
		},
	}
	handler := NewHandler(mockSvc)

	body, _ := json.Marshal(HandleAlertRequest{Action: "called_patient"})
	req := httptest.NewRequest(http.MethodPost, "/alerts/r1/handle", bytes.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"id": "r1"})
	req = authedRequest(req, "nurse-7")
	rec := httptest.NewRecorder()

	handler.HandleAlert(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", rec.Code)
	}
}

// TestHandlerListPendingAlerts tests the alert queue endpoint
func TestHandlerListPendingAlerts(t *testing.T) {
	submitted := time.Now().Add(-3 * time.Hour)
	mockSvc := &mockService{
		pendingAlertsFunc: func(ctx context.Context) ([]SymptomReport, error) {
			return []SymptomReport{
				{ID: "r2", AlertLevel: triage.LevelRed, Timestamp: submitted},
				{ID: "y1", AlertLevel: triage.LevelYellow, Timestamp: submitted},
			}, nil
		},
	}
	handler := NewHandler(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/alerts", nil)
	rec := httptest.NewRecorder()

	handler.ListPendingAlerts(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response AlertListResponse
	json.NewDecoder(rec.Body).Decode(&response)
	if response.Total != 2 {
		t.Errorf("Expected total 2, got %d", response.Total)
	}
	if len(response.Alerts) != 2 || response.Alerts[0].ID != "r2" {
		t.Error("Expected red alert first")
	}
	if response.Alerts[0].WaitHours < 2.9 {
		t.Errorf("Expected wait of about 3 hours, got %v", response.Alerts[0].WaitHours)
	}
}

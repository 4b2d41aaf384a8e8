package report

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/aicare-lung/monitoring-service/internal/auth"
	"github.com/gorilla/mux"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

type ReportSuccessResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Report  *SymptomReport `json:"report,omitempty"`
}

type ReportListResponse struct {
	Success bool            `json:"success"`
	Reports []SymptomReport `json:"reports"`
	Total   int             `json:"total"`
}

// PendingAlert is a symptom report waiting in the alert queue, together
// with how long it has been waiting. The wait is recomputed on every render.
type PendingAlert struct {
	SymptomReport
	WaitHours float64 `json:"wait_hours"`
}

type AlertListResponse struct {
	Success bool           `json:"success"`
	Alerts  []PendingAlert `json:"alerts"`
	Total   int            `json:"total"`
}

func (h *Handler) IngestReport(w http.ResponseWriter, r *http.Request) {
	var req CreateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	rep, err := h.service.IngestReport(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrMissingPatientID) {
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "ingest_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(ReportSuccessResponse{
		Success: true,
		Message: "Report ingested successfully",
		Report:  rep,
	})
}

func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	var reports []SymptomReport
	var err error

	if patientID := r.URL.Query().Get("patient_id"); patientID != "" {
		reports, err = h.service.ListPatientReports(r.Context(), patientID)
	} else {
		reports, err = h.service.ListReports(r.Context())
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ReportListResponse{
		Success: true,
		Reports: reports,
		Total:   len(reports),
	})
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	rep, err := h.service.GetReport(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrReportNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "Report not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ReportSuccessResponse{
		Success: true,
		Message: "Report retrieved successfully",
		Report:  rep,
	})
}

func (h *Handler) ListPendingAlerts(w http.ResponseWriter, r *http.Request) {
	reports, err := h.service.PendingAlerts(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	now := time.Now()
	alerts := make([]PendingAlert, 0, len(reports))
	for _, rep := range reports {
		alerts = append(alerts, PendingAlert{
			SymptomReport: rep,
			WaitHours:     WaitHours(rep.Timestamp, now),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(AlertListResponse{
		Success: true,
		Alerts:  alerts,
		Total:   len(alerts),
	})
}

func (h *Handler) HandleAlert(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	id := mux.Vars(r)["id"]

	var req HandleAlertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	// The authenticated user is the handler of record.
	if req.HandlerID == "" {
		req.HandlerID = principal.UserID
	}

	if err := h.service.HandleAlert(r.Context(), id, req); err != nil {
		switch {
		case errors.Is(err, ErrMissingHandler), errors.Is(err, ErrMissingAction):
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
		case errors.Is(err, ErrReportNotFound):
			respondError(w, http.StatusNotFound, "not_found", "Report not found")
		case errors.Is(err, ErrAlreadyHandled):
			respondError(w, http.StatusConflict, "already_handled", "Alert has already been handled")
		default:
			respondError(w, http.StatusInternalServerError, "handle_failed", err.Error())
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ReportSuccessResponse{
		Success: true,
		Message: "Alert handled successfully",
	})
}

func respondError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   errorType,
		"message": message,
	})
}

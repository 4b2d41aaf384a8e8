package analytics

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/aicare-lung/monitoring-service/internal/patient"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// DashboardStats serves GET /dashboard/stats.
func (h *Handler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Dashboard(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// DailyTrend serves GET /analytics/trend?days=N (default 14, max 365).
func (h *Handler) DailyTrend(w http.ResponseWriter, r *http.Request) {
	days := queryInt(r, "days", 14)
	if days < 1 || days > 365 {
		respondError(w, http.StatusBadRequest, "invalid_parameter", "days must be between 1 and 365")
		return
	}

	points, err := h.service.Trend(r.Context(), days)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"days":    days,
		"trend":   points,
	})
}

// AdherenceTrend serves GET /analytics/adherence?weeks=N (default 8).
func (h *Handler) AdherenceTrend(w http.ResponseWriter, r *http.Request) {
	weeks := queryInt(r, "weeks", 8)
	if weeks < 1 || weeks > 52 {
		respondError(w, http.StatusBadRequest, "invalid_parameter", "weeks must be between 1 and 52")
		return
	}

	points, err := h.service.AdherenceTrend(r.Context(), weeks)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"weeks":     weeks,
		"adherence": points,
	})
}

// SymptomFrequency serves GET /analytics/symptoms?window=N
// (trailing days; 0 or omitted means all reports).
func (h *Handler) SymptomFrequency(w http.ResponseWriter, r *http.Request) {
	window := queryInt(r, "window", 0)

	ranking, err := h.service.SymptomRanking(r.Context(), window)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"window":   window,
		"symptoms": ranking,
	})
}

// CohortStats serves GET /analytics/cohorts?group_by=<dimension>.
func (h *Handler) CohortStats(w http.ResponseWriter, r *http.Request) {
	groupBy := r.URL.Query().Get("group_by")
	if groupBy == "" {
		groupBy = GroupBySurgeryType
	}
	if !ValidGroupBy(groupBy) {
		respondError(w, http.StatusBadRequest, "invalid_parameter",
			"group_by must be one of surgery_type, age_bracket, sex, post_op_phase")
		return
	}

	groups, err := h.service.Cohorts(r.Context(), groupBy)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"group_by": groupBy,
		"cohorts":  groups,
	})
}

// AgreementStats serves GET /analytics/agreement?symptom=<name>.
func (h *Handler) AgreementStats(w http.ResponseWriter, r *http.Request) {
	symptom := r.URL.Query().Get("symptom")
	if symptom == "" {
		symptom = "pain"
	}

	stats, err := h.service.Agreement(r.Context(), symptom)
	if err != nil {
		if errors.Is(err, ErrInsufficientSample) {
			respondJSON(w, http.StatusOK, map[string]interface{}{
				"success":             true,
				"symptom":             symptom,
				"insufficient_sample": true,
				"min_sample":          MinAgreementSample,
			})
			return
		}
		if errors.Is(err, ErrUndefinedCorrelation) {
			respondJSON(w, http.StatusOK, map[string]interface{}{
				"success":               true,
				"symptom":               symptom,
				"undefined_correlation": true,
			})
			return
		}
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"symptom":   symptom,
		"agreement": stats,
	})
}

// PatientCompliance serves GET /analytics/compliance/{patient_id}.
func (h *Handler) PatientCompliance(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patient_id"]
	if patientID == "" {
		respondError(w, http.StatusBadRequest, "missing_parameter", "Patient ID is required")
		return
	}

	stats, err := h.service.Compliance(r.Context(), patientID)
	if err != nil {
		if errors.Is(err, patient.ErrPatientNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "Patient not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"compliance": stats,
	})
}

// Workload serves GET /analytics/workload.
func (h *Handler) Workload(w http.ResponseWriter, r *http.Request) {
	workload, err := h.service.Workload(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"workload": workload,
	})
}

// HighAlertPatients serves GET /analytics/high-alert. Limit defaults
// to the top 10 and is capped at 100.
func (h *Handler) HighAlertPatients(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 10)
	if limit < 1 || limit > 100 {
		limit = 10
	}

	ranked, err := h.service.HighAlert(r.Context(), limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"patients": ranked,
		"total":    len(ranked),
	})
}

// NotReportedToday serves GET /analytics/not-reported, the follow-up
// call list of active patients without a check-in today.
func (h *Handler) NotReportedToday(w http.ResponseWriter, r *http.Request) {
	missing, err := h.service.NotReported(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"patients": missing,
		"total":    len(missing),
	})
}

// EducationStats serves GET /analytics/education.
func (h *Handler) EducationStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Education(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"education": stats,
	})
}

// AlertDistribution serves GET /analytics/alerts.
func (h *Handler) AlertDistribution(w http.ResponseWriter, r *http.Request) {
	dist, err := h.service.AlertBreakdown(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"distribution": dist,
	})
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func respondJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, statusCode int, errorType, message string) {
	respondJSON(w, statusCode, map[string]interface{}{
		"error":   errorType,
		"message": message,
	})
}

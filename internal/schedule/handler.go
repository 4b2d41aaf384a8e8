package schedule

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/aicare-lung/monitoring-service/internal/auth"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

type ScheduleSuccessResponse struct {
	Success  bool              `json:"success"`
	Message  string            `json:"message"`
	Schedule *ScheduleResponse `json:"schedule,omitempty"`
}

type ScheduleListResponse struct {
	Success   bool               `json:"success"`
	Schedules []ScheduleResponse `json:"schedules"`
	Total     int                `json:"total"`
}

func (h *Handler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	var req CreateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	if req.CreatedBy == "" {
		req.CreatedBy = principal.UserID
	}

	sched, err := h.service.CreateSchedule(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrMissingPatientID) || errors.Is(err, ErrMissingType) || errors.Is(err, ErrMissingDate) {
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "creation_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(ScheduleSuccessResponse{
		Success:  true,
		Message:  "Schedule created successfully",
		Schedule: sched,
	})
}

func (h *Handler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	var schedules []ScheduleResponse
	var err error

	if patientID := r.URL.Query().Get("patient_id"); patientID != "" {
		schedules, err = h.service.ListPatientSchedules(r.Context(), patientID)
	} else {
		schedules, err = h.service.ListSchedules(r.Context())
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ScheduleListResponse{
		Success:   true,
		Schedules: schedules,
		Total:     len(schedules),
	})
}

func (h *Handler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	scheduleID := vars["id"]
	if scheduleID == "" {
		respondError(w, http.StatusBadRequest, "missing_parameter", "Schedule ID is required")
		return
	}

	var req UpdateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	sched, err := h.service.UpdateSchedule(r.Context(), scheduleID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrScheduleNotFound):
			respondError(w, http.StatusNotFound, "not_found", "Schedule not found")
		case errors.Is(err, ErrInvalidStatus):
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "update_failed", err.Error())
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ScheduleSuccessResponse{
		Success:  true,
		Message:  "Schedule updated successfully",
		Schedule: sched,
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

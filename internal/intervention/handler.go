package intervention

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aicare-lung/monitoring-service/internal/auth"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

type InterventionSuccessResponse struct {
	Success      bool                  `json:"success"`
	Message      string                `json:"message"`
	Intervention *InterventionResponse `json:"intervention,omitempty"`
}

type InterventionListResponse struct {
	Success       bool                   `json:"success"`
	Interventions []InterventionResponse `json:"interventions"`
	Total         int                    `json:"total"`
}

func (h *Handler) CreateIntervention(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	var req CreateInterventionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	if req.CreatedBy == "" {
		req.CreatedBy = principal.UserID
	}

	iv, err := h.service.CreateIntervention(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrMissingPatientID) || errors.Is(err, ErrMissingType) || errors.Is(err, ErrInvalidOutcome) {
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "creation_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(InterventionSuccessResponse{
		Success:      true,
		Message:      "Intervention logged successfully",
		Intervention: iv,
	})
}

func (h *Handler) ListInterventions(w http.ResponseWriter, r *http.Request) {
	var interventions []InterventionResponse
	var err error

	if patientID := r.URL.Query().Get("patient_id"); patientID != "" {
		interventions, err = h.service.ListPatientInterventions(r.Context(), patientID)
	} else {
		interventions, err = h.service.ListInterventions(r.Context())
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(InterventionListResponse{
		Success:       true,
		Interventions: interventions,
		Total:         len(interventions),
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

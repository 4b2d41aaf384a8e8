package problem

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

type ProblemSuccessResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Problem *ProblemResponse `json:"problem,omitempty"`
}

type ProblemListResponse struct {
	Success  bool              `json:"success"`
	Problems []ProblemResponse `json:"problems"`
	Total    int               `json:"total"`
}

func (h *Handler) CreateProblem(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	var req CreateProblemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	if req.CreatedBy == "" {
		req.CreatedBy = principal.UserID
	}

	prob, err := h.service.CreateProblem(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingPatientID), errors.Is(err, ErrMissingCategory),
			errors.Is(err, ErrMissingDescription), errors.Is(err, ErrInvalidCategory),
			errors.Is(err, ErrInvalidSeverity):
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "creation_failed", err.Error())
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(ProblemSuccessResponse{
		Success: true,
		Message: "Problem created successfully",
		Problem: prob,
	})
}

// ListProblems filters by patient_id and/or status query parameters.
func (h *Handler) ListProblems(w http.ResponseWriter, r *http.Request) {
	var problems []ProblemResponse
	var err error

	if patientID := r.URL.Query().Get("patient_id"); patientID != "" {
		problems, err = h.service.ListPatientProblems(r.Context(), patientID)
	} else {
		problems, err = h.service.ListProblems(r.Context())
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	if status := r.URL.Query().Get("status"); status != "" {
		if !ValidStatus(status) {
			respondError(w, http.StatusBadRequest, "invalid_parameter",
				"status must be one of active, monitoring, resolved")
			return
		}
		filtered := make([]ProblemResponse, 0, len(problems))
		for _, p := range problems {
			if p.Status == status {
				filtered = append(filtered, p)
			}
		}
		problems = filtered
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ProblemListResponse{
		Success:  true,
		Problems: problems,
		Total:    len(problems),
	})
}

func (h *Handler) UpdateProblem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	problemID := vars["id"]
	if problemID == "" {
		respondError(w, http.StatusBadRequest, "missing_parameter", "Problem ID is required")
		return
	}

	var req UpdateProblemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	prob, err := h.service.UpdateProblem(r.Context(), problemID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrProblemNotFound):
			respondError(w, http.StatusNotFound, "not_found", "Problem not found")
		case errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrInvalidSeverity):
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "update_failed", err.Error())
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ProblemSuccessResponse{
		Success: true,
		Message: "Problem updated successfully",
		Problem: prob,
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

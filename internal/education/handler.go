package education

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"

	"github.com/gorilla/mux"

	"github.com/aicare-lung/monitoring-service/internal/auth"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

type PushSuccessResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Push    *PushResponse `json:"push,omitempty"`
}

type PushListResponse struct {
	Success bool           `json:"success"`
	Pushes  []PushResponse `json:"pushes"`
	Total   int            `json:"total"`
}

type MaterialListResponse struct {
	Success   bool       `json:"success"`
	Materials []Material `json:"materials"`
	Total     int        `json:"total"`
}

func (h *Handler) PushMaterial(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	var req PushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	if req.PushedBy == "" {
		req.PushedBy = principal.UserID
	}

	push, err := h.service.PushMaterial(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingPatientID), errors.Is(err, ErrMissingMaterialID), errors.Is(err, ErrInvalidPushType):
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
		case errors.Is(err, ErrUnknownMaterial):
			respondError(w, http.StatusBadRequest, "unknown_material", err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "push_failed", err.Error())
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(PushSuccessResponse{
		Success: true,
		Message: "Education material pushed successfully",
		Push:    push,
	})
}

func (h *Handler) ListPushes(w http.ResponseWriter, r *http.Request) {
	var pushes []PushResponse
	var err error

	if patientID := r.URL.Query().Get("patient_id"); patientID != "" {
		pushes, err = h.service.ListPatientPushes(r.Context(), patientID)
	} else {
		pushes, err = h.service.ListPushes(r.Context())
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(PushListResponse{
		Success: true,
		Pushes:  pushes,
		Total:   len(pushes),
	})
}

func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.service.MarkRead(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrPushNotFound):
			respondError(w, http.StatusNotFound, "not_found", "Education push not found")
		case errors.Is(err, ErrAlreadyRead):
			respondError(w, http.StatusConflict, "already_read", "Education push has already been marked read")
		default:
			respondError(w, http.StatusInternalServerError, "update_failed", err.Error())
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Education push marked read",
	})
}

// ListMaterials serves the static catalog, ordered by ID for a stable
// response.
func (h *Handler) ListMaterials(w http.ResponseWriter, r *http.Request) {
	materials := make([]Material, 0, len(Materials))
	for _, mat := range Materials {
		materials = append(materials, mat)
	}
	sort.Slice(materials, func(i, j int) bool { return materials[i].ID < materials[j].ID })

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(MaterialListResponse{
		Success:   true,
		Materials: materials,
		Total:     len(materials),
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

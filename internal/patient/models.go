package patient

import (
	"time"

	"github.com/aicare-lung/monitoring-service/internal/pagination"
)

// Patient status values over the enrollment lifecycle.
const (
	StatusPendingSetup = "pending_setup"
	StatusHospitalized = "hospitalized"
	StatusActive       = "active"
	StatusDischarged   = "discharged"
	StatusCompleted    = "completed"
	StatusWithdrawn    = "withdrawn"
)

// Risk levels assigned by case-management staff.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// CreatePatientRequest represents the request to enroll a new patient
type CreatePatientRequest struct {
	FullName         string `json:"full_name" validate:"required"`
	PhoneNumber      string `json:"phone_number"`
	BirthDate        string `json:"birth_date"` // Format: YYYY-MM-DD
	Age              int    `json:"age"`
	Sex              string `json:"sex"`
	Diagnosis        string `json:"diagnosis"`
	ClinicalStage    string `json:"clinical_stage"`
	SurgeryType      string `json:"surgery_type"`
	SurgeryDate      string `json:"surgery_date" validate:"required"` // Format: YYYY-MM-DD
	SurgeryApproach  string `json:"surgery_approach"`
	Comorbidities    string `json:"comorbidities"`
	SmokingHistory   string `json:"smoking_history"`
	RiskLevel        string `json:"risk_level"`
	Status           string `json:"status"`
	EmergencyContact string `json:"emergency_contact"`
	EmergencyPhone   string `json:"emergency_phone"`
	Notes            string `json:"notes"`
}

// UpdatePatientRequest represents the request to update a patient
type UpdatePatientRequest struct {
	FullName         *string `json:"full_name,omitempty"`
	PhoneNumber      *string `json:"phone_number,omitempty"`
	BirthDate        *string `json:"birth_date,omitempty"`
	Age              *int    `json:"age,omitempty"`
	Sex              *string `json:"sex,omitempty"`
	Diagnosis        *string `json:"diagnosis,omitempty"`
	ClinicalStage    *string `json:"clinical_stage,omitempty"`
	SurgeryType      *string `json:"surgery_type,omitempty"`
	SurgeryDate      *string `json:"surgery_date,omitempty"`
	SurgeryApproach  *string `json:"surgery_approach,omitempty"`
	Comorbidities    *string `json:"comorbidities,omitempty"`
	SmokingHistory   *string `json:"smoking_history,omitempty"`
	RiskLevel        *string `json:"risk_level,omitempty"`
	Status           *string `json:"status,omitempty"`
	EmergencyContact *string `json:"emergency_contact,omitempty"`
	EmergencyPhone   *string `json:"emergency_phone,omitempty"`
	Notes            *string `json:"notes,omitempty"`
}

// PatientResponse represents the patient data returned to clients.
// PostOpDay is derived from SurgeryDate on every read, never stored.
type PatientResponse struct {
	ID               string     `json:"id"`
	FullName         string     `json:"full_name"`
	PhoneNumber      string     `json:"phone_number"`
	BirthDate        *string    `json:"birth_date,omitempty"`
	Age              int        `json:"age"`
	Sex              string     `json:"sex"`
	Diagnosis        string     `json:"diagnosis"`
	ClinicalStage    string     `json:"clinical_stage"`
	SurgeryType      string     `json:"surgery_type"`
	SurgeryDate      string     `json:"surgery_date"`
	SurgeryApproach  string     `json:"surgery_approach"`
	Comorbidities    string     `json:"comorbidities"`
	SmokingHistory   string     `json:"smoking_history"`
	RiskLevel        string     `json:"risk_level"`
	Status           string     `json:"status"`
	PostOpDay        int        `json:"post_op_day"`
	EmergencyContact string     `json:"emergency_contact"`
	EmergencyPhone   string     `json:"emergency_phone"`
	Notes            string     `json:"notes"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
}

// PaginatedPatientListResponse wraps a patient page with pagination metadata
type PaginatedPatientListResponse struct {
	Success    bool              `json:"success"`
	Patients   []PatientResponse `json:"patients"`
	Pagination pagination.Meta   `json:"pagination"`
}

// ValidStatus reports whether s is a known enrollment status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPendingSetup, StatusHospitalized, StatusActive,
		StatusDischarged, StatusCompleted, StatusWithdrawn:
		return true
	}
	return false
}

// IsActiveStatus reports whether a patient still counts toward the
// active cohort (not discharged, withdrawn or completed).
func IsActiveStatus(s string) bool {
	switch s {
	case StatusDischarged, StatusWithdrawn, StatusCompleted:
		return false
	}
	return true
}

// PostOpDay returns calendar days elapsed since the surgery date,
// computed against the supplied clock. A blank or malformed date
// yields 0, matching the read-side tolerance for bad rows.
func PostOpDay(surgeryDate string, now time.Time) int {
	if surgeryDate == "" {
		return 0
	}
	sd, err := time.Parse("2006-01-02", surgeryDate)
	if err != nil {
		return 0
	}
	y1, m1, d1 := sd.Date()
	y2, m2, d2 := now.Date()
	start := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	end := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	days := int(end.Sub(start).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

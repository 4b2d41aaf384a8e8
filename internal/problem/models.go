package problem

import "time"

// Problem status values.
const (
	StatusActive     = "active"
	StatusMonitoring = "monitoring"
	StatusResolved   = "resolved"
)

// Severity values.
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityLow    = "low"
)

// Problem categories follow the nursing care plan taxonomy.
const (
	CategoryPhysical      = "physical"
	CategoryPsychological = "psychological"
	CategorySocial        = "social"
	CategorySpiritual     = "spiritual"
	CategorySelfCare      = "self_care"
)

// CreateProblemRequest opens a care problem on a patient's problem list.
type CreateProblemRequest struct {
	PatientID      string `json:"patient_id" validate:"required"`
	Category       string `json:"category" validate:"required"` // physical / psychological / social / spiritual / self_care
	Description    string `json:"description" validate:"required"`
	Severity       string `json:"severity"`
	Goal           string `json:"goal"`
	TargetDate     string `json:"target_date"`     // Format: YYYY-MM-DD
	IdentifiedDate string `json:"identified_date"` // Format: YYYY-MM-DD, defaults to today
	CreatedBy      string `json:"created_by"`
	Notes          string `json:"notes"`
}

// UpdateProblemRequest changes the status, goal, or notes of a problem.
// Moving to resolved stamps the resolved date.
type UpdateProblemRequest struct {
	Status   *string `json:"status,omitempty"`
	Severity *string `json:"severity,omitempty"`
	Goal     *string `json:"goal,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

// ProblemResponse represents a stored care problem
type ProblemResponse struct {
	ID             string     `json:"id"`
	PatientID      string     `json:"patient_id"`
	Category       string     `json:"category"`
	Description    string     `json:"description"`
	Severity       string     `json:"severity,omitempty"`
	Status         string     `json:"status"`
	Goal           string     `json:"goal,omitempty"`
	TargetDate     string     `json:"target_date,omitempty"`
	IdentifiedDate string     `json:"identified_date"`
	ResolvedDate   string     `json:"resolved_date,omitempty"`
	CreatedBy      string     `json:"created_by"`
	Notes          string     `json:"notes,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

// ValidStatus reports whether s is a known problem status.
func ValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusMonitoring, StatusResolved:
		return true
	}
	return false
}

// ValidCategory reports whether s is a known problem category.
func ValidCategory(s string) bool {
	switch s {
	case CategoryPhysical, CategoryPsychological, CategorySocial, CategorySpiritual, CategorySelfCare:
		return true
	}
	return false
}

// ValidSeverity reports whether s is a known severity. Blank is
// allowed; severity may be graded later.
func ValidSeverity(s string) bool {
	switch s {
	case "", SeverityHigh, SeverityMedium, SeverityLow:
		return true
	}
	return false
}

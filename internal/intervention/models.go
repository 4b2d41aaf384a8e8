package intervention

import "time"

// Outcome values for a logged care action.
const (
	OutcomeResolved  = "resolved"
	OutcomeImproved  = "improved"
	OutcomeUnchanged = "unchanged"
	OutcomeWorsened  = "worsened"
	OutcomeReferred  = "referred"
)

// CreateInterventionRequest logs a care action for a patient, optionally
// tied to the symptom report that triggered it.
type CreateInterventionRequest struct {
	PatientID        string `json:"patient_id" validate:"required"`
	ReportID         string `json:"report_id"`
	Type             string `json:"type" validate:"required"` // phone_call / video_consult / education / referral / medication_adjustment
	Category         string `json:"category"`
	Method           string `json:"method"`
	DurationMinutes  int    `json:"duration_minutes"`
	ProblemAddressed string `json:"problem_addressed"`
	Content          string `json:"content"`
	PreSymptomScore  int    `json:"pre_symptom_score"`
	PostSymptomScore int    `json:"post_symptom_score"`
	Outcome          string `json:"outcome"`
	FollowUpDate     string `json:"follow_up_date"` // Format: YYYY-MM-DD
	CreatedBy        string `json:"created_by"`
	Notes            string `json:"notes"`
}

// InterventionResponse represents a stored intervention record
type InterventionResponse struct {
	ID               string    `json:"id"`
	PatientID        string    `json:"patient_id"`
	ReportID         string    `json:"report_id,omitempty"`
	Date             string    `json:"date"`
	Type             string    `json:"type"`
	Category         string    `json:"category"`
	Method           string    `json:"method"`
	DurationMinutes  int       `json:"duration_minutes"`
	ProblemAddressed string    `json:"problem_addressed"`
	Content          string    `json:"content"`
	PreSymptomScore  int       `json:"pre_symptom_score"`
	PostSymptomScore int       `json:"post_symptom_score"`
	Outcome          string    `json:"outcome"`
	FollowUpDate     string    `json:"follow_up_date,omitempty"`
	CreatedBy        string    `json:"created_by"`
	Notes            string    `json:"notes,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// ValidOutcome reports whether s is a known outcome value. Blank is
// allowed; the outcome may be recorded later.
func ValidOutcome(s string) bool {
	switch s {
	case "", OutcomeResolved, OutcomeImproved, OutcomeUnchanged, OutcomeWorsened, OutcomeReferred:
		return true
	}
	return false
}

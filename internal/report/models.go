package report

import (
	"time"

	"github.com/aicare-lung/monitoring-service/internal/triage"
)

// CreateReportRequest represents a patient-side daily check-in.
type CreateReportRequest struct {
	PatientID    string `json:"patient_id" validate:"required"`
	PatientName  string `json:"patient_name"`
	Date         string `json:"date"`          // Format: YYYY-MM-DD, defaults to today
	ReportMethod string `json:"report_method"` // ai_chat / questionnaire / voice

	OverallScore  int `json:"overall_score"`
	PainScore     int `json:"pain_score"`
	FatigueScore  int `json:"fatigue_score"`
	DyspneaScore  int `json:"dyspnea_score"`
	CoughScore    int `json:"cough_score"`
	SleepScore    int `json:"sleep_score"`
	AppetiteScore int `json:"appetite_score"`
	MoodScore     int `json:"mood_score"`

	HasFever         bool `json:"has_fever"`
	HasWoundIssue    bool `json:"has_wound_issue"`
	HasBloodInSputum bool `json:"has_blood_in_sputum"`

	PainDescription    string `json:"pain_description"`
	FatigueDescription string `json:"fatigue_description"`
	DyspneaDescription string `json:"dyspnea_description"`
	CoughDescription   string `json:"cough_description"`

	// Raw structured-questionnaire payload, kept verbatim for the
	// AI-vs-questionnaire agreement analysis.
	QuestionnaireJSON string `json:"questionnaire_json"`
	AISummary         string `json:"ai_summary"`
	AdditionalNotes   string `json:"additional_notes"`
}

// HandleAlertRequest marks a pending alert as handled.
type HandleAlertRequest struct {
	HandlerID string `json:"handler_id" validate:"required"`
	Action    string `json:"action" validate:"required"`
	Notes     string `json:"notes"`
}

// SymptomReport is a stored check-in with its derived triage fields.
// AlertLevel is computed once at ingest and only recomputed when the
// report is resubmitted, never by a reader.
type SymptomReport struct {
	ID           string    `json:"id"`
	PatientID    string    `json:"patient_id"`
	PatientName  string    `json:"patient_name"`
	Date         string    `json:"date"`
	Timestamp    time.Time `json:"timestamp"`
	ReportMethod string    `json:"report_method"`

	OverallScore  int `json:"overall_score"`
	PainScore     int `json:"pain_score"`
	FatigueScore  int `json:"fatigue_score"`
	DyspneaScore  int `json:"dyspnea_score"`
	CoughScore    int `json:"cough_score"`
	SleepScore    int `json:"sleep_score"`
	AppetiteScore int `json:"appetite_score"`
	MoodScore     int `json:"mood_score"`

	HasFever         bool `json:"has_fever"`
	HasWoundIssue    bool `json:"has_wound_issue"`
	HasBloodInSputum bool `json:"has_blood_in_sputum"`

	PainDescription    string `json:"pain_description,omitempty"`
	FatigueDescription string `json:"fatigue_description,omitempty"`
	DyspneaDescription string `json:"dyspnea_description,omitempty"`
	CoughDescription   string `json:"cough_description,omitempty"`

	AvgScore     float64 `json:"avg_score"`
	MaxScoreItem string  `json:"max_score_item"`

	QuestionnaireJSON string `json:"questionnaire_json,omitempty"`
	AISummary         string `json:"ai_summary,omitempty"`
	AdditionalNotes   string `json:"additional_notes,omitempty"`

	AlertLevel triage.Level `json:"alert_level"`

	Handled        bool       `json:"handled"`
	HandledBy      string     `json:"handled_by,omitempty"`
	HandledTime    *time.Time `json:"handled_time,omitempty"`
	HandlingAction string     `json:"handling_action,omitempty"`
	HandlingNotes  string     `json:"handling_notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// parseLevel maps a stored level string to a triage level. Unknown or
// blank values fall back to green rather than failing the row.
func parseLevel(s string) triage.Level {
	if triage.Valid(s) {
		return triage.Level(s)
	}
	return triage.LevelGreen
}

// TriageInput maps the report's scores and flags to a classifier input.
func (r *SymptomReport) TriageInput() triage.Input {
	return triage.Input{
		OverallScore:     r.OverallScore,
		PainScore:        r.PainScore,
		FatigueScore:     r.FatigueScore,
		DyspneaScore:     r.DyspneaScore,
		CoughScore:       r.CoughScore,
		SleepScore:       r.SleepScore,
		AppetiteScore:    r.AppetiteScore,
		MoodScore:        r.MoodScore,
		HasFever:         r.HasFever,
		HasWoundIssue:    r.HasWoundIssue,
		HasBloodInSputum: r.HasBloodInSputum,
	}
}

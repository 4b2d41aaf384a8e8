package schedule

import "time"

// Schedule status values.
const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// CreateScheduleRequest books a follow-up appointment or video consult.
type CreateScheduleRequest struct {
	PatientID     string `json:"patient_id" validate:"required"`
	ScheduleType  string `json:"schedule_type" validate:"required"` // clinic_visit / video_consult / phone_follow_up / lab_test
	ScheduledDate string `json:"scheduled_date" validate:"required"` // Format: YYYY-MM-DD
	ScheduledTime string `json:"scheduled_time"`                     // Format: HH:MM
	Location      string `json:"location"`
	Provider      string `json:"provider"`
	Notes         string `json:"notes"`
	CreatedBy     string `json:"created_by"`
}

// UpdateScheduleRequest changes the status or result of an entry.
type UpdateScheduleRequest struct {
	Status *string `json:"status,omitempty"`
	Result *string `json:"result,omitempty"`
	Notes  *string `json:"notes,omitempty"`
}

// ScheduleResponse represents a stored schedule entry
type ScheduleResponse struct {
	ID            string     `json:"id"`
	PatientID     string     `json:"patient_id"`
	ScheduleType  string     `json:"schedule_type"`
	ScheduledDate string     `json:"scheduled_date"`
	ScheduledTime string     `json:"scheduled_time,omitempty"`
	Location      string     `json:"location,omitempty"`
	Provider      string     `json:"provider,omitempty"`
	Status        string     `json:"status"`
	Result        string     `json:"result,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	CreatedBy     string     `json:"created_by"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

// ValidStatus reports whether s is a known schedule status.
func ValidStatus(s string) bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

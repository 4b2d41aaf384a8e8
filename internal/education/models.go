package education

import "time"

// Push status values.
const (
	StatusSent = "sent"
	StatusRead = "read"
)

// Push type values.
const (
	PushTypeManual = "manual"
	PushTypeAuto   = "auto"
)

// Material is an entry in the education catalog. The catalog ships
// with the service; pushes reference materials by ID.
type Material struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Timing      string `json:"timing"`
}

// Materials is the post-op education catalog for lung surgery patients.
var Materials = map[string]Material{
	"BREATHING": {
		ID:          "BREATHING",
		Title:       "Breathing exercise training",
		Category:    "breathing",
		Description: "Deep breathing, cough technique, and incentive spirometer use after surgery",
		Timing:      "D+1~D+7",
	},
	"PAIN": {
		ID:          "PAIN",
		Title:       "Pain control guide",
		Category:    "pain_control",
		Description: "Post-op pain management with medication and non-drug relief methods",
		Timing:      "D+1~D+14",
	},
	"WOUND": {
		ID:          "WOUND",
		Title:       "Wound care",
		Category:    "wound_care",
		Description: "Wound cleaning, dressing changes, and recognizing signs of infection",
		Timing:      "D+3~D+14",
	},
	"HOME": {
		ID:          "HOME",
		Title:       "Home care guide",
		Category:    "home_care",
		Description: "Daily living precautions and activity advice after discharge",
		Timing:      "pre-discharge",
	},
	"WARNING": {
		ID:          "WARNING",
		Title:       "Warning signs",
		Category:    "warning_signs",
		Description: "Signs requiring immediate medical attention: fever, dyspnea, wound problems",
		Timing:      "all phases",
	},
	"EXERCISE": {
		ID:          "EXERCISE",
		Title:       "Post-op exercise program",
		Category:    "rehabilitation",
		Description: "Graded activity, shoulder range-of-motion exercises, and walking training",
		Timing:      "D+7~D+30",
	},
	"NUTRITION": {
		ID:          "NUTRITION",
		Title:       "Nutrition guide",
		Category:    "nutrition",
		Description: "Post-op dietary advice, protein intake, and vitamin supplementation",
		Timing:      "all phases",
	},
	"MEDICATION": {
		ID:          "MEDICATION",
		Title:       "Medication guide",
		Category:    "medication",
		Description: "Discharge medication instructions and side effects to watch for",
		Timing:      "pre-discharge",
	},
	"FOLLOWUP": {
		ID:          "FOLLOWUP",
		Title:       "Clinic follow-up guide",
		Category:    "follow_up",
		Description: "Return visit timing, planned tests, and preparation notes",
		Timing:      "pre-discharge",
	},
}

// AutoPushRule schedules catalog materials against the post-op day.
type AutoPushRule struct {
	Day       int      `json:"day"`
	Materials []string `json:"materials"`
}

// AutoPushRules is the default day-based push schedule.
var AutoPushRules = []AutoPushRule{
	{Day: 1, Materials: []string{"BREATHING", "PAIN"}},
	{Day: 3, Materials: []string{"WOUND"}},
	{Day: 5, Materials: []string{"WARNING"}},
	{Day: 7, Materials: []string{"EXERCISE", "HOME"}},
	{Day: 14, Materials: []string{"NUTRITION"}},
	{Day: 30, Materials: []string{"FOLLOWUP"}},
}

// MaterialsForDay returns the catalog materials due on a given post-op
// day, or nil when no rule matches.
func MaterialsForDay(day int) []Material {
	for _, rule := range AutoPushRules {
		if rule.Day != day {
			continue
		}
		out := make([]Material, 0, len(rule.Materials))
		for _, id := range rule.Materials {
			if mat, ok := Materials[id]; ok {
				out = append(out, mat)
			}
		}
		return out
	}
	return nil
}

// PushRequest sends one catalog material to one patient. Title and
// category are resolved from the catalog, never taken from the caller.
type PushRequest struct {
	PatientID  string `json:"patient_id" validate:"required"`
	MaterialID string `json:"material_id" validate:"required"`
	PushType   string `json:"push_type"` // manual / auto, defaults to manual
	PushedBy   string `json:"pushed_by"`
}

// PushResponse represents a stored education push
type PushResponse struct {
	ID            string     `json:"id"`
	PatientID     string     `json:"patient_id"`
	MaterialID    string     `json:"material_id"`
	MaterialTitle string     `json:"material_title"`
	Category      string     `json:"category"`
	PushType      string     `json:"push_type"`
	PushedBy      string     `json:"pushed_by"`
	PushedAt      time.Time  `json:"pushed_at"`
	ReadAt        *time.Time `json:"read_at,omitempty"`
	Status        string     `json:"status"`
}

// ValidPushType reports whether s is a known push type. Blank is
// allowed and defaults to manual.
func ValidPushType(s string) bool {
	switch s {
	case "", PushTypeManual, PushTypeAuto:
		return true
	}
	return false
}

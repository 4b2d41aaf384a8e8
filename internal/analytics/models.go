package analytics

// dateFormat is the calendar-day layout shared by all reducers.
const dateFormat = "2006-01-02"

// DashboardStats is the KPI row of the overview dashboard.
type DashboardStats struct {
	TotalPatients      int     `json:"total_patients"`
	ActivePatients     int     `json:"active_patients"`
	TodayReports       int     `json:"today_reports"`
	PendingAlerts      int     `json:"pending_alerts"`
	TodayAdherenceRate float64 `json:"today_adherence_rate"`
	TotalInterventions int     `json:"total_interventions"`
	TodaySchedules     int     `json:"today_schedules"`

	StatusDistribution map[string]int `json:"status_distribution"`
	RiskDistribution   map[string]int `json:"risk_distribution"`

	// Warnings lists entity collections that could not be loaded;
	// the remaining stats are computed from whatever was available.
	Warnings []string `json:"warnings,omitempty"`
}

// TrendPoint is one calendar day of the daily report trend,
// bucketed by alert level.
type TrendPoint struct {
	Date   string `json:"date"`
	Total  int    `json:"total"`
	Red    int    `json:"red"`
	Yellow int    `json:"yellow"`
	Green  int    `json:"green"`
}

// WeeklyAdherencePoint is one week-window of the adherence trend.
type WeeklyAdherencePoint struct {
	WeekStart     string  `json:"week_start"`
	Reports       int     `json:"reports"`
	Expected      int     `json:"expected"`
	AdherenceRate float64 `json:"adherence_rate"`
}

// SymptomCount is one entry of the moderate-or-worse symptom ranking.
type SymptomCount struct {
	Symptom string `json:"symptom"`
	Count   int    `json:"count"`
}

// CohortGroup is one partition of a cohort comparison.
type CohortGroup struct {
	Group        string  `json:"group"`
	PatientCount int     `json:"patient_count"`
	ReportCount  int     `json:"report_count"`
	MeanScore    float64 `json:"mean_score"`
	RedRate      float64 `json:"red_rate"`
}

// AgreementStats compares structured questionnaire scores against
// AI-extracted scores over paired observations.
type AgreementStats struct {
	SampleSize int     `json:"sample_size"`
	PearsonR   float64 `json:"pearson_r"`
	PValue     float64 `json:"p_value"`
	MAE        float64 `json:"mae"`
	Bias       float64 `json:"bias"`
	LoAUpper   float64 `json:"loa_upper"`
	LoALower   float64 `json:"loa_lower"`
}

// ScorePair is one paired observation for agreement analysis.
type ScorePair struct {
	Questionnaire float64 `json:"questionnaire"`
	AI            float64 `json:"ai"`
}

// ComplianceStats summarizes one patient's check-in compliance.
type ComplianceStats struct {
	PatientID      string  `json:"patient_id"`
	TotalDays      int     `json:"total_days"`
	TotalCompleted int     `json:"total_completed"`
	CurrentStreak  int     `json:"current_streak"`
	ComplianceRate float64 `json:"compliance_rate"`
	TodayReported  bool    `json:"today_reported"`
}

// AlertDistribution counts reports per alert level, split by handled state.
type AlertDistribution struct {
	Red             int `json:"red"`
	Yellow          int `json:"yellow"`
	Green           int `json:"green"`
	RedHandled      int `json:"red_handled"`
	YellowHandled   int `json:"yellow_handled"`
	RedUnhandled    int `json:"red_unhandled"`
	YellowUnhandled int `json:"yellow_unhandled"`
}

// HighAlertPatient is one row of the frequent-alert patient ranking.
type HighAlertPatient struct {
	PatientID   string `json:"patient_id"`
	PatientName string `json:"patient_name"`
	Red         int    `json:"red"`
	Yellow      int    `json:"yellow"`
	Total       int    `json:"total"`
}

// HandlerWorkload is one case manager's handled-alert and
// intervention volume.
type HandlerWorkload struct {
	Handler       string `json:"handler"`
	AlertsHandled int    `json:"alerts_handled"`
	Interventions int    `json:"interventions"`
	Total         int    `json:"total"`
}

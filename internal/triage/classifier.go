package triage

// Level is the triage urgency derived from a symptom report.
type Level string

const (
	LevelGreen  Level = "green"
	LevelYellow Level = "yellow"
	LevelRed    Level = "red"
)

// Escalation thresholds from the clinical protocol. Pain and dyspnea
// escalate to red at lower values than the other symptoms.
const (
	RedPainThreshold    = 7
	RedDyspneaThreshold = 6
	YellowPainThreshold = 4
	YellowDyspneaThresh = 4
	YellowOverallThresh = 5
)

// Input holds the self-reported symptom scores (0-10) and safety flags
// of a single check-in. Missing scores are zero.
type Input struct {
	OverallScore     int
	PainScore        int
	FatigueScore     int
	DyspneaScore     int
	CoughScore       int
	SleepScore       int
	AppetiteScore    int
	MoodScore        int
	HasFever         bool
	HasWoundIssue    bool
	HasBloodInSputum bool
}

// Classify maps a symptom report to a triage level. The function is
// total: out-of-range scores are clamped, red is checked before yellow.
// Any safety flag is an automatic red regardless of numeric scores.
func Classify(in Input) Level {
	pain := clamp(in.PainScore)
	dyspnea := clamp(in.DyspneaScore)
	overall := clamp(in.OverallScore)

	if pain >= RedPainThreshold ||
		dyspnea >= RedDyspneaThreshold ||
		in.HasFever ||
		in.HasWoundIssue ||
		in.HasBloodInSputum {
		return LevelRed
	}

	if pain >= YellowPainThreshold ||
		dyspnea >= YellowDyspneaThresh ||
		overall >= YellowOverallThresh {
		return LevelYellow
	}

	return LevelGreen
}

// IsAlert reports whether a level requires case-manager attention.
func IsAlert(l Level) bool {
	return l == LevelRed || l == LevelYellow
}

// Valid reports whether s is a known triage level.
func Valid(s string) bool {
	switch Level(s) {
	case LevelGreen, LevelYellow, LevelRed:
		return true
	}
	return false
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}

package analytics

import (
	"time"

	"github.com/aicare-lung/monitoring-service/internal/patient"
	"github.com/aicare-lung/monitoring-service/internal/report"
)

// PatientCompliance summarizes one patient's check-in compliance:
// expected days since surgery, distinct reported days, the current
// consecutive-day streak and the overall rate. A streak broken only
// by a missing report today is counted from yesterday backwards.
func PatientCompliance(p patient.PatientResponse, reports []report.SymptomReport, now time.Time) ComplianceStats {
	totalDays := patient.PostOpDay(p.SurgeryDate, now)

	completed := make(map[string]struct{})
	for _, r := range reports {
		if r.PatientID != p.ID || r.Date == "" {
			continue
		}
		completed[r.Date] = struct{}{}
	}

	today := now.Format(dateFormat)
	_, todayReported := completed[today]

	streakFrom := now
	if !todayReported {
		streakFrom = now.AddDate(0, 0, -1)
	}
	streak := 0
	for {
		if _, ok := completed[streakFrom.Format(dateFormat)]; !ok {
			break
		}
		streak++
		streakFrom = streakFrom.AddDate(0, 0, -1)
	}

	rate := 0.0
	if totalDays > 0 {
		rate = round1(float64(len(completed)) / float64(totalDays) * 100)
	}

	return ComplianceStats{
		PatientID:      p.ID,
		TotalDays:      totalDays,
		TotalCompleted: len(completed),
		CurrentStreak:  streak,
		ComplianceRate: rate,
		TodayReported:  todayReported,
	}
}

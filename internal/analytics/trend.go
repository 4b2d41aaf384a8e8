package analytics

import (
	"sort"
	"time"

	"github.com/aicare-lung/monitoring-service/internal/patient"
	"github.com/aicare-lung/monitoring-service/internal/report"
	"github.com/aicare-lung/monitoring-service/internal/triage"
)

// DailyTrend buckets reports into the last nDays calendar days,
// today first. The series always has exactly nDays points; days
// without reports contribute zero counts.
func DailyTrend(reports []report.SymptomReport, nDays int, now time.Time) []TrendPoint {
	if nDays <= 0 {
		return []TrendPoint{}
	}

	points := make([]TrendPoint, nDays)
	index := make(map[string]*TrendPoint, nDays)
	for i := 0; i < nDays; i++ {
		date := now.AddDate(0, 0, -i).Format(dateFormat)
		points[i] = TrendPoint{Date: date}
		index[date] = &points[i]
	}

	for _, r := range reports {
		point, ok := index[r.Date]
		if !ok {
			continue
		}
		point.Total++
		switch r.AlertLevel {
		case triage.LevelRed:
			point.Red++
		case triage.LevelYellow:
			point.Yellow++
		default:
			point.Green++
		}
	}

	return points
}

// WeeklyAdherence computes the adherence trend over the last nWeeks
// week-windows, oldest first. Each window's expected volume is the
// active patient count times seven; the rate is capped at 100.
func WeeklyAdherence(reports []report.SymptomReport, patients []patient.PatientResponse, nWeeks int, now time.Time) []WeeklyAdherencePoint {
	if nWeeks <= 0 {
		return []WeeklyAdherencePoint{}
	}

	active := ActivePatientCount(patients)
	expected := active * 7

	points := make([]WeeklyAdherencePoint, 0, nWeeks)
	for i := nWeeks - 1; i >= 0; i-- {
		windowStart := now.AddDate(0, 0, -7*(i+1)).Format(dateFormat)
		windowEnd := now.AddDate(0, 0, -7*i).Format(dateFormat)

		count := 0
		for _, r := range reports {
			if r.Date >= windowStart && r.Date < windowEnd {
				count++
			}
		}

		denominator := expected
		if denominator < 1 {
			denominator = 1
		}
		rate := float64(count) / float64(denominator) * 100
		if rate > 100 {
			rate = 100
		}

		points = append(points, WeeklyAdherencePoint{
			WeekStart:     windowStart,
			Reports:       count,
			Expected:      expected,
			AdherenceRate: round1(rate),
		})
	}

	return points
}

// ModerateScoreThreshold marks a sub-score as moderate or worse.
const ModerateScoreThreshold = 4

// SymptomFrequency counts, per named symptom, how many reports in the
// trailing window scored that symptom at moderate or worse, ranked
// descending. windowDays <= 0 means all reports.
func SymptomFrequency(reports []report.SymptomReport, windowDays int, now time.Time) []SymptomCount {
	cutoff := ""
	if windowDays > 0 {
		cutoff = now.AddDate(0, 0, -windowDays).Format(dateFormat)
	}

	counts := make(map[string]int)
	for _, r := range reports {
		if cutoff != "" && r.Date < cutoff {
			continue
		}
		for symptom, score := range map[string]int{
			"pain":     r.PainScore,
			"fatigue":  r.FatigueScore,
			"dyspnea":  r.DyspneaScore,
			"cough":    r.CoughScore,
			"sleep":    r.SleepScore,
			"appetite": r.AppetiteScore,
			"mood":     r.MoodScore,
		} {
			if score >= ModerateScoreThreshold {
				counts[symptom]++
			}
		}
	}

	ranked := make([]SymptomCount, 0, len(counts))
	for symptom, count := range counts {
		ranked = append(ranked, SymptomCount{Symptom: symptom, Count: count})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Symptom < ranked[j].Symptom
	})
	return ranked
}

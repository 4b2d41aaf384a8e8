package analytics

import (
	"math"
	"time"

	"github.com/aicare-lung/monitoring-service/internal/patient"
	"github.com/aicare-lung/monitoring-service/internal/report"
	"github.com/aicare-lung/monitoring-service/internal/triage"
)

// Cohort grouping dimensions.
const (
	GroupBySurgeryType = "surgery_type"
	GroupByAgeBracket  = "age_bracket"
	GroupBySex         = "sex"
	GroupByPostOpPhase = "post_op_phase"
)

// ValidGroupBy reports whether dim is a known cohort dimension.
func ValidGroupBy(dim string) bool {
	switch dim {
	case GroupBySurgeryType, GroupByAgeBracket, GroupBySex, GroupByPostOpPhase:
		return true
	}
	return false
}

// AgeBracket maps an age to its cohort bracket.
func AgeBracket(age int) string {
	switch {
	case age < 50:
		return "<50"
	case age < 60:
		return "50-59"
	case age < 70:
		return "60-69"
	default:
		return "70+"
	}
}

// PostOpPhase maps a post-op day to its recovery phase.
func PostOpPhase(postOpDay int) string {
	switch {
	case postOpDay <= 7:
		return "D0-7"
	case postOpDay <= 30:
		return "D8-30"
	case postOpDay <= 90:
		return "D31-90"
	default:
		return "D91+"
	}
}

// CohortStats partitions patients along groupBy and reports, per group,
// the patient count, report count, mean overall score and red-alert
// rate (as a percentage of the group's reports). Unknown dimensions
// return nil. Group order is fixed for the bracketed dimensions and
// first-seen for surgery type.
func CohortStats(patients []patient.PatientResponse, reports []report.SymptomReport, groupBy string, now time.Time) []CohortGroup {
	var order []string
	assign := func(p patient.PatientResponse) string { return "" }

	switch groupBy {
	case GroupBySurgeryType:
		seen := make(map[string]struct{})
		for _, p := range patients {
			t := p.SurgeryType
			if t == "" {
				t = "unknown"
			}
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				order = append(order, t)
			}
		}
		assign = func(p patient.PatientResponse) string {
			if p.SurgeryType == "" {
				return "unknown"
			}
			return p.SurgeryType
		}
	case GroupByAgeBracket:
		order = []string{"<50", "50-59", "60-69", "70+"}
		assign = func(p patient.PatientResponse) string { return AgeBracket(p.Age) }
	case GroupBySex:
		order = []string{"male", "female"}
		assign = func(p patient.PatientResponse) string { return p.Sex }
	case GroupByPostOpPhase:
		order = []string{"D0-7", "D8-30", "D31-90", "D91+"}
		assign = func(p patient.PatientResponse) string {
			return PostOpPhase(patient.PostOpDay(p.SurgeryDate, now))
		}
	default:
		return nil
	}

	groupOf := make(map[string]string, len(patients))
	patientCounts := make(map[string]int)
	for _, p := range patients {
		group := assign(p)
		groupOf[p.ID] = group
		patientCounts[group]++
	}

	type accum struct {
		reports  int
		scoreSum float64
		red      int
	}
	accums := make(map[string]*accum)
	for _, r := range reports {
		group, ok := groupOf[r.PatientID]
		if !ok {
			continue // dangling patient_id fails to join
		}
		a, ok := accums[group]
		if !ok {
			a = &accum{}
			accums[group] = a
		}
		a.reports++
		a.scoreSum += float64(r.OverallScore)
		if r.AlertLevel == triage.LevelRed {
			a.red++
		}
	}

	stats := make([]CohortGroup, 0, len(order))
	for _, group := range order {
		g := CohortGroup{
			Group:        group,
			PatientCount: patientCounts[group],
		}
		if a, ok := accums[group]; ok && a.reports > 0 {
			g.ReportCount = a.reports
			g.MeanScore = round2(a.scoreSum / float64(a.reports))
			g.RedRate = round1(float64(a.red) / float64(a.reports) * 100)
		}
		stats = append(stats, g)
	}
	return stats
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

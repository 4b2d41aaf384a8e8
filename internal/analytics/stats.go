package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/aicare-lung/monitoring-service/internal/intervention"
	"github.com/aicare-lung/monitoring-service/internal/patient"
	"github.com/aicare-lung/monitoring-service/internal/report"
	"github.com/aicare-lung/monitoring-service/internal/schedule"
	"github.com/aicare-lung/monitoring-service/internal/triage"
)

// ActivePatientCount counts patients still under follow-up, excluding
// discharged, withdrawn and completed enrollments.
func ActivePatientCount(patients []patient.PatientResponse) int {
	count := 0
	for _, p := range patients {
		if patient.IsActiveStatus(p.Status) {
			count++
		}
	}
	return count
}

// TodayAdherenceRate is the share of active patients with at least one
// report dated today, as a percentage. Zero active patients yields 0.
func TodayAdherenceRate(reports []report.SymptomReport, patients []patient.PatientResponse, now time.Time) float64 {
	active := ActivePatientCount(patients)
	if active == 0 {
		return 0
	}

	today := now.Format(dateFormat)
	reported := make(map[string]struct{})
	for _, r := range reports {
		if r.Date == today {
			reported[r.PatientID] = struct{}{}
		}
	}

	return float64(len(reported)) / float64(active) * 100
}

// TodayReportCount counts reports dated today.
func TodayReportCount(reports []report.SymptomReport, now time.Time) int {
	today := now.Format(dateFormat)
	count := 0
	for _, r := range reports {
		if r.Date == today {
			count++
		}
	}
	return count
}

// TodayScheduleCount counts follow-up entries still scheduled for today.
func TodayScheduleCount(schedules []schedule.ScheduleResponse, now time.Time) int {
	today := now.Format(dateFormat)
	count := 0
	for _, s := range schedules {
		if s.ScheduledDate == today && s.Status == schedule.StatusScheduled {
			count++
		}
	}
	return count
}

// StatusDistribution counts patients per enrollment status.
func StatusDistribution(patients []patient.PatientResponse) map[string]int {
	counts := make(map[string]int)
	for _, p := range patients {
		counts[p.Status]++
	}
	return counts
}

// RiskDistribution counts patients per risk level. Patients without a
// risk level are bucketed under "unclassified".
func RiskDistribution(patients []patient.PatientResponse) map[string]int {
	counts := make(map[string]int)
	for _, p := range patients {
		risk := p.RiskLevel
		if risk == "" {
			risk = "unclassified"
		}
		counts[risk]++
	}
	return counts
}

// NotReportedToday lists active patients without a report dated today,
// for the follow-up call list.
func NotReportedToday(patients []patient.PatientResponse, reports []report.SymptomReport, now time.Time) []patient.PatientResponse {
	today := now.Format(dateFormat)
	reported := make(map[string]struct{})
	for _, r := range reports {
		if r.Date == today {
			reported[r.PatientID] = struct{}{}
		}
	}

	var missing []patient.PatientResponse
	for _, p := range patients {
		if !patient.IsActiveStatus(p.Status) {
			continue
		}
		if _, ok := reported[p.ID]; !ok {
			missing = append(missing, p)
		}
	}
	return missing
}

// AlertLevelDistribution counts reports per alert level, split by
// handled state for the red and yellow tiers.
func AlertLevelDistribution(reports []report.SymptomReport) AlertDistribution {
	var d AlertDistribution
	for _, r := range reports {
		switch r.AlertLevel {
		case triage.LevelRed:
			d.Red++
			if r.Handled {
				d.RedHandled++
			} else {
				d.RedUnhandled++
			}
		case triage.LevelYellow:
			d.Yellow++
			if r.Handled {
				d.YellowHandled++
			} else {
				d.YellowUnhandled++
			}
		default:
			d.Green++
		}
	}
	return d
}

// HighAlertPatients ranks patients by red+yellow alert volume,
// descending, returning at most limit entries.
func HighAlertPatients(reports []report.SymptomReport, limit int) []HighAlertPatient {
	byPatient := make(map[string]*HighAlertPatient)
	for _, r := range reports {
		if !triage.IsAlert(r.AlertLevel) {
			continue
		}
		entry, ok := byPatient[r.PatientID]
		if !ok {
			entry = &HighAlertPatient{PatientID: r.PatientID, PatientName: r.PatientName}
			byPatient[r.PatientID] = entry
		}
		if r.AlertLevel == triage.LevelRed {
			entry.Red++
		} else {
			entry.Yellow++
		}
		entry.Total++
	}

	ranked := make([]HighAlertPatient, 0, len(byPatient))
	for _, entry := range byPatient {
		ranked = append(ranked, *entry)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Total != ranked[j].Total {
			return ranked[i].Total > ranked[j].Total
		}
		return ranked[i].PatientID < ranked[j].PatientID
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// WorkloadStats aggregates per-handler volume: alerts handled plus
// interventions logged, ranked by total descending.
func WorkloadStats(reports []report.SymptomReport, interventions []intervention.InterventionResponse) []HandlerWorkload {
	byHandler := make(map[string]*HandlerWorkload)

	get := func(handler string) *HandlerWorkload {
		entry, ok := byHandler[handler]
		if !ok {
			entry = &HandlerWorkload{Handler: handler}
			byHandler[handler] = entry
		}
		return entry
	}

	for _, r := range reports {
		if r.Handled && r.HandledBy != "" {
			entry := get(r.HandledBy)
			entry.AlertsHandled++
			entry.Total++
		}
	}
	for _, iv := range interventions {
		if iv.CreatedBy != "" {
			entry := get(iv.CreatedBy)
			entry.Interventions++
			entry.Total++
		}
	}

	ranked := make([]HandlerWorkload, 0, len(byHandler))
	for _, entry := range byHandler {
		ranked = append(ranked, *entry)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Total != ranked[j].Total {
			return ranked[i].Total > ranked[j].Total
		}
		return ranked[i].Handler < ranked[j].Handler
	})
	return ranked
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

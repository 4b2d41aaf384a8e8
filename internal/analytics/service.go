package analytics

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aicare-lung/monitoring-service/internal/education"
	"github.com/aicare-lung/monitoring-service/internal/intervention"
	"github.com/aicare-lung/monitoring-service/internal/patient"
	"github.com/aicare-lung/monitoring-service/internal/report"
	"github.com/aicare-lung/monitoring-service/internal/schedule"
)

// Consumer-side views of the listing services feeding the reducers.
type PatientLister interface {
	ListPatients(ctx context.Context) ([]patient.PatientResponse, error)
	GetPatient(ctx context.Context, id string) (*patient.PatientResponse, error)
}

type ReportLister interface {
	ListReports(ctx context.Context) ([]report.SymptomReport, error)
	ListPatientReports(ctx context.Context, patientID string) ([]report.SymptomReport, error)
}

type InterventionLister interface {
	ListInterventions(ctx context.Context) ([]intervention.InterventionResponse, error)
}

type ScheduleLister interface {
	ListSchedules(ctx context.Context) ([]schedule.ScheduleResponse, error)
}

type EducationLister interface {
	ListPushes(ctx context.Context) ([]education.PushResponse, error)
}

// Service runs the aggregation reducers over cached entity lists.
// All derived values are recomputed from the raw collections on every
// call; nothing aggregate is persisted.
type Service struct {
	patients      PatientLister
	reports       ReportLister
	interventions InterventionLister
	schedules     ScheduleLister
	pushes        EducationLister

	// now is injectable for tests.
	now func() time.Time
}

func NewService(patients PatientLister, reports ReportLister, interventions InterventionLister, schedules ScheduleLister, pushes EducationLister) *Service {
	return &Service{
		patients:      patients,
		reports:       reports,
		interventions: interventions,
		schedules:     schedules,
		pushes:        pushes,
		now:           time.Now,
	}
}

// Dashboard assembles the overview KPI block. A collection that fails
// to load is reported as a warning and its dependent stats degrade to
// zero values; the rest of the dashboard still renders.
func (s *Service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	now := s.now()
	stats := &DashboardStats{}

	patients, err := s.patients.ListPatients(ctx)
	if err != nil {
		log.Printf("Warning: dashboard could not load patients: %v", err)
		stats.Warnings = append(stats.Warnings, "patients unavailable")
	}

	reports, err := s.reports.ListReports(ctx)
	if err != nil {
		log.Printf("Warning: dashboard could not load reports: %v", err)
		stats.Warnings = append(stats.Warnings, "reports unavailable")
	}

	interventions, err := s.interventions.ListInterventions(ctx)
	if err != nil {
		log.Printf("Warning: dashboard could not load interventions: %v", err)
		stats.Warnings = append(stats.Warnings, "interventions unavailable")
	}

	schedules, err := s.schedules.ListSchedules(ctx)
	if err != nil {
		log.Printf("Warning: dashboard could not load schedules: %v", err)
		stats.Warnings = append(stats.Warnings, "schedules unavailable")
	}

	stats.TotalPatients = len(patients)
	stats.ActivePatients = ActivePatientCount(patients)
	stats.TodayReports = TodayReportCount(reports, now)
	stats.PendingAlerts = len(report.FilterPending(reports))
	stats.TodayAdherenceRate = round1(TodayAdherenceRate(reports, patients, now))
	stats.TotalInterventions = len(interventions)
	stats.TodaySchedules = TodayScheduleCount(schedules, now)
	stats.StatusDistribution = StatusDistribution(patients)
	stats.RiskDistribution = RiskDistribution(patients)

	return stats, nil
}

// Trend returns the n-day daily report series.
func (s *Service) Trend(ctx context.Context, nDays int) ([]TrendPoint, error) {
	reports, err := s.reports.ListReports(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load reports for trend: %w", err)
	}
	return DailyTrend(reports, nDays, s.now()), nil
}

// AdherenceTrend returns the weekly adherence series over nWeeks.
func (s *Service) AdherenceTrend(ctx context.Context, nWeeks int) ([]WeeklyAdherencePoint, error) {
	reports, err := s.reports.ListReports(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load reports for adherence trend: %w", err)
	}
	patients, err := s.patients.ListPatients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load patients for adherence trend: %w", err)
	}
	return WeeklyAdherence(reports, patients, nWeeks, s.now()), nil
}

// SymptomRanking returns the moderate-or-worse symptom frequency over
// a trailing window (days; <= 0 means all reports).
func (s *Service) SymptomRanking(ctx context.Context, windowDays int) ([]SymptomCount, error) {
	reports, err := s.reports.ListReports(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load reports for symptom ranking: %w", err)
	}
	return SymptomFrequency(reports, windowDays, s.now()), nil
}

// Cohorts partitions patients along groupBy and aggregates each group.
func (s *Service) Cohorts(ctx context.Context, groupBy string) ([]CohortGroup, error) {
	if !ValidGroupBy(groupBy) {
		return nil, fmt.Errorf("unknown cohort dimension %q", groupBy)
	}
	patients, err := s.patients.ListPatients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load patients for cohort stats: %w", err)
	}
	reports, err := s.reports.ListReports(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load reports for cohort stats: %w", err)
	}
	return CohortStats(patients, reports, groupBy, s.now()), nil
}

// Agreement computes questionnaire-vs-AI agreement statistics for one
// symptom across all reports.
func (s *Service) Agreement(ctx context.Context, symptom string) (*AgreementStats, error) {
	reports, err := s.reports.ListReports(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load reports for agreement stats: %w", err)
	}
	return ComputeAgreement(ExtractPairs(reports, symptom))
}

// Compliance summarizes one patient's check-in compliance.
func (s *Service) Compliance(ctx context.Context, patientID string) (*ComplianceStats, error) {
	p, err := s.patients.GetPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	reports, err := s.reports.ListPatientReports(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load reports for compliance stats: %w", err)
	}
	stats := PatientCompliance(*p, reports, s.now())
	return &stats, nil
}

// Workload aggregates per-handler alert and intervention volume.
func (s *Service) Workload(ctx context.Context) ([]HandlerWorkload, error) {
	reports, err := s.reports.ListReports(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load reports for workload stats: %w", err)
	}
	interventions, err := s.interventions.ListInterventions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load interventions for workload stats: %w", err)
	}
	return WorkloadStats(reports, interventions), nil
}

// HighAlert ranks patients by red and yellow alert volume.
func (s *Service) HighAlert(ctx context.Context, limit int) ([]HighAlertPatient, error) {
	reports, err := s.reports.ListReports(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load reports for high-alert ranking: %w", err)
	}
	return HighAlertPatients(reports, limit), nil
}

// NotReported lists active patients without a check-in dated today.
func (s *Service) NotReported(ctx context.Context) ([]patient.PatientResponse, error) {
	patients, err := s.patients.ListPatients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load patients for follow-up list: %w", err)
	}
	reports, err := s.reports.ListReports(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load reports for follow-up list: %w", err)
	}
	return NotReportedToday(patients, reports, s.now()), nil
}

// AlertBreakdown counts reports per alert level and handled state.
func (s *Service) AlertBreakdown(ctx context.Context) (*AlertDistribution, error) {
	reports, err := s.reports.ListReports(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load reports for alert breakdown: %w", err)
	}
	d := AlertLevelDistribution(reports)
	return &d, nil
}

// Education summarizes push and read volume across the education
// program.
func (s *Service) Education(ctx context.Context) (*EducationStats, error) {
	pushes, err := s.pushes.ListPushes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load pushes for education stats: %w", err)
	}
	return ComputeEducationStats(pushes), nil
}

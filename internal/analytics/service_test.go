package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aicare-lung/monitoring-service/internal/education"
	"github.com/aicare-lung/monitoring-service/internal/intervention"
	"github.com/aicare-lung/monitoring-service/internal/patient"
	"github.com/aicare-lung/monitoring-service/internal/report"
	"github.com/aicare-lung/monitoring-service/internal/schedule"
	"github.com/aicare-lung/monitoring-service/internal/triage"
)

type mockPatientLister struct {
	ListPatientsFunc func(ctx context.Context) ([]patient.PatientResponse, error)
	GetPatientFunc   func(ctx context.Context, id string) (*patient.PatientResponse, error)
}

func (m *mockPatientLister) ListPatients(ctx context.Context) ([]patient.PatientResponse, error) {
	return m.ListPatientsFunc(ctx)
}

func (m *mockPatientLister) GetPatient(ctx context.Context, id string) (*patient.PatientResponse, error) {
	return m.GetPatientFunc(ctx, id)
}

type mockReportLister struct {
	ListReportsFunc        func(ctx context.Context) ([]report.SymptomReport, error)
	ListPatientReportsFunc func(ctx context.Context, patientID string) ([]report.SymptomReport, error)
}

func (m *mockReportLister) ListReports(ctx context.Context) ([]report.SymptomReport, error) {
	return m.ListReportsFunc(ctx)
}

func (m *mockReportLister) ListPatientReports(ctx context.Context, patientID string) ([]report.SymptomReport, error) {
	return m.ListPatientReportsFunc(ctx, patientID)
}

type mockInterventionLister struct {
	ListInterventionsFunc func(ctx context.Context) ([]intervention.InterventionResponse, error)
}

func (m *mockInterventionLister) ListInterventions(ctx context.Context) ([]intervention.InterventionResponse, error) {
	return m.ListInterventionsFunc(ctx)
}

type mockScheduleLister struct {
	ListSchedulesFunc func(ctx context.Context) ([]schedule.ScheduleResponse, error)
}

func (m *mockScheduleLister) ListSchedules(ctx context.Context) ([]schedule.ScheduleResponse, error) {
	return m.ListSchedulesFunc(ctx)
}

type mockEducationLister struct {
	ListPushesFunc func(ctx context.Context) ([]education.PushResponse, error)
}

func (m *mockEducationLister) ListPushes(ctx context.Context) ([]education.PushResponse, error) {
	return m.ListPushesFunc(ctx)
}

func newTestService(patients []patient.PatientResponse, reports []report.SymptomReport, interventions []intervention.InterventionResponse) *Service {
	svc := NewService(
		&mockPatientLister{
			ListPatientsFunc: func(ctx context.Context) ([]patient.PatientResponse, error) {
				return patients, nil
			},
			GetPatientFunc: func(ctx context.Context, id string) (*patient.PatientResponse, error) {
				for i := range patients {
					if patients[i].ID == id {
						return &patients[i], nil
					}
				}
				return nil, errors.New("patient not found")
			},
		},
		&mockReportLister{
			ListReportsFunc: func(ctx context.Context) ([]report.SymptomReport, error) {
				return reports, nil
			},
			ListPatientReportsFunc: func(ctx context.Context, patientID string) ([]report.SymptomReport, error) {
				var out []report.SymptomReport
				for _, r := range reports {
					if r.PatientID == patientID {
						out = append(out, r)
					}
				}
				return out, nil
			},
		},
		&mockInterventionLister{
			ListInterventionsFunc: func(ctx context.Context) ([]intervention.InterventionResponse, error) {
				return interventions, nil
			},
		},
		&mockScheduleLister{
			ListSchedulesFunc: func(ctx context.Context) ([]schedule.ScheduleResponse, error) {
				return nil, nil
			},
		},
		&mockEducationLister{
			ListPushesFunc: func(ctx context.Context) ([]education.PushResponse, error) {
				return nil, nil
			},
		},
	)
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestService_Dashboard(t *testing.T) {
	today := testNow.Format("2006-01-02")
	patients := []patient.PatientResponse{
		{ID: "p1", Status: patient.StatusActive},
		{ID: "p2", Status: patient.StatusActive},
		{ID: "p3", Status: patient.StatusDischarged},
	}
	reports := []report.SymptomReport{
		{PatientID: "p1", Date: today, AlertLevel: triage.LevelRed},
		{PatientID: "p2", Date: today, AlertLevel: triage.LevelGreen},
	}
	interventions := []intervention.InterventionResponse{{ID: "i1"}}

	svc := newTestService(patients, reports, interventions)

	stats, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TotalPatients != 3 || stats.ActivePatients != 2 {
		t.Errorf("patients = %d/%d, want 3 total, 2 active", stats.TotalPatients, stats.ActivePatients)
	}
	if stats.TodayReports != 2 {
		t.Errorf("today reports = %d, want 2", stats.TodayReports)
	}
	if stats.PendingAlerts != 1 {
		t.Errorf("pending alerts = %d, want 1", stats.PendingAlerts)
	}
	if stats.TodayAdherenceRate != 100 {
		t.Errorf("adherence = %v, want 100", stats.TodayAdherenceRate)
	}
	if stats.TotalInterventions != 1 {
		t.Errorf("interventions = %d, want 1", stats.TotalInterventions)
	}
	if len(stats.Warnings) != 0 {
		t.Errorf("warnings = %v, want none", stats.Warnings)
	}
}

func TestService_DashboardDegradesOnPartialFailure(t *testing.T) {
	svc := NewService(
		&mockPatientLister{
			ListPatientsFunc: func(ctx context.Context) ([]patient.PatientResponse, error) {
				return nil, errors.New("store unreachable")
			},
		},
		&mockReportLister{
			ListReportsFunc: func(ctx context.Context) ([]report.SymptomReport, error) {
				return []report.SymptomReport{{PatientID: "p1", AlertLevel: triage.LevelRed}}, nil
			},
		},
		&mockInterventionLister{
			ListInterventionsFunc: func(ctx context.Context) ([]intervention.InterventionResponse, error) {
				return nil, nil
			},
		},
		&mockScheduleLister{
			ListSchedulesFunc: func(ctx context.Context) ([]schedule.ScheduleResponse, error) {
				return nil, nil
			},
		},
		&mockEducationLister{
			ListPushesFunc: func(ctx context.Context) ([]education.PushResponse, error) {
				return nil, nil
			},
		},
	)

	stats, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("dashboard must not fail outright on a partial load failure, got %v", err)
	}
	if len(stats.Warnings) != 1 || stats.Warnings[0] != "patients unavailable" {
		t.Errorf("warnings = %v, want [patients unavailable]", stats.Warnings)
	}
	if stats.PendingAlerts != 1 {
		t.Errorf("pending alerts = %d, want 1 from the collection that did load", stats.PendingAlerts)
	}
}

func TestService_CohortsRejectsUnknownDimension(t *testing.T) {
	svc := newTestService(nil, nil, nil)
	if _, err := svc.Cohorts(context.Background(), "favorite_color"); err == nil {
		t.Error("expected error for unknown cohort dimension")
	}
}

func TestService_AgreementInsufficientSample(t *testing.T) {
	reports := []report.SymptomReport{
		{PainScore: 5, QuestionnaireJSON: `{"pain": 4}`},
		{PainScore: 3, QuestionnaireJSON: `{"pain": 3}`},
	}
	svc := newTestService(nil, reports, nil)

	_, err := svc.Agreement(context.Background(), "pain")
	if !errors.Is(err, ErrInsufficientSample) {
		t.Errorf("got err %v, want ErrInsufficientSample", err)
	}
}

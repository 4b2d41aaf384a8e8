package report

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/aicare-lung/monitoring-service/internal/cache"
	"github.com/aicare-lung/monitoring-service/internal/messaging"
	"github.com/aicare-lung/monitoring-service/internal/telemetry"
	"github.com/aicare-lung/monitoring-service/internal/triage"
)

// scoredSymptoms are the per-symptom fields used for the avg score and
// the max-score item, in protocol order.
var scoredSymptoms = []struct {
	name  string
	value func(*CreateReportRequest) int
}{
	{"pain", func(r *CreateReportRequest) int { return r.PainScore }},
	{"fatigue", func(r *CreateReportRequest) int { return r.FatigueScore }},
	{"dyspnea", func(r *CreateReportRequest) int { return r.DyspneaScore }},
	{"cough", func(r *CreateReportRequest) int { return r.CoughScore }},
	{"sleep", func(r *CreateReportRequest) int { return r.SleepScore }},
	{"appetite", func(r *CreateReportRequest) int { return r.AppetiteScore }},
	{"mood", func(r *CreateReportRequest) int { return r.MoodScore }},
}

type Service struct {
	repo      RepositoryInterface
	publisher messaging.PublisherInterface
	metrics   *telemetry.Metrics
	listCache *cache.Cache[[]SymptomReport]
}

func NewService(repo RepositoryInterface, publisher messaging.PublisherInterface, metrics *telemetry.Metrics) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		metrics:   metrics,
		listCache: cache.New[[]SymptomReport](cache.DefaultTTL),
	}
}

// IngestReport stores a check-in with its derived triage fields. The
// alert level is classified here, once, and never recomputed by readers.
func (s *Service) IngestReport(ctx context.Context, req CreateReportRequest) (*SymptomReport, error) {
	if req.PatientID == "" {
		return nil, ErrMissingPatientID
	}

	now := time.Now()
	date := req.Date
	if date == "" {
		date = now.Format("2006-01-02")
	}

	rep := &SymptomReport{
		PatientID:          req.PatientID,
		PatientName:        req.PatientName,
		Date:               date,
		Timestamp:          now,
		ReportMethod:       req.ReportMethod,
		OverallScore:       req.OverallScore,
		PainScore:          req.PainScore,
		FatigueScore:       req.FatigueScore,
		DyspneaScore:       req.DyspneaScore,
		CoughScore:         req.CoughScore,
		SleepScore:         req.SleepScore,
		AppetiteScore:      req.AppetiteScore,
		MoodScore:          req.MoodScore,
		HasFever:           req.HasFever,
		HasWoundIssue:      req.HasWoundIssue,
		HasBloodInSputum:   req.HasBloodInSputum,
		PainDescription:    req.PainDescription,
		FatigueDescription: req.FatigueDescription,
		DyspneaDescription: req.DyspneaDescription,
		CoughDescription:   req.CoughDescription,
		QuestionnaireJSON:  req.QuestionnaireJSON,
		AISummary:          req.AISummary,
		AdditionalNotes:    req.AdditionalNotes,
	}

	rep.AvgScore, rep.MaxScoreItem = summarizeScores(&req)
	rep.AlertLevel = triage.Classify(rep.TriageInput())

	created, err := s.repo.CreateReport(ctx, rep)
	if err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	s.listCache.Invalidate()

	if s.metrics != nil {
		s.metrics.RecordReportIngested(ctx, string(created.AlertLevel))
	}

	if s.publisher != nil {
		event := messaging.NewReportCreatedEvent(created.ID, created.PatientID, created.Date, string(created.AlertLevel))
		if err := s.publisher.Publish(ctx, messaging.EventReportCreated, event); err != nil {
			log.Printf("Warning: failed to publish report.created: %v", err)
		}
		if triage.IsAlert(created.AlertLevel) {
			alertEvent := messaging.NewAlertRaisedEvent(created.ID, created.PatientID, string(created.AlertLevel), created.Timestamp)
			if err := s.publisher.Publish(ctx, messaging.EventAlertRaised, alertEvent); err != nil {
				log.Printf("Warning: failed to publish alert.raised: %v", err)
			}
		}
	}

	return created, nil
}

// ListReports returns all reports through the 60s read-through cache.
func (s *Service) ListReports(ctx context.Context) ([]SymptomReport, error) {
	reports, err := s.listCache.Get(ctx, s.repo.ListReports)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}

func (s *Service) ListPatientReports(ctx context.Context, patientID string) ([]SymptomReport, error) {
	reports, err := s.repo.ListPatientReports(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list patient reports: %w", err)
	}
	return reports, nil
}

func (s *Service) GetReport(ctx context.Context, id string) (*SymptomReport, error) {
	rep, err := s.repo.GetReport(ctx, id)
	if err != nil {
		return nil, err
	}
	return rep, nil
}

// PendingAlerts returns unhandled red and yellow reports, red first,
// newest first within a level.
func (s *Service) PendingAlerts(ctx context.Context) ([]SymptomReport, error) {
	reports, err := s.ListReports(ctx)
	if err != nil {
		return nil, err
	}
	return FilterPending(reports), nil
}

// HandleAlert marks a report handled. A second handle attempt on the
// same report fails with ErrAlreadyHandled.
func (s *Service) HandleAlert(ctx context.Context, id string, req HandleAlertRequest) error {
	if req.HandlerID == "" {
		return ErrMissingHandler
	}
	if req.Action == "" {
		return ErrMissingAction
	}

	if err := s.repo.MarkHandled(ctx, id, req.HandlerID, req.Action, req.Notes); err != nil {
		return err
	}

	s.listCache.Invalidate()

	if s.metrics != nil {
		s.metrics.RecordAlertHandled(ctx, req.Action)
	}

	if s.publisher != nil {
		event := messaging.NewAlertHandledEvent(id, req.HandlerID, req.Action)
		if err := s.publisher.Publish(ctx, messaging.EventAlertHandled, event); err != nil {
			log.Printf("Warning: failed to publish alert.handled: %v", err)
		}
	}

	return nil
}

// FilterPending extracts unhandled alerts from a report list and orders
// them for display: red before yellow, then most recent first.
func FilterPending(reports []SymptomReport) []SymptomReport {
	var pending []SymptomReport
	for _, r := range reports {
		if triage.IsAlert(r.AlertLevel) && !r.Handled {
			pending = append(pending, r)
		}
	}

	sort.SliceStable(pending, func(i, j int) bool {
		if pending[i].AlertLevel != pending[j].AlertLevel {
			return pending[i].AlertLevel == triage.LevelRed
		}
		return pending[i].Timestamp.After(pending[j].Timestamp)
	})

	return pending
}

// WaitHours is the elapsed time since a report was submitted, in hours.
// It is a presentation-time value, recomputed on every render.
func WaitHours(timestamp, now time.Time) float64 {
	h := now.Sub(timestamp).Hours()
	if h < 0 {
		return 0
	}
	return h
}

func summarizeScores(req *CreateReportRequest) (avg float64, maxItem string) {
	sum := req.OverallScore
	count := 1
	maxScore := 0
	for _, sym := range scoredSymptoms {
		v := sym.value(req)
		sum += v
		count++
		if v > maxScore {
			maxScore = v
			maxItem = sym.name
		}
	}
	avg = float64(int(float64(sum)/float64(count)*10+0.5)) / 10
	return avg, maxItem
}

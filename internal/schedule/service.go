package schedule

import (
	"context"
	"fmt"
	"log"

	"github.com/aicare-lung/monitoring-service/internal/cache"
	"github.com/aicare-lung/monitoring-service/internal/messaging"
)

// ServiceInterface defines the contract for schedule business logic
type ServiceInterface interface {
	CreateSchedule(ctx context.Context, req CreateScheduleRequest) (*ScheduleResponse, error)
	ListSchedules(ctx context.Context) ([]ScheduleResponse, error)
	ListPatientSchedules(ctx context.Context, patientID string) ([]ScheduleResponse, error)
	UpdateSchedule(ctx context.Context, id string, req UpdateScheduleRequest) (*ScheduleResponse, error)
}

type Service struct {
	repo      RepositoryInterface
	publisher messaging.PublisherInterface
	listCache *cache.Cache[[]ScheduleResponse]
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)

func NewService(repo RepositoryInterface, publisher messaging.PublisherInterface) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		listCache: cache.New[[]ScheduleResponse](cache.DefaultTTL),
	}
}

func (s *Service) CreateSchedule(ctx context.Context, req CreateScheduleRequest) (*ScheduleResponse, error) {
	if req.PatientID == "" {
		return nil, ErrMissingPatientID
	}
	if req.ScheduleType == "" {
		return nil, ErrMissingType
	}
	if req.ScheduledDate == "" {
		return nil, ErrMissingDate
	}

	sched, err := s.repo.CreateSchedule(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create schedule: %w", err)
	}

	s.listCache.Invalidate()

	if s.publisher != nil {
		event := messaging.NewScheduleEvent(messaging.EventScheduleCreated,
			sched.ID, sched.PatientID, sched.ScheduleType, sched.ScheduledDate, sched.Status)
		if err := s.publisher.Publish(ctx, messaging.EventScheduleCreated, event); err != nil {
			log.Printf("Warning: failed to publish schedule.created: %v", err)
		}
	}

	return sched, nil
}

func (s *Service) ListSchedules(ctx context.Context) ([]ScheduleResponse, error) {
	schedules, err := s.listCache.Get(ctx, s.repo.ListSchedules)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	return schedules, nil
}

func (s *Service) ListPatientSchedules(ctx context.Context, patientID string) ([]ScheduleResponse, error) {
	schedules, err := s.repo.ListPatientSchedules(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list patient schedules: %w", err)
	}
	return schedules, nil
}

func (s *Service) UpdateSchedule(ctx context.Context, id string, req UpdateScheduleRequest) (*ScheduleResponse, error) {
	if req.Status != nil && !ValidStatus(*req.Status) {
		return nil, ErrInvalidStatus
	}

	sched, err := s.repo.UpdateSchedule(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.listCache.Invalidate()

	if s.publisher != nil {
		event := messaging.NewScheduleEvent(messaging.EventScheduleUpdated,
			sched.ID, sched.PatientID, sched.ScheduleType, sched.ScheduledDate, sched.Status)
		if err := s.publisher.Publish(ctx, messaging.EventScheduleUpdated, event); err != nil {
			log.Printf("Warning: failed to publish schedule.updated: %v", err)
		}
	}

	return sched, nil
}

package patient

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aicare-lung/monitoring-service/internal/cache"
	"github.com/aicare-lung/monitoring-service/internal/messaging"
	"github.com/aicare-lung/monitoring-service/internal/pagination"
)

type Service struct {
	repo      RepositoryInterface
	publisher messaging.PublisherInterface
	listCache *cache.Cache[[]PatientResponse]
}

func NewService(repo RepositoryInterface, publisher messaging.PublisherInterface) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		listCache: cache.New[[]PatientResponse](cache.DefaultTTL),
	}
}

func (s *Service) CreatePatient(ctx context.Context, req CreatePatientRequest) (*PatientResponse, error) {
	if req.FullName == "" {
		return nil, ErrMissingFullName
	}
	if req.SurgeryDate == "" {
		return nil, ErrMissingSurgeryDate
	}
	if req.Status != "" && !ValidStatus(req.Status) {
		return nil, ErrInvalidStatus
	}
	if req.RiskLevel != "" && req.RiskLevel != RiskLow && req.RiskLevel != RiskMedium && req.RiskLevel != RiskHigh {
		return nil, ErrInvalidRiskLevel
	}

	patient, err := s.repo.CreatePatient(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}

	s.listCache.Invalidate()
	s.derive(patient, time.Now())

	if s.publisher != nil {
		event := messaging.NewPatientCreatedEvent(patient.ID, patient.FullName, patient.SurgeryDate, patient.Status)
		if err := s.publisher.Publish(ctx, messaging.EventPatientCreated, event); err != nil {
			log.Printf("Warning: failed to publish patient.created: %v", err)
		}
	}

	return patient, nil
}

// ListPatients returns all patients through the read-through cache,
// with post-op day derived against the current clock.
func (s *Service) ListPatients(ctx context.Context) ([]PatientResponse, error) {
	cached, err := s.listCache.Get(ctx, s.repo.ListPatients)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}

	now := time.Now()
	patients := make([]PatientResponse, len(cached))
	copy(patients, cached)
	for i := range patients {
		s.derive(&patients[i], now)
	}
	return patients, nil
}

func (s *Service) ListPatientsWithPagination(ctx context.Context, params pagination.Params, search string) (*PaginatedPatientListResponse, error) {
	params.Validate()

	patients, totalCount, err := s.repo.ListPatientsWithPagination(ctx, params.Limit, params.CalculateOffset(), search)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}

	now := time.Now()
	for i := range patients {
		s.derive(&patients[i], now)
	}

	return &PaginatedPatientListResponse{
		Success:    true,
		Patients:   patients,
		Pagination: params.CalculateMeta(totalCount),
	}, nil
}

func (s *Service) GetPatient(ctx context.Context, id string) (*PatientResponse, error) {
	patient, err := s.repo.GetPatient(ctx, id)
	if err != nil {
		return nil, err
	}
	s.derive(patient, time.Now())
	return patient, nil
}

func (s *Service) UpdatePatient(ctx context.Context, id string, req UpdatePatientRequest) (*PatientResponse, error) {
	if req.Status != nil && !ValidStatus(*req.Status) {
		return nil, ErrInvalidStatus
	}

	var oldStatus string
	if req.Status != nil {
		existing, err := s.repo.GetPatient(ctx, id)
		if err != nil {
			return nil, err
		}
		oldStatus = existing.Status
	}

	patient, err := s.repo.UpdatePatient(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.listCache.Invalidate()
	s.derive(patient, time.Now())

	if s.publisher != nil {
		event := messaging.NewPatientUpdatedEvent(patient.ID, patient.FullName)
		if err := s.publisher.Publish(ctx, messaging.EventPatientUpdated, event); err != nil {
			log.Printf("Warning: failed to publish patient.updated: %v", err)
		}
		if req.Status != nil && oldStatus != patient.Status {
			statusEvent := messaging.NewPatientStatusChangedEvent(patient.ID, oldStatus, patient.Status)
			if err := s.publisher.Publish(ctx, messaging.EventPatientStatusChanged, statusEvent); err != nil {
				log.Printf("Warning: failed to publish patient.status_changed: %v", err)
			}
		}
	}

	return patient, nil
}

func (s *Service) DeletePatient(ctx context.Context, id string) error {
	if err := s.repo.DeletePatient(ctx, id); err != nil {
		return err
	}
	s.listCache.Invalidate()
	return nil
}

func (s *Service) derive(p *PatientResponse, now time.Time) {
	p.PostOpDay = PostOpDay(p.SurgeryDate, now)
}

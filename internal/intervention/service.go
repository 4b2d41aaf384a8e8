package intervention

import (
	"context"
	"fmt"
	"log"

	"github.com/aicare-lung/monitoring-service/internal/cache"
	"github.com/aicare-lung/monitoring-service/internal/messaging"
)

// ServiceInterface defines the contract for intervention business logic
type ServiceInterface interface {
	CreateIntervention(ctx context.Context, req CreateInterventionRequest) (*InterventionResponse, error)
	ListInterventions(ctx context.Context) ([]InterventionResponse, error)
	ListPatientInterventions(ctx context.Context, patientID string) ([]InterventionResponse, error)
}

type Service struct {
	repo      RepositoryInterface
	publisher messaging.PublisherInterface
	listCache *cache.Cache[[]InterventionResponse]
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)

func NewService(repo RepositoryInterface, publisher messaging.PublisherInterface) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		listCache: cache.New[[]InterventionResponse](cache.DefaultTTL),
	}
}

func (s *Service) CreateIntervention(ctx context.Context, req CreateInterventionRequest) (*InterventionResponse, error) {
	if req.PatientID == "" {
		return nil, ErrMissingPatientID
	}
	if req.Type == "" {
		return nil, ErrMissingType
	}
	if !ValidOutcome(req.Outcome) {
		return nil, ErrInvalidOutcome
	}

	iv, err := s.repo.CreateIntervention(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create intervention: %w", err)
	}

	s.listCache.Invalidate()

	if s.publisher != nil {
		event := messaging.NewInterventionLoggedEvent(iv.ID, iv.PatientID, iv.Type, iv.Outcome, iv.CreatedBy)
		if err := s.publisher.Publish(ctx, messaging.EventInterventionLogged, event); err != nil {
			log.Printf("Warning: failed to publish intervention.logged: %v", err)
		}
	}

	return iv, nil
}

func (s *Service) ListInterventions(ctx context.Context) ([]InterventionResponse, error) {
	interventions, err := s.listCache.Get(ctx, s.repo.ListInterventions)
	if err != nil {
		return nil, fmt.Errorf("failed to list interventions: %w", err)
	}
	return interventions, nil
}

func (s *Service) ListPatientInterventions(ctx context.Context, patientID string) ([]InterventionResponse, error) {
	interventions, err := s.repo.ListPatientInterventions(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list patient interventions: %w", err)
	}
	return interventions, nil
}

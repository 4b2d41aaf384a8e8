package problem

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aicare-lung/monitoring-service/internal/cache"
	"github.com/aicare-lung/monitoring-service/internal/messaging"
)

// ServiceInterface defines the contract for problem list business logic
type ServiceInterface interface {
	CreateProblem(ctx context.Context, req CreateProblemRequest) (*ProblemResponse, error)
	ListProblems(ctx context.Context) ([]ProblemResponse, error)
	ListPatientProblems(ctx context.Context, patientID string) ([]ProblemResponse, error)
	UpdateProblem(ctx context.Context, id string, req UpdateProblemRequest) (*ProblemResponse, error)
}

type Service struct {
	repo      RepositoryInterface
	publisher messaging.PublisherInterface
	listCache *cache.Cache[[]ProblemResponse]
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)

func NewService(repo RepositoryInterface, publisher messaging.PublisherInterface) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		listCache: cache.New[[]ProblemResponse](cache.DefaultTTL),
	}
}

func (s *Service) CreateProblem(ctx context.Context, req CreateProblemRequest) (*ProblemResponse, error) {
	if req.PatientID == "" {
		return nil, ErrMissingPatientID
	}
	if req.Category == "" {
		return nil, ErrMissingCategory
	}
	if !ValidCategory(req.Category) {
		return nil, ErrInvalidCategory
	}
	if req.Description == "" {
		return nil, ErrMissingDescription
	}
	if !ValidSeverity(req.Severity) {
		return nil, ErrInvalidSeverity
	}

	prob, err := s.repo.CreateProblem(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create problem: %w", err)
	}

	s.listCache.Invalidate()

	if s.publisher != nil {
		event := messaging.NewProblemEvent(messaging.EventProblemIdentified,
			prob.ID, prob.PatientID, prob.Category, prob.Severity, prob.Status)
		if err := s.publisher.Publish(ctx, messaging.EventProblemIdentified, event); err != nil {
			log.Printf("Warning: failed to publish problem.identified: %v", err)
		}
	}

	return prob, nil
}

func (s *Service) ListProblems(ctx context.Context) ([]ProblemResponse, error) {
	problems, err := s.listCache.Get(ctx, s.repo.ListProblems)
	if err != nil {
		return nil, fmt.Errorf("failed to list problems: %w", err)
	}
	return problems, nil
}

func (s *Service) ListPatientProblems(ctx context.Context, patientID string) ([]ProblemResponse, error) {
	problems, err := s.repo.ListPatientProblems(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list patient problems: %w", err)
	}
	return problems, nil
}

// UpdateProblem edits a problem. Transitioning the status to resolved
// stamps the resolved date; a resolve is announced on the bus.
func (s *Service) UpdateProblem(ctx context.Context, id string, req UpdateProblemRequest) (*ProblemResponse, error) {
	if req.Status != nil && !ValidStatus(*req.Status) {
		return nil, ErrInvalidStatus
	}
	if req.Severity != nil && !ValidSeverity(*req.Severity) {
		return nil, ErrInvalidSeverity
	}

	var resolvedDate string
	if req.Status != nil && *req.Status == StatusResolved {
		resolvedDate = time.Now().Format("2006-01-02")
	}

	prob, err := s.repo.UpdateProblem(ctx, id, req, resolvedDate)
	if err != nil {
		return nil, err
	}

	s.listCache.Invalidate()

	if s.publisher != nil && resolvedDate != "" {
		event := messaging.NewProblemEvent(messaging.EventProblemResolved,
			prob.ID, prob.PatientID, prob.Category, prob.Severity, prob.Status)
		if err := s.publisher.Publish(ctx, messaging.EventProblemResolved, event); err != nil {
			log.Printf("Warning: failed to publish problem.resolved: %v", err)
		}
	}

	return prob, nil
}

package education

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aicare-lung/monitoring-service/internal/cache"
	"github.com/aicare-lung/monitoring-service/internal/messaging"
)

// ServiceInterface defines the contract for education push business logic
type ServiceInterface interface {
	PushMaterial(ctx context.Context, req PushRequest) (*PushResponse, error)
	ListPushes(ctx context.Context) ([]PushResponse, error)
	ListPatientPushes(ctx context.Context, patientID string) ([]PushResponse, error)
	MarkRead(ctx context.Context, id string) error
}

type Service struct {
	repo      RepositoryInterface
	publisher messaging.PublisherInterface
	listCache *cache.Cache[[]PushResponse]
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)

func NewService(repo RepositoryInterface, publisher messaging.PublisherInterface) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		listCache: cache.New[[]PushResponse](cache.DefaultTTL),
	}
}

// PushMaterial sends one catalog material to a patient. Title and
// category come from the catalog, keyed by the requested material ID.
func (s *Service) PushMaterial(ctx context.Context, req PushRequest) (*PushResponse, error) {
	if req.PatientID == "" {
		return nil, ErrMissingPatientID
	}
	if req.MaterialID == "" {
		return nil, ErrMissingMaterialID
	}
	if !ValidPushType(req.PushType) {
		return nil, ErrInvalidPushType
	}
	mat, ok := Materials[req.MaterialID]
	if !ok {
		return nil, ErrUnknownMaterial
	}

	pushType := req.PushType
	if pushType == "" {
		pushType = PushTypeManual
	}

	push, err := s.repo.CreatePush(ctx, &PushResponse{
		PatientID:     req.PatientID,
		MaterialID:    mat.ID,
		MaterialTitle: mat.Title,
		Category:      mat.Category,
		PushType:      pushType,
		PushedBy:      req.PushedBy,
		PushedAt:      time.Now(),
		Status:        StatusSent,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create education push: %w", err)
	}

	s.listCache.Invalidate()

	if s.publisher != nil {
		event := messaging.NewEducationEvent(messaging.EventEducationPushed,
			push.ID, push.PatientID, push.MaterialID, push.Category, push.PushType)
		if err := s.publisher.Publish(ctx, messaging.EventEducationPushed, event); err != nil {
			log.Printf("Warning: failed to publish education.pushed: %v", err)
		}
	}

	return push, nil
}

func (s *Service) ListPushes(ctx context.Context) ([]PushResponse, error) {
	pushes, err := s.listCache.Get(ctx, s.repo.ListPushes)
	if err != nil {
		return nil, fmt.Errorf("failed to list education pushes: %w", err)
	}
	return pushes, nil
}

func (s *Service) ListPatientPushes(ctx context.Context, patientID string) ([]PushResponse, error) {
	pushes, err := s.repo.ListPatientPushes(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list patient education pushes: %w", err)
	}
	return pushes, nil
}

// MarkRead records the patient opening a push. A second mark on the
// same push fails with ErrAlreadyRead.
func (s *Service) MarkRead(ctx context.Context, id string) error {
	if err := s.repo.MarkRead(ctx, id, time.Now()); err != nil {
		return err
	}

	s.listCache.Invalidate()

	if s.publisher != nil {
		event := messaging.NewEducationEvent(messaging.EventEducationRead, id, "", "", "", "")
		if err := s.publisher.Publish(ctx, messaging.EventEducationRead, event); err != nil {
			log.Printf("Warning: failed to publish education.read: %v", err)
		}
	}

	return nil
}

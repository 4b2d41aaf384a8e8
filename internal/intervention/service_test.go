package intervention

import (
	"context"
	"errors"
	"testing"

	"github.com/aicare-lung/monitoring-service/internal/testutil"
)

// mockRepository implements RepositoryInterface with function fields
type mockRepository struct {
	createInterventionFunc       func(ctx context.Context, req CreateInterventionRequest) (*InterventionResponse, error)
	listInterventionsFunc        func(ctx context.Context) ([]InterventionResponse, error)
	listPatientInterventionsFunc func(ctx context.Context, patientID string) ([]InterventionResponse, error)
}

func (m *mockRepository) CreateIntervention(ctx context.Context, req CreateInterventionRequest) (*InterventionResponse, error) {
	if m.createInterventionFunc != nil {
		return m.createInterventionFunc(ctx, req)
	}
	return &InterventionResponse{
		ID:        "iv-123",
		PatientID: req.PatientID,
		Type:      req.Type,
		Outcome:   req.Outcome,
		CreatedBy: req.CreatedBy,
	}, nil
}

func (m *mockRepository) ListInterventions(ctx context.Context) ([]InterventionResponse, error) {
	if m.listInterventionsFunc != nil {
		return m.listInterventionsFunc(ctx)
	}
	return nil, nil
}

func (m *mockRepository) ListPatientInterventions(ctx context.Context, patientID string) ([]InterventionResponse, error) {
	if m.listPatientInterventionsFunc != nil {
		return m.listPatientInterventionsFunc(ctx, patientID)
	}
	return nil, nil
}

// TestCreateIntervention_Success tests logging a care action with its event
func TestCreateIntervention_Success(t *testing.T) {
	publisher := testutil.NewMockPublisher()
	service := NewService(&mockRepository{}, publisher)

	iv, err := service.CreateIntervention(context.Background(), CreateInterventionRequest{
		PatientID: "p1",
		Type:      "phone_call",
		Outcome:   OutcomeImproved,
		CreatedBy: "nurse-1",
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if iv.ID == "" {
		t.Error("Expected intervention ID")
	}

	publisher.AssertEventPublished(t, "intervention.logged")
}

// TestCreateIntervention_Validation tests required fields
func TestCreateIntervention_Validation(t *testing.T) {
	service := NewService(&mockRepository{}, nil)
	ctx := context.Background()

	_, err := service.CreateIntervention(ctx, CreateInterventionRequest{Type: "phone_call"})
	if !errors.Is(err, ErrMissingPatientID) {
		t.Errorf("Expected ErrMissingPatientID, got %v", err)
	}

	_, err = service.CreateIntervention(ctx, CreateInterventionRequest{PatientID: "p1"})
	if !errors.Is(err, ErrMissingType) {
		t.Errorf("Expected ErrMissingType, got %v", err)
	}

	_, err = service.CreateIntervention(ctx, CreateInterventionRequest{
		PatientID: "p1",
		Type:      "phone_call",
		Outcome:   "cured",
	})
	if !errors.Is(err, ErrInvalidOutcome) {
		t.Errorf("Expected ErrInvalidOutcome, got %v", err)
	}
}

// TestCreateIntervention_BlankOutcomeAllowed tests deferred outcomes
func TestCreateIntervention_BlankOutcomeAllowed(t *testing.T) {
	service := NewService(&mockRepository{}, nil)

	_, err := service.CreateIntervention(context.Background(), CreateInterventionRequest{
		PatientID: "p1",
		Type:      "education",
	})
	if err != nil {
		t.Errorf("Expected blank outcome to be accepted, got %v", err)
	}
}

// TestListInterventions_CachesReads tests the read-through cache
func TestListInterventions_CachesReads(t *testing.T) {
	calls := 0
	mockRepo := &mockRepository{
		listInterventionsFunc: func(ctx context.Context) ([]InterventionResponse, error) {
			calls++
			return []InterventionResponse{{ID: "iv-1"}}, nil
		},
	}
	service := NewService(mockRepo, nil)
	ctx := context.Background()

	service.ListInterventions(ctx)
	service.ListInterventions(ctx)

	if calls != 1 {
		t.Errorf("Expected 1 repository call, got %d", calls)
	}

	// A write invalidates the cached list
	service.CreateIntervention(ctx, CreateInterventionRequest{PatientID: "p1", Type: "referral"})
	service.ListInterventions(ctx)

	if calls != 2 {
		t.Errorf("Expected refetch after write, repository calls: %d", calls)
	}
}

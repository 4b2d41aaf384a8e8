package problem

import (
	"context"
	"errors"
	"testing"

	"github.com/aicare-lung/monitoring-service/internal/testutil"
)

// mockRepository implements RepositoryInterface with function fields
type mockRepository struct {
	createProblemFunc       func(ctx context.Context, req CreateProblemRequest) (*ProblemResponse, error)
	listProblemsFunc        func(ctx context.Context) ([]ProblemResponse, error)
	listPatientProblemsFunc func(ctx context.Context, patientID string) ([]ProblemResponse, error)
	updateProblemFunc       func(ctx context.Context, id string, req UpdateProblemRequest, resolvedDate string) (*ProblemResponse, error)
}

func (m *mockRepository) CreateProblem(ctx context.Context, req CreateProblemRequest) (*ProblemResponse, error) {
	if m.createProblemFunc != nil {
		return m.createProblemFunc(ctx, req)
	}
	return &ProblemResponse{
		ID:          "prob-123",
		PatientID:   req.PatientID,
		Category:    req.Category,
		Description: req.Description,
		Severity:    req.Severity,
		Status:      StatusActive,
	}, nil
}

func (m *mockRepository) ListProblems(ctx context.Context) ([]ProblemResponse, error) {
	if m.listProblemsFunc != nil {
		return m.listProblemsFunc(ctx)
	}
	return nil, nil
}

func (m *mockRepository) ListPatientProblems(ctx context.Context, patientID string) ([]ProblemResponse, error) {
	if m.listPatientProblemsFunc != nil {
		return m.listPatientProblemsFunc(ctx, patientID)
	}
	return nil, nil
}

func (m *mockRepository) UpdateProblem(ctx context.Context, id string, req UpdateProblemRequest, resolvedDate string) (*ProblemResponse, error) {
	if m.updateProblemFunc != nil {
		return m.updateProblemFunc(ctx, id, req, resolvedDate)
	}
	resp := &ProblemResponse{ID: id, PatientID: "p1", Category: CategoryPhysical, Status: StatusActive}
	if req.Status != nil {
		resp.Status = *req.Status
	}
	resp.ResolvedDate = resolvedDate
	return resp, nil
}

// TestCreateProblem_Success tests opening a problem with its event
func TestCreateProblem_Success(t *testing.T) {
	publisher := testutil.NewMockPublisher()
	service := NewService(&mockRepository{}, publisher)

	prob, err := service.CreateProblem(context.Background(), CreateProblemRequest{
		PatientID:   "p1",
		Category:    CategoryPhysical,
		Description: "persistent wound pain",
		Severity:    SeverityHigh,
		CreatedBy:   "nurse-1",
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if prob.Status != StatusActive {
		t.Errorf("Expected new problem to open as active, got '%s'", prob.Status)
	}

	publisher.AssertEventPublished(t, "problem.identified")
}

// TestCreateProblem_Validation tests required fields and enums
func TestCreateProblem_Validation(t *testing.T) {
	service := NewService(&mockRepository{}, nil)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     CreateProblemRequest
		wantErr error
	}{
		{"missing patient", CreateProblemRequest{Category: CategoryPhysical, Description: "pain"}, ErrMissingPatientID},
		{"missing category", CreateProblemRequest{PatientID: "p1", Description: "pain"}, ErrMissingCategory},
		{"unknown category", CreateProblemRequest{PatientID: "p1", Category: "financial", Description: "pain"}, ErrInvalidCategory},
		{"missing description", CreateProblemRequest{PatientID: "p1", Category: CategorySocial}, ErrMissingDescription},
		{"unknown severity", CreateProblemRequest{PatientID: "p1", Category: CategoryPhysical, Description: "pain", Severity: "catastrophic"}, ErrInvalidSeverity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateProblem(ctx, tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

// TestUpdateProblem_ResolveStampsDate tests the resolved transition
func TestUpdateProblem_ResolveStampsDate(t *testing.T) {
	publisher := testutil.NewMockPublisher()
	var gotResolvedDate string
	mockRepo := &mockRepository{
		updateProblemFunc: func(ctx context.Context, id string, req UpdateProblemRequest, resolvedDate string) (*ProblemResponse, error) {
			gotResolvedDate = resolvedDate
			return &ProblemResponse{ID: id, PatientID: "p1", Status: *req.Status, ResolvedDate: resolvedDate}, nil
		},
	}
	service := NewService(mockRepo, publisher)

	status := StatusResolved
	prob, err := service.UpdateProblem(context.Background(), "prob-1", UpdateProblemRequest{Status: &status})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if gotResolvedDate == "" {
		t.Error("Expected resolved date to be stamped on the resolve transition")
	}
	if prob.ResolvedDate != gotResolvedDate {
		t.Errorf("Resolved date = '%s', want '%s'", prob.ResolvedDate, gotResolvedDate)
	}

	publisher.AssertEventPublished(t, "problem.resolved")
}

// TestUpdateProblem_NonResolveDoesNotAnnounce tests quiet edits
func TestUpdateProblem_NonResolveDoesNotAnnounce(t *testing.T) {
	publisher := testutil.NewMockPublisher()
	service := NewService(&mockRepository{}, publisher)

	status := StatusMonitoring
	if _, err := service.UpdateProblem(context.Background(), "prob-1", UpdateProblemRequest{Status: &status}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	publisher.AssertEventNotPublished(t, "problem.resolved")
}

// TestUpdateProblem_Validation tests enum checks on updates
func TestUpdateProblem_Validation(t *testing.T) {
	service := NewService(&mockRepository{}, nil)
	ctx := context.Background()

	bad := "escalated"
	if _, err := service.UpdateProblem(ctx, "prob-1", UpdateProblemRequest{Status: &bad}); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("Expected ErrInvalidStatus, got %v", err)
	}

	sev := "catastrophic"
	if _, err := service.UpdateProblem(ctx, "prob-1", UpdateProblemRequest{Severity: &sev}); !errors.Is(err, ErrInvalidSeverity) {
		t.Errorf("Expected ErrInvalidSeverity, got %v", err)
	}
}

// TestUpdateProblem_NotFound tests the not-found passthrough
func TestUpdateProblem_NotFound(t *testing.T) {
	mockRepo := &mockRepository{
		updateProblemFunc: func(ctx context.Context, id string, req UpdateProblemRequest, resolvedDate string) (*ProblemResponse, error) {
			return nil, ErrProblemNotFound
		},
	}
	service := NewService(mockRepo, nil)

	goal := "walk 500m daily"
	_, err := service.UpdateProblem(context.Background(), "missing", UpdateProblemRequest{Goal: &goal})
	if !errors.Is(err, ErrProblemNotFound) {
		t.Errorf("Expected ErrProblemNotFound, got %v", err)
	}
}

// TestListProblems_CachesReads tests the read-through cache
func TestListProblems_CachesReads(t *testing.T) {
	calls := 0
	mockRepo := &mockRepository{
		listProblemsFunc: func(ctx context.Context) ([]ProblemResponse, error) {
			calls++
			return []ProblemResponse{{ID: "prob-1"}}, nil
		},
	}
	service := NewService(mockRepo, nil)
	ctx := context.Background()

	service.ListProblems(ctx)
	service.ListProblems(ctx)

	if calls != 1 {
		t.Errorf("Expected 1 repository call, got %d", calls)
	}

	// A write invalidates the cached list
	service.CreateProblem(ctx, CreateProblemRequest{
		PatientID: "p1", Category: CategorySelfCare, Description: "missed medications",
	})
	service.ListProblems(ctx)

	if calls != 2 {
		t.Errorf("Expected refetch after write, repository calls: %d", calls)
	}
}

package education

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aicare-lung/monitoring-service/internal/testutil"
)

// mockRepository implements RepositoryInterface with function fields
type mockRepository struct {
	createPushFunc        func(ctx context.Context, push *PushResponse) (*PushResponse, error)
	listPushesFunc        func(ctx context.Context) ([]PushResponse, error)
	listPatientPushesFunc func(ctx context.Context, patientID string) ([]PushResponse, error)
	markReadFunc          func(ctx context.Context, id string, readAt time.Time) error
}

func (m *mockRepository) CreatePush(ctx context.Context, push *PushResponse) (*PushResponse, error) {
	if m.createPushFunc != nil {
		return m.createPushFunc(ctx, push)
	}
	push.ID = "push-123"
	return push, nil
}

func (m *mockRepository) ListPushes(ctx context.Context) ([]PushResponse, error) {
	if m.listPushesFunc != nil {
		return m.listPushesFunc(ctx)
	}
	return nil, nil
}

func (m *mockRepository) ListPatientPushes(ctx context.Context, patientID string) ([]PushResponse, error) {
	if m.listPatientPushesFunc != nil {
		return m.listPatientPushesFunc(ctx, patientID)
	}
	return nil, nil
}

func (m *mockRepository) MarkRead(ctx context.Context, id string, readAt time.Time) error {
	if m.markReadFunc != nil {
		return m.markReadFunc(ctx, id, readAt)
	}
	return nil
}

// TestPushMaterial_Success tests pushing a catalog material with its event
func TestPushMaterial_Success(t *testing.T) {
	publisher := testutil.NewMockPublisher()
	service := NewService(&mockRepository{}, publisher)

	push, err := service.PushMaterial(context.Background(), PushRequest{
		PatientID:  "p1",
		MaterialID: "BREATHING",
		PushedBy:   "nurse-1",
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if push.MaterialTitle != "Breathing exercise training" {
		t.Errorf("Expected catalog title, got '%s'", push.MaterialTitle)
	}
	if push.Category != "breathing" {
		t.Errorf("Expected catalog category, got '%s'", push.Category)
	}
	if push.PushType != PushTypeManual {
		t.Errorf("Expected push type to default to manual, got '%s'", push.PushType)
	}
	if push.Status != StatusSent {
		t.Errorf("Expected status 'sent', got '%s'", push.Status)
	}

	publisher.AssertEventPublished(t, "education.pushed")
}

// TestPushMaterial_Validation tests required fields and catalog lookup
func TestPushMaterial_Validation(t *testing.T) {
	service := NewService(&mockRepository{}, nil)
	ctx := context.Background()

	_, err := service.PushMaterial(ctx, PushRequest{MaterialID: "PAIN"})
	if !errors.Is(err, ErrMissingPatientID) {
		t.Errorf("Expected ErrMissingPatientID, got %v", err)
	}

	_, err = service.PushMaterial(ctx, PushRequest{PatientID: "p1"})
	if !errors.Is(err, ErrMissingMaterialID) {
		t.Errorf("Expected ErrMissingMaterialID, got %v", err)
	}

	_, err = service.PushMaterial(ctx, PushRequest{PatientID: "p1", MaterialID: "KARAOKE"})
	if !errors.Is(err, ErrUnknownMaterial) {
		t.Errorf("Expected ErrUnknownMaterial, got %v", err)
	}

	_, err = service.PushMaterial(ctx, PushRequest{PatientID: "p1", MaterialID: "PAIN", PushType: "broadcast"})
	if !errors.Is(err, ErrInvalidPushType) {
		t.Errorf("Expected ErrInvalidPushType, got %v", err)
	}
}

// TestMarkRead_AlreadyRead tests the repeated-mark rejection passthrough
func TestMarkRead_AlreadyRead(t *testing.T) {
	mockRepo := &mockRepository{
		markReadFunc: func(ctx context.Context, id string, readAt time.Time) error {
			return ErrAlreadyRead
		},
	}
	service := NewService(mockRepo, testutil.NewMockPublisher())

	err := service.MarkRead(context.Background(), "push-1")
	if !errors.Is(err, ErrAlreadyRead) {
		t.Errorf("Expected ErrAlreadyRead, got %v", err)
	}
}

// TestMarkRead_PublishesEvent tests the read receipt event
func TestMarkRead_PublishesEvent(t *testing.T) {
	publisher := testutil.NewMockPublisher()
	service := NewService(&mockRepository{}, publisher)

	if err := service.MarkRead(context.Background(), "push-1"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	publisher.AssertEventPublished(t, "education.read")
}

// TestListPushes_CachesReads tests the read-through cache
func TestListPushes_CachesReads(t *testing.T) {
	calls := 0
	mockRepo := &mockRepository{
		listPushesFunc: func(ctx context.Context) ([]PushResponse, error) {
			calls++
			return []PushResponse{{ID: "push-1"}}, nil
		},
	}
	service := NewService(mockRepo, nil)
	ctx := context.Background()

	service.ListPushes(ctx)
	service.ListPushes(ctx)

	if calls != 1 {
		t.Errorf("Expected 1 repository call, got %d", calls)
	}

	// A write invalidates the cached list
	service.PushMaterial(ctx, PushRequest{PatientID: "p1", MaterialID: "WOUND"})
	service.ListPushes(ctx)

	if calls != 2 {
		t.Errorf("Expected refetch after write, repository calls: %d", calls)
	}
}

// TestMaterialsForDay tests the day-based auto-push schedule
func TestMaterialsForDay(t *testing.T) {
	day1 := MaterialsForDay(1)
	if len(day1) != 2 || day1[0].ID != "BREATHING" || day1[1].ID != "PAIN" {
		t.Errorf("Day 1 materials = %+v, want breathing and pain control", day1)
	}

	if got := MaterialsForDay(2); got != nil {
		t.Errorf("Day 2 has no rule, got %+v", got)
	}

	day30 := MaterialsForDay(30)
	if len(day30) != 1 || day30[0].ID != "FOLLOWUP" {
		t.Errorf("Day 30 materials = %+v, want follow-up guide", day30)
	}
}

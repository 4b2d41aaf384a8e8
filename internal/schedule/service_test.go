package schedule

import (
	"context"
	"errors"
	"testing"

	"github.com/aicare-lung/monitoring-service/internal/testutil"
)

// mockRepository implements RepositoryInterface with function fields
type mockRepository struct {
	createScheduleFunc       func(ctx context.Context, req CreateScheduleRequest) (*ScheduleResponse, error)
	listSchedulesFunc        func(ctx context.Context) ([]ScheduleResponse, error)
	listPatientSchedulesFunc func(ctx context.Context, patientID string) ([]ScheduleResponse, error)
	updateScheduleFunc       func(ctx context.Context, id string, req UpdateScheduleRequest) (*ScheduleResponse, error)
}

func (m *mockRepository) CreateSchedule(ctx context.Context, req CreateScheduleRequest) (*ScheduleResponse, error) {
	if m.createScheduleFunc != nil {
		return m.createScheduleFunc(ctx, req)
	}
	return &ScheduleResponse{
		ID:            "sched-123",
		PatientID:     req.PatientID,
		ScheduleType:  req.ScheduleType,
		ScheduledDate: req.ScheduledDate,
		Status:        StatusScheduled,
	}, nil
}

func (m *mockRepository) ListSchedules(ctx context.Context) ([]ScheduleResponse, error) {
	if m.listSchedulesFunc != nil {
		return m.listSchedulesFunc(ctx)
	}
	return nil, nil
}

func (m *mockRepository) ListPatientSchedules(ctx context.Context, patientID string) ([]ScheduleResponse, error) {
	if m.listPatientSchedulesFunc != nil {
		return m.listPatientSchedulesFunc(ctx, patientID)
	}
	return nil, nil
}

func (m *mockRepository) UpdateSchedule(ctx context.Context, id string, req UpdateScheduleRequest) (*ScheduleResponse, error) {
	if m.updateScheduleFunc != nil {
		return m.updateScheduleFunc(ctx, id, req)
	}
	return nil, ErrScheduleNotFound
}

// TestCreateSchedule_Success tests booking a follow-up with its event
func TestCreateSchedule_Success(t *testing.T) {
	publisher := testutil.NewMockPublisher()
	service := NewService(&mockRepository{}, publisher)

	sched, err := service.CreateSchedule(context.Background(), CreateScheduleRequest{
		PatientID:     "p1",
		ScheduleType:  "clinic_visit",
		ScheduledDate: "2026-09-10",
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if sched.Status != StatusScheduled {
		t.Errorf("Expected status 'scheduled', got '%s'", sched.Status)
	}

	publisher.AssertEventPublished(t, "schedule.created")
}

// TestCreateSchedule_Validation tests required fields
func TestCreateSchedule_Validation(t *testing.T) {
	service := NewService(&mockRepository{}, nil)
	ctx := context.Background()

	cases := []struct {
		name string
		req  CreateScheduleRequest
		want error
	}{
		{"missing patient", CreateScheduleRequest{ScheduleType: "clinic_visit", ScheduledDate: "2026-09-10"}, ErrMissingPatientID},
		{"missing type", CreateScheduleRequest{PatientID: "p1", ScheduledDate: "2026-09-10"}, ErrMissingType},
		{"missing date", CreateScheduleRequest{PatientID: "p1", ScheduleType: "lab_test"}, ErrMissingDate},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.CreateSchedule(ctx, tc.req)
			if !errors.Is(err, tc.want) {
				t.Errorf("Expected %v, got %v", tc.want, err)
			}
		})
	}
}

// TestUpdateSchedule_InvalidStatus tests status validation on update
func TestUpdateSchedule_InvalidStatus(t *testing.T) {
	service := NewService(&mockRepository{}, nil)

	bad := "postponed-indefinitely"
	_, err := service.UpdateSchedule(context.Background(), "s1", UpdateScheduleRequest{Status: &bad})
	if !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("Expected ErrInvalidStatus, got %v", err)
	}
}

// TestUpdateSchedule_PublishesEvent tests the schedule.updated event
func TestUpdateSchedule_PublishesEvent(t *testing.T) {
	publisher := testutil.NewMockPublisher()
	mockRepo := &mockRepository{
		updateScheduleFunc: func(ctx context.Context, id string, req UpdateScheduleRequest) (*ScheduleResponse, error) {
			return &ScheduleResponse{ID: id, PatientID: "p1", Status: *req.Status}, nil
		},
	}
	service := NewService(mockRepo, publisher)

	done := StatusCompleted
	sched, err := service.UpdateSchedule(context.Background(), "s1", UpdateScheduleRequest{Status: &done})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if sched.Status != StatusCompleted {
		t.Errorf("Expected status 'completed', got '%s'", sched.Status)
	}

	publisher.AssertEventPublished(t, "schedule.updated")
}

// TestUpdateSchedule_NotFound tests the not-found passthrough
func TestUpdateSchedule_NotFound(t *testing.T) {
	service := NewService(&mockRepository{}, nil)

	_, err := service.UpdateSchedule(context.Background(), "missing", UpdateScheduleRequest{})
	if !errors.Is(err, ErrScheduleNotFound) {
		t.Errorf("Expected ErrScheduleNotFound, got %v", err)
	}
}

package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// RepositoryInterface defines the contract for schedule data access
type RepositoryInterface interface {
	CreateSchedule(ctx context.Context, req CreateScheduleRequest) (*ScheduleResponse, error)
	ListSchedules(ctx context.Context) ([]ScheduleResponse, error)
	ListPatientSchedules(ctx context.Context, patientID string) ([]ScheduleResponse, error)
	UpdateSchedule(ctx context.Context, id string, req UpdateScheduleRequest) (*ScheduleResponse, error)
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)

const scheduleColumns = `
	id, patient_id, schedule_type, scheduled_date, scheduled_time, location,
	provider, status, result, notes, created_by, created_at, updated_at`

func (r *Repository) CreateSchedule(ctx context.Context, req CreateScheduleRequest) (*ScheduleResponse, error) {
	id := uuid.New().String()
	createdAt := time.Now()

	query := `
		INSERT INTO aicare.schedules
		(id, patient_id, schedule_type, scheduled_date, scheduled_time, location,
		 provider, status, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(ctx, query,
		id, req.PatientID, req.ScheduleType, req.ScheduledDate, req.ScheduledTime, req.Location,
		req.Provider, StatusScheduled, req.Notes, req.CreatedBy, createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert schedule: %w", err)
	}

	return &ScheduleResponse{
		ID:            id,
		PatientID:     req.PatientID,
		ScheduleType:  req.ScheduleType,
		ScheduledDate: req.ScheduledDate,
		ScheduledTime: req.ScheduledTime,
		Location:      req.Location,
		Provider:      req.Provider,
		Status:        StatusScheduled,
		Notes:         req.Notes,
		CreatedBy:     req.CreatedBy,
		CreatedAt:     createdAt,
	}, nil
}

func (r *Repository) ListSchedules(ctx context.Context) ([]ScheduleResponse, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM aicare.schedules
		ORDER BY scheduled_date DESC, scheduled_time DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedules: %w", err)
	}
	defer rows.Close()

	return scanSchedules(rows)
}

func (r *Repository) ListPatientSchedules(ctx context.Context, patientID string) ([]ScheduleResponse, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM aicare.schedules
		WHERE patient_id = $1
		ORDER BY scheduled_date DESC, scheduled_time DESC
	`

	rows, err := r.db.QueryContext(ctx, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query patient schedules: %w", err)
	}
	defer rows.Close()

	return scanSchedules(rows)
}

func (r *Repository) UpdateSchedule(ctx context.Context, id string, req UpdateScheduleRequest) (*ScheduleResponse, error) {
	var updates []string
	var args []interface{}
	argIndex := 1

	if req.Status != nil {
		updates = append(updates, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, *req.Status)
		argIndex++
	}
	if req.Result != nil {
		updates = append(updates, fmt.Sprintf("result = $%d", argIndex))
		args = append(args, *req.Result)
		argIndex++
	}
	if req.Notes != nil {
		updates = append(updates, fmt.Sprintf("notes = $%d", argIndex))
		args = append(args, *req.Notes)
		argIndex++
	}

	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	updates = append(updates, fmt.Sprintf("updated_at = $%d", argIndex))
	args = append(args, time.Now())
	argIndex++
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE aicare.schedules
		SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(updates, ", "), argIndex, scheduleColumns)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update schedule: %w", err)
	}
	defer rows.Close()

	schedules, err := scanSchedules(rows)
	if err != nil {
		return nil, err
	}
	if len(schedules) == 0 {
		return nil, ErrScheduleNotFound
	}
	return &schedules[0], nil
}

func scanSchedules(rows *sql.Rows) ([]ScheduleResponse, error) {
	var schedules []ScheduleResponse
	for rows.Next() {
		var s ScheduleResponse
		var scheduledTime, location, provider, result, notes, createdBy sql.NullString
		var updatedAt sql.NullTime

		err := rows.Scan(
			&s.ID, &s.PatientID, &s.ScheduleType, &s.ScheduledDate, &scheduledTime, &location,
			&provider, &s.Status, &result, &notes, &createdBy, &s.CreatedAt, &updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan schedule: %w", err)
		}

		s.ScheduledTime = scheduledTime.String
		s.Location = location.String
		s.Provider = provider.String
		s.Result = result.String
		s.Notes = notes.String
		s.CreatedBy = createdBy.String
		if updatedAt.Valid {
			s.UpdatedAt = &updatedAt.Time
		}

		schedules = append(schedules, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating schedules: %w", err)
	}

	return schedules, nil
}

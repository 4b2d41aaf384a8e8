package education

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// RepositoryInterface defines the contract for education push data access
type RepositoryInterface interface {
	CreatePush(ctx context.Context, push *PushResponse) (*PushResponse, error)
	ListPushes(ctx context.Context) ([]PushResponse, error)
	ListPatientPushes(ctx context.Context, patientID string) ([]PushResponse, error)
	MarkRead(ctx context.Context, id string, readAt time.Time) error
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)

const pushColumns = `
	id, patient_id, material_id, material_title, category, push_type,
	pushed_by, pushed_at, read_at, status`

func (r *Repository) CreatePush(ctx context.Context, push *PushResponse) (*PushResponse, error) {
	if push.ID == "" {
		push.ID = uuid.New().String()
	}

	query := `
		INSERT INTO aicare.education_pushes
		(id, patient_id, material_id, material_title, category, push_type,
		 pushed_by, pushed_at, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		push.ID, push.PatientID, push.MaterialID, push.MaterialTitle, push.Category, push.PushType,
		push.PushedBy, push.PushedAt, push.Status,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert education push: %w", err)
	}

	return push, nil
}

func (r *Repository) ListPushes(ctx context.Context) ([]PushResponse, error) {
	query := `
		SELECT ` + pushColumns + `
		FROM aicare.education_pushes
		ORDER BY pushed_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query education pushes: %w", err)
	}
	defer rows.Close()

	return scanPushes(rows)
}

func (r *Repository) ListPatientPushes(ctx context.Context, patientID string) ([]PushResponse, error) {
	query := `
		SELECT ` + pushColumns + `
		FROM aicare.education_pushes
		WHERE patient_id = $1
		ORDER BY pushed_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query patient education pushes: %w", err)
	}
	defer rows.Close()

	return scanPushes(rows)
}

// MarkRead transitions a push from sent to read. The WHERE clause
// doubles as a compare-and-swap: a repeated mark-read matches zero
// rows and is rejected instead of moving the original read timestamp.
func (r *Repository) MarkRead(ctx context.Context, id string, readAt time.Time) error {
	query := `
		UPDATE aicare.education_pushes
		SET read_at = $1, status = $2
		WHERE id = $3 AND read_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query, readAt, StatusRead, id)
	if err != nil {
		return fmt.Errorf("failed to mark education push read: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows > 0 {
		return nil
	}

	// Zero rows: distinguish a missing push from a repeated mark.
	var status string
	err = r.db.QueryRowContext(ctx,
		`SELECT status FROM aicare.education_pushes WHERE id = $1`, id,
	).Scan(&status)
	if err == sql.ErrNoRows {
		return ErrPushNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check education push state: %w", err)
	}
	return ErrAlreadyRead
}

func scanPushes(rows *sql.Rows) ([]PushResponse, error) {
	var pushes []PushResponse
	for rows.Next() {
		var p PushResponse
		var pushedBy sql.NullString
		var readAt sql.NullTime

		err := rows.Scan(
			&p.ID, &p.PatientID, &p.MaterialID, &p.MaterialTitle, &p.Category, &p.PushType,
			&pushedBy, &p.PushedAt, &readAt, &p.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan education push: %w", err)
		}

		p.PushedBy = pushedBy.String
		if readAt.Valid {
			p.ReadAt = &readAt.Time
		}

		pushes = append(pushes, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating education pushes: %w", err)
	}

	return pushes, nil
}

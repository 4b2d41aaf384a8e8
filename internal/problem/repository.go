package problem

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

// RepositoryInterface defines the contract for problem list data access
type RepositoryInterface interface {
	CreateProblem(ctx context.Context, req CreateProblemRequest) (*ProblemResponse, error)
	ListProblems(ctx context.Context) ([]ProblemResponse, error)
	ListPatientProblems(ctx context.Context, patientID string) ([]ProblemResponse, error)
	UpdateProblem(ctx context.Context, id string, req UpdateProblemRequest, resolvedDate string) (*ProblemResponse, error)
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)

const problemColumns = `
	id, patient_id, category, description, severity, status, goal,
	target_date, identified_date, resolved_date, created_by, notes,
	created_at, updated_at`

func (r *Repository) CreateProblem(ctx context.Context, req CreateProblemRequest) (*ProblemResponse, error) {
	id := uuid.New().String()
	createdAt := time.Now()

	identified := req.IdentifiedDate
	if identified == "" {
		identified = createdAt.Format("2006-01-02")
	}

	query := `
		INSERT INTO aicare.problems
		(id, patient_id, category, description, severity, status, goal,
		 target_date, identified_date, created_by, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	var targetDate interface{}
	if req.TargetDate != "" {
		targetDate = req.TargetDate
	}

	_, err := r.db.ExecContext(ctx, query,
		id, req.PatientID, req.Category, req.Description, req.Severity, StatusActive, req.Goal,
		targetDate, identified, req.CreatedBy, req.Notes, createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert problem: %w", err)
	}

	return &ProblemResponse{
		ID:             id,
		PatientID:      req.PatientID,
		Category:       req.Category,
		Description:    req.Description,
		Severity:       req.Severity,
		Status:         StatusActive,
		Goal:           req.Goal,
		TargetDate:     req.TargetDate,
		IdentifiedDate: identified,
		CreatedBy:      req.CreatedBy,
		Notes:          req.Notes,
		CreatedAt:      createdAt,
	}, nil
}

func (r *Repository) ListProblems(ctx context.Context) ([]ProblemResponse, error) {
	query := `
		SELECT ` + problemColumns + `
		FROM aicare.problems
		ORDER BY identified_date DESC, created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query problems: %w", err)
	}
	defer rows.Close()

	return scanProblems(rows)
}

func (r *Repository) ListPatientProblems(ctx context.Context, patientID string) ([]ProblemResponse, error) {
	query := `
		SELECT ` + problemColumns + `
		FROM aicare.problems
		WHERE patient_id = $1
		ORDER BY identified_date DESC, created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query patient problems: %w", err)
	}
	defer rows.Close()

	return scanProblems(rows)
}

func (r *Repository) UpdateProblem(ctx context.Context, id string, req UpdateProblemRequest, resolvedDate string) (*ProblemResponse, error) {
	var updates []string
	var args []interface{}
	argIndex := 1

	if req.Status != nil {
		updates = append(updates, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, *req.Status)
		argIndex++
	}
	if req.Severity != nil {
		updates = append(updates, fmt.Sprintf("severity = $%d", argIndex))
		args = append(args, *req.Severity)
		argIndex++
	}
	if req.Goal != nil {
		updates = append(updates, fmt.Sprintf("goal = $%d", argIndex))
		args = append(args, *req.Goal)
		argIndex++
	}
	if req.Notes != nil {
		updates = append(updates, fmt.Sprintf("notes = $%d", argIndex))
		args = append(args, *req.Notes)
		argIndex++
	}
	if resolvedDate != "" {
		updates = append(updates, fmt.Sprintf("resolved_date = $%d", argIndex))
		args = append(args, resolvedDate)
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
		UPDATE aicare.problems
		SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(updates, ", "), argIndex, problemColumns)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update problem: %w", err)
	}
	defer rows.Close()

	problems, err := scanProblems(rows)
	if err != nil {
		return nil, err
	}
	if len(problems) == 0 {
		return nil, ErrProblemNotFound
	}
	return &problems[0], nil
}

func scanProblems(rows *sql.Rows) ([]ProblemResponse, error) {
	var problems []ProblemResponse
	for rows.Next() {
		var p ProblemResponse
		var severity, goal, targetDate, resolvedDate, createdBy, notes sql.NullString
		var updatedAt sql.NullTime

		err := rows.Scan(
			&p.ID, &p.PatientID, &p.Category, &p.Description, &severity, &p.Status, &goal,
			&targetDate, &p.IdentifiedDate, &resolvedDate, &createdBy, &notes,
			&p.CreatedAt, &updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan problem: %w", err)
		}

		p.Severity = severity.String
		p.Goal = goal.String
		p.TargetDate = targetDate.String
		p.ResolvedDate = resolvedDate.String
		p.CreatedBy = createdBy.String
		p.Notes = notes.String
		if updatedAt.Valid {
			p.UpdatedAt = &updatedAt.Time
		}

		problems = append(problems, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating problems: %w", err)
	}

	return problems, nil
}

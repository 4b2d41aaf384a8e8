package intervention

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

// RepositoryInterface defines the contract for intervention data access
type RepositoryInterface interface {
	CreateIntervention(ctx context.Context, req CreateInterventionRequest) (*InterventionResponse, error)
	ListInterventions(ctx context.Context) ([]InterventionResponse, error)
	ListPatientInterventions(ctx context.Context, patientID string) ([]InterventionResponse, error)
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)

const interventionColumns = `
	id, patient_id, report_id, intervention_date, intervention_type, category, method,
	duration_minutes, problem_addressed, content, pre_symptom_score, post_symptom_score,
	outcome, follow_up_date, created_by, notes, created_at`

func (r *Repository) CreateIntervention(ctx context.Context, req CreateInterventionRequest) (*InterventionResponse, error) {
	id := uuid.New().String()
	now := time.Now()

	query := `
		INSERT INTO aicare.interventions
		(id, patient_id, report_id, intervention_date, intervention_type, category, method,
		 duration_minutes, problem_addressed, content, pre_symptom_score, post_symptom_score,
		 outcome, follow_up_date, created_by, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	var reportID interface{}
	if req.ReportID != "" {
		reportID = req.ReportID
	}
	var followUp interface{}
	if req.FollowUpDate != "" {
		followUp = req.FollowUpDate
	}

	_, err := r.db.ExecContext(ctx, query,
		id, req.PatientID, reportID, now.Format("2006-01-02"), req.Type, req.Category, req.Method,
		req.DurationMinutes, req.ProblemAddressed, req.Content, req.PreSymptomScore, req.PostSymptomScore,
		req.Outcome, followUp, req.CreatedBy, req.Notes, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert intervention: %w", err)
	}

	return &InterventionResponse{
		ID:               id,
		PatientID:        req.PatientID,
		ReportID:         req.ReportID,
		Date:             now.Format("2006-01-02"),
		Type:             req.Type,
		Category:         req.Category,
		Method:           req.Method,
		DurationMinutes:  req.DurationMinutes,
		ProblemAddressed: req.ProblemAddressed,
		Content:          req.Content,
		PreSymptomScore:  req.PreSymptomScore,
		PostSymptomScore: req.PostSymptomScore,
		Outcome:          req.Outcome,
		FollowUpDate:     req.FollowUpDate,
		CreatedBy:        req.CreatedBy,
		Notes:            req.Notes,
		CreatedAt:        now,
	}, nil
}

func (r *Repository) ListInterventions(ctx context.Context) ([]InterventionResponse, error) {
	query := `
		SELECT ` + interventionColumns + `
		FROM aicare.interventions
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query interventions: %w", err)
	}
	defer rows.Close()

	return scanInterventions(rows)
}

func (r *Repository) ListPatientInterventions(ctx context.Context, patientID string) ([]InterventionResponse, error) {
	query := `
		SELECT ` + interventionColumns + `
		FROM aicare.interventions
		WHERE patient_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query patient interventions: %w", err)
	}
	defer rows.Close()

	return scanInterventions(rows)
}

func scanInterventions(rows *sql.Rows) ([]InterventionResponse, error) {
	var interventions []InterventionResponse
	for rows.Next() {
		var iv InterventionResponse
		var reportID, category, method, problemAddressed, content sql.NullString
		var outcome, followUpDate, createdBy, notes sql.NullString

		err := rows.Scan(
			&iv.ID, &iv.PatientID, &reportID, &iv.Date, &iv.Type, &category, &method,
			&iv.DurationMinutes, &problemAddressed, &content, &iv.PreSymptomScore, &iv.PostSymptomScore,
			&outcome, &followUpDate, &createdBy, &notes, &iv.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan intervention: %w", err)
		}

		iv.ReportID = reportID.String
		iv.Category = category.String
		iv.Method = method.String
		iv.ProblemAddressed = problemAddressed.String
		iv.Content = content.String
		iv.Outcome = outcome.String
		iv.FollowUpDate = followUpDate.String
		iv.CreatedBy = createdBy.String
		iv.Notes = notes.String

		interventions = append(interventions, iv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating interventions: %w", err)
	}

	return interventions, nil
}

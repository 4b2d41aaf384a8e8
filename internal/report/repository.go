package report

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const reportColumns = `
	id, patient_id, patient_name, report_date, reported_at, report_method,
	overall_score, pain_score, fatigue_score, dyspnea_score, cough_score,
	sleep_score, appetite_score, mood_score,
	has_fever, has_wound_issue, has_blood_in_sputum,
	pain_description, fatigue_description, dyspnea_description, cough_description,
	avg_score, max_score_item, questionnaire_json, ai_summary, additional_notes,
	alert_level, handled, handled_by, handled_time, handling_action, handling_notes,
	created_at`

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateReport(ctx context.Context, rep *SymptomReport) (*SymptomReport, error) {
	if rep.ID == "" {
		rep.ID = uuid.New().String()
	}
	rep.CreatedAt = time.Now()

	query := `
		INSERT INTO aicare.symptom_reports
		(id, patient_id, patient_name, report_date, reported_at, report_method,
		 overall_score, pain_score, fatigue_score, dyspnea_score, cough_score,
		 sleep_score, appetite_score, mood_score,
		 has_fever, has_wound_issue, has_blood_in_sputum,
		 pain_description, fatigue_description, dyspnea_description, cough_description,
		 avg_score, max_score_item, questionnaire_json, ai_summary, additional_notes,
		 alert_level, handled, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, false, $28)
	`

	_, err := r.db.ExecContext(ctx, query,
		rep.ID, rep.PatientID, rep.PatientName, rep.Date, rep.Timestamp, rep.ReportMethod,
		rep.OverallScore, rep.PainScore, rep.FatigueScore, rep.DyspneaScore, rep.CoughScore,
		rep.SleepScore, rep.AppetiteScore, rep.MoodScore,
		rep.HasFever, rep.HasWoundIssue, rep.HasBloodInSputum,
		rep.PainDescription, rep.FatigueDescription, rep.DyspneaDescription, rep.CoughDescription,
		rep.AvgScore, rep.MaxScoreItem, rep.QuestionnaireJSON, rep.AISummary, rep.AdditionalNotes,
		string(rep.AlertLevel), rep.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert report: %w", err)
	}

	return rep, nil
}

func (r *Repository) ListReports(ctx context.Context) ([]SymptomReport, error) {
	query := `
		SELECT ` + reportColumns + `
		FROM aicare.symptom_reports
		ORDER BY reported_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	return scanReports(rows)
}

func (r *Repository) ListPatientReports(ctx context.Context, patientID string) ([]SymptomReport, error) {
	query := `
		SELECT ` + reportColumns + `
		FROM aicare.symptom_reports
		WHERE patient_id = $1
		ORDER BY reported_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query patient reports: %w", err)
	}
	defer rows.Close()

	return scanReports(rows)
}

func (r *Repository) GetReport(ctx context.Context, id string) (*SymptomReport, error) {
	query := `
		SELECT ` + reportColumns + `
		FROM aicare.symptom_reports
		WHERE id = $1
	`

	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query report: %w", err)
	}
	defer rows.Close()

	reports, err := scanReports(rows)
	if err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return nil, ErrReportNotFound
	}
	return &reports[0], nil
}

// MarkHandled transitions a report from unhandled to handled. The
// WHERE clause doubles as a compare-and-swap: a concurrent or repeated
// handle attempt matches zero rows and is rejected instead of silently
// overwriting the first handler's record.
func (r *Repository) MarkHandled(ctx context.Context, id, handlerID, action, notes string) error {
	query := `
		UPDATE aicare.symptom_reports
		SET handled = true,
		    handled_by = $1,
		    handled_time = $2,
		    handling_action = $3,
		    handling_notes = $4
		WHERE id = $5 AND handled = false
	`

	result, err := r.db.ExecContext(ctx, query, handlerID, time.Now(), action, notes, id)
	if err != nil {
		return fmt.Errorf("failed to mark report handled: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows > 0 {
		return nil
	}

	// Zero rows: distinguish a missing report from a lost race.
	var handled bool
	err = r.db.QueryRowContext(ctx,
		`SELECT handled FROM aicare.symptom_reports WHERE id = $1`, id,
	).Scan(&handled)
	if err == sql.ErrNoRows {
		return ErrReportNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check report state: %w", err)
	}
	if handled {
		return ErrAlreadyHandled
	}
	return ErrReportNotFound
}

func scanReports(rows *sql.Rows) ([]SymptomReport, error) {
	var reports []SymptomReport
	for rows.Next() {
		var rep SymptomReport
		var patientName sql.NullString
		var reportMethod sql.NullString
		var painDesc, fatigueDesc, dyspneaDesc, coughDesc sql.NullString
		var maxScoreItem sql.NullString
		var questionnaireJSON, aiSummary, additionalNotes sql.NullString
		var alertLevel string
		var handledBy, handlingAction, handlingNotes sql.NullString
		var handledTime sql.NullTime

		err := rows.Scan(
			&rep.ID, &rep.PatientID, &patientName, &rep.Date, &rep.Timestamp, &reportMethod,
			&rep.OverallScore, &rep.PainScore, &rep.FatigueScore, &rep.DyspneaScore, &rep.CoughScore,
			&rep.SleepScore, &rep.AppetiteScore, &rep.MoodScore,
			&rep.HasFever, &rep.HasWoundIssue, &rep.HasBloodInSputum,
			&painDesc, &fatigueDesc, &dyspneaDesc, &coughDesc,
			&rep.AvgScore, &maxScoreItem, &questionnaireJSON, &aiSummary, &additionalNotes,
			&alertLevel, &rep.Handled, &handledBy, &handledTime, &handlingAction, &handlingNotes,
			&rep.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}

		rep.PatientName = patientName.String
		rep.ReportMethod = reportMethod.String
		rep.PainDescription = painDesc.String
		rep.FatigueDescription = fatigueDesc.String
		rep.DyspneaDescription = dyspneaDesc.String
		rep.CoughDescription = coughDesc.String
		rep.MaxScoreItem = maxScoreItem.String
		rep.QuestionnaireJSON = questionnaireJSON.String
		rep.AISummary = aiSummary.String
		rep.AdditionalNotes = additionalNotes.String
		rep.AlertLevel = parseLevel(alertLevel)
		rep.HandledBy = handledBy.String
		rep.HandlingAction = handlingAction.String
		rep.HandlingNotes = handlingNotes.String
		if handledTime.Valid {
			rep.HandledTime = &handledTime.Time
		}

		reports = append(reports, rep)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reports: %w", err)
	}

	return reports, nil
}

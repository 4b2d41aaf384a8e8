package patient

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const patientColumns = `
	id, full_name, phone_number, birth_date, age, sex,
	diagnosis, clinical_stage, surgery_type, surgery_date, surgery_approach,
	comorbidities, smoking_history, risk_level, status,
	emergency_contact, emergency_phone, notes, created_at, updated_at`

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreatePatient(ctx context.Context, req CreatePatientRequest) (*PatientResponse, error) {
	patientID := uuid.New()
	createdAt := time.Now()

	status := req.Status
	if status == "" {
		status = StatusPendingSetup
	}
	riskLevel := req.RiskLevel
	if riskLevel == "" {
		riskLevel = RiskLow
	}

	query := `
		INSERT INTO aicare.patients
		(id, full_name, phone_number, birth_date, age, sex,
		 diagnosis, clinical_stage, surgery_type, surgery_date, surgery_approach,
		 comorbidities, smoking_history, risk_level, status,
		 emergency_contact, emergency_phone, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING ` + patientColumns + `
	`

	row := r.db.QueryRowContext(ctx, query,
		patientID, req.FullName, req.PhoneNumber, nullable(req.BirthDate), req.Age, req.Sex,
		req.Diagnosis, req.ClinicalStage, req.SurgeryType, req.SurgeryDate, req.SurgeryApproach,
		req.Comorbidities, req.SmokingHistory, riskLevel, status,
		req.EmergencyContact, req.EmergencyPhone, req.Notes, createdAt,
	)

	patient, err := scanPatient(row)
	if err != nil {
		return nil, fmt.Errorf("failed to insert patient: %w", err)
	}
	return patient, nil
}

func (r *Repository) ListPatients(ctx context.Context) ([]PatientResponse, error) {
	query := `
		SELECT ` + patientColumns + `
		FROM aicare.patients
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query patients: %w", err)
	}
	defer rows.Close()

	var patients []PatientResponse
	for rows.Next() {
		patient, err := scanPatient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan patient: %w", err)
		}
		patients = append(patients, *patient)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating patients: %w", err)
	}

	return patients, nil
}

func (r *Repository) ListPatientsWithPagination(ctx context.Context, limit, offset int, search string) ([]PatientResponse, int, error) {
	where := "WHERE deleted_at IS NULL"
	args := []interface{}{}
	argIndex := 1

	if search != "" {
		where += fmt.Sprintf(" AND (full_name ILIKE $%d OR phone_number ILIKE $%d)", argIndex, argIndex)
		args = append(args, "%"+search+"%")
		argIndex++
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM aicare.patients " + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count patients: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM aicare.patients
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, patientColumns, where, argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query patients: %w", err)
	}
	defer rows.Close()

	var patients []PatientResponse
	for rows.Next() {
		patient, err := scanPatient(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan patient: %w", err)
		}
		patients = append(patients, *patient)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating patients: %w", err)
	}

	return patients, total, nil
}

func (r *Repository) GetPatient(ctx context.Context, id string) (*PatientResponse, error) {
	query := `
		SELECT ` + patientColumns + `
		FROM aicare.patients
		WHERE id = $1 AND deleted_at IS NULL
	`

	patient, err := scanPatient(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrPatientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query patient: %w", err)
	}
	return patient, nil
}

func (r *Repository) UpdatePatient(ctx context.Context, id string, req UpdatePatientRequest) (*PatientResponse, error) {
	var updates []string
	var args []interface{}
	argIndex := 1

	set := func(column string, value interface{}) {
		updates = append(updates, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}

	if req.FullName != nil {
		set("full_name", *req.FullName)
	}
	if req.PhoneNumber != nil {
		set("phone_number", *req.PhoneNumber)
	}
	if req.BirthDate != nil {
		set("birth_date", *req.BirthDate)
	}
	if req.Age != nil {
		set("age", *req.Age)
	}
	if req.Sex != nil {
		set("sex", *req.Sex)
	}
	if req.Diagnosis != nil {
		set("diagnosis", *req.Diagnosis)
	}
	if req.ClinicalStage != nil {
		set("clinical_stage", *req.ClinicalStage)
	}
	if req.SurgeryType != nil {
		set("surgery_type", *req.SurgeryType)
	}
	if req.SurgeryDate != nil {
		set("surgery_date", *req.SurgeryDate)
	}
	if req.SurgeryApproach != nil {
		set("surgery_approach", *req.SurgeryApproach)
	}
	if req.Comorbidities != nil {
		set("comorbidities", *req.Comorbidities)
	}
	if req.SmokingHistory != nil {
		set("smoking_history", *req.SmokingHistory)
	}
	if req.RiskLevel != nil {
		set("risk_level", *req.RiskLevel)
	}
	if req.Status != nil {
		set("status", *req.Status)
	}
	if req.EmergencyContact != nil {
		set("emergency_contact", *req.EmergencyContact)
	}
	if req.EmergencyPhone != nil {
		set("emergency_phone", *req.EmergencyPhone)
	}
	if req.Notes != nil {
		set("notes", *req.Notes)
	}

	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	set("updated_at", time.Now())
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE aicare.patients
		SET %s
		WHERE id = $%d AND deleted_at IS NULL
		RETURNING %s
	`, strings.Join(updates, ", "), argIndex, patientColumns)

	patient, err := scanPatient(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrPatientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}
	return patient, nil
}

func (r *Repository) DeletePatient(ctx context.Context, id string) error {
	query := `
		UPDATE aicare.patients
		SET deleted_at = $1
		WHERE id = $2 AND deleted_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrPatientNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPatient(row rowScanner) (*PatientResponse, error) {
	var patient PatientResponse
	var phoneNumber, birthDate, sex sql.NullString
	var diagnosis, clinicalStage, surgeryType, surgeryDate, surgeryApproach sql.NullString
	var comorbidities, smokingHistory, riskLevel sql.NullString
	var emergencyContact, emergencyPhone, notes sql.NullString
	var age sql.NullInt64
	var updatedAt sql.NullTime

	err := row.Scan(
		&patient.ID, &patient.FullName, &phoneNumber, &birthDate, &age, &sex,
		&diagnosis, &clinicalStage, &surgeryType, &surgeryDate, &surgeryApproach,
		&comorbidities, &smokingHistory, &riskLevel, &patient.Status,
		&emergencyContact, &emergencyPhone, &notes, &patient.CreatedAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	patient.PhoneNumber = phoneNumber.String
	if birthDate.Valid {
		patient.BirthDate = &birthDate.String
	}
	patient.Age = int(age.Int64)
	patient.Sex = sex.String
	patient.Diagnosis = diagnosis.String
	patient.ClinicalStage = clinicalStage.String
	patient.SurgeryType = surgeryType.String
	patient.SurgeryDate = surgeryDate.String
	patient.SurgeryApproach = surgeryApproach.String
	patient.Comorbidities = comorbidities.String
	patient.SmokingHistory = smokingHistory.String
	patient.RiskLevel = riskLevel.String
	patient.EmergencyContact = emergencyContact.String
	patient.EmergencyPhone = emergencyPhone.String
	patient.Notes = notes.String
	if updatedAt.Valid {
		patient.UpdatedAt = &updatedAt.Time
	}

	return &patient, nil
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

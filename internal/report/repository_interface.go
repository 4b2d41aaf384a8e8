package report

import "context"

// RepositoryInterface defines the contract for report data access
type RepositoryInterface interface {
	CreateReport(ctx context.Context, rep *SymptomReport) (*SymptomReport, error)
	ListReports(ctx context.Context) ([]SymptomReport, error)
	ListPatientReports(ctx context.Context, patientID string) ([]SymptomReport, error)
	GetReport(ctx context.Context, id string) (*SymptomReport, error)
	MarkHandled(ctx context.Context, id, handlerID, action, notes string) error
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)

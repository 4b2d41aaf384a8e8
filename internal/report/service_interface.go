package report

import "context"

// ServiceInterface defines the contract for report business logic
type ServiceInterface interface {
	IngestReport(ctx context.Context, req CreateReportRequest) (*SymptomReport, error)
	ListReports(ctx context.Context) ([]SymptomReport, error)
	ListPatientReports(ctx context.Context, patientID string) ([]SymptomReport, error)
	GetReport(ctx context.Context, id string) (*SymptomReport, error)
	PendingAlerts(ctx context.Context) ([]SymptomReport, error)
	HandleAlert(ctx context.Context, id string, req HandleAlertRequest) error
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)

package patient

import (
	"context"

	"github.com/aicare-lung/monitoring-service/internal/pagination"
)

// ServiceInterface defines the contract for patient business logic operations
type ServiceInterface interface {
	CreatePatient(ctx context.Context, req CreatePatientRequest) (*PatientResponse, error)
	ListPatients(ctx context.Context) ([]PatientResponse, error)
	ListPatientsWithPagination(ctx context.Context, params pagination.Params, search string) (*PaginatedPatientListResponse, error)
	GetPatient(ctx context.Context, id string) (*PatientResponse, error)
	UpdatePatient(ctx context.Context, id string, req UpdatePatientRequest) (*PatientResponse, error)
	DeletePatient(ctx context.Context, id string) error
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)

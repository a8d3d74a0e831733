package domain

import "context"

// ListFilter narrows and orders List results. Zero values mean "no
// constraint". SortBy/Order are validated by the use case before they reach
// a repository.
type ListFilter struct {
	City   string
	Gender string
	SortBy string
	Order  string
}

// PatientRepository is the storage port. Implementations return
// ErrPatientNotFound and ErrPatientIDConflict so the layers above never see
// backend-specific errors.
type PatientRepository interface {
	Create(ctx context.Context, patient *Patient) error
	GetByID(ctx context.Context, id string) (*Patient, error)
	Update(ctx context.Context, patient *Patient) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]*Patient, int, error)
}

package usecase

import (
	"context"
	"time"

	"patient-registry-service/internal/domain"

	"github.com/samber/lo"
)

type PatientUseCase struct {
	repo domain.PatientRepository
}

func NewPatientUseCase(repo domain.PatientRepository) *PatientUseCase {
	return &PatientUseCase{repo: repo}
}

func (uc *PatientUseCase) Create(ctx context.Context, patient *domain.Patient) (*domain.Patient, error) {
	now := time.Now()
	patient.CreatedAt = now
	patient.UpdatedAt = now

	if err := patient.Validate(); err != nil {
		return nil, err
	}

	if err := uc.repo.Create(ctx, patient); err != nil {
		return nil, err
	}

	return uc.repo.GetByID(ctx, patient.ID)
}

func (uc *PatientUseCase) Get(ctx context.Context, id string) (*domain.Patient, error) {
	return uc.repo.GetByID(ctx, id)
}

func (uc *PatientUseCase) List(ctx context.Context, filter domain.ListFilter) ([]*domain.Patient, int, error) {
	if filter.SortBy != "" && !lo.Contains(domain.ValidSortFields, filter.SortBy) {
		return nil, 0, domain.ErrInvalidSortField
	}

	switch filter.Order {
	case "":
		filter.Order = domain.OrderAsc
	case domain.OrderAsc, domain.OrderDesc:
	default:
		return nil, 0, domain.ErrInvalidSortOrder
	}

	return uc.repo.List(ctx, filter)
}

func (uc *PatientUseCase) Update(ctx context.Context, id string, updates map[string]interface{}) (*domain.Patient, error) {
	patient, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Comma-ok throughout: updates may come from a JSON-decoded map, where
	// every number is a float64.
	if v, ok := updates["name"].(string); ok {
		patient.Name = v
	}
	if v, ok := updates["city"].(string); ok {
		patient.City = v
	}
	if v, ok := asInt(updates["age"]); ok {
		patient.Age = v
	}
	if v, ok := updates["gender"].(string); ok {
		patient.Gender = domain.Gender(v)
	}
	if v, ok := asFloat(updates["height"]); ok {
		patient.Height = v
	}
	if v, ok := asFloat(updates["weight"]); ok {
		patient.Weight = v
	}

	patient.UpdatedAt = time.Now()

	if err := patient.Validate(); err != nil {
		return nil, err
	}

	if err := uc.repo.Update(ctx, patient); err != nil {
		return nil, err
	}

	return uc.repo.GetByID(ctx, id)
}

func asInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

func (uc *PatientUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

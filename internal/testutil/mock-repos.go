package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"patient-registry-service/internal/domain"
)

// MockPatientRepo is a mock of PatientRepository.
type MockPatientRepo struct {
	mock.Mock
}

func (m *MockPatientRepo) Create(ctx context.Context, patient *domain.Patient) error {
	args := m.Called(ctx, patient)
	return args.Error(0)
}

func (m *MockPatientRepo) GetByID(ctx context.Context, id string) (*domain.Patient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Patient), args.Error(1)
}

func (m *MockPatientRepo) Update(ctx context.Context, patient *domain.Patient) error {
	args := m.Called(ctx, patient)
	return args.Error(0)
}

func (m *MockPatientRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPatientRepo) List(ctx context.Context, filter domain.ListFilter) ([]*domain.Patient, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.Patient), args.Int(1), args.Error(2)
}

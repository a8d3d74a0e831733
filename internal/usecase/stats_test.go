package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"patient-registry-service/internal/domain"
	"patient-registry-service/internal/testutil"
)

func TestStatsUseCase_Report(t *testing.T) {
	repo := new(testutil.MockPatientRepo)
	uc := NewStatsUseCase(repo)

	patients := []*domain.Patient{
		{ID: "P001", Name: "Ana", City: "Madrid", Age: 30, Gender: domain.GenderFemale, Height: 1.65, Weight: 60},   // BMI 22.04 Normal
		{ID: "P002", Name: "Bruno", City: "Madrid", Age: 45, Gender: domain.GenderMale, Height: 1.70, Weight: 90},   // BMI 31.14 Obese
		{ID: "P003", Name: "Carla", City: "Lisbon", Age: 27, Gender: domain.GenderFemale, Height: 1.80, Weight: 55}, // BMI 16.98 Underweight
	}
	repo.On("List", mock.Anything, domain.ListFilter{}).Return(patients, 3, nil)

	stats, err := uc.Report(context.Background())
	assert.NoError(t, err)

	assert.Equal(t, 3, stats.TotalPatients)
	assert.Equal(t, 34.0, stats.AverageAge)
	assert.Equal(t, 23.4, stats.AverageBMI)
	assert.Equal(t, 1, stats.NormalCount)
	assert.Equal(t, 2, stats.ByGender[domain.GenderFemale])
	assert.Equal(t, 1, stats.ByGender[domain.GenderMale])
	assert.Equal(t, 1, stats.ByVerdict[domain.VerdictObese])
	assert.Equal(t, 2, stats.ByCity["Madrid"])
}

func TestStatsUseCase_Report_Empty(t *testing.T) {
	repo := new(testutil.MockPatientRepo)
	uc := NewStatsUseCase(repo)

	repo.On("List", mock.Anything, domain.ListFilter{}).Return([]*domain.Patient{}, 0, nil)

	stats, err := uc.Report(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 0, stats.TotalPatients)
	assert.Equal(t, 0.0, stats.AverageAge)
	assert.Empty(t, stats.ByGender)
}

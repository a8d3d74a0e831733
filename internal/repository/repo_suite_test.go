package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patient-registry-service/internal/domain"
)

func newPatient(id, name, city string, age int, gender domain.Gender, height, weight float64) *domain.Patient {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.Patient{
		ID: id, Name: name, City: city,
		Age: age, Gender: gender, Height: height, Weight: weight,
		CreatedAt: now, UpdatedAt: now,
	}
}

// runPatientRepoSuite exercises the full port contract against a backend so
// file and badger stay behaviourally identical.
func runPatientRepoSuite(t *testing.T, repo domain.PatientRepository) {
	ctx := context.Background()

	ana := newPatient("P001", "Ana", "Madrid", 30, domain.GenderFemale, 1.65, 60)
	bruno := newPatient("P002", "Bruno", "Lisbon", 45, domain.GenderMale, 1.70, 90)
	carla := newPatient("P003", "Carla", "Madrid", 27, domain.GenderFemale, 1.80, 55)

	// create
	require.NoError(t, repo.Create(ctx, ana))
	require.NoError(t, repo.Create(ctx, bruno))
	require.NoError(t, repo.Create(ctx, carla))

	// duplicate id
	assert.ErrorIs(t, repo.Create(ctx, newPatient("P001", "Dup", "Porto", 20, domain.GenderOther, 1.70, 70)), domain.ErrPatientIDConflict)

	// get
	got, err := repo.GetByID(ctx, "P002")
	require.NoError(t, err)
	assert.Equal(t, "Bruno", got.Name)
	assert.Equal(t, domain.GenderMale, got.Gender)

	_, err = repo.GetByID(ctx, "P404")
	assert.ErrorIs(t, err, domain.ErrPatientNotFound)

	// list, default order is id asc
	all, total, err := repo.List(ctx, domain.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, all, 3)
	assert.Equal(t, "P001", all[0].ID)

	// sorted by bmi descending: Bruno 31.14, Ana 22.04, Carla 16.98
	byBMI, _, err := repo.List(ctx, domain.ListFilter{SortBy: domain.SortByBMI, Order: domain.OrderDesc})
	require.NoError(t, err)
	assert.Equal(t, []string{"P002", "P001", "P003"}, ids(byBMI))

	// filtered by city
	madrid, total, err := repo.List(ctx, domain.ListFilter{City: "madrid"})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, []string{"P001", "P003"}, ids(madrid))

	// filtered by gender
	males, _, err := repo.List(ctx, domain.ListFilter{Gender: "male"})
	require.NoError(t, err)
	assert.Equal(t, []string{"P002"}, ids(males))

	// update
	bruno.City = "Porto"
	bruno.Weight = 85
	require.NoError(t, repo.Update(ctx, bruno))
	got, err = repo.GetByID(ctx, "P002")
	require.NoError(t, err)
	assert.Equal(t, "Porto", got.City)
	assert.Equal(t, 85.0, got.Weight)

	ghost := newPatient("P404", "Ghost", "Nowhere", 50, domain.GenderOther, 1.70, 70)
	assert.ErrorIs(t, repo.Update(ctx, ghost), domain.ErrPatientNotFound)

	// delete
	require.NoError(t, repo.Delete(ctx, "P003"))
	_, err = repo.GetByID(ctx, "P003")
	assert.ErrorIs(t, err, domain.ErrPatientNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "P003"), domain.ErrPatientNotFound)

	_, total, err = repo.List(ctx, domain.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

func ids(patients []*domain.Patient) []string {
	out := make([]string, 0, len(patients))
	for _, p := range patients {
		out = append(out, p.ID)
	}
	return out
}

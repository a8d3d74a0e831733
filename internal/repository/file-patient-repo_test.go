package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patient-registry-service/internal/domain"
)

func TestFilePatientRepo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patient.json")
	repo, err := NewFilePatientRepository(path)
	require.NoError(t, err)

	runPatientRepoSuite(t, repo)
}

func TestFilePatientRepo_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patient.json")

	repo, err := NewFilePatientRepository(path)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), newPatient("P001", "Ana", "Madrid", 30, domain.GenderFemale, 1.65, 60)))

	reopened, err := NewFilePatientRepository(path)
	require.NoError(t, err)

	got, err := reopened.GetByID(context.Background(), "P001")
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)
}

func TestFilePatientRepo_DocumentKeyedByID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patient.json")

	repo, err := NewFilePatientRepository(path)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), newPatient("P001", "Ana", "Madrid", 30, domain.GenderFemale, 1.65, 60)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Contains(t, doc, "P001")
}

func TestFilePatientRepo_SortTiesAreDeterministic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patient.json")
	repo, err := NewFilePatientRepository(path)
	require.NoError(t, err)

	// all tied on the sort field; repeated lists must not reshuffle them
	for _, id := range []string{"P007", "P003", "P001", "P005", "P002", "P006", "P004", "P000"} {
		require.NoError(t, repo.Create(context.Background(), newPatient(id, "Same", "Madrid", 30, domain.GenderOther, 1.70, 70)))
	}

	first, _, err := repo.List(context.Background(), domain.ListFilter{SortBy: domain.SortByHeight})
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, _, err := repo.List(context.Background(), domain.ListFilter{SortBy: domain.SortByHeight})
		require.NoError(t, err)
		assert.Equal(t, ids(first), ids(again), "tie order changed between identical List calls")
	}

	assert.Equal(t, []string{"P000", "P001", "P002", "P003", "P004", "P005", "P006", "P007"}, ids(first))
}

func TestFilePatientRepo_CorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patient.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	repo, err := NewFilePatientRepository(path)
	require.NoError(t, err)

	_, err = repo.GetByID(context.Background(), "P001")
	assert.Error(t, err)
}

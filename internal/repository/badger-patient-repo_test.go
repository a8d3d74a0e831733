package repository

import (
	"context"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patient-registry-service/internal/domain"
)

func openTestBadger(t *testing.T) *badger.DB {
	t.Helper()
	opts := badger.DefaultOptions(t.TempDir()).WithLogger(nil)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestBadgerPatientRepo(t *testing.T) {
	repo := NewBadgerPatientRepository(openTestBadger(t))
	runPatientRepoSuite(t, repo)
}

func TestBadgerPatientRepo_KeysArePrefixed(t *testing.T) {
	db := openTestBadger(t)
	repo := NewBadgerPatientRepository(db)

	require.NoError(t, repo.Create(context.Background(), newPatient("P001", "Ana", "Madrid", 30, domain.GenderFemale, 1.65, 60)))

	err := db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte("patient:P001"))
		return err
	})
	assert.NoError(t, err)
}

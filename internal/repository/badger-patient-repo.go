package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"patient-registry-service/internal/domain"
)

const patientKeyPrefix = "patient:"

// badgerPatientRepo stores one JSON value per patient under
// "patient:<id>". Listing is a prefix scan; sorting happens in memory since
// the registry is small and sort fields include the derived BMI.
type badgerPatientRepo struct {
	db *badger.DB
}

func NewBadgerPatientRepository(db *badger.DB) domain.PatientRepository {
	return &badgerPatientRepo{db: db}
}

func patientKey(id string) []byte {
	return []byte(patientKeyPrefix + id)
}

func (r *badgerPatientRepo) Create(ctx context.Context, patient *domain.Patient) error {
	value, err := json.Marshal(patient)
	if err != nil {
		return fmt.Errorf("encode patient: %w", err)
	}

	return r.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(patientKey(patient.ID))
		if err == nil {
			return domain.ErrPatientIDConflict
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return txn.Set(patientKey(patient.ID), value)
	})
}

func (r *badgerPatientRepo) GetByID(ctx context.Context, id string) (*domain.Patient, error) {
	var patient domain.Patient

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(patientKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return domain.ErrPatientNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &patient)
		})
	})
	if err != nil {
		return nil, err
	}

	return &patient, nil
}

func (r *badgerPatientRepo) Update(ctx context.Context, patient *domain.Patient) error {
	value, err := json.Marshal(patient)
	if err != nil {
		return fmt.Errorf("encode patient: %w", err)
	}

	return r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(patientKey(patient.ID)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return domain.ErrPatientNotFound
			}
			return err
		}
		return txn.Set(patientKey(patient.ID), value)
	})
}

func (r *badgerPatientRepo) Delete(ctx context.Context, id string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(patientKey(id)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return domain.ErrPatientNotFound
			}
			return err
		}
		return txn.Delete(patientKey(id))
	})
}

func (r *badgerPatientRepo) List(ctx context.Context, filter domain.ListFilter) ([]*domain.Patient, int, error) {
	patients := map[string]*domain.Patient{}

	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte(patientKeyPrefix)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var patient domain.Patient
				if err := json.Unmarshal(val, &patient); err != nil {
					return err
				}
				patients[patient.ID] = &patient
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	result := filterPatients(patients, filter)
	domain.SortPatients(result, filter.SortBy, filter.Order)

	return result, len(result), nil
}

package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"patient-registry-service/internal/domain"
)

// filePatientRepo keeps the registry in a single JSON document keyed by
// patient id, the format the service has always used. Writes go through a
// temp file and rename so a crash never leaves a half-written document.
type filePatientRepo struct {
	mu   sync.RWMutex
	path string
}

func NewFilePatientRepository(path string) (domain.PatientRepository, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	return &filePatientRepo{path: path}, nil
}

func (r *filePatientRepo) load() (map[string]*domain.Patient, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]*domain.Patient{}, nil
		}
		return nil, fmt.Errorf("read patient file: %w", err)
	}

	patients := map[string]*domain.Patient{}
	if err := json.Unmarshal(data, &patients); err != nil {
		return nil, fmt.Errorf("decode patient file: %w", err)
	}
	return patients, nil
}

func (r *filePatientRepo) save(patients map[string]*domain.Patient) error {
	data, err := json.MarshalIndent(patients, "", "  ")
	if err != nil {
		return fmt.Errorf("encode patient file: %w", err)
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write patient file: %w", err)
	}
	return os.Rename(tmp, r.path)
}

func (r *filePatientRepo) Create(ctx context.Context, patient *domain.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	patients, err := r.load()
	if err != nil {
		return err
	}

	if _, exists := patients[patient.ID]; exists {
		return domain.ErrPatientIDConflict
	}

	patients[patient.ID] = patient
	return r.save(patients)
}

func (r *filePatientRepo) GetByID(ctx context.Context, id string) (*domain.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	patients, err := r.load()
	if err != nil {
		return nil, err
	}

	patient, ok := patients[id]
	if !ok {
		return nil, domain.ErrPatientNotFound
	}
	return patient, nil
}

func (r *filePatientRepo) Update(ctx context.Context, patient *domain.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	patients, err := r.load()
	if err != nil {
		return err
	}

	if _, ok := patients[patient.ID]; !ok {
		return domain.ErrPatientNotFound
	}

	patients[patient.ID] = patient
	return r.save(patients)
}

func (r *filePatientRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	patients, err := r.load()
	if err != nil {
		return err
	}

	if _, ok := patients[id]; !ok {
		return domain.ErrPatientNotFound
	}

	delete(patients, id)
	return r.save(patients)
}

func (r *filePatientRepo) List(ctx context.Context, filter domain.ListFilter) ([]*domain.Patient, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	patients, err := r.load()
	if err != nil {
		return nil, 0, err
	}

	result := filterPatients(patients, filter)
	domain.SortPatients(result, filter.SortBy, filter.Order)

	return result, len(result), nil
}

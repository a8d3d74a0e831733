package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"patient-registry-service/internal/domain"
)

type postgresPatientRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresPatientRepository(pool *pgxpool.Pool) domain.PatientRepository {
	return &postgresPatientRepo{pool: pool}
}

const patientSchema = `
	CREATE TABLE IF NOT EXISTS patients (
		id          TEXT PRIMARY KEY,
		created_at  TIMESTAMPTZ NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL,
		name        TEXT NOT NULL,
		city        TEXT NOT NULL,
		age         INT NOT NULL,
		gender      TEXT NOT NULL,
		height_m    DOUBLE PRECISION NOT NULL,
		weight_kg   DOUBLE PRECISION NOT NULL
	)
`

// EnsureSchema creates the patients table when it does not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, patientSchema); err != nil {
		return fmt.Errorf("ensure patients schema: %w", err)
	}
	return nil
}

// sortColumns whitelists sort_by values; bmi sorts on the derived
// expression so all backends order identically.
var sortColumns = map[string]string{
	domain.SortByName:   "name",
	domain.SortByAge:    "age",
	domain.SortByHeight: "height_m",
	domain.SortByWeight: "weight_kg",
	domain.SortByBMI:    "weight_kg / (height_m * height_m)",
}

func (r *postgresPatientRepo) Create(ctx context.Context, patient *domain.Patient) error {
	query := `
		INSERT INTO patients
			(id, created_at, updated_at, name, city, age, gender, height_m, weight_kg)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`

	_, err := r.pool.Exec(ctx, query,
		patient.ID, patient.CreatedAt, patient.UpdatedAt,
		patient.Name, patient.City, patient.Age,
		string(patient.Gender), patient.Height, patient.Weight,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrPatientIDConflict
		}
		return fmt.Errorf("create patient: %w", err)
	}
	return nil
}

func (r *postgresPatientRepo) GetByID(ctx context.Context, id string) (*domain.Patient, error) {
	query := `
		SELECT id, created_at, updated_at, name, city, age, gender, height_m, weight_kg
		FROM patients
		WHERE id = $1
	`

	patient, err := scanPatient(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPatientNotFound
		}
		return nil, fmt.Errorf("get patient by id: %w", err)
	}
	return patient, nil
}

func (r *postgresPatientRepo) Update(ctx context.Context, patient *domain.Patient) error {
	query := `
		UPDATE patients
		SET updated_at = $2, name = $3, city = $4, age = $5,
		    gender = $6, height_m = $7, weight_kg = $8
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		patient.ID, patient.UpdatedAt,
		patient.Name, patient.City, patient.Age,
		string(patient.Gender), patient.Height, patient.Weight,
	)
	if err != nil {
		return fmt.Errorf("update patient: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPatientNotFound
	}
	return nil
}

func (r *postgresPatientRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete patient: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPatientNotFound
	}
	return nil
}

func (r *postgresPatientRepo) List(ctx context.Context, filter domain.ListFilter) ([]*domain.Patient, int, error) {
	conditions := []string{"TRUE"}
	args := []interface{}{}
	argPos := 1

	if filter.City != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(city) = LOWER($%d)", argPos))
		args = append(args, filter.City)
		argPos++
	}
	if filter.Gender != "" {
		conditions = append(conditions, fmt.Sprintf("gender = $%d", argPos))
		args = append(args, filter.Gender)
		argPos++
	}

	orderBy := "id ASC"
	if col, ok := sortColumns[filter.SortBy]; ok {
		direction := "ASC"
		if filter.Order == domain.OrderDesc {
			direction = "DESC"
		}
		orderBy = fmt.Sprintf("%s %s, id ASC", col, direction)
	}

	query := fmt.Sprintf(`
		SELECT id, created_at, updated_at, name, city, age, gender, height_m, weight_kg
		FROM patients
		WHERE %s
		ORDER BY %s
	`, strings.Join(conditions, " AND "), orderBy)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list patients: %w", err)
	}
	defer rows.Close()

	var patients []*domain.Patient
	for rows.Next() {
		patient, err := scanPatient(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan patient: %w", err)
		}
		patients = append(patients, patient)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list patients: %w", err)
	}

	return patients, len(patients), nil
}

func scanPatient(row pgx.Row) (*domain.Patient, error) {
	var p domain.Patient
	var gender string
	err := row.Scan(
		&p.ID, &p.CreatedAt, &p.UpdatedAt,
		&p.Name, &p.City, &p.Age,
		&gender, &p.Height, &p.Weight,
	)
	if err != nil {
		return nil, err
	}
	p.Gender = domain.Gender(gender)
	return &p, nil
}

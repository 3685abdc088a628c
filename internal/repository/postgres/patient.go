package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/itsivali/careconnect-v1/internal/model"
	"github.com/itsivali/careconnect-v1/internal/repository"
	apperrors "github.com/itsivali/careconnect-v1/pkg/errors"
)

type patientRow struct {
	ID            uuid.UUID        `db:"id"`
	Username      string           `db:"username"`
	PasswordHash  model.Credential `db:"password_hash"`
	FirstName     string           `db:"first_name"`
	LastName      string           `db:"last_name"`
	DateOfBirth   time.Time        `db:"date_of_birth"`
	ContactNumber string           `db:"contact_number"`
	Email         string           `db:"email"`
}

func (r patientRow) toModel() *model.Patient {
	return model.RestorePatient(r.ID, r.Username, r.PasswordHash, r.DateOfBirth,
		r.FirstName, r.LastName, r.ContactNumber, r.Email)
}

type patientRepository struct {
	db *sqlx.DB
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (id, username, password_hash, first_name, last_name, date_of_birth, contact_number, email)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		patient.ID,
		patient.Username(),
		patient.Credential(),
		patient.FirstName(),
		patient.LastName(),
		patient.DateOfBirth(),
		patient.ContactNumber(),
		patient.Email(),
	)
	if err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	query := `SELECT id, username, password_hash, first_name, last_name, date_of_birth, contact_number, email
		FROM patients WHERE id = $1`
	var row patientRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFound("patient", err)
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return row.toModel(), nil
}

func (r *patientRepository) GetByUsername(ctx context.Context, username string) (*model.Patient, error) {
	query := `SELECT id, username, password_hash, first_name, last_name, date_of_birth, contact_number, email
		FROM patients WHERE username = $1`
	var row patientRow
	if err := r.db.GetContext(ctx, &row, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFound("patient", err)
		}
		return nil, fmt.Errorf("failed to get patient by username: %w", err)
	}
	return row.toModel(), nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	query := `UPDATE patients
		SET username = $1, password_hash = $2, first_name = $3, last_name = $4,
		    date_of_birth = $5, contact_number = $6, email = $7
		WHERE id = $8`
	_, err := r.db.ExecContext(ctx, query,
		patient.Username(),
		patient.Credential(),
		patient.FirstName(),
		patient.LastName(),
		patient.DateOfBirth(),
		patient.ContactNumber(),
		patient.Email(),
		patient.ID,
	)
	return err
}

func (r *patientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM patients WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *patientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	query := `SELECT id, username, password_hash, first_name, last_name, date_of_birth, contact_number, email
		FROM patients ORDER BY username`
	var rows []patientRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}
	patients := make([]*model.Patient, 0, len(rows))
	for _, row := range rows {
		patients = append(patients, row.toModel())
	}
	return patients, nil
}

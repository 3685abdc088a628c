package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/itsivali/careconnect-v1/internal/model"
	"github.com/itsivali/careconnect-v1/internal/repository"
	apperrors "github.com/itsivali/careconnect-v1/pkg/errors"
)

type doctorRow struct {
	ID             uuid.UUID `db:"id"`
	FirstName      string    `db:"first_name"`
	LastName       string    `db:"last_name"`
	Specialization string    `db:"specialization"`
}

func (r doctorRow) toModel() *model.Doctor {
	return model.RestoreDoctor(r.ID, r.FirstName, r.LastName, r.Specialization)
}

type doctorRepository struct {
	db *sqlx.DB
}

func NewDoctorRepository(db *sqlx.DB) repository.DoctorRepository {
	return &doctorRepository{db: db}
}

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	query := `INSERT INTO doctors (id, first_name, last_name, specialization) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query,
		doctor.ID, doctor.FirstName(), doctor.LastName(), doctor.Specialization())
	if err != nil {
		return fmt.Errorf("failed to create doctor: %w", err)
	}
	return nil
}

func (r *doctorRepository) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	query := `SELECT id, first_name, last_name, specialization FROM doctors WHERE id = $1`
	var row doctorRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFound("doctor", err)
		}
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return row.toModel(), nil
}

func (r *doctorRepository) Update(ctx context.Context, doctor *model.Doctor) error {
	query := `UPDATE doctors SET first_name = $1, last_name = $2, specialization = $3 WHERE id = $4`
	_, err := r.db.ExecContext(ctx, query,
		doctor.FirstName(), doctor.LastName(), doctor.Specialization(), doctor.ID)
	return err
}

func (r *doctorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM doctors WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *doctorRepository) List(ctx context.Context) ([]*model.Doctor, error) {
	query := `SELECT id, first_name, last_name, specialization FROM doctors ORDER BY last_name, first_name`
	var rows []doctorRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}
	doctors := make([]*model.Doctor, 0, len(rows))
	for _, row := range rows {
		doctors = append(doctors, row.toModel())
	}
	return doctors, nil
}

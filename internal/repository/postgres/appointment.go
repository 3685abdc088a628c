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

type appointmentRow struct {
	ID              uuid.UUID `db:"id"`
	PatientID       uuid.UUID `db:"patient_id"`
	DoctorID        uuid.UUID `db:"doctor_id"`
	AppointmentDate time.Time `db:"appointment_date"`
	Reason          string    `db:"reason"`
	Status          string    `db:"status"`
}

type appointmentRepository struct {
	db *sqlx.DB
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (id, patient_id, doctor_id, appointment_date, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		appointment.ID,
		appointment.PatientID(),
		appointment.DoctorID(),
		appointment.AppointmentDate(),
		appointment.Reason(),
		string(appointment.Status()),
	)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `SELECT id, patient_id, doctor_id, appointment_date, reason, status
		FROM appointments WHERE id = $1`
	var row appointmentRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFound("appointment", err)
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return r.rehydrate(ctx, row)
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *model.Appointment) error {
	query := `UPDATE appointments
		SET patient_id = $1, doctor_id = $2, appointment_date = $3, reason = $4, status = $5
		WHERE id = $6`
	_, err := r.db.ExecContext(ctx, query,
		appointment.PatientID(),
		appointment.DoctorID(),
		appointment.AppointmentDate(),
		appointment.Reason(),
		string(appointment.Status()),
		appointment.ID,
	)
	return err
}

func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM appointments WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *appointmentRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Appointment, error) {
	query := `SELECT id, patient_id, doctor_id, appointment_date, reason, status
		FROM appointments WHERE patient_id = $1 ORDER BY appointment_date`
	return r.listAndRehydrate(ctx, query, patientID)
}

func (r *appointmentRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Appointment, error) {
	query := `SELECT id, patient_id, doctor_id, appointment_date, reason, status
		FROM appointments WHERE doctor_id = $1 ORDER BY appointment_date`
	return r.listAndRehydrate(ctx, query, doctorID)
}

func (r *appointmentRepository) listAndRehydrate(ctx context.Context, query string, arg interface{}) ([]*model.Appointment, error) {
	var rows []appointmentRow
	if err := r.db.SelectContext(ctx, &rows, query, arg); err != nil {
		return nil, err
	}

	// Rehydrate each association side once so repeated references
	// share one entity.
	patients := make(map[uuid.UUID]*model.Patient)
	doctors := make(map[uuid.UUID]*model.Doctor)
	appointments := make([]*model.Appointment, 0, len(rows))
	for _, row := range rows {
		patient, err := r.loadPatient(ctx, patients, row.PatientID)
		if err != nil {
			return nil, err
		}
		doctor, err := r.loadDoctor(ctx, doctors, row.DoctorID)
		if err != nil {
			return nil, err
		}
		appointments = append(appointments, model.RestoreAppointment(
			row.ID, patient, doctor, row.AppointmentDate, row.Reason,
			model.AppointmentStatus(row.Status)))
	}
	return appointments, nil
}

func (r *appointmentRepository) rehydrate(ctx context.Context, row appointmentRow) (*model.Appointment, error) {
	patient, err := r.loadPatient(ctx, nil, row.PatientID)
	if err != nil {
		return nil, err
	}
	doctor, err := r.loadDoctor(ctx, nil, row.DoctorID)
	if err != nil {
		return nil, err
	}
	return model.RestoreAppointment(row.ID, patient, doctor,
		row.AppointmentDate, row.Reason, model.AppointmentStatus(row.Status)), nil
}

func (r *appointmentRepository) loadPatient(ctx context.Context, cache map[uuid.UUID]*model.Patient, id uuid.UUID) (*model.Patient, error) {
	if cache != nil {
		if p, ok := cache[id]; ok {
			return p, nil
		}
	}
	var row patientRow
	query := `SELECT id, username, password_hash, first_name, last_name, date_of_birth, contact_number, email
		FROM patients WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, fmt.Errorf("failed to load appointment patient: %w", err)
	}
	p := row.toModel()
	if cache != nil {
		cache[id] = p
	}
	return p, nil
}

func (r *appointmentRepository) loadDoctor(ctx context.Context, cache map[uuid.UUID]*model.Doctor, id uuid.UUID) (*model.Doctor, error) {
	if cache != nil {
		if d, ok := cache[id]; ok {
			return d, nil
		}
	}
	var row doctorRow
	query := `SELECT id, first_name, last_name, specialization FROM doctors WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, fmt.Errorf("failed to load appointment doctor: %w", err)
	}
	d := row.toModel()
	if cache != nil {
		cache[id] = d
	}
	return d, nil
}

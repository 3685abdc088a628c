package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/itsivali/careconnect-v1/pkg/errors"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "Scheduled"
	AppointmentStatusCompleted AppointmentStatus = "Completed"
	AppointmentStatusCancelled AppointmentStatus = "Cancelled"
)

var appointmentStatuses = []string{
	string(AppointmentStatusScheduled),
	string(AppointmentStatusCompleted),
	string(AppointmentStatusCancelled),
}

// Appointment links a patient and a doctor at a future instant. Both
// sides of each association are kept mutually consistent by the
// setters.
type Appointment struct {
	ID              uuid.UUID
	patient         *Patient
	doctor          *Doctor
	appointmentDate time.Time
	reason          string
	status          AppointmentStatus
}

func NewAppointment(patient *Patient, doctor *Doctor, date time.Time, reason string) (*Appointment, error) {
	a := &Appointment{
		ID:     uuid.New(),
		reason: reason,
		status: AppointmentStatusScheduled,
	}
	if err := a.SetPatient(patient); err != nil {
		return nil, err
	}
	if err := a.SetDoctor(doctor); err != nil {
		return nil, err
	}
	if err := a.SetAppointmentDate(date); err != nil {
		return nil, err
	}
	return a, nil
}

// RestoreAppointment rebuilds an appointment from persisted state and
// registers it on both association sides. The stored date is not
// revalidated: it was in the future when written.
func RestoreAppointment(id uuid.UUID, patient *Patient, doctor *Doctor, date time.Time, reason string, status AppointmentStatus) *Appointment {
	a := &Appointment{
		ID:              id,
		appointmentDate: date,
		reason:          reason,
		status:          status,
	}
	if patient != nil {
		a.patient = patient
		patient.addAppointment(a)
	}
	if doctor != nil {
		a.doctor = doctor
		doctor.addAppointment(a)
	}
	return a
}

func (a *Appointment) Patient() *Patient           { return a.patient }
func (a *Appointment) Doctor() *Doctor             { return a.doctor }
func (a *Appointment) AppointmentDate() time.Time  { return a.appointmentDate }
func (a *Appointment) Reason() string              { return a.reason }
func (a *Appointment) Status() AppointmentStatus   { return a.status }

func (a *Appointment) PatientID() uuid.UUID {
	if a.patient == nil {
		return uuid.Nil
	}
	return a.patient.ID
}

func (a *Appointment) DoctorID() uuid.UUID {
	if a.doctor == nil {
		return uuid.Nil
	}
	return a.doctor.ID
}

// SetPatient re-points the appointment at a patient and keeps both
// patients' appointment collections consistent.
func (a *Appointment) SetPatient(patient *Patient) error {
	if patient == nil {
		return errors.NewValidation("patient_id", "is required")
	}
	if a.patient != nil {
		a.patient.removeAppointment(a)
	}
	a.patient = patient
	patient.addAppointment(a)
	return nil
}

func (a *Appointment) SetDoctor(doctor *Doctor) error {
	if doctor == nil {
		return errors.NewValidation("doctor_id", "is required")
	}
	if a.doctor != nil {
		a.doctor.removeAppointment(a)
	}
	a.doctor = doctor
	doctor.addAppointment(a)
	return nil
}

func (a *Appointment) SetAppointmentDate(value time.Time) error {
	v, err := validateFutureDate("appointment_date", value)
	if err != nil {
		return err
	}
	a.appointmentDate = v
	return nil
}

func (a *Appointment) SetReason(value string) error {
	a.reason = value
	return nil
}

func (a *Appointment) SetStatus(value AppointmentStatus) error {
	v, err := validateOneOf("status", string(value), appointmentStatuses)
	if err != nil {
		return err
	}
	a.status = AppointmentStatus(v)
	return nil
}

// Serialize is restricted to the flat foreign-key view; neither
// associated entity is nested.
func (a *Appointment) Serialize() map[string]interface{} {
	return map[string]interface{}{
		"id":               a.ID,
		"patient_id":       a.PatientID(),
		"doctor_id":        a.DoctorID(),
		"appointment_date": a.appointmentDate,
		"reason":           a.reason,
		"status":           a.status,
	}
}

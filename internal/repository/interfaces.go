package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/itsivali/careconnect-v1/internal/model"
)

// All repository interfaces in one file
type (
	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
		GetByUsername(ctx context.Context, username string) (*model.Patient, error)
		Update(ctx context.Context, patient *model.Patient) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Patient, error)
	}

	DoctorRepository interface {
		Create(ctx context.Context, doctor *model.Doctor) error
		Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
		Update(ctx context.Context, doctor *model.Doctor) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Doctor, error)
	}

	// AppointmentRepository loads appointments with both association
	// sides rehydrated.
	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		Update(ctx context.Context, appointment *model.Appointment) error
		Delete(ctx context.Context, id uuid.UUID) error
		ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Appointment, error)
		ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Appointment, error)
	}

	ServiceRepository interface {
		Create(ctx context.Context, service *model.Service) error
		Get(ctx context.Context, id uuid.UUID) (*model.Service, error)
		Update(ctx context.Context, service *model.Service) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Service, error)
	}

	// BillRepository persists a bill together with its line items;
	// deleting a bill deletes its line items.
	BillRepository interface {
		Create(ctx context.Context, bill *model.Bill) error
		Get(ctx context.Context, id uuid.UUID) (*model.Bill, error)
		Update(ctx context.Context, bill *model.Bill) error
		Delete(ctx context.Context, id uuid.UUID) error
		ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Bill, error)
	}

	AdminRepository interface {
		Create(ctx context.Context, admin *model.Admin) error
		GetByUsername(ctx context.Context, username string) (*model.Admin, error)
	}

	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		MarkProcessed(ctx context.Context, id uuid.UUID) error
		MarkFailed(ctx context.Context, id uuid.UUID, reason string) error
		DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error)
	}
)

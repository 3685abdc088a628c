package appointment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/itsivali/careconnect-v1/internal/email"
	"github.com/itsivali/careconnect-v1/internal/model"
	"github.com/itsivali/careconnect-v1/internal/repository"
)

type AppointmentService interface {
	CreateAppointment(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error)
	GetAppointment(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	UpdateAppointment(ctx context.Context, id uuid.UUID, req *model.UpdateAppointmentRequest) (*model.Appointment, error)
	CancelAppointment(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	DeleteAppointment(ctx context.Context, id uuid.UUID) error
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Appointment, error)
}

type Service struct {
	repo        repository.AppointmentRepository
	patientRepo repository.PatientRepository
	doctorRepo  repository.DoctorRepository
	emailSvc    email.Service
}

func NewService(repo repository.AppointmentRepository, patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository, emailSvc email.Service) *Service {
	return &Service{
		repo:        repo,
		patientRepo: patientRepo,
		doctorRepo:  doctorRepo,
		emailSvc:    emailSvc,
	}
}

func (s *Service) CreateAppointment(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	patient, err := s.patientRepo.Get(ctx, req.PatientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	doctor, err := s.doctorRepo.Get(ctx, req.DoctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}

	appointment, err := model.NewAppointment(patient, doctor, req.AppointmentDate, req.Reason)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, appointment); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	// Confirmation is best effort; the booking stands either way.
	if s.emailSvc != nil && patient.Email() != "" {
		if err := s.emailSvc.SendAppointmentConfirmation(ctx, patient.Email(), appointment); err != nil {
			log.Warn().Err(err).Str("appointment_id", appointment.ID.String()).
				Msg("failed to send appointment confirmation")
		}
	}

	return appointment, nil
}

func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return appointment, nil
}

func (s *Service) UpdateAppointment(ctx context.Context, id uuid.UUID, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	if req.AppointmentDate != nil {
		if err := appointment.SetAppointmentDate(*req.AppointmentDate); err != nil {
			return nil, err
		}
	}
	if req.Reason != nil {
		if err := appointment.SetReason(*req.Reason); err != nil {
			return nil, err
		}
	}
	if req.Status != nil {
		if err := appointment.SetStatus(model.AppointmentStatus(*req.Status)); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, appointment); err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}
	return appointment, nil
}

func (s *Service) CancelAppointment(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	if err := appointment.SetStatus(model.AppointmentStatusCancelled); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, appointment); err != nil {
		return nil, fmt.Errorf("failed to cancel appointment: %w", err)
	}
	return appointment, nil
}

func (s *Service) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	return nil
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Appointment, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *Service) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Appointment, error) {
	return s.repo.ListByDoctor(ctx, doctorID)
}

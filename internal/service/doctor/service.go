package doctor

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/itsivali/careconnect-v1/internal/model"
	"github.com/itsivali/careconnect-v1/internal/repository"
)

type DoctorService interface {
	CreateDoctor(ctx context.Context, req *model.CreateDoctorRequest) (*model.Doctor, error)
	GetDoctor(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
	UpdateDoctor(ctx context.Context, id uuid.UUID, req *model.UpdateDoctorRequest) (*model.Doctor, error)
	DeleteDoctor(ctx context.Context, id uuid.UUID) error
	ListDoctors(ctx context.Context) ([]*model.Doctor, error)
	ListPatients(ctx context.Context, doctorID uuid.UUID) ([]*model.Patient, error)
}

type Service struct {
	repo            repository.DoctorRepository
	appointmentRepo repository.AppointmentRepository
}

func NewService(repo repository.DoctorRepository, appointmentRepo repository.AppointmentRepository) *Service {
	return &Service{repo: repo, appointmentRepo: appointmentRepo}
}

func (s *Service) CreateDoctor(ctx context.Context, req *model.CreateDoctorRequest) (*model.Doctor, error) {
	doctor, err := model.NewDoctor(req.FirstName, req.LastName, req.Specialization)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, doctor); err != nil {
		return nil, fmt.Errorf("failed to create doctor: %w", err)
	}
	return doctor, nil
}

func (s *Service) GetDoctor(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	doctor, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return doctor, nil
}

func (s *Service) UpdateDoctor(ctx context.Context, id uuid.UUID, req *model.UpdateDoctorRequest) (*model.Doctor, error) {
	doctor, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}

	if req.FirstName != nil {
		if err := doctor.SetFirstName(*req.FirstName); err != nil {
			return nil, err
		}
	}
	if req.LastName != nil {
		if err := doctor.SetLastName(*req.LastName); err != nil {
			return nil, err
		}
	}
	if req.Specialization != nil {
		if err := doctor.SetSpecialization(*req.Specialization); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, doctor); err != nil {
		return nil, fmt.Errorf("failed to update doctor: %w", err)
	}
	return doctor, nil
}

func (s *Service) DeleteDoctor(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete doctor: %w", err)
	}
	return nil
}

func (s *Service) ListDoctors(ctx context.Context) ([]*model.Doctor, error) {
	doctors, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

// ListPatients returns the patients reachable through the doctor's
// appointments, in appointment order.
func (s *Service) ListPatients(ctx context.Context, doctorID uuid.UUID) ([]*model.Patient, error) {
	appointments, err := s.appointmentRepo.ListByDoctor(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	if len(appointments) == 0 {
		return []*model.Patient{}, nil
	}
	return appointments[0].Doctor().Patients(), nil
}

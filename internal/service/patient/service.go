package patient

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/itsivali/careconnect-v1/internal/model"
	"github.com/itsivali/careconnect-v1/internal/repository"
)

type PatientService interface {
	CreatePatient(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error)
	GetPatient(ctx context.Context, id uuid.UUID) (*model.Patient, error)
	UpdatePatient(ctx context.Context, id uuid.UUID, req *model.UpdatePatientRequest) (*model.Patient, error)
	DeletePatient(ctx context.Context, id uuid.UUID) error
	ListPatients(ctx context.Context) ([]*model.Patient, error)
	ListDoctors(ctx context.Context, patientID uuid.UUID) ([]*model.Doctor, error)
}

type Service struct {
	repo            repository.PatientRepository
	appointmentRepo repository.AppointmentRepository
}

func NewService(repo repository.PatientRepository, appointmentRepo repository.AppointmentRepository) *Service {
	return &Service{repo: repo, appointmentRepo: appointmentRepo}
}

func (s *Service) CreatePatient(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error) {
	patient := model.NewPatient(req.Username, req.DateOfBirth)
	if err := applyPatientFields(patient, req.FirstName, req.LastName, req.ContactNumber, req.Email); err != nil {
		return nil, err
	}
	if err := patient.SetCredential(req.Password); err != nil {
		return nil, fmt.Errorf("failed to set credential: %w", err)
	}

	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}
	return patient, nil
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return patient, nil
}

func (s *Service) UpdatePatient(ctx context.Context, id uuid.UUID, req *model.UpdatePatientRequest) (*model.Patient, error) {
	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	if req.FirstName != nil {
		if err := patient.SetFirstName(*req.FirstName); err != nil {
			return nil, err
		}
	}
	if req.LastName != nil {
		if err := patient.SetLastName(*req.LastName); err != nil {
			return nil, err
		}
	}
	if req.DateOfBirth != nil {
		if err := patient.SetDateOfBirth(*req.DateOfBirth); err != nil {
			return nil, err
		}
	}
	if req.ContactNumber != nil {
		if err := patient.SetContactNumber(*req.ContactNumber); err != nil {
			return nil, err
		}
	}
	if req.Email != nil {
		if err := patient.SetEmail(*req.Email); err != nil {
			return nil, err
		}
	}
	if req.Password != nil {
		if err := patient.SetCredential(*req.Password); err != nil {
			return nil, fmt.Errorf("failed to set credential: %w", err)
		}
	}

	if err := s.repo.Update(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}
	return patient, nil
}

func (s *Service) DeletePatient(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}
	return nil
}

func (s *Service) ListPatients(ctx context.Context) ([]*model.Patient, error) {
	patients, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

// ListDoctors returns the doctors reachable through the patient's
// appointments, in appointment order.
func (s *Service) ListDoctors(ctx context.Context, patientID uuid.UUID) ([]*model.Doctor, error) {
	appointments, err := s.appointmentRepo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	if len(appointments) == 0 {
		return []*model.Doctor{}, nil
	}
	return appointments[0].Patient().Doctors(), nil
}

func applyPatientFields(patient *model.Patient, firstName, lastName, contactNumber, email string) error {
	if firstName != "" {
		if err := patient.SetFirstName(firstName); err != nil {
			return err
		}
	}
	if lastName != "" {
		if err := patient.SetLastName(lastName); err != nil {
			return err
		}
	}
	if contactNumber != "" {
		if err := patient.SetContactNumber(contactNumber); err != nil {
			return err
		}
	}
	if email != "" {
		if err := patient.SetEmail(email); err != nil {
			return err
		}
	}
	return nil
}

package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/itsivali/careconnect-v1/internal/model"
	"github.com/itsivali/careconnect-v1/internal/repository"
)

type BillingService interface {
	CreateBill(ctx context.Context, req *model.CreateBillRequest) (*model.Bill, error)
	GetBill(ctx context.Context, id uuid.UUID) (*model.Bill, error)
	UpdateBillStatus(ctx context.Context, id uuid.UUID, status string) (*model.Bill, error)
	AddLineItem(ctx context.Context, billID uuid.UUID, req *model.BillLineItemRequest) (*model.Bill, error)
	RemoveLineItem(ctx context.Context, billID, serviceID uuid.UUID) (*model.Bill, error)
	DeleteBill(ctx context.Context, id uuid.UUID) error
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Bill, error)
}

type Service struct {
	repo        repository.BillRepository
	patientRepo repository.PatientRepository
	serviceRepo repository.ServiceRepository
}

func NewService(repo repository.BillRepository, patientRepo repository.PatientRepository,
	serviceRepo repository.ServiceRepository) *Service {
	return &Service{repo: repo, patientRepo: patientRepo, serviceRepo: serviceRepo}
}

// CreateBill builds the bill with its line items in memory, letting
// the model accumulate the amount, then persists the whole unit.
func (s *Service) CreateBill(ctx context.Context, req *model.CreateBillRequest) (*model.Bill, error) {
	patient, err := s.patientRepo.Get(ctx, req.PatientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	billDate := req.BillDate
	if billDate.IsZero() {
		billDate = time.Now()
	}

	bill, err := model.NewBill(patient, billDate)
	if err != nil {
		return nil, err
	}
	if req.Status != "" {
		if err := bill.SetStatus(model.BillStatus(req.Status)); err != nil {
			return nil, err
		}
	}

	for _, item := range req.Items {
		svc, err := s.serviceRepo.Get(ctx, item.ServiceID)
		if err != nil {
			return nil, fmt.Errorf("failed to get service: %w", err)
		}
		if _, err := bill.AddLineItem(svc, item.Quantity, item.Notes); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Create(ctx, bill); err != nil {
		return nil, fmt.Errorf("failed to create bill: %w", err)
	}
	return bill, nil
}

func (s *Service) GetBill(ctx context.Context, id uuid.UUID) (*model.Bill, error) {
	bill, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	return bill, nil
}

func (s *Service) UpdateBillStatus(ctx context.Context, id uuid.UUID, status string) (*model.Bill, error) {
	bill, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	if err := bill.SetStatus(model.BillStatus(status)); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, bill); err != nil {
		return nil, fmt.Errorf("failed to update bill: %w", err)
	}
	return bill, nil
}

func (s *Service) AddLineItem(ctx context.Context, billID uuid.UUID, req *model.BillLineItemRequest) (*model.Bill, error) {
	bill, err := s.repo.Get(ctx, billID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	svc, err := s.serviceRepo.Get(ctx, req.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}

	if _, err := bill.AddLineItem(svc, req.Quantity, req.Notes); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, bill); err != nil {
		return nil, fmt.Errorf("failed to update bill: %w", err)
	}
	return bill, nil
}

func (s *Service) RemoveLineItem(ctx context.Context, billID, serviceID uuid.UUID) (*model.Bill, error) {
	bill, err := s.repo.Get(ctx, billID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	if err := bill.RemoveLineItem(serviceID); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, bill); err != nil {
		return nil, fmt.Errorf("failed to update bill: %w", err)
	}
	return bill, nil
}

func (s *Service) DeleteBill(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}
	return nil
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Bill, error) {
	bills, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	return bills, nil
}

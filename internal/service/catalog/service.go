package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/itsivali/careconnect-v1/internal/model"
	"github.com/itsivali/careconnect-v1/internal/repository"
)

// CatalogService manages the billable-service catalog.
type CatalogService interface {
	CreateService(ctx context.Context, req *model.CreateServiceRequest) (*model.Service, error)
	GetService(ctx context.Context, id uuid.UUID) (*model.Service, error)
	UpdateService(ctx context.Context, id uuid.UUID, req *model.UpdateServiceRequest) (*model.Service, error)
	DeleteService(ctx context.Context, id uuid.UUID) error
	ListServices(ctx context.Context) ([]*model.Service, error)
}

type Service struct {
	repo repository.ServiceRepository
}

func NewService(repo repository.ServiceRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateService(ctx context.Context, req *model.CreateServiceRequest) (*model.Service, error) {
	svc, err := model.NewService(req.Name, req.Description, req.Price)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	return svc, nil
}

func (s *Service) GetService(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	svc, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return svc, nil
}

func (s *Service) UpdateService(ctx context.Context, id uuid.UUID, req *model.UpdateServiceRequest) (*model.Service, error) {
	svc, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}

	if req.Name != nil {
		if err := svc.SetName(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		if err := svc.SetDescription(*req.Description); err != nil {
			return nil, err
		}
	}
	if req.Price != nil {
		if err := svc.SetPrice(*req.Price); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}
	return svc, nil
}

func (s *Service) DeleteService(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	return nil
}

func (s *Service) ListServices(ctx context.Context) ([]*model.Service, error) {
	services, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/itsivali/careconnect-v1/internal/model"
	"github.com/itsivali/careconnect-v1/internal/repository"
	"github.com/itsivali/careconnect-v1/pkg/auth"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService interface {
	PatientLogin(ctx context.Context, username, password string) (*model.TokenResponse, error)
	AdminLogin(ctx context.Context, username, password string) (*model.TokenResponse, error)
	ValidateToken(ctx context.Context, token string) (*auth.Claims, error)
}

type Service struct {
	patientRepo repository.PatientRepository
	adminRepo   repository.AdminRepository
	jwtSvc      auth.JWTService
	tokenExpiry time.Duration
}

func NewService(patientRepo repository.PatientRepository, adminRepo repository.AdminRepository,
	jwtSvc auth.JWTService, tokenExpiry time.Duration) *Service {
	return &Service{
		patientRepo: patientRepo,
		adminRepo:   adminRepo,
		jwtSvc:      jwtSvc,
		tokenExpiry: tokenExpiry,
	}
}

// PatientLogin verifies the credential through the model's verify
// operation; the stored hash never leaves the entity.
func (s *Service) PatientLogin(ctx context.Context, username, password string) (*model.TokenResponse, error) {
	patient, err := s.patientRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !patient.Authenticate(password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtSvc.GenerateToken(patient.ID, patient.Username(), auth.RolePatient)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &model.TokenResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(s.tokenExpiry),
	}, nil
}

func (s *Service) AdminLogin(ctx context.Context, username, password string) (*model.TokenResponse, error) {
	admin, err := s.adminRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !admin.Authenticate(password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtSvc.GenerateToken(admin.ID, admin.Username(), auth.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &model.TokenResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(s.tokenExpiry),
	}, nil
}

func (s *Service) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.jwtSvc.ValidateToken(token)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	return claims, nil
}

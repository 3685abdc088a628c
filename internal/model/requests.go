package model

import (
	"time"

	"github.com/google/uuid"
)

type CreatePatientRequest struct {
	Username      string    `json:"username" binding:"required"`
	Password      string    `json:"password" binding:"required,min=8"`
	DateOfBirth   time.Time `json:"date_of_birth" binding:"required"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	ContactNumber string    `json:"contact_number" binding:"omitempty,msisdn"`
	Email         string    `json:"email" binding:"omitempty,email"`
}

type UpdatePatientRequest struct {
	FirstName     *string    `json:"first_name"`
	LastName      *string    `json:"last_name"`
	DateOfBirth   *time.Time `json:"date_of_birth"`
	ContactNumber *string    `json:"contact_number"`
	Email         *string    `json:"email"`
	Password      *string    `json:"password" binding:"omitempty,min=8"`
}

type CreateDoctorRequest struct {
	FirstName      string `json:"first_name" binding:"required"`
	LastName       string `json:"last_name" binding:"required"`
	Specialization string `json:"specialization"`
}

type UpdateDoctorRequest struct {
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	Specialization *string `json:"specialization"`
}

type CreateAppointmentRequest struct {
	PatientID       uuid.UUID `json:"patient_id" binding:"required"`
	DoctorID        uuid.UUID `json:"doctor_id" binding:"required"`
	AppointmentDate time.Time `json:"appointment_date" binding:"required"`
	Reason          string    `json:"reason"`
}

type UpdateAppointmentRequest struct {
	AppointmentDate *time.Time `json:"appointment_date"`
	Reason          *string    `json:"reason"`
	Status          *string    `json:"status"`
}

type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
}

type BillLineItemRequest struct {
	ServiceID uuid.UUID `json:"service_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required"`
	Notes     string    `json:"notes"`
}

type CreateBillRequest struct {
	PatientID uuid.UUID             `json:"patient_id" binding:"required"`
	BillDate  time.Time             `json:"bill_date"`
	Status    string                `json:"status"`
	Items     []BillLineItemRequest `json:"items"`
}

type UpdateBillStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is returned by the login endpoints.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

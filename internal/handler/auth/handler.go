package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/itsivali/careconnect-v1/internal/handler"
	"github.com/itsivali/careconnect-v1/internal/model"
	"github.com/itsivali/careconnect-v1/internal/repository"
	authsvc "github.com/itsivali/careconnect-v1/internal/service/auth"
	patientsvc "github.com/itsivali/careconnect-v1/internal/service/patient"
)

type Handler struct {
	authService    authsvc.AuthService
	patientService patientsvc.PatientService
	outboxRepo     repository.OutboxRepository
}

func NewHandler(authService authsvc.AuthService, patientService patientsvc.PatientService,
	outboxRepo repository.OutboxRepository) *Handler {
	return &Handler{
		authService:    authService,
		patientService: patientService,
		outboxRepo:     outboxRepo,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	auth.POST("/patient/register", h.RegisterPatient)
	auth.POST("/patient/login", h.PatientLogin)
	auth.POST("/admin/login", h.AdminLogin)
}

func (h *Handler) RegisterPatient(c *gin.Context) {
	var req model.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	patient, err := h.patientService.CreatePatient(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	handler.EmitEvent(c.Request.Context(), h.outboxRepo, "patient.registered", patient.Serialize())
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(patient.Serialize()))
}

func (h *Handler) PatientLogin(c *gin.Context) {
	h.login(c, h.authService.PatientLogin)
}

func (h *Handler) AdminLogin(c *gin.Context) {
	h.login(c, h.authService.AdminLogin)
}

func (h *Handler) login(c *gin.Context, authenticate func(ctx context.Context, username, password string) (*model.TokenResponse, error)) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	token, err := authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, authsvc.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid username or password"))
			return
		}
		c.Error(err)
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(token))
}

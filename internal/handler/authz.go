package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/itsivali/careconnect-v1/internal/middleware"
	"github.com/itsivali/careconnect-v1/pkg/auth"
	apperrors "github.com/itsivali/careconnect-v1/pkg/errors"
)

// AuthorizePatientAccess gates access to a patient's records: admins
// pass, a patient passes only for their own id. On refusal the error
// is recorded on the context and the request aborted; callers return
// immediately when false.
func AuthorizePatientAccess(c *gin.Context, patientID uuid.UUID) bool {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		c.Error(apperrors.Unauthorized(nil))
		c.Abort()
		return false
	}
	if claims.Role == auth.RoleAdmin || claims.SubjectID == patientID {
		return true
	}
	c.Error(apperrors.NewForbidden("patients may only access their own records"))
	c.Abort()
	return false
}

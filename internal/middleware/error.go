package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	apperrors "github.com/itsivali/careconnect-v1/pkg/errors"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}

// ErrorHandler translates core error kinds into HTTP responses:
// validation failures to 400, credential reads to 403, missing
// records to 404, everything else to 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		requestID := c.GetString(ContextRequestID)

		for _, e := range c.Errors {
			log.Error().
				Err(e.Err).
				Str("request_id", requestID).
				Str("path", c.Request.URL.Path).
				Str("method", c.Request.Method).
				Msg("request error")
		}

		lastErr := c.Errors.Last().Err
		resp := ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: lastErr.Error(),
			TraceID: requestID,
		}

		var validationErr *apperrors.ValidationError
		var appErr *apperrors.AppError
		switch {
		case errors.As(lastErr, &validationErr):
			resp.Code = http.StatusBadRequest
			resp.Field = validationErr.Field
			resp.Message = validationErr.Reason
		case errors.As(lastErr, &appErr):
			switch appErr.Code {
			case apperrors.ErrNotFound:
				resp.Code = http.StatusNotFound
			case apperrors.ErrBadRequest:
				resp.Code = http.StatusBadRequest
			case apperrors.ErrUnauthorized:
				resp.Code = http.StatusUnauthorized
			case apperrors.ErrForbidden:
				resp.Code = http.StatusForbidden
			}
			resp.Message = appErr.Message
		}

		c.JSON(resp.Code, resp)
	}
}

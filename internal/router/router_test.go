package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itsivali/careconnect-v1/internal/handler"
	"github.com/itsivali/careconnect-v1/internal/middleware"
	"github.com/itsivali/careconnect-v1/pkg/auth"
	apperrors "github.com/itsivali/careconnect-v1/pkg/errors"
)

type deniedValidator struct{}

func (deniedValidator) ValidateToken(string) (*auth.Claims, error) {
	return nil, apperrors.Unauthorized(nil)
}

type failingPublicHandler struct{}

func (failingPublicHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/missing", func(c *gin.Context) {
		c.Error(apperrors.NewNotFound("patient", nil))
		c.Abort()
	})
}

type noopGuardedHandler struct{}

func (noopGuardedHandler) RegisterRoutes(*gin.RouterGroup, gin.HandlerFunc) {}

func TestErrorRequestsObservedWithFinalStatus(t *testing.T) {
	guarded := noopGuardedHandler{}
	r := New(
		middleware.NewAuthMiddleware(deniedValidator{}),
		failingPublicHandler{},
		guarded, guarded, guarded, guarded, guarded,
		handler.NewHandler(nil),
		Config{MetricsPrefix: "careconnect_router_test"},
	)
	r.Setup()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/missing", nil)
	r.Engine().ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)

	total := testutil.ToFloat64(r.metrics.requestTotal.WithLabelValues(http.MethodGet, "/api/v1/missing", "404"))
	assert.Equal(t, 1.0, total, "request counted under the status the error middleware wrote")

	errs := testutil.ToFloat64(r.metrics.errorTotal.WithLabelValues(http.MethodGet, "/api/v1/missing", "http"))
	assert.Equal(t, 1.0, errs)
}

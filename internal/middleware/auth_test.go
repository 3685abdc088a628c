package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itsivali/careconnect-v1/pkg/auth"
)

type fakeValidator struct {
	claims *auth.Claims
	err    error
	calls  int
}

func (f *fakeValidator) ValidateToken(token string) (*auth.Claims, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.claims, nil
}

func setupAuthRouter(mw *AuthMiddleware, roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/secure", mw.RequireAuth(roles...), func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no claims"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"username": claims.Username})
	})
	return r
}

func TestRequireAuthMissingHeader(t *testing.T) {
	mw := NewAuthMiddleware(&fakeValidator{})
	r := setupAuthRouter(mw)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthInvalidToken(t *testing.T) {
	mw := NewAuthMiddleware(&fakeValidator{err: errors.New("bad token")})
	r := setupAuthRouter(mw)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer nope")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthRoleMismatch(t *testing.T) {
	validator := &fakeValidator{claims: &auth.Claims{
		SubjectID: uuid.New(),
		Username:  "pat",
		Role:      auth.RolePatient,
	}}
	mw := NewAuthMiddleware(validator)
	r := setupAuthRouter(mw, auth.RoleAdmin)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAuthPassesClaims(t *testing.T) {
	validator := &fakeValidator{claims: &auth.Claims{
		SubjectID: uuid.New(),
		Username:  "admin",
		Role:      auth.RoleAdmin,
	}}
	mw := NewAuthMiddleware(validator)
	r := setupAuthRouter(mw, auth.RoleAdmin)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer token")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin")
}

func TestRequireAuthCachesClaims(t *testing.T) {
	validator := &fakeValidator{claims: &auth.Claims{
		SubjectID: uuid.New(),
		Username:  "admin",
		Role:      auth.RoleAdmin,
	}}
	mw := NewAuthMiddleware(validator)
	r := setupAuthRouter(mw)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/secure", nil)
		req.Header.Set("Authorization", "Bearer same-token")
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	assert.Equal(t, 1, validator.calls)
}

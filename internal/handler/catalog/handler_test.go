package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itsivali/careconnect-v1/internal/middleware"
	"github.com/itsivali/careconnect-v1/internal/model"
	apperrors "github.com/itsivali/careconnect-v1/pkg/errors"
)

type catalogServiceMock struct {
	services map[uuid.UUID]*model.Service
}

func newCatalogServiceMock() *catalogServiceMock {
	return &catalogServiceMock{services: make(map[uuid.UUID]*model.Service)}
}

func (m *catalogServiceMock) CreateService(_ context.Context, req *model.CreateServiceRequest) (*model.Service, error) {
	service, err := model.NewService(req.Name, req.Description, req.Price)
	if err != nil {
		return nil, err
	}
	m.services[service.ID] = service
	return service, nil
}

func (m *catalogServiceMock) GetService(_ context.Context, id uuid.UUID) (*model.Service, error) {
	service, ok := m.services[id]
	if !ok {
		return nil, apperrors.NewNotFound("service", nil)
	}
	return service, nil
}

func (m *catalogServiceMock) UpdateService(_ context.Context, id uuid.UUID, req *model.UpdateServiceRequest) (*model.Service, error) {
	service, ok := m.services[id]
	if !ok {
		return nil, apperrors.NewNotFound("service", nil)
	}
	if req.Price != nil {
		if err := service.SetPrice(*req.Price); err != nil {
			return nil, err
		}
	}
	return service, nil
}

func (m *catalogServiceMock) DeleteService(_ context.Context, id uuid.UUID) error {
	if _, ok := m.services[id]; !ok {
		return apperrors.NewNotFound("service", nil)
	}
	delete(m.services, id)
	return nil
}

func (m *catalogServiceMock) ListServices(_ context.Context) ([]*model.Service, error) {
	out := make([]*model.Service, 0, len(m.services))
	for _, s := range m.services {
		out = append(out, s)
	}
	return out, nil
}

func setupRouter(svc *catalogServiceMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler())

	h := NewHandler(svc, nil)
	api := r.Group("/api/v1")
	allowAll := func(c *gin.Context) { c.Next() }
	h.RegisterRoutes(api, allowAll)
	return r
}

func TestCreateService(t *testing.T) {
	svc := newCatalogServiceMock()
	r := setupRouter(svc)

	body, _ := json.Marshal(gin.H{
		"name":        "X-Ray",
		"description": "Standard x-ray.",
		"price":       120.50,
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/services", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Status string                 `json:"status"`
		Data   map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "X-Ray", resp.Data["name"])
	assert.Equal(t, 120.50, resp.Data["price"])
}

func TestCreateServiceRejectsNonPositivePrice(t *testing.T) {
	svc := newCatalogServiceMock()
	r := setupRouter(svc)

	body, _ := json.Marshal(gin.H{
		"name":        "X-Ray",
		"description": "Standard x-ray.",
		"price":       -5.0,
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/services", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetServiceNotFound(t *testing.T) {
	svc := newCatalogServiceMock()
	r := setupRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/services/%s", uuid.New()), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetServiceInvalidID(t *testing.T) {
	svc := newCatalogServiceMock()
	r := setupRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/services/not-a-uuid", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListServices(t *testing.T) {
	svc := newCatalogServiceMock()
	service, err := model.NewService("ECG", "Resting ECG.", 80)
	require.NoError(t, err)
	svc.services[service.ID] = service

	r := setupRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/services", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "ECG", resp.Data[0]["name"])
}

package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mealforge/v1/internal/domain/workflow"
	"github.com/mealforge/v1/internal/infrastructure/config"
	"github.com/mealforge/v1/internal/infrastructure/http/handlers"
	"github.com/mealforge/v1/internal/infrastructure/monitoring"
	"github.com/mealforge/v1/pkg/errors"
)

type stubWorkflowService struct{}

func (stubWorkflowService) Generate(ctx context.Context, req workflow.Request) (*workflow.State, error) {
	return nil, errors.ValidationErrors{{Field: "ingredients", Message: "Please select at least one ingredient."}}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)

	logger := zaptest.NewLogger(t)
	metrics := monitoring.NewMetricsCollector(prometheus.NewRegistry(), logger)
	api := handlers.NewAPIHandlers(stubWorkflowService{}, cfg.App.Version, logger)

	return NewServer(cfg, api, metrics, logger)
}

func TestServerRoutes(t *testing.T) {
	server := newTestServer(t)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{"health", http.MethodGet, "/health", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", http.StatusOK},
		{"catalog", http.MethodGet, "/api/v1/catalog", http.StatusOK},
		{"generate with empty body", http.MethodPost, "/api/v1/recipes/generate", http.StatusBadRequest},
		{"unknown route", http.MethodGet, "/api/v1/unknown", http.StatusNotFound},
		{"wrong method", http.MethodGet, "/api/v1/recipes/generate", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()

			server.Router().ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestServerGenerateValidationError(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recipes/generate", strings.NewReader(`{"ingredients":[]}`))
	rec := httptest.NewRecorder()

	server.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please select at least one ingredient.")
}

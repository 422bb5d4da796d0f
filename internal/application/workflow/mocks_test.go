package workflow

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/mealforge/v1/internal/domain/workflow"
	"github.com/mealforge/v1/internal/infrastructure/monitoring"
	"github.com/mealforge/v1/internal/ports/outbound"
)

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) Complete(ctx context.Context, systemPrompt, userPrompt string, profile outbound.Profile) (string, error) {
	args := m.Called(ctx, systemPrompt, userPrompt, profile)
	return args.String(0), args.Error(1)
}

func (m *mockGateway) CompleteStructured(ctx context.Context, systemPrompt, userPrompt string, profile outbound.Profile, out interface{}) error {
	args := m.Called(ctx, systemPrompt, userPrompt, profile, out)
	return args.Error(0)
}

type mockSearchService struct {
	mock.Mock
}

func (m *mockSearchService) Search(ctx context.Context, query string, maxResults int) ([]outbound.SearchHit, error) {
	args := m.Called(ctx, query, maxResults)
	if hits := args.Get(0); hits != nil {
		return hits.([]outbound.SearchHit), args.Error(1)
	}
	return nil, args.Error(1)
}

func testMetrics(t *testing.T) *monitoring.MetricsCollector {
	t.Helper()
	return monitoring.NewMetricsCollector(prometheus.NewRegistry(), zaptest.NewLogger(t))
}

func testLogger(t *testing.T) *zap.Logger {
	t.Helper()
	return zaptest.NewLogger(t)
}

func testRequest() workflow.Request {
	req := workflow.Request{
		Ingredients:         []string{"chicken", "rice", "broccoli"},
		Appliance:           "Stovetop",
		AvailableAppliances: []string{"Stovetop", "Oven"},
		DietaryRestrictions: []string{},
		CuisinePreference:   "Italian",
		SkillLevel:          "Intermediate",
	}
	req.Normalize()
	return req
}

func testState() *workflow.State {
	return workflow.NewState(testRequest())
}

package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"eprel-mirror/core/eprel"
	"eprel-mirror/feature/catalog/store"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeService struct {
	healthy   bool
	healthErr error
	stats     *store.Statistics
	statsErr  error
}

func (s *fakeService) HealthCheck(ctx context.Context) (bool, error) {
	return s.healthy, s.healthErr
}

func (s *fakeService) Statistics() (*store.Statistics, error) {
	return s.stats, s.statsErr
}

func newTestApp(svc Service) *fiber.App {
	app := fiber.New()
	NewHandler(svc, zap.NewNop()).RegisterRoutes(app)
	return app
}

func TestHandleHealthOK(t *testing.T) {
	app := newTestApp(&fakeService{healthy: true})

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestHandleHealthAuthFailure(t *testing.T) {
	app := newTestApp(&fakeService{healthErr: eprel.ErrAuth})

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "api key rejected")
}

func TestHandleHealthUnreachable(t *testing.T) {
	app := newTestApp(&fakeService{healthErr: errors.New("connection refused")})

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestHandleStatistics(t *testing.T) {
	app := newTestApp(&fakeService{stats: &store.Statistics{
		TotalProducts:  42,
		TotalSuppliers: 7,
		ByCategory:     []store.CategoryCount{{Code: "dishwashers", Products: 42}},
	}})

	resp, err := app.Test(httptest.NewRequest("GET", "/statistics", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var stats store.Statistics
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, int64(42), stats.TotalProducts)
	require.Len(t, stats.ByCategory, 1)
	assert.Equal(t, "dishwashers", stats.ByCategory[0].Code)
}

func TestHandleStatisticsError(t *testing.T) {
	app := newTestApp(&fakeService{statsErr: errors.New("db down")})

	resp, err := app.Test(httptest.NewRequest("GET", "/statistics", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

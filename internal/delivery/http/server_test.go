package http_test

import (
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/oceancolor-service/internal/config"
	deliveryhttp "github.com/oceancolor-service/internal/delivery/http"
	"github.com/oceancolor-service/internal/delivery/http/handler"
	"github.com/oceancolor-service/internal/domain"
	"github.com/oceancolor-service/internal/observability"
	"github.com/oceancolor-service/internal/repository/artifact"
	"github.com/oceancolor-service/internal/repository/sqlite"
	"github.com/oceancolor-service/internal/usecase"
)

func newTestServer(t *testing.T) *deliveryhttp.Server {
	t.Helper()

	logger := zap.NewNop()

	db, err := sqlite.New(":memory:", logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.EnsureSchema(t.Context()))

	repo := sqlite.NewAnalysisRepository(db)

	blueness := 0.42
	require.NoError(t, repo.Upsert(t.Context(), domain.AnalysisRecord{
		Timestamp:   1700000000,
		Status:      string(domain.StatusCompleted),
		SeaBlueness: &blueness,
	}))
	require.NoError(t, repo.Upsert(t.Context(), domain.AnalysisRecord{
		Timestamp: 1700000600,
		Status:    string(domain.StatusNight),
	}))

	cfg := &config.Config{
		Source: config.SourceConfig{Name: "himawari"},
		Classifier: config.ClassifierConfig{
			TimeZone:           "Asia/Shanghai",
			DayStartHour:       7,
			NightStartHour:     17,
			ThickCloudCoverage: 0.7,
		},
	}

	// Конвейер здесь не прогоняется: тестируются только read-эндпоинты.
	analysisUC, err := usecase.NewAnalysisUseCase(
		repo, artifact.Nop(), nil, nil, usecase.NewThresholdStrategy(),
		observability.NewMetricsForTesting(), logger, cfg)
	require.NoError(t, err)

	return deliveryhttp.NewServer(cfg, logger, handler.NewAnalysisHandler(analysisUC, logger))
}

func doRequest(t *testing.T, s *deliveryhttp.Server, method, target string) *nethttp.Response {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	resp, err := s.App().Test(req, int(5*time.Second/time.Millisecond))
	require.NoError(t, err)
	return resp
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)

	resp := doRequest(t, s, nethttp.MethodGet, "/api/v1/health")
	defer resp.Body.Close()

	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
}

func TestListAnalyses(t *testing.T) {
	s := newTestServer(t)

	resp := doRequest(t, s, nethttp.MethodGet, "/api/v1/analyses")
	defer resp.Body.Close()

	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload struct {
		Data []struct {
			Timestamp int64  `json:"timestamp"`
			Status    string `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))

	require.Len(t, payload.Data, 2)
	assert.Equal(t, int64(1700000600), payload.Data[0].Timestamp)
	assert.Equal(t, int64(1700000000), payload.Data[1].Timestamp)
}

func TestGetAnalysisByTimestamp(t *testing.T) {
	s := newTestServer(t)

	resp := doRequest(t, s, nethttp.MethodGet, "/api/v1/analyses/1700000000")
	defer resp.Body.Close()

	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload struct {
		Data struct {
			Status      string   `json:"status"`
			SeaBlueness *float64 `json:"seaBlueness"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))

	assert.Equal(t, string(domain.StatusCompleted), payload.Data.Status)
	require.NotNil(t, payload.Data.SeaBlueness)
	assert.InDelta(t, 0.42, *payload.Data.SeaBlueness, 1e-9)
}

func TestGetAnalysisByTimestamp_NotFound(t *testing.T) {
	s := newTestServer(t)

	resp := doRequest(t, s, nethttp.MethodGet, "/api/v1/analyses/123")
	defer resp.Body.Close()

	assert.Equal(t, nethttp.StatusNotFound, resp.StatusCode)
}

func TestGetAnalysisByTimestamp_InvalidTimestamp(t *testing.T) {
	s := newTestServer(t)

	resp := doRequest(t, s, nethttp.MethodGet, "/api/v1/analyses/yesterday")
	defer resp.Body.Close()

	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
}

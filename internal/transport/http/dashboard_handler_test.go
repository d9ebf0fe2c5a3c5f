package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "dtxcli/internal/errors"
	"dtxcli/internal/services"
	"dtxcli/pkg/contracts/domain"
)

// stubService implements DashboardServiceInterface with canned responses.
// Set err to exercise the error path for every method at once.
type stubService struct {
	err error

	summary  domain.DatasetSummary
	entities []domain.Entity
	years    services.YearsResult
	trend    services.TrendResult
	snapshot domain.Snapshot
	top      []domain.EntityMean
}

func (s *stubService) GetSummary(context.Context) (domain.DatasetSummary, error) {
	return s.summary, s.err
}

func (s *stubService) GetEntities(context.Context) ([]domain.Entity, string, error) {
	code := ""
	if len(s.entities) > 0 {
		code = s.entities[0].Code
	}
	return s.entities, code, s.err
}

func (s *stubService) GetYears(context.Context) (services.YearsResult, error) {
	return s.years, s.err
}

func (s *stubService) GetTrend(_ context.Context, code string) (services.TrendResult, error) {
	return s.trend, s.err
}

func (s *stubService) GetSnapshot(_ context.Context, code string, year int) (domain.Snapshot, error) {
	return s.snapshot, s.err
}

func (s *stubService) GetDistribution(context.Context) (domain.Distribution, error) {
	return domain.Distribution{}, s.err
}

func (s *stubService) GetYearlyMeans(context.Context) ([]domain.YearlyPoint, error) {
	return nil, s.err
}

func (s *stubService) GetYearlyStats(context.Context) ([]domain.YearlyStat, error) {
	return nil, s.err
}

func (s *stubService) GetChangeRates(context.Context) ([]domain.ChangePoint, error) {
	return nil, s.err
}

func (s *stubService) GetTopEntities(_ context.Context, n int) ([]domain.EntityMean, error) {
	if n < len(s.top) {
		return s.top[:n], s.err
	}
	return s.top, s.err
}

func (s *stubService) GetHeatmap(context.Context) (domain.Heatmap, error) {
	return domain.Heatmap{}, s.err
}

func newTestHandler(svc DashboardServiceInterface) *DashboardHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	candidates := []string{"data.xlsx", "data/digital_transformation_index.xlsx"}
	return NewDashboardHandler(svc, logger, apierrors.NewErrorHandler(logger, false), candidates)
}

func doRequest(t *testing.T, h *DashboardHandler, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestGetSummary(t *testing.T) {
	svc := &stubService{summary: domain.DatasetSummary{
		MeanIndex: 60, MaxIndex: 90, EntityCount: 3, MinYear: 1998, MaxYear: 2000, RowCount: 4,
	}}

	rec, body := doRequest(t, newTestHandler(svc), "/summary")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", body["status"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, 4.0, data["row_count"])
	assert.Equal(t, 60.0, data["mean_index"])
}

func TestGetSummaryDataNotFound(t *testing.T) {
	svc := &stubService{err: services.ErrDataNotFound}

	rec, body := doRequest(t, newTestHandler(svc), "/summary")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apierrors.TypeDataNotFound, body["type"])

	// The problem document reports which candidate paths were tried.
	details, ok := body["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{"data.xlsx", "data/digital_transformation_index.xlsx"}, details["candidates"])
}

func TestGetEntities(t *testing.T) {
	svc := &stubService{entities: []domain.Entity{
		{Code: "000001", Name: "Ping Tech"},
		{Code: "600003", Name: "Acme Digital"},
	}}

	rec, body := doRequest(t, newTestHandler(svc), "/entities")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2.0, body["count"])
	assert.Equal(t, "000001", body["default_code"])
}

func TestGetYears(t *testing.T) {
	svc := &stubService{years: services.YearsResult{Years: []int{1998, 1999}, DefaultYear: 1999}}

	rec, body := doRequest(t, newTestHandler(svc), "/years")

	assert.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, 1999.0, data["default_year"])
}

func TestGetTrend(t *testing.T) {
	svc := &stubService{trend: services.TrendResult{
		Code: "600003",
		Name: "Acme Digital",
		Points: []domain.Observation{
			{Code: "600003", Name: "Acme Digital", Year: 1998, Index: 50},
			{Code: "600003", Name: "Acme Digital", Year: 1999, Index: 60},
		},
	}}

	rec, body := doRequest(t, newTestHandler(svc), "/entity/600003/trend")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2.0, body["count"])
}

func TestGetSnapshot(t *testing.T) {
	rank := domain.RankResult{Rank: 1, Total: 2}
	svc := &stubService{snapshot: domain.Snapshot{
		Found: true, Code: "600003", Name: "Acme Digital", Year: 1999, Index: 60, Rank: &rank,
	}}

	rec, body := doRequest(t, newTestHandler(svc), "/entity/600003/snapshot?year=1999")

	assert.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, true, data["found"])
}

func TestGetSnapshotMissingYear(t *testing.T) {
	rec, body := doRequest(t, newTestHandler(&stubService{}), "/entity/600003/snapshot")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apierrors.TypeValidation, body["type"])
}

func TestGetSnapshotInvalidYear(t *testing.T) {
	rec, _ := doRequest(t, newTestHandler(&stubService{}), "/entity/600003/snapshot?year=abc")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetTopEntitiesDefaultLimit(t *testing.T) {
	svc := &stubService{top: []domain.EntityMean{{Code: "600003", Name: "Acme Digital", MeanIndex: 55, Years: 2}}}

	rec, body := doRequest(t, newTestHandler(svc), "/charts/top")

	assert.Equal(t, http.StatusOK, rec.Code)
	params := body["params"].(map[string]interface{})
	assert.Equal(t, 20.0, params["limit"])
}

func TestGetTopEntitiesInvalidLimit(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"zero", "/charts/top?limit=0"},
		{"negative", "/charts/top?limit=-5"},
		{"too large", "/charts/top?limit=500"},
		{"not a number", "/charts/top?limit=ten"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := doRequest(t, newTestHandler(&stubService{}), tt.path)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, apierrors.TypeValidation, body["type"])
		})
	}
}

func TestChartEndpointsDataNotFound(t *testing.T) {
	svc := &stubService{err: services.ErrDataNotFound}
	h := newTestHandler(svc)

	paths := []string{
		"/charts/distribution",
		"/charts/yearly-mean",
		"/charts/yearly-stats",
		"/charts/change",
		"/charts/heatmap",
	}
	for _, path := range paths {
		rec, body := doRequest(t, h, path)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Equal(t, apierrors.TypeDataNotFound, body["type"], path)
	}
}

func TestEntityCtxRejectsLongCode(t *testing.T) {
	long := "0123456789012345678901234567890123456789"
	rec, _ := doRequest(t, newTestHandler(&stubService{}), "/entity/"+long+"/trend")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

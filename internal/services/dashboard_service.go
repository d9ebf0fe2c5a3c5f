package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"dtxcli/internal/analytics"
	"dtxcli/internal/config"
	"dtxcli/internal/dataset"
	"dtxcli/pkg/contracts/domain"
)

// insufficientHistoryWarning is returned with a trend response when the
// entity has fewer than two observations, replacing the trend chart.
const insufficientHistoryWarning = "insufficient history for trend"

// TrendResult is an entity's full history plus a warning when there is not
// enough of it to draw a trend.
type TrendResult struct {
	Code    string               `json:"code"`
	Name    string               `json:"name"`
	Points  []domain.Observation `json:"points"`
	Warning string               `json:"warning,omitempty"`
}

// YearsResult is the observed year list plus the default selection year
// clamped into the observed range.
type YearsResult struct {
	Years       []int `json:"years"`
	DefaultYear int   `json:"default_year"`
}

// DashboardService answers every dashboard query from a single loaded
// observation table. The table is loaded at most once per process: the
// load is a memoized pure function of the configured candidate paths,
// invalidated only by restart. singleflight collapses concurrent first
// requests into one file read.
type DashboardService struct {
	cfg    *config.Config
	loader *dataset.Loader
	logger *slog.Logger

	cache atomic.Pointer[dataset.Dataset]
	group singleflight.Group
}

// NewDashboardService creates a dashboard service over the configured
// candidate data files.
func NewDashboardService(cfg *config.Config, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{
		cfg:    cfg,
		loader: dataset.NewLoader(cfg.Data.Files, logger),
		logger: logger.With(slog.String("component", "dashboard_service")),
	}
}

// data returns the loaded dataset, loading it on first use.
func (s *DashboardService) data(ctx context.Context) (*dataset.Dataset, error) {
	if ds := s.cache.Load(); ds != nil {
		return ds, nil
	}

	v, err, _ := s.group.Do("load", func() (interface{}, error) {
		if ds := s.cache.Load(); ds != nil {
			return ds, nil
		}
		ds, err := s.loader.Load()
		if err != nil {
			return nil, err
		}
		s.cache.Store(ds)
		return ds, nil
	})
	if err != nil {
		if errors.Is(err, dataset.ErrDataNotFound) {
			s.logger.WarnContext(ctx, "no data file found",
				slog.Any("candidates", s.cfg.Data.Files))
			return nil, ErrDataNotFound
		}
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	return v.(*dataset.Dataset), nil
}

// GetSummary returns the global overview metrics.
func (s *DashboardService) GetSummary(ctx context.Context) (domain.DatasetSummary, error) {
	ds, err := s.data(ctx)
	if err != nil {
		return domain.DatasetSummary{}, err
	}
	return analytics.Summarize(ds.Rows()), nil
}

// GetEntities returns the sorted entity registry. The default selection is
// the first code in sorted order; callers with an empty registry fall back
// to the configured literal.
func (s *DashboardService) GetEntities(ctx context.Context) ([]domain.Entity, string, error) {
	ds, err := s.data(ctx)
	if err != nil {
		return nil, "", err
	}
	entities := ds.Entities()
	defaultCode := s.cfg.Data.FallbackCode
	if len(entities) > 0 {
		defaultCode = entities[0].Code
	}
	return entities, defaultCode, nil
}

// GetYears returns the sorted year list and the clamped default year.
func (s *DashboardService) GetYears(ctx context.Context) (YearsResult, error) {
	ds, err := s.data(ctx)
	if err != nil {
		return YearsResult{}, err
	}
	return YearsResult{
		Years:       ds.Years(),
		DefaultYear: ds.ClampYear(s.cfg.Data.DefaultYear),
	}, nil
}

// GetTrend returns all observations for one entity, ascending by year. An
// unknown code is not an error: the result is empty with the sentinel name
// and the insufficient-history warning.
func (s *DashboardService) GetTrend(ctx context.Context, code string) (TrendResult, error) {
	ds, err := s.data(ctx)
	if err != nil {
		return TrendResult{}, err
	}
	result := TrendResult{
		Code:   code,
		Name:   ds.Name(code),
		Points: ds.EntityHistory(code),
	}
	if len(result.Points) < 2 {
		result.Warning = insufficientHistoryWarning
	}
	return result, nil
}

// GetSnapshot returns the exact-match view for (code, year), with the
// within-year rank. An unmatched pair yields Found=false and omitted
// metrics rather than an error.
func (s *DashboardService) GetSnapshot(ctx context.Context, code string, year int) (domain.Snapshot, error) {
	ds, err := s.data(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}

	snapshot := domain.Snapshot{
		Code: code,
		Name: ds.Name(code),
		Year: year,
	}

	obs, found := ds.Find(code, year)
	if !found {
		return snapshot, nil
	}

	rank := analytics.RankWithinYear(ds.YearRows(year), obs.Index)
	snapshot.Found = true
	snapshot.Index = obs.Index
	snapshot.Rank = &rank
	return snapshot, nil
}

// GetDistribution returns the bucketed index distribution.
func (s *DashboardService) GetDistribution(ctx context.Context) (domain.Distribution, error) {
	ds, err := s.data(ctx)
	if err != nil {
		return domain.Distribution{}, err
	}
	return analytics.Distribution(ds.Rows()), nil
}

// GetYearlyMeans returns the per-year mean series.
func (s *DashboardService) GetYearlyMeans(ctx context.Context) ([]domain.YearlyPoint, error) {
	ds, err := s.data(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.YearlyMeans(ds.Rows()), nil
}

// GetYearlyStats returns the per-year mean plus entity count series.
func (s *DashboardService) GetYearlyStats(ctx context.Context) ([]domain.YearlyStat, error) {
	ds, err := s.data(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.YearlyStats(ds.Rows()), nil
}

// GetChangeRates returns the year-over-year change of the per-year mean.
func (s *DashboardService) GetChangeRates(ctx context.Context) ([]domain.ChangePoint, error) {
	ds, err := s.data(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.ChangeRates(ds.Rows()), nil
}

// GetTopEntities returns the top-n entities by mean index.
func (s *DashboardService) GetTopEntities(ctx context.Context, n int) ([]domain.EntityMean, error) {
	ds, err := s.data(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.TopEntities(ds.Rows(), ds.Name, n), nil
}

// GetHeatmap returns the top-30 entity-by-year pivot.
func (s *DashboardService) GetHeatmap(ctx context.Context) (domain.Heatmap, error) {
	ds, err := s.data(ctx)
	if err != nil {
		return domain.Heatmap{}, err
	}
	return analytics.HeatmapPivot(ds.Rows(), ds.Name, 0), nil
}

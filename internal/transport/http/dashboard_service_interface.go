package http

import (
	"context"

	"dtxcli/internal/services"
	"dtxcli/pkg/contracts/domain"
)

// DashboardServiceInterface defines the contract the dashboard handler
// depends on, so tests can substitute a stub service.
type DashboardServiceInterface interface {
	GetSummary(ctx context.Context) (domain.DatasetSummary, error)
	GetEntities(ctx context.Context) ([]domain.Entity, string, error)
	GetYears(ctx context.Context) (services.YearsResult, error)
	GetTrend(ctx context.Context, code string) (services.TrendResult, error)
	GetSnapshot(ctx context.Context, code string, year int) (domain.Snapshot, error)
	GetDistribution(ctx context.Context) (domain.Distribution, error)
	GetYearlyMeans(ctx context.Context) ([]domain.YearlyPoint, error)
	GetYearlyStats(ctx context.Context) ([]domain.YearlyStat, error)
	GetChangeRates(ctx context.Context) ([]domain.ChangePoint, error)
	GetTopEntities(ctx context.Context, n int) ([]domain.EntityMean, error)
	GetHeatmap(ctx context.Context) (domain.Heatmap, error)
}

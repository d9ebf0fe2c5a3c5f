package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dtxcli/pkg/contracts/domain"
)

func TestYearlyMeans(t *testing.T) {
	rows := []domain.Observation{
		obs("A", 2000, 40),
		obs("B", 1999, 30),
		obs("A", 1999, 50),
		obs("B", 2000, 60),
		obs("C", 2000, 50),
	}

	points := YearlyMeans(rows)
	require.Len(t, points, 2)

	assert.Equal(t, 1999, points[0].Year)
	assert.InDelta(t, 40, points[0].MeanIndex, 1e-9)
	assert.Equal(t, 2000, points[1].Year)
	assert.InDelta(t, 50, points[1].MeanIndex, 1e-9)
}

func TestYearlyStats(t *testing.T) {
	rows := []domain.Observation{
		obs("A", 1999, 50),
		obs("B", 1999, 30),
		obs("A", 2000, 40),
	}

	stats := YearlyStats(rows)
	require.Len(t, stats, 2)

	assert.Equal(t, domain.YearlyStat{Year: 1999, MeanIndex: 40, EntityCount: 2}, stats[0])
	assert.Equal(t, domain.YearlyStat{Year: 2000, MeanIndex: 40, EntityCount: 1}, stats[1])
}

func TestChangeRates(t *testing.T) {
	rows := []domain.Observation{
		obs("600003", 1998, 50),
		obs("600003", 1999, 60),
		obs("600003", 2000, 45),
	}

	changes := ChangeRates(rows)
	require.Len(t, changes, 3)

	// First year has no prior value: nil, never zero.
	assert.Equal(t, 1998, changes[0].Year)
	assert.Nil(t, changes[0].ChangePct)

	require.NotNil(t, changes[1].ChangePct)
	assert.InDelta(t, 20.0, *changes[1].ChangePct, 1e-9)

	require.NotNil(t, changes[2].ChangePct)
	assert.InDelta(t, -25.0, *changes[2].ChangePct, 1e-9)
}

func TestChangeRatesSingleYear(t *testing.T) {
	changes := ChangeRates([]domain.Observation{obs("A", 1999, 50)})
	require.Len(t, changes, 1)
	assert.Nil(t, changes[0].ChangePct)
}

func TestChangeRatesZeroPriorMean(t *testing.T) {
	rows := []domain.Observation{
		obs("A", 1999, 0),
		obs("A", 2000, 10),
	}
	changes := ChangeRates(rows)
	require.Len(t, changes, 2)
	// Division by a zero prior mean is undefined, not infinite.
	assert.Nil(t, changes[1].ChangePct)
}

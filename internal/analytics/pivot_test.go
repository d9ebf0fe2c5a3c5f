package analytics

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dtxcli/pkg/contracts/domain"
)

func TestHeatmapPivot(t *testing.T) {
	rows := []domain.Observation{
		obs("A", 1999, 80),
		obs("A", 2000, 90), // mean 85
		obs("B", 1999, 40), // mean 40, no 2000 observation
	}

	hm := HeatmapPivot(rows, nameOf, 2)
	require.Equal(t, []string{"A", "B"}, hm.Codes)
	require.Equal(t, []int{1999, 2000}, hm.Years)
	require.Len(t, hm.Cells, 2)
	require.Len(t, hm.Cells[0], 2)

	require.NotNil(t, hm.Cells[0][0])
	assert.InDelta(t, 80, *hm.Cells[0][0], 1e-9)
	require.NotNil(t, hm.Cells[0][1])
	assert.InDelta(t, 90, *hm.Cells[0][1], 1e-9)

	require.NotNil(t, hm.Cells[1][0])
	assert.InDelta(t, 40, *hm.Cells[1][0], 1e-9)
	// Missing (code, year) pair stays nil, never zero.
	assert.Nil(t, hm.Cells[1][1])
}

func TestHeatmapPivotTopRestriction(t *testing.T) {
	rows := []domain.Observation{
		obs("A", 1999, 90),
		obs("B", 1999, 50),
		obs("C", 1999, 10),
	}

	hm := HeatmapPivot(rows, nameOf, 2)
	assert.Equal(t, []string{"A", "B"}, hm.Codes)
	assert.Len(t, hm.Cells, 2)
}

func TestHeatmapPivotDefaultLimit(t *testing.T) {
	rows := make([]domain.Observation, 0, 40)
	for i := 0; i < 40; i++ {
		rows = append(rows, obs(fmt.Sprintf("6000%02d", i), 1999, float64(i)))
	}

	hm := HeatmapPivot(rows, nameOf, 0)
	assert.Len(t, hm.Codes, heatmapTopCodes)
}

func TestHeatmapPivotEmpty(t *testing.T) {
	hm := HeatmapPivot(nil, nameOf, 0)
	assert.Empty(t, hm.Codes)
	assert.Empty(t, hm.Years)
	assert.Empty(t, hm.Cells)
}

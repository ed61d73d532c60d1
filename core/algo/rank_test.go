package algo

import (
	"testing"

	"github.com/mtlpdq/pdqstats/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankDistricts(t *testing.T) {
	byDistrict := statsWithTotals(5, 10, 10, 0)
	byDistrict[2].ByCategory["Vol"] = 6
	byDistrict[2].ByCategory["Méfait"] = 4

	rows := RankDistricts(byDistrict, 0)
	require.Len(t, rows, 4)
	assert.Equal(t, []int{2, 3, 1, 4}, []int{rows[0].District, rows[1].District, rows[2].District, rows[3].District})

	assert.Equal(t, "Vol", rows[0].TopCategory)
	assert.Equal(t, 6, rows[0].TopCount)
	assert.InDelta(t, 40.0, rows[0].Share, 1e-9)
	assert.Equal(t, 4, rows[0].Bucket)
	assert.Equal(t, schema.ScaleLabels[4], rows[0].Label)
	assert.Equal(t, 2, rows[2].Bucket)
	assert.Equal(t, 0, rows[3].Bucket)
	assert.Equal(t, "", rows[3].TopCategory)
}

func TestRankDistrictsLimit(t *testing.T) {
	rows := RankDistricts(statsWithTotals(5, 10, 10, 0), 2)
	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[0].District)
	assert.Equal(t, 3, rows[1].District)
}

func TestRankDistrictsNilStats(t *testing.T) {
	byDistrict := statsWithTotals(3)
	byDistrict[9] = nil
	rows := RankDistricts(byDistrict, 0)
	require.Len(t, rows, 2)
	assert.Equal(t, 9, rows[1].District)
	assert.Equal(t, 0, rows[1].Total)
}

func TestRankDistrictsEmpty(t *testing.T) {
	assert.Empty(t, RankDistricts(nil, 5))
}

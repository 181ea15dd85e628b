package quota_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"judol-guard/models"
	"judol-guard/quota"
)

func sum(units map[string]int) int {
	total := 0
	for _, u := range units {
		total += u
	}
	return total
}

func TestDistributeSumEqualsBudget(t *testing.T) {
	cases := []struct {
		name     string
		channels []models.Channel
		total    int
	}{
		{"even weights", []models.Channel{{ID: "a", Weight: 1}, {ID: "b", Weight: 1}}, 100},
		{"skewed weights", []models.Channel{{ID: "a", Weight: 1}, {ID: "b", Weight: 7}, {ID: "c", Weight: 2}}, 10000},
		{"rounding pressure", []models.Channel{{ID: "a", Weight: 1}, {ID: "b", Weight: 1}, {ID: "c", Weight: 1}}, 10},
		{"budget smaller than channels", []models.Channel{{ID: "a", Weight: 3}, {ID: "b", Weight: 2}, {ID: "c", Weight: 1}}, 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			units := quota.Distribute(tc.channels, tc.total)
			assert.Equal(t, tc.total, sum(units))
			for id, u := range units {
				assert.GreaterOrEqual(t, u, 0, "allocation for %s must not be negative", id)
			}
		})
	}
}

func TestDistributeSingleChannelTakesAll(t *testing.T) {
	units := quota.Distribute([]models.Channel{{ID: "only", Weight: 5}}, 10000)
	assert.Equal(t, map[string]int{"only": 10000}, units)
}

func TestDistributeWeightedShare(t *testing.T) {
	units := quota.Distribute([]models.Channel{
		{ID: "A", Weight: 1},
		{ID: "B", Weight: 1},
		{ID: "C", Weight: 2},
	}, 10)

	assert.Equal(t, 10, sum(units))
	assert.Equal(t, 5, units["C"])
	assert.GreaterOrEqual(t, units["C"], units["A"])
	assert.GreaterOrEqual(t, units["C"], units["B"])
}

func TestDistributeEmptyChannels(t *testing.T) {
	units := quota.Distribute(nil, 10000)
	assert.Empty(t, units)
}

func TestDistributeZeroBudget(t *testing.T) {
	units := quota.Distribute([]models.Channel{{ID: "a", Weight: 1}}, 0)
	assert.Empty(t, units)
}

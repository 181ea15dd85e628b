package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistinctDropsRepeats(t *testing.T) {
	got := distinct([]string{
		"http://www.youtube.com/@spammer1",
		"http://www.youtube.com/@spammer2",
		"http://www.youtube.com/@spammer1",
		"http://www.youtube.com/@spammer3",
		"http://www.youtube.com/@spammer2",
	})

	assert.Equal(t, []string{
		"http://www.youtube.com/@spammer1",
		"http://www.youtube.com/@spammer2",
		"http://www.youtube.com/@spammer3",
	}, got, "first occurrence wins, input order preserved")
}

func TestDistinctAlreadyUnique(t *testing.T) {
	got := distinct([]string{"aero88", "dora77", "sawer4d"})

	assert.Equal(t, []string{"aero88", "dora77", "sawer4d"}, got)
}

func TestDistinctEmpty(t *testing.T) {
	assert.Empty(t, distinct(nil))
	assert.Empty(t, distinct([]string{}))
}

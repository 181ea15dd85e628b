package services_test

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"judol-guard/config"
	"judol-guard/models"
	"judol-guard/services"
)

// memBlocklist is an in-memory stand-in for the generation table: appended
// rows get monotonically increasing ids and replacement invalidates every
// prior live row.
type memBlocklist struct {
	nextID int64
	live   map[string][]models.BlocklistGeneration
}

func newMemBlocklist() *memBlocklist {
	return &memBlocklist{nextID: 1, live: map[string][]models.BlocklistGeneration{}}
}

func (m *memBlocklist) ReplaceGenerations(ctx context.Context, kind string, batches [][]string) error {
	m.live[kind] = nil
	for _, batch := range batches {
		m.live[kind] = append(m.live[kind], models.BlocklistGeneration{ID: m.nextID, Batch: batch})
		m.nextID++
	}
	return nil
}

func (m *memBlocklist) PageLive(ctx context.Context, kind string, boundaryID int64, direction string, limit int) ([]models.BlocklistGeneration, error) {
	var out []models.BlocklistGeneration
	for _, g := range m.live[kind] {
		if direction == services.DirectionBefore && g.ID < boundaryID {
			out = append(out, g)
		}
		if direction != services.DirectionBefore && g.ID > boundaryID {
			out = append(out, g)
		}
	}
	if direction == services.DirectionBefore {
		sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	} else {
		sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func pipelineWindows() config.PipelineConfig {
	return config.PipelineConfig{WordsPageWindow: 2, ChannelsPageWindow: 1}
}

func TestPageEmpty(t *testing.T) {
	svc := services.NewBlocklistService(newMemBlocklist(), pipelineWindows())

	page, err := svc.Page(context.Background(), models.BlocklistWords, 0, services.DirectionAfter)

	require.NoError(t, err)
	assert.Empty(t, page.Batches)
	assert.Zero(t, page.FirstID)
	assert.Zero(t, page.LastID)
}

func TestPageForwardFromStart(t *testing.T) {
	store := newMemBlocklist()
	require.NoError(t, store.ReplaceGenerations(context.Background(), models.BlocklistWords, [][]string{
		{"aero88"}, {"dora77"}, {"sawer4d"},
	}))
	svc := services.NewBlocklistService(store, pipelineWindows())

	page, err := svc.Page(context.Background(), models.BlocklistWords, 0, services.DirectionAfter)

	require.NoError(t, err)
	require.Len(t, page.Batches, 2)
	assert.Equal(t, []string{"aero88"}, page.Batches[0])
	assert.Equal(t, []string{"dora77"}, page.Batches[1])
	assert.Equal(t, int64(1), page.FirstID)
	assert.Equal(t, int64(2), page.LastID)

	// follow the LastID link to the next window
	next, err := svc.Page(context.Background(), models.BlocklistWords, page.LastID, services.DirectionAfter)
	require.NoError(t, err)
	require.Len(t, next.Batches, 1)
	assert.Equal(t, []string{"sawer4d"}, next.Batches[0])
}

func TestPageBackwardComesBackAscending(t *testing.T) {
	store := newMemBlocklist()
	require.NoError(t, store.ReplaceGenerations(context.Background(), models.BlocklistWords, [][]string{
		{"aero88"}, {"dora77"}, {"sawer4d"},
	}))
	svc := services.NewBlocklistService(store, pipelineWindows())

	page, err := svc.Page(context.Background(), models.BlocklistWords, 3, services.DirectionBefore)

	require.NoError(t, err)
	require.Len(t, page.Batches, 2)
	assert.Equal(t, []string{"aero88"}, page.Batches[0])
	assert.Equal(t, []string{"dora77"}, page.Batches[1])
	assert.Equal(t, int64(1), page.FirstID)
	assert.Equal(t, int64(2), page.LastID)
	assert.LessOrEqual(t, page.FirstID, page.LastID)
}

func TestPageReplacementHidesOldGenerations(t *testing.T) {
	store := newMemBlocklist()
	ctx := context.Background()
	require.NoError(t, store.ReplaceGenerations(ctx, models.BlocklistChannels, [][]string{{"@old"}}))
	require.NoError(t, store.ReplaceGenerations(ctx, models.BlocklistChannels, [][]string{{"@fresh"}}))
	svc := services.NewBlocklistService(store, pipelineWindows())

	page, err := svc.Page(ctx, models.BlocklistChannels, 0, services.DirectionAfter)

	require.NoError(t, err)
	require.Len(t, page.Batches, 1)
	assert.Equal(t, []string{"@fresh"}, page.Batches[0])
}

func TestPageUnknownDirectionTreatedAsAfter(t *testing.T) {
	store := newMemBlocklist()
	require.NoError(t, store.ReplaceGenerations(context.Background(), models.BlocklistWords, [][]string{{"aero88"}}))
	svc := services.NewBlocklistService(store, pipelineWindows())

	page, err := svc.Page(context.Background(), models.BlocklistWords, 0, "sideways")

	require.NoError(t, err)
	require.Len(t, page.Batches, 1)
	assert.Equal(t, int64(1), page.FirstID)
}

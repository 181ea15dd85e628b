package harvester_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"judol-guard/harvester"
	"judol-guard/repositories"
)

func pagePayload(nextToken string, comments ...[2]string) []byte {
	items := ""
	for i, c := range comments {
		if i > 0 {
			items += ","
		}
		items += fmt.Sprintf(`{"snippet":{"topLevelComment":{"id":%q,"snippet":{"authorChannelUrl":"http://www.youtube.com/@poster%d","textOriginal":%q}}}}`,
			c[0], i, c[1])
	}
	next := ""
	if nextToken != "" {
		next = fmt.Sprintf(`"nextPageToken":%q,`, nextToken)
	}
	return []byte(fmt.Sprintf(`{%s"items":[%s]}`, next, items))
}

type fakeSource struct {
	pages map[string][]byte // keyed by page token, "" for first page
	calls int
	fail  map[string]error
}

func (f *fakeSource) ListThreads(ctx context.Context, channelID, pageToken string, maxResults int) ([]byte, error) {
	f.calls++
	if err := f.fail[pageToken]; err != nil {
		return nil, err
	}
	data, ok := f.pages[pageToken]
	if !ok {
		return nil, fmt.Errorf("no page for token %q", pageToken)
	}
	return data, nil
}

type fakeCache struct {
	entries map[repositories.PageKey][]byte
	saves   int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[repositories.PageKey][]byte{}}
}

func (f *fakeCache) Find(ctx context.Context, key repositories.PageKey) ([]byte, bool, error) {
	data, ok := f.entries[key]
	return data, ok, nil
}

func (f *fakeCache) Save(ctx context.Context, key repositories.PageKey, data []byte, ttl time.Duration) error {
	f.saves++
	f.entries[key] = data
	return nil
}

func TestHarvestStopsEarlyWithoutNextToken(t *testing.T) {
	source := &fakeSource{pages: map[string][]byte{
		"":      pagePayload("tok-2", [2]string{"c1", "first"}, [2]string{"c2", "second"}),
		"tok-2": pagePayload("", [2]string{"c3", "third"}),
	}}
	h := harvester.New(source, newFakeCache(), time.Hour)

	comments := h.Harvest(context.Background(), "UC123", 5, 100)

	assert.Equal(t, 2, source.calls, "must stop after the page without a next token")
	require.Len(t, comments, 3)
	assert.Equal(t, "c1", comments[0].ID)
	assert.Equal(t, "third", comments[2].Text)
}

func TestHarvestReusesCachedPages(t *testing.T) {
	source := &fakeSource{pages: map[string][]byte{
		"":      pagePayload("tok-2", [2]string{"c1", "first"}),
		"tok-2": pagePayload("", [2]string{"c2", "second"}),
	}}
	cache := newFakeCache()
	h := harvester.New(source, cache, time.Hour)

	first := h.Harvest(context.Background(), "UC123", 5, 100)
	require.Len(t, first, 2)
	assert.Equal(t, 2, source.calls)
	assert.Equal(t, 2, cache.saves)

	// identical parameters within the TTL: everything comes from cache
	second := h.Harvest(context.Background(), "UC123", 5, 100)
	assert.Equal(t, 2, source.calls, "cached run must not fetch")
	assert.Equal(t, first, second)
}

func TestHarvestReturnsPartialResultOnPageError(t *testing.T) {
	source := &fakeSource{
		pages: map[string][]byte{
			"": pagePayload("tok-2", [2]string{"c1", "first"}),
		},
		fail: map[string]error{"tok-2": fmt.Errorf("quota exceeded")},
	}
	h := harvester.New(source, newFakeCache(), time.Hour)

	comments := h.Harvest(context.Background(), "UC123", 5, 100)

	require.Len(t, comments, 1)
	assert.Equal(t, "c1", comments[0].ID)
}

func TestHarvestRespectsQuota(t *testing.T) {
	source := &fakeSource{pages: map[string][]byte{
		"":      pagePayload("tok-2", [2]string{"c1", "a"}),
		"tok-2": pagePayload("tok-3", [2]string{"c2", "b"}),
		"tok-3": pagePayload("tok-4", [2]string{"c3", "c"}),
	}}
	h := harvester.New(source, newFakeCache(), time.Hour)

	comments := h.Harvest(context.Background(), "UC123", 2, 100)

	assert.Equal(t, 2, source.calls)
	assert.Len(t, comments, 2)
}

func TestHarvestZeroQuota(t *testing.T) {
	source := &fakeSource{pages: map[string][]byte{}}
	h := harvester.New(source, newFakeCache(), time.Hour)

	comments := h.Harvest(context.Background(), "UC123", 0, 100)

	assert.Equal(t, 0, source.calls)
	assert.Empty(t, comments)
}

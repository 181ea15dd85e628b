// Package harvester walks the paginated comment feed of one channel under an
// allocated page quota, reusing cached pages where possible.
package harvester

import (
	"context"
	"time"

	"judol-guard/logger"
	"judol-guard/models"
	"judol-guard/repositories"
	"judol-guard/youtube"
)

// CommentSource fetches one raw page of comment threads.
type CommentSource interface {
	ListThreads(ctx context.Context, channelID, pageToken string, maxResults int) ([]byte, error)
}

// PageCache memoizes raw page payloads keyed by call parameters.
type PageCache interface {
	Find(ctx context.Context, key repositories.PageKey) ([]byte, bool, error)
	Save(ctx context.Context, key repositories.PageKey, data []byte, ttl time.Duration) error
}

type Harvester struct {
	source CommentSource
	cache  PageCache
	ttl    time.Duration
}

func New(source CommentSource, cache PageCache, ttl time.Duration) *Harvester {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Harvester{source: source, cache: cache, ttl: ttl}
}

// Harvest collects top-level comments for channelID across up to quotaPages
// pages of pageSize comments. It never fails past its own boundary: on any
// per-page error it logs and returns whatever was accumulated so far.
// It stops early when the feed reports no next page token.
func (h *Harvester) Harvest(ctx context.Context, channelID string, quotaPages, pageSize int) []models.Comment {
	var comments []models.Comment

	pageToken := ""
	for i := 0; i < quotaPages; i++ {
		key := repositories.PageKey{
			PageToken:  pageToken,
			ChannelID:  channelID,
			Part:       youtube.Part,
			MaxResults: pageSize,
		}

		data, hit, err := h.cache.Find(ctx, key)
		if err != nil {
			logger.WarnWithFields("page cache lookup failed, fetching live", logger.Fields{
				"channel_id": channelID, "page": i, "error": err.Error(),
			})
			hit = false
		}
		if !hit {
			data, err = h.source.ListThreads(ctx, channelID, pageToken, pageSize)
			if err != nil {
				logger.ErrorWithFields("comment page fetch failed, returning partial result", logger.Fields{
					"channel_id": channelID, "page": i, "error": err.Error(),
				})
				return comments
			}
			if err := h.cache.Save(ctx, key, data, h.ttl); err != nil {
				// 캐시 저장 실패는 수집 자체를 막지 않는다.
				logger.WarnWithFields("page cache save failed", logger.Fields{
					"channel_id": channelID, "page": i, "error": err.Error(),
				})
			}
		}

		page, err := youtube.ParseThreadPage(data)
		if err != nil {
			logger.ErrorWithFields("comment page parse failed, returning partial result", logger.Fields{
				"channel_id": channelID, "page": i, "error": err.Error(),
			})
			return comments
		}

		comments = append(comments, page.Comments...)

		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}

	return comments
}

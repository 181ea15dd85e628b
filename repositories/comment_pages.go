package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PageKey identifies one cached commentThreads.list call.
// An empty PageToken means the first page (stored as NULL).
type PageKey struct {
	PageToken  string
	ChannelID  string
	Part       string
	MaxResults int
}

type CommentPageRepository struct {
	pool *pgxpool.Pool
}

func NewCommentPageRepository(pool *pgxpool.Pool) *CommentPageRepository {
	return &CommentPageRepository{pool: pool}
}

func nullableToken(token string) *string {
	if token == "" {
		return nil
	}
	return &token
}

// Find returns the cached raw payload for key if a non-expired entry exists.
// A miss is (nil, false, nil), not an error.
func (r *CommentPageRepository) Find(ctx context.Context, key PageKey) ([]byte, bool, error) {
	var data []byte
	err := r.pool.QueryRow(ctx, `
		SELECT data
		FROM comment_pages
		WHERE page_token IS NOT DISTINCT FROM $1 AND
			channel_id = $2 AND
			part = $3 AND
			max_results = $4 AND
			expired_at > NOW()
		LIMIT 1`,
		nullableToken(key.PageToken), key.ChannelID, key.Part, key.MaxResults,
	).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Save stores a fetched page payload under key with the given retention window.
func (r *CommentPageRepository) Save(ctx context.Context, key PageKey, data []byte, ttl time.Duration) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO comment_pages (page_token, channel_id, part, max_results, data, expired_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		nullableToken(key.PageToken), key.ChannelID, key.Part, key.MaxResults, data, time.Now().Add(ttl))
	return err
}

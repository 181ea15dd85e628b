package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"judol-guard/models"
)

type LLMBatchRepository struct {
	pool *pgxpool.Pool
}

func NewLLMBatchRepository(pool *pgxpool.Pool) *LLMBatchRepository {
	return &LLMBatchRepository{pool: pool}
}

// GetActive returns the batch with completed_at IS NULL, or nil when none
// exists. The schema guarantees there is at most one.
func (r *LLMBatchRepository) GetActive(ctx context.Context) (*models.LLMBatch, error) {
	var b models.LLMBatch
	err := r.pool.QueryRow(ctx, `
		SELECT id, created_at, last_checked_at
		FROM llm_batches
		WHERE completed_at IS NULL
		LIMIT 1`).Scan(&b.ID, &b.CreatedAt, &b.LastCheckedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Insert persists a freshly submitted batch. The partial unique index on
// incomplete batches turns a concurrent double submission into a conflict
// error here.
func (r *LLMBatchRepository) Insert(ctx context.Context, id string, inputContent, detail []byte) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO llm_batches (id, jsonl_input_content, detail)
		VALUES ($1, $2, $3)`,
		id, inputContent, detail)
	return err
}

// UpdateDetail stores the latest remote status blob and refreshes
// last_checked_at. Called on every poll regardless of outcome.
func (r *LLMBatchRepository) UpdateDetail(ctx context.Context, id string, detail []byte) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE llm_batches
		SET detail = $2, last_checked_at = NOW()
		WHERE id = $1`,
		id, detail)
	return err
}

// MarkCompleted terminally closes a batch with no output
// (failed/expired/cancelled remote status).
func (r *LLMBatchRepository) MarkCompleted(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE llm_batches
		SET completed_at = NOW()
		WHERE id = $1`,
		id)
	return err
}

// CompleteWithOutput terminally closes a successful batch, persisting the
// parsed output payload.
func (r *LLMBatchRepository) CompleteWithOutput(ctx context.Context, id string, outputContent []byte) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE llm_batches
		SET jsonl_output_content = $2, completed_at = NOW()
		WHERE id = $1`,
		id, outputContent)
	return err
}

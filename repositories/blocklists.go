package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"judol-guard/models"
)

// blocklist kinds map to fixed table names; nothing user-supplied is ever
// interpolated into SQL.
var blocklistTables = map[string]string{
	models.BlocklistWords:    "blocked_words",
	models.BlocklistChannels: "blocked_channels",
}

type BlocklistRepository struct {
	pool *pgxpool.Pool
}

func NewBlocklistRepository(pool *pgxpool.Pool) *BlocklistRepository {
	return &BlocklistRepository{pool: pool}
}

func blocklistTable(kind string) (string, error) {
	table, ok := blocklistTables[kind]
	if !ok {
		return "", fmt.Errorf("unknown blocklist kind %q", kind)
	}
	return table, nil
}

// ReplaceGenerations invalidates all live rows of kind and inserts one fresh
// row per batch, atomically within one transaction.
func (r *BlocklistRepository) ReplaceGenerations(ctx context.Context, kind string, batches [][]string) error {
	table, err := blocklistTable(kind)
	if err != nil {
		return err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		fmt.Sprintf(`UPDATE %s SET invalidated_at = NOW() WHERE invalidated_at IS NULL`, table),
	); err != nil {
		return err
	}
	for _, batch := range batches {
		if _, err := tx.Exec(ctx,
			fmt.Sprintf(`INSERT INTO %s (batch) VALUES ($1)`, table),
			distinct(batch),
		); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// PageLive returns up to limit live rows of kind relative to boundaryID.
// direction "after" reads id > boundaryID ascending, "before" reads
// id < boundaryID descending; callers normalize ordering.
func (r *BlocklistRepository) PageLive(ctx context.Context, kind string, boundaryID int64, direction string, limit int) ([]models.BlocklistGeneration, error) {
	table, err := blocklistTable(kind)
	if err != nil {
		return nil, err
	}

	cmp, order := ">", "ASC"
	if direction == "before" {
		cmp, order = "<", "DESC"
	}

	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
		SELECT id, batch, created_at
		FROM %s
		WHERE invalidated_at IS NULL AND id %s $1
		ORDER BY id %s
		LIMIT $2`, table, cmp, order),
		boundaryID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var gens []models.BlocklistGeneration
	for rows.Next() {
		var g models.BlocklistGeneration
		if err := rows.Scan(&g.ID, &g.Batch, &g.CreatedAt); err != nil {
			return nil, err
		}
		gens = append(gens, g)
	}
	return gens, rows.Err()
}

// distinct keeps the first occurrence of each value, preserving order.
func distinct(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

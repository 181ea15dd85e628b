package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"judol-guard/models"
)

type ChannelRepository struct {
	pool *pgxpool.Pool
}

func NewChannelRepository(pool *pgxpool.Pool) *ChannelRepository {
	return &ChannelRepository{pool: pool}
}

// Upsert inserts or refreshes a monitored channel identified by its id.
func (r *ChannelRepository) Upsert(ctx context.Context, ch models.Channel) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO monitored_channels (id, name, weight)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, weight = EXCLUDED.weight`,
		ch.ID, ch.Name, ch.Weight)
	return err
}

// List returns all monitored channels ordered by ascending weight.
func (r *ChannelRepository) List(ctx context.Context) ([]models.Channel, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, weight
		FROM monitored_channels
		ORDER BY weight ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var channels []models.Channel
	for rows.Next() {
		var ch models.Channel
		if err := rows.Scan(&ch.ID, &ch.Name, &ch.Weight); err != nil {
			return nil, err
		}
		channels = append(channels, ch)
	}
	return channels, rows.Err()
}

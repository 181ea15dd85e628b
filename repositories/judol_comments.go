package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"judol-guard/models"
)

type JudolCommentRepository struct {
	pool *pgxpool.Pool
}

func NewJudolCommentRepository(pool *pgxpool.Pool) *JudolCommentRepository {
	return &JudolCommentRepository{pool: pool}
}

// InsertMany persists judol candidates in one multi-row insert.
// Duplicate ids are a no-op so a retried collection run can overlap a
// previous one safely.
func (r *JudolCommentRepository) InsertMany(ctx context.Context, comments []models.Comment) error {
	if len(comments) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO judol_comments (id, channel, text) VALUES `)

	args := make([]any, 0, len(comments)*3)
	for i, c := range comments {
		if i > 0 {
			sb.WriteByte(',')
		}
		base := i*3 + 1
		fmt.Fprintf(&sb, "($%d,$%d,$%d)", base, base+1, base+2)
		args = append(args, c.ID, c.Channel, c.Text)
	}
	sb.WriteString(` ON CONFLICT (id) DO NOTHING`)

	_, err := r.pool.Exec(ctx, sb.String(), args...)
	return err
}

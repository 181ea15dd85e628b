package services

import (
	"context"

	"judol-guard/config"
	"judol-guard/models"
)

// BlocklistReader serves live generation rows by keyset boundary.
type BlocklistReader interface {
	PageLive(ctx context.Context, kind string, boundaryID int64, direction string, limit int) ([]models.BlocklistGeneration, error)
}

// Pagination directions. "after, boundary 0" is the canonical first page.
const (
	DirectionAfter  = "after"
	DirectionBefore = "before"
)

// BlocklistPage is one dashboard window of generation batches. FirstID and
// LastID are the min and max row ids of the window regardless of direction,
// so the caller links "before" to FirstID and "after" to LastID.
type BlocklistPage struct {
	Batches [][]string
	FirstID int64
	LastID  int64
}

// BlocklistService reads the accumulated blocklists for the dashboard.
// Read-only; it never observes invalidated rows.
type BlocklistService struct {
	reader  BlocklistReader
	windows map[string]int
}

func NewBlocklistService(reader BlocklistReader, cfg config.PipelineConfig) *BlocklistService {
	return &BlocklistService{
		reader: reader,
		windows: map[string]int{
			models.BlocklistWords:    cfg.WordsPageWindow,
			models.BlocklistChannels: cfg.ChannelsPageWindow,
		},
	}
}

// Page returns one window of live rows of kind relative to boundaryID.
// Rows always come back in ascending id order; an empty window reports
// FirstID = LastID = 0.
func (s *BlocklistService) Page(ctx context.Context, kind string, boundaryID int64, direction string) (BlocklistPage, error) {
	if direction != DirectionBefore {
		direction = DirectionAfter
	}
	limit := s.windows[kind]
	if limit <= 0 {
		limit = 1
	}

	gens, err := s.reader.PageLive(ctx, kind, boundaryID, direction, limit)
	if err != nil {
		return BlocklistPage{}, stageErr("read blocklist page", err)
	}
	if len(gens) == 0 {
		return BlocklistPage{}, nil
	}

	if direction == DirectionBefore {
		// rows arrive descending; hand them back ascending
		for i, j := 0, len(gens)-1; i < j; i, j = i+1, j-1 {
			gens[i], gens[j] = gens[j], gens[i]
		}
	}

	page := BlocklistPage{
		Batches: make([][]string, 0, len(gens)),
		FirstID: gens[0].ID,
		LastID:  gens[len(gens)-1].ID,
	}
	for _, g := range gens {
		page.Batches = append(page.Batches, g.Batch)
	}
	return page, nil
}

package dto

import "judol-guard/services"

// BlocklistPageDTO exposes one blocklist window to API consumers.
// FirstID/LastID are the boundaries for the "before" and "after" links.
type BlocklistPageDTO struct {
	Batches [][]string `json:"batches"`
	FirstID int64      `json:"first_id"`
	LastID  int64      `json:"last_id"`
}

// NewBlocklistPageDTO constructs BlocklistPageDTO from services.BlocklistPage.
func NewBlocklistPageDTO(p services.BlocklistPage) BlocklistPageDTO {
	batches := p.Batches
	if batches == nil {
		batches = [][]string{}
	}
	return BlocklistPageDTO{
		Batches: batches,
		FirstID: p.FirstID,
		LastID:  p.LastID,
	}
}

package models

import "time"

// Blocklist kinds served by the dashboard.
const (
	BlocklistWords    = "words"
	BlocklistChannels = "channels"
)

// BlocklistGeneration is one generation row of a blocklist kind.
// Tables: blocked_words, blocked_channels. Every successful extraction
// invalidates all prior live rows of the kind and inserts fresh ones, one per
// sub-batch chunk. Only rows with invalidated_at IS NULL are live.
type BlocklistGeneration struct {
	ID            int64      `json:"id"`
	Batch         []string   `json:"batch"`
	CreatedAt     time.Time  `json:"created_at"`
	InvalidatedAt *time.Time `json:"invalidated_at,omitempty"`
}

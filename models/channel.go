package models

// Channel represents a monitored channel row.
// Table: monitored_channels. Static configuration, read-only to the pipeline.
type Channel struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Weight int    `json:"weight"`
}

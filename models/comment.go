package models

import "time"

// Comment is one top-level comment pulled from the feed during a
// collection run. Ephemeral; persisted only when it is a judol candidate.
type Comment struct {
	ID      string `json:"id"`
	Channel string `json:"channel"`
	Text    string `json:"text"`
}

// JudolComment is a persisted judol candidate.
// Table: judol_comments. Append-only; duplicate ids are ignored on insert.
type JudolComment struct {
	ID        string    `json:"id"`
	Channel   string    `json:"channel"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

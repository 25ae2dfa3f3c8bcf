// Package queue defines message payloads exchanged over the message broker.
package queue

import "encoding/json"

// EntityDeletedEvent is published after an audited delete commits. It
// carries the same snapshot that went into the logs table so downstream
// consumers can trace deletions without querying the primary database.
type EntityDeletedEvent struct {
	EntityType string          `json:"entity_type"`
	EntityID   string          `json:"entity_id"`
	Actor      string          `json:"actor"`
	Snapshot   json.RawMessage `json:"snapshot"`
	DeletedAt  string          `json:"deleted_at"`
}

package models

import (
	"encoding/json"
	"time"
)

// TrackedEvent is one analytics event as stored in the first-party events
// table and broadcast to admin SSE clients.
type TrackedEvent struct {
	ID         int             `db:"id" json:"id"`
	EventID    string          `db:"event_id" json:"eventId"`
	Name       string          `db:"name" json:"name"`
	Params     json.RawMessage `db:"params" json:"params"`
	OccurredAt time.Time       `db:"occurred_at" json:"occurredAt"`
	CreatedAt  time.Time       `db:"created_at" json:"createdAt"`
}

// EventCount is an aggregate row for the admin stats endpoint.
type EventCount struct {
	Name  string `db:"name" json:"name"`
	Total int    `db:"total" json:"total"`
}

// StoreCount aggregates outbound events per store.
type StoreCount struct {
	Store string `db:"store" json:"store"`
	Total int    `db:"total" json:"total"`
}

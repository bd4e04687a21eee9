// Package queue defines message payloads exchanged over the message broker.
package queue

import "time"

const (
	EventCheapieCreated     = "cheapie.created"
	EventCheapieUpdated     = "cheapie.updated"
	EventCleanupGoneCheapie = "cleanup.gone_cheapies"
)

// ActivityEvent is published after listing writes and cleanup runs.  It
// carries enough for the consumer to write an activity line without reading
// the database.
type ActivityEvent struct {
	Type      string  `json:"type"`
	CheapieID uint64  `json:"cheapie_id,omitempty"`
	Name      string  `json:"name,omitempty"`
	Store     string  `json:"store,omitempty"`
	Stock     string  `json:"stock,omitempty"`
	Price     float64 `json:"price,omitempty"`
	Deleted   int64   `json:"deleted,omitempty"`
	At        string  `json:"at"`
}

// Stamp sets At to now in RFC3339 when it is empty.
func (e ActivityEvent) Stamp(now time.Time) ActivityEvent {
	if e.At == "" {
		e.At = now.UTC().Format(time.RFC3339)
	}
	return e
}

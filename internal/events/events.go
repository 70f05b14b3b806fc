// Package events publishes record lifecycle notifications to a message
// broker. Events identify records but never carry measurements.
package events

import (
	"context"
	"time"
)

// Type names a record lifecycle event.
type Type string

const (
	RecordCreated Type = "record.created"
	RecordUpdated Type = "record.updated"
	RecordDeleted Type = "record.deleted"
)

// Event is a record lifecycle notification.
type Event struct {
	Type       Type      `json:"type"`
	UserID     string    `json:"user_id"`
	RecordID   string    `json:"record_id"`
	RecordDate string    `json:"record_date,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher delivers events. Publish must not block on the broker.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

// Nop discards events.
type Nop struct{}

func (Nop) Publish(context.Context, Event) {}

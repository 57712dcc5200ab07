// Package events publishes notifications about expense and income changes
// for downstream consumers.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RecordKind string

const (
	KindExpense RecordKind = "expense"
	KindIncome  RecordKind = "income"
)

type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// RecordEvent describes one mutation of an expense or income record. Key is
// the category for expenses and the source for income.
type RecordEvent struct {
	Kind       RecordKind      `json:"kind"`
	Action     Action          `json:"action"`
	RecordID   uuid.UUID       `json:"record_id"`
	UserID     uuid.UUID       `json:"user_id"`
	Amount     decimal.Decimal `json:"amount"`
	Key        string          `json:"key"`
	OccurredAt time.Time       `json:"occurred_at"`
	EmittedAt  time.Time       `json:"emitted_at"`
}

// ToJSON encodes the event as the message body
func (e RecordEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// RecordEventFromJSON decodes a message body
func RecordEventFromJSON(data []byte) (*RecordEvent, error) {
	var event RecordEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// Publisher sends record events somewhere
type Publisher interface {
	PublishRecordEvent(ctx context.Context, event RecordEvent) error
	Close() error
}

// NoopPublisher drops every event. It is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishRecordEvent(context.Context, RecordEvent) error { return nil }

func (NoopPublisher) Close() error { return nil }

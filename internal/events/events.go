// Package events publishes notifications about transaction changes.
package events

import (
	"context"
	"encoding/json"
	"time"

	"fintrack/internal/domain"
)

// Kind identifies what happened to a transaction. It doubles as the routing key.
type Kind string

const (
	KindCreated Kind = "transaction.created"
	KindUpdated Kind = "transaction.updated"
	KindDeleted Kind = "transaction.deleted"
)

// TransactionEvent describes a committed change to a transaction.
type TransactionEvent struct {
	Kind          Kind                `json:"kind"`
	TransactionID string              `json:"transaction_id"`
	OccurredAt    time.Time           `json:"occurred_at"`
	Transaction   *domain.Transaction `json:"transaction,omitempty"`
}

// NewTransactionEvent builds an event for t at the given time.
func NewTransactionEvent(kind Kind, t *domain.Transaction, at time.Time) TransactionEvent {
	return TransactionEvent{
		Kind:          kind,
		TransactionID: t.ID,
		OccurredAt:    at.UTC(),
		Transaction:   t,
	}
}

// ToJSON encodes the event as a message body.
func (e TransactionEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// Publisher delivers transaction events to interested consumers.
type Publisher interface {
	Publish(ctx context.Context, event TransactionEvent) error
	Close() error
}

// NopPublisher discards every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, TransactionEvent) error { return nil }

func (NopPublisher) Close() error { return nil }

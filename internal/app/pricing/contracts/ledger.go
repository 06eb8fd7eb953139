package contracts

import (
	"context"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/pricetracker/internal/app/pricing/domain"
	"github.com/light-bringer/pricetracker/internal/pkg/committer"
)

// Committer applies a commit plan atomically.
type Committer interface {
	Apply(ctx context.Context, plan *committer.CommitPlan) error
}

// PriceHistoryEntry is one prevailing price change to append to the ledger.
type PriceHistoryEntry struct {
	HistoryID     string
	Province      string
	FileID        string
	ProductKey    string
	OldPrice      *domain.Money // nil for the first price of a product
	NewPrice      *domain.Money // nil when the product lost its last price
	ChangedBy     string
	ChangedReason string
	ChangedAt     time.Time
}

// PriceHistoryRecord is a stored price change.
type PriceHistoryRecord = PriceHistoryEntry

// PriceHistoryRepository defines the interface for price history persistence.
type PriceHistoryRepository interface {
	// InsertMut creates a mutation for inserting a price change record.
	InsertMut(entry *PriceHistoryEntry) *spanner.Mutation

	// ListByProduct retrieves the history of one product line of a file,
	// most recent first.
	ListByProduct(ctx context.Context, province, fileID, productKey string, limit int) ([]PriceHistoryRecord, error)
}

// OutboxEvent represents an enriched domain event ready for persistence.
type OutboxEvent struct {
	EventID     string
	EventType   string
	AggregateID string
	Payload     string // JSON
	Status      string
}

// OutboxRepository defines the interface for outbox event persistence.
type OutboxRepository interface {
	// InsertMut creates a mutation for inserting an outbox event
	InsertMut(event *OutboxEvent) *spanner.Mutation

	// EnrichEvent converts a domain event to an outbox event with metadata
	EnrichEvent(event domain.DomainEvent, payload string) *OutboxEvent
}

package list_events

import (
	"context"
	"strings"

	"github.com/light-bringer/pricetracker/internal/app/pricing/domain"
	"github.com/light-bringer/pricetracker/internal/models/m_outbox"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

// Request filters one province's ledger events.
type Request struct {
	Province    string
	EventType   *string // e.g. "file.submitted"
	AggregateID *string // "<province>/<id>"
	Status      *string // "pending", "completed", "failed"
	Limit       int
}

// AggregatePrefix is the prefix every returned aggregate id carries.
func (r *Request) AggregatePrefix() string {
	return domain.AggregatePrefix(r.Province)
}

// EventsReadModel reads ledger events. Implementations return only events
// whose aggregate id starts with req.AggregatePrefix().
type EventsReadModel interface {
	ListEvents(ctx context.Context, req *Request) ([]*m_outbox.Data, int64, error)
}

// Query lists the ledger events of a single province.
type Query struct {
	readModel EventsReadModel
}

// NewQuery creates a new list events query.
func NewQuery(readModel EventsReadModel) *Query {
	return &Query{
		readModel: readModel,
	}
}

// Execute returns the province's events, newest first, with the number of
// events matching the filter.
func (q *Query) Execute(ctx context.Context, req *Request) ([]*m_outbox.Data, int64, error) {
	// 1. Events are always read through a province.
	if req.Province == "" {
		return nil, 0, domain.ErrProvinceForbidden
	}

	// 2. An explicit aggregate must belong to that province.
	if req.AggregateID != nil && !strings.HasPrefix(*req.AggregateID, req.AggregatePrefix()) {
		return nil, 0, domain.ErrProvinceForbidden
	}

	// 3. Clamp the page size.
	if req.Limit <= 0 {
		req.Limit = defaultLimit
	}
	if req.Limit > maxLimit {
		req.Limit = maxLimit
	}

	return q.readModel.ListEvents(ctx, req)
}

package repo

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/pricetracker/internal/app/pricing/domain"
	"github.com/light-bringer/pricetracker/internal/app/pricing/queries/list_events"
	"github.com/light-bringer/pricetracker/internal/models/m_outbox"
	"github.com/light-bringer/pricetracker/internal/pkg/query"
)

// EventsReadModel implements the EventsReadModel interface for Spanner.
type EventsReadModel struct {
	client *spanner.Client
	model  *m_outbox.Model
}

// NewEventsReadModel creates a new EventsReadModel.
func NewEventsReadModel(client *spanner.Client) *EventsReadModel {
	return &EventsReadModel{
		client: client,
		model:  m_outbox.NewModel(),
	}
}

// ListEvents retrieves one province's events from the outbox with filtering,
// newest first. The second result is the number of rows matching the filter.
func (r *EventsReadModel) ListEvents(ctx context.Context, req *list_events.Request) ([]*m_outbox.Data, int64, error) {
	if r.client == nil {
		return nil, 0, domain.ErrLedgerUnavailable
	}

	b := query.From(m_outbox.TableName).
		Select(m_outbox.Columns()...).
		Where(query.StartsWith(m_outbox.AggregateID, req.AggregatePrefix()))
	if req.EventType != nil {
		b = b.Where(query.Eq(m_outbox.EventType, *req.EventType))
	}
	if req.AggregateID != nil {
		b = b.Where(query.Eq(m_outbox.AggregateID, *req.AggregateID))
	}
	if req.Status != nil {
		b = b.Where(query.Eq(m_outbox.Status, *req.Status))
	}

	txn := r.client.ReadOnlyTransaction()
	defer txn.Close()

	iter := txn.Query(ctx, b.OrderBy(m_outbox.CreatedAt, query.Desc).Limit(int64(req.Limit)).Build())
	defer iter.Stop()

	var events []*m_outbox.Data
	for {
		row, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to iterate events: %w", err)
		}

		event, err := r.model.ScanRow(row)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}

	var total int64
	countIter := txn.Query(ctx, b.Count().Build())
	defer countIter.Stop()
	row, err := countIter.Next()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}
	if err := row.Columns(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to parse event count: %w", err)
	}

	return events, total, nil
}

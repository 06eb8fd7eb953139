// Package ledger appends price history rows and outbox events to the Spanner
// audit ledger after a document write.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/light-bringer/pricetracker/internal/app/pricing/contracts"
	"github.com/light-bringer/pricetracker/internal/app/pricing/domain"
	"github.com/light-bringer/pricetracker/internal/pkg/committer"
	"github.com/light-bringer/pricetracker/internal/pkg/metrics"
)

// Recorder turns domain events into one ledger commit.
type Recorder struct {
	history   contracts.PriceHistoryRepository
	outbox    contracts.OutboxRepository
	committer contracts.Committer
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

// NewRecorder creates a recorder. A nil committer disables the ledger.
func NewRecorder(
	history contracts.PriceHistoryRepository,
	outbox contracts.OutboxRepository,
	c contracts.Committer,
	logger *zap.Logger,
	m *metrics.Metrics,
) *Recorder {
	return &Recorder{
		history:   history,
		outbox:    outbox,
		committer: c,
		logger:    logger,
		metrics:   m,
	}
}

// Enabled reports whether a ledger is configured.
func (r *Recorder) Enabled() bool {
	return r != nil && r.committer != nil
}

// Plan builds the ledger mutations for events: a history row for every
// prevailing price change and an outbox event for every event.
func (r *Recorder) Plan(events []domain.DomainEvent, reason string) (*committer.CommitPlan, error) {
	plan := committer.NewPlan()

	for _, event := range events {
		if changed, ok := event.(*domain.PrevailingPriceChangedEvent); ok {
			plan.Add(r.history.InsertMut(&contracts.PriceHistoryEntry{
				HistoryID:     uuid.New().String(),
				Province:      changed.Province,
				FileID:        changed.FileID,
				ProductKey:    changed.ProductKey,
				OldPrice:      changed.OldPrice,
				NewPrice:      changed.NewPrice,
				ChangedBy:     changed.ChangedBy,
				ChangedReason: reason,
				ChangedAt:     changed.ChangedAt,
			}))
		}

		payload, err := serializeEvent(event)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize event: %w", err)
		}
		plan.Add(r.outbox.InsertMut(r.outbox.EnrichEvent(event, payload)))
	}

	return plan, nil
}

// Record commits the ledger rows for events. The document write has already
// succeeded, so failures are logged and counted instead of returned.
func (r *Recorder) Record(ctx context.Context, events []domain.DomainEvent, reason string) {
	if !r.Enabled() || len(events) == 0 {
		return
	}

	plan, err := r.Plan(events, reason)
	if err == nil {
		err = r.committer.Apply(ctx, plan)
	}
	if err != nil {
		r.logger.Error("failed to record ledger entries",
			zap.String("reason", reason),
			zap.Int("events", len(events)),
			zap.Error(err),
		)
		r.metrics.LedgerFailures.WithLabelValues(reason).Inc()
		return
	}

	r.logger.Debug("ledger entries recorded",
		zap.String("reason", reason),
		zap.Int("mutations", plan.Count()),
	)
}

// serializeEvent converts a domain event to JSON payload.
func serializeEvent(event domain.DomainEvent) (string, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Package pricingtest holds shared fixtures for use case, query and transport tests.
package pricingtest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/light-bringer/pricetracker/internal/app/pricing/contracts"
	"github.com/light-bringer/pricetracker/internal/app/pricing/domain"
	"github.com/light-bringer/pricetracker/internal/app/pricing/ledger"
	"github.com/light-bringer/pricetracker/internal/app/pricing/repo"
	"github.com/light-bringer/pricetracker/internal/pkg/clock"
	"github.com/light-bringer/pricetracker/internal/pkg/committer"
	"github.com/light-bringer/pricetracker/internal/pkg/metrics"
)

// Start is the mock clock's initial time.
var Start = time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)

// Env bundles an in-memory store with a recording ledger.
type Env struct {
	Store     *repo.MemoryStore
	Clock     *clock.MockClock
	Logger    *zap.Logger
	Metrics   *metrics.Metrics
	Committer *FakeCommitter
	Outbox    *RecordingOutbox
	Recorder  *ledger.Recorder
}

// NewEnv creates a fresh environment for one test.
func NewEnv(t *testing.T) *Env {
	t.Helper()

	m := metrics.NewNop()
	outbox := &RecordingOutbox{OutboxRepository: repo.NewOutboxRepo()}
	fc := &FakeCommitter{}

	return &Env{
		Store:     repo.NewMemoryStore(),
		Clock:     clock.NewMockClock(Start),
		Logger:    zap.NewNop(),
		Metrics:   m,
		Committer: fc,
		Outbox:    outbox,
		Recorder:  ledger.NewRecorder(repo.NewPriceHistoryRepo(nil), outbox, fc, zap.NewNop(), m),
	}
}

// Seed stores the sheet built by b and clears its events.
func (e *Env) Seed(t *testing.T, b *SheetBuilder) *domain.PriceDocument {
	t.Helper()
	doc := b.Build(t)
	require.NoError(t, e.Store.Files().Upsert(context.Background(), doc))
	doc.ClearEvents()
	return doc
}

// AssertOutboxEvent verifies that an event of eventType reached the ledger.
func (e *Env) AssertOutboxEvent(t *testing.T, eventType string) {
	t.Helper()
	assert.Contains(t, e.Outbox.EventTypes(), eventType, "outbox event %s not recorded", eventType)
}

// FakeCommitter records applied plans instead of writing to Spanner.
type FakeCommitter struct {
	mu    sync.Mutex
	plans []*committer.CommitPlan
	Err   error
}

var _ contracts.Committer = (*FakeCommitter)(nil)

// Apply records plan and returns Err.
func (f *FakeCommitter) Apply(_ context.Context, plan *committer.CommitPlan) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.plans = append(f.plans, plan)
	return f.Err
}

// Plans returns the plans applied so far.
func (f *FakeCommitter) Plans() []*committer.CommitPlan {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*committer.CommitPlan, len(f.plans))
	copy(out, f.plans)
	return out
}

// Mutations is the total mutation count over every applied plan.
func (f *FakeCommitter) Mutations() int {
	total := 0
	for _, p := range f.Plans() {
		total += p.Count()
	}
	return total
}

// RecordingOutbox remembers the type of every event it enriches.
type RecordingOutbox struct {
	contracts.OutboxRepository

	mu    sync.Mutex
	types []string
}

// EnrichEvent records the event type and delegates.
func (o *RecordingOutbox) EnrichEvent(event domain.DomainEvent, payload string) *contracts.OutboxEvent {
	o.mu.Lock()
	o.types = append(o.types, event.EventType())
	o.mu.Unlock()
	return o.OutboxRepository.EnrichEvent(event, payload)
}

// EventTypes returns the recorded event types in order.
func (o *RecordingOutbox) EventTypes() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]string, len(o.types))
	copy(out, o.types)
	return out
}

// Money parses a peso amount.
func Money(t *testing.T, s string) *domain.Money {
	t.Helper()
	m, err := domain.ParseMoney(s)
	require.NoError(t, err)
	return m
}

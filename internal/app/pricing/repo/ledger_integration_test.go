//go:build integration

package repo_test

import (
	"context"
	"os"
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/pricetracker/internal/app/pricing/domain"
	"github.com/light-bringer/pricetracker/internal/app/pricing/ledger"
	"github.com/light-bringer/pricetracker/internal/app/pricing/pricingtest"
	"github.com/light-bringer/pricetracker/internal/app/pricing/queries/list_events"
	"github.com/light-bringer/pricetracker/internal/app/pricing/repo"
	"github.com/light-bringer/pricetracker/internal/models/m_outbox"
	"github.com/light-bringer/pricetracker/internal/models/m_price_history"
	"github.com/light-bringer/pricetracker/internal/pkg/committer"
)

// setupLedger connects to the emulator database named by
// SPANNER_TEST_DATABASE, migrated with migrations/001_ledger.sql.
func setupLedger(t *testing.T) *spanner.Client {
	t.Helper()
	if os.Getenv("SPANNER_EMULATOR_HOST") == "" {
		t.Skip("SPANNER_EMULATOR_HOST not set")
	}
	db := os.Getenv("SPANNER_TEST_DATABASE")
	if db == "" {
		db = "projects/test-project/instances/test-instance/databases/pricetracker-test"
	}

	ctx := context.Background()
	client, err := spanner.NewClient(ctx, db)
	require.NoError(t, err, "failed to create Spanner client")

	clean := func() {
		_, err := client.Apply(ctx, []*spanner.Mutation{
			spanner.Delete(m_outbox.TableName, spanner.AllKeys()),
			spanner.Delete(m_price_history.TableName, spanner.AllKeys()),
		})
		require.NoError(t, err, "failed to clean database")
	}
	clean()
	t.Cleanup(func() {
		clean()
		client.Close()
	})
	return client
}

func TestLedgerRoundTrip(t *testing.T) {
	client := setupLedger(t)
	ctx := context.Background()
	env := pricingtest.NewEnv(t)

	history := repo.NewPriceHistoryRepo(client)
	events := repo.NewEventsReadModel(client)
	recorder := ledger.NewRecorder(history, repo.NewOutboxRepo(), committer.NewCommitter(client), env.Logger, env.Metrics)

	doc := pricingtest.NewSheetBuilder().Build(t)
	recorder.Record(ctx, doc.DomainEvents(), "submit")

	key := domain.ProductKey(doc.Categories()[0].ID(), doc.Categories()[0].Products()[0].ID())

	t.Run("price history", func(t *testing.T) {
		records, err := history.ListByProduct(ctx, "quirino", doc.ID(), key, 10)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Nil(t, records[0].OldPrice)
		assert.Equal(t, 45.0, records[0].NewPrice.Float64())
		assert.Equal(t, "uid-1", records[0].ChangedBy)
		assert.Equal(t, "submit", records[0].ChangedReason)
	})

	t.Run("outbox events", func(t *testing.T) {
		aggregate := "quirino/" + doc.ID()
		rows, total, err := events.ListEvents(ctx, &list_events.Request{Province: "quirino", AggregateID: &aggregate, Limit: 10})
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		require.Len(t, rows, 2)
		for _, row := range rows {
			assert.Equal(t, m_outbox.StatusPending, row.Status)
			assert.True(t, row.Payload.Valid)
		}

		eventType := "file.submitted"
		rows, total, err = events.ListEvents(ctx, &list_events.Request{Province: "quirino", EventType: &eventType, Limit: 10})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		assert.Equal(t, aggregate, rows[0].AggregateID)

		rows, total, err = events.ListEvents(ctx, &list_events.Request{Province: "isabela", EventType: &eventType, Limit: 10})
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, rows)
	})
}

package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/pricetracker/internal/models/m_outbox"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup-outbox",
	Short: "Delete processed ledger events past their retention",
	RunE:  runCleanup,
}

var (
	cleanupDatabase    string
	completedRetention int
	failedRetention    int
	cleanupDryRun      bool
)

func init() {
	rootCmd.AddCommand(cleanupCmd)
	cleanupCmd.Flags().StringVar(&cleanupDatabase, "database", "", "projects/P/instances/I/databases/D (defaults to SPANNER_DATABASE)")
	cleanupCmd.Flags().IntVar(&completedRetention, "completed-retention", 30, "retention days for completed events")
	cleanupCmd.Flags().IntVar(&failedRetention, "failed-retention", 90, "retention days for failed events")
	cleanupCmd.Flags().BoolVar(&cleanupDryRun, "dry-run", false, "show what would be deleted without deleting")
}

const expiredEventsFilter = `
	FROM ` + m_outbox.TableName + `
	WHERE (status = 'completed' AND processed_at < @completedCutoff)
	   OR (status = 'failed' AND processed_at < @failedCutoff)`

// retentionCutoffs returns the processed_at bounds for completed and failed events.
func retentionCutoffs(now time.Time, completedDays, failedDays int) map[string]interface{} {
	now = now.UTC()
	return map[string]interface{}{
		"completedCutoff": now.AddDate(0, 0, -completedDays),
		"failedCutoff":    now.AddDate(0, 0, -failedDays),
	}
}

func runCleanup(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, log, err := bootstrap("cleanup-outbox")
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	path := cleanupDatabase
	if path == "" {
		path = cfg.GCP.SpannerDatabase
	}
	if _, err := parseDatabasePath(path); err != nil {
		return err
	}

	client, err := spanner.NewClient(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to create Spanner client: %w", err)
	}
	defer client.Close()

	params := retentionCutoffs(time.Now(), completedRetention, failedRetention)
	log.Info("starting outbox cleanup",
		zap.Any("completed_cutoff", params["completedCutoff"]),
		zap.Any("failed_cutoff", params["failedCutoff"]),
		zap.Bool("dry_run", cleanupDryRun),
	)

	if cleanupDryRun {
		return countExpired(ctx, client, params, log)
	}
	return deleteExpired(ctx, client, params, log)
}

func countExpired(ctx context.Context, client *spanner.Client, params map[string]interface{}, log *zap.Logger) error {
	iter := client.Single().Query(ctx, spanner.Statement{
		SQL:    "SELECT status, COUNT(*)" + expiredEventsFilter + " GROUP BY status",
		Params: params,
	})
	defer iter.Stop()

	var total int64
	for {
		row, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to query events: %w", err)
		}

		var status string
		var count int64
		if err := row.Columns(&status, &count); err != nil {
			return fmt.Errorf("failed to parse row: %w", err)
		}
		log.Info("would delete events", zap.String("status", status), zap.Int64("count", count))
		total += count
	}

	log.Info("dry run finished", zap.Int64("total", total))
	return nil
}

func deleteExpired(ctx context.Context, client *spanner.Client, params map[string]interface{}, log *zap.Logger) error {
	var deleted int64
	_, err := client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		n, err := txn.Update(ctx, spanner.Statement{
			SQL:    "DELETE" + expiredEventsFilter,
			Params: params,
		})
		if err != nil {
			return fmt.Errorf("failed to delete events: %w", err)
		}
		deleted = n
		return nil
	})
	if err != nil {
		return fmt.Errorf("cleanup transaction failed: %w", err)
	}

	log.Info("outbox cleanup finished", zap.Int64("deleted", deleted))
	return nil
}

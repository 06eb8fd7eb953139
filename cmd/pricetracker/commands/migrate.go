package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	"cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	instance "cloud.google.com/go/spanner/admin/instance/apiv1"
	"cloud.google.com/go/spanner/admin/instance/apiv1/instancepb"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the ledger schema to Spanner",
	Long: `Apply every migrations/*.sql file to the ledger database, in file name order.

Against the emulator (SPANNER_EMULATOR_HOST set) the instance and database
are created first when missing.`,
	RunE: runMigrate,
}

var (
	migrateDatabase string
	migrateDir      string
)

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().StringVar(&migrateDatabase, "database", "", "projects/P/instances/I/databases/D (defaults to SPANNER_DATABASE)")
	migrateCmd.Flags().StringVar(&migrateDir, "migrations", "migrations", "directory containing migration SQL files")
}

var databasePath = regexp.MustCompile(`^projects/([^/]+)/instances/([^/]+)/databases/([^/]+)$`)

// databaseRef is a parsed Spanner database path.
type databaseRef struct {
	Project  string
	Instance string
	Database string
}

func parseDatabasePath(path string) (databaseRef, error) {
	m := databasePath.FindStringSubmatch(path)
	if m == nil {
		return databaseRef{}, fmt.Errorf("invalid database path %q: want projects/P/instances/I/databases/D", path)
	}
	return databaseRef{Project: m[1], Instance: m[2], Database: m[3]}, nil
}

func (r databaseRef) instancePath() string {
	return fmt.Sprintf("projects/%s/instances/%s", r.Project, r.Instance)
}

func (r databaseRef) String() string {
	return fmt.Sprintf("%s/databases/%s", r.instancePath(), r.Database)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, log, err := bootstrap("migrate")
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	path := migrateDatabase
	if path == "" {
		path = cfg.GCP.SpannerDatabase
	}
	ref, err := parseDatabasePath(path)
	if err != nil {
		return err
	}

	emulator := os.Getenv("SPANNER_EMULATOR_HOST")
	if emulator != "" {
		log.Info("using Spanner emulator", zap.String("host", emulator))
		if err := ensureInstance(ctx, ref, log); err != nil {
			return fmt.Errorf("failed to ensure instance: %w", err)
		}
	}

	adminClient, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer adminClient.Close()

	if err := ensureDatabase(ctx, adminClient, ref, emulator != "", log); err != nil {
		return fmt.Errorf("failed to ensure database: %w", err)
	}
	if err := applyMigrations(ctx, adminClient, ref, migrateDir, log); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	log.Info("migrations completed")
	return nil
}

func ensureInstance(ctx context.Context, ref databaseRef, log *zap.Logger) error {
	instanceAdmin, err := instance.NewInstanceAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create instance admin client: %w", err)
	}
	defer instanceAdmin.Close()

	_, err = instanceAdmin.GetInstance(ctx, &instancepb.GetInstanceRequest{Name: ref.instancePath()})
	if err == nil {
		return nil
	}
	if status.Code(err) != codes.NotFound {
		log.Warn("unexpected error checking instance", zap.Error(err))
		return nil
	}

	log.Info("creating instance", zap.String("instance", ref.Instance))
	op, err := instanceAdmin.CreateInstance(ctx, &instancepb.CreateInstanceRequest{
		Parent:     "projects/" + ref.Project,
		InstanceId: ref.Instance,
		Instance: &instancepb.Instance{
			Config:      fmt.Sprintf("projects/%s/instanceConfigs/emulator-config", ref.Project),
			DisplayName: "Development Instance",
			NodeCount:   1,
		},
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil
		}
		return fmt.Errorf("failed to create instance: %w", err)
	}
	if _, err := op.Wait(ctx); err != nil && status.Code(err) != codes.AlreadyExists {
		log.Warn("instance creation did not finish cleanly", zap.Error(err))
	}
	return nil
}

func ensureDatabase(ctx context.Context, adminClient *database.DatabaseAdminClient, ref databaseRef, emulator bool, log *zap.Logger) error {
	_, err := adminClient.GetDatabase(ctx, &databasepb.GetDatabaseRequest{Name: ref.String()})
	if err == nil {
		return nil
	}
	if status.Code(err) != codes.NotFound {
		// The emulator reports odd errors for databases that exist.
		if emulator {
			log.Warn("proceeding with database", zap.Error(err))
			return nil
		}
		return fmt.Errorf("failed to check database: %w", err)
	}

	log.Info("creating database", zap.String("database", ref.Database))
	op, err := adminClient.CreateDatabase(ctx, &databasepb.CreateDatabaseRequest{
		Parent:          ref.instancePath(),
		CreateStatement: fmt.Sprintf("CREATE DATABASE `%s`", ref.Database),
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil
		}
		return fmt.Errorf("failed to create database: %w", err)
	}
	if _, err := op.Wait(ctx); err != nil {
		return fmt.Errorf("failed to wait for database creation: %w", err)
	}
	return nil
}

func applyMigrations(ctx context.Context, adminClient *database.DatabaseAdminClient, ref databaseRef, dir string, log *zap.Logger) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to list migration files: %w", err)
	}
	if len(files) == 0 {
		log.Warn("no migration files found", zap.String("dir", dir))
		return nil
	}

	for _, file := range files {
		name := filepath.Base(file)
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}

		statements := splitDDLStatements(string(content))
		if len(statements) == 0 {
			continue
		}

		op, err := adminClient.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
			Database:   ref.String(),
			Statements: statements,
		})
		if err != nil {
			return fmt.Errorf("failed to start DDL update for %s: %w", name, err)
		}
		if err := op.Wait(ctx); err != nil {
			return fmt.Errorf("failed to apply DDL for %s: %w", name, err)
		}
		log.Info("migration applied", zap.String("file", name), zap.Int("statements", len(statements)))
	}
	return nil
}

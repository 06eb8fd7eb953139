package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/light-bringer/pricetracker/internal/app/pricing/comparison"
	"github.com/light-bringer/pricetracker/internal/app/pricing/contracts"
	"github.com/light-bringer/pricetracker/internal/app/pricing/ledger"
	"github.com/light-bringer/pricetracker/internal/app/pricing/queries/baseline_status"
	"github.com/light-bringer/pricetracker/internal/app/pricing/queries/baseline_template"
	"github.com/light-bringer/pricetracker/internal/app/pricing/queries/compare_file"
	"github.com/light-bringer/pricetracker/internal/app/pricing/queries/get_baseline"
	"github.com/light-bringer/pricetracker/internal/app/pricing/queries/get_file"
	"github.com/light-bringer/pricetracker/internal/app/pricing/queries/list_baselines"
	"github.com/light-bringer/pricetracker/internal/app/pricing/queries/list_events"
	"github.com/light-bringer/pricetracker/internal/app/pricing/queries/list_facets"
	"github.com/light-bringer/pricetracker/internal/app/pricing/queries/list_files"
	"github.com/light-bringer/pricetracker/internal/app/pricing/queries/list_stores"
	"github.com/light-bringer/pricetracker/internal/app/pricing/queries/load_template"
	"github.com/light-bringer/pricetracker/internal/app/pricing/queries/price_history"
	"github.com/light-bringer/pricetracker/internal/app/pricing/repo"
	"github.com/light-bringer/pricetracker/internal/app/pricing/usecases/add_category"
	"github.com/light-bringer/pricetracker/internal/app/pricing/usecases/add_product"
	"github.com/light-bringer/pricetracker/internal/app/pricing/usecases/add_store"
	"github.com/light-bringer/pricetracker/internal/app/pricing/usecases/delete_baseline"
	"github.com/light-bringer/pricetracker/internal/app/pricing/usecases/delete_file"
	"github.com/light-bringer/pricetracker/internal/app/pricing/usecases/edit_file"
	"github.com/light-bringer/pricetracker/internal/app/pricing/usecases/enroll_user"
	"github.com/light-bringer/pricetracker/internal/app/pricing/usecases/export_report"
	"github.com/light-bringer/pricetracker/internal/app/pricing/usecases/remove_store"
	"github.com/light-bringer/pricetracker/internal/app/pricing/usecases/save_baseline"
	"github.com/light-bringer/pricetracker/internal/app/pricing/usecases/submit_file"
	"github.com/light-bringer/pricetracker/internal/pkg/clock"
	"github.com/light-bringer/pricetracker/internal/pkg/committer"
	"github.com/light-bringer/pricetracker/internal/pkg/config"
	"github.com/light-bringer/pricetracker/internal/pkg/firestoredb"
	"github.com/light-bringer/pricetracker/internal/pkg/metrics"
	httptransport "github.com/light-bringer/pricetracker/internal/transport/http"
)

// Backends are the storage adapters the use cases run against.
type Backends struct {
	Files     contracts.FileRepository
	Baselines contracts.BaselineRepository
	Templates contracts.TemplateRepository
	Users     contracts.UserDirectory

	// Archive stores rendered reports; nil disables archiving.
	Archive contracts.ReportArchive

	// Ledger. A nil Committer disables it; History and Events then report
	// domain.ErrLedgerUnavailable.
	Committer contracts.Committer
	History   contracts.PriceHistoryRepository
	Events    list_events.EventsReadModel

	// Health checks backend connectivity; nil when there is nothing to check.
	Health func(ctx context.Context) error
}

// MemoryBackends runs every adapter in process with the ledger disabled.
func MemoryBackends(store *repo.MemoryStore) Backends {
	return Backends{
		Files:     store.Files(),
		Baselines: store.Baselines(),
		Templates: store.Templates(),
		Users:     store.Users(),
		Archive:   store.Archive(),
		History:   repo.NewPriceHistoryRepo(nil),
		Events:    repo.NewEventsReadModel(nil),
	}
}

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *metrics.Metrics

	Firestore     *firestoredb.ClientWrapper
	SpannerClient *spanner.Client
	StorageClient *storage.Client

	UseCases httptransport.UseCases
	Router   *echo.Echo
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, cfg *config.Config, logger *zap.Logger, m *metrics.Metrics) (*ServiceOptions, error) {
	opts := &ServiceOptions{Config: cfg, Logger: logger, Metrics: m}

	// 1. Document store
	var (
		backends Backends
		memory   *repo.MemoryStore
	)
	switch cfg.StoreBackend {
	case config.BackendMemory:
		memory = repo.NewMemoryStore()
		backends = MemoryBackends(memory)
		logger.Warn("using in-memory store; data is lost on restart")
	default:
		fs, err := firestoredb.NewClient(ctx, cfg.GCP.ProjectID, cfg.GCP.CredentialsFile)
		if err != nil {
			return nil, err
		}
		opts.Firestore = fs
		backends = Backends{
			Files:     repo.NewFileRepositoryFS(fs.Client),
			Baselines: repo.NewBaselineRepositoryFS(fs.Client),
			Templates: repo.NewTemplateRepositoryFS(fs.Client),
			Users:     repo.NewUserDirectoryFS(fs.Client),
			History:   repo.NewPriceHistoryRepo(nil),
			Events:    repo.NewEventsReadModel(nil),
			Health:    fs.Ping,
		}
	}

	// 2. Audit ledger
	if db := cfg.GCP.SpannerDatabase; db != "" {
		spannerClient, err := spanner.NewClient(ctx, db, firestoredb.ClientOptions(cfg.GCP.CredentialsFile)...)
		if err != nil {
			opts.Close()
			return nil, fmt.Errorf("failed to create Spanner client: %w", err)
		}
		opts.SpannerClient = spannerClient
		backends.Committer = committer.NewCommitter(spannerClient)
		backends.History = repo.NewPriceHistoryRepo(spannerClient)
		backends.Events = repo.NewEventsReadModel(spannerClient)
	} else {
		logger.Info("SPANNER_DATABASE not set; audit ledger disabled")
	}

	// 3. Report archive
	if bucket := cfg.GCP.ReportsBucket; bucket != "" {
		storageClient, err := storage.NewClient(ctx, firestoredb.ClientOptions(cfg.GCP.CredentialsFile)...)
		if err != nil {
			opts.Close()
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		opts.StorageClient = storageClient
		backends.Archive = repo.NewReportArchiveGCS(storageClient, bucket)
	}

	// 4. Authentication
	var authenticator *httptransport.Authenticator
	if cfg.AuthDisabled {
		logger.Warn("authentication disabled", zap.String("uid", httptransport.DevIdentity.UID))
		authenticator = httptransport.NewDevAuthenticator(httptransport.DevIdentity, logger)
		if memory != nil {
			memory.AddAdmin(httptransport.DevIdentity.UID)
		}
	} else {
		app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.GCP.ProjectID}, firestoredb.ClientOptions(cfg.GCP.CredentialsFile)...)
		if err != nil {
			opts.Close()
			return nil, fmt.Errorf("failed to initialise firebase: %w", err)
		}
		authClient, err := app.Auth(ctx)
		if err != nil {
			opts.Close()
			return nil, fmt.Errorf("failed to create firebase auth client: %w", err)
		}
		authenticator = httptransport.NewAuthenticator(authClient, logger)
	}

	// 5. Use cases and queries
	clk := clock.NewRealClock()
	opts.UseCases = NewUseCases(backends, clk, cfg.Report, logger, m)

	// 6. HTTP router
	handler := httptransport.NewHandler(opts.UseCases, clk)
	opts.Router = httptransport.NewRouter(handler, httptransport.RouterConfig{
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		Auth:           authenticator,
		Users:          backends.Users,
		Health:         backends.Health,
	}, logger, m)

	return opts, nil
}

// NewUseCases builds every command and query on top of backends.
func NewUseCases(b Backends, clk clock.Clock, rc config.ReportConfig, logger *zap.Logger, m *metrics.Metrics) httptransport.UseCases {
	// 1. Ledger recorder
	outboxRepo := repo.NewOutboxRepo()
	recorder := ledger.NewRecorder(b.History, outboxRepo, b.Committer, logger, m)

	// 2. Comparison engine
	index := comparison.NewPeriodIndex(b.Files, b.Baselines, rc.BaselineYear, logger, m)
	engine := comparison.NewEngine(index, logger, m)
	aggregator := comparison.NewSummaryAggregator(rc.SummaryLimit)

	// 3. Create query use cases (read operations)
	compareFile := compare_file.NewQuery(b.Files, engine, aggregator)

	return httptransport.UseCases{
		// 4. Create command use cases (write operations)
		SubmitFile:     submit_file.NewInteractor(b.Files, recorder, clk, logger),
		EditFile:       edit_file.NewInteractor(b.Files, recorder, clk, logger),
		RemoveStore:    remove_store.NewInteractor(b.Files, recorder, clk, logger),
		DeleteFile:     delete_file.NewInteractor(b.Files, recorder, clk, logger),
		ExportReport:   export_report.NewInteractor(compareFile, b.Archive, clk, logger, m),
		AddStore:       add_store.NewInteractor(b.Templates, clk, logger),
		AddCategory:    add_category.NewInteractor(b.Templates, clk, logger),
		AddProduct:     add_product.NewInteractor(b.Templates, clk, logger),
		SaveBaseline:   save_baseline.NewInteractor(b.Baselines, recorder, clk, logger, rc.BaselineYear),
		DeleteBaseline: delete_baseline.NewInteractor(b.Baselines, recorder, clk, logger, rc.BaselineYear),
		EnrollUser:     enroll_user.NewInteractor(b.Users, clk, logger),

		GetFile:          get_file.NewQuery(b.Files),
		ListFiles:        list_files.NewQuery(b.Files),
		ListFacets:       list_facets.NewQuery(b.Files),
		CompareFile:      compareFile,
		PriceHistory:     price_history.NewQuery(b.History),
		ListStores:       list_stores.NewQuery(b.Templates),
		LoadTemplate:     load_template.NewQuery(b.Templates),
		GetBaseline:      get_baseline.NewQuery(b.Baselines, rc.BaselineYear),
		ListBaselines:    list_baselines.NewQuery(b.Baselines),
		BaselineTemplate: baseline_template.NewQuery(b.Files),
		BaselineStatus:   baseline_status.NewQuery(b.Files, index),
		ListEvents:       list_events.NewQuery(b.Events),
	}
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
	if s.StorageClient != nil {
		if err := s.StorageClient.Close(); err != nil {
			s.Logger.Warn("failed to close storage client", zap.Error(err))
		}
	}
	if s.Firestore != nil {
		if err := s.Firestore.Close(); err != nil {
			s.Logger.Warn("failed to close firestore client", zap.Error(err))
		}
	}
}

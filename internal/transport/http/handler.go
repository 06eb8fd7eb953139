package http

import (
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
)

// UseCases groups every command and query the API exposes.
type UseCases struct {
	// Commands
	SubmitFile     *submit_file.Interactor
	EditFile       *edit_file.Interactor
	RemoveStore    *remove_store.Interactor
	DeleteFile     *delete_file.Interactor
	ExportReport   *export_report.Interactor
	AddStore       *add_store.Interactor
	AddCategory    *add_category.Interactor
	AddProduct     *add_product.Interactor
	SaveBaseline   *save_baseline.Interactor
	DeleteBaseline *delete_baseline.Interactor
	EnrollUser     *enroll_user.Interactor

	// Queries
	GetFile          *get_file.Query
	ListFiles        *list_files.Query
	ListFacets       *list_facets.Query
	CompareFile      *compare_file.Query
	PriceHistory     *price_history.Query
	ListStores       *list_stores.Query
	LoadTemplate     *load_template.Query
	GetBaseline      *get_baseline.Query
	ListBaselines    *list_baselines.Query
	BaselineTemplate *baseline_template.Query
	BaselineStatus   *baseline_status.Query
	ListEvents       *list_events.Query
}

// Handler serves the REST API.
// It's a thin coordinator that delegates to use cases and queries.
type Handler struct {
	uc    UseCases
	clock clock.Clock
}

// NewHandler creates a new HTTP handler.
func NewHandler(uc UseCases, clock clock.Clock) *Handler {
	return &Handler{uc: uc, clock: clock}
}

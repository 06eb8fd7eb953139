package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/light-bringer/pricetracker/internal/app/pricing/contracts"
	"github.com/light-bringer/pricetracker/internal/pkg/metrics"
)

// RouterConfig holds what the router needs besides the handler.
type RouterConfig struct {
	AllowedOrigins []string
	Auth           *Authenticator
	Users          contracts.UserDirectory
	// Health reports backend connectivity; nil always reports healthy.
	Health func(ctx context.Context) error
}

// NewRouter builds the echo instance with every route of the API.
func NewRouter(h *Handler, cfg RouterConfig, logger *zap.Logger, m *metrics.Metrics) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()
	e.HTTPErrorHandler = NewErrorHandler(logger)

	e.Use(RequestID())
	e.Use(RequestLogger(logger))
	e.Use(m.Middleware())
	if len(cfg.AllowedOrigins) > 0 {
		e.Use(CORS(cfg.AllowedOrigins))
	}

	// Unauthenticated
	e.GET("/healthz", healthz(cfg.Health))
	e.GET("/metrics", m.Handler())

	api := e.Group("/api/v1", cfg.Auth.Middleware())

	// Enrollment only needs a valid identity.
	api.POST("/provinces/:province/users/me", h.EnrollUser)

	p := api.Group("/provinces/:province", ProvinceAccess(cfg.Users))

	files := p.Group("/files")
	files.GET("", h.ListFiles)
	files.GET("/facets", h.ListFacets)
	files.POST("", h.SubmitFile)
	files.GET("/:id", h.GetFile)
	files.PUT("/:id", h.EditFile)
	files.DELETE("/:id", h.DeleteFile)
	files.DELETE("/:id/stores/:index", h.RemoveStore)
	files.GET("/:id/comparison", h.CompareFile)
	files.GET("/:id/export.xlsx", h.ExportWorkbook)
	files.GET("/:id/summary.docx", h.ExportSummary)
	files.GET("/:id/history", h.PriceHistory)
	files.GET("/:id/baseline-status", h.BaselineStatus)

	p.GET("/events", h.ListEvents)

	p.GET("/stores", h.ListStores)
	p.POST("/stores", h.AddStore)

	commodities := p.Group("/commodities/:commodity")
	commodities.GET("/template", h.LoadTemplate)
	commodities.POST("/categories", h.AddCategory)
	commodities.POST("/categories/:category/products", h.AddProduct)

	baselines := p.Group("/baselines")
	baselines.GET("", h.ListBaselines)
	baselines.GET("/:commodity", h.GetBaseline)
	baselines.PUT("/:commodity", h.SaveBaseline)
	baselines.DELETE("/:commodity", h.DeleteBaseline)
	baselines.GET("/:commodity/template", h.BaselineTemplate)

	return e
}

func healthz(check func(ctx context.Context) error) echo.HandlerFunc {
	return func(c echo.Context) error {
		if check != nil {
			if err := check(c.Request().Context()); err != nil {
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
			}
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}
}

package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/light-bringer/pricetracker/internal/app/pricing/queries/baseline_template"
	"github.com/light-bringer/pricetracker/internal/app/pricing/queries/get_baseline"
	"github.com/light-bringer/pricetracker/internal/app/pricing/queries/list_baselines"
	"github.com/light-bringer/pricetracker/internal/app/pricing/usecases/delete_baseline"
	"github.com/light-bringer/pricetracker/internal/app/pricing/usecases/save_baseline"
)

// BaselineEntryResponse is one line of the baseline list.
type BaselineEntryResponse struct {
	ID               string    `json:"id"`
	CommodityDisplay string    `json:"commodityDisplay"`
	Year             int       `json:"year"`
	ProductCount     int       `json:"productCount"`
	LastModified     time.Time `json:"lastModified"`
}

// BaselineTemplateResponse is the empty layout for a new baseline.
type BaselineTemplateResponse struct {
	SourceFileID string             `json:"sourceFileId"`
	Categories   []CategoryResponse `json:"categories"`
}

// ListBaselines handles GET /provinces/:province/baselines.
func (h *Handler) ListBaselines(c echo.Context) error {
	entries, err := h.uc.ListBaselines.Execute(c.Request().Context(), &list_baselines.Request{Province: province(c)})
	if err != nil {
		return err
	}

	out := make([]BaselineEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, BaselineEntryResponse{
			ID:               e.ID,
			CommodityDisplay: e.CommodityDisplay,
			Year:             e.Year,
			ProductCount:     e.ProductCount,
			LastModified:     e.LastModified,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// GetBaseline handles GET /provinces/:province/baselines/:commodity.
func (h *Handler) GetBaseline(c echo.Context) error {
	commodity, err := pathParam(c, "commodity")
	if err != nil {
		return err
	}
	year, err := yearParam(c)
	if err != nil {
		return err
	}

	baseline, err := h.uc.GetBaseline.Execute(c.Request().Context(), &get_baseline.Request{
		Province:         province(c),
		CommodityDisplay: commodity,
		Year:             year,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, baselineResponse(baseline))
}

// SaveBaseline handles PUT /provinces/:province/baselines/:commodity.
func (h *Handler) SaveBaseline(c echo.Context) error {
	commodity, err := pathParam(c, "commodity")
	if err != nil {
		return err
	}
	var in BaselineInput
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	products, err := baselineProductsFromInput(in.Products)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	baseline, err := h.uc.SaveBaseline.Execute(c.Request().Context(), &save_baseline.Request{
		Province:         province(c),
		CommodityDisplay: commodity,
		Year:             in.Year,
		Products:         products,
		SavedBy:          identityUID(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, baselineResponse(baseline))
}

// DeleteBaseline handles DELETE /provinces/:province/baselines/:commodity.
func (h *Handler) DeleteBaseline(c echo.Context) error {
	commodity, err := pathParam(c, "commodity")
	if err != nil {
		return err
	}
	year, err := yearParam(c)
	if err != nil {
		return err
	}

	err = h.uc.DeleteBaseline.Execute(c.Request().Context(), &delete_baseline.Request{
		Province:         province(c),
		CommodityDisplay: commodity,
		Year:             year,
		DeletedBy:        identityUID(c),
	})
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// BaselineTemplate handles GET /provinces/:province/baselines/:commodity/template.
func (h *Handler) BaselineTemplate(c echo.Context) error {
	commodity, err := pathParam(c, "commodity")
	if err != nil {
		return err
	}

	result, err := h.uc.BaselineTemplate.Execute(c.Request().Context(), &baseline_template.Request{
		Province:         province(c),
		CommodityDisplay: commodity,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, BaselineTemplateResponse{
		SourceFileID: result.SourceFileID,
		Categories:   categoryResponses(result.Categories),
	})
}

// yearParam reads the optional ?year= query parameter; zero selects the
// configured baseline year.
func yearParam(c echo.Context) (int, error) {
	raw := c.QueryParam("year")
	if raw == "" {
		return 0, nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "year must be an integer")
	}
	return year, nil
}

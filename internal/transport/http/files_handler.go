package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/light-bringer/pricetracker/internal/app/pricing/queries/baseline_status"
	"github.com/light-bringer/pricetracker/internal/app/pricing/queries/compare_file"
	"github.com/light-bringer/pricetracker/internal/app/pricing/queries/get_file"
	"github.com/light-bringer/pricetracker/internal/app/pricing/queries/list_facets"
	"github.com/light-bringer/pricetracker/internal/app/pricing/queries/list_files"
	"github.com/light-bringer/pricetracker/internal/app/pricing/queries/price_history"
	"github.com/light-bringer/pricetracker/internal/app/pricing/usecases/delete_file"
	"github.com/light-bringer/pricetracker/internal/app/pricing/usecases/edit_file"
	"github.com/light-bringer/pricetracker/internal/app/pricing/usecases/export_report"
	"github.com/light-bringer/pricetracker/internal/app/pricing/usecases/remove_store"
	"github.com/light-bringer/pricetracker/internal/app/pricing/usecases/submit_file"
)

// HeaderReportLocation carries the archive location of an exported report.
const HeaderReportLocation = "X-Report-Location"

// ListFiles handles GET /provinces/:province/files.
func (h *Handler) ListFiles(c echo.Context) error {
	req := &list_files.Request{
		Province:   province(c),
		Commodity:  c.QueryParam("commodity"),
		Month:      c.QueryParam("month"),
		Week:       c.QueryParam("week"),
		UploadedBy: c.QueryParam("uploadedBy"),
		Search:     c.QueryParam("q"),
	}
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a non-negative integer")
		}
		req.Limit = limit
	}
	if raw := c.QueryParam("recent"); raw != "" {
		recent, err := strconv.ParseBool(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "recent must be a boolean")
		}
		req.Recent = recent
	}

	docs, err := h.uc.ListFiles.Execute(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, fileResponses(docs))
}

// FacetsResponse lists the filter values present in a province.
type FacetsResponse struct {
	Commodities []string `json:"commodities"`
	Months      []string `json:"months"`
}

// ListFacets handles GET /provinces/:province/files/facets.
func (h *Handler) ListFacets(c echo.Context) error {
	result, err := h.uc.ListFacets.Execute(c.Request().Context(), &list_facets.Request{Province: province(c)})
	if err != nil {
		return err
	}

	resp := FacetsResponse{Commodities: result.Commodities, Months: make([]string, 0, len(result.Months))}
	if resp.Commodities == nil {
		resp.Commodities = []string{}
	}
	for _, m := range result.Months {
		resp.Months = append(resp.Months, m.String())
	}
	return c.JSON(http.StatusOK, resp)
}

// GetFile handles GET /provinces/:province/files/:id.
func (h *Handler) GetFile(c echo.Context) error {
	doc, err := h.uc.GetFile.Execute(c.Request().Context(), &get_file.Request{
		Province: province(c),
		FileID:   c.Param("id"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, fileResponse(doc))
}

// SubmitFile handles POST /provinces/:province/files.
func (h *Handler) SubmitFile(c echo.Context) error {
	// 1. Bind and validate the body
	var in FileInput
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	categories, err := categoriesFromInput(in.Categories, h.clock.Now())
	if err != nil {
		return err
	}

	// 2. Execute the use case
	id, _ := identity(c)
	doc, err := h.uc.SubmitFile.Execute(c.Request().Context(), &submit_file.Request{
		Province:          province(c),
		FileName:          in.FileName,
		Commodity:         in.Commodity,
		CommodityDisplay:  in.CommodityDisplay,
		IsCustomCommodity: in.IsCustomCommodity,
		Month:             in.Month,
		Week:              in.Week,
		Year:              in.Year,
		Stores:            in.Stores,
		Categories:        categories,
		UploadedBy:        id.UID,
		UploadedByEmail:   id.Email,
	})
	if err != nil {
		return err
	}

	// 3. Map the result
	return c.JSON(http.StatusCreated, fileResponse(doc))
}

// EditFile handles PUT /provinces/:province/files/:id.
func (h *Handler) EditFile(c echo.Context) error {
	var in FileInput
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	categories, err := categoriesFromInput(in.Categories, h.clock.Now())
	if err != nil {
		return err
	}

	doc, err := h.uc.EditFile.Execute(c.Request().Context(), &edit_file.Request{
		Province:   province(c),
		FileID:     c.Param("id"),
		FileName:   in.FileName,
		Month:      in.Month,
		Week:       in.Week,
		Year:       in.Year,
		Stores:     in.Stores,
		Categories: categories,
		EditedBy:   identityUID(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, fileResponse(doc))
}

// DeleteFile handles DELETE /provinces/:province/files/:id.
func (h *Handler) DeleteFile(c echo.Context) error {
	err := h.uc.DeleteFile.Execute(c.Request().Context(), &delete_file.Request{
		Province:  province(c),
		FileID:    c.Param("id"),
		DeletedBy: identityUID(c),
	})
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// RemoveStore handles DELETE /provinces/:province/files/:id/stores/:index.
func (h *Handler) RemoveStore(c echo.Context) error {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "store index must be an integer")
	}

	doc, err := h.uc.RemoveStore.Execute(c.Request().Context(), &remove_store.Request{
		Province:   province(c),
		FileID:     c.Param("id"),
		StoreIndex: index,
		RemovedBy:  identityUID(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, fileResponse(doc))
}

// CompareFile handles GET /provinces/:province/files/:id/comparison.
func (h *Handler) CompareFile(c echo.Context) error {
	result, err := h.uc.CompareFile.Execute(c.Request().Context(), &compare_file.Request{
		Province: province(c),
		FileID:   c.Param("id"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comparisonResponse(result.Document, result.Comparison, result.Rows, result.Summary, result.YearOverYearReady))
}

// ExportWorkbook handles GET /provinces/:province/files/:id/export.xlsx.
func (h *Handler) ExportWorkbook(c echo.Context) error {
	return h.export(c, export_report.FormatXLSX)
}

// ExportSummary handles GET /provinces/:province/files/:id/summary.docx.
func (h *Handler) ExportSummary(c echo.Context) error {
	return h.export(c, export_report.FormatDOCX)
}

func (h *Handler) export(c echo.Context, format export_report.Format) error {
	artifact, err := h.uc.ExportReport.Execute(c.Request().Context(), &export_report.Request{
		Province: province(c),
		FileID:   c.Param("id"),
		Format:   format,
	})
	if err != nil {
		return err
	}

	header := c.Response().Header()
	header.Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", artifact.Name))
	if artifact.Location != "" {
		header.Set(HeaderReportLocation, artifact.Location)
	}
	return c.Blob(http.StatusOK, artifact.ContentType, artifact.Data)
}

// PriceHistory handles GET /provinces/:province/files/:id/history?product=.
func (h *Handler) PriceHistory(c echo.Context) error {
	product := c.QueryParam("product")
	if product == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "product is required")
	}
	req := &price_history.Request{
		Province:   province(c),
		FileID:     c.Param("id"),
		ProductKey: product,
	}
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be an integer")
		}
		req.Limit = limit
	}

	records, err := h.uc.PriceHistory.Execute(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, historyResponses(records))
}

// BaselineStatusResponse tells the client whether a sheet needs a baseline.
type BaselineStatusResponse struct {
	NeedsBaseline     bool   `json:"needsBaseline"`
	YearOverYearReady bool   `json:"yearOverYearReady"`
	BaselineID        string `json:"baselineId,omitempty"`
}

// BaselineStatus handles GET /provinces/:province/files/:id/baseline-status.
func (h *Handler) BaselineStatus(c echo.Context) error {
	result, err := h.uc.BaselineStatus.Execute(c.Request().Context(), &baseline_status.Request{
		Province: province(c),
		FileID:   c.Param("id"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, BaselineStatusResponse{
		NeedsBaseline:     result.NeedsBaseline,
		YearOverYearReady: result.YearOverYearReady,
		BaselineID:        result.BaselineID,
	})
}

func bindAndValidate(c echo.Context, in interface{}) error {
	if err := c.Bind(in); err != nil {
		return err
	}
	return c.Validate(in)
}

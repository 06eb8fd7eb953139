package http

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/light-bringer/pricetracker/internal/app/pricing/queries/list_stores"
	"github.com/light-bringer/pricetracker/internal/app/pricing/queries/load_template"
	"github.com/light-bringer/pricetracker/internal/app/pricing/usecases/add_category"
	"github.com/light-bringer/pricetracker/internal/app/pricing/usecases/add_product"
	"github.com/light-bringer/pricetracker/internal/app/pricing/usecases/add_store"
)

// TemplateResponse is a commodity's reusable sheet layout.
type TemplateResponse struct {
	Stores     []StoreResponse    `json:"stores"`
	Categories []CategoryResponse `json:"categories"`
}

// ListStores handles GET /provinces/:province/stores.
func (h *Handler) ListStores(c echo.Context) error {
	stores, err := h.uc.ListStores.Execute(c.Request().Context(), &list_stores.Request{Province: province(c)})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, storeResponses(stores))
}

// AddStore handles POST /provinces/:province/stores.
func (h *Handler) AddStore(c echo.Context) error {
	var in StoreInput
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}

	store, err := h.uc.AddStore.Execute(c.Request().Context(), &add_store.Request{
		Province: province(c),
		Name:     in.Name,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, StoreResponse{ID: store.ID, Name: store.Name, CreatedAt: store.CreatedAt})
}

// LoadTemplate handles GET /provinces/:province/commodities/:commodity/template.
func (h *Handler) LoadTemplate(c echo.Context) error {
	commodity, err := pathParam(c, "commodity")
	if err != nil {
		return err
	}

	result, err := h.uc.LoadTemplate.Execute(c.Request().Context(), &load_template.Request{
		Province:  province(c),
		Commodity: commodity,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, TemplateResponse{
		Stores:     storeResponses(result.Stores),
		Categories: categoryResponses(result.Categories),
	})
}

// AddCategory handles POST /provinces/:province/commodities/:commodity/categories.
func (h *Handler) AddCategory(c echo.Context) error {
	commodity, err := pathParam(c, "commodity")
	if err != nil {
		return err
	}
	var in CategoryTemplateInput
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}

	category, err := h.uc.AddCategory.Execute(c.Request().Context(), &add_category.Request{
		Province:    province(c),
		Commodity:   commodity,
		Name:        in.Name,
		ProductName: in.ProductName,
		ProductUnit: in.ProductUnit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, categoryResponse(category))
}

// AddProduct handles POST /provinces/:province/commodities/:commodity/categories/:category/products.
func (h *Handler) AddProduct(c echo.Context) error {
	commodity, err := pathParam(c, "commodity")
	if err != nil {
		return err
	}
	var in ProductTemplateInput
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}

	product, err := h.uc.AddProduct.Execute(c.Request().Context(), &add_product.Request{
		Province:   province(c),
		Commodity:  commodity,
		CategoryID: c.Param("category"),
		Name:       in.Name,
		Unit:       in.Unit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, productResponse(product))
}

// pathParam returns the unescaped value of a path parameter that may carry
// spaces ("Rice%20Grains").
func pathParam(c echo.Context, name string) (string, error) {
	v, err := url.PathUnescape(c.Param(name))
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "malformed "+name)
	}
	return v, nil
}

package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/light-bringer/pricetracker/internal/app/pricing/comparison"
	"github.com/light-bringer/pricetracker/internal/app/pricing/contracts"
	"github.com/light-bringer/pricetracker/internal/app/pricing/domain"
)

// Request bodies

// ProductInput is one product row of a submitted sheet. Prices are keyed by
// store index ("0", "1", ...).
type ProductInput struct {
	ID     string                   `json:"id"`
	Name   string                   `json:"name" validate:"required"`
	Unit   string                   `json:"unit"`
	Prices map[string]*domain.Money `json:"prices" validate:"dive,keys,numeric,endkeys"`
}

// CategoryInput is one category of a submitted sheet.
type CategoryInput struct {
	ID       string         `json:"id"`
	Name     string         `json:"name" validate:"required"`
	Products []ProductInput `json:"products" validate:"dive"`
}

// FileInput is the body of submit and edit.
type FileInput struct {
	FileName          string          `json:"fileName"`
	Commodity         string          `json:"commodity"`
	CommodityDisplay  string          `json:"commodityDisplay"`
	IsCustomCommodity bool            `json:"isCustomCommodity"`
	Month             string          `json:"month"`
	Week              string          `json:"week"`
	Year              int             `json:"year" validate:"omitempty,gte=2000,lte=2100"`
	Stores            []string        `json:"stores"`
	Categories        []CategoryInput `json:"categories" validate:"dive"`
}

// StoreInput is the body of add store.
type StoreInput struct {
	Name string `json:"name" validate:"required"`
}

// CategoryTemplateInput is the body of add category.
type CategoryTemplateInput struct {
	Name        string `json:"name" validate:"required"`
	ProductName string `json:"productName" validate:"required"`
	ProductUnit string `json:"productUnit"`
}

// ProductTemplateInput is the body of add product.
type ProductTemplateInput struct {
	Name string `json:"name" validate:"required"`
	Unit string `json:"unit"`
}

// BaselineProductInput is one baseline row. Each month holds a number for
// monthly provinces or a week label to number object for weekly ones.
type BaselineProductInput struct {
	ProductID   string                     `json:"productId"`
	ProductName string                     `json:"productName" validate:"required"`
	Unit        string                     `json:"unit"`
	Prices      map[string]json.RawMessage `json:"prices"`
}

// BaselineInput is the body of save baseline.
type BaselineInput struct {
	Year     int                    `json:"year" validate:"omitempty,gte=2000,lte=2100"`
	Products []BaselineProductInput `json:"products" validate:"required,min=1,dive"`
}

// categoriesFromInput builds the sheet content. Creation times are staggered
// so that input order survives a sort by creation.
func categoriesFromInput(in []CategoryInput, now time.Time) ([]*domain.Category, error) {
	out := make([]*domain.Category, 0, len(in))
	tick := 0
	stamp := func() time.Time {
		tick++
		return now.Add(time.Duration(tick) * time.Millisecond)
	}

	for _, ci := range in {
		c, err := domain.NewCategory(ci.ID, ci.Name, stamp())
		if err != nil {
			return nil, fmt.Errorf("category %q: %w", ci.Name, err)
		}
		for _, pi := range ci.Products {
			p, err := domain.NewProduct(pi.ID, pi.Name, pi.Unit, stamp())
			if err != nil {
				return nil, fmt.Errorf("product %q: %w", pi.Name, err)
			}
			for key, price := range pi.Prices {
				idx, err := strconv.Atoi(key)
				if err != nil || idx < 0 {
					return nil, fmt.Errorf("product %q price key %q: %w", pi.Name, key, domain.ErrStoreIndexOutOfRange)
				}
				p.SetPrice(idx, price)
			}
			c.AddProduct(p)
		}
		out = append(out, c)
	}
	return out, nil
}

func baselineProductsFromInput(in []BaselineProductInput) ([]domain.BaselineProduct, error) {
	out := make([]domain.BaselineProduct, 0, len(in))
	for _, pi := range in {
		row := domain.BaselineProduct{
			ProductID:   pi.ProductID,
			ProductName: pi.ProductName,
			Unit:        pi.Unit,
			Prices:      make(map[time.Month]domain.BaselineCell, len(pi.Prices)),
		}
		if row.ProductID == "" {
			row.ProductID = domain.SanitizeID(pi.ProductName)
		}
		for key, raw := range pi.Prices {
			month, err := domain.ParseMonth(key)
			if err != nil {
				return nil, err
			}
			cell, err := baselineCellFromJSON(raw)
			if err != nil {
				return nil, fmt.Errorf("product %q %s: %w", pi.ProductName, key, err)
			}
			row.Prices[month] = cell
		}
		out = append(out, row)
	}
	return out, nil
}

func baselineCellFromJSON(raw json.RawMessage) (domain.BaselineCell, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var labels map[string]*domain.Money
		if err := json.Unmarshal(trimmed, &labels); err != nil {
			return domain.BaselineCell{}, err
		}
		weeks := make(map[domain.Week]*domain.Money, len(labels))
		for label, v := range labels {
			w, err := domain.ParseWeek(label)
			if err != nil {
				return domain.BaselineCell{}, err
			}
			weeks[w] = v
		}
		return domain.WeeklyCell(weeks), nil
	}

	var value *domain.Money
	if err := json.Unmarshal(trimmed, &value); err != nil {
		return domain.BaselineCell{}, err
	}
	return domain.MonthlyCell(value), nil
}

// Responses

// ProductResponse is a product row with its prevailing price.
type ProductResponse struct {
	ID              string                   `json:"id"`
	Name            string                   `json:"name"`
	Unit            string                   `json:"unit"`
	Prices          map[string]*domain.Money `json:"prices"`
	PrevailingPrice *domain.Money            `json:"prevailingPrice"`
}

// CategoryResponse is a category with its products.
type CategoryResponse struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Products []ProductResponse `json:"products"`
}

// FileResponse is a stored price sheet.
type FileResponse struct {
	ID                string             `json:"id"`
	FileName          string             `json:"fileName"`
	Commodity         string             `json:"commodity"`
	CommodityDisplay  string             `json:"commodityDisplay"`
	IsCustomCommodity bool               `json:"isCustomCommodity"`
	Month             string             `json:"month"`
	Week              string             `json:"week,omitempty"`
	Year              int                `json:"year,omitempty"`
	Stores            []string           `json:"stores"`
	Categories        []CategoryResponse `json:"categories"`
	Province          string             `json:"province"`
	UploadedBy        string             `json:"uploadedBy"`
	UploadedByEmail   string             `json:"uploadedByEmail"`
	UploadedAt        time.Time          `json:"uploadedAt"`
	LastModified      *time.Time         `json:"lastModified,omitempty"`
}

func fileResponse(doc *domain.PriceDocument) FileResponse {
	period := doc.Period()
	out := FileResponse{
		ID:                doc.ID(),
		FileName:          doc.FileName(),
		Commodity:         doc.Commodity(),
		CommodityDisplay:  doc.CommodityDisplay(),
		IsCustomCommodity: doc.IsCustomCommodity(),
		Month:             period.Month.String(),
		Week:              period.Week.String(),
		Year:              period.Year,
		Stores:            doc.Stores(),
		Categories:        categoryResponses(doc.Categories()),
		Province:          doc.Province(),
		UploadedBy:        doc.UploadedBy(),
		UploadedByEmail:   doc.UploadedByEmail(),
		UploadedAt:        doc.UploadedAt(),
	}
	if lm := doc.LastModified(); !lm.IsZero() {
		out.LastModified = &lm
	}
	return out
}

func fileResponses(docs []*domain.PriceDocument) []FileResponse {
	out := make([]FileResponse, 0, len(docs))
	for _, doc := range docs {
		out = append(out, fileResponse(doc))
	}
	return out
}

func categoryResponses(categories []*domain.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, categoryResponse(c))
	}
	return out
}

func categoryResponse(c *domain.Category) CategoryResponse {
	cr := CategoryResponse{ID: c.ID(), Name: c.Name(), Products: make([]ProductResponse, 0, len(c.Products()))}
	for _, p := range c.Products() {
		cr.Products = append(cr.Products, productResponse(p))
	}
	return cr
}

func productResponse(p *domain.Product) ProductResponse {
	prices := make(map[string]*domain.Money)
	for idx, price := range p.Prices() {
		prices[strconv.Itoa(idx)] = price
	}
	return ProductResponse{
		ID:              p.ID(),
		Name:            p.Name(),
		Unit:            p.Unit(),
		Prices:          prices,
		PrevailingPrice: p.PrevailingPrice(),
	}
}

// StoreResponse is a template store.
type StoreResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

func storeResponses(stores []contracts.Store) []StoreResponse {
	out := make([]StoreResponse, 0, len(stores))
	for _, s := range stores {
		out = append(out, StoreResponse{ID: s.ID, Name: s.Name, CreatedAt: s.CreatedAt})
	}
	return out
}

// TargetResponse describes where a horizon's comparison prices come from.
type TargetResponse struct {
	Source string `json:"source"`
	Label  string `json:"label"`
	FileID string `json:"fileId,omitempty"`
}

// DeltaResponse is a signed difference against a target.
type DeltaResponse struct {
	Absolute string  `json:"absolute"`
	Percent  float64 `json:"percent"`
}

// HorizonCellResponse is one horizon of a row.
type HorizonCellResponse struct {
	Price *domain.Money  `json:"price"`
	Delta *DeltaResponse `json:"delta"`
}

// RowResponse is one product line of a comparison.
type RowResponse struct {
	CategoryID      string                         `json:"categoryId"`
	CategoryName    string                         `json:"categoryName"`
	ProductID       string                         `json:"productId"`
	ProductName     string                         `json:"productName"`
	Unit            string                         `json:"unit"`
	StorePrices     []*domain.Money                `json:"storePrices"`
	PrevailingPrice *domain.Money                  `json:"prevailingPrice"`
	Horizons        map[string]HorizonCellResponse `json:"horizons"`
}

// RankedItemResponse is one entry of a summary list.
type RankedItemResponse struct {
	Name    string `json:"name"`
	Unit    string `json:"unit"`
	Peso    string `json:"peso"`
	Percent string `json:"percent"`
}

// HorizonSummaryResponse is the increase/decrease digest of one horizon.
type HorizonSummaryResponse struct {
	IncreaseCount   int                  `json:"increaseCount"`
	DecreaseCount   int                  `json:"decreaseCount"`
	HighestIncrease []RankedItemResponse `json:"highestIncrease"`
	LowestIncrease  []RankedItemResponse `json:"lowestIncrease"`
	HighestDecrease []RankedItemResponse `json:"highestDecrease"`
	LowestDecrease  []RankedItemResponse `json:"lowestDecrease"`
	TotalProducts   int                  `json:"totalProducts"`
}

// ComparisonResponse is the full comparison report of a sheet.
type ComparisonResponse struct {
	File              FileResponse                      `json:"file"`
	Targets           map[string]*TargetResponse        `json:"targets"`
	Rows              []RowResponse                     `json:"rows"`
	Summary           map[string]HorizonSummaryResponse `json:"summary"`
	YearOverYearReady bool                              `json:"yearOverYearReady"`
}

func comparisonResponse(doc *domain.PriceDocument, cmp *comparison.Comparison, rows []comparison.Row, summary *comparison.Summary, yoy bool) ComparisonResponse {
	out := ComparisonResponse{
		File:              fileResponse(doc),
		Targets:           make(map[string]*TargetResponse, len(comparison.Horizons)),
		Rows:              make([]RowResponse, 0, len(rows)),
		YearOverYearReady: yoy,
	}

	for _, h := range comparison.Horizons {
		out.Targets[h.Key()] = targetResponse(cmp.Target(h))
	}

	for _, row := range rows {
		rr := RowResponse{
			CategoryID:      row.CategoryID,
			CategoryName:    row.CategoryName,
			ProductID:       row.ProductID,
			ProductName:     row.ProductName,
			Unit:            row.Unit,
			StorePrices:     row.StorePrices,
			PrevailingPrice: row.PrevailingPrice,
			Horizons:        make(map[string]HorizonCellResponse, len(comparison.Horizons)),
		}
		for _, h := range comparison.Horizons {
			cell := row.Cell(h)
			if !cell.Available {
				continue
			}
			hc := HorizonCellResponse{Price: cell.Price}
			if cell.Delta != nil {
				hc.Delta = &DeltaResponse{Absolute: cell.Delta.Absolute.String(), Percent: cell.Delta.PercentFloat()}
			}
			rr.Horizons[h.Key()] = hc
		}
		out.Rows = append(out.Rows, rr)
	}

	if summary != nil {
		out.Summary = map[string]HorizonSummaryResponse{
			comparison.MonthAgo.Key():       horizonSummaryResponse(summary.Month1),
			comparison.ThreeMonthsAgo.Key(): horizonSummaryResponse(summary.Month3),
		}
	}
	return out
}

func targetResponse(t domain.ComparisonTarget) *TargetResponse {
	if t == nil {
		return nil
	}
	out := &TargetResponse{Source: t.Source(), Label: t.Label()}
	if dt, ok := t.(domain.DocumentTarget); ok && dt.Document != nil {
		out.FileID = dt.Document.ID()
	}
	return out
}

func horizonSummaryResponse(s comparison.HorizonSummary) HorizonSummaryResponse {
	return HorizonSummaryResponse{
		IncreaseCount:   s.IncreaseCount,
		DecreaseCount:   s.DecreaseCount,
		HighestIncrease: rankedResponses(s.HighestIncrease),
		LowestIncrease:  rankedResponses(s.LowestIncrease),
		HighestDecrease: rankedResponses(s.HighestDecrease),
		LowestDecrease:  rankedResponses(s.LowestDecrease),
		TotalProducts:   s.TotalProducts,
	}
}

func rankedResponses(items []comparison.RankedItem) []RankedItemResponse {
	out := make([]RankedItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, RankedItemResponse{
			Name:    item.Name,
			Unit:    item.Unit,
			Peso:    item.Peso.StringFixed(2),
			Percent: item.Percent.StringFixed(2),
		})
	}
	return out
}

// BaselineProductResponse is one baseline row. Month keys hold a number or a
// week label to number object.
type BaselineProductResponse struct {
	ProductID   string         `json:"productId"`
	ProductName string         `json:"productName"`
	Unit        string         `json:"unit"`
	Prices      map[string]any `json:"prices"`
}

// BaselineResponse is a stored baseline table.
type BaselineResponse struct {
	ID               string                    `json:"id"`
	Commodity        string                    `json:"commodity"`
	CommodityDisplay string                    `json:"commodityDisplay"`
	Province         string                    `json:"province"`
	Year             int                       `json:"year"`
	Products         []BaselineProductResponse `json:"products"`
	CreatedAt        time.Time                 `json:"createdAt"`
	LastModified     time.Time                 `json:"lastModified"`
}

func baselineResponse(b *domain.BaselineDocument) BaselineResponse {
	out := BaselineResponse{
		ID:               b.ID(),
		Commodity:        b.Commodity(),
		CommodityDisplay: b.CommodityDisplay(),
		Province:         b.Province(),
		Year:             b.Year(),
		CreatedAt:        b.CreatedAt(),
		LastModified:     b.LastModified(),
	}
	for _, p := range b.Products() {
		row := BaselineProductResponse{
			ProductID:   p.ProductID,
			ProductName: p.ProductName,
			Unit:        p.Unit,
			Prices:      make(map[string]any, len(p.Prices)),
		}
		for month, cell := range p.Prices {
			if !cell.IsWeekly() {
				row.Prices[month.String()] = cell.Value()
				continue
			}
			weeks := cell.Weeks()
			labels := make([]domain.Week, 0, len(weeks))
			for w := range weeks {
				labels = append(labels, w)
			}
			sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })
			byLabel := make(map[string]*domain.Money, len(labels))
			for _, w := range labels {
				byLabel[w.String()] = weeks[w]
			}
			row.Prices[month.String()] = byLabel
		}
		out.Products = append(out.Products, row)
	}
	return out
}

// HistoryResponse is one prevailing price change from the ledger.
type HistoryResponse struct {
	HistoryID     string        `json:"historyId"`
	ProductKey    string        `json:"productKey"`
	OldPrice      *domain.Money `json:"oldPrice"`
	NewPrice      *domain.Money `json:"newPrice"`
	ChangedBy     string        `json:"changedBy"`
	ChangedReason string        `json:"changedReason"`
	ChangedAt     time.Time     `json:"changedAt"`
}

func historyResponses(records []contracts.PriceHistoryRecord) []HistoryResponse {
	out := make([]HistoryResponse, 0, len(records))
	for _, r := range records {
		out = append(out, HistoryResponse{
			HistoryID:     r.HistoryID,
			ProductKey:    r.ProductKey,
			OldPrice:      r.OldPrice,
			NewPrice:      r.NewPrice,
			ChangedBy:     r.ChangedBy,
			ChangedReason: r.ChangedReason,
			ChangedAt:     r.ChangedAt,
		})
	}
	return out
}

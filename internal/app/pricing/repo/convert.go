package repo

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/light-bringer/pricetracker/internal/app/pricing/domain"
	"github.com/light-bringer/pricetracker/internal/models/m_baseline"
	"github.com/light-bringer/pricetracker/internal/models/m_price_file"
)

// fileToData converts the aggregate to its stored shape.
func fileToData(doc *domain.PriceDocument) *m_price_file.Data {
	period := doc.Period()
	data := &m_price_file.Data{
		FileName:          doc.FileName(),
		Commodity:         doc.Commodity(),
		CommodityDisplay:  doc.CommodityDisplay(),
		Month:             period.Month.String(),
		Week:              period.Week.String(),
		Year:              int64(period.Year),
		Stores:            doc.Stores(),
		UploadedBy:        doc.UploadedBy(),
		UploadedByEmail:   doc.UploadedByEmail(),
		UploadedAt:        doc.UploadedAt(),
		Province:          doc.Province(),
		LastModified:      doc.LastModified(),
		IsCustomCommodity: doc.IsCustomCommodity(),
	}

	for _, c := range doc.Categories() {
		cat := m_price_file.Category{
			ID:        c.ID(),
			Name:      c.Name(),
			CreatedAt: c.CreatedAt(),
		}
		for _, p := range c.Products() {
			cat.Products = append(cat.Products, m_price_file.Product{
				ID:              p.ID(),
				Name:            p.Name(),
				Unit:            p.Unit(),
				Prices:          pricesToData(p.Prices()),
				PrevailingPrice: moneyToFloat(p.PrevailingPrice()),
				CreatedAt:       p.CreatedAt(),
			})
		}
		data.Categories = append(data.Categories, cat)
	}

	return data
}

// dataToFile reconstructs the aggregate. Stored prevailing prices are ignored
// and recomputed from the store prices.
func dataToFile(id string, data *m_price_file.Data) (*domain.PriceDocument, error) {
	period, err := dataToPeriod(data.Month, data.Week, data.Year)
	if err != nil {
		return nil, fmt.Errorf("file %s: %w", id, err)
	}

	categories := make([]*domain.Category, 0, len(data.Categories))
	for _, c := range data.Categories {
		products := make([]*domain.Product, 0, len(c.Products))
		for _, p := range c.Products {
			prices, err := dataToPrices(p.Prices)
			if err != nil {
				return nil, fmt.Errorf("file %s product %s: %w", id, p.ID, err)
			}
			products = append(products, domain.ReconstructProduct(p.ID, p.Name, p.Unit, prices, p.CreatedAt))
		}
		categories = append(categories, domain.ReconstructCategory(c.ID, c.Name, products, c.CreatedAt))
	}

	return domain.ReconstructPriceDocument(domain.DocumentState{
		ID:                id,
		FileName:          data.FileName,
		Commodity:         data.Commodity,
		CommodityDisplay:  data.CommodityDisplay,
		IsCustomCommodity: data.IsCustomCommodity,
		Period:            period,
		Stores:            data.Stores,
		Categories:        categories,
		Province:          data.Province,
		UploadedBy:        data.UploadedBy,
		UploadedByEmail:   data.UploadedByEmail,
		UploadedAt:        data.UploadedAt,
		LastModified:      data.LastModified,
	}), nil
}

// dataToPeriod tolerates sheets saved before the month was required.
func dataToPeriod(month, week string, year int64) (domain.Period, error) {
	return domain.NewPeriod(month, week, int(year))
}

func pricesToData(prices map[int]*domain.Money) map[string]*float64 {
	out := make(map[string]*float64, len(prices))
	for idx, price := range prices {
		out[strconv.Itoa(idx)] = moneyToFloat(price)
	}
	return out
}

func dataToPrices(data map[string]*float64) (map[int]*domain.Money, error) {
	out := make(map[int]*domain.Money, len(data))
	for key, v := range data {
		idx, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("invalid store index %q", key)
		}
		if v != nil {
			out[idx] = domain.NewMoneyFromFloat(*v)
		}
	}
	return out, nil
}

func moneyToFloat(m *domain.Money) *float64 {
	if m == nil {
		return nil
	}
	f := m.Float64()
	return &f
}

// baselineToData converts a baseline to its stored shape.
func baselineToData(b *domain.BaselineDocument) *m_baseline.Data {
	data := &m_baseline.Data{
		Commodity:        b.Commodity(),
		CommodityDisplay: b.CommodityDisplay(),
		Province:         b.Province(),
		Year:             int64(b.Year()),
		CreatedAt:        b.CreatedAt(),
		LastModified:     b.LastModified(),
	}
	for _, p := range b.Products() {
		row := m_baseline.Product{
			ProductID:   p.ProductID,
			ProductName: p.ProductName,
			Unit:        p.Unit,
			Prices:      make(map[string]interface{}, len(p.Prices)),
		}
		for month, cell := range p.Prices {
			row.Prices[month.String()] = cellToData(cell)
		}
		data.Products = append(data.Products, row)
	}
	return data
}

func cellToData(cell domain.BaselineCell) interface{} {
	if !cell.IsWeekly() {
		if v := moneyToFloat(cell.Value()); v != nil {
			return *v
		}
		return nil
	}
	weeks := cell.Weeks()
	labels := make([]domain.Week, 0, len(weeks))
	for w := range weeks {
		labels = append(labels, w)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })

	out := make(map[string]interface{}, len(weeks))
	for _, w := range labels {
		if v := moneyToFloat(weeks[w]); v != nil {
			out[w.String()] = *v
		} else {
			out[w.String()] = nil
		}
	}
	return out
}

// dataToBaseline reconstructs a baseline. Cells that are maps become weekly
// cells; numbers and nulls become monthly cells.
func dataToBaseline(id string, data *m_baseline.Data) (*domain.BaselineDocument, error) {
	products := make([]domain.BaselineProduct, 0, len(data.Products))
	for _, p := range data.Products {
		row := domain.BaselineProduct{
			ProductID:   p.ProductID,
			ProductName: p.ProductName,
			Unit:        p.Unit,
			Prices:      make(map[time.Month]domain.BaselineCell, len(p.Prices)),
		}
		for key, raw := range p.Prices {
			month, err := domain.ParseMonth(key)
			if err != nil {
				return nil, fmt.Errorf("baseline %s product %s: %w", id, p.ProductID, err)
			}
			cell, err := dataToCell(raw)
			if err != nil {
				return nil, fmt.Errorf("baseline %s product %s %s: %w", id, p.ProductID, key, err)
			}
			row.Prices[month] = cell
		}
		products = append(products, row)
	}

	return domain.ReconstructBaselineDocument(domain.BaselineState{
		ID:               id,
		Commodity:        data.Commodity,
		CommodityDisplay: data.CommodityDisplay,
		Province:         data.Province,
		Year:             int(data.Year),
		Products:         products,
		CreatedAt:        data.CreatedAt,
		LastModified:     data.LastModified,
	}), nil
}

func dataToCell(raw interface{}) (domain.BaselineCell, error) {
	weeks, ok := raw.(map[string]interface{})
	if !ok {
		v, err := numberToMoney(raw)
		if err != nil {
			return domain.BaselineCell{}, err
		}
		return domain.MonthlyCell(v), nil
	}

	out := make(map[domain.Week]*domain.Money, len(weeks))
	for label, rv := range weeks {
		w, err := domain.ParseWeek(label)
		if err != nil {
			return domain.BaselineCell{}, err
		}
		v, err := numberToMoney(rv)
		if err != nil {
			return domain.BaselineCell{}, err
		}
		out[w] = v
	}
	return domain.WeeklyCell(out), nil
}

// numberToMoney accepts the numeric types Firestore decodes into interface{}.
func numberToMoney(v interface{}) (*domain.Money, error) {
	switch n := v.(type) {
	case nil:
		return nil, nil
	case float64:
		return domain.NewMoneyFromFloat(n), nil
	case int64:
		return domain.NewMoney(n * 100), nil
	case int:
		return domain.NewMoney(int64(n) * 100), nil
	default:
		return nil, fmt.Errorf("unexpected price value %T", v)
	}
}

package comparison

import "github.com/light-bringer/pricetracker/internal/app/pricing/domain"

// HorizonCell is a product's comparison over one horizon.
type HorizonCell struct {
	// Available is false when the horizon has no target at all.
	Available bool
	Price     *domain.Money
	Delta     *domain.Delta
}

// Row is one product line of a comparison report.
type Row struct {
	CategoryID      string
	CategoryName    string
	ProductID       string
	ProductName     string
	Unit            string
	StorePrices     []*domain.Money // indexed like the sheet's store list
	PrevailingPrice *domain.Money
	Horizons        [3]HorizonCell // indexed by Horizon
}

// Cell returns the row's comparison for h.
func (r Row) Cell(h Horizon) HorizonCell {
	return r.Horizons[h]
}

// Rows flattens doc into report rows in category and product order.
// cmp may be nil, in which case no horizon is available.
func Rows(doc *domain.PriceDocument, cmp *Comparison) []Row {
	storeCount := len(doc.Stores())

	var rows []Row
	for _, category := range doc.Categories() {
		for _, product := range category.Products() {
			row := Row{
				CategoryID:      category.ID(),
				CategoryName:    category.Name(),
				ProductID:       product.ID(),
				ProductName:     product.Name(),
				Unit:            product.Unit(),
				StorePrices:     make([]*domain.Money, storeCount),
				PrevailingPrice: product.PrevailingPrice(),
			}
			for i := 0; i < storeCount; i++ {
				row.StorePrices[i] = product.Price(i)
			}
			for _, h := range Horizons {
				target := cmp.Target(h)
				if target == nil {
					continue
				}
				price := cmp.ComparablePrice(product, category.Name(), target)
				row.Horizons[h] = HorizonCell{
					Available: true,
					Price:     price,
					Delta:     domain.ComputeDelta(row.PrevailingPrice, price),
				}
			}
			rows = append(rows, row)
		}
	}
	return rows
}

package m_price_history

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents a price history record in the database.
// Prices are NUMERIC so peso amounts round-trip exactly.
type Data struct {
	HistoryID     string              `spanner:"history_id"`
	Province      string              `spanner:"province"`
	FileID        string              `spanner:"file_id"`
	ProductKey    string              `spanner:"product_key"`
	OldPrice      spanner.NullNumeric `spanner:"old_price"`
	NewPrice      spanner.NullNumeric `spanner:"new_price"`
	ChangedBy     spanner.NullString  `spanner:"changed_by"`
	ChangedReason spanner.NullString  `spanner:"changed_reason"`
	ChangedAt     time.Time           `spanner:"changed_at"`
}

// Model provides type-safe database operations for price history.
type Model struct{}

// NewModel creates a new price history model.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a mutation for inserting a price history record.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		m.ReadColumns(),
		[]interface{}{
			data.HistoryID,
			data.Province,
			data.FileID,
			data.ProductKey,
			data.OldPrice,
			data.NewPrice,
			data.ChangedBy,
			data.ChangedReason,
			data.ChangedAt,
		},
	)
}

// ReadColumns returns the column names for reading price history.
func (m *Model) ReadColumns() []string {
	return []string{
		HistoryID,
		Province,
		FileID,
		ProductKey,
		OldPrice,
		NewPrice,
		ChangedBy,
		ChangedReason,
		ChangedAt,
	}
}

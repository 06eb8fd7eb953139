package m_outbox

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the outbox_events table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for inserting an outbox event.
// created_at is the commit timestamp so events order by commit.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		Columns(),
		[]interface{}{
			data.EventID,
			data.EventType,
			data.AggregateID,
			data.Payload,
			data.Status,
			spanner.CommitTimestamp,
			data.ProcessedAt,
			data.RetryCount,
			data.ErrorMessage,
		},
	)
}

// ScanRow reads a row selected with Columns into data.
func (m *Model) ScanRow(row *spanner.Row) (*Data, error) {
	var data Data
	if err := row.Columns(
		&data.EventID,
		&data.EventType,
		&data.AggregateID,
		&data.Payload,
		&data.Status,
		&data.CreatedAt,
		&data.ProcessedAt,
		&data.RetryCount,
		&data.ErrorMessage,
	); err != nil {
		return nil, err
	}
	return &data, nil
}

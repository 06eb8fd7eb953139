package repo

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/pricetracker/internal/app/pricing/contracts"
	"github.com/light-bringer/pricetracker/internal/app/pricing/domain"
	"github.com/light-bringer/pricetracker/internal/models/m_price_history"
	"github.com/light-bringer/pricetracker/internal/pkg/query"
)

// PriceHistoryRepo implements PriceHistoryRepository for Spanner.
type PriceHistoryRepo struct {
	client *spanner.Client
	model  *m_price_history.Model
}

// NewPriceHistoryRepo creates a new PriceHistoryRepo. The client may be nil
// when only mutations are built.
func NewPriceHistoryRepo(client *spanner.Client) contracts.PriceHistoryRepository {
	return &PriceHistoryRepo{
		client: client,
		model:  m_price_history.NewModel(),
	}
}

// InsertMut creates a mutation for inserting a price change record.
func (r *PriceHistoryRepo) InsertMut(entry *contracts.PriceHistoryEntry) *spanner.Mutation {
	data := &m_price_history.Data{
		HistoryID:  entry.HistoryID,
		Province:   entry.Province,
		FileID:     entry.FileID,
		ProductKey: entry.ProductKey,
		OldPrice:   moneyToNumeric(entry.OldPrice),
		NewPrice:   moneyToNumeric(entry.NewPrice),
		ChangedAt:  entry.ChangedAt,
	}

	// changedBy is optional
	if entry.ChangedBy != "" {
		data.ChangedBy = spanner.NullString{StringVal: entry.ChangedBy, Valid: true}
	}

	// changedReason is optional
	if entry.ChangedReason != "" {
		data.ChangedReason = spanner.NullString{StringVal: entry.ChangedReason, Valid: true}
	}

	return r.model.InsertMut(data)
}

// ListByProduct retrieves the history of one product line, most recent first.
func (r *PriceHistoryRepo) ListByProduct(ctx context.Context, province, fileID, productKey string, limit int) ([]contracts.PriceHistoryRecord, error) {
	if r.client == nil {
		return nil, domain.ErrLedgerUnavailable
	}

	stmt := query.From(m_price_history.TableName).
		Select(r.model.ReadColumns()...).
		Where(query.Eq(m_price_history.Province, province)).
		Where(query.Eq(m_price_history.FileID, fileID)).
		Where(query.Eq(m_price_history.ProductKey, productKey)).
		OrderBy(m_price_history.ChangedAt, query.Desc).
		Limit(int64(limit)).
		Build()

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	var records []contracts.PriceHistoryRecord
	for {
		row, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate price history: %w", err)
		}

		var data m_price_history.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse price history: %w", err)
		}

		records = append(records, dataToRecord(&data))
	}

	return records, nil
}

// dataToRecord converts a database row to a PriceHistoryRecord.
func dataToRecord(data *m_price_history.Data) contracts.PriceHistoryRecord {
	record := contracts.PriceHistoryRecord{
		HistoryID:  data.HistoryID,
		Province:   data.Province,
		FileID:     data.FileID,
		ProductKey: data.ProductKey,
		OldPrice:   numericToMoney(data.OldPrice),
		NewPrice:   numericToMoney(data.NewPrice),
		ChangedAt:  data.ChangedAt,
	}

	// changedBy is optional
	if data.ChangedBy.Valid {
		record.ChangedBy = data.ChangedBy.StringVal
	}

	// changedReason is optional
	if data.ChangedReason.Valid {
		record.ChangedReason = data.ChangedReason.StringVal
	}

	return record
}

func moneyToNumeric(m *domain.Money) spanner.NullNumeric {
	if m == nil {
		return spanner.NullNumeric{}
	}
	return spanner.NullNumeric{Numeric: *m.Rat(), Valid: true}
}

func numericToMoney(n spanner.NullNumeric) *domain.Money {
	if !n.Valid {
		return nil
	}
	return domain.NewMoneyFromRat(&n.Numeric)
}

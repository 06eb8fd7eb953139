package repo

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/pricetracker/internal/app/pricing/contracts"
	"github.com/light-bringer/pricetracker/internal/app/pricing/domain"
	"github.com/light-bringer/pricetracker/internal/models/m_price_file"
)

// FileRepositoryFS implements FileRepository on Firestore.
type FileRepositoryFS struct {
	client *firestore.Client
	model  *m_price_file.Model
}

// NewFileRepositoryFS creates a new FileRepositoryFS.
func NewFileRepositoryFS(client *firestore.Client) contracts.FileRepository {
	return &FileRepositoryFS{
		client: client,
		model:  m_price_file.NewModel(client),
	}
}

// Get loads one sheet.
func (r *FileRepositoryFS) Get(ctx context.Context, province, fileID string) (*domain.PriceDocument, error) {
	if province == "" || fileID == "" {
		return nil, domain.ErrFileNotFound
	}

	snap, err := r.model.Collection(province).Doc(fileID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, domain.ErrFileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get file %s: %w", fileID, err)
	}

	return snapshotToFile(snap)
}

// Upsert replaces the sheet stored under the document id.
func (r *FileRepositoryFS) Upsert(ctx context.Context, doc *domain.PriceDocument) error {
	if _, err := r.model.Collection(doc.Province()).Doc(doc.ID()).Set(ctx, fileToData(doc)); err != nil {
		return fmt.Errorf("failed to save file %s: %w", doc.ID(), err)
	}
	return nil
}

// Delete removes a sheet.
func (r *FileRepositoryFS) Delete(ctx context.Context, province, fileID string) error {
	if _, err := r.model.Collection(province).Doc(fileID).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete file %s: %w", fileID, err)
	}
	return nil
}

// List queries sheets by the equality filters, newest first. The week filter
// is applied after the query because monthly sheets may store a null week.
func (r *FileRepositoryFS) List(ctx context.Context, province string, filter contracts.FileFilter) ([]*domain.PriceDocument, error) {
	if province == "" {
		return nil, nil
	}

	q := r.model.Collection(province).Query
	if filter.CommodityDisplay != "" {
		q = q.Where(m_price_file.CommodityDisplay, "==", filter.CommodityDisplay)
	}
	if filter.Month != 0 {
		q = q.Where(m_price_file.Month, "==", filter.Month.String())
	}
	if filter.UploadedBy != "" {
		q = q.Where(m_price_file.UploadedBy, "==", filter.UploadedBy)
	}
	q = q.OrderBy(m_price_file.UploadedAt, firestore.Desc)
	if filter.Week == nil && filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var docs []*domain.PriceDocument
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate files: %w", err)
		}

		doc, err := snapshotToFile(snap)
		if err != nil {
			return nil, err
		}
		if !matchesWeek(doc, filter.Week) {
			continue
		}
		docs = append(docs, doc)
		if filter.Limit > 0 && len(docs) == filter.Limit {
			break
		}
	}

	return docs, nil
}

func snapshotToFile(snap *firestore.DocumentSnapshot) (*domain.PriceDocument, error) {
	var data m_price_file.Data
	if err := snap.DataTo(&data); err != nil {
		return nil, fmt.Errorf("failed to decode file %s: %w", snap.Ref.ID, err)
	}
	return dataToFile(snap.Ref.ID, &data)
}

func matchesWeek(doc *domain.PriceDocument, week *domain.Week) bool {
	return week == nil || doc.Period().Week == *week
}

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
	"github.com/light-bringer/pricetracker/internal/models/m_baseline"
)

// BaselineRepositoryFS implements BaselineRepository on Firestore.
type BaselineRepositoryFS struct {
	client *firestore.Client
	model  *m_baseline.Model
}

// NewBaselineRepositoryFS creates a new BaselineRepositoryFS.
func NewBaselineRepositoryFS(client *firestore.Client) contracts.BaselineRepository {
	return &BaselineRepositoryFS{
		client: client,
		model:  m_baseline.NewModel(client),
	}
}

// Get loads a baseline by document id.
func (r *BaselineRepositoryFS) Get(ctx context.Context, province, baselineID string) (*domain.BaselineDocument, error) {
	if province == "" || baselineID == "" {
		return nil, domain.ErrBaselineNotFound
	}

	snap, err := r.model.Collection(province).Doc(baselineID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, domain.ErrBaselineNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get baseline %s: %w", baselineID, err)
	}

	return snapshotToBaseline(snap)
}

// Exists checks whether a baseline document is present.
func (r *BaselineRepositoryFS) Exists(ctx context.Context, province, baselineID string) (bool, error) {
	if province == "" || baselineID == "" {
		return false, nil
	}

	_, err := r.model.Collection(province).Doc(baselineID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check baseline %s: %w", baselineID, err)
	}
	return true, nil
}

// Upsert replaces the baseline stored under its id.
func (r *BaselineRepositoryFS) Upsert(ctx context.Context, b *domain.BaselineDocument) error {
	if _, err := r.model.Collection(b.Province()).Doc(b.ID()).Set(ctx, baselineToData(b)); err != nil {
		return fmt.Errorf("failed to save baseline %s: %w", b.ID(), err)
	}
	return nil
}

// Delete removes a baseline.
func (r *BaselineRepositoryFS) Delete(ctx context.Context, province, baselineID string) error {
	if _, err := r.model.Collection(province).Doc(baselineID).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete baseline %s: %w", baselineID, err)
	}
	return nil
}

// List returns every baseline of a province, most recently modified first.
func (r *BaselineRepositoryFS) List(ctx context.Context, province string) ([]*domain.BaselineDocument, error) {
	if province == "" {
		return nil, nil
	}

	iter := r.model.Collection(province).OrderBy(m_baseline.LastModified, firestore.Desc).Documents(ctx)
	defer iter.Stop()

	var out []*domain.BaselineDocument
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate baselines: %w", err)
		}
		b, err := snapshotToBaseline(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func snapshotToBaseline(snap *firestore.DocumentSnapshot) (*domain.BaselineDocument, error) {
	var data m_baseline.Data
	if err := snap.DataTo(&data); err != nil {
		return nil, fmt.Errorf("failed to decode baseline %s: %w", snap.Ref.ID, err)
	}
	return dataToBaseline(snap.Ref.ID, &data)
}

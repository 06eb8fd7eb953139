package repo

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/pricetracker/internal/app/pricing/contracts"
	"github.com/light-bringer/pricetracker/internal/models/m_user"
)

// UserDirectoryFS implements UserDirectory on Firestore.
type UserDirectoryFS struct {
	client *firestore.Client
	model  *m_user.Model
}

// NewUserDirectoryFS creates a new UserDirectoryFS.
func NewUserDirectoryFS(client *firestore.Client) contracts.UserDirectory {
	return &UserDirectoryFS{
		client: client,
		model:  m_user.NewModel(client),
	}
}

// IsAdmin reports whether admin/{uid} exists.
func (r *UserDirectoryFS) IsAdmin(ctx context.Context, uid string) (bool, error) {
	if uid == "" {
		return false, nil
	}
	return docExists(ctx, r.model.Admin(uid))
}

// IsMember reports whether the uid is enrolled in the province.
func (r *UserDirectoryFS) IsMember(ctx context.Context, province, uid string) (bool, error) {
	if province == "" || uid == "" {
		return false, nil
	}
	return docExists(ctx, r.model.Users(province).Doc(uid))
}

// Enroll writes the user document and refreshes the province's user count in
// one transaction. Re-enrolling keeps the original creation time.
func (r *UserDirectoryFS) Enroll(ctx context.Context, province string, identity contracts.Identity, now time.Time) error {
	userRef := r.model.Users(province).Doc(identity.UID)
	provinceRef := r.model.Province(province)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		createdAt := now
		snap, err := tx.Get(userRef)
		switch {
		case status.Code(err) == codes.NotFound:
		case err != nil:
			return err
		default:
			var existing m_user.User
			if err := snap.DataTo(&existing); err == nil && !existing.CreatedAt.IsZero() {
				createdAt = existing.CreatedAt
			}
		}

		users, err := tx.Documents(r.model.Users(province)).GetAll()
		if err != nil {
			return err
		}
		count := len(users)
		if snap == nil || !snap.Exists() {
			count++
		}

		if err := tx.Set(userRef, m_user.User{
			UID:           identity.UID,
			Email:         identity.Email,
			Province:      province,
			EmailVerified: identity.EmailVerified,
			CreatedAt:     createdAt,
		}); err != nil {
			return err
		}
		return tx.Set(provinceRef, map[string]interface{}{m_user.UserCount: count}, firestore.MergeAll)
	})
	if err != nil {
		return fmt.Errorf("failed to enroll user %s: %w", identity.UID, err)
	}
	return nil
}

func docExists(ctx context.Context, ref *firestore.DocumentRef) (bool, error) {
	_, err := ref.Get(ctx)
	if status.Code(err) == codes.NotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

package contracts

import (
	"context"
	"time"
)

// Identity is the authenticated caller as reported by the identity provider.
type Identity struct {
	UID           string
	Email         string
	EmailVerified bool
}

// UserDirectory answers province membership and administrator questions.
type UserDirectory interface {
	IsAdmin(ctx context.Context, uid string) (bool, error)
	IsMember(ctx context.Context, province, uid string) (bool, error)

	// Enroll registers the identity in the province and refreshes the
	// province's user count.
	Enroll(ctx context.Context, province string, identity Identity, now time.Time) error
}

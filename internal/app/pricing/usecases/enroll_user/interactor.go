package enroll_user

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/light-bringer/pricetracker/internal/app/pricing/contracts"
	"github.com/light-bringer/pricetracker/internal/app/pricing/domain"
	"github.com/light-bringer/pricetracker/internal/pkg/clock"
)

// Request registers the caller in a province.
type Request struct {
	Province string
	Identity contracts.Identity
}

// Interactor handles the enroll user use case.
type Interactor struct {
	users  contracts.UserDirectory
	clock  clock.Clock
	logger *zap.Logger
}

// NewInteractor creates a new enroll user interactor.
func NewInteractor(users contracts.UserDirectory, clock clock.Clock, logger *zap.Logger) *Interactor {
	return &Interactor{
		users:  users,
		clock:  clock,
		logger: logger,
	}
}

// Execute records the identity as a province member. Enrolling again
// refreshes the stored email and verification flag.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	if req.Identity.UID == "" {
		return domain.ErrUnauthenticated
	}
	province := domain.LookupProvince(req.Province).ID

	if err := i.users.Enroll(ctx, province, req.Identity, i.clock.Now()); err != nil {
		return fmt.Errorf("failed to enroll user: %w", err)
	}

	i.logger.Info("user enrolled", zap.String("province", province), zap.String("uid", req.Identity.UID))
	return nil
}

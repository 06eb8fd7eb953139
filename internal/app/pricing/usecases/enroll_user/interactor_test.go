package enroll_user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/pricetracker/internal/app/pricing/contracts"
	"github.com/light-bringer/pricetracker/internal/app/pricing/domain"
	"github.com/light-bringer/pricetracker/internal/app/pricing/pricingtest"
)

func TestEnrollUser(t *testing.T) {
	ctx := context.Background()
	env := pricingtest.NewEnv(t)
	interactor := NewInteractor(env.Store.Users(), env.Clock, env.Logger)

	require.NoError(t, interactor.Execute(ctx, &Request{Province: "quirino", Identity: contracts.Identity{UID: "uid-1", Email: "a@example.com"}}))
	env.Clock.Advance(time.Minute)
	require.NoError(t, interactor.Execute(ctx, &Request{Province: "quirino", Identity: contracts.Identity{UID: "uid-2", Email: "b@example.com", EmailVerified: true}}))
	require.NoError(t, interactor.Execute(ctx, &Request{Province: "quirino", Identity: contracts.Identity{UID: "uid-1", Email: "a@example.com", EmailVerified: true}}))

	assert.Equal(t, 2, env.Store.UserCount("quirino"))

	member, err := env.Store.Users().IsMember(ctx, "quirino", "uid-2")
	require.NoError(t, err)
	assert.True(t, member)

	member, err = env.Store.Users().IsMember(ctx, "isabela", "uid-2")
	require.NoError(t, err)
	assert.False(t, member)

	t.Run("province alias resolves", func(t *testing.T) {
		require.NoError(t, interactor.Execute(ctx, &Request{Province: "nueva", Identity: contracts.Identity{UID: "uid-3"}}))
		assert.Equal(t, 1, env.Store.UserCount("nueva_vizcaya"))
	})

	t.Run("anonymous caller", func(t *testing.T) {
		err := interactor.Execute(ctx, &Request{Province: "quirino"})
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})
}

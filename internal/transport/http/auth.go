package http

import (
	"context"
	"fmt"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/light-bringer/pricetracker/internal/app/pricing/contracts"
	"github.com/light-bringer/pricetracker/internal/app/pricing/domain"
)

// TokenVerifier verifies Firebase ID tokens. *auth.Client implements it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// DevIdentity is injected for every request when authentication is disabled.
var DevIdentity = contracts.Identity{
	UID:           "dev-user",
	Email:         "dev@localhost",
	EmailVerified: true,
}

// echo context keys
const (
	identityKey = "pricetracker.identity"
	provinceKey = "pricetracker.province"
)

// Authenticator resolves the caller from the bearer token.
type Authenticator struct {
	verifier TokenVerifier
	dev      *contracts.Identity
	logger   *zap.Logger
}

// NewAuthenticator verifies tokens with verifier.
func NewAuthenticator(verifier TokenVerifier, logger *zap.Logger) *Authenticator {
	return &Authenticator{verifier: verifier, logger: logger}
}

// NewDevAuthenticator accepts every request as identity.
func NewDevAuthenticator(identity contracts.Identity, logger *zap.Logger) *Authenticator {
	return &Authenticator{dev: &identity, logger: logger}
}

// Middleware rejects requests without a valid token and stores the identity.
func (a *Authenticator) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if a.dev != nil {
				c.Set(identityKey, *a.dev)
				return next(c)
			}

			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, "Bearer ") {
				return fmt.Errorf("missing bearer token: %w", domain.ErrUnauthenticated)
			}
			idToken := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			if idToken == "" {
				return fmt.Errorf("empty bearer token: %w", domain.ErrUnauthenticated)
			}

			token, err := a.verifier.VerifyIDToken(c.Request().Context(), idToken)
			if err != nil {
				a.logger.Debug("token rejected", zap.Error(err))
				return fmt.Errorf("invalid token: %w", domain.ErrUnauthenticated)
			}
			if strings.TrimSpace(token.UID) == "" {
				return fmt.Errorf("token has no uid: %w", domain.ErrUnauthenticated)
			}

			c.Set(identityKey, identityFromToken(token))
			return next(c)
		}
	}
}

func identityFromToken(token *auth.Token) contracts.Identity {
	id := contracts.Identity{UID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		id.Email = strings.TrimSpace(email)
	}
	if verified, ok := token.Claims["email_verified"].(bool); ok {
		id.EmailVerified = verified
	}
	return id
}

// ProvinceAccess normalises the :province parameter and admits administrators
// and enrolled members of that province.
func ProvinceAccess(users contracts.UserDirectory) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := identity(c)
			if !ok {
				return domain.ErrUnauthenticated
			}
			province := domain.LookupProvince(c.Param("province")).ID
			c.Set(provinceKey, province)

			ctx := c.Request().Context()
			admin, err := users.IsAdmin(ctx, id.UID)
			if err != nil {
				return fmt.Errorf("failed to check admin: %w", err)
			}
			if !admin {
				member, err := users.IsMember(ctx, province, id.UID)
				if err != nil {
					return fmt.Errorf("failed to check membership: %w", err)
				}
				if !member {
					return domain.ErrProvinceForbidden
				}
			}
			return next(c)
		}
	}
}

func identity(c echo.Context) (contracts.Identity, bool) {
	id, ok := c.Get(identityKey).(contracts.Identity)
	return id, ok
}

func identityUID(c echo.Context) string {
	id, _ := identity(c)
	return id.UID
}

// province returns the normalised province id of the request.
func province(c echo.Context) string {
	if p, ok := c.Get(provinceKey).(string); ok {
		return p
	}
	return domain.LookupProvince(c.Param("province")).ID
}

package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/light-bringer/pricetracker/internal/app/pricing/domain"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "limit must be an integer"), http.StatusBadRequest, "limit must be an integer"},
		{"echo error without message", echo.NewHTTPError(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge, "Request Entity Too Large"},
		{"wrapped not found", fmt.Errorf("load: %w", domain.ErrFileNotFound), http.StatusNotFound, "load: price file not found"},
		{"missing baseline", domain.ErrBaselineNotFound, http.StatusNotFound, "baseline data not found"},
		{"unauthenticated", domain.ErrUnauthenticated, http.StatusUnauthorized, "authentication required"},
		{"not owner", domain.ErrNotOwner, http.StatusForbidden, "only the uploader can modify this file"},
		{"province", domain.ErrProvinceForbidden, http.StatusForbidden, "no access to this province"},
		{"validation", domain.ErrMissingWeek, http.StatusBadRequest, "week is required for this province"},
		{"ledger", domain.ErrLedgerUnavailable, http.StatusServiceUnavailable, "audit ledger is not configured"},
		{"unknown", errors.New("spanner: deadline exceeded"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, msg := mapError(tt.err)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.message, msg)
		})
	}
}

func TestValidatorUsesJSONNames(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&StoreInput{})
	code, msg := mapError(err)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, msg, "name")
	assert.NotContains(t, msg, "StoreInput.Name")
}

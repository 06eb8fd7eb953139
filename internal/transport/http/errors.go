package http

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/light-bringer/pricetracker/internal/app/pricing/domain"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// NewErrorHandler returns the echo error handler. Domain errors map to their
// HTTP status; anything unrecognised is logged and reported as 500.
func NewErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := mapError(err)
		if code >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
				zap.Error(err),
			)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, ErrorResponse{Message: msg, Code: code})
	}
}

// mapError converts an error to a status code and a client-safe message.
func mapError(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if msg, ok := he.Message.(string); ok {
			return he.Code, msg
		}
		return he.Code, http.StatusText(he.Code)
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve.Error()
	}

	switch {
	case errors.Is(err, domain.ErrFileNotFound),
		errors.Is(err, domain.ErrBaselineNotFound),
		errors.Is(err, domain.ErrTemplateNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, err.Error()

	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, err.Error()

	case errors.Is(err, domain.ErrNotOwner),
		errors.Is(err, domain.ErrProvinceForbidden):
		return http.StatusForbidden, err.Error()

	case errors.Is(err, domain.ErrEmptyFileName),
		errors.Is(err, domain.ErrEmptyCommodity),
		errors.Is(err, domain.ErrEmptyCustomCommodity),
		errors.Is(err, domain.ErrMissingMonth),
		errors.Is(err, domain.ErrMissingWeek),
		errors.Is(err, domain.ErrInvalidMonth),
		errors.Is(err, domain.ErrInvalidWeek),
		errors.Is(err, domain.ErrNoCategories),
		errors.Is(err, domain.ErrNoPrices),
		errors.Is(err, domain.ErrStoreIndexOutOfRange),
		errors.Is(err, domain.ErrEmptyName),
		errors.Is(err, domain.ErrEmptyBaseline),
		errors.Is(err, domain.ErrInvalidComparisonSpan):
		return http.StatusBadRequest, err.Error()

	case errors.Is(err, domain.ErrLedgerUnavailable):
		return http.StatusServiceUnavailable, err.Error()

	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

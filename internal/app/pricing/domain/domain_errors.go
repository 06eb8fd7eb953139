package domain

import "errors"

// Domain errors as sentinel values
var (
	// Lookup errors
	ErrFileNotFound     = errors.New("price file not found")
	ErrBaselineNotFound = errors.New("baseline data not found")
	ErrTemplateNotFound = errors.New("no template found for commodity")
	ErrCategoryNotFound = errors.New("category not found")
	ErrProductNotFound  = errors.New("product not found")

	// Authorization errors
	ErrUnauthenticated   = errors.New("authentication required")
	ErrNotOwner          = errors.New("only the uploader can modify this file")
	ErrProvinceForbidden = errors.New("no access to this province")

	// Validation errors
	ErrEmptyFileName         = errors.New("file name is required")
	ErrEmptyCommodity        = errors.New("commodity is required")
	ErrEmptyCustomCommodity  = errors.New("custom commodity name is required")
	ErrMissingMonth          = errors.New("month is required")
	ErrMissingWeek           = errors.New("week is required for this province")
	ErrInvalidMonth          = errors.New("invalid month")
	ErrInvalidWeek           = errors.New("invalid week")
	ErrNoCategories          = errors.New("at least one category is required")
	ErrNoPrices              = errors.New("at least one price greater than zero is required")
	ErrStoreIndexOutOfRange  = errors.New("store index out of range")
	ErrEmptyName             = errors.New("name cannot be empty")
	ErrEmptyBaseline         = errors.New("baseline has no price data")
	ErrInvalidComparisonSpan = errors.New("year-over-year span must be 1 or 3 months")

	// Infrastructure errors
	ErrLedgerUnavailable = errors.New("audit ledger is not configured")
)

package apperrors

import "errors"

// Domain entity errors represent missing entities in the system.
var (
	// ErrHoldingNotFound indicates that no holding exists at the given row index.
	ErrHoldingNotFound = errors.New("holding not found")

	// ErrPriceNotFound indicates that the price feed has no data for a fund code.
	ErrPriceNotFound = errors.New("fund price not found")

	// ErrSheetTabNotFound indicates that the configured worksheet tab does not
	// exist in the spreadsheet.
	ErrSheetTabNotFound = errors.New("worksheet tab not found")
)

// Business logic errors represent validation failures or constraint violations.
var (
	// ErrInvalidRowIndex indicates that a row identifier is not a positive integer.
	ErrInvalidRowIndex = errors.New("invalid row index")

	// ErrMissingCredentials indicates that no Google service-account credential
	// was supplied via file or environment variable.
	ErrMissingCredentials = errors.New("google credentials not configured")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data.
var (
	ErrFailedToListHoldings  = errors.New("failed to list holdings")
	ErrFailedToAddHolding    = errors.New("failed to add holding")
	ErrFailedToDeleteHolding = errors.New("failed to delete holding")
	ErrFailedToFetchPrices   = errors.New("failed to fetch prices")
)

package apperrors

import "errors"

// Comparison pipeline errors describe why a comparison could not be produced.
// All of them surface to the caller as a single "please try again" message;
// the underlying detail is only logged.
var (
	// ErrEmptyResponse indicates the model call returned no usable text.
	ErrEmptyResponse = errors.New("no response from AI model")

	// ErrMalformedResponse indicates the model text could not be parsed as JSON
	// after code fences were stripped.
	ErrMalformedResponse = errors.New("failed to parse comparison data")

	// ErrInvalidComparison indicates the parsed JSON did not have the required shape
	// (e.g., missing market rate or platforms).
	ErrInvalidComparison = errors.New("invalid comparison data")

	// ErrTransport indicates a network or authentication failure calling the model.
	ErrTransport = errors.New("AI model request failed")

	// ErrTimeout indicates the model call did not finish within the configured timeout.
	ErrTimeout = errors.New("AI model request timed out")

	// ErrSuperseded indicates a newer comparison request from the same client
	// replaced this one before it completed.
	ErrSuperseded = errors.New("comparison superseded by a newer request")
)

// Affiliate and tracking errors.
var (
	// ErrInvalidToken indicates a click-through token was tampered with or has expired.
	ErrInvalidToken = errors.New("invalid or expired tracking token")

	// ErrInvalidRedirectURL indicates an affiliate URL that is not an absolute http(s) URL.
	ErrInvalidRedirectURL = errors.New("affiliate URL is not an absolute http(s) URL")

	// ErrCorruptRecord indicates a stored record could not be decoded.
	ErrCorruptRecord = errors.New("stored record is corrupt")
)

// Business logic errors represent validation failures.
var (
	// ErrMissingRequiredField indicates that a required field is missing or empty.
	ErrMissingRequiredField = errors.New("missing required field")

	// ErrInvalidCurrency indicates a currency code that is not three letters.
	ErrInvalidCurrency = errors.New("invalid currency code")

	// ErrInvalidAmount indicates a non-positive transfer amount.
	ErrInvalidAmount = errors.New("amount must be greater than zero")
)

// Operation failure errors are used as user-facing messages in handlers.
var (
	ErrFailedToGetComparison     = errors.New("Failed to get comparison data. Please try again.") //nolint:staticcheck // shown to end users verbatim
	ErrFailedToRetrieveLinks     = errors.New("failed to retrieve affiliate links")
	ErrFailedToSaveLink          = errors.New("failed to save affiliate link")
	ErrFailedToTrackClick        = errors.New("failed to track click")
	ErrFailedToRetrieveStats     = errors.New("failed to retrieve click statistics")
	ErrFailedToRetrieveDashboard = errors.New("failed to retrieve dashboard")
)

package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Field errors
	ErrMsgFieldNotFound  = "field not found"
	ErrMsgFieldArchived  = "field is already archived"
	ErrMsgFieldHasYield  = "field has recorded harvests"
	ErrMsgFieldNotActive = "field is not active"

	// Task errors
	ErrMsgTaskNotFound      = "task not found"
	ErrMsgTaskCompleted     = "task is already completed"
	ErrMsgInvalidTaskType   = "invalid task type"
	ErrMsgTaskDateRequired  = "task date is required"

	// Crop/catalog errors
	ErrMsgCropNotFound = "crop not found"
	ErrMsgEmptyCatalog = "crop catalog is empty"

	// Farmer errors
	ErrMsgFarmerNotFound = "farmer not found"

	// Weather errors
	ErrMsgWeatherUnavailable = "weather provider unavailable"

	// Validation errors
	ErrMsgInvalidInput = "invalid input"

	// Database/System errors
	ErrMsgDatabaseError = "database error"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Field errors
	ErrFieldNotFound = errors.New(ErrMsgFieldNotFound)
	// ErrFieldArchived is the InvalidTransition case: a lifecycle mutation was
	// attempted on a field that has already reached its terminal state.
	ErrFieldArchived = errors.New(ErrMsgFieldArchived)
	ErrFieldHasYield = errors.New(ErrMsgFieldHasYield)

	// Task errors
	ErrTaskNotFound  = errors.New(ErrMsgTaskNotFound)
	ErrTaskCompleted = errors.New(ErrMsgTaskCompleted)

	// Crop/catalog errors
	ErrCropNotFound = errors.New(ErrMsgCropNotFound)
	// ErrEmptyCatalog is not locally recoverable; it propagates to the caller
	// as a server error instead of producing an empty recommendation list.
	ErrEmptyCatalog = errors.New(ErrMsgEmptyCatalog)

	// Farmer errors
	ErrFarmerNotFound = errors.New(ErrMsgFarmerNotFound)

	// Weather errors
	// ErrWeatherUnavailable is recovered internally via the fallback snapshot;
	// it never fails a recommendation request on its own.
	ErrWeatherUnavailable = errors.New(ErrMsgWeatherUnavailable)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)

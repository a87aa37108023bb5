package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	ErrMsgMissingQueryParam = "Missing %s query parameter"

	// Field operation error messages
	ErrMsgCreateFieldFailed = "Failed to create field"
	ErrMsgUpdateFieldFailed = "Failed to update field"
	ErrMsgDeleteFieldFailed = "Failed to delete field"
	ErrMsgGetFieldFailed    = "Failed to get field"
	ErrMsgListFieldsFailed  = "Failed to list fields"

	// Task operation error messages
	ErrMsgCreateTaskFailed   = "Failed to create task"
	ErrMsgCompleteTaskFailed = "Failed to complete task"
	ErrMsgListTasksFailed    = "Failed to list tasks"

	// Recommendation error messages
	ErrMsgGetRecommendationsFailed = "Failed to get recommendations"
	ErrMsgSelectCropFailed         = "Failed to select crop"

	// Catalog error messages
	ErrMsgListCropsFailed     = "Failed to list crops"
	ErrMsgGetCropFailed       = "Failed to get crop"
	ErrMsgSetOversupplyFailed = "Failed to update oversupply flags"

	// Weather error messages
	ErrMsgGetWeatherFailed = "Failed to get weather"

	// Yield error messages
	ErrMsgGetYieldTrendFailed = "Failed to get yield trend"

	// Farmer error messages
	ErrMsgRegisterFarmerFailed = "Failed to register farmer"
	ErrMsgGetFarmerFailed      = "Failed to get farmer"
	ErrMsgCountFarmersFailed   = "Failed to count active farmers"
)

// Success messages for API responses
const (
	MsgFieldDeletedSuccess      = "Field deleted successfully"
	MsgOversupplyUpdatedSuccess = "Oversupply flags updated successfully"
)

package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Error Messages - Crop Operations
const (
	ErrMsgFailedToListCrops     = "failed to list crops"
	ErrMsgFailedToGetCrop       = "failed to get crop"
	ErrMsgFailedToScanCrop      = "failed to scan crop"
	ErrMsgFailedToUpsertCrop    = "failed to upsert crop"
	ErrMsgFailedToSetOversupply = "failed to set oversupply flags"
)

// Error Messages - Field Operations
const (
	ErrMsgFailedToInsertField    = "failed to insert field"
	ErrMsgFailedToUpdateField    = "failed to update field"
	ErrMsgFailedToDeleteField    = "failed to delete field"
	ErrMsgFailedToGetField       = "failed to get field"
	ErrMsgFailedToListFields     = "failed to list fields"
	ErrMsgFailedToScanField      = "failed to scan field"
	ErrMsgFailedToSaveSelection  = "failed to save crop selection"
	ErrMsgFailedToMarkPlanted    = "failed to mark field planted"
	ErrMsgFailedToArchiveField   = "failed to archive field"
	ErrMsgFailedToEncodeSnapshot = "failed to encode locked snapshot"
	ErrMsgFailedToDecodeSnapshot = "failed to decode locked snapshot"
)

// Error Messages - Task Operations
const (
	ErrMsgFailedToInsertTask   = "failed to insert task"
	ErrMsgFailedToGetTask      = "failed to get task"
	ErrMsgFailedToListTasks    = "failed to list tasks"
	ErrMsgFailedToScanTask     = "failed to scan task"
	ErrMsgFailedToCompleteTask = "failed to complete task"
	ErrMsgFailedToSumHarvests  = "failed to sum harvests"
	ErrMsgFailedToComputeTrend = "failed to compute yield trend"
)

// Error Messages - Farmer Operations
const (
	ErrMsgFailedToGetFarmer    = "failed to get farmer"
	ErrMsgFailedToUpsertFarmer = "failed to upsert farmer"
	ErrMsgFailedToTouchFarmer  = "failed to touch farmer activity"
	ErrMsgFailedToCountFarmers = "failed to count active farmers"
)

package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details for security reasons.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgInvalidSessionID      = "Invalid session ID"
	ErrMsgInvalidFormat         = "Invalid format '%s'. Valid options: json, csv"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"

	// Upload error messages
	ErrMsgMissingUploadFile = "Missing %s file"
	ErrMsgUploadTooLarge    = "Upload is too large"

	// Session operation error messages
	ErrMsgCreateSessionFailed = "Failed to create session"
	ErrMsgExportWinnersFailed = "Failed to export winners"
)

// Success messages for API responses
const (
	MsgSessionDeleted = "Session deleted"
)

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError       = "Something went wrong"
	ErrMsgUnknownError             = "Unknown error"
	ErrMsgInvalidRequestError      = "Invalid request. Please check your inputs."
	ErrMsgSessionNotFoundError     = "Session not found. It may have expired."
	ErrMsgGroupUnavailableError    = "That group has no prizes left to draw"
	ErrMsgNotEnoughPeopleError     = "Not enough participants left for every prize of this group"
	ErrMsgGroupInProgressError     = "Another group is being revealed. Finish it first"
	ErrMsgRandomUnavailableError   = "Could not draw a winner right now. Please try again."
	ErrMsgRequestTimeoutError      = "The request took too long. Please try again."
	ErrMsgInvalidDatasetErrorLabel = "Invalid dataset"
)

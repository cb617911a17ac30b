package errors

// Error codes for standardized error responses
const (
	// Validation errors
	ErrCodeInvalidRequest   = "invalid_request"
	ErrCodeInvalidProgress  = "invalid_progress"
	ErrCodeMethodNotAllowed = "method_not_allowed"

	// Server errors
	ErrCodeInternalError = "internal_error"
)

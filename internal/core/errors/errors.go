package errors

const (
	HttpInternalError         = "internal_error"
	HttpInvalidJsonError      = "invalid_json"
	HttpValidationError       = "validation_failed"
	HttpUnauthorizedError     = "unauthorized"
	HttpNotFoundError         = "not_found"
	HttpPayloadTooLargeError  = "payload_too_large"
	HttpInvalidQueryError     = "invalid_query"
	HttpUnavailableError      = "service_unavailable"
)

// ErrorResponse is the error response body shared by every handler.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}

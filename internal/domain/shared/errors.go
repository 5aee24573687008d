package shared

// DomainError is the error type every domain rule violation surfaces as.
// Code is a stable machine-readable identifier; the HTTP layer maps it to a
// status, the message goes to the client verbatim. Raw infrastructure errors
// never travel through this type.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a domain error with the given code and message.
// Aggregates construct most errors ad hoc with context-specific codes
// (INVALID_QUANTITY, EMPTY_ORDER, ...); the sentinels below cover the
// cross-cutting cases so callers can errors.Is against them.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// Sentinel errors shared across contexts. Comparison is by pointer
// identity, so repositories and services must return these exact values,
// not copies.
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)

package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON         = "INVALID_JSON"
	ErrCodeValidation          = "VALIDATION_FAILED"
	ErrCodeProductNotFound     = "PRODUCT_NOT_FOUND"
	ErrCodeMarketNotFound      = "MARKET_NOT_FOUND"
	ErrCodeSessionRequired     = "SESSION_REQUIRED"
	ErrCodeSessionNotFound     = "SESSION_NOT_FOUND"
	ErrCodeUnsupportedLanguage = "UNSUPPORTED_LANGUAGE"
	ErrCodeInvalidCredentials  = "INVALID_CREDENTIALS"
	ErrCodeRegistrationFailed  = "REGISTRATION_FAILED"
	ErrCodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	ErrCodeRequestCancelled    = "REQUEST_CANCELLED"
	ErrCodeUnauthorised        = "UNAUTHORIZED"
	ErrCodeInternalError       = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrProductNotFound     = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrMarketNotFound      = NewDomainError(ErrCodeMarketNotFound, "Market or product history not found")
	ErrSessionRequired     = NewDomainError(ErrCodeSessionRequired, "X-Session-ID header must carry a valid session ID")
	ErrSessionNotFound     = NewDomainError(ErrCodeSessionNotFound, "Session not found")
	ErrUnsupportedLanguage = NewDomainError(ErrCodeUnsupportedLanguage, "Language must be one of: en, kn")
	ErrUpstreamUnavailable = NewDomainError(ErrCodeUpstreamUnavailable, "Price service is currently unavailable")
)

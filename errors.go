package swingby

import (
	"errors"
	"fmt"
	"net/http"
)

// Common error values returned by clients and transports.
var (
	// ErrRateLimited indicates that the upstream API answered with HTTP 429.
	// Nothing in this module retries; the caller decides what to do.
	ErrRateLimited = errors.New("swingby: request rate limited")

	// ErrHTTPStatus indicates a response status outside [200,299] other than 429.
	ErrHTTPStatus = errors.New("swingby: unexpected HTTP status")

	// ErrDecode indicates that a successful response could not be decoded, or
	// that a decoded response lacked a field the client needs.
	ErrDecode = errors.New("swingby: failed to decode response")

	// ErrTransport indicates that the request never produced an HTTP response
	// (DNS failure, refused connection, reset, timeout).
	ErrTransport = errors.New("swingby: transport failure")

	// ErrTimeout indicates that a request hit its deadline. It is always
	// reported together with ErrTransport.
	ErrTimeout = errors.New("swingby: operation timed out")

	// ErrNotImplemented indicates an API operation the client knows about but
	// does not support yet.
	ErrNotImplemented = errors.New("swingby: method not implemented")

	// ErrInvalidInput indicates that arguments to a client method were invalid.
	ErrInvalidInput = errors.New("swingby: invalid input provided to method")

	// ErrInvalidAddress indicates a payout address that does not parse for the
	// target currency.
	ErrInvalidAddress = errors.New("swingby: invalid address format")
)

// rateLimitMessage is the message carried by errors for HTTP 429 responses.
const rateLimitMessage = "rate limit exception"

// APIError describes a non-2xx response from one of the Swingby APIs.
type APIError struct {
	// Method is the HTTP method of the failed request.
	Method string
	// Endpoint is the URL the request was sent to, without the query string.
	Endpoint string
	// StatusCode is the HTTP status code of the response.
	StatusCode int
	// Message is the upstream "message" field, the raw body, or "unknown".
	Message string
	// Body is the raw response body.
	Body []byte
	// UnderlyingErr is ErrRateLimited or ErrHTTPStatus.
	UnderlyingErr error
}

// NewAPIError builds the error for a response with the given status. A 429
// always yields a rate-limit error regardless of message.
func NewAPIError(
	method, endpoint string,
	statusCode int,
	message string,
	body []byte,
) *APIError {
	if statusCode == http.StatusTooManyRequests {
		return &APIError{
			Method:        method,
			Endpoint:      endpoint,
			StatusCode:    statusCode,
			Message:       rateLimitMessage,
			Body:          body,
			UnderlyingErr: ErrRateLimited,
		}
	}
	if message == "" {
		message = "unknown"
	}
	return &APIError{
		Method:        method,
		Endpoint:      endpoint,
		StatusCode:    statusCode,
		Message:       message,
		Body:          body,
		UnderlyingErr: ErrHTTPStatus,
	}
}

// Error implements the error interface for APIError.
func (e *APIError) Error() string {
	return fmt.Sprintf(
		"%s %s failed with status code %d - Err: %s",
		e.Method,
		e.Endpoint,
		e.StatusCode,
		e.Message,
	)
}

// Unwrap provides compatibility for errors.Is and errors.As.
func (e *APIError) Unwrap() error {
	return e.UnderlyingErr
}

// --- Helper functions for error checking ---

// IsRateLimited checks if an error is, or wraps, ErrRateLimited.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsHTTPStatus checks if an error is, or wraps, ErrHTTPStatus.
func IsHTTPStatus(err error) bool {
	return errors.Is(err, ErrHTTPStatus)
}

// IsDecode checks if an error is, or wraps, ErrDecode.
func IsDecode(err error) bool {
	return errors.Is(err, ErrDecode)
}

// IsTransport checks if an error is, or wraps, ErrTransport.
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

// IsTimeout checks if an error is, or wraps, ErrTimeout.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// StatusCode returns the HTTP status carried by err, or 0 when err does not
// wrap an *APIError.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

package graph

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error types for Microsoft Graph API responses.
var (
	// ErrUnauthorised indicates the access token is invalid or expired.
	ErrUnauthorised = errors.New("graph: unauthorised")

	// ErrForbidden indicates the application lacks permission for the requested resource.
	ErrForbidden = errors.New("graph: forbidden")

	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("graph: not found")

	// ErrGone indicates the requested resource is no longer available.
	ErrGone = errors.New("graph: gone")

	// ErrRateLimited indicates the request was throttled by Microsoft Graph.
	ErrRateLimited = errors.New("graph: rate limited")

	// ErrBadRequest indicates the request was malformed.
	ErrBadRequest = errors.New("graph: bad request")

	// ErrServerError indicates a server-side error from Microsoft Graph.
	ErrServerError = errors.New("graph: server error")
)

// CodeInvalidAuthToken is the OData error code Graph returns when the bearer
// token is expired or not yet valid. It is the only condition that triggers
// a token renewal and retry; other 401 codes (revoked consent, malformed
// token) are surfaced directly.
const CodeInvalidAuthToken = "InvalidAuthenticationToken"

// WrapError converts an HTTP status code to an appropriate error.
func WrapError(statusCode int) error {
	switch statusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorised
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusGone:
		return ErrGone
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusBadRequest:
		return ErrBadRequest
	default:
		if statusCode >= 500 {
			return ErrServerError
		}
		return nil
	}
}

// IsUnauthorised checks if the status code indicates an authentication failure.
func IsUnauthorised(statusCode int) bool {
	return statusCode == http.StatusUnauthorized
}

// IsRateLimited checks if the status code indicates rate limiting.
func IsRateLimited(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests
}

// IsNotFound checks if the status code indicates a missing resource.
func IsNotFound(statusCode int) bool {
	return statusCode == http.StatusNotFound
}

// IsRetryable checks if the error is potentially transient and can be retried.
func IsRetryable(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests ||
		statusCode == http.StatusServiceUnavailable ||
		statusCode == http.StatusGatewayTimeout
}

// APIError is a failed Microsoft Graph response. It carries the OData error
// code and message from the response body alongside the HTTP status, so
// callers can tell an expired token apart from a missing permission.
type APIError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int
	// Code is the OData error code, e.g. "itemNotFound" or "accessDenied".
	Code string
	// Message is the human-readable error message from Graph.
	Message string
	// RequestID is the client-request-id the failed request was sent with.
	RequestID string
}

// odataError mirrors the Graph error body {"error":{"code":...,"message":...}}.
type odataError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ParseAPIError builds an APIError from a non-2xx Graph response body.
// Malformed or empty bodies yield an APIError with an empty code rather
// than a decode failure; the HTTP status remains the primary signal.
func ParseAPIError(statusCode int, body []byte, requestID string) *APIError {
	apiErr := &APIError{StatusCode: statusCode, RequestID: requestID}

	var payload odataError
	if err := json.Unmarshal(body, &payload); err == nil {
		apiErr.Code = payload.Error.Code
		apiErr.Message = payload.Error.Message
	}

	return apiErr
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("graph: status %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("graph: status %d", e.StatusCode)
}

// Unwrap maps the status code onto the package sentinel errors so callers
// can use errors.Is.
func (e *APIError) Unwrap() error {
	return WrapError(e.StatusCode)
}

// IsTokenExpired reports whether Graph rejected an expired or not-yet-valid
// access token. Other authorisation failures keep their own codes and must
// not trigger a retry.
func (e *APIError) IsTokenExpired() bool {
	return e.Code == CodeInvalidAuthToken
}

// AuthError is a failure from the token endpoint. It carries the OAuth2
// error code and description returned by the Microsoft identity platform so
// that misconfiguration (wrong tenant, bad secret, missing consent) is
// diagnosable from the error alone.
type AuthError struct {
	// StatusCode is the HTTP status of the token response.
	StatusCode int
	// Code is the OAuth2 error code, e.g. "invalid_client".
	Code string
	// Description is the provider's error description, typically including
	// an AADSTS diagnostic code.
	Description string
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("graph: token request failed with status %d: %s: %s",
			e.StatusCode, e.Code, e.Description)
	}
	return fmt.Sprintf("graph: token request failed with status %d", e.StatusCode)
}

package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrPermissionDenied is returned when the actor's role does not allow the operation.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrBeneficiaryNotFound is returned when a beneficiary is not found.
	ErrBeneficiaryNotFound = errors.New("beneficiary not found")
	// ErrFlowNotFound is returned when a funding flow entry is not found.
	ErrFlowNotFound = errors.New("funding flow not found")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidAmount is returned when a funding amount is missing or non-positive.
	ErrInvalidAmount = errors.New("funding amount must be a positive number")
	// ErrInvalidInput is returned when a request carries missing or malformed fields.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidState is returned when a funding transition precondition is violated,
	// e.g. approving a request that is not pending.
	ErrInvalidState = errors.New("only pending requests can be decided")
	// ErrUserAlreadyExists is returned when registering a duplicate username.
	ErrUserAlreadyExists = errors.New("username already exists")
	// ErrInvalidCredentials is returned when username or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUserInactive is returned when a deactivated user attempts to log in.
	ErrUserInactive = errors.New("user account is deactivated")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Store failures fall
// through to 500; the workflow rolls them back before they surface here.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrPermissionDenied):
		return NewHTTPError(http.StatusForbidden, err.Error(), "PERMISSION_DENIED")
	case errors.Is(err, ErrBeneficiaryNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "BENEFICIARY_NOT_FOUND")
	case errors.Is(err, ErrFlowNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "FLOW_NOT_FOUND")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrInvalidAmount):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_AMOUNT")
	case errors.Is(err, ErrInvalidInput):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_INPUT")
	case errors.Is(err, ErrInvalidState):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_STATE")
	case errors.Is(err, ErrUserAlreadyExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "USER_ALREADY_EXISTS")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrUserInactive):
		return NewHTTPError(http.StatusForbidden, err.Error(), "USER_INACTIVE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}

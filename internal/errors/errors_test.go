package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{ErrPermissionDenied, http.StatusForbidden, "PERMISSION_DENIED"},
		{ErrBeneficiaryNotFound, http.StatusNotFound, "BENEFICIARY_NOT_FOUND"},
		{ErrFlowNotFound, http.StatusNotFound, "FLOW_NOT_FOUND"},
		{ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
		{ErrInvalidAmount, http.StatusBadRequest, "INVALID_AMOUNT"},
		{ErrInvalidInput, http.StatusBadRequest, "INVALID_INPUT"},
		{ErrInvalidState, http.StatusBadRequest, "INVALID_STATE"},
		{ErrUserAlreadyExists, http.StatusConflict, "USER_ALREADY_EXISTS"},
		{ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{ErrUserInactive, http.StatusForbidden, "USER_INACTIVE"},
	}

	for _, tt := range tests {
		t.Run(tt.expectedCode, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.expectedStatus, httpErr.StatusCode)
			assert.Equal(t, tt.expectedCode, httpErr.Code)
			assert.Equal(t, tt.err.Error(), httpErr.Message)
		})
	}
}

func TestMapErrorToHTTP_WrappedError(t *testing.T) {
	wrapped := fmt.Errorf("decide request: %w", ErrInvalidState)
	httpErr := MapErrorToHTTP(wrapped)
	assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
	assert.Equal(t, "INVALID_STATE", httpErr.Code)
}

func TestMapErrorToHTTP_UnknownError(t *testing.T) {
	httpErr := MapErrorToHTTP(fmt.Errorf("disk on fire"))
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	assert.Equal(t, "INTERNAL_ERROR", httpErr.Code)
	// Internals are not leaked to clients.
	assert.Equal(t, "internal server error", httpErr.Message)
}

func TestHTTPErrorToErrorResponse(t *testing.T) {
	resp := NewHTTPError(http.StatusForbidden, "permission denied", "PERMISSION_DENIED").ToErrorResponse()
	assert.Equal(t, "permission denied", resp.Error)
	assert.Equal(t, "PERMISSION_DENIED", resp.Code)
}

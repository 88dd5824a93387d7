package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{"not found", ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"forbidden", ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"wrapped forbidden", fmt.Errorf("only tutors: %w", ErrForbidden), http.StatusForbidden, "FORBIDDEN"},
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"rate limited", ErrRateLimited, http.StatusTooManyRequests, "RATE_LIMITED"},
		{"conflict", ErrConflict, http.StatusConflict, "CONFLICT"},
		{"email taken", ErrEmailTaken, http.StatusConflict, "EMAIL_TAKEN"},
		{"unknown error", fmt.Errorf("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.expectedStatus, httpErr.StatusCode)
			assert.Equal(t, tt.expectedCode, httpErr.Code)
		})
	}
}

func TestMapErrorToHTTP_ValidationCarriesField(t *testing.T) {
	httpErr := MapErrorToHTTP(NewValidation("duration_minutes", "must be greater than zero"))

	assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", httpErr.Code)
	assert.Equal(t, "duration_minutes", httpErr.Field)

	resp := httpErr.ToErrorResponse()
	assert.Equal(t, "duration_minutes", resp.Field)
}

func TestValidationError_Error(t *testing.T) {
	assert.Equal(t, "status: must be 'approved' or 'rejected'", NewValidation("status", "must be 'approved' or 'rejected'").Error())
	assert.Equal(t, "bad input", NewValidation("", "bad input").Error())
}

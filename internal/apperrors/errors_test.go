package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_MatchesSentinelForCode(t *testing.T) {
	cause := errors.New("connection reset")

	err := NewAppError(http.StatusInternalServerError, "failed to insert transaction", cause)

	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "failed to insert transaction: connection reset", err.Error())
}

func TestAppError_WrappedStillMatches(t *testing.T) {
	err := fmt.Errorf("approve request r-1: %w", Internal("failed to lock account", nil))

	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, "approve request r-1: failed to lock account", err.Error())
}

func TestAppError_CodeMapping(t *testing.T) {
	tests := []struct {
		code int
		want error
	}{
		{http.StatusBadRequest, ErrValidation},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusConflict, ErrDuplicate},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusServiceUnavailable, ErrInternal},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.code), func(t *testing.T) {
			assert.ErrorIs(t, NewAppError(tt.code, "x", nil), tt.want)
		})
	}
}

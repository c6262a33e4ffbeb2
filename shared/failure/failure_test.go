package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"seatmap/shared/failure"

	"github.com/stretchr/testify/assert"
)

func TestFailureCodes(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{
			name:     "bad request",
			err:      failure.BadRequestFromString("width must be positive"),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unauthorized",
			err:      failure.Unauthorized("missing authorization header"),
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "not found",
			err:      failure.NotFound("seat not found"),
			wantCode: http.StatusNotFound,
		},
		{
			name:     "conflict",
			err:      failure.Conflict("friend request already exists"),
			wantCode: http.StatusConflict,
		},
		{
			name:     "forbidden",
			err:      failure.Forbidden("only the addressee may accept"),
			wantCode: http.StatusForbidden,
		},
		{
			name:     "plain error maps to internal",
			err:      errors.New("boom"),
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, failure.GetCode(tt.err))
		})
	}
}

func TestGetCodeUnwrapsWrappedFailure(t *testing.T) {
	wrapped := fmt.Errorf("editing seat: %w", failure.NotFound("seat not found"))

	assert.Equal(t, http.StatusNotFound, failure.GetCode(wrapped))
}

func TestBadRequestNilError(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
}

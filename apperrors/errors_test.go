package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"app error", NotFound("place", "abc"), http.StatusNotFound},
		{"quota", QuotaExceeded(10), http.StatusTooManyRequests},
		{"wrapped quota sentinel", fmt.Errorf("select: %w", ErrQuotaExceeded), http.StatusTooManyRequests},
		{"invalid input sentinel", ErrInvalidInput, http.StatusBadRequest},
		{"provider failure", fmt.Errorf("autocomplete: %w", ErrProviderFailure), http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestQuotaExceeded_Message(t *testing.T) {
	err := QuotaExceeded(10)

	assert.True(t, errors.Is(err, ErrQuotaExceeded))
	assert.Equal(t, "Daily limit reached (10 searches). Please try again tomorrow.", err.Message)
}

func TestAppError_ErrorString(t *testing.T) {
	assert.Equal(t, "INVALID_INPUT: query is required: invalid input", InvalidInput("query is required").Error())
	assert.Equal(t, "X: y", (&AppError{Code: "X", Message: "y"}).Error())
}

package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIError_Error(t *testing.T) {
	err := NewAPIError(ErrInvalidInput, "Malformed request body", "unexpected EOF", "req-123")

	assert.Equal(t, "INVALID_INPUT: Malformed request body", err.Error())
	assert.Equal(t, "unexpected EOF", err.Details)
	assert.Equal(t, "req-123", err.RequestID)
	assert.False(t, err.Timestamp.IsZero())
}

func TestErrNotFound_Wrapping(t *testing.T) {
	wrapped := fmt.Errorf("snapshot abc: %w", ErrNotFound)

	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.False(t, errors.Is(errors.New("other"), ErrNotFound))
}

package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrNetwork", ErrNetwork},
		{"ErrRemote", ErrRemote},
		{"ErrStorage", ErrStorage},
		{"ErrSyncInProgress", ErrSyncInProgress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// TestErrors_Distinct tests that sentinels do not match each other
func TestErrors_Distinct(t *testing.T) {
	assert.False(t, errors.Is(ErrNetwork, ErrRemote))
	assert.False(t, errors.Is(ErrStorage, ErrNetwork))
	assert.False(t, errors.Is(ErrNotFound, ErrStorage))
}

// TestErrors_Wrapping tests errors.Is through fmt.Errorf wrapping
func TestErrors_Wrapping(t *testing.T) {
	wrapped := fmt.Errorf("saving catalog: %w", ErrStorage)
	assert.True(t, errors.Is(wrapped, ErrStorage))
	assert.False(t, errors.Is(wrapped, ErrRemote))
}

package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapKeepsSentinel(t *testing.T) {
	err := Wrap(ErrNotFound, "post not found")
	assert.True(t, IsNotFound(err))
	assert.Equal(t, "post not found: not found", err.Error())
}

func TestWrapNilIsNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, "whatever"))
}

func TestAsQuotaExceededThroughWrapping(t *testing.T) {
	inner := &QuotaExceededError{Limit: 10, Remaining: 0}
	err := fmt.Errorf("creating post: %w", inner)

	qe, ok := AsQuotaExceeded(err)
	require.True(t, ok)
	assert.Equal(t, 10, qe.Limit)
}

func TestAsQuotaExceededOnOtherError(t *testing.T) {
	_, ok := AsQuotaExceeded(ErrConflict)
	assert.False(t, ok)
}

package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesKind(t *testing.T) {
	err := NotFound("submission %d not found", 3)
	assert.EqualError(t, err, "submission 3 not found")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrForbidden)

	wrapped := fmt.Errorf("load: %w", InvalidState("submission not in progress"))
	assert.ErrorIs(t, wrapped, ErrInvalidState)
	assert.Equal(t, KindInvalidState, KindOf(wrapped))
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.Equal(t, "internal", KindOf(errors.New("boom")).String())
	assert.Equal(t, "unavailable", ErrUnavailable.Error())
}

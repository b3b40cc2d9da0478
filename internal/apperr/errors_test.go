package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidation(t *testing.T) {
	err := Validation("room %s is full", "A-101")
	assert.EqualError(t, err, "room A-101 is full")
	assert.True(t, IsValidation(err))
	assert.False(t, IsRetryable(err))
	assert.False(t, IsNotFound(err))
}

func TestNotFound(t *testing.T) {
	err := NotFound("resident")
	assert.EqualError(t, err, "resident not found")
	assert.True(t, IsNotFound(err))
	assert.False(t, IsValidation(err))
	assert.False(t, IsRetryable(err))
}

func TestTransient(t *testing.T) {
	cause := errors.New("deadlock found when trying to get lock")
	err := Transient(cause)
	assert.True(t, IsRetryable(err))
	assert.ErrorIs(t, err, cause)

	assert.Nil(t, Transient(nil))
}

func TestIsRetryableThroughWrapping(t *testing.T) {
	err := fmt.Errorf("commit: %w", Transient(errors.New("lock wait timeout")))
	assert.True(t, IsRetryable(err), "the marker must survive fmt.Errorf wrapping")

	assert.False(t, IsRetryable(errors.New("plain failure")))
	assert.False(t, IsRetryable(nil))
}

func TestClassificationsThroughWrapping(t *testing.T) {
	assert.True(t, IsValidation(fmt.Errorf("submit: %w", Validation("bad input"))))
	assert.True(t, IsNotFound(fmt.Errorf("lookup: %w", NotFound("room"))))
}

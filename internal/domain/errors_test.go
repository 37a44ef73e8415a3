package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKindsMatchByIs(t *testing.T) {
	err := Validationf("reason must be at least %d characters", MinReasonLen)
	assert.ErrorIs(t, err, ErrValidation)
	assert.NotErrorIs(t, err, ErrInsufficient)
	assert.Equal(t, "reason must be at least 10 characters", err.Error())
}

func TestStoreErrWrapsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := StoreErr(cause)
	assert.ErrorIs(t, err, ErrStore)
	assert.ErrorIs(t, err, cause)
}

func TestErrorsSurviveWrapping(t *testing.T) {
	err := fmt.Errorf("deciding request: %w", ErrAlreadyProcessed)
	assert.ErrorIs(t, err, ErrAlreadyProcessed)
}

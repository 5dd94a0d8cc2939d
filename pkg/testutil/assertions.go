package testutil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/creditrisk/internal/domain/model"
)

// RequireInvalidField fails the test unless err is an input rejection for
// field.
func RequireInvalidField(t *testing.T, err error, field string) {
	t.Helper()
	require.Error(t, err)
	require.ErrorIs(t, err, model.ErrInvalidInput)

	var fieldErr *model.FieldError
	require.True(t, errors.As(err, &fieldErr), "expected *model.FieldError, got %T: %v", err, err)
	assert.Equal(t, field, fieldErr.Field)
}

// RequireParameterLoadError fails the test unless err is a parameter load
// failure whose message mentions expected.
func RequireParameterLoadError(t *testing.T, err error, expected string) {
	t.Helper()
	require.Error(t, err)
	require.ErrorIs(t, err, model.ErrParameterLoad)
	assert.Contains(t, err.Error(), expected)
}

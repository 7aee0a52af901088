package engines

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnsupportedBackendErrorMessage(t *testing.T) {
	err := NewUnsupportedBackendError("beta", []string{"alpha", "mysql"})
	assert.Contains(t, err.Error(), `"beta"`)
	assert.Contains(t, err.Error(), "alpha, mysql")

	empty := NewUnsupportedBackendError("beta", nil)
	assert.Contains(t, empty.Error(), "no strategies registered")
}

func TestErrorKindMatching(t *testing.T) {
	cause := errors.New("boom")
	cases := []struct {
		err      error
		sentinel error
		check    func(error) bool
	}{
		{NewInvalidArgumentError("empty id"), ErrInvalidArgument, IsInvalidArgument},
		{NewUnsupportedBackendError("x", nil), ErrUnsupportedBackend, IsUnsupportedBackend},
		{NewCredentialError("conn1", cause), ErrCredentialResolution, IsCredentialError},
		{NewConstructionError("postgres", "conn1", cause), ErrHandleConstruction, IsConstructionError},
		{NewValidationError("postgres", "conn1", cause), ErrValidation, IsValidationError},
	}

	for _, tc := range cases {
		assert.ErrorIs(t, tc.err, tc.sentinel)
		assert.True(t, tc.check(tc.err))

		// Kinds stay distinguishable after another layer of wrapping.
		wrapped := fmt.Errorf("outer: %w", tc.err)
		assert.ErrorIs(t, wrapped, tc.sentinel)
		assert.True(t, tc.check(wrapped))
	}
}

func TestErrorKindsAreDisjoint(t *testing.T) {
	err := NewValidationError("postgres", "conn1", errors.New("probe failed"))
	assert.False(t, IsInvalidArgument(err))
	assert.False(t, IsUnsupportedBackend(err))
	assert.False(t, IsCredentialError(err))
	assert.False(t, IsConstructionError(err))
}

func TestErrorsCarryCause(t *testing.T) {
	cause := errors.New("tcp reset")

	var ce *ConstructionError
	require.ErrorAs(t, NewConstructionError("mysql", "conn1", cause), &ce)
	assert.Equal(t, "mysql", ce.Backend)
	assert.Equal(t, "conn1", ce.ID)
	assert.ErrorIs(t, ce, cause)

	var ve *ValidationError
	require.ErrorAs(t, NewValidationError("redis", "conn2", cause), &ve)
	assert.Equal(t, "conn2", ve.ID)
	assert.Equal(t, cause, errors.Unwrap(ve))
}

package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInternalWrapsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Internal("Error fetching users", cause)

	assert.Equal(t, "Error fetching users", err.Error())
	require.ErrorIs(t, err, cause)
}

func TestClientMessageDoesNotLeakCause(t *testing.T) {
	cause := errors.New("mongo: topology closed")
	err := Internal("Error fetching user", cause)

	assert.NotContains(t, err.Error(), "mongo")
}

func TestExtensionsCarryCode(t *testing.T) {
	assert.Equal(t, map[string]interface{}{"code": "UNAUTHENTICATED"},
		Unauthenticated("You must be logged in to access this").Extensions())
	assert.Equal(t, map[string]interface{}{"code": "BAD_USER_INPUT"},
		InvalidInput("All fields are required").Extensions())
}

func TestIsKind(t *testing.T) {
	err := fmt.Errorf("resolver: %w", Conflict("A user with this email already exists"))

	assert.True(t, IsKind(err, KindConflict))
	assert.False(t, IsKind(err, KindInternal))
	assert.False(t, IsKind(errors.New("plain"), KindConflict))
}

func TestInvalidCredentialsMessageIsFixed(t *testing.T) {
	assert.Equal(t, InvalidCredentials().Error(), InvalidCredentials().Error())
}

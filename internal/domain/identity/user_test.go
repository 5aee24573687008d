package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates active customer with normalized email", func(t *testing.T) {
		u, err := NewUser("  Greta@Example.COM ", "$2a$10$hash", "Greta", RoleCustomer)

		require.NoError(t, err)
		assert.Equal(t, "greta@example.com", u.Email)
		assert.True(t, u.Active)
		assert.False(t, u.IsAdmin())
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		_, err := NewUser("not-an-email", "$2a$10$hash", "Greta", RoleCustomer)
		require.Error(t, err)
	})

	t.Run("rejects empty password hash", func(t *testing.T) {
		_, err := NewUser("greta@example.com", "", "Greta", RoleCustomer)
		require.Error(t, err)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		_, err := NewUser("greta@example.com", "$2a$10$hash", "Greta", Role("root"))
		require.Error(t, err)
	})
}

func TestUser_Mutations(t *testing.T) {
	u, err := NewUser("greta@example.com", "$2a$10$hash", "Greta", RoleAdmin)
	require.NoError(t, err)

	t.Run("admin role", func(t *testing.T) {
		assert.True(t, u.IsAdmin())
	})

	t.Run("record login stamps time", func(t *testing.T) {
		u.RecordLogin()
		require.NotNil(t, u.LastLoginAt)
	})

	t.Run("change password", func(t *testing.T) {
		require.NoError(t, u.ChangePassword("$2a$10$other"))
		assert.Equal(t, "$2a$10$other", u.PasswordHash)
		assert.Error(t, u.ChangePassword(""))
	})

	t.Run("deactivate", func(t *testing.T) {
		u.Deactivate()
		assert.False(t, u.Active)
	})
}

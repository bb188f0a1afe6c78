package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	tenantID := uuid.New()

	user, err := NewUser(tenantID, "  Amina ", "correct-horse", RoleStaff)

	require.NoError(t, err)
	assert.Equal(t, "amina", user.Username)
	assert.Equal(t, RoleStaff, user.Role)
	assert.Equal(t, UserStatusActive, user.Status)
	assert.NotEqual(t, "correct-horse", user.PasswordHash)
	assert.True(t, user.VerifyPassword("correct-horse"))
	assert.False(t, user.VerifyPassword("wrong"))
}

func TestNewUser_Validation(t *testing.T) {
	tenantID := uuid.New()

	_, err := NewUser(tenantID, "ab", "password123", RoleStaff)
	assert.Error(t, err, "short username")

	_, err = NewUser(tenantID, "amina", "short", RoleStaff)
	assert.Error(t, err, "short password")

	_, err = NewUser(tenantID, "amina", "password123", UserRole("manager"))
	assert.Error(t, err, "unknown role")

	_, err = NewUser(uuid.Nil, "amina", "password123", RoleStaff)
	assert.Error(t, err, "staff without a shop")
}

func TestNewUser_AdminWithoutTenant(t *testing.T) {
	user, err := NewUser(uuid.Nil, "platform-ops", "password123", RoleAdmin)

	require.NoError(t, err)
	assert.True(t, user.IsAdmin())
	assert.Equal(t, uuid.Nil, user.TenantID)
}

func TestUser_ChangePassword(t *testing.T) {
	user, err := NewUser(uuid.New(), "amina", "password123", RoleOwner)
	require.NoError(t, err)

	assert.Error(t, user.ChangePassword("wrong-old", "newpassword1"))
	assert.True(t, user.VerifyPassword("password123"))

	require.NoError(t, user.ChangePassword("password123", "newpassword1"))
	assert.True(t, user.VerifyPassword("newpassword1"))
	assert.False(t, user.VerifyPassword("password123"))
}

func TestUser_DisableEnable(t *testing.T) {
	user, err := NewUser(uuid.New(), "amina", "password123", RoleStaff)
	require.NoError(t, err)

	user.Disable()
	assert.False(t, user.IsActive())

	user.Enable()
	assert.True(t, user.IsActive())
}

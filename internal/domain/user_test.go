package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_HasRole(t *testing.T) {
	owner := &User{Role: "owner"}
	analyst := &User{Role: "analyst"}
	admin := &User{Role: "admin"}

	assert.True(t, owner.HasRole("owner"))
	assert.False(t, owner.HasRole("analyst"))
	assert.False(t, owner.HasRole("admin"))

	assert.True(t, analyst.HasRole("owner"))
	assert.True(t, analyst.HasRole("analyst"))
	assert.False(t, analyst.HasRole("admin"))

	assert.True(t, admin.HasRole("owner"))
	assert.True(t, admin.HasRole("analyst"))
	assert.True(t, admin.HasRole("admin"))

	assert.False(t, admin.HasRole("superuser"))
}

func TestUserRole_IsValid(t *testing.T) {
	assert.True(t, RoleOwner.IsValid())
	assert.True(t, RoleAnalyst.IsValid())
	assert.True(t, RoleAdmin.IsValid())
	assert.False(t, UserRole("editor").IsValid())
}

package service

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkerrobotics/luckydraw-admin/internal/model"
	"github.com/inkerrobotics/luckydraw-admin/pkg/apperr"
)

func userWithRole(role *model.CustomRole) *model.User {
	return &model.User{Role: model.RoleUser, CustomRole: role}
}

func TestEvaluatePermissionAdminAlwaysAllowed(t *testing.T) {
	admin := &model.User{Role: model.RoleAdmin}
	assert.True(t, EvaluatePermission(admin, "Tenants", ActionDelete))
	assert.True(t, EvaluatePermission(admin, "NoSuchModule", ActionView))
}

func TestEvaluatePermissionNoRole(t *testing.T) {
	assert.False(t, EvaluatePermission(userWithRole(nil), "Tenants", ActionView))
}

func TestEvaluatePermissionInactiveRole(t *testing.T) {
	role := &model.CustomRole{
		IsActive: false,
		Permissions: []model.RolePermission{
			{Module: "Tenants", CanView: true},
		},
	}
	assert.False(t, EvaluatePermission(userWithRole(role), "Tenants", ActionView))
}

func TestEvaluatePermissionModuleFlags(t *testing.T) {
	role := &model.CustomRole{
		IsActive: true,
		Permissions: []model.RolePermission{
			{Module: "Tenants", CanView: true, CanEdit: true},
			{Module: "Users", CanView: true},
		},
	}
	user := userWithRole(role)

	tests := []struct {
		module string
		action string
		want   bool
	}{
		{"Tenants", ActionView, true},
		{"Tenants", ActionEdit, true},
		{"Tenants", ActionCreate, false},
		{"Tenants", ActionDelete, false},
		{"Users", ActionView, true},
		{"Users", ActionEdit, false},
		{"Settings", ActionView, false}, // no row for the module
		{"Tenants", "unknown", false},
	}

	for _, tt := range tests {
		got := EvaluatePermission(user, tt.module, tt.action)
		assert.Equal(t, tt.want, got, "%s/%s", tt.module, tt.action)
	}
}

func TestDeleteRoleBlockedByAssignedUsers(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoleService(db, NewActivityService(db))

	role, err := svc.Create("Support", "support staff", []PermissionInput{
		{Module: "Tenants", CanView: true},
	}, 1)
	require.NoError(t, err)

	user := model.User{Name: "Agent", Email: "agent@example.com", Role: model.RoleUser, CustomRoleID: &role.ID}
	require.NoError(t, db.Create(&user).Error)

	err = svc.Delete(role.ID, false, 1)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
	assert.Contains(t, err.Error(), "1 user(s)")

	// the refused delete left the role in place
	_, err = svc.Get(role.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(role.ID, true, 1))

	_, err = svc.Get(role.ID)
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(err))

	var remaining int64
	require.NoError(t, db.Model(&model.User{}).Where("custom_role_id = ?", role.ID).Count(&remaining).Error)
	assert.Zero(t, remaining)
}

func TestDeleteRoleWithoutUsers(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoleService(db, NewActivityService(db))

	role, err := svc.Create("Auditor", "read only", []PermissionInput{
		{Module: "ActivityLogs", CanView: true},
	}, 1)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(role.ID, false, 1))

	_, err = svc.Get(role.ID)
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(err))
}

package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sesa/portal/internal/app/models"
)

type roleReaderStub struct {
	roles map[int64][]models.AppRole
}

func (s *roleReaderStub) GetRolesByUserID(ctx context.Context, userID int64) ([]models.AppRole, error) {
	return s.roles[userID], nil
}

func (s *roleReaderStub) HasAnyRole(ctx context.Context, userID int64, wanted []models.AppRole) (bool, error) {
	for _, held := range s.roles[userID] {
		for _, want := range wanted {
			if held == want {
				return true, nil
			}
		}
	}
	return false, nil
}

func TestIsAdmin(t *testing.T) {
	tests := []struct {
		name  string
		roles []models.AppRole
		want  bool
	}{
		{name: "no roles", roles: nil, want: false},
		{name: "student only", roles: []models.AppRole{models.RoleStudent}, want: false},
		{name: "super admin", roles: []models.AppRole{models.RoleSuperAdmin}, want: true},
		{name: "department admin", roles: []models.AppRole{models.RoleDepartmentAdmin}, want: true},
		{name: "editor", roles: []models.AppRole{models.RoleEditor}, want: true},
		{name: "lecturer", roles: []models.AppRole{models.RoleLecturer}, want: true},
		{name: "student plus editor", roles: []models.AppRole{models.RoleStudent, models.RoleEditor}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authorizer := NewAuthorizer(&roleReaderStub{roles: map[int64][]models.AppRole{1: tt.roles}})

			isAdmin, err := authorizer.IsAdmin(context.Background(), 1)
			require.NoError(t, err)
			assert.Equal(t, tt.want, isAdmin)
		})
	}
}

func TestHasRole(t *testing.T) {
	authorizer := NewAuthorizer(&roleReaderStub{roles: map[int64][]models.AppRole{
		1: {models.RoleStudent, models.RoleEditor},
	}})

	hasRole, err := authorizer.HasRole(context.Background(), 1, models.RoleEditor)
	require.NoError(t, err)
	assert.True(t, hasRole)

	hasRole, err = authorizer.HasRole(context.Background(), 1, models.RoleSuperAdmin)
	require.NoError(t, err)
	assert.False(t, hasRole)
}

func TestRolesOf(t *testing.T) {
	authorizer := NewAuthorizer(&roleReaderStub{roles: map[int64][]models.AppRole{
		1: {models.RoleStudent},
	}})

	roles, err := authorizer.RolesOf(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []models.AppRole{models.RoleStudent}, roles)

	roles, err = authorizer.RolesOf(context.Background(), 2)
	require.NoError(t, err)
	assert.Empty(t, roles)
}

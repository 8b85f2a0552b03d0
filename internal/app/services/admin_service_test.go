package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sesa/portal/internal/app/models"
	"github.com/sesa/portal/internal/pkg/apperrors"
)

type adminUserStoreStub struct {
	users      map[int64]*models.User
	listed     []models.User
	total      int64
	setActive  []int64
	lastActive bool
	count      int64
}

func newAdminUserStoreStub(users ...*models.User) *adminUserStoreStub {
	s := &adminUserStoreStub{users: make(map[int64]*models.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *adminUserStoreStub) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (s *adminUserStoreStub) GetAllPaginated(ctx context.Context, page, pageSize int) ([]models.User, int64, error) {
	return s.listed, s.total, nil
}

func (s *adminUserStoreStub) SetActive(ctx context.Context, id int64, isActive bool) error {
	if _, ok := s.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	s.setActive = append(s.setActive, id)
	s.lastActive = isActive
	return nil
}

func (s *adminUserStoreStub) Count(ctx context.Context) (int64, error) {
	return s.count, nil
}

type adminRoleStoreStub struct {
	roles   map[int64][]models.AppRole
	granted []models.AppRole
	revoked []models.AppRole
}

func newAdminRoleStoreStub() *adminRoleStoreStub {
	return &adminRoleStoreStub{roles: make(map[int64][]models.AppRole)}
}

func (s *adminRoleStoreStub) GetRolesByUserID(ctx context.Context, userID int64) ([]models.AppRole, error) {
	return s.roles[userID], nil
}

func (s *adminRoleStoreStub) Grant(ctx context.Context, userID int64, role models.AppRole) error {
	s.granted = append(s.granted, role)
	s.roles[userID] = append(s.roles[userID], role)
	return nil
}

func (s *adminRoleStoreStub) Revoke(ctx context.Context, userID int64, role models.AppRole) error {
	s.revoked = append(s.revoked, role)
	return nil
}

type entityCounterStub struct {
	count int64
}

func (s *entityCounterStub) Count(ctx context.Context) (int64, error) {
	return s.count, nil
}

type adminFixture struct {
	users  *adminUserStoreStub
	roles  *adminRoleStoreStub
	tokens *tokenStoreStub
	svc    *AdminService
}

func newAdminFixture(t *testing.T, users ...*models.User) *adminFixture {
	f := &adminFixture{
		users:  newAdminUserStoreStub(users...),
		roles:  newAdminRoleStoreStub(),
		tokens: newTokenStoreStub(),
	}
	f.svc = NewAdminService(
		f.users,
		f.roles,
		newProfileStoreStub(),
		f.tokens,
		&entityCounterStub{count: 4},
		&entityCounterStub{count: 12},
		&entityCounterStub{count: 7},
		t.TempDir(),
		zerolog.Nop(),
	)
	return f
}

func TestGetStatsAggregatesCounts(t *testing.T) {
	f := newAdminFixture(t)
	f.users.count = 31

	stats, err := f.svc.GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(4), stats.Departments)
	assert.Equal(t, int64(12), stats.Resources)
	assert.Equal(t, int64(7), stats.Articles)
	assert.Equal(t, int64(31), stats.Users)
	assert.False(t, stats.System.CapturedAt.IsZero())
}

func TestListUsersAttachesRoles(t *testing.T) {
	f := newAdminFixture(t)
	f.users.listed = []models.User{{ID: 1, Email: "ada@sesa.org", IsActive: true}}
	f.users.total = 1
	f.roles.roles[1] = []models.AppRole{models.RoleEditor, models.RoleStudent}

	users, total, err := f.svc.ListUsers(context.Background(), 1, 10)
	require.NoError(t, err)

	assert.Equal(t, int64(1), total)
	require.Len(t, users, 1)
	assert.Equal(t, "ada@sesa.org", users[0].Email)
	assert.Equal(t, []string{"editor", "student"}, users[0].Roles)
}

func TestGrantRoleValidation(t *testing.T) {
	f := newAdminFixture(t, &models.User{ID: 1, Email: "ada@sesa.org"})

	err := f.svc.GrantRole(context.Background(), 1, "warlord")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	err = f.svc.GrantRole(context.Background(), 404, "editor")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	require.NoError(t, f.svc.GrantRole(context.Background(), 1, "editor"))
	assert.Equal(t, []models.AppRole{models.RoleEditor}, f.roles.granted)
}

func TestRevokeRole(t *testing.T) {
	f := newAdminFixture(t, &models.User{ID: 1, Email: "ada@sesa.org"})

	err := f.svc.RevokeRole(context.Background(), 1, "overlord")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	require.NoError(t, f.svc.RevokeRole(context.Background(), 1, "editor"))
	assert.Equal(t, []models.AppRole{models.RoleEditor}, f.roles.revoked)
}

func TestSetUserActiveDisableRevokesTokens(t *testing.T) {
	f := newAdminFixture(t, &models.User{ID: 1, Email: "ada@sesa.org", IsActive: true})
	require.NoError(t, f.tokens.CreateToken(context.Background(), "session-a", 1, time.Now().Add(time.Hour)))
	require.NoError(t, f.tokens.CreateToken(context.Background(), "session-b", 1, time.Now().Add(time.Hour)))
	require.NoError(t, f.tokens.CreateToken(context.Background(), "other-user", 2, time.Now().Add(time.Hour)))

	require.NoError(t, f.svc.SetUserActive(context.Background(), 1, false))

	assert.Equal(t, []int64{1}, f.users.setActive)
	assert.False(t, f.users.lastActive)
	assert.Len(t, f.tokens.revoked, 2)
	assert.Contains(t, f.tokens.tokens, "other-user")
}

func TestSetUserActiveEnableKeepsTokens(t *testing.T) {
	f := newAdminFixture(t, &models.User{ID: 1, Email: "ada@sesa.org"})
	require.NoError(t, f.tokens.CreateToken(context.Background(), "session-a", 1, time.Now().Add(time.Hour)))

	require.NoError(t, f.svc.SetUserActive(context.Background(), 1, true))
	assert.Empty(t, f.tokens.revoked)
}

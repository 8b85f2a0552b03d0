package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sesa/portal/internal/app/models"
	"github.com/sesa/portal/internal/app/models/dto"
	"github.com/sesa/portal/internal/app/repositories"
	"github.com/sesa/portal/internal/pkg/apperrors"
)

type memberStoreStub struct {
	profileStoreStub
	updated []*models.Profile
	rows    []repositories.MemberRow
	total   int64
}

func newMemberStoreStub(profiles ...*models.Profile) *memberStoreStub {
	s := &memberStoreStub{}
	s.profiles = make(map[int64]*models.Profile)
	for _, p := range profiles {
		s.profiles[p.UserID] = p
	}
	return s
}

func (s *memberStoreStub) Update(ctx context.Context, profile *models.Profile) error {
	s.updated = append(s.updated, profile)
	s.profiles[profile.UserID] = profile
	return nil
}

func (s *memberStoreStub) GetMembers(ctx context.Context, page, pageSize int, departmentID *int64) ([]repositories.MemberRow, int64, error) {
	return s.rows, s.total, nil
}

func TestGetProfileValidation(t *testing.T) {
	svc := NewProfileService(newMemberStoreStub(), &departmentCheckerStub{exists: true})

	_, err := svc.GetProfile(context.Background(), 0)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.GetProfile(context.Background(), 404)
	assert.ErrorIs(t, err, apperrors.ErrProfileNotFound)
}

func TestUpdateProfilePartialChanges(t *testing.T) {
	name := "Ada Obi"
	store := newMemberStoreStub(&models.Profile{ID: 1, UserID: 42, FullName: &name})
	svc := NewProfileService(store, &departmentCheckerStub{exists: true})

	avatar := "https://cdn.sesa.org/a.png"
	profile, err := svc.UpdateProfile(context.Background(), 42, &dto.UpdateProfileRequest{AvatarURL: &avatar})
	require.NoError(t, err)

	// Untouched fields keep their stored value
	require.NotNil(t, profile.FullName)
	assert.Equal(t, "Ada Obi", *profile.FullName)
	require.NotNil(t, profile.AvatarURL)
	assert.Equal(t, avatar, *profile.AvatarURL)
	assert.Len(t, store.updated, 1)
}

func TestUpdateProfileUnknownLevel(t *testing.T) {
	store := newMemberStoreStub(&models.Profile{ID: 1, UserID: 42})
	svc := NewProfileService(store, &departmentCheckerStub{exists: true})

	level := "700L"
	_, err := svc.UpdateProfile(context.Background(), 42, &dto.UpdateProfileRequest{Level: &level})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Empty(t, store.updated)
}

func TestUpdateProfileMissingDepartment(t *testing.T) {
	store := newMemberStoreStub(&models.Profile{ID: 1, UserID: 42})
	svc := NewProfileService(store, &departmentCheckerStub{exists: false})

	departmentID := int64(9)
	_, err := svc.UpdateProfile(context.Background(), 42, &dto.UpdateProfileRequest{DepartmentID: &departmentID})
	assert.ErrorIs(t, err, apperrors.ErrDepartmentNotFound)
}

func TestGetMembersMapsRows(t *testing.T) {
	name := "Ada Obi"
	deptName := "Computer Engineering"
	level := models.Level300
	store := newMemberStoreStub()
	store.rows = []repositories.MemberRow{
		{UserID: 42, Email: "ada@sesa.org", FullName: &name, DepartmentName: &deptName, Level: &level},
		{UserID: 43, Email: "ben@sesa.org"},
	}
	store.total = 2
	svc := NewProfileService(store, &departmentCheckerStub{exists: true})

	members, total, err := svc.GetMembers(context.Background(), 1, 10, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(2), total)
	require.Len(t, members, 2)
	assert.Equal(t, "Computer Engineering", members[0].DepartmentName)
	require.NotNil(t, members[0].Level)
	assert.Equal(t, "300L", *members[0].Level)
	assert.Nil(t, members[1].Level)
	assert.Empty(t, members[1].DepartmentName)
}

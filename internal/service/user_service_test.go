package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

func newUserServiceForTest() (*UserService, *fakeUserRepo, *recordingDispatcher) {
	users := newFakeUserRepo()
	dispatcher := &recordingDispatcher{}
	svc := NewUserService(UserDependencies{
		UserRepo:   users,
		RoleRepo:   newFakeRoleRepo(),
		Dispatcher: dispatcher,
		BcryptCost: 4,
	})
	return svc, users, dispatcher
}

func TestUserServiceCreateDefaults(t *testing.T) {
	svc, _, dispatcher := newUserServiceForTest()

	user, err := svc.Create(context.Background(), UserCreateInput{
		FullName: "Jane Smith",
		Email:    "jane@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	require.True(t, user.Active)
	require.Equal(t, []string{"USER"}, user.RoleNames())
	require.NotEqual(t, "secret1", user.PasswordHash)
	require.NoError(t, auth.ComparePassword(user.PasswordHash, "secret1"))

	registered := dispatcher.byType("user_registered")
	require.Len(t, registered, 1)
}

func TestUserServiceCreateDuplicateEmail(t *testing.T) {
	svc, _, _ := newUserServiceForTest()

	_, err := svc.Create(context.Background(), UserCreateInput{
		FullName: "Jane Smith", Email: "jane@example.com", Password: "secret1",
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), UserCreateInput{
		FullName: "Other Jane", Email: "jane@example.com", Password: "secret2",
	})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "ALREADY_EXISTS"))
}

func TestUserServiceCreateUnknownRole(t *testing.T) {
	svc, _, _ := newUserServiceForTest()

	_, err := svc.Create(context.Background(), UserCreateInput{
		FullName:  "Jane Smith",
		Email:     "jane@example.com",
		Password:  "secret1",
		RoleNames: []string{"SUPERVISOR"},
	})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}

func TestUserServiceCreateRoleNamesCaseInsensitive(t *testing.T) {
	svc, _, _ := newUserServiceForTest()

	user, err := svc.Create(context.Background(), UserCreateInput{
		FullName:  "Jane Smith",
		Email:     "jane@example.com",
		Password:  "secret1",
		RoleNames: []string{"admin", "Agent", "ADMIN"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"ADMIN", "AGENT"}, user.RoleNames())
}

func TestUserServiceUpdateReplacesRoles(t *testing.T) {
	svc, _, _ := newUserServiceForTest()

	user, err := svc.Create(context.Background(), UserCreateInput{
		FullName: "Jane Smith", Email: "jane@example.com", Password: "secret1",
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), user.ID, UserUpdateInput{
		RoleNames: []string{"ADMIN", "AGENT"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"ADMIN", "AGENT"}, updated.RoleNames())
	require.False(t, updated.HasRole(domain.RoleUser))
}

func TestUserServiceUpdateRehashesPassword(t *testing.T) {
	svc, _, _ := newUserServiceForTest()

	user, err := svc.Create(context.Background(), UserCreateInput{
		FullName: "Jane Smith", Email: "jane@example.com", Password: "secret1",
	})
	require.NoError(t, err)
	oldHash := user.PasswordHash

	newPassword := "freshpass"
	updated, err := svc.Update(context.Background(), user.ID, UserUpdateInput{Password: &newPassword})
	require.NoError(t, err)
	require.NotEqual(t, oldHash, updated.PasswordHash)
	require.NoError(t, auth.ComparePassword(updated.PasswordHash, newPassword))
}

func TestUserServiceUpdateMissing(t *testing.T) {
	svc, _, _ := newUserServiceForTest()

	name := "Nobody"
	_, err := svc.Update(context.Background(), 99, UserUpdateInput{FullName: &name})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}

func TestUserServiceDeactivate(t *testing.T) {
	svc, _, _ := newUserServiceForTest()

	user, err := svc.Create(context.Background(), UserCreateInput{
		FullName: "Jane Smith", Email: "jane@example.com", Password: "secret1",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(context.Background(), user.ID))

	stored, err := svc.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.False(t, stored.Active)

	active, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	require.Empty(t, active)
}

func TestUserServiceGetByEmailMissing(t *testing.T) {
	svc, _, _ := newUserServiceForTest()

	_, err := svc.GetByEmail(context.Background(), "ghost@example.com")
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}

func TestUserServiceDelete(t *testing.T) {
	svc, _, _ := newUserServiceForTest()

	user, err := svc.Create(context.Background(), UserCreateInput{
		FullName: "Jane Smith", Email: "jane@example.com", Password: "secret1",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), user.ID))

	_, err = svc.GetByID(context.Background(), user.ID)
	require.True(t, apperrors.IsCode(err, "NOT_FOUND"))
	require.True(t, apperrors.IsCode(svc.Delete(context.Background(), user.ID), "NOT_FOUND"))
}

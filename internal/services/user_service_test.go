package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/teambuilder-dev/teambuilder/internal/models"
	"github.com/teambuilder-dev/teambuilder/pkg/crypto"
)

func TestUserServiceRegisterAndAuthenticate(t *testing.T) {
	db := openServiceTestDB(t)
	service, err := NewUserService(db)
	require.NoError(t, err)

	user, err := service.Register(context.Background(), RegisterInput{
		Name:     "Ada Lovelace",
		Email:    "Ada@Example.com",
		Password: "correct horse",
		Role:     "student",
	})
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Equal(t, "ada@example.com", user.Email)
	require.Equal(t, models.RoleStudent, user.Role)
	require.NotEqual(t, "correct horse", user.Password)
	require.True(t, crypto.VerifyPassword(user.Password, "correct horse"))

	authed, err := service.Authenticate(context.Background(), "ADA@example.com", "correct horse")
	require.NoError(t, err)
	require.Equal(t, user.ID, authed.ID)
}

func TestUserServiceRegisterRejectsDuplicateEmail(t *testing.T) {
	db := openServiceTestDB(t)
	service, err := NewUserService(db)
	require.NoError(t, err)

	input := RegisterInput{Name: "First", Email: "dup@example.com", Password: "pw123456", Role: "student"}
	_, err = service.Register(context.Background(), input)
	require.NoError(t, err)

	input.Name = "Second"
	_, err = service.Register(context.Background(), input)
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestUserServiceRegisterRejectsUnknownRole(t *testing.T) {
	db := openServiceTestDB(t)
	service, err := NewUserService(db)
	require.NoError(t, err)

	_, err = service.Register(context.Background(), RegisterInput{
		Name:     "Eve",
		Email:    "eve@example.com",
		Password: "pw123456",
		Role:     "superuser",
	})
	require.ErrorIs(t, err, ErrInvalidRole)
}

func TestUserServiceAuthenticateFailuresAreUniform(t *testing.T) {
	db := openServiceTestDB(t)
	service, err := NewUserService(db)
	require.NoError(t, err)

	_, err = service.Register(context.Background(), RegisterInput{
		Name:     "Grace",
		Email:    "grace@example.com",
		Password: "real-password",
		Role:     "student",
	})
	require.NoError(t, err)

	_, wrongPassword := service.Authenticate(context.Background(), "grace@example.com", "wrong")
	_, unknownEmail := service.Authenticate(context.Background(), "nobody@example.com", "real-password")

	require.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	require.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
}

func TestUserServiceUpdateProfile(t *testing.T) {
	db := openServiceTestDB(t)
	service, err := NewUserService(db)
	require.NoError(t, err)

	user := seedUser(t, db, "Profile Owner", models.RoleStudent, "Go")

	skills := []string{" React ", "Python", ""}
	availability := "Weekends"
	updated, err := service.UpdateProfile(context.Background(), user.ID, UpdateProfileInput{
		Skills:       &skills,
		Availability: &availability,
	})
	require.NoError(t, err)
	require.Equal(t, []string{"React", "Python"}, []string(updated.Skills))
	require.Equal(t, "Weekends", updated.Availability)

	// Nil fields leave stored values untouched.
	unchanged, err := service.UpdateProfile(context.Background(), user.ID, UpdateProfileInput{})
	require.NoError(t, err)
	require.Equal(t, []string{"React", "Python"}, []string(unchanged.Skills))
	require.Equal(t, "Weekends", unchanged.Availability)
}

func TestUserServiceUpdateProfileUnknownUser(t *testing.T) {
	db := openServiceTestDB(t)
	service, err := NewUserService(db)
	require.NoError(t, err)

	availability := "Evenings"
	_, err = service.UpdateProfile(context.Background(), "missing-id", UpdateProfileInput{Availability: &availability})
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserServiceListStudentsExcludesCallerAndAdmins(t *testing.T) {
	db := openServiceTestDB(t)
	service, err := NewUserService(db)
	require.NoError(t, err)

	caller := seedUser(t, db, "Caller", models.RoleStudent, "Go")
	other := seedUser(t, db, "Other Student", models.RoleStudent, "React")
	seedUser(t, db, "The Admin", models.RoleAdmin)

	students, err := service.ListStudents(context.Background(), caller.ID)
	require.NoError(t, err)
	require.Len(t, students, 1)
	require.Equal(t, other.ID, students[0].ID)
}

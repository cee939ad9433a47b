package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blindcal/blindcal-go/internal/domain/entities/dating"
	"github.com/blindcal/blindcal-go/internal/infrastructure/security"
)

func TestProfileRegister(t *testing.T) {
	t.Run("stores a profile with a hashed password", func(t *testing.T) {
		profiles := newFakeProfileRepo()
		svc := NewProfileService(profiles)

		profile, err := svc.Register("default", &RegisterRequest{
			Email:       "  Dana@Example.COM ",
			Password:    "hunter2hunter2",
			DisplayName: "Dana",
			Role:        dating.RoleSingle,
		})
		require.NoError(t, err)

		assert.Equal(t, "dana@example.com", profile.Email, "emails are normalized")
		assert.NotEqual(t, "hunter2hunter2", profile.PasswordHash)
		assert.True(t, security.CheckPassword(profile.PasswordHash, "hunter2hunter2"))
	})

	t.Run("rejects roles outside wingman and single", func(t *testing.T) {
		svc := NewProfileService(newFakeProfileRepo())

		_, err := svc.Register("default", &RegisterRequest{
			Email:       "dana@example.com",
			Password:    "hunter2hunter2",
			DisplayName: "Dana",
			Role:        dating.RoleCandidate,
		})
		require.Error(t, err)
	})

	t.Run("rejects duplicate emails case-insensitively", func(t *testing.T) {
		svc := NewProfileService(newFakeProfileRepo())

		_, err := svc.Register("default", &RegisterRequest{
			Email: "dana@example.com", Password: "hunter2hunter2",
			DisplayName: "Dana", Role: dating.RoleSingle,
		})
		require.NoError(t, err)

		_, err = svc.Register("default", &RegisterRequest{
			Email: "DANA@example.com", Password: "different-pass",
			DisplayName: "Other Dana", Role: dating.RoleWingman,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})
}

func TestProfileUpdate(t *testing.T) {
	t.Run("applies edits and stamps UpdatedAt", func(t *testing.T) {
		profiles := newFakeProfileRepo()
		svc := NewProfileService(profiles)
		seedProfile(profiles, "single-1", dating.RoleSingle)

		updated, err := svc.Update("default", "single-1", &UpdateProfileRequest{
			DisplayName: "New Name",
			Bio:         "Loves hiking",
		})
		require.NoError(t, err)
		assert.Equal(t, "New Name", updated.DisplayName)
		assert.Equal(t, "Loves hiking", updated.Bio)
		assert.NotNil(t, updated.UpdatedAt)
	})

	t.Run("unknown profiles are an error", func(t *testing.T) {
		svc := NewProfileService(newFakeProfileRepo())
		_, err := svc.Update("default", "missing", &UpdateProfileRequest{DisplayName: "X"})
		require.Error(t, err)
	})
}

func TestLogin(t *testing.T) {
	const secret = "test-secret"

	setup := func(t *testing.T) (*AuthService, *dating.Profile) {
		t.Helper()
		profiles := newFakeProfileRepo()
		registered, err := NewProfileService(profiles).Register("default", &RegisterRequest{
			Email: "dana@example.com", Password: "hunter2hunter2",
			DisplayName: "Dana", Role: dating.RoleSingle,
		})
		require.NoError(t, err)
		return NewAuthService(profiles, testLogger(t)), registered
	}

	t.Run("issues a verifiable session token", func(t *testing.T) {
		svc, registered := setup(t)

		result, err := svc.Login("default", secret, &LoginRequest{
			Email:    "Dana@Example.com",
			Password: "hunter2hunter2",
		})
		require.NoError(t, err)
		assert.Equal(t, registered.ID, result.Profile.ID)

		claims, err := security.ValidateJWT(result.Token, secret)
		require.NoError(t, err)
		session, err := security.SessionFromClaims(claims)
		require.NoError(t, err)
		assert.Equal(t, registered.ID, session.ProfileID)
		assert.Equal(t, dating.RoleSingle, session.Role)
		assert.Equal(t, "default", session.TenantID)
	})

	t.Run("unknown email and wrong password fail identically", func(t *testing.T) {
		svc, _ := setup(t)

		_, errUnknown := svc.Login("default", secret, &LoginRequest{
			Email: "nobody@example.com", Password: "hunter2hunter2",
		})
		_, errWrongPass := svc.Login("default", secret, &LoginRequest{
			Email: "dana@example.com", Password: "wrong-password",
		})
		require.Error(t, errUnknown)
		require.Error(t, errWrongPass)
		assert.Equal(t, errUnknown.Error(), errWrongPass.Error())
	})

	t.Run("tokens signed with another secret are rejected", func(t *testing.T) {
		svc, _ := setup(t)

		result, err := svc.Login("default", secret, &LoginRequest{
			Email: "dana@example.com", Password: "hunter2hunter2",
		})
		require.NoError(t, err)

		_, err = security.ValidateJWT(result.Token, "other-tenant-secret")
		require.Error(t, err)
	})
}

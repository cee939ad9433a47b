package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blindcal/blindcal-go/internal/domain/entities/dating"
)

func delegationFixture(t *testing.T) (*DelegationService, *fakeProfileRepo, *fakeDelegationRepo, *recordingEmailService) {
	t.Helper()
	profiles := newFakeProfileRepo()
	delegations := newFakeDelegationRepo()
	emails := &recordingEmailService{}
	svc := NewDelegationService(delegations, profiles, emails, testLogger(t))
	return svc, profiles, delegations, emails
}

func seedProfile(repo *fakeProfileRepo, id string, role dating.UserRole) *dating.Profile {
	p := &dating.Profile{
		ID:          id,
		Email:       id + "@example.com",
		DisplayName: "Profile " + id,
		Role:        role,
		CreatedAt:   time.Now().UTC(),
	}
	repo.profiles[id] = p
	return p
}

func TestDelegationInvite(t *testing.T) {
	t.Run("creates a pending delegation and emails the invite", func(t *testing.T) {
		svc, profiles, _, emails := delegationFixture(t)
		seedProfile(profiles, "single-1", dating.RoleSingle)

		delegation, err := svc.Invite("default", "single-1", &InviteRequest{
			WingmanEmail: "wingman@example.com",
			TrustLevel:   dating.TrustApprovalRequired,
			CanMessage:   true,
		})
		require.NoError(t, err)

		assert.False(t, delegation.IsActive, "delegation must not activate before acceptance")
		assert.Empty(t, delegation.WingmanID)
		assert.NotEmpty(t, delegation.InviteToken)
		assert.True(t, delegation.CanMessageCandidates)

		require.Len(t, emails.inviteEmails, 1)
		assert.Equal(t, "wingman@example.com", emails.inviteEmails[0])
		assert.Contains(t, emails.inviteURLs[0], delegation.InviteToken)
	})

	t.Run("rejects unknown trust levels", func(t *testing.T) {
		svc, profiles, _, _ := delegationFixture(t)
		seedProfile(profiles, "single-1", dating.RoleSingle)

		_, err := svc.Invite("default", "single-1", &InviteRequest{
			WingmanEmail: "wingman@example.com",
			TrustLevel:   "best_friend",
		})
		require.Error(t, err)
	})

	t.Run("only singles can invite", func(t *testing.T) {
		svc, profiles, _, _ := delegationFixture(t)
		seedProfile(profiles, "wingman-1", dating.RoleWingman)

		_, err := svc.Invite("default", "wingman-1", &InviteRequest{
			WingmanEmail: "other@example.com",
			TrustLevel:   dating.TrustViewOnly,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "only a single")
	})
}

func TestDelegationAccept(t *testing.T) {
	t.Run("activates the delegation for the accepting wingman", func(t *testing.T) {
		svc, profiles, _, _ := delegationFixture(t)
		seedProfile(profiles, "single-1", dating.RoleSingle)
		seedProfile(profiles, "wingman-1", dating.RoleWingman)

		delegation, err := svc.Invite("default", "single-1", &InviteRequest{
			WingmanEmail: "wingman-1@example.com",
			TrustLevel:   dating.TrustFullDelegation,
		})
		require.NoError(t, err)

		accepted, err := svc.Accept("default", delegation.InviteToken, "wingman-1")
		require.NoError(t, err)
		assert.True(t, accepted.IsActive)
		assert.Equal(t, "wingman-1", accepted.WingmanID)
		assert.NotNil(t, accepted.AcceptedAt)
	})

	t.Run("rejects double acceptance", func(t *testing.T) {
		svc, profiles, _, _ := delegationFixture(t)
		seedProfile(profiles, "single-1", dating.RoleSingle)
		seedProfile(profiles, "wingman-1", dating.RoleWingman)

		delegation, err := svc.Invite("default", "single-1", &InviteRequest{
			WingmanEmail: "wingman-1@example.com",
			TrustLevel:   dating.TrustViewOnly,
		})
		require.NoError(t, err)

		_, err = svc.Accept("default", delegation.InviteToken, "wingman-1")
		require.NoError(t, err)
		_, err = svc.Accept("default", delegation.InviteToken, "wingman-1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already accepted")
	})

	t.Run("rejects revoked invites", func(t *testing.T) {
		svc, profiles, _, _ := delegationFixture(t)
		seedProfile(profiles, "single-1", dating.RoleSingle)
		seedProfile(profiles, "wingman-1", dating.RoleWingman)

		delegation, err := svc.Invite("default", "single-1", &InviteRequest{
			WingmanEmail: "wingman-1@example.com",
			TrustLevel:   dating.TrustViewOnly,
		})
		require.NoError(t, err)
		require.NoError(t, svc.Revoke("default", delegation.ID, "single-1"))

		_, err = svc.Accept("default", delegation.InviteToken, "wingman-1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "revoked")
	})

	t.Run("a single cannot accept their own invite", func(t *testing.T) {
		svc, profiles, delegations, _ := delegationFixture(t)
		seedProfile(profiles, "single-1", dating.RoleSingle)

		delegation, err := svc.Invite("default", "single-1", &InviteRequest{
			WingmanEmail: "single-1@example.com",
			TrustLevel:   dating.TrustViewOnly,
		})
		require.NoError(t, err)

		// Flip the single's role to simulate a dual-role account
		delegations.delegations[delegation.ID].SingleID = "single-1"
		profiles.profiles["single-1"].Role = dating.RoleWingman

		_, err = svc.Accept("default", delegation.InviteToken, "single-1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "own invite")
	})
}

func TestDelegationRevoke(t *testing.T) {
	t.Run("only the granting single can revoke", func(t *testing.T) {
		svc, profiles, _, _ := delegationFixture(t)
		seedProfile(profiles, "single-1", dating.RoleSingle)

		delegation, err := svc.Invite("default", "single-1", &InviteRequest{
			WingmanEmail: "wingman@example.com",
			TrustLevel:   dating.TrustViewOnly,
		})
		require.NoError(t, err)

		err = svc.Revoke("default", delegation.ID, "someone-else")
		require.Error(t, err)
	})

	t.Run("revoking twice is a no-op", func(t *testing.T) {
		svc, profiles, _, _ := delegationFixture(t)
		seedProfile(profiles, "single-1", dating.RoleSingle)

		delegation, err := svc.Invite("default", "single-1", &InviteRequest{
			WingmanEmail: "wingman@example.com",
			TrustLevel:   dating.TrustViewOnly,
		})
		require.NoError(t, err)

		require.NoError(t, svc.Revoke("default", delegation.ID, "single-1"))
		require.NoError(t, svc.Revoke("default", delegation.ID, "single-1"))
	})
}

func TestActiveDelegation(t *testing.T) {
	svc, profiles, _, _ := delegationFixture(t)
	seedProfile(profiles, "single-1", dating.RoleSingle)
	seedProfile(profiles, "wingman-1", dating.RoleWingman)

	delegation, err := svc.Invite("default", "single-1", &InviteRequest{
		WingmanEmail: "wingman-1@example.com",
		TrustLevel:   dating.TrustFullDelegation,
	})
	require.NoError(t, err)

	active, err := svc.ActiveDelegation("default", "single-1", "wingman-1")
	require.NoError(t, err)
	assert.Nil(t, active, "pending delegation is not active")

	_, err = svc.Accept("default", delegation.InviteToken, "wingman-1")
	require.NoError(t, err)

	active, err = svc.ActiveDelegation("default", "single-1", "wingman-1")
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, delegation.ID, active.ID)
}

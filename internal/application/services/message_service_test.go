package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blindcal/blindcal-go/internal/domain/entities/dating"
)

type messageFixture struct {
	svc         *MessageService
	messages    *fakeMessageRepo
	candidates  *fakeCandidateRepo
	campaigns   *fakeCampaignRepo
	delegations *fakeDelegationRepo
	profiles    *fakeProfileRepo
}

func newMessageFixture(t *testing.T) *messageFixture {
	t.Helper()
	f := &messageFixture{
		messages:    newFakeMessageRepo(),
		candidates:  newFakeCandidateRepo(),
		campaigns:   newFakeCampaignRepo(),
		delegations: newFakeDelegationRepo(),
		profiles:    newFakeProfileRepo(),
	}
	f.svc = NewMessageService(
		f.messages, f.candidates, f.campaigns, f.delegations, f.profiles,
		testBroadcaster(t), testLogger(t),
	)

	seedProfile(f.profiles, "single-1", dating.RoleSingle)
	seedProfile(f.profiles, "wingman-1", dating.RoleWingman)
	delegation := seedDelegation(f.delegations, "del-1", "single-1", "wingman-1", dating.TrustFullDelegation)
	delegation.CanMessageCandidates = true

	f.campaigns.campaigns["camp-1"] = &dating.Campaign{
		ID: "camp-1", WingmanID: "wingman-1", SingleID: "single-1",
		DelegationID: "del-1", Title: "Find Someone", Slug: "find-someone",
		IsPublished: true, CreatedAt: time.Now().UTC(),
	}
	f.candidates.candidates["cand-1"] = &dating.Candidate{
		ID: "cand-1", CampaignID: "camp-1", Name: "Alex",
		Email: "alex@example.com", CurrentStage: dating.StageScreening,
		CreatedAt: time.Now().UTC(),
	}
	return f
}

func TestSendFromCampaign(t *testing.T) {
	t.Run("masks the sender address and creates the thread lazily", func(t *testing.T) {
		f := newMessageFixture(t)

		msg, err := f.svc.SendFromCampaign("default", "cand-1", "wingman-1", dating.RoleWingman, &SendRequest{
			Body: "Hi Alex, thanks for applying!",
		})
		require.NoError(t, err)

		assert.Equal(t, "w***@example.com", msg.SenderEmail)
		assert.NotContains(t, msg.SenderEmail, "wingman-1@")
		assert.Equal(t, dating.RoleWingman, msg.SenderRole)

		thread, msgs, err := f.svc.GetThread("default", "cand-1")
		require.NoError(t, err)
		require.NotNil(t, thread)
		require.Len(t, msgs, 1)
		assert.Equal(t, thread.ID, msgs[0].ThreadID)
	})

	t.Run("reuses the existing thread on later messages", func(t *testing.T) {
		f := newMessageFixture(t)

		first, err := f.svc.SendFromCampaign("default", "cand-1", "single-1", dating.RoleSingle, &SendRequest{Body: "Hello"})
		require.NoError(t, err)
		second, err := f.svc.SendFromCampaign("default", "cand-1", "single-1", dating.RoleSingle, &SendRequest{Body: "Again"})
		require.NoError(t, err)

		assert.Equal(t, first.ThreadID, second.ThreadID)
		assert.Len(t, f.messages.threads, 1)
	})

	t.Run("wingman without messaging rights is blocked", func(t *testing.T) {
		f := newMessageFixture(t)
		f.delegations.delegations["del-1"].CanMessageCandidates = false

		_, err := f.svc.SendFromCampaign("default", "cand-1", "wingman-1", dating.RoleWingman, &SendRequest{Body: "Hi"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "messaging rights")
	})

	t.Run("rejects blank bodies", func(t *testing.T) {
		f := newMessageFixture(t)

		_, err := f.svc.SendFromCampaign("default", "cand-1", "single-1", dating.RoleSingle, &SendRequest{Body: "   "})
		require.Error(t, err)
	})

	t.Run("strangers cannot message the thread", func(t *testing.T) {
		f := newMessageFixture(t)
		seedProfile(f.profiles, "wingman-2", dating.RoleWingman)

		_, err := f.svc.SendFromCampaign("default", "cand-1", "wingman-2", dating.RoleWingman, &SendRequest{Body: "Hi"})
		require.Error(t, err)
	})
}

func TestSendFromCandidate(t *testing.T) {
	t.Run("the applicant replies with their application email", func(t *testing.T) {
		f := newMessageFixture(t)

		msg, err := f.svc.SendFromCandidate("default", "cand-1", "Alex@Example.com", &SendRequest{
			Body: "Happy to share more!",
		})
		require.NoError(t, err)
		assert.Equal(t, dating.RoleCandidate, msg.SenderRole)
		assert.Equal(t, "a***@example.com", msg.SenderEmail)
		assert.Empty(t, msg.SenderID, "candidates have no profile")
	})

	t.Run("rejects a reply from a different address", func(t *testing.T) {
		f := newMessageFixture(t)

		_, err := f.svc.SendFromCandidate("default", "cand-1", "impostor@example.com", &SendRequest{Body: "Hi"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not match")
	})
}

func TestGetThread(t *testing.T) {
	t.Run("no thread before first contact", func(t *testing.T) {
		f := newMessageFixture(t)

		thread, msgs, err := f.svc.GetThread("default", "cand-1")
		require.NoError(t, err)
		assert.Nil(t, thread)
		assert.Nil(t, msgs)
	})

	t.Run("unknown candidates are an error", func(t *testing.T) {
		f := newMessageFixture(t)

		_, _, err := f.svc.GetThread("default", "missing")
		require.Error(t, err)
	})
}

func TestListThreads(t *testing.T) {
	f := newMessageFixture(t)

	_, err := f.svc.SendFromCampaign("default", "cand-1", "single-1", dating.RoleSingle, &SendRequest{Body: "Hello"})
	require.NoError(t, err)

	threads, err := f.svc.ListThreads("default", "camp-1")
	require.NoError(t, err)
	require.Len(t, threads, 1)
	assert.Equal(t, "cand-1", threads[0].CandidateID)
}

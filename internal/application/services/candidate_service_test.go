package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blindcal/blindcal-go/internal/domain/entities/dating"
	"github.com/blindcal/blindcal-go/internal/infrastructure/media"
)

type candidateFixture struct {
	svc         *CandidateService
	candidates  *fakeCandidateRepo
	campaigns   *fakeCampaignRepo
	delegations *fakeDelegationRepo
	bookings    *fakeBookingRepo
	emails      *recordingEmailService
	photos      *media.PhotoProcessor
}

func newCandidateFixture(t *testing.T) *candidateFixture {
	t.Helper()
	f := &candidateFixture{
		candidates:  newFakeCandidateRepo(),
		campaigns:   newFakeCampaignRepo(),
		delegations: newFakeDelegationRepo(),
		bookings:    newFakeBookingRepo(),
		emails:      &recordingEmailService{},
		photos:      media.NewPhotoProcessor(t.TempDir()),
	}
	f.svc = NewCandidateService(
		f.candidates, f.campaigns, f.delegations, f.bookings,
		f.emails, testBroadcaster(t), testLogger(t),
	)
	return f
}

func (f *candidateFixture) seedCampaign(published bool) *dating.Campaign {
	seedDelegation(f.delegations, "del-1", "single-1", "wingman-1", dating.TrustFullDelegation)
	campaign := &dating.Campaign{
		ID:                      "camp-1",
		WingmanID:               "wingman-1",
		SingleID:                "single-1",
		DelegationID:            "del-1",
		Title:                   "Find Someone",
		Slug:                    "find-someone",
		IsPublished:             published,
		IsAcceptingApplications: true,
		InitialDisclosure:       dating.DisclosureAnonymous,
		CreatedAt:               time.Now().UTC(),
	}
	f.campaigns.campaigns[campaign.ID] = campaign
	return campaign
}

func (f *candidateFixture) seedCandidate(stage dating.PipelineStage) *dating.Candidate {
	candidate := &dating.Candidate{
		ID:           "cand-1",
		CampaignID:   "camp-1",
		Name:         "Alex",
		Email:        "alex@example.com",
		CurrentStage: stage,
		Disclosure:   dating.DisclosureAnonymous,
		CreatedAt:    time.Now().UTC(),
	}
	f.candidates.candidates[candidate.ID] = candidate
	return candidate
}

func TestApply(t *testing.T) {
	t.Run("stores the candidate at the new stage and journals the application", func(t *testing.T) {
		f := newCandidateFixture(t)
		f.seedCampaign(true)

		candidate, err := f.svc.Apply("default", "find-someone", &ApplicationRequest{
			Name:  "Alex",
			Email: "Alex@Example.com",
		}, f.photos)
		require.NoError(t, err)

		assert.Equal(t, dating.StageNew, candidate.CurrentStage)
		assert.Equal(t, "alex@example.com", candidate.Email, "emails are normalized")
		assert.Equal(t, dating.DisclosureAnonymous, candidate.Disclosure)

		events, err := f.svc.GetEvents("default", candidate.ID)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "applied", events[0].EventType)

		require.Len(t, f.emails.applicationEmails, 1)
		assert.Equal(t, "alex@example.com", f.emails.applicationEmails[0])
	})

	t.Run("unpublished campaigns are invisible", func(t *testing.T) {
		f := newCandidateFixture(t)
		f.seedCampaign(false)

		_, err := f.svc.Apply("default", "find-someone", &ApplicationRequest{Name: "Alex", Email: "a@b.com"}, f.photos)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("enforces required bio and photo", func(t *testing.T) {
		f := newCandidateFixture(t)
		campaign := f.seedCampaign(true)
		campaign.RequiresBio = true
		campaign.RequiresPhoto = true

		_, err := f.svc.Apply("default", "find-someone", &ApplicationRequest{Name: "Alex", Email: "a@b.com"}, f.photos)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bio")

		_, err = f.svc.Apply("default", "find-someone", &ApplicationRequest{Name: "Alex", Email: "a@b.com", Bio: "hi"}, f.photos)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "photo")
	})

	t.Run("enforces required custom questions", func(t *testing.T) {
		f := newCandidateFixture(t)
		campaign := f.seedCampaign(true)
		campaign.CustomQuestions = []dating.CustomQuestion{
			{Question: "What's your ideal first date?", Required: true},
		}

		_, err := f.svc.Apply("default", "find-someone", &ApplicationRequest{Name: "Alex", Email: "a@b.com"}, f.photos)
		require.Error(t, err)

		_, err = f.svc.Apply("default", "find-someone", &ApplicationRequest{
			Name: "Alex", Email: "a@b.com",
			Answers: map[string]string{"What's your ideal first date?": "A long walk"},
		}, f.photos)
		require.NoError(t, err)
	})

	t.Run("a full pipeline stops accepting applications", func(t *testing.T) {
		f := newCandidateFixture(t)
		campaign := f.seedCampaign(true)
		campaign.MaxActiveCandidates = 1
		f.seedCandidate(dating.StageScreening)

		_, err := f.svc.Apply("default", "find-someone", &ApplicationRequest{Name: "Sam", Email: "s@b.com"}, f.photos)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not accepting")
	})

	t.Run("rejected candidates free up pipeline capacity", func(t *testing.T) {
		f := newCandidateFixture(t)
		campaign := f.seedCampaign(true)
		campaign.MaxActiveCandidates = 1
		f.seedCandidate(dating.StageRejected)

		_, err := f.svc.Apply("default", "find-someone", &ApplicationRequest{Name: "Sam", Email: "s@b.com"}, f.photos)
		require.NoError(t, err)
	})

	t.Run("rejects malformed photo uploads", func(t *testing.T) {
		f := newCandidateFixture(t)
		f.seedCampaign(true)

		_, err := f.svc.Apply("default", "find-someone", &ApplicationRequest{
			Name: "Alex", Email: "a@b.com",
			Photo: "data:image/gif;base64,R0lGOD",
		}, f.photos)
		require.Error(t, err)
	})
}

func TestChangeStage(t *testing.T) {
	t.Run("records the transition with timestamps and an event", func(t *testing.T) {
		f := newCandidateFixture(t)
		f.seedCampaign(true)
		f.seedCandidate(dating.StageScreening)

		candidate, err := f.svc.ChangeStage("default", "cand-1", "wingman-1", dating.RoleWingman, &StageChangeRequest{
			ToStage: dating.StageProposed,
			Note:    "Great match for you",
		})
		require.NoError(t, err)

		assert.Equal(t, dating.StageProposed, candidate.CurrentStage)
		assert.NotNil(t, candidate.ProposedAt)
		assert.NotNil(t, candidate.StageChangedAt)
		assert.Equal(t, "Great match for you", candidate.WingmanNotes)

		events, err := f.svc.GetEvents("default", "cand-1")
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, dating.StageScreening, events[0].FromStage)
		assert.Equal(t, dating.StageProposed, events[0].ToStage)
		assert.Equal(t, dating.RoleWingman, events[0].ActorRole)
	})

	t.Run("the single approves a proposed candidate", func(t *testing.T) {
		f := newCandidateFixture(t)
		f.seedCampaign(true)
		f.seedCandidate(dating.StageProposed)

		candidate, err := f.svc.ChangeStage("default", "cand-1", "single-1", dating.RoleSingle, &StageChangeRequest{
			ToStage: dating.StageApproved,
		})
		require.NoError(t, err)
		assert.NotNil(t, candidate.ApprovedAt)
	})

	t.Run("an approval-required wingman cannot decide a proposal", func(t *testing.T) {
		f := newCandidateFixture(t)
		f.seedCampaign(true)
		f.delegations.delegations["del-1"].TrustLevel = dating.TrustApprovalRequired
		f.seedCandidate(dating.StageProposed)

		_, err := f.svc.ChangeStage("default", "cand-1", "wingman-1", dating.RoleWingman, &StageChangeRequest{
			ToStage: dating.StageApproved,
		})
		require.Error(t, err)
	})

	t.Run("a revoked delegation cuts the wingman off", func(t *testing.T) {
		f := newCandidateFixture(t)
		f.seedCampaign(true)
		f.delegations.delegations["del-1"].IsActive = false
		f.seedCandidate(dating.StageNew)

		_, err := f.svc.ChangeStage("default", "cand-1", "wingman-1", dating.RoleWingman, &StageChangeRequest{
			ToStage: dating.StageScreening,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no longer active")
	})

	t.Run("strangers cannot move candidates", func(t *testing.T) {
		f := newCandidateFixture(t)
		f.seedCampaign(true)
		f.seedCandidate(dating.StageNew)

		_, err := f.svc.ChangeStage("default", "cand-1", "stranger", dating.RoleSingle, &StageChangeRequest{
			ToStage: dating.StageScreening,
		})
		require.Error(t, err)
	})
}

func TestUpdateNotes(t *testing.T) {
	t.Run("records notes and rating", func(t *testing.T) {
		f := newCandidateFixture(t)
		f.seedCampaign(true)
		f.seedCandidate(dating.StageScreening)

		candidate, err := f.svc.UpdateNotes("default", "cand-1", "wingman-1", dating.RoleWingman, &NotesRequest{
			WingmanNotes: "Funny, kind, tall enough",
			Rating:       4,
		})
		require.NoError(t, err)
		assert.Equal(t, 4, candidate.Rating)
	})

	t.Run("rejects out-of-range ratings", func(t *testing.T) {
		f := newCandidateFixture(t)
		f.seedCampaign(true)
		f.seedCandidate(dating.StageScreening)

		_, err := f.svc.UpdateNotes("default", "cand-1", "wingman-1", dating.RoleWingman, &NotesRequest{Rating: 6})
		require.Error(t, err)
	})

	t.Run("view-only wingman cannot annotate", func(t *testing.T) {
		f := newCandidateFixture(t)
		f.seedCampaign(true)
		f.delegations.delegations["del-1"].TrustLevel = dating.TrustViewOnly
		f.seedCandidate(dating.StageScreening)

		_, err := f.svc.UpdateNotes("default", "cand-1", "wingman-1", dating.RoleWingman, &NotesRequest{Rating: 3})
		require.Error(t, err)
	})
}

func TestCandidateDelete(t *testing.T) {
	t.Run("deletes candidates without bookings", func(t *testing.T) {
		f := newCandidateFixture(t)
		f.seedCampaign(true)
		f.seedCandidate(dating.StageRejected)

		require.NoError(t, f.svc.Delete("default", "cand-1", "wingman-1", dating.RoleWingman, f.photos))
		assert.Empty(t, f.candidates.candidates)
	})

	t.Run("refuses to delete a candidate with date history", func(t *testing.T) {
		f := newCandidateFixture(t)
		f.seedCampaign(true)
		f.seedCandidate(dating.StageScheduled)
		f.bookings.bookings["book-1"] = &dating.Booking{
			ID: "book-1", CampaignID: "camp-1", CandidateID: "cand-1",
			Status: dating.BookingConfirmed,
		}

		err := f.svc.Delete("default", "cand-1", "wingman-1", dating.RoleWingman, f.photos)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "archive instead")
	})

	t.Run("cancelled bookings do not block deletion", func(t *testing.T) {
		f := newCandidateFixture(t)
		f.seedCampaign(true)
		f.seedCandidate(dating.StageRejected)
		f.bookings.bookings["book-1"] = &dating.Booking{
			ID: "book-1", CampaignID: "camp-1", CandidateID: "cand-1",
			Status: dating.BookingCancelled,
		}

		require.NoError(t, f.svc.Delete("default", "cand-1", "wingman-1", dating.RoleWingman, f.photos))
	})
}

func TestCandidateStats(t *testing.T) {
	f := newCandidateFixture(t)
	f.seedCampaign(true)
	f.candidates.candidates["a"] = &dating.Candidate{ID: "a", CampaignID: "camp-1", CurrentStage: dating.StageNew}
	f.candidates.candidates["b"] = &dating.Candidate{ID: "b", CampaignID: "camp-1", CurrentStage: dating.StageRejected}
	f.candidates.candidates["c"] = &dating.Candidate{ID: "c", CampaignID: "camp-1", CurrentStage: dating.StageScheduled}

	stats, err := f.svc.Stats("default", "camp-1")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Active)
}

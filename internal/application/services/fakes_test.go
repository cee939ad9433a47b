package services

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blindcal/blindcal-go/internal/domain/entities/dating"
	"github.com/blindcal/blindcal-go/internal/infrastructure/messaging"
	"github.com/blindcal/blindcal-go/internal/infrastructure/observability/logging"
)

func testLogger(t *testing.T) *logging.ChanneledLogger {
	t.Helper()
	logger, err := logging.NewChanneledLogger(&logging.LoggerConfig{
		OutputToFile:    false,
		OutputToConsole: false,
		DefaultLevel:    slog.LevelError,
	})
	require.NoError(t, err)
	return logger
}

func testBroadcaster(t *testing.T) *messaging.PipelineBroadcaster {
	t.Helper()
	// Not started: broadcast sends are non-blocking, events queue harmlessly.
	return messaging.NewPipelineBroadcaster(nil)
}

// fakeProfileRepo is an in-memory ProfileRepository
type fakeProfileRepo struct {
	profiles map[string]*dating.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]*dating.Profile)}
}

func (r *fakeProfileRepo) FindByID(tenantID, id string) (*dating.Profile, error) {
	return r.profiles[id], nil
}

func (r *fakeProfileRepo) FindByEmail(tenantID, email string) (*dating.Profile, error) {
	for _, p := range r.profiles {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProfileRepo) Store(tenantID string, profile *dating.Profile) error {
	r.profiles[profile.ID] = profile
	return nil
}

func (r *fakeProfileRepo) Update(tenantID string, profile *dating.Profile) error {
	r.profiles[profile.ID] = profile
	return nil
}

// fakeDelegationRepo is an in-memory DelegationRepository
type fakeDelegationRepo struct {
	delegations map[string]*dating.Delegation
}

func newFakeDelegationRepo() *fakeDelegationRepo {
	return &fakeDelegationRepo{delegations: make(map[string]*dating.Delegation)}
}

func (r *fakeDelegationRepo) FindByID(tenantID, id string) (*dating.Delegation, error) {
	return r.delegations[id], nil
}

func (r *fakeDelegationRepo) FindByInviteToken(tenantID, token string) (*dating.Delegation, error) {
	for _, d := range r.delegations {
		if d.InviteToken == token {
			return d, nil
		}
	}
	return nil, nil
}

func (r *fakeDelegationRepo) FindForProfile(tenantID, profileID string) ([]*dating.Delegation, error) {
	var out []*dating.Delegation
	for _, d := range r.delegations {
		if d.SingleID == profileID || d.WingmanID == profileID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeDelegationRepo) Store(tenantID string, delegation *dating.Delegation) error {
	r.delegations[delegation.ID] = delegation
	return nil
}

func (r *fakeDelegationRepo) Update(tenantID string, delegation *dating.Delegation) error {
	r.delegations[delegation.ID] = delegation
	return nil
}

// fakeCampaignRepo is an in-memory CampaignRepository
type fakeCampaignRepo struct {
	campaigns map[string]*dating.Campaign
}

func newFakeCampaignRepo() *fakeCampaignRepo {
	return &fakeCampaignRepo{campaigns: make(map[string]*dating.Campaign)}
}

func (r *fakeCampaignRepo) FindByID(tenantID, id string) (*dating.Campaign, error) {
	return r.campaigns[id], nil
}

func (r *fakeCampaignRepo) FindBySlug(tenantID, slug string) (*dating.Campaign, error) {
	for _, c := range r.campaigns {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCampaignRepo) FindByWingman(tenantID, wingmanID string) ([]*dating.Campaign, error) {
	var out []*dating.Campaign
	for _, c := range r.campaigns {
		if c.WingmanID == wingmanID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCampaignRepo) Store(tenantID string, campaign *dating.Campaign) error {
	r.campaigns[campaign.ID] = campaign
	return nil
}

func (r *fakeCampaignRepo) Update(tenantID string, campaign *dating.Campaign) error {
	r.campaigns[campaign.ID] = campaign
	return nil
}

func (r *fakeCampaignRepo) Delete(tenantID, id string) error {
	delete(r.campaigns, id)
	return nil
}

// fakeCandidateRepo is an in-memory CandidateRepository
type fakeCandidateRepo struct {
	candidates map[string]*dating.Candidate
	events     []*dating.CandidateEvent
}

func newFakeCandidateRepo() *fakeCandidateRepo {
	return &fakeCandidateRepo{candidates: make(map[string]*dating.Candidate)}
}

func (r *fakeCandidateRepo) FindByID(tenantID, id string) (*dating.Candidate, error) {
	return r.candidates[id], nil
}

func (r *fakeCandidateRepo) FindByCampaign(tenantID, campaignID string) ([]*dating.Candidate, error) {
	var out []*dating.Candidate
	for _, c := range r.candidates {
		if c.CampaignID == campaignID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCandidateRepo) CountByCampaign(tenantID, campaignID string) (*dating.CandidateStats, error) {
	stats := &dating.CandidateStats{}
	for _, c := range r.candidates {
		if c.CampaignID != campaignID {
			continue
		}
		stats.Total++
		if c.CurrentStage.Active() {
			stats.Active++
		}
	}
	return stats, nil
}

func (r *fakeCandidateRepo) Store(tenantID string, candidate *dating.Candidate) error {
	r.candidates[candidate.ID] = candidate
	return nil
}

func (r *fakeCandidateRepo) Update(tenantID string, candidate *dating.Candidate) error {
	r.candidates[candidate.ID] = candidate
	return nil
}

func (r *fakeCandidateRepo) Delete(tenantID, id string) error {
	delete(r.candidates, id)
	return nil
}

func (r *fakeCandidateRepo) AppendEvent(tenantID string, event *dating.CandidateEvent) error {
	r.events = append(r.events, event)
	return nil
}

func (r *fakeCandidateRepo) FindEvents(tenantID, candidateID string) ([]*dating.CandidateEvent, error) {
	var out []*dating.CandidateEvent
	for _, e := range r.events {
		if e.CandidateID == candidateID {
			out = append(out, e)
		}
	}
	return out, nil
}

// fakeBookingRepo is an in-memory BookingRepository
type fakeBookingRepo struct {
	bookings map[string]*dating.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*dating.Booking)}
}

func (r *fakeBookingRepo) FindByID(tenantID, id string) (*dating.Booking, error) {
	return r.bookings[id], nil
}

func (r *fakeBookingRepo) FindByCampaign(tenantID, campaignID string) ([]*dating.Booking, error) {
	var out []*dating.Booking
	for _, b := range r.bookings {
		if b.CampaignID == campaignID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) CountForCandidate(tenantID, candidateID string) (int, error) {
	count := 0
	for _, b := range r.bookings {
		if b.CandidateID == candidateID && b.Status != dating.BookingCancelled {
			count++
		}
	}
	return count, nil
}

func (r *fakeBookingRepo) Store(tenantID string, booking *dating.Booking) error {
	r.bookings[booking.ID] = booking
	return nil
}

func (r *fakeBookingRepo) Update(tenantID string, booking *dating.Booking) error {
	r.bookings[booking.ID] = booking
	return nil
}

// fakeMessageRepo is an in-memory MessageRepository
type fakeMessageRepo struct {
	threads  map[string]*dating.MessageThread
	messages []*dating.Message
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{threads: make(map[string]*dating.MessageThread)}
}

func (r *fakeMessageRepo) FindThreadByID(tenantID, id string) (*dating.MessageThread, error) {
	return r.threads[id], nil
}

func (r *fakeMessageRepo) FindThreadForCandidate(tenantID, campaignID, candidateID string) (*dating.MessageThread, error) {
	for _, th := range r.threads {
		if th.CampaignID == campaignID && th.CandidateID == candidateID {
			return th, nil
		}
	}
	return nil, nil
}

func (r *fakeMessageRepo) FindThreadsByCampaign(tenantID, campaignID string) ([]*dating.MessageThread, error) {
	var out []*dating.MessageThread
	for _, th := range r.threads {
		if th.CampaignID == campaignID {
			out = append(out, th)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) StoreThread(tenantID string, thread *dating.MessageThread) error {
	r.threads[thread.ID] = thread
	return nil
}

func (r *fakeMessageRepo) FindMessages(tenantID, threadID string) ([]*dating.Message, error) {
	var out []*dating.Message
	for _, m := range r.messages {
		if m.ThreadID == threadID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) StoreMessage(tenantID string, message *dating.Message) error {
	r.messages = append(r.messages, message)
	return nil
}

// recordingEmailService captures outbound mail for assertions
type recordingEmailService struct {
	applicationEmails []string
	bookingEmails     []string
	inviteEmails      []string
	inviteURLs        []string
}

func (s *recordingEmailService) SendApplicationReceivedEmail(toEmail, candidateName, campaignTitle string) error {
	s.applicationEmails = append(s.applicationEmails, toEmail)
	return nil
}

func (s *recordingEmailService) SendBookingConfirmedEmail(toEmail, recipientName, campaignTitle, startTime, location, meetingURL string) error {
	s.bookingEmails = append(s.bookingEmails, toEmail)
	return nil
}

func (s *recordingEmailService) SendDelegationInviteEmail(toEmail, singleName, inviteURL, trustLevel string) error {
	s.inviteEmails = append(s.inviteEmails, toEmail)
	s.inviteURLs = append(s.inviteURLs, inviteURL)
	return nil
}

package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blindcal/blindcal-go/internal/domain/entities/dating"
)

type bookingFixture struct {
	svc        *BookingService
	bookings   *fakeBookingRepo
	candidates *fakeCandidateRepo
	campaigns  *fakeCampaignRepo
	profiles   *fakeProfileRepo
	emails     *recordingEmailService
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()
	f := &bookingFixture{
		bookings:   newFakeBookingRepo(),
		candidates: newFakeCandidateRepo(),
		campaigns:  newFakeCampaignRepo(),
		profiles:   newFakeProfileRepo(),
		emails:     &recordingEmailService{},
	}
	f.svc = NewBookingService(
		f.bookings, f.candidates, f.campaigns, f.profiles,
		f.emails, testBroadcaster(t), testLogger(t),
	)

	seedProfile(f.profiles, "single-1", dating.RoleSingle)
	f.campaigns.campaigns["camp-1"] = &dating.Campaign{
		ID: "camp-1", WingmanID: "wingman-1", SingleID: "single-1",
		DelegationID: "del-1", Title: "Find Someone", Slug: "find-someone",
		IsPublished: true, CreatedAt: time.Now().UTC(),
	}
	f.candidates.candidates["cand-1"] = &dating.Candidate{
		ID: "cand-1", CampaignID: "camp-1", Name: "Alex",
		Email: "alex@example.com", CurrentStage: dating.StageApproved,
		CreatedAt: time.Now().UTC(),
	}
	return f
}

func (f *bookingFixture) window() (time.Time, time.Time) {
	start := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Hour)
	return start, start.Add(time.Hour)
}

func TestSchedule(t *testing.T) {
	ctx := context.Background()

	t.Run("books the date and moves the candidate to scheduled", func(t *testing.T) {
		f := newBookingFixture(t)
		start, end := f.window()

		booking, err := f.svc.Schedule(ctx, "default", &ScheduleRequest{
			CandidateID: "cand-1",
			StartTime:   start,
			EndTime:     end,
			Location:    "Cafe Mira",
		}, nil)
		require.NoError(t, err)

		assert.Equal(t, dating.BookingConfirmed, booking.Status)
		assert.Empty(t, booking.ExternalUID, "no calendar provider means a local-only booking")
		assert.Equal(t, dating.StageScheduled, f.candidates.candidates["cand-1"].CurrentStage)

		require.Len(t, f.candidates.events, 1)
		assert.Equal(t, "date_scheduled", f.candidates.events[0].EventType)

		// Both the candidate and the single are told about the date.
		require.Len(t, f.emails.bookingEmails, 2)
		assert.Contains(t, f.emails.bookingEmails, "alex@example.com")
		assert.Contains(t, f.emails.bookingEmails, "single-1@example.com")
	})

	t.Run("rejects an inverted time window", func(t *testing.T) {
		f := newBookingFixture(t)
		start, end := f.window()

		_, err := f.svc.Schedule(ctx, "default", &ScheduleRequest{
			CandidateID: "cand-1", StartTime: end, EndTime: start,
		}, nil)
		require.Error(t, err)
	})

	t.Run("only approved candidates can be scheduled", func(t *testing.T) {
		f := newBookingFixture(t)
		f.candidates.candidates["cand-1"].CurrentStage = dating.StageProposed
		start, end := f.window()

		_, err := f.svc.Schedule(ctx, "default", &ScheduleRequest{
			CandidateID: "cand-1", StartTime: start, EndTime: end,
		}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "approved")
	})
}

func TestCancel(t *testing.T) {
	ctx := context.Background()

	schedule := func(t *testing.T, f *bookingFixture) *dating.Booking {
		t.Helper()
		start, end := f.window()
		booking, err := f.svc.Schedule(ctx, "default", &ScheduleRequest{
			CandidateID: "cand-1", StartTime: start, EndTime: end,
		}, nil)
		require.NoError(t, err)
		return booking
	}

	t.Run("cancelling returns the candidate to approved", func(t *testing.T) {
		f := newBookingFixture(t)
		booking := schedule(t, f)

		cancelled, err := f.svc.Cancel(ctx, "default", booking.ID, "rain check", nil)
		require.NoError(t, err)
		assert.Equal(t, dating.BookingCancelled, cancelled.Status)
		assert.Equal(t, dating.StageApproved, f.candidates.candidates["cand-1"].CurrentStage)
	})

	t.Run("cancelling twice is a no-op", func(t *testing.T) {
		f := newBookingFixture(t)
		booking := schedule(t, f)

		_, err := f.svc.Cancel(ctx, "default", booking.ID, "", nil)
		require.NoError(t, err)
		again, err := f.svc.Cancel(ctx, "default", booking.ID, "", nil)
		require.NoError(t, err)
		assert.Equal(t, dating.BookingCancelled, again.Status)
	})

	t.Run("completed dates cannot be cancelled", func(t *testing.T) {
		f := newBookingFixture(t)
		booking := schedule(t, f)

		_, err := f.svc.Complete("default", booking.ID)
		require.NoError(t, err)
		_, err = f.svc.Cancel(ctx, "default", booking.ID, "", nil)
		require.Error(t, err)
	})
}

func TestReschedule(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture(t)
	start, end := f.window()

	booking, err := f.svc.Schedule(ctx, "default", &ScheduleRequest{
		CandidateID: "cand-1", StartTime: start, EndTime: end,
	}, nil)
	require.NoError(t, err)

	newStart := start.Add(24 * time.Hour)
	moved, err := f.svc.Reschedule(ctx, "default", booking.ID, newStart, newStart.Add(time.Hour), nil)
	require.NoError(t, err)
	assert.Equal(t, newStart, moved.StartTime)
	assert.NotNil(t, moved.UpdatedAt)

	_, err = f.svc.Cancel(ctx, "default", booking.ID, "", nil)
	require.NoError(t, err)
	_, err = f.svc.Reschedule(ctx, "default", booking.ID, newStart, newStart.Add(time.Hour), nil)
	require.Error(t, err, "cancelled bookings stay cancelled")
}

func TestBookingClose(t *testing.T) {
	ctx := context.Background()

	t.Run("complete moves the candidate forward", func(t *testing.T) {
		f := newBookingFixture(t)
		start, end := f.window()
		booking, err := f.svc.Schedule(ctx, "default", &ScheduleRequest{
			CandidateID: "cand-1", StartTime: start, EndTime: end,
		}, nil)
		require.NoError(t, err)

		closed, err := f.svc.Complete("default", booking.ID)
		require.NoError(t, err)
		assert.Equal(t, dating.BookingCompleted, closed.Status)
		assert.Equal(t, dating.StageCompleted, f.candidates.candidates["cand-1"].CurrentStage)
	})

	t.Run("no-show sends the candidate back for another try", func(t *testing.T) {
		f := newBookingFixture(t)
		start, end := f.window()
		booking, err := f.svc.Schedule(ctx, "default", &ScheduleRequest{
			CandidateID: "cand-1", StartTime: start, EndTime: end,
		}, nil)
		require.NoError(t, err)

		closed, err := f.svc.MarkNoShow("default", booking.ID)
		require.NoError(t, err)
		assert.Equal(t, dating.BookingNoShow, closed.Status)
		assert.Equal(t, dating.StageApproved, f.candidates.candidates["cand-1"].CurrentStage)
	})
}

func TestAvailability(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.svc.Availability(context.Background(), nil, 42, time.Now(), time.Now().Add(time.Hour))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

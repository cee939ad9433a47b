package services

import (
	"context"
	"fmt"
	"time"

	"github.com/blindcal/blindcal-go/internal/domain/entities/dating"
	"github.com/blindcal/blindcal-go/internal/domain/repositories"
	"github.com/blindcal/blindcal-go/internal/infrastructure/email"
	"github.com/blindcal/blindcal-go/internal/infrastructure/messaging"
	"github.com/blindcal/blindcal-go/internal/infrastructure/observability/logging"
	"github.com/blindcal/blindcal-go/internal/infrastructure/scheduling"
	"github.com/blindcal/blindcal-go/internal/infrastructure/security"
)

// BookingService schedules dates between the single and approved candidates.
// Local state is authoritative; the calendar provider is best-effort.
type BookingService struct {
	bookingRepo   repositories.BookingRepository
	candidateRepo repositories.CandidateRepository
	campaignRepo  repositories.CampaignRepository
	profileRepo   repositories.ProfileRepository
	emailService  email.Service
	broadcaster   *messaging.PipelineBroadcaster
	logger        *logging.ChanneledLogger
}

// NewBookingService creates a new booking application service
func NewBookingService(
	bookingRepo repositories.BookingRepository,
	candidateRepo repositories.CandidateRepository,
	campaignRepo repositories.CampaignRepository,
	profileRepo repositories.ProfileRepository,
	emailService email.Service,
	broadcaster *messaging.PipelineBroadcaster,
	logger *logging.ChanneledLogger,
) *BookingService {
	return &BookingService{
		bookingRepo:   bookingRepo,
		candidateRepo: candidateRepo,
		campaignRepo:  campaignRepo,
		profileRepo:   profileRepo,
		emailService:  emailService,
		broadcaster:   broadcaster,
		logger:        logger,
	}
}

// ScheduleRequest carries the booking parameters
type ScheduleRequest struct {
	CandidateID string    `json:"candidateId" binding:"required"`
	StartTime   time.Time `json:"startTime" binding:"required"`
	EndTime     time.Time `json:"endTime" binding:"required"`
	Location    string    `json:"location"`
	Notes       string    `json:"notes"`
	EventTypeID int       `json:"eventTypeId"`
	TimeZone    string    `json:"timeZone"`
}

// Schedule books a date for an approved candidate. When the tenant has a
// calendar provider configured the booking is mirrored there; provider
// failures degrade to a local-only booking rather than blocking the date.
func (s *BookingService) Schedule(ctx context.Context, tenantID string, req *ScheduleRequest, provider *scheduling.Provider) (*dating.Booking, error) {
	if !req.EndTime.After(req.StartTime) {
		return nil, fmt.Errorf("booking end time must be after start time")
	}

	candidate, err := s.candidateRepo.FindByID(tenantID, req.CandidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate %s: %w", req.CandidateID, err)
	}
	if candidate == nil {
		return nil, fmt.Errorf("candidate %s not found", req.CandidateID)
	}
	if candidate.CurrentStage != dating.StageApproved {
		return nil, fmt.Errorf("candidate must be approved before scheduling a date")
	}

	campaign, err := s.campaignRepo.FindByID(tenantID, candidate.CampaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to load campaign %s: %w", candidate.CampaignID, err)
	}
	if campaign == nil {
		return nil, fmt.Errorf("campaign %s not found", candidate.CampaignID)
	}

	now := time.Now().UTC()
	booking := &dating.Booking{
		ID:          security.GenerateULID(),
		CampaignID:  campaign.ID,
		CandidateID: candidate.ID,
		Status:      dating.BookingConfirmed,
		StartTime:   req.StartTime.UTC(),
		EndTime:     req.EndTime.UTC(),
		Location:    req.Location,
		Notes:       req.Notes,
		CreatedAt:   now,
	}

	if provider != nil && provider.Enabled() && req.EventTypeID > 0 {
		timeZone := req.TimeZone
		if timeZone == "" {
			timeZone = "UTC"
		}
		resp, err := provider.CreateBooking(ctx, &scheduling.BookingRequest{
			EventTypeID: req.EventTypeID,
			Start:       booking.StartTime,
			Attendee: scheduling.Attendee{
				Name:     candidate.Name,
				Email:    candidate.Email,
				TimeZone: timeZone,
			},
			Metadata: map[string]string{"campaignId": campaign.ID, "candidateId": candidate.ID},
			Notes:    req.Notes,
		})
		if err != nil {
			s.logger.Booking().Warn("Calendar booking failed, keeping local booking",
				"tenantId", tenantID, "candidateId", candidate.ID, "error", err.Error())
		} else {
			booking.ExternalUID = resp.UID
			if resp.MeetingURL != "" {
				booking.MeetingURL = resp.MeetingURL
			}
			if resp.Location != "" && booking.Location == "" {
				booking.Location = resp.Location
			}
		}
	}

	if err := s.bookingRepo.Store(tenantID, booking); err != nil {
		return nil, fmt.Errorf("failed to store booking: %w", err)
	}

	// The date is on the calendar, the candidate moves with it.
	candidate.CurrentStage = dating.StageScheduled
	candidate.StageChangedAt = &now
	if err := s.candidateRepo.Update(tenantID, candidate); err != nil {
		return nil, fmt.Errorf("failed to move candidate to scheduled: %w", err)
	}
	if err := s.candidateRepo.AppendEvent(tenantID, &dating.CandidateEvent{
		ID:          security.GenerateULID(),
		CandidateID: candidate.ID,
		EventType:   "date_scheduled",
		FromStage:   dating.StageApproved,
		ToStage:     dating.StageScheduled,
		CreatedAt:   now,
	}); err != nil {
		s.logger.Pipeline().Warn("Failed to record scheduling event",
			"tenantId", tenantID, "candidateId", candidate.ID, "error", err.Error())
	}

	s.sendConfirmations(tenantID, campaign, candidate, booking)
	s.broadcaster.BroadcastBookingUpdate(tenantID, campaign.ID, candidate.ID)
	s.logger.Booking().Info("Date scheduled",
		"tenantId", tenantID, "bookingId", booking.ID, "candidateId", candidate.ID)
	return booking, nil
}

// Cancel cancels a booking locally and, when mirrored, on the calendar.
// The candidate drops back to approved so a new date can be set up.
func (s *BookingService) Cancel(ctx context.Context, tenantID, bookingID, reason string, provider *scheduling.Provider) (*dating.Booking, error) {
	booking, err := s.bookingRepo.FindByID(tenantID, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking %s: %w", bookingID, err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s not found", bookingID)
	}
	if booking.Status == dating.BookingCancelled {
		return booking, nil
	}
	if booking.Status == dating.BookingCompleted {
		return nil, fmt.Errorf("completed bookings cannot be cancelled")
	}

	if booking.ExternalUID != "" && provider != nil && provider.Enabled() {
		if err := provider.CancelBooking(ctx, booking.ExternalUID, reason); err != nil {
			s.logger.Booking().Warn("Calendar cancellation failed",
				"tenantId", tenantID, "bookingId", bookingID, "error", err.Error())
		}
	}

	now := time.Now().UTC()
	booking.Status = dating.BookingCancelled
	booking.UpdatedAt = &now
	if err := s.bookingRepo.Update(tenantID, booking); err != nil {
		return nil, fmt.Errorf("failed to cancel booking %s: %w", bookingID, err)
	}

	if candidate, _ := s.candidateRepo.FindByID(tenantID, booking.CandidateID); candidate != nil &&
		candidate.CurrentStage == dating.StageScheduled {
		candidate.CurrentStage = dating.StageApproved
		candidate.StageChangedAt = &now
		if err := s.candidateRepo.Update(tenantID, candidate); err != nil {
			s.logger.Pipeline().Warn("Failed to move candidate back to approved",
				"tenantId", tenantID, "candidateId", candidate.ID, "error", err.Error())
		}
	}

	s.broadcaster.BroadcastBookingUpdate(tenantID, booking.CampaignID, booking.CandidateID)
	return booking, nil
}

// Reschedule moves a booking to a new window
func (s *BookingService) Reschedule(ctx context.Context, tenantID, bookingID string, start, end time.Time, provider *scheduling.Provider) (*dating.Booking, error) {
	if !end.After(start) {
		return nil, fmt.Errorf("booking end time must be after start time")
	}

	booking, err := s.bookingRepo.FindByID(tenantID, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking %s: %w", bookingID, err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s not found", bookingID)
	}
	if booking.Status != dating.BookingConfirmed && booking.Status != dating.BookingPending {
		return nil, fmt.Errorf("booking %s cannot be rescheduled in status %s", bookingID, booking.Status)
	}

	if booking.ExternalUID != "" && provider != nil && provider.Enabled() {
		if resp, err := provider.RescheduleBooking(ctx, booking.ExternalUID, start); err != nil {
			s.logger.Booking().Warn("Calendar reschedule failed",
				"tenantId", tenantID, "bookingId", bookingID, "error", err.Error())
		} else if resp.MeetingURL != "" {
			booking.MeetingURL = resp.MeetingURL
		}
	}

	now := time.Now().UTC()
	booking.StartTime = start.UTC()
	booking.EndTime = end.UTC()
	booking.UpdatedAt = &now
	if err := s.bookingRepo.Update(tenantID, booking); err != nil {
		return nil, fmt.Errorf("failed to reschedule booking %s: %w", bookingID, err)
	}

	s.broadcaster.BroadcastBookingUpdate(tenantID, booking.CampaignID, booking.CandidateID)
	return booking, nil
}

// Complete marks a booking as having happened
func (s *BookingService) Complete(tenantID, bookingID string) (*dating.Booking, error) {
	return s.finalize(tenantID, bookingID, dating.BookingCompleted, dating.StageCompleted)
}

// MarkNoShow records that the candidate did not turn up
func (s *BookingService) MarkNoShow(tenantID, bookingID string) (*dating.Booking, error) {
	return s.finalize(tenantID, bookingID, dating.BookingNoShow, dating.StageApproved)
}

// ListByCampaign returns the campaign's bookings
func (s *BookingService) ListByCampaign(tenantID, campaignID string) ([]*dating.Booking, error) {
	bookings, err := s.bookingRepo.FindByCampaign(tenantID, campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// Availability proxies the calendar provider's open slots
func (s *BookingService) Availability(ctx context.Context, provider *scheduling.Provider, eventTypeID int, from, to time.Time) ([]scheduling.Slot, error) {
	if provider == nil || !provider.Enabled() {
		return nil, fmt.Errorf("calendar integration is not configured for this tenant")
	}
	slots, err := provider.GetAvailability(ctx, eventTypeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability: %w", err)
	}
	return slots, nil
}

func (s *BookingService) finalize(tenantID, bookingID string, status dating.BookingStatus, candidateStage dating.PipelineStage) (*dating.Booking, error) {
	booking, err := s.bookingRepo.FindByID(tenantID, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking %s: %w", bookingID, err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s not found", bookingID)
	}
	if booking.Status != dating.BookingConfirmed {
		return nil, fmt.Errorf("booking %s is not confirmed", bookingID)
	}

	now := time.Now().UTC()
	booking.Status = status
	booking.UpdatedAt = &now
	if err := s.bookingRepo.Update(tenantID, booking); err != nil {
		return nil, fmt.Errorf("failed to update booking %s: %w", bookingID, err)
	}

	if candidate, _ := s.candidateRepo.FindByID(tenantID, booking.CandidateID); candidate != nil &&
		candidate.CurrentStage == dating.StageScheduled {
		candidate.CurrentStage = candidateStage
		candidate.StageChangedAt = &now
		if err := s.candidateRepo.Update(tenantID, candidate); err != nil {
			s.logger.Pipeline().Warn("Failed to update candidate after booking close",
				"tenantId", tenantID, "candidateId", candidate.ID, "error", err.Error())
		}
	}

	s.broadcaster.BroadcastBookingUpdate(tenantID, booking.CampaignID, booking.CandidateID)
	return booking, nil
}

// sendConfirmations emails both sides of the date. The candidate always gets
// one; the single's goes to their profile address.
func (s *BookingService) sendConfirmations(tenantID string, campaign *dating.Campaign, candidate *dating.Candidate, booking *dating.Booking) {
	when := booking.StartTime.Format("Monday, January 2, 2006 at 3:04 PM MST")

	if err := s.emailService.SendBookingConfirmedEmail(candidate.Email, candidate.Name, campaign.Title, when, booking.Location, booking.MeetingURL); err != nil {
		s.logger.Email().Warn("Candidate booking email failed",
			"tenantId", tenantID, "bookingId", booking.ID, "error", err.Error())
	}

	single, err := s.profileRepo.FindByID(tenantID, campaign.SingleID)
	if err != nil || single == nil {
		s.logger.Email().Warn("Could not load single for booking email",
			"tenantId", tenantID, "bookingId", booking.ID)
		return
	}
	if err := s.emailService.SendBookingConfirmedEmail(single.Email, single.DisplayName, campaign.Title, when, booking.Location, booking.MeetingURL); err != nil {
		s.logger.Email().Warn("Single booking email failed",
			"tenantId", tenantID, "bookingId", booking.ID, "error", err.Error())
	}
}

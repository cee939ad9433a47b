// Package email provides the email client for sending transactional emails.
package email

import (
	"fmt"

	"github.com/resendlabs/resend-go"

	"github.com/blindcal/blindcal-go/internal/infrastructure/email/templates"
	"github.com/blindcal/blindcal-go/internal/infrastructure/observability/logging"
	"github.com/blindcal/blindcal-go/pkg/config"
)

// Service defines the interface for sending emails, allowing for mock implementations in tests.
type Service interface {
	SendApplicationReceivedEmail(toEmail, candidateName, campaignTitle string) error
	SendBookingConfirmedEmail(toEmail, recipientName, campaignTitle, startTime, location, meetingURL string) error
	SendDelegationInviteEmail(toEmail, singleName, inviteURL, trustLevel string) error
}

// ResendClient is the concrete implementation of the email Service using the Resend API.
type ResendClient struct {
	client *resend.Client
	from   string
	logger *logging.ChanneledLogger
}

// NewService creates a new email service client, returning the Service interface.
func NewService(logger *logging.ChanneledLogger) (Service, error) {
	if config.ResendAPIKey == "" {
		return nil, fmt.Errorf("RESEND_API_KEY environment variable is required")
	}

	return &ResendClient{
		client: resend.NewClient(config.ResendAPIKey),
		from:   config.EmailFrom,
		logger: logger,
	}, nil
}

// DisabledService satisfies Service when no email provider is configured.
// Every send fails, callers already log and continue.
type DisabledService struct{}

func (DisabledService) SendApplicationReceivedEmail(toEmail, candidateName, campaignTitle string) error {
	return fmt.Errorf("email delivery is not configured")
}

func (DisabledService) SendBookingConfirmedEmail(toEmail, recipientName, campaignTitle, startTime, location, meetingURL string) error {
	return fmt.Errorf("email delivery is not configured")
}

func (DisabledService) SendDelegationInviteEmail(toEmail, singleName, inviteURL, trustLevel string) error {
	return fmt.Errorf("email delivery is not configured")
}

// SendApplicationReceivedEmail confirms a candidate's application landed.
func (c *ResendClient) SendApplicationReceivedEmail(toEmail, candidateName, campaignTitle string) error {
	content := templates.GetApplicationReceivedContent(templates.ApplicationReceivedProps{
		CandidateName: candidateName,
		CampaignTitle: campaignTitle,
	})

	return c.send(toEmail, fmt.Sprintf("Application received - %s", campaignTitle), content, "application_received")
}

// SendBookingConfirmedEmail notifies a participant of a confirmed date.
func (c *ResendClient) SendBookingConfirmedEmail(toEmail, recipientName, campaignTitle, startTime, location, meetingURL string) error {
	content := templates.GetBookingConfirmedContent(templates.BookingConfirmedProps{
		RecipientName: recipientName,
		CampaignTitle: campaignTitle,
		StartTime:     startTime,
		Location:      location,
		MeetingURL:    meetingURL,
	})

	return c.send(toEmail, "Your date is confirmed", content, "booking_confirmed")
}

// SendDelegationInviteEmail invites a prospective wingman.
func (c *ResendClient) SendDelegationInviteEmail(toEmail, singleName, inviteURL, trustLevel string) error {
	content := templates.GetDelegationInviteContent(templates.DelegationInviteProps{
		SingleName: singleName,
		InviteURL:  inviteURL,
		TrustLevel: trustLevel,
	})

	return c.send(toEmail, fmt.Sprintf("%s wants you as their wingman", singleName), content, "delegation_invite")
}

// send wraps content in the shared layout and dispatches through Resend.
func (c *ResendClient) send(toEmail, subject, content, emailType string) error {
	htmlContent := templates.GetEmailLayout(templates.EmailLayoutProps{
		Content: content,
	})

	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{toEmail},
		Subject: subject,
		Html:    htmlContent,
	}

	_, err := c.client.Emails.Send(params)
	if err != nil {
		if c.logger != nil {
			c.logger.Email().Error("Email send failed", "type", emailType, "error", err.Error())
		}
		return fmt.Errorf("failed to send %s email via Resend: %w", emailType, err)
	}

	if c.logger != nil {
		c.logger.Email().Info("Email sent", "type", emailType, "subject", subject)
	}
	return nil
}

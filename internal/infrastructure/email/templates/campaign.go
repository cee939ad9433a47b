// Package templates provides campaign email content
package templates

import (
	"fmt"
	"strings"
)

// ApplicationReceivedProps carries the data for the candidate confirmation email
type ApplicationReceivedProps struct {
	CandidateName string
	CampaignTitle string
}

// GetApplicationReceivedContent builds the body sent to a candidate after
// they apply to a campaign.
func GetApplicationReceivedContent(props ApplicationReceivedProps) string {
	name := props.CandidateName
	if name == "" {
		name = "there"
	}

	var sb strings.Builder
	sb.WriteString(GetHeading("Application received"))
	sb.WriteString(GetParagraph(fmt.Sprintf("Hi %s,", name)))
	sb.WriteString(GetParagraph(fmt.Sprintf(
		"Thanks for applying to %s. The matchmaker is reviewing applications and will be in touch if it looks like a fit.", props.CampaignTitle)))
	sb.WriteString(GetParagraph("No need to do anything else for now. Good luck!"))
	return sb.String()
}

// BookingConfirmedProps carries the data for the date confirmation email
type BookingConfirmedProps struct {
	RecipientName string
	CampaignTitle string
	StartTime     string
	Location      string
	MeetingURL    string
}

// GetBookingConfirmedContent builds the body sent to both sides once a date
// is confirmed.
func GetBookingConfirmedContent(props BookingConfirmedProps) string {
	name := props.RecipientName
	if name == "" {
		name = "there"
	}

	var sb strings.Builder
	sb.WriteString(GetHeading("Your date is confirmed"))
	sb.WriteString(GetParagraph(fmt.Sprintf("Hi %s,", name)))
	sb.WriteString(GetParagraph(fmt.Sprintf("A date has been scheduled through %s.", props.CampaignTitle)))
	sb.WriteString(GetParagraph(fmt.Sprintf("When: %s", props.StartTime)))
	if props.Location != "" {
		sb.WriteString(GetParagraph(fmt.Sprintf("Where: %s", props.Location)))
	}
	if props.MeetingURL != "" {
		sb.WriteString(GetButton(ButtonProps{
			Text: "Join the date",
			URL:  props.MeetingURL,
		}))
	}
	sb.WriteString(GetParagraph("If you need to reschedule, reply through your campaign page."))
	return sb.String()
}

// DelegationInviteProps carries the data for the wingman invite email
type DelegationInviteProps struct {
	SingleName string
	InviteURL  string
	TrustLevel string
}

// GetDelegationInviteContent builds the body sent to a prospective wingman.
func GetDelegationInviteContent(props DelegationInviteProps) string {
	var sb strings.Builder
	sb.WriteString(GetHeading("You've been asked to be a wingman"))
	sb.WriteString(GetParagraph(fmt.Sprintf(
		"%s wants you to run their dating search. You'd screen candidates, manage the pipeline, and help set up dates on their behalf.", props.SingleName)))
	if props.TrustLevel != "" {
		sb.WriteString(GetParagraph(fmt.Sprintf("Trust level offered: %s", props.TrustLevel)))
	}
	sb.WriteString(GetButton(ButtonProps{
		Text: "Accept the invite",
		URL:  props.InviteURL,
	}))
	sb.WriteString(GetParagraph("This invite link is personal to you. If you weren't expecting it, you can ignore this email."))
	return sb.String()
}

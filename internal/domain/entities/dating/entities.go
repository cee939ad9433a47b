// Package dating defines the application's core domain entities: profiles,
// delegations, campaigns, candidates, bookings, and masked messaging.
package dating

import "time"

// PipelineStage is a candidate's position in the screening pipeline.
type PipelineStage string

const (
	StageNew       PipelineStage = "new"
	StageScreening PipelineStage = "screening"
	StageProposed  PipelineStage = "proposed"
	StageApproved  PipelineStage = "approved"
	StageScheduled PipelineStage = "scheduled"
	StageCompleted PipelineStage = "completed"
	StageRejected  PipelineStage = "rejected"
	StageArchived  PipelineStage = "archived"
)

// ValidStage reports whether s is a known pipeline stage.
func ValidStage(s PipelineStage) bool {
	switch s {
	case StageNew, StageScreening, StageProposed, StageApproved,
		StageScheduled, StageCompleted, StageRejected, StageArchived:
		return true
	}
	return false
}

// Active reports whether the candidate still counts toward the campaign's
// active pool.
func (s PipelineStage) Active() bool {
	return s != StageRejected && s != StageArchived
}

// BookingStatus is the lifecycle state of a scheduled date.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
	BookingNoShow    BookingStatus = "no_show"
)

// TrustLevel is how much autonomy a single grants their wingman.
type TrustLevel string

const (
	TrustFullDelegation   TrustLevel = "full_delegation"
	TrustApprovalRequired TrustLevel = "approval_required"
	TrustViewOnly         TrustLevel = "view_only"
)

// DisclosureLevel controls how much of the single's identity a candidate
// sees at a given point in the pipeline.
type DisclosureLevel string

const (
	DisclosureAnonymous     DisclosureLevel = "anonymous"
	DisclosureFirstName     DisclosureLevel = "first_name"
	DisclosureFullProfile   DisclosureLevel = "full_profile"
	DisclosureContactShared DisclosureLevel = "contact_shared"
)

// UserRole identifies which side of a campaign an actor is on.
type UserRole string

const (
	RoleWingman   UserRole = "wingman"
	RoleSingle    UserRole = "single"
	RoleCandidate UserRole = "candidate"
)

// Profile is a registered wingman or single.
type Profile struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	DisplayName  string     `json:"displayName"`
	Bio          string     `json:"bio,omitempty"`
	DateOfBirth  string     `json:"dateOfBirth,omitempty"`
	AvatarURL    string     `json:"avatarUrl,omitempty"`
	Role         UserRole   `json:"role"`
	PasswordHash string     `json:"-"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

// Delegation links a single to a wingman with an explicit trust grant.
type Delegation struct {
	ID                   string     `json:"id"`
	SingleID             string     `json:"singleId"`
	WingmanID            string     `json:"wingmanId"`
	TrustLevel           TrustLevel `json:"trustLevel"`
	CanProposeTimes      bool       `json:"canProposeTimes"`
	CanBookDirectly      bool       `json:"canBookDirectly"`
	CanMessageCandidates bool       `json:"canMessageCandidates"`
	CanViewCalendar      bool       `json:"canViewCalendar"`
	InviteToken          string     `json:"-"`
	IsActive             bool       `json:"isActive"`
	AcceptedAt           *time.Time `json:"acceptedAt,omitempty"`
	RevokedAt            *time.Time `json:"revokedAt,omitempty"`
	CreatedAt            time.Time  `json:"createdAt"`
}

// CustomQuestion is one campaign-specific application prompt.
type CustomQuestion struct {
	Question string `json:"question"`
	Required bool   `json:"required"`
}

// Campaign is a wingman-run search for one single.
type Campaign struct {
	ID                      string           `json:"id"`
	WingmanID               string           `json:"wingmanId"`
	SingleID                string           `json:"singleId"`
	DelegationID            string           `json:"delegationId"`
	Title                   string           `json:"title"`
	Slug                    string           `json:"slug"`
	Tagline                 string           `json:"tagline,omitempty"`
	Description             string           `json:"description,omitempty"`
	TemplateID              string           `json:"templateId"`
	CustomTemplate          string           `json:"customTemplate,omitempty"`
	PrimaryColor            string           `json:"primaryColor,omitempty"`
	AccentColor             string           `json:"accentColor,omitempty"`
	IsPublished             bool             `json:"isPublished"`
	IsAcceptingApplications bool             `json:"isAcceptingApplications"`
	RequiresPhoto           bool             `json:"requiresPhoto"`
	RequiresBio             bool             `json:"requiresBio"`
	ShowWingmanName         bool             `json:"showWingmanName"`
	ShowSingleBio           bool             `json:"showSingleBio"`
	InitialDisclosure       DisclosureLevel  `json:"initialDisclosure"`
	MaxActiveCandidates     int              `json:"maxActiveCandidates"`
	CustomQuestions         []CustomQuestion `json:"customQuestions,omitempty"`
	CreatedAt               time.Time        `json:"createdAt"`
	PublishedAt             *time.Time       `json:"publishedAt,omitempty"`
	UpdatedAt               *time.Time       `json:"updatedAt,omitempty"`
}

// Candidate is one application to a campaign, moving through the pipeline.
type Candidate struct {
	ID              string            `json:"id"`
	CampaignID      string            `json:"campaignId"`
	Name            string            `json:"name"`
	Email           string            `json:"email"`
	Bio             string            `json:"bio,omitempty"`
	PhotoURL        string            `json:"photoUrl,omitempty"`
	Answers         map[string]string `json:"answers,omitempty"`
	CurrentStage    PipelineStage     `json:"currentStage"`
	Disclosure      DisclosureLevel   `json:"disclosure"`
	WingmanNotes    string            `json:"wingmanNotes,omitempty"`
	Rating          int               `json:"rating,omitempty"`
	StageChangedAt  *time.Time        `json:"stageChangedAt,omitempty"`
	ProposedAt      *time.Time        `json:"proposedAt,omitempty"`
	ApprovedAt      *time.Time        `json:"approvedAt,omitempty"`
	RejectedAt      *time.Time        `json:"rejectedAt,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
}

// CandidateEvent is one audit record of pipeline activity.
type CandidateEvent struct {
	ID          string        `json:"id"`
	CandidateID string        `json:"candidateId"`
	EventType   string        `json:"eventType"`
	FromStage   PipelineStage `json:"fromStage,omitempty"`
	ToStage     PipelineStage `json:"toStage,omitempty"`
	ActorID     string        `json:"actorId,omitempty"`
	ActorRole   UserRole      `json:"actorRole,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// Booking is a scheduled date between the single and a candidate.
type Booking struct {
	ID          string        `json:"id"`
	CampaignID  string        `json:"campaignId"`
	CandidateID string        `json:"candidateId"`
	Status      BookingStatus `json:"status"`
	StartTime   time.Time     `json:"startTime"`
	EndTime     time.Time     `json:"endTime"`
	Location    string        `json:"location,omitempty"`
	MeetingURL  string        `json:"meetingUrl,omitempty"`
	ExternalUID string        `json:"externalUid,omitempty"`
	Notes       string        `json:"notes,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   *time.Time    `json:"updatedAt,omitempty"`
}

// MessageThread groups masked messages between the campaign side and one
// candidate.
type MessageThread struct {
	ID            string     `json:"id"`
	CampaignID    string     `json:"campaignId"`
	CandidateID   string     `json:"candidateId"`
	CreatedAt     time.Time  `json:"createdAt"`
	LastMessageAt *time.Time `json:"lastMessageAt,omitempty"`
}

// Message is one entry in a thread. SenderEmail is stored masked; the raw
// address never leaves the profile/candidate rows.
type Message struct {
	ID          string    `json:"id"`
	ThreadID    string    `json:"threadId"`
	SenderRole  UserRole  `json:"senderRole"`
	SenderID    string    `json:"senderId,omitempty"`
	SenderEmail string    `json:"senderEmail,omitempty"`
	Body        string    `json:"body"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CandidateStats are the aggregate counts surfaced on landing pages.
type CandidateStats struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

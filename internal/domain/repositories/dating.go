// Package repositories defines the repository interfaces for the dating
// domain. These abstract persistence so services stay decoupled from the
// per-tenant database wiring.
package repositories

import (
	"github.com/blindcal/blindcal-go/internal/domain/entities/dating"
)

type ProfileRepository interface {
	FindByID(tenantID, id string) (*dating.Profile, error)
	FindByEmail(tenantID, email string) (*dating.Profile, error)
	Store(tenantID string, profile *dating.Profile) error
	Update(tenantID string, profile *dating.Profile) error
}

type DelegationRepository interface {
	FindByID(tenantID, id string) (*dating.Delegation, error)
	FindByInviteToken(tenantID, token string) (*dating.Delegation, error)
	FindForProfile(tenantID, profileID string) ([]*dating.Delegation, error)
	Store(tenantID string, delegation *dating.Delegation) error
	Update(tenantID string, delegation *dating.Delegation) error
}

type CampaignRepository interface {
	FindByID(tenantID, id string) (*dating.Campaign, error)
	FindBySlug(tenantID, slug string) (*dating.Campaign, error)
	FindByWingman(tenantID, wingmanID string) ([]*dating.Campaign, error)
	Store(tenantID string, campaign *dating.Campaign) error
	Update(tenantID string, campaign *dating.Campaign) error
	Delete(tenantID, id string) error
}

type CandidateRepository interface {
	FindByID(tenantID, id string) (*dating.Candidate, error)
	FindByCampaign(tenantID, campaignID string) ([]*dating.Candidate, error)
	CountByCampaign(tenantID, campaignID string) (*dating.CandidateStats, error)
	Store(tenantID string, candidate *dating.Candidate) error
	Update(tenantID string, candidate *dating.Candidate) error
	Delete(tenantID, id string) error
	AppendEvent(tenantID string, event *dating.CandidateEvent) error
	FindEvents(tenantID, candidateID string) ([]*dating.CandidateEvent, error)
}

type BookingRepository interface {
	FindByID(tenantID, id string) (*dating.Booking, error)
	FindByCampaign(tenantID, campaignID string) ([]*dating.Booking, error)
	CountForCandidate(tenantID, candidateID string) (int, error)
	Store(tenantID string, booking *dating.Booking) error
	Update(tenantID string, booking *dating.Booking) error
}

type MessageRepository interface {
	FindThreadByID(tenantID, id string) (*dating.MessageThread, error)
	FindThreadForCandidate(tenantID, campaignID, candidateID string) (*dating.MessageThread, error)
	FindThreadsByCampaign(tenantID, campaignID string) ([]*dating.MessageThread, error)
	StoreThread(tenantID string, thread *dating.MessageThread) error
	FindMessages(tenantID, threadID string) ([]*dating.Message, error)
	StoreMessage(tenantID string, message *dating.Message) error
}

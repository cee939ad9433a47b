// Package messaging provides the live pipeline broadcaster. Wingman and
// single dashboards hold a WebSocket per campaign and receive pipeline
// activity as it happens.
package messaging

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/blindcal/blindcal-go/internal/domain/entities/dating"
	"github.com/blindcal/blindcal-go/internal/infrastructure/observability/logging"
	"github.com/blindcal/blindcal-go/pkg/config"
)

// PipelineClient represents a single connected dashboard client.
type PipelineClient struct {
	Conn       *websocket.Conn
	TenantID   string
	CampaignID string
	ProfileID  string
	Send       chan []byte
}

// PipelineEvent is the wire format pushed to dashboard clients.
type PipelineEvent struct {
	Type        string               `json:"type"` // "stage_change", "application", "booking", "message"
	CampaignID  string               `json:"campaignId"`
	CandidateID string               `json:"candidateId,omitempty"`
	FromStage   dating.PipelineStage `json:"fromStage,omitempty"`
	ToStage     dating.PipelineStage `json:"toStage,omitempty"`
	ActorRole   dating.UserRole      `json:"actorRole,omitempty"`
	OccurredAt  time.Time            `json:"occurredAt"`
}

type outbound struct {
	key     string
	message []byte
}

// PipelineBroadcaster manages connected dashboard clients grouped by
// tenant and campaign.
type PipelineBroadcaster struct {
	campaignClients map[string]map[*PipelineClient]bool // "tenantId:campaignId" -> clients
	register        chan *PipelineClient
	unregister      chan *PipelineClient
	broadcast       chan outbound
	logger          *logging.ChanneledLogger
	mu              sync.RWMutex
}

// NewPipelineBroadcaster creates a new broadcaster instance.
func NewPipelineBroadcaster(logger *logging.ChanneledLogger) *PipelineBroadcaster {
	return &PipelineBroadcaster{
		campaignClients: make(map[string]map[*PipelineClient]bool),
		register:        make(chan *PipelineClient),
		unregister:      make(chan *PipelineClient),
		broadcast:       make(chan outbound, config.PipelineSendBuffer),
		logger:          logger,
	}
}

func clientKey(tenantID, campaignID string) string {
	return tenantID + ":" + campaignID
}

// Run starts the broadcaster's main loop. This should be run as a goroutine.
func (b *PipelineBroadcaster) Run() {
	ticker := time.NewTicker(config.PipelinePingInterval)
	defer ticker.Stop()

	for {
		select {
		case client := <-b.register:
			key := clientKey(client.TenantID, client.CampaignID)
			b.mu.Lock()
			if _, ok := b.campaignClients[key]; !ok {
				b.campaignClients[key] = make(map[*PipelineClient]bool)
			}
			b.campaignClients[key][client] = true
			b.mu.Unlock()
			if b.logger != nil {
				b.logger.Pipeline().Debug("Pipeline client registered",
					"tenantId", client.TenantID, "campaignId", client.CampaignID)
			}

		case client := <-b.unregister:
			key := clientKey(client.TenantID, client.CampaignID)
			b.mu.Lock()
			if clients, ok := b.campaignClients[key]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.Send)
					if len(clients) == 0 {
						delete(b.campaignClients, key)
					}
				}
			}
			b.mu.Unlock()
			if b.logger != nil {
				b.logger.Pipeline().Debug("Pipeline client unregistered",
					"tenantId", client.TenantID, "campaignId", client.CampaignID)
			}

		case out := <-b.broadcast:
			b.deliver(out)

		case <-ticker.C:
			b.pingClients()
		}
	}
}

// Register queues a client for registration.
func (b *PipelineBroadcaster) Register(client *PipelineClient) {
	b.register <- client
}

// Unregister queues a client for unregistration.
func (b *PipelineBroadcaster) Unregister(client *PipelineClient) {
	b.unregister <- client
}

// BroadcastStageChange pushes a stage transition to every dashboard
// watching the campaign.
func (b *PipelineBroadcaster) BroadcastStageChange(tenantID, campaignID, candidateID string, from, to dating.PipelineStage, actorRole dating.UserRole) {
	b.broadcastEvent(tenantID, campaignID, PipelineEvent{
		Type:        "stage_change",
		CampaignID:  campaignID,
		CandidateID: candidateID,
		FromStage:   from,
		ToStage:     to,
		ActorRole:   actorRole,
		OccurredAt:  time.Now().UTC(),
	})
}

// BroadcastApplication announces a new candidate landing in the pipeline.
func (b *PipelineBroadcaster) BroadcastApplication(tenantID, campaignID, candidateID string) {
	b.broadcastEvent(tenantID, campaignID, PipelineEvent{
		Type:        "application",
		CampaignID:  campaignID,
		CandidateID: candidateID,
		OccurredAt:  time.Now().UTC(),
	})
}

// BroadcastBookingUpdate announces booking lifecycle changes.
func (b *PipelineBroadcaster) BroadcastBookingUpdate(tenantID, campaignID, candidateID string) {
	b.broadcastEvent(tenantID, campaignID, PipelineEvent{
		Type:        "booking",
		CampaignID:  campaignID,
		CandidateID: candidateID,
		OccurredAt:  time.Now().UTC(),
	})
}

// BroadcastMessage announces new thread activity without the body. Clients
// refetch the thread, message content never crosses the pipeline socket.
func (b *PipelineBroadcaster) BroadcastMessage(tenantID, campaignID, candidateID string) {
	b.broadcastEvent(tenantID, campaignID, PipelineEvent{
		Type:        "message",
		CampaignID:  campaignID,
		CandidateID: candidateID,
		OccurredAt:  time.Now().UTC(),
	})
}

func (b *PipelineBroadcaster) broadcastEvent(tenantID, campaignID string, event PipelineEvent) {
	message, err := json.Marshal(event)
	if err != nil {
		log.Printf("Error marshaling pipeline event for tenant %s: %v", tenantID, err)
		return
	}

	select {
	case b.broadcast <- outbound{key: clientKey(tenantID, campaignID), message: message}:
	default:
		// Broadcast queue full, dashboards resync on next fetch.
		if b.logger != nil {
			b.logger.Pipeline().Warn("Pipeline broadcast queue full, event dropped",
				"tenantId", tenantID, "campaignId", campaignID, "type", event.Type)
		}
	}
}

func (b *PipelineBroadcaster) deliver(out outbound) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if clients, ok := b.campaignClients[out.key]; ok {
		for client := range clients {
			select {
			case client.Send <- out.message:
			default:
				// Slow client, skip rather than block the loop.
			}
		}
	}
}

// pingClients keeps idle sockets alive through proxies.
func (b *PipelineBroadcaster) pingClients() {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, clients := range b.campaignClients {
		for client := range clients {
			if err := client.Conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				continue
			}
		}
	}
}

// ClientCount reports connected clients for a campaign, used by health checks.
func (b *PipelineBroadcaster) ClientCount(tenantID, campaignID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.campaignClients[clientKey(tenantID, campaignID)])
}

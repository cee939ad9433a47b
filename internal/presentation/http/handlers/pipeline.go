package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/blindcal/blindcal-go/internal/infrastructure/messaging"
	"github.com/blindcal/blindcal-go/internal/infrastructure/observability/logging"
	"github.com/blindcal/blindcal-go/internal/presentation/http/middleware"
)

var pipelineUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin is enforced by the domain validation middleware.
		return true
	},
}

// PipelineHandlers serves the live pipeline WebSocket
type PipelineHandlers struct {
	broadcaster *messaging.PipelineBroadcaster
	logger      *logging.ChanneledLogger
}

// NewPipelineHandlers creates pipeline socket handlers with injected dependencies
func NewPipelineHandlers(broadcaster *messaging.PipelineBroadcaster, logger *logging.ChanneledLogger) *PipelineHandlers {
	return &PipelineHandlers{broadcaster: broadcaster, logger: logger}
}

// GetPipelineSocket handles GET /api/v1/campaigns/:id/pipeline/ws - dashboards
// subscribe to live pipeline events for one campaign.
func (h *PipelineHandlers) GetPipelineSocket(c *gin.Context) {
	tenantCtx, exists := middleware.GetTenantContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant context not found"})
		return
	}
	session, exists := middleware.GetSession(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	campaignID := c.Param("id")
	if campaignID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "campaign ID is required"})
		return
	}

	conn, err := pipelineUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Pipeline().Error("WebSocket upgrade failed",
			"tenantId", tenantCtx.TenantID, "campaignId", campaignID, "error", err.Error())
		return
	}

	client := &messaging.PipelineClient{
		Conn:       conn,
		TenantID:   tenantCtx.TenantID,
		CampaignID: campaignID,
		ProfileID:  session.ProfileID,
		Send:       make(chan []byte, 16),
	}

	h.broadcaster.Register(client)

	go h.writePump(client)
	go h.readPump(client)
}

// writePump drains the client's send channel onto the socket. The channel is
// closed by the broadcaster on unregister, which ends the loop.
func (h *PipelineHandlers) writePump(client *messaging.PipelineClient) {
	defer client.Conn.Close()

	for message := range client.Send {
		client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}

	client.Conn.SetWriteDeadline(time.Now().Add(time.Second))
	client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// readPump discards inbound frames. The socket is push-only, reading is
// required to process control frames and detect disconnects.
func (h *PipelineHandlers) readPump(client *messaging.PipelineClient) {
	defer h.broadcaster.Unregister(client)

	client.Conn.SetReadLimit(512)
	client.Conn.SetReadDeadline(time.Now().Add(90 * time.Second))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(90 * time.Second))
		return nil
	})

	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			return
		}
	}
}

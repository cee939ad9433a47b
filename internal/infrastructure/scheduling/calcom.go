// Package scheduling wraps the Cal.com v2 API for date booking.
package scheduling

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/blindcal/blindcal-go/internal/infrastructure/observability/logging"
	"github.com/blindcal/blindcal-go/pkg/config"
)

const apiVersion = "2024-08-13"

// Provider is a per-tenant Cal.com client. Each tenant carries its own API
// key in env.json.
type Provider struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *logging.ChanneledLogger
}

// NewProvider creates a Cal.com provider for a tenant
func NewProvider(apiKey string, logger *logging.ChanneledLogger) *Provider {
	return &Provider{
		apiKey:  apiKey,
		baseURL: config.CalendarBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

// Enabled reports whether the tenant has calendar integration configured
func (p *Provider) Enabled() bool {
	return p.apiKey != ""
}

// EventType is a bookable meeting definition on the connected calendar
type EventType struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Length      int    `json:"lengthInMinutes"`
}

// Slot is a single available start time
type Slot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Attendee identifies who the booking is for
type Attendee struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	TimeZone string `json:"timeZone"`
}

// BookingRequest is the payload for creating a booking
type BookingRequest struct {
	EventTypeID int               `json:"eventTypeId"`
	Start       time.Time         `json:"start"`
	Attendee    Attendee          `json:"attendee"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	Notes       string            `json:"notes,omitempty"`
}

// BookingResponse is the subset of the Cal.com booking we track
type BookingResponse struct {
	UID        string    `json:"uid"`
	Status     string    `json:"status"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	MeetingURL string    `json:"meetingUrl,omitempty"`
	Location   string    `json:"location,omitempty"`
}

// GetEventTypes lists the bookable event types on the connected account
func (p *Provider) GetEventTypes(ctx context.Context) ([]EventType, error) {
	var result struct {
		Data []EventType `json:"data"`
	}
	if err := p.do(ctx, http.MethodGet, "/event-types", nil, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

// GetAvailability returns available 30-minute slots for an event type in
// the given window.
func (p *Provider) GetAvailability(ctx context.Context, eventTypeID int, startTime, endTime time.Time) ([]Slot, error) {
	params := url.Values{}
	params.Set("startTime", startTime.UTC().Format(time.RFC3339))
	params.Set("endTime", endTime.UTC().Format(time.RFC3339))
	params.Set("eventTypeId", fmt.Sprintf("%d", eventTypeID))

	var result struct {
		Data map[string][]struct {
			Start time.Time `json:"start"`
		} `json:"data"`
	}
	if err := p.do(ctx, http.MethodGet, "/slots/available?"+params.Encode(), nil, &result); err != nil {
		return nil, err
	}

	var slots []Slot
	for _, daySlots := range result.Data {
		for _, s := range daySlots {
			slots = append(slots, Slot{
				Start: s.Start,
				End:   s.Start.Add(30 * time.Minute),
			})
		}
	}
	return slots, nil
}

// CreateBooking books a slot for an attendee
func (p *Provider) CreateBooking(ctx context.Context, req *BookingRequest) (*BookingResponse, error) {
	var result struct {
		Data BookingResponse `json:"data"`
	}
	if err := p.do(ctx, http.MethodPost, "/bookings", req, &result); err != nil {
		return nil, err
	}
	return &result.Data, nil
}

// GetBooking fetches a booking by its Cal.com UID. Returns nil when the
// booking cannot be fetched, callers treat local state as authoritative.
func (p *Provider) GetBooking(ctx context.Context, uid string) *BookingResponse {
	var result struct {
		Data BookingResponse `json:"data"`
	}
	if err := p.do(ctx, http.MethodGet, "/bookings/"+uid, nil, &result); err != nil {
		if p.logger != nil {
			p.logger.Booking().Warn("Calendar booking fetch failed", "uid", uid, "error", err.Error())
		}
		return nil
	}
	return &result.Data
}

// CancelBooking cancels a booking with a reason
func (p *Provider) CancelBooking(ctx context.Context, uid, reason string) error {
	body := map[string]string{"cancellationReason": reason}
	return p.do(ctx, http.MethodPost, "/bookings/"+uid+"/cancel", body, nil)
}

// RescheduleBooking moves a booking to a new start time
func (p *Provider) RescheduleBooking(ctx context.Context, uid string, start time.Time) (*BookingResponse, error) {
	body := map[string]string{"start": start.UTC().Format(time.RFC3339)}

	var result struct {
		Data BookingResponse `json:"data"`
	}
	if err := p.do(ctx, http.MethodPost, "/bookings/"+uid+"/reschedule", body, &result); err != nil {
		return nil, err
	}
	return &result.Data, nil
}

// do executes a request against the Cal.com API and decodes the response
func (p *Provider) do(ctx context.Context, method, path string, body, out any) error {
	if p.apiKey == "" {
		return fmt.Errorf("calendar provider not configured")
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode calendar request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build calendar request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("cal-api-version", apiVersion)

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("calendar request failed: %w", err)
	}
	defer resp.Body.Close()

	if p.logger != nil {
		p.logger.Booking().Debug("Calendar API call",
			"method", method, "path", path, "status", resp.StatusCode, "duration", time.Since(start))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("calendar API returned %d: %s", resp.StatusCode, string(data))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode calendar response: %w", err)
	}
	return nil
}

// Package dating provides booking repository
package dating

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/blindcal/blindcal-go/internal/domain/entities/dating"
	"github.com/blindcal/blindcal-go/internal/infrastructure/observability/logging"
	"github.com/blindcal/blindcal-go/pkg/config"
)

const bookingColumns = `id, campaign_id, candidate_id, status, start_time, end_time,
	location, meeting_url, external_uid, notes, created_at, updated_at`

type BookingRepository struct {
	db     *sql.DB
	logger *logging.ChanneledLogger
}

func NewBookingRepository(db *sql.DB, logger *logging.ChanneledLogger) *BookingRepository {
	return &BookingRepository{
		db:     db,
		logger: logger,
	}
}

func (r *BookingRepository) FindByID(tenantID, id string) (*dating.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`

	start := time.Now()

	row := r.db.QueryRow(query, id)
	booking, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Database().Error("Failed to scan booking", "error", err.Error(), "id", id)
		return nil, fmt.Errorf("failed to scan booking: %w", err)
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, tenantID)
	}
	return booking, nil
}

func (r *BookingRepository) FindByCampaign(tenantID, campaignID string) ([]*dating.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE campaign_id = ? ORDER BY start_time ASC`

	start := time.Now()
	r.logger.Database().Debug("Loading bookings for campaign", "campaignId", campaignID)

	rows, err := r.db.Query(query, campaignID)
	if err != nil {
		r.logger.Database().Error("Failed to query bookings", "error", err.Error(), "campaignId", campaignID)
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*dating.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, tenantID)
	}
	return bookings, rows.Err()
}

// CountForCandidate counts non-cancelled bookings, used to block candidate
// deletion once dates exist.
func (r *BookingRepository) CountForCandidate(tenantID, candidateID string) (int, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE candidate_id = ? AND status != 'cancelled'`

	start := time.Now()

	var count int
	err := r.db.QueryRow(query, candidateID).Scan(&count)
	if err != nil {
		r.logger.Database().Error("Booking count failed", "error", err.Error(), "candidateId", candidateID)
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, tenantID)
	}
	return count, nil
}

func (r *BookingRepository) Store(tenantID string, booking *dating.Booking) error {
	query := `INSERT INTO bookings (` + bookingColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	start := time.Now()
	r.logger.Database().Debug("Executing booking insert", "id", booking.ID, "candidateId", booking.CandidateID)

	_, err := r.db.Exec(query,
		booking.ID, booking.CampaignID, booking.CandidateID, string(booking.Status),
		booking.StartTime, booking.EndTime, booking.Location, booking.MeetingURL,
		booking.ExternalUID, booking.Notes, booking.CreatedAt, booking.UpdatedAt)
	if err != nil {
		r.logger.Database().Error("Booking insert failed", "error", err.Error(), "id", booking.ID)
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	r.logger.Database().Info("Booking insert completed", "id", booking.ID, "duration", time.Since(start))
	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, tenantID)
	}
	return nil
}

func (r *BookingRepository) Update(tenantID string, booking *dating.Booking) error {
	query := `UPDATE bookings SET status = ?, start_time = ?, end_time = ?, location = ?,
		meeting_url = ?, external_uid = ?, notes = ?, updated_at = ? WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Executing booking update", "id", booking.ID, "status", booking.Status)

	_, err := r.db.Exec(query,
		string(booking.Status), booking.StartTime, booking.EndTime, booking.Location,
		booking.MeetingURL, booking.ExternalUID, booking.Notes, booking.UpdatedAt, booking.ID)
	if err != nil {
		r.logger.Database().Error("Booking update failed", "error", err.Error(), "id", booking.ID)
		return fmt.Errorf("failed to update booking: %w", err)
	}

	r.logger.Database().Info("Booking update completed", "id", booking.ID, "duration", time.Since(start))
	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, tenantID)
	}
	return nil
}

func scanBooking(row rowScanner) (*dating.Booking, error) {
	var booking dating.Booking
	var location, meetingURL, externalUID, notes sql.NullString
	var status string
	var updatedAt sql.NullTime

	err := row.Scan(&booking.ID, &booking.CampaignID, &booking.CandidateID, &status,
		&booking.StartTime, &booking.EndTime, &location, &meetingURL,
		&externalUID, &notes, &booking.CreatedAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	booking.Status = dating.BookingStatus(status)
	booking.Location = location.String
	booking.MeetingURL = meetingURL.String
	booking.ExternalUID = externalUID.String
	booking.Notes = notes.String
	if updatedAt.Valid {
		booking.UpdatedAt = &updatedAt.Time
	}

	return &booking, nil
}

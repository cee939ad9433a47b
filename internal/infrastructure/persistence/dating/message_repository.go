// Package dating provides masked message repository
package dating

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/blindcal/blindcal-go/internal/domain/entities/dating"
	"github.com/blindcal/blindcal-go/internal/infrastructure/observability/logging"
	"github.com/blindcal/blindcal-go/pkg/config"
)

type MessageRepository struct {
	db     *sql.DB
	logger *logging.ChanneledLogger
}

func NewMessageRepository(db *sql.DB, logger *logging.ChanneledLogger) *MessageRepository {
	return &MessageRepository{
		db:     db,
		logger: logger,
	}
}

func (r *MessageRepository) FindThreadByID(tenantID, id string) (*dating.MessageThread, error) {
	query := `SELECT id, campaign_id, candidate_id, created_at, last_message_at
		FROM message_threads WHERE id = ?`

	start := time.Now()

	row := r.db.QueryRow(query, id)
	thread, err := scanThread(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Database().Error("Failed to scan message thread", "error", err.Error(), "id", id)
		return nil, fmt.Errorf("failed to scan message thread: %w", err)
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, tenantID)
	}
	return thread, nil
}

func (r *MessageRepository) FindThreadForCandidate(tenantID, campaignID, candidateID string) (*dating.MessageThread, error) {
	query := `SELECT id, campaign_id, candidate_id, created_at, last_message_at
		FROM message_threads WHERE campaign_id = ? AND candidate_id = ?`

	start := time.Now()

	row := r.db.QueryRow(query, campaignID, candidateID)
	thread, err := scanThread(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Database().Error("Failed to scan message thread", "error", err.Error(), "candidateId", candidateID)
		return nil, fmt.Errorf("failed to scan message thread: %w", err)
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, tenantID)
	}
	return thread, nil
}

func (r *MessageRepository) FindThreadsByCampaign(tenantID, campaignID string) ([]*dating.MessageThread, error) {
	query := `SELECT id, campaign_id, candidate_id, created_at, last_message_at
		FROM message_threads WHERE campaign_id = ? ORDER BY last_message_at DESC`

	start := time.Now()
	r.logger.Database().Debug("Loading message threads for campaign", "campaignId", campaignID)

	rows, err := r.db.Query(query, campaignID)
	if err != nil {
		r.logger.Database().Error("Failed to query message threads", "error", err.Error(), "campaignId", campaignID)
		return nil, fmt.Errorf("failed to query message threads: %w", err)
	}
	defer rows.Close()

	var threads []*dating.MessageThread
	for rows.Next() {
		thread, err := scanThread(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message thread: %w", err)
		}
		threads = append(threads, thread)
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, tenantID)
	}
	return threads, rows.Err()
}

func (r *MessageRepository) StoreThread(tenantID string, thread *dating.MessageThread) error {
	query := `INSERT INTO message_threads (id, campaign_id, candidate_id, created_at, last_message_at)
		VALUES (?, ?, ?, ?, ?)`

	start := time.Now()
	r.logger.Database().Debug("Executing thread insert", "id", thread.ID, "candidateId", thread.CandidateID)

	_, err := r.db.Exec(query, thread.ID, thread.CampaignID, thread.CandidateID,
		thread.CreatedAt, thread.LastMessageAt)
	if err != nil {
		r.logger.Database().Error("Thread insert failed", "error", err.Error(), "id", thread.ID)
		return fmt.Errorf("failed to insert message thread: %w", err)
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, tenantID)
	}
	return nil
}

func (r *MessageRepository) FindMessages(tenantID, threadID string) ([]*dating.Message, error) {
	query := `SELECT id, thread_id, sender_role, sender_id, sender_email, body, created_at
		FROM messages WHERE thread_id = ? ORDER BY created_at ASC`

	start := time.Now()

	rows, err := r.db.Query(query, threadID)
	if err != nil {
		r.logger.Database().Error("Failed to query messages", "error", err.Error(), "threadId", threadID)
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var messages []*dating.Message
	for rows.Next() {
		var message dating.Message
		var senderRole string
		var senderID, senderEmail sql.NullString

		err := rows.Scan(&message.ID, &message.ThreadID, &senderRole,
			&senderID, &senderEmail, &message.Body, &message.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}

		message.SenderRole = dating.UserRole(senderRole)
		message.SenderID = senderID.String
		message.SenderEmail = senderEmail.String
		messages = append(messages, &message)
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, tenantID)
	}
	return messages, rows.Err()
}

// StoreMessage inserts a message and bumps the thread's last activity time.
// SenderEmail is expected to arrive already masked.
func (r *MessageRepository) StoreMessage(tenantID string, message *dating.Message) error {
	query := `INSERT INTO messages (id, thread_id, sender_role, sender_id, sender_email, body, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	start := time.Now()
	r.logger.Database().Debug("Executing message insert", "threadId", message.ThreadID)

	_, err := r.db.Exec(query, message.ID, message.ThreadID, string(message.SenderRole),
		message.SenderID, message.SenderEmail, message.Body, message.CreatedAt)
	if err != nil {
		r.logger.Database().Error("Message insert failed", "error", err.Error(), "threadId", message.ThreadID)
		return fmt.Errorf("failed to insert message: %w", err)
	}

	touchQuery := `UPDATE message_threads SET last_message_at = ? WHERE id = ?`
	if _, err := r.db.Exec(touchQuery, message.CreatedAt, message.ThreadID); err != nil {
		r.logger.Database().Error("Thread touch failed", "error", err.Error(), "threadId", message.ThreadID)
		return fmt.Errorf("failed to update thread activity: %w", err)
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, tenantID)
	}
	return nil
}

func scanThread(row rowScanner) (*dating.MessageThread, error) {
	var thread dating.MessageThread
	var lastMessageAt sql.NullTime

	err := row.Scan(&thread.ID, &thread.CampaignID, &thread.CandidateID,
		&thread.CreatedAt, &lastMessageAt)
	if err != nil {
		return nil, err
	}

	if lastMessageAt.Valid {
		thread.LastMessageAt = &lastMessageAt.Time
	}

	return &thread, nil
}

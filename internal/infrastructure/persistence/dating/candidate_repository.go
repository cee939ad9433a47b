// Package dating provides candidate repository
package dating

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/blindcal/blindcal-go/internal/domain/entities/dating"
	"github.com/blindcal/blindcal-go/internal/infrastructure/caching/interfaces"
	"github.com/blindcal/blindcal-go/internal/infrastructure/observability/logging"
	"github.com/blindcal/blindcal-go/pkg/config"
)

const candidateColumns = `id, campaign_id, name, email, bio, photo_url, answers,
	current_stage, disclosure, wingman_notes, rating,
	stage_changed_at, proposed_at, approved_at, rejected_at, created_at`

type CandidateRepository struct {
	db     *sql.DB
	cache  interfaces.StatsCache
	logger *logging.ChanneledLogger
}

func NewCandidateRepository(db *sql.DB, cache interfaces.StatsCache, logger *logging.ChanneledLogger) *CandidateRepository {
	return &CandidateRepository{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

func (r *CandidateRepository) FindByID(tenantID, id string) (*dating.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Loading candidate from database", "id", id)

	row := r.db.QueryRow(query, id)
	candidate, err := scanCandidate(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Database().Error("Failed to scan candidate", "error", err.Error(), "id", id)
		return nil, fmt.Errorf("failed to scan candidate: %w", err)
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, tenantID)
	}
	return candidate, nil
}

func (r *CandidateRepository) FindByCampaign(tenantID, campaignID string) ([]*dating.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE campaign_id = ? ORDER BY created_at DESC`

	start := time.Now()
	r.logger.Database().Debug("Loading candidates for campaign", "campaignId", campaignID)

	rows, err := r.db.Query(query, campaignID)
	if err != nil {
		r.logger.Database().Error("Failed to query candidates", "error", err.Error(), "campaignId", campaignID)
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	var candidates []*dating.Candidate
	for rows.Next() {
		candidate, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, candidate)
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, tenantID)
	}
	return candidates, rows.Err()
}

// CountByCampaign returns total and active candidate counts, cache-first
// because landing pages hit this on every render.
func (r *CandidateRepository) CountByCampaign(tenantID, campaignID string) (*dating.CandidateStats, error) {
	if stats, found := r.cache.GetCandidateStats(tenantID, campaignID); found {
		return stats, nil
	}

	query := `SELECT COUNT(*),
		COALESCE(SUM(CASE WHEN current_stage NOT IN ('rejected', 'archived') THEN 1 ELSE 0 END), 0)
		FROM candidates WHERE campaign_id = ?`

	start := time.Now()
	r.logger.Database().Debug("Counting candidates for campaign", "campaignId", campaignID)

	var stats dating.CandidateStats
	err := r.db.QueryRow(query, campaignID).Scan(&stats.Total, &stats.Active)
	if err != nil {
		r.logger.Database().Error("Candidate count failed", "error", err.Error(), "campaignId", campaignID)
		return nil, fmt.Errorf("failed to count candidates: %w", err)
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, tenantID)
	}

	r.cache.SetCandidateStats(tenantID, campaignID, &stats)
	return &stats, nil
}

func (r *CandidateRepository) Store(tenantID string, candidate *dating.Candidate) error {
	answersJSON, _ := json.Marshal(candidate.Answers)

	query := `INSERT INTO candidates (` + candidateColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	start := time.Now()
	r.logger.Database().Debug("Executing candidate insert", "id", candidate.ID, "campaignId", candidate.CampaignID)

	_, err := r.db.Exec(query,
		candidate.ID, candidate.CampaignID, candidate.Name, candidate.Email,
		candidate.Bio, candidate.PhotoURL, string(answersJSON),
		string(candidate.CurrentStage), string(candidate.Disclosure), candidate.WingmanNotes, candidate.Rating,
		candidate.StageChangedAt, candidate.ProposedAt, candidate.ApprovedAt, candidate.RejectedAt, candidate.CreatedAt)
	if err != nil {
		r.logger.Database().Error("Candidate insert failed", "error", err.Error(), "id", candidate.ID)
		return fmt.Errorf("failed to insert candidate: %w", err)
	}

	r.logger.Database().Info("Candidate insert completed", "id", candidate.ID, "duration", time.Since(start))
	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, tenantID)
	}
	r.cache.InvalidateCandidateStats(tenantID, candidate.CampaignID)
	return nil
}

func (r *CandidateRepository) Update(tenantID string, candidate *dating.Candidate) error {
	answersJSON, _ := json.Marshal(candidate.Answers)

	query := `UPDATE candidates SET name = ?, email = ?, bio = ?, photo_url = ?, answers = ?,
		current_stage = ?, disclosure = ?, wingman_notes = ?, rating = ?,
		stage_changed_at = ?, proposed_at = ?, approved_at = ?, rejected_at = ? WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Executing candidate update", "id", candidate.ID, "stage", candidate.CurrentStage)

	_, err := r.db.Exec(query,
		candidate.Name, candidate.Email, candidate.Bio, candidate.PhotoURL, string(answersJSON),
		string(candidate.CurrentStage), string(candidate.Disclosure), candidate.WingmanNotes, candidate.Rating,
		candidate.StageChangedAt, candidate.ProposedAt, candidate.ApprovedAt, candidate.RejectedAt, candidate.ID)
	if err != nil {
		r.logger.Database().Error("Candidate update failed", "error", err.Error(), "id", candidate.ID)
		return fmt.Errorf("failed to update candidate: %w", err)
	}

	r.logger.Database().Info("Candidate update completed", "id", candidate.ID, "duration", time.Since(start))
	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, tenantID)
	}
	r.cache.InvalidateCandidateStats(tenantID, candidate.CampaignID)
	return nil
}

func (r *CandidateRepository) Delete(tenantID, id string) error {
	// Look up the campaign first so the stats cache entry can be dropped.
	candidate, err := r.FindByID(tenantID, id)
	if err != nil {
		return err
	}
	if candidate == nil {
		return nil
	}

	query := `DELETE FROM candidates WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Executing candidate delete", "id", id)

	_, err = r.db.Exec(query, id)
	if err != nil {
		r.logger.Database().Error("Candidate delete failed", "error", err.Error(), "id", id)
		return fmt.Errorf("failed to delete candidate: %w", err)
	}

	r.logger.Database().Info("Candidate delete completed", "id", id, "duration", time.Since(start))
	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, tenantID)
	}
	r.cache.InvalidateCandidateStats(tenantID, candidate.CampaignID)
	return nil
}

func (r *CandidateRepository) AppendEvent(tenantID string, event *dating.CandidateEvent) error {
	query := `INSERT INTO candidate_events (id, candidate_id, event_type, from_stage, to_stage, actor_id, actor_role, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	start := time.Now()

	_, err := r.db.Exec(query,
		event.ID, event.CandidateID, event.EventType,
		string(event.FromStage), string(event.ToStage),
		event.ActorID, string(event.ActorRole), event.CreatedAt)
	if err != nil {
		r.logger.Database().Error("Candidate event insert failed", "error", err.Error(), "candidateId", event.CandidateID)
		return fmt.Errorf("failed to insert candidate event: %w", err)
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, tenantID)
	}
	return nil
}

func (r *CandidateRepository) FindEvents(tenantID, candidateID string) ([]*dating.CandidateEvent, error) {
	query := `SELECT id, candidate_id, event_type, from_stage, to_stage, actor_id, actor_role, created_at
		FROM candidate_events WHERE candidate_id = ? ORDER BY created_at ASC`

	start := time.Now()

	rows, err := r.db.Query(query, candidateID)
	if err != nil {
		r.logger.Database().Error("Failed to query candidate events", "error", err.Error(), "candidateId", candidateID)
		return nil, fmt.Errorf("failed to query candidate events: %w", err)
	}
	defer rows.Close()

	var events []*dating.CandidateEvent
	for rows.Next() {
		var event dating.CandidateEvent
		var fromStage, toStage, actorID, actorRole sql.NullString

		err := rows.Scan(&event.ID, &event.CandidateID, &event.EventType,
			&fromStage, &toStage, &actorID, &actorRole, &event.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate event: %w", err)
		}

		event.FromStage = dating.PipelineStage(fromStage.String)
		event.ToStage = dating.PipelineStage(toStage.String)
		event.ActorID = actorID.String
		event.ActorRole = dating.UserRole(actorRole.String)
		events = append(events, &event)
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, tenantID)
	}
	return events, rows.Err()
}

func scanCandidate(row rowScanner) (*dating.Candidate, error) {
	var candidate dating.Candidate
	var bio, photoURL, answersStr, wingmanNotes sql.NullString
	var stage, disclosure string
	var stageChangedAt, proposedAt, approvedAt, rejectedAt sql.NullTime

	err := row.Scan(&candidate.ID, &candidate.CampaignID, &candidate.Name, &candidate.Email,
		&bio, &photoURL, &answersStr, &stage, &disclosure, &wingmanNotes, &candidate.Rating,
		&stageChangedAt, &proposedAt, &approvedAt, &rejectedAt, &candidate.CreatedAt)
	if err != nil {
		return nil, err
	}

	candidate.Bio = bio.String
	candidate.PhotoURL = photoURL.String
	candidate.WingmanNotes = wingmanNotes.String
	candidate.CurrentStage = dating.PipelineStage(stage)
	candidate.Disclosure = dating.DisclosureLevel(disclosure)
	if stageChangedAt.Valid {
		candidate.StageChangedAt = &stageChangedAt.Time
	}
	if proposedAt.Valid {
		candidate.ProposedAt = &proposedAt.Time
	}
	if approvedAt.Valid {
		candidate.ApprovedAt = &approvedAt.Time
	}
	if rejectedAt.Valid {
		candidate.RejectedAt = &rejectedAt.Time
	}
	if answersStr.Valid && answersStr.String != "" {
		if err := json.Unmarshal([]byte(answersStr.String), &candidate.Answers); err != nil {
			return nil, fmt.Errorf("failed to parse candidate answers: %w", err)
		}
	}

	return &candidate, nil
}

// Package dating provides delegation repository
package dating

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/blindcal/blindcal-go/internal/domain/entities/dating"
	"github.com/blindcal/blindcal-go/internal/infrastructure/observability/logging"
	"github.com/blindcal/blindcal-go/pkg/config"
)

const delegationColumns = `id, single_id, wingman_id, trust_level, can_propose_times,
	can_book_directly, can_message_candidates, can_view_calendar,
	invite_token, is_active, accepted_at, revoked_at, created_at`

type DelegationRepository struct {
	db     *sql.DB
	logger *logging.ChanneledLogger
}

func NewDelegationRepository(db *sql.DB, logger *logging.ChanneledLogger) *DelegationRepository {
	return &DelegationRepository{
		db:     db,
		logger: logger,
	}
}

func (r *DelegationRepository) FindByID(tenantID, id string) (*dating.Delegation, error) {
	query := `SELECT ` + delegationColumns + ` FROM delegations WHERE id = ?`

	start := time.Now()

	row := r.db.QueryRow(query, id)
	delegation, err := scanDelegation(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Database().Error("Failed to scan delegation", "error", err.Error(), "id", id)
		return nil, fmt.Errorf("failed to scan delegation: %w", err)
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, tenantID)
	}
	return delegation, nil
}

func (r *DelegationRepository) FindByInviteToken(tenantID, token string) (*dating.Delegation, error) {
	query := `SELECT ` + delegationColumns + ` FROM delegations WHERE invite_token = ?`

	start := time.Now()

	row := r.db.QueryRow(query, token)
	delegation, err := scanDelegation(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Database().Error("Failed to scan delegation by token", "error", err.Error())
		return nil, fmt.Errorf("failed to scan delegation: %w", err)
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, tenantID)
	}
	return delegation, nil
}

// FindForProfile returns delegations where the profile is either side of the
// trust grant.
func (r *DelegationRepository) FindForProfile(tenantID, profileID string) ([]*dating.Delegation, error) {
	query := `SELECT ` + delegationColumns + ` FROM delegations
		WHERE single_id = ? OR wingman_id = ? ORDER BY created_at DESC`

	start := time.Now()
	r.logger.Database().Debug("Loading delegations for profile", "profileId", profileID)

	rows, err := r.db.Query(query, profileID, profileID)
	if err != nil {
		r.logger.Database().Error("Failed to query delegations", "error", err.Error(), "profileId", profileID)
		return nil, fmt.Errorf("failed to query delegations: %w", err)
	}
	defer rows.Close()

	var delegations []*dating.Delegation
	for rows.Next() {
		delegation, err := scanDelegation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan delegation: %w", err)
		}
		delegations = append(delegations, delegation)
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, tenantID)
	}
	return delegations, rows.Err()
}

func (r *DelegationRepository) Store(tenantID string, delegation *dating.Delegation) error {
	query := `INSERT INTO delegations (` + delegationColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	start := time.Now()
	r.logger.Database().Debug("Executing delegation insert", "id", delegation.ID)

	wingmanID := sql.NullString{String: delegation.WingmanID, Valid: delegation.WingmanID != ""}

	_, err := r.db.Exec(query,
		delegation.ID, delegation.SingleID, wingmanID, string(delegation.TrustLevel),
		delegation.CanProposeTimes, delegation.CanBookDirectly, delegation.CanMessageCandidates, delegation.CanViewCalendar,
		delegation.InviteToken, delegation.IsActive, delegation.AcceptedAt, delegation.RevokedAt, delegation.CreatedAt)
	if err != nil {
		r.logger.Database().Error("Delegation insert failed", "error", err.Error(), "id", delegation.ID)
		return fmt.Errorf("failed to insert delegation: %w", err)
	}

	r.logger.Database().Info("Delegation insert completed", "id", delegation.ID, "duration", time.Since(start))
	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, tenantID)
	}
	return nil
}

func (r *DelegationRepository) Update(tenantID string, delegation *dating.Delegation) error {
	query := `UPDATE delegations SET wingman_id = ?, trust_level = ?, can_propose_times = ?,
		can_book_directly = ?, can_message_candidates = ?, can_view_calendar = ?,
		invite_token = ?, is_active = ?, accepted_at = ?, revoked_at = ? WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Executing delegation update", "id", delegation.ID)

	wingmanID := sql.NullString{String: delegation.WingmanID, Valid: delegation.WingmanID != ""}

	_, err := r.db.Exec(query,
		wingmanID, string(delegation.TrustLevel), delegation.CanProposeTimes,
		delegation.CanBookDirectly, delegation.CanMessageCandidates, delegation.CanViewCalendar,
		delegation.InviteToken, delegation.IsActive, delegation.AcceptedAt, delegation.RevokedAt, delegation.ID)
	if err != nil {
		r.logger.Database().Error("Delegation update failed", "error", err.Error(), "id", delegation.ID)
		return fmt.Errorf("failed to update delegation: %w", err)
	}

	r.logger.Database().Info("Delegation update completed", "id", delegation.ID, "duration", time.Since(start))
	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, tenantID)
	}
	return nil
}

func scanDelegation(row rowScanner) (*dating.Delegation, error) {
	var delegation dating.Delegation
	var wingmanID, inviteToken sql.NullString
	var trustLevel string
	var acceptedAt, revokedAt sql.NullTime

	err := row.Scan(&delegation.ID, &delegation.SingleID, &wingmanID, &trustLevel,
		&delegation.CanProposeTimes, &delegation.CanBookDirectly,
		&delegation.CanMessageCandidates, &delegation.CanViewCalendar,
		&inviteToken, &delegation.IsActive, &acceptedAt, &revokedAt, &delegation.CreatedAt)
	if err != nil {
		return nil, err
	}

	delegation.WingmanID = wingmanID.String
	delegation.InviteToken = inviteToken.String
	delegation.TrustLevel = dating.TrustLevel(trustLevel)
	if acceptedAt.Valid {
		delegation.AcceptedAt = &acceptedAt.Time
	}
	if revokedAt.Valid {
		delegation.RevokedAt = &revokedAt.Time
	}

	return &delegation, nil
}

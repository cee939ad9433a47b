// Package dating provides profile repository
package dating

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/blindcal/blindcal-go/internal/domain/entities/dating"
	"github.com/blindcal/blindcal-go/internal/infrastructure/caching/interfaces"
	"github.com/blindcal/blindcal-go/internal/infrastructure/observability/logging"
	"github.com/blindcal/blindcal-go/pkg/config"
)

const profileColumns = `id, email, display_name, bio, date_of_birth, avatar_url, role, password_hash, created_at, updated_at`

type ProfileRepository struct {
	db     *sql.DB
	cache  interfaces.DirectoryCache
	logger *logging.ChanneledLogger
}

func NewProfileRepository(db *sql.DB, cache interfaces.DirectoryCache, logger *logging.ChanneledLogger) *ProfileRepository {
	return &ProfileRepository{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

func (r *ProfileRepository) FindByID(tenantID, id string) (*dating.Profile, error) {
	if profile, found := r.cache.GetProfile(tenantID, id); found {
		return profile, nil
	}

	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Loading profile from database", "id", id)

	row := r.db.QueryRow(query, id)
	profile, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Database().Error("Failed to scan profile", "error", err.Error(), "id", id)
		return nil, fmt.Errorf("failed to scan profile: %w", err)
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, tenantID)
	}

	r.cache.SetProfile(tenantID, profile)
	return profile, nil
}

func (r *ProfileRepository) FindByEmail(tenantID, email string) (*dating.Profile, error) {
	if id, found := r.cache.GetProfileIDByEmail(tenantID, email); found {
		return r.FindByID(tenantID, id)
	}

	query := `SELECT ` + profileColumns + ` FROM profiles WHERE email = ?`

	start := time.Now()
	r.logger.Database().Debug("Loading profile by email")

	row := r.db.QueryRow(query, email)
	profile, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Database().Error("Failed to scan profile by email", "error", err.Error())
		return nil, fmt.Errorf("failed to scan profile: %w", err)
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, tenantID)
	}

	r.cache.SetProfile(tenantID, profile)
	return profile, nil
}

func (r *ProfileRepository) Store(tenantID string, profile *dating.Profile) error {
	query := `INSERT INTO profiles (` + profileColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	start := time.Now()
	r.logger.Database().Debug("Executing profile insert", "id", profile.ID)

	_, err := r.db.Exec(query,
		profile.ID, profile.Email, profile.DisplayName, profile.Bio, profile.DateOfBirth,
		profile.AvatarURL, string(profile.Role), profile.PasswordHash, profile.CreatedAt, profile.UpdatedAt)
	if err != nil {
		r.logger.Database().Error("Profile insert failed", "error", err.Error(), "id", profile.ID)
		return fmt.Errorf("failed to insert profile: %w", err)
	}

	r.logger.Database().Info("Profile insert completed", "id", profile.ID, "duration", time.Since(start))
	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, tenantID)
	}
	r.cache.SetProfile(tenantID, profile)
	return nil
}

func (r *ProfileRepository) Update(tenantID string, profile *dating.Profile) error {
	query := `UPDATE profiles SET email = ?, display_name = ?, bio = ?, date_of_birth = ?,
		avatar_url = ?, role = ?, password_hash = ?, updated_at = ? WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Executing profile update", "id", profile.ID)

	_, err := r.db.Exec(query,
		profile.Email, profile.DisplayName, profile.Bio, profile.DateOfBirth,
		profile.AvatarURL, string(profile.Role), profile.PasswordHash, profile.UpdatedAt, profile.ID)
	if err != nil {
		r.logger.Database().Error("Profile update failed", "error", err.Error(), "id", profile.ID)
		return fmt.Errorf("failed to update profile: %w", err)
	}

	r.logger.Database().Info("Profile update completed", "id", profile.ID, "duration", time.Since(start))
	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, tenantID)
	}
	r.cache.SetProfile(tenantID, profile)
	return nil
}

func scanProfile(row rowScanner) (*dating.Profile, error) {
	var profile dating.Profile
	var bio, dateOfBirth, avatarURL sql.NullString
	var role string
	var updatedAt sql.NullTime

	err := row.Scan(&profile.ID, &profile.Email, &profile.DisplayName, &bio, &dateOfBirth,
		&avatarURL, &role, &profile.PasswordHash, &profile.CreatedAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	profile.Bio = bio.String
	profile.DateOfBirth = dateOfBirth.String
	profile.AvatarURL = avatarURL.String
	profile.Role = dating.UserRole(role)
	if updatedAt.Valid {
		profile.UpdatedAt = &updatedAt.Time
	}

	return &profile, nil
}

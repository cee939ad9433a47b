// Package dating provides campaign repository
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

const campaignColumns = `id, wingman_id, single_id, delegation_id, title, slug, tagline,
	description, template_id, custom_template, primary_color, accent_color,
	is_published, is_accepting_applications, requires_photo, requires_bio,
	show_wingman_name, show_single_bio, initial_disclosure, max_active_candidates,
	custom_questions, created_at, published_at, updated_at`

type CampaignRepository struct {
	db     *sql.DB
	cache  interfaces.DirectoryCache
	logger *logging.ChanneledLogger
}

func NewCampaignRepository(db *sql.DB, cache interfaces.DirectoryCache, logger *logging.ChanneledLogger) *CampaignRepository {
	return &CampaignRepository{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

func (r *CampaignRepository) FindByID(tenantID, id string) (*dating.Campaign, error) {
	if campaign, found := r.cache.GetCampaign(tenantID, id); found {
		return campaign, nil
	}

	campaign, err := r.loadFromDB(id)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, nil
	}

	r.cache.SetCampaign(tenantID, campaign)
	return campaign, nil
}

// FindBySlug resolves a landing page slug, employing a cache-first strategy.
func (r *CampaignRepository) FindBySlug(tenantID, slug string) (*dating.Campaign, error) {
	// 1. Resolve slug through the cache index first.
	if id, found := r.cache.GetCampaignIDBySlug(tenantID, slug); found {
		return r.FindByID(tenantID, id)
	}

	// --- CACHE MISS FALLBACK ---
	// 2. Load directly by slug from the database.
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE slug = ?`

	start := time.Now()
	r.logger.Database().Debug("Loading campaign by slug", "slug", slug)

	row := r.db.QueryRow(query, slug)
	campaign, err := scanCampaign(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Database().Error("Failed to scan campaign", "error", err.Error(), "slug", slug)
		return nil, fmt.Errorf("failed to scan campaign: %w", err)
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, tenantID)
	}

	// 3. Prime the cache so the next hit resolves without the database.
	r.cache.SetCampaign(tenantID, campaign)
	return campaign, nil
}

func (r *CampaignRepository) FindByWingman(tenantID, wingmanID string) ([]*dating.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE wingman_id = ? ORDER BY created_at DESC`

	start := time.Now()
	r.logger.Database().Debug("Loading campaigns for wingman", "wingmanId", wingmanID)

	rows, err := r.db.Query(query, wingmanID)
	if err != nil {
		r.logger.Database().Error("Failed to query campaigns", "error", err.Error(), "wingmanId", wingmanID)
		return nil, fmt.Errorf("failed to query campaigns: %w", err)
	}
	defer rows.Close()

	var campaigns []*dating.Campaign
	for rows.Next() {
		campaign, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan campaign: %w", err)
		}
		r.cache.SetCampaign(tenantID, campaign)
		campaigns = append(campaigns, campaign)
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, tenantID)
	}
	return campaigns, rows.Err()
}

func (r *CampaignRepository) Store(tenantID string, campaign *dating.Campaign) error {
	questionsJSON, _ := json.Marshal(campaign.CustomQuestions)

	query := `INSERT INTO campaigns (` + campaignColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	start := time.Now()
	r.logger.Database().Debug("Executing campaign insert", "id", campaign.ID, "slug", campaign.Slug)

	_, err := r.db.Exec(query,
		campaign.ID, campaign.WingmanID, campaign.SingleID, campaign.DelegationID,
		campaign.Title, campaign.Slug, campaign.Tagline, campaign.Description,
		campaign.TemplateID, campaign.CustomTemplate, campaign.PrimaryColor, campaign.AccentColor,
		campaign.IsPublished, campaign.IsAcceptingApplications, campaign.RequiresPhoto, campaign.RequiresBio,
		campaign.ShowWingmanName, campaign.ShowSingleBio, string(campaign.InitialDisclosure), campaign.MaxActiveCandidates,
		string(questionsJSON), campaign.CreatedAt, campaign.PublishedAt, campaign.UpdatedAt)
	if err != nil {
		r.logger.Database().Error("Campaign insert failed", "error", err.Error(), "id", campaign.ID)
		return fmt.Errorf("failed to insert campaign: %w", err)
	}

	r.logger.Database().Info("Campaign insert completed", "id", campaign.ID, "duration", time.Since(start))
	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, tenantID)
	}
	r.cache.SetCampaign(tenantID, campaign)
	return nil
}

func (r *CampaignRepository) Update(tenantID string, campaign *dating.Campaign) error {
	questionsJSON, _ := json.Marshal(campaign.CustomQuestions)

	query := `UPDATE campaigns SET title = ?, slug = ?, tagline = ?, description = ?,
		template_id = ?, custom_template = ?, primary_color = ?, accent_color = ?,
		is_published = ?, is_accepting_applications = ?, requires_photo = ?, requires_bio = ?,
		show_wingman_name = ?, show_single_bio = ?, initial_disclosure = ?, max_active_candidates = ?,
		custom_questions = ?, published_at = ?, updated_at = ? WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Executing campaign update", "id", campaign.ID)

	_, err := r.db.Exec(query,
		campaign.Title, campaign.Slug, campaign.Tagline, campaign.Description,
		campaign.TemplateID, campaign.CustomTemplate, campaign.PrimaryColor, campaign.AccentColor,
		campaign.IsPublished, campaign.IsAcceptingApplications, campaign.RequiresPhoto, campaign.RequiresBio,
		campaign.ShowWingmanName, campaign.ShowSingleBio, string(campaign.InitialDisclosure), campaign.MaxActiveCandidates,
		string(questionsJSON), campaign.PublishedAt, campaign.UpdatedAt, campaign.ID)
	if err != nil {
		r.logger.Database().Error("Campaign update failed", "error", err.Error(), "id", campaign.ID)
		return fmt.Errorf("failed to update campaign: %w", err)
	}

	r.logger.Database().Info("Campaign update completed", "id", campaign.ID, "duration", time.Since(start))
	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, tenantID)
	}
	r.cache.SetCampaign(tenantID, campaign)
	return nil
}

func (r *CampaignRepository) Delete(tenantID, id string) error {
	query := `DELETE FROM campaigns WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Executing campaign delete", "id", id)

	_, err := r.db.Exec(query, id)
	if err != nil {
		r.logger.Database().Error("Campaign delete failed", "error", err.Error(), "id", id)
		return fmt.Errorf("failed to delete campaign: %w", err)
	}

	r.logger.Database().Info("Campaign delete completed", "id", id, "duration", time.Since(start))
	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, tenantID)
	}
	r.cache.InvalidateCampaign(tenantID, id)
	return nil
}

func (r *CampaignRepository) loadFromDB(id string) (*dating.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Loading campaign from database", "id", id)

	row := r.db.QueryRow(query, id)
	campaign, err := scanCampaign(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Database().Error("Failed to scan campaign", "error", err.Error(), "id", id)
		return nil, fmt.Errorf("failed to scan campaign: %w", err)
	}

	r.logger.Database().Info("Campaign loaded from database", "id", id, "duration", time.Since(start))
	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, "system")
	}
	return campaign, nil
}

// rowScanner lets scanCampaign work on both QueryRow and Query results
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCampaign(row rowScanner) (*dating.Campaign, error) {
	var campaign dating.Campaign
	var tagline, description, customTemplate, primaryColor, accentColor, questionsStr sql.NullString
	var disclosure string
	var publishedAt, updatedAt sql.NullTime

	err := row.Scan(&campaign.ID, &campaign.WingmanID, &campaign.SingleID, &campaign.DelegationID,
		&campaign.Title, &campaign.Slug, &tagline, &description,
		&campaign.TemplateID, &customTemplate, &primaryColor, &accentColor,
		&campaign.IsPublished, &campaign.IsAcceptingApplications, &campaign.RequiresPhoto, &campaign.RequiresBio,
		&campaign.ShowWingmanName, &campaign.ShowSingleBio, &disclosure, &campaign.MaxActiveCandidates,
		&questionsStr, &campaign.CreatedAt, &publishedAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	campaign.Tagline = tagline.String
	campaign.Description = description.String
	campaign.CustomTemplate = customTemplate.String
	campaign.PrimaryColor = primaryColor.String
	campaign.AccentColor = accentColor.String
	campaign.InitialDisclosure = dating.DisclosureLevel(disclosure)
	if publishedAt.Valid {
		campaign.PublishedAt = &publishedAt.Time
	}
	if updatedAt.Valid {
		campaign.UpdatedAt = &updatedAt.Time
	}
	if questionsStr.Valid && questionsStr.String != "" {
		if err := json.Unmarshal([]byte(questionsStr.String), &campaign.CustomQuestions); err != nil {
			return nil, fmt.Errorf("failed to parse custom questions: %w", err)
		}
	}

	return &campaign, nil
}

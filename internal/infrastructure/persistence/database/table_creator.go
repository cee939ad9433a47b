// Package database provides idempotent schema creation for tenant databases.
package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/blindcal/blindcal-go/internal/infrastructure/observability/logging"
)

// TableCreator creates the campaign schema on a tenant database
type TableCreator struct {
	db     *sql.DB
	logger *logging.ChanneledLogger
}

// NewTableCreator creates a new table creator
func NewTableCreator(db *sql.DB, logger *logging.ChanneledLogger) *TableCreator {
	return &TableCreator{db: db, logger: logger}
}

// CreateSchema creates all tables and indexes if they don't exist.
// Safe to run on every tenant activation.
func (tc *TableCreator) CreateSchema() error {
	start := time.Now()

	tables := []struct {
		name string
		sql  string
	}{
		{
			name: "profiles",
			sql: `CREATE TABLE IF NOT EXISTS profiles (
				id TEXT PRIMARY KEY,
				email TEXT NOT NULL UNIQUE,
				display_name TEXT NOT NULL,
				bio TEXT,
				date_of_birth TEXT,
				avatar_url TEXT,
				role TEXT NOT NULL,
				password_hash TEXT NOT NULL,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP
			)`,
		},
		{
			name: "delegations",
			sql: `CREATE TABLE IF NOT EXISTS delegations (
				id TEXT PRIMARY KEY,
				single_id TEXT NOT NULL,
				wingman_id TEXT,
				trust_level TEXT NOT NULL,
				can_propose_times BOOLEAN NOT NULL DEFAULT 1,
				can_book_directly BOOLEAN NOT NULL DEFAULT 0,
				can_message_candidates BOOLEAN NOT NULL DEFAULT 1,
				can_view_calendar BOOLEAN NOT NULL DEFAULT 1,
				invite_token TEXT,
				is_active BOOLEAN NOT NULL DEFAULT 0,
				accepted_at TIMESTAMP,
				revoked_at TIMESTAMP,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (single_id) REFERENCES profiles(id),
				FOREIGN KEY (wingman_id) REFERENCES profiles(id)
			)`,
		},
		{
			name: "campaigns",
			sql: `CREATE TABLE IF NOT EXISTS campaigns (
				id TEXT PRIMARY KEY,
				wingman_id TEXT NOT NULL,
				single_id TEXT NOT NULL,
				delegation_id TEXT NOT NULL,
				title TEXT NOT NULL,
				slug TEXT NOT NULL UNIQUE,
				tagline TEXT,
				description TEXT,
				template_id TEXT NOT NULL DEFAULT 'default',
				custom_template TEXT,
				primary_color TEXT,
				accent_color TEXT,
				is_published BOOLEAN NOT NULL DEFAULT 0,
				is_accepting_applications BOOLEAN NOT NULL DEFAULT 1,
				requires_photo BOOLEAN NOT NULL DEFAULT 0,
				requires_bio BOOLEAN NOT NULL DEFAULT 0,
				show_wingman_name BOOLEAN NOT NULL DEFAULT 1,
				show_single_bio BOOLEAN NOT NULL DEFAULT 1,
				initial_disclosure TEXT NOT NULL DEFAULT 'anonymous',
				max_active_candidates INTEGER NOT NULL DEFAULT 0,
				custom_questions TEXT,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				published_at TIMESTAMP,
				updated_at TIMESTAMP,
				FOREIGN KEY (wingman_id) REFERENCES profiles(id),
				FOREIGN KEY (single_id) REFERENCES profiles(id),
				FOREIGN KEY (delegation_id) REFERENCES delegations(id)
			)`,
		},
		{
			name: "candidates",
			sql: `CREATE TABLE IF NOT EXISTS candidates (
				id TEXT PRIMARY KEY,
				campaign_id TEXT NOT NULL,
				name TEXT NOT NULL,
				email TEXT NOT NULL,
				bio TEXT,
				photo_url TEXT,
				answers TEXT,
				current_stage TEXT NOT NULL DEFAULT 'new',
				disclosure TEXT NOT NULL DEFAULT 'anonymous',
				wingman_notes TEXT,
				rating INTEGER NOT NULL DEFAULT 0,
				stage_changed_at TIMESTAMP,
				proposed_at TIMESTAMP,
				approved_at TIMESTAMP,
				rejected_at TIMESTAMP,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (campaign_id) REFERENCES campaigns(id) ON DELETE CASCADE
			)`,
		},
		{
			name: "candidate_events",
			sql: `CREATE TABLE IF NOT EXISTS candidate_events (
				id TEXT PRIMARY KEY,
				candidate_id TEXT NOT NULL,
				event_type TEXT NOT NULL,
				from_stage TEXT,
				to_stage TEXT,
				actor_id TEXT,
				actor_role TEXT,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (candidate_id) REFERENCES candidates(id) ON DELETE CASCADE
			)`,
		},
		{
			name: "bookings",
			sql: `CREATE TABLE IF NOT EXISTS bookings (
				id TEXT PRIMARY KEY,
				campaign_id TEXT NOT NULL,
				candidate_id TEXT NOT NULL,
				status TEXT NOT NULL DEFAULT 'pending',
				start_time TIMESTAMP NOT NULL,
				end_time TIMESTAMP NOT NULL,
				location TEXT,
				meeting_url TEXT,
				external_uid TEXT,
				notes TEXT,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP,
				FOREIGN KEY (campaign_id) REFERENCES campaigns(id),
				FOREIGN KEY (candidate_id) REFERENCES candidates(id)
			)`,
		},
		{
			name: "message_threads",
			sql: `CREATE TABLE IF NOT EXISTS message_threads (
				id TEXT PRIMARY KEY,
				campaign_id TEXT NOT NULL,
				candidate_id TEXT NOT NULL,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				last_message_at TIMESTAMP,
				UNIQUE (campaign_id, candidate_id),
				FOREIGN KEY (campaign_id) REFERENCES campaigns(id),
				FOREIGN KEY (candidate_id) REFERENCES candidates(id)
			)`,
		},
		{
			name: "messages",
			sql: `CREATE TABLE IF NOT EXISTS messages (
				id TEXT PRIMARY KEY,
				thread_id TEXT NOT NULL,
				sender_role TEXT NOT NULL,
				sender_id TEXT,
				sender_email TEXT,
				body TEXT NOT NULL,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (thread_id) REFERENCES message_threads(id) ON DELETE CASCADE
			)`,
		},
	}

	for _, table := range tables {
		if _, err := tc.db.Exec(table.sql); err != nil {
			if tc.logger != nil {
				tc.logger.Database().Error("Table creation failed", "table", table.name, "error", err.Error())
			}
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_profiles_email ON profiles(email)`,
		`CREATE INDEX IF NOT EXISTS idx_delegations_single ON delegations(single_id)`,
		`CREATE INDEX IF NOT EXISTS idx_delegations_wingman ON delegations(wingman_id)`,
		`CREATE INDEX IF NOT EXISTS idx_delegations_invite_token ON delegations(invite_token)`,
		`CREATE INDEX IF NOT EXISTS idx_campaigns_slug ON campaigns(slug)`,
		`CREATE INDEX IF NOT EXISTS idx_campaigns_wingman ON campaigns(wingman_id)`,
		`CREATE INDEX IF NOT EXISTS idx_candidates_campaign ON candidates(campaign_id)`,
		`CREATE INDEX IF NOT EXISTS idx_candidates_stage ON candidates(campaign_id, current_stage)`,
		`CREATE INDEX IF NOT EXISTS idx_candidate_events_candidate ON candidate_events(candidate_id)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_campaign ON bookings(campaign_id)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_candidate ON bookings(candidate_id)`,
		`CREATE INDEX IF NOT EXISTS idx_threads_campaign ON message_threads(campaign_id)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_thread ON messages(thread_id)`,
	}

	for _, index := range indexes {
		if _, err := tc.db.Exec(index); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	if tc.logger != nil {
		tc.logger.Database().Info("Schema creation complete",
			"tables", len(tables), "indexes", len(indexes), "duration", time.Since(start))
	}

	return nil
}

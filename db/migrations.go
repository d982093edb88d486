package db

import (
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

// Migration represents a database migration
type Migration struct {
	Version     int
	Description string
	SQL         string
}

// migrations list all database migrations in order
var migrations = []Migration{
	{
		Version:     1,
		Description: "Create initial schema",
		SQL: `
			-- Calendar events
			CREATE SEQUENCE IF NOT EXISTS events_id_seq;
			CREATE TABLE IF NOT EXISTS events (
				id INTEGER PRIMARY KEY DEFAULT nextval('events_id_seq'),
				title TEXT NOT NULL,
				start_time TEXT NOT NULL,
				event_date TEXT,
				duration TEXT,
				description TEXT,
				location TEXT,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			);
			CREATE INDEX IF NOT EXISTS idx_events_date ON events(event_date);

			-- Personal notes, titles are unique
			CREATE SEQUENCE IF NOT EXISTS notes_id_seq;
			CREATE TABLE IF NOT EXISTS notes (
				id INTEGER PRIMARY KEY DEFAULT nextval('notes_id_seq'),
				title TEXT NOT NULL,
				content TEXT NOT NULL DEFAULT '',
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			);
			CREATE UNIQUE INDEX IF NOT EXISTS idx_notes_title ON notes(title);

			-- Todo list items, position drives the displayed numbering
			CREATE SEQUENCE IF NOT EXISTS todos_id_seq;
			CREATE TABLE IF NOT EXISTS todos (
				id INTEGER PRIMARY KEY DEFAULT nextval('todos_id_seq'),
				item TEXT NOT NULL,
				position INTEGER NOT NULL,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			);

			-- Chat sessions and transcript
			CREATE TABLE IF NOT EXISTS sessions (
				id TEXT PRIMARY KEY,
				title TEXT NOT NULL,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			);

			CREATE SEQUENCE IF NOT EXISTS messages_id_seq;
			CREATE TABLE IF NOT EXISTS messages (
				id INTEGER PRIMARY KEY DEFAULT nextval('messages_id_seq'),
				session_id TEXT NOT NULL,
				role TEXT NOT NULL,
				content TEXT NOT NULL,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (session_id) REFERENCES sessions(id)
			);
			CREATE INDEX IF NOT EXISTS idx_messages_session ON messages(session_id);

			-- Executed plan runs, kept for inspection
			CREATE TABLE IF NOT EXISTS plan_runs (
				id TEXT PRIMARY KEY,
				session_id TEXT,
				goal TEXT NOT NULL,
				plan JSON NOT NULL,
				result JSON,
				success BOOLEAN NOT NULL DEFAULT FALSE,
				duration_ms INTEGER,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			);

			-- Migrations bookkeeping
			CREATE TABLE IF NOT EXISTS migrations (
				version INTEGER PRIMARY KEY,
				description TEXT NOT NULL,
				applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			);
		`,
	},
}

// Migrate applies all pending migrations
func (db *DB) Migrate() error {
	// First, ensure migrations table exists
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return serr.Wrap(err, "failed to create migrations table")
	}

	// Get current version
	var currentVersion int
	err = db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM migrations").Scan(&currentVersion)
	if err != nil {
		return serr.Wrap(err, "failed to get current migration version")
	}

	logger.Info("Current migration version", "version", currentVersion)

	// Apply pending migrations
	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		logger.Info("Applying migration", "version", migration.Version, "description", migration.Description)

		if _, err := db.Exec(migration.SQL); err != nil {
			return serr.Wrap(err, "failed to apply migration")
		}

		_, err = db.Exec("INSERT INTO migrations (version, description) VALUES (?, ?)",
			migration.Version, migration.Description)
		if err != nil {
			return serr.Wrap(err, "failed to record migration")
		}
	}

	return nil
}

package store

import (
	"fmt"
	"strings"
)

func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS admins (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			email TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			superadmin INTEGER NOT NULL DEFAULT 0,
			token_version INTEGER NOT NULL DEFAULT 0,
			last_login_at DATETIME,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		// The founder profile is a true single-row table: singleton_key is
		// always 1 and UNIQUE, so create is an upsert and the by-id and
		// singleton API surfaces address the same row.
		`CREATE TABLE IF NOT EXISTS founders (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			singleton_key INTEGER NOT NULL DEFAULT 1,
			name TEXT NOT NULL CHECK (length(trim(name)) > 0),
			title TEXT NOT NULL CHECK (length(trim(title)) > 0),
			bio TEXT NOT NULL CHECK (length(trim(bio)) > 0),
			image TEXT NOT NULL CHECK (length(trim(image)) > 0),
			badges_json TEXT NOT NULL DEFAULT '[]',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(singleton_key)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_admins_email ON admins(email)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			// SQLite ALTER TABLE ADD COLUMN fails if column already exists;
			// treat "duplicate column" as a no-op for idempotent migrations.
			if strings.Contains(err.Error(), "duplicate column") {
				continue
			}
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

package database

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
)

// Migration represents a database migration
type Migration struct {
	Version     int
	Description string
	SQL         string
}

// GetMigrations returns all database migrations
func GetMigrations(dbType string) []Migration {
	if dbType == "postgres" {
		return getPostgresMigrations()
	}
	return getSQLiteMigrations()
}

func getSQLiteMigrations() []Migration {
	return []Migration{
		{
			Version:     1,
			Description: "Create contacts table",
			SQL: `CREATE TABLE IF NOT EXISTS contacts (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				first_name TEXT,
				last_name TEXT,
				email TEXT,
				company TEXT,
				product TEXT,
				message TEXT,
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`,
		},
		{
			Version:     2,
			Description: "Create visits table",
			SQL: `CREATE TABLE IF NOT EXISTS visits (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				page TEXT UNIQUE NOT NULL,
				count INTEGER NOT NULL DEFAULT 0
			)`,
		},
		{
			Version:     3,
			Description: "Create admin_users table",
			SQL: `CREATE TABLE IF NOT EXISTS admin_users (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				email TEXT UNIQUE NOT NULL,
				password_hash TEXT NOT NULL,
				name TEXT,
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				last_login DATETIME
			)`,
		},
		{
			Version:     4,
			Description: "Create indexes",
			SQL: `CREATE INDEX IF NOT EXISTS idx_contacts_created_at ON contacts(created_at);
				CREATE INDEX IF NOT EXISTS idx_admin_users_email ON admin_users(email)`,
		},
		{
			Version:     5,
			Description: "Rename legacy FRA product",
			SQL:         `UPDATE contacts SET product = 'FRA/FFC/SSS Proposal' WHERE product = 'FRA Proposal Guidance'`,
		},
	}
}

func getPostgresMigrations() []Migration {
	return []Migration{
		{
			Version:     1,
			Description: "Create contacts table",
			SQL: `CREATE TABLE IF NOT EXISTS contacts (
				id BIGSERIAL PRIMARY KEY,
				first_name TEXT,
				last_name TEXT,
				email TEXT,
				company TEXT,
				product TEXT,
				message TEXT,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			)`,
		},
		{
			Version:     2,
			Description: "Create visits table",
			SQL: `CREATE TABLE IF NOT EXISTS visits (
				id BIGSERIAL PRIMARY KEY,
				page TEXT UNIQUE NOT NULL,
				count BIGINT NOT NULL DEFAULT 0
			)`,
		},
		{
			Version:     3,
			Description: "Create admin_users table",
			SQL: `CREATE TABLE IF NOT EXISTS admin_users (
				id BIGSERIAL PRIMARY KEY,
				email TEXT UNIQUE NOT NULL,
				password_hash TEXT NOT NULL,
				name TEXT,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
				last_login TIMESTAMP WITH TIME ZONE
			)`,
		},
		{
			Version:     4,
			Description: "Create indexes",
			SQL: `CREATE INDEX IF NOT EXISTS idx_contacts_created_at ON contacts(created_at);
				CREATE INDEX IF NOT EXISTS idx_admin_users_email ON admin_users(email)`,
		},
		{
			Version:     5,
			Description: "Rename legacy FRA product",
			SQL:         `UPDATE contacts SET product = 'FRA/FFC/SSS Proposal' WHERE product = 'FRA Proposal Guidance'`,
		},
	}
}

// RunMigrations applies all pending migrations in order
func RunMigrations(db *sql.DB, dbType string) error {
	if err := createMigrationsTable(db); err != nil {
		return fmt.Errorf("failed to create migrations table: %v", err)
	}

	applied, err := getAppliedMigrations(db)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %v", err)
	}

	for _, migration := range GetMigrations(dbType) {
		if applied[migration.Version] {
			continue
		}

		log.Printf("Applying migration %d: %s", migration.Version, migration.Description)

		// Split SQL by semicolon and execute each statement
		for _, stmt := range strings.Split(migration.SQL, ";") {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" {
				continue
			}
			if _, err := db.Exec(stmt); err != nil {
				return fmt.Errorf("failed to apply migration %d: %v", migration.Version, err)
			}
		}

		if err := recordMigration(db, dbType, migration.Version); err != nil {
			return fmt.Errorf("failed to record migration %d: %v", migration.Version, err)
		}
	}

	return nil
}

func createMigrationsTable(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`)
	return err
}

func getAppliedMigrations(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query(`SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

func recordMigration(db *sql.DB, dbType string, version int) error {
	query := `INSERT INTO schema_migrations (version) VALUES (?)`
	if dbType == "postgres" {
		query = `INSERT INTO schema_migrations (version) VALUES ($1)`
	}
	_, err := db.Exec(query, version)
	return err
}

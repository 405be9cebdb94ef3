package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/sunbonsys/backend/internal/config"

	_ "github.com/lib/pq" // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3"
)

// Open opens the backing store described by the configuration, verifies the
// connection and brings the schema up to date. The returned handle is owned by
// the caller and must be closed at shutdown.
func Open(cfg *config.Config) (*sql.DB, error) {
	var db *sql.DB
	var err error

	switch cfg.Database.Type {
	case "postgres":
		db, err = openPostgres(cfg)
	case "sqlite", "":
		db, err = openSQLite(cfg)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Database.Type)
	}
	if err != nil {
		return nil, err
	}

	if err := pingWithRetries(db, cfg.Database.MaxRetries, cfg.Database.RetryDelay); err != nil {
		db.Close()
		return nil, err
	}

	if err := RunMigrations(db, cfg.Database.Type); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	log.Printf("Database initialized (type: %s)", cfg.Database.Type)
	return db, nil
}

func openSQLite(cfg *config.Config) (*sql.DB, error) {
	dataDir := filepath.Dir(cfg.Database.Path)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_foreign_keys=on", cfg.Database.Path)
	if cfg.Database.WALMode {
		dsn += "&_journal_mode=WAL"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %v", err)
	}

	// SQLite only supports one writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	log.Printf("Opened SQLite database at %s (WAL mode: %v)", cfg.Database.Path, cfg.Database.WALMode)
	return db, nil
}

func openPostgres(cfg *config.Config) (*sql.DB, error) {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open PostgreSQL connection: %v", err)
	}

	log.Printf("Opened PostgreSQL database %s on %s", cfg.Database.Name, cfg.Database.Host)
	return db, nil
}

func pingWithRetries(db *sql.DB, maxRetries, retryDelay int) error {
	if maxRetries <= 0 {
		maxRetries = 1
	}
	var lastErr error
	for i := 0; i < maxRetries; i++ {
		if lastErr = db.Ping(); lastErr == nil {
			return nil
		}
		log.Printf("Attempt %d/%d failed: %v", i+1, maxRetries, lastErr)
		time.Sleep(time.Duration(retryDelay) * time.Second)
	}
	return fmt.Errorf("failed to connect to database after %d attempts: %v", maxRetries, lastErr)
}

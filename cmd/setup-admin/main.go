// Command setup-admin provisions (or re-provisions) the single admin account.
// The server itself never creates accounts.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/sunbonsys/backend/internal/auth"
	"github.com/sunbonsys/backend/internal/config"
	"github.com/sunbonsys/backend/internal/database"
	"github.com/sunbonsys/backend/internal/store"
)

func main() {
	configPath := flag.String("config", "app.yml", "Path to configuration file")
	flag.Parse()

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@sunbonsys.in"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "ChangeMe123!"
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	s := store.New(db, cfg.Database.Type)
	if err := s.UpsertAdmin(email, hash, "Admin"); err != nil {
		log.Fatalf("Failed to create admin account: %v", err)
	}

	log.Printf("Admin account ready: %s", email)
	if os.Getenv("ADMIN_PASSWORD") == "" {
		log.Printf("Using the default password. Change it after first login.")
	}
}

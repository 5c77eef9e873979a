package cmd

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/rm-hull/medevents-gateway/internal"
	"github.com/rm-hull/medevents-gateway/internal/gateway"
	"github.com/rm-hull/medevents-gateway/internal/tokens"
)

type app struct {
	config internal.Config
	client *gateway.Client
	repo   internal.SnapshotRepository
}

// bootstrap initialises shared resources used by every command: the sqlite
// database holding the session tokens and snapshots, and the gateway client
// bound to it.
func bootstrap(dbPath string) (*app, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := internal.LoadConfig()

	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := internal.Connect(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := internal.Migrate(dbPath); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate SQL: %w", err)
	}

	client, err := gateway.NewClient(gateway.Config{
		BaseURL:          cfg.BaseURL,
		Store:            tokens.NewSQLiteStore(db),
		HTTPClient:       &http.Client{Timeout: cfg.RequestTimeout},
		SerializeRefresh: cfg.SerializeRefresh,
		HealthCacheTTL:   cfg.HealthCacheTTL,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create gateway client: %w", err)
	}

	return &app{
		config: cfg,
		client: client,
		repo:   internal.NewSnapshotRepository(db),
	}, nil
}

func (a *app) Close() {
	if err := a.repo.Close(); err != nil {
		log.Printf("failed to close repository: %v", err)
	}
}

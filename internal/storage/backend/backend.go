// Package backend picks the storage implementation from configuration:
// PostgreSQL through GORM when a database URL is configured, the local
// SQLite file otherwise.
package backend

import (
	"log/slog"

	"github.com/aanand-mishra/starwars-api/internal/config"
	"github.com/aanand-mishra/starwars-api/internal/storage"
	"github.com/aanand-mishra/starwars-api/internal/storage/gormdb"
	"github.com/aanand-mishra/starwars-api/internal/storage/sqlite"
)

// Open returns the configured store with its schema in place.
func Open(cfg *config.Config, log *slog.Logger) (storage.Storage, error) {
	if cfg.UsesPostgres() {
		log.Info("using postgres storage")
		return gormdb.NewPostgres(cfg.DatabaseURL, log)
	}

	log.Info("using sqlite storage", slog.String("path", cfg.StoragePath))
	return sqlite.New(cfg)
}

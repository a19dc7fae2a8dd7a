package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/emberlane/emberlane-backend/internal/platform/db"
	"github.com/emberlane/emberlane-backend/internal/platform/logger"
	"github.com/emberlane/emberlane-backend/internal/store"
)

// resolveContentStore builds the backend STORE_BACKEND selects. All three
// expose identical semantics; the choice is purely operational.
func resolveContentStore(log *logger.Logger, cfg Config) (store.ContentStore, error) {
	log.Info("Selecting content store backend", "backend", cfg.StoreBackend)

	switch cfg.StoreBackend {
	case "memory":
		return store.NewMemoryStore(log), nil

	case "file":
		if dir := filepath.Dir(cfg.DataFile); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create data dir: %w", err)
			}
		}
		s, err := store.NewFileStore(cfg.DataFile, log)
		if err != nil {
			return nil, fmt.Errorf("init file store: %w", err)
		}
		return s, nil

	case "database":
		gdb, err := db.Open(log)
		if err != nil {
			return nil, fmt.Errorf("init database: %w", err)
		}
		if err := store.AutoMigrate(gdb); err != nil {
			return nil, fmt.Errorf("database automigrate: %w", err)
		}
		return store.NewDatabaseStore(gdb, log), nil

	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q (want memory, file or database)", cfg.StoreBackend)
	}
}

package db

import (
	"fmt"
	stdlog "log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/emberlane/emberlane-backend/internal/platform/env"
	"github.com/emberlane/emberlane-backend/internal/platform/logger"
)

// Open connects gorm using the configured driver. DB_DRIVER selects postgres
// (default) or sqlite; sqlite keeps the single-binary deployments free of a
// database server while exposing identical store behavior.
func Open(logg *logger.Logger) (*gorm.DB, error) {
	driver := env.Get("DB_DRIVER", "postgres", logg)

	gormLog := gormLogger.New(
		stdlog.New(os.Stdout, "\r\n", stdlog.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	cfg := &gorm.Config{Logger: gormLog}

	switch driver {
	case "postgres":
		host := env.Get("POSTGRES_HOST", "localhost", logg)
		port := env.Get("POSTGRES_PORT", "5432", logg)
		user := env.Get("POSTGRES_USER", "postgres", logg)
		password := env.Get("POSTGRES_PASSWORD", "", logg)
		name := env.Get("POSTGRES_NAME", "emberlane", logg)
		dsn := fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s?sslmode=disable",
			user, password, host, port, name,
		)
		gdb, err := gorm.Open(postgres.Open(dsn), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
		}
		return gdb, nil
	case "sqlite":
		path := env.Get("SQLITE_PATH", "data/emberlane.db", logg)
		gdb, err := gorm.Open(sqlite.Open(path), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database: %w", err)
		}
		return gdb, nil
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", driver)
	}
}

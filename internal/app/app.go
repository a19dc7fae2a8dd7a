package app

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/emberlane/emberlane-backend/internal/platform/logger"
	"github.com/emberlane/emberlane-backend/internal/store"
)

type App struct {
	Log      *logger.Logger
	Cfg      Config
	Store    store.ContentStore
	Router   *gin.Engine
	Services Services
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	contentStore, err := resolveContentStore(log, cfg)
	if err != nil {
		log.Sync()
		return nil, err
	}

	serviceset, err := wireServices(context.Background(), log, cfg, contentStore)
	if err != nil {
		log.Sync()
		return nil, err
	}

	handlerset := wireHandlers(log, contentStore, serviceset)
	middleware := wireMiddleware(log, serviceset)
	router := wireRouter(log, cfg, handlerset, middleware)

	return &App{
		Log:      log,
		Cfg:      cfg,
		Store:    contentStore,
		Router:   router,
		Services: serviceset,
	}, nil
}

func (a *App) Run() error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	addr := ":" + a.Cfg.Port
	a.Log.Info("Starting HTTP server", "addr", addr, "store", a.Cfg.StoreBackend)
	return a.Router.Run(addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			a.Log.Error("Closing content store failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}

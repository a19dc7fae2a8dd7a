package app

import (
	"context"

	"github.com/emberlane/emberlane-backend/internal/platform/logger"
	"github.com/emberlane/emberlane-backend/internal/services"
	"github.com/emberlane/emberlane-backend/internal/store"
)

type Services struct {
	Auth     services.AuthService
	Notifier services.Notifier
	Uploads  services.UploadService
}

func wireServices(ctx context.Context, log *logger.Logger, cfg Config, contentStore store.ContentStore) (Services, error) {
	log.Info("Wiring services...")

	uploads, err := resolveUploadService(ctx, log, cfg)
	if err != nil {
		return Services{}, err
	}

	return Services{
		Auth: services.NewAuthService(contentStore, log, cfg.JWTSecretKey, cfg.TokenTTL),
		Notifier: services.NewMailNotifier(log, services.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
			To:       cfg.NotifyTo,
		}),
		Uploads: uploads,
	}, nil
}

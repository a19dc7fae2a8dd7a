package app

import (
	"context"
	"fmt"

	"github.com/emberlane/emberlane-backend/internal/platform/logger"
	"github.com/emberlane/emberlane-backend/internal/services"
)

func resolveUploadService(ctx context.Context, log *logger.Logger, cfg Config) (services.UploadService, error) {
	log.Info("Selecting upload provider", "mode", cfg.UploadMode)

	switch cfg.UploadMode {
	case "local":
		return services.NewLocalUploader(log, cfg.UploadDir)
	case "s3":
		return services.NewS3Uploader(ctx, log, services.S3Config{
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			BaseURL:   cfg.S3PublicURL,
		})
	default:
		return nil, fmt.Errorf("unknown UPLOAD_MODE %q (want local or s3)", cfg.UploadMode)
	}
}

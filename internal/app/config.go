package app

import (
	"strings"
	"time"

	"github.com/emberlane/emberlane-backend/internal/platform/env"
	"github.com/emberlane/emberlane-backend/internal/platform/logger"
)

type Config struct {
	Port string

	// StoreBackend selects memory, file or database.
	StoreBackend string
	DataFile     string

	JWTSecretKey string
	TokenTTL     time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string
	NotifyTo     string

	// UploadMode selects local or s3.
	UploadMode  string
	UploadDir   string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3PublicURL string

	CORSOrigins []string
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port: env.Get("PORT", "8080", log),

		StoreBackend: strings.ToLower(env.Get("STORE_BACKEND", "file", log)),
		DataFile:     env.Get("DATA_FILE", "data/content.json", log),

		JWTSecretKey: env.Get("JWT_SECRET_KEY", "defaultsecret", log),
		TokenTTL:     time.Duration(env.GetAsInt("ADMIN_TOKEN_TTL", 86400, log)) * time.Second,

		SMTPHost:     env.Get("SMTP_HOST", "", log),
		SMTPPort:     env.GetAsInt("SMTP_PORT", 587, log),
		SMTPUser:     env.Get("SMTP_USER", "", log),
		SMTPPassword: env.Get("SMTP_PASSWORD", "", log),
		SMTPFrom:     env.Get("SMTP_FROM", "", log),
		NotifyTo:     env.Get("NOTIFY_TO", "", log),

		UploadMode:  strings.ToLower(env.Get("UPLOAD_MODE", "local", log)),
		UploadDir:   env.Get("UPLOAD_DIR", "data/uploads", log),
		S3Region:    env.Get("S3_REGION", "", log),
		S3Bucket:    env.Get("S3_BUCKET", "", log),
		S3AccessKey: env.Get("S3_ACCESS_KEY", "", log),
		S3SecretKey: env.Get("S3_SECRET_KEY", "", log),
		S3PublicURL: env.Get("S3_PUBLIC_URL", "", log),
	}

	if origins := env.Get("CORS_ORIGINS", "", log); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}
	return cfg
}

package app

import (
	"github.com/gin-gonic/gin"

	httpRouter "github.com/emberlane/emberlane-backend/internal/http"
	"github.com/emberlane/emberlane-backend/internal/platform/logger"
)

func wireRouter(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware) *gin.Engine {
	uploadDir := ""
	if cfg.UploadMode == "local" {
		uploadDir = cfg.UploadDir
	}
	return httpRouter.NewRouter(httpRouter.RouterConfig{
		Log:            log,
		CORSOrigins:    cfg.CORSOrigins,
		AuthMiddleware: middleware.Auth,

		BlogHandler:        handlers.Blog,
		HeroHandler:        handlers.Hero,
		ContactInfoHandler: handlers.ContactInfo,
		WorkshopHandler:    handlers.Workshop,
		ProductHandler:     handlers.Product,
		GalleryHandler:     handlers.Gallery,
		ContactHandler:     handlers.Contact,
		AdminHandler:       handlers.Admin,
		UploadHandler:      handlers.Upload,
		HealthHandler:      handlers.Health,

		UploadDir: uploadDir,
	})
}

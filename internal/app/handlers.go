package app

import (
	httpH "github.com/emberlane/emberlane-backend/internal/http/handlers"
	"github.com/emberlane/emberlane-backend/internal/platform/logger"
	"github.com/emberlane/emberlane-backend/internal/store"
)

type Handlers struct {
	Blog        *httpH.BlogHandler
	Hero        *httpH.HeroHandler
	ContactInfo *httpH.ContactInfoHandler
	Workshop    *httpH.WorkshopHandler
	Product     *httpH.ProductHandler
	Gallery     *httpH.GalleryHandler
	Contact     *httpH.ContactHandler
	Admin       *httpH.AdminHandler
	Upload      *httpH.UploadHandler
	Health      *httpH.HealthHandler
}

func wireHandlers(log *logger.Logger, contentStore store.ContentStore, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Blog:        httpH.NewBlogHandler(contentStore),
		Hero:        httpH.NewHeroHandler(contentStore),
		ContactInfo: httpH.NewContactInfoHandler(contentStore),
		Workshop:    httpH.NewWorkshopHandler(contentStore),
		Product:     httpH.NewProductHandler(contentStore),
		Gallery:     httpH.NewGalleryHandler(contentStore),
		Contact:     httpH.NewContactHandler(contentStore, services.Notifier, log),
		Admin:       httpH.NewAdminHandler(contentStore, services.Auth, log),
		Upload:      httpH.NewUploadHandler(services.Uploads, log),
		Health:      httpH.NewHealthHandler(),
	}
}

package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/emberlane/emberlane-backend/internal/http/handlers"
	httpMW "github.com/emberlane/emberlane-backend/internal/http/middleware"
	"github.com/emberlane/emberlane-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	CORSOrigins    []string
	AuthMiddleware *httpMW.AuthMiddleware

	BlogHandler        *httpH.BlogHandler
	HeroHandler        *httpH.HeroHandler
	ContactInfoHandler *httpH.ContactInfoHandler
	WorkshopHandler    *httpH.WorkshopHandler
	ProductHandler     *httpH.ProductHandler
	GalleryHandler     *httpH.GalleryHandler
	ContactHandler     *httpH.ContactHandler
	AdminHandler       *httpH.AdminHandler
	UploadHandler      *httpH.UploadHandler
	HealthHandler      *httpH.HealthHandler

	// UploadDir, when set, is served as static files under /uploads for the
	// local upload provider.
	UploadDir string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.UploadDir != "" {
		r.Static("/uploads", cfg.UploadDir)
	}

	api := r.Group("/api")
	{
		if cfg.BlogHandler != nil {
			api.GET("/blog", cfg.BlogHandler.List)
			api.GET("/blog/:id", cfg.BlogHandler.Get)
			api.GET("/blog/slug/:slug", cfg.BlogHandler.GetBySlug)
		}
		if cfg.HeroHandler != nil {
			api.GET("/hero", cfg.HeroHandler.Get)
		}
		if cfg.ContactInfoHandler != nil {
			api.GET("/contact-info", cfg.ContactInfoHandler.Get)
		}
		if cfg.WorkshopHandler != nil {
			api.GET("/workshop/packages", cfg.WorkshopHandler.ListPackages)
			api.GET("/workshop/curriculum", cfg.WorkshopHandler.ListCurriculum)
		}
		if cfg.ProductHandler != nil {
			api.GET("/products", cfg.ProductHandler.List)
		}
		if cfg.GalleryHandler != nil {
			api.GET("/gallery", cfg.GalleryHandler.List)
			api.GET("/gallery/highlighted", cfg.GalleryHandler.ListHighlighted)
		}
		if cfg.ContactHandler != nil {
			api.POST("/contact", cfg.ContactHandler.Create)
		}
		if cfg.AdminHandler != nil {
			api.POST("/admin/login", cfg.AdminHandler.Login)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAdmin())
		}

		if cfg.BlogHandler != nil {
			protected.POST("/blog", cfg.BlogHandler.Create)
			protected.PUT("/blog/:id", cfg.BlogHandler.Update)
			protected.DELETE("/blog/:id", cfg.BlogHandler.Delete)
		}
		if cfg.HeroHandler != nil {
			protected.PUT("/hero", cfg.HeroHandler.Update)
		}
		if cfg.ContactInfoHandler != nil {
			protected.PUT("/contact-info", cfg.ContactInfoHandler.Update)
		}
		if cfg.WorkshopHandler != nil {
			protected.PUT("/workshop/packages", cfg.WorkshopHandler.ReplacePackages)
			protected.PUT("/workshop/curriculum", cfg.WorkshopHandler.ReplaceCurriculum)
		}
		if cfg.ProductHandler != nil {
			protected.PUT("/products", cfg.ProductHandler.Replace)
		}
		if cfg.GalleryHandler != nil {
			protected.GET("/gallery/:id", cfg.GalleryHandler.Get)
			protected.POST("/gallery", cfg.GalleryHandler.Create)
			protected.PUT("/gallery/:id", cfg.GalleryHandler.Update)
			protected.DELETE("/gallery/:id", cfg.GalleryHandler.Delete)
		}
		if cfg.ContactHandler != nil {
			protected.GET("/contact", cfg.ContactHandler.List)
			protected.DELETE("/contact/:id", cfg.ContactHandler.Delete)
		}
		if cfg.AdminHandler != nil {
			protected.GET("/admin/credentials", cfg.AdminHandler.GetCredentials)
			protected.PUT("/admin/credentials", cfg.AdminHandler.UpdateCredentials)
			protected.GET("/admin/backup", cfg.AdminHandler.Backup)
			protected.POST("/admin/restore", cfg.AdminHandler.Restore)
		}
		if cfg.UploadHandler != nil {
			protected.POST("/upload", cfg.UploadHandler.Create)
		}
	}

	return r
}

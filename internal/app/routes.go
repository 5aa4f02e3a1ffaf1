package app

import (
	"net/http"
	"time"

	"github.com/foxbeep/site-core/internal/middleware"
	"github.com/foxbeep/site-core/internal/modules/ads"
	"github.com/foxbeep/site-core/internal/modules/auth"
	"github.com/foxbeep/site-core/internal/modules/backup"
	"github.com/foxbeep/site-core/internal/modules/newsletter"
	"github.com/foxbeep/site-core/internal/modules/settings/adsense"
	"github.com/foxbeep/site-core/internal/modules/settings/company"
	"github.com/foxbeep/site-core/internal/modules/settings/converter"
	"github.com/foxbeep/site-core/internal/modules/settings/homepage"
	"github.com/foxbeep/site-core/internal/modules/upload"
	pkgredis "github.com/foxbeep/site-core/internal/pkg/redis"
	"github.com/foxbeep/site-core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(rc *pkgredis.Client) {
	r := a.router
	db := a.db
	cfg := a.cfg
	authMW := middleware.Auth(db, cfg)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	api := r.Group("/api")
	if rc != nil {
		// OptionalAuth must precede the cache so authenticated responses
		// are never stored or replayed to anonymous clients.
		api.Use(middleware.OptionalAuth(db, cfg))
		api.Use(middleware.HTTPCache(rc, middleware.HTTPCacheOptions{
			TTL:     60 * time.Second,
			Disable: cfg.IsDev(),
			SkipPaths: []string{
				"/api/clean_cache",
				"/api/admin/backup/new",
			},
		}))
	}

	api.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": "pong"})
	})

	if rc != nil {
		api.GET("/clean_cache", authMW, func(c *gin.Context) {
			deleted, err := middleware.PurgeHTTPCache(c.Request.Context(), rc)
			if err != nil {
				response.InternalError(c, err)
				return
			}
			response.OK(c, gin.H{"deleted": deleted})
		})
	}

	cronGroup := api.Group("/admin/cron", authMW)
	{
		cronGroup.GET("", func(c *gin.Context) {
			response.OK(c, a.sched.List())
		})
		cronGroup.GET("/task/:name", func(c *gin.Context) {
			result, err := a.sched.GetTask(c.Param("name"))
			if err != nil {
				response.NotFoundMsg(c, err.Error())
				return
			}
			response.OK(c, result)
		})
		cronGroup.POST("/run/:name", func(c *gin.Context) {
			if err := a.sched.Run(c.Request.Context(), c.Param("name")); err != nil {
				response.NotFoundMsg(c, err.Error())
				return
			}
			response.OK(c, gin.H{"message": "job triggered"})
		})
	}

	// Uploads back the image-cleanup hooks of each settings service.
	uploadSvc := upload.NewService(db, a.store, cfg.Upload)

	a.adsSvc = ads.NewService(db, uploadSvc, a.logger.Named("AdService"))
	a.backupSvc = backup.NewService(db, a.store, cfg.Backup, a.logger.Named("BackupService"))

	auth.NewHandler(auth.NewService(db, cfg)).RegisterRoutes(api, authMW)
	homepage.NewHandler(homepage.NewService(db, uploadSvc, a.logger.Named("HomepageService"))).RegisterRoutes(api, authMW)
	converter.NewHandler(converter.NewService(db, uploadSvc, a.logger.Named("ConverterService"))).RegisterRoutes(api, authMW)
	company.NewHandler(company.NewService(db, uploadSvc, a.logger.Named("CompanyService"))).RegisterRoutes(api, authMW)
	adsense.NewHandler(adsense.NewService(db)).RegisterRoutes(api, authMW)
	ads.NewHandler(a.adsSvc).RegisterRoutes(api, authMW)
	newsletter.NewHandler(newsletter.NewService(db)).RegisterRoutes(api, authMW)
	upload.NewHandler(uploadSvc, cfg.Upload).RegisterRoutes(api, authMW)
	backup.NewHandler(a.backupSvc).RegisterRoutes(api, authMW)
}

package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/foxbeep/site-core/internal/config"
	"github.com/foxbeep/site-core/internal/database"
	"github.com/foxbeep/site-core/internal/middleware"
	"github.com/foxbeep/site-core/internal/modules/ads"
	"github.com/foxbeep/site-core/internal/modules/backup"
	pkgcron "github.com/foxbeep/site-core/internal/pkg/cron"
	"github.com/foxbeep/site-core/internal/pkg/jwt"
	pkgredis "github.com/foxbeep/site-core/internal/pkg/redis"
	"github.com/foxbeep/site-core/internal/pkg/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds all application dependencies.
type App struct {
	cfg    *config.AppConfig
	router *gin.Engine
	db     *gorm.DB
	store  *storage.Client
	redis  *pkgredis.Client
	logger *zap.Logger
	cancel context.CancelFunc
	sched  *pkgcron.Scheduler

	adsSvc    *ads.Service
	backupSvc *backup.Service
}

// New initializes the application: config, database, Redis, routes.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("jwt_secret is required")
	}
	jwt.SetSecret(cfg.JWTSecret)

	db, err := database.Connect(cfg, true)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	rc, err := pkgredis.Connect(cfg.Redis.URLValue())
	if err != nil {
		// The site serves without a response cache; log and continue.
		logger.Warn("redis unavailable, http cache disabled", zap.Error(err))
		rc = nil
	}

	var store *storage.Client
	if cfg.HasStorage() {
		store, err = storage.New(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("storage: %w", err)
		}
	}

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.MaxMultipartMemory = cfg.Upload.BodyLimitBytes
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "x-api-cache"},
		AllowCredentials: true,
	}
	if len(cfg.AllowedOrigins) > 0 && !cfg.IsDev() {
		patterns := cfg.AllowedOrigins
		corsConfig.AllowOriginFunc = func(origin string) bool {
			host := extractOriginHost(origin)
			for _, pattern := range patterns {
				if matchOriginPattern(pattern, host) {
					return true
				}
			}
			return false
		}
	} else {
		corsConfig.AllowOriginFunc = func(origin string) bool { return true }
	}
	router.Use(cors.New(corsConfig))

	ctx, cancel := context.WithCancel(context.Background())

	app := &App{
		cfg:    cfg,
		router: router,
		db:     db,
		store:  store,
		redis:  rc,
		logger: logger,
		cancel: cancel,
		sched:  pkgcron.New(),
	}
	app.registerRoutes(rc)
	app.registerCronJobs()
	go app.sched.Start(ctx)

	return app, nil
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown cleans up background goroutines and connections.
func (a *App) Shutdown() {
	a.cancel()
	if a.redis != nil {
		_ = a.redis.Close()
	}
}

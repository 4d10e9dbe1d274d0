package main

import (
	"context"
	"log"

	"github.com/digitalget/services-site/internal/api"
	"github.com/digitalget/services-site/internal/api/render"
	"github.com/digitalget/services-site/internal/core/ports"
	"github.com/digitalget/services-site/internal/core/service"
	"github.com/digitalget/services-site/internal/infrastructure/config"
	"github.com/digitalget/services-site/internal/infrastructure/db/redis"
	"github.com/digitalget/services-site/internal/infrastructure/db/sqlite"
	"github.com/digitalget/services-site/internal/infrastructure/mail"
	"github.com/digitalget/services-site/internal/infrastructure/sessions"
	"github.com/digitalget/services-site/internal/infrastructure/storage"
	"github.com/digitalget/services-site/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("error loading configuration: %v", err)
	}

	logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Env == "development"})
	appLog := logger.Get()

	db, err := sqlite.Connect(ctx, cfg.DBPath)
	if err != nil {
		appLog.Fatal().Err(err).Str("path", cfg.DBPath).Msg("failed to open database")
	}
	defer db.Close()

	accountRepo := sqlite.NewAccountRepository(db)
	entityRepo := sqlite.NewEntityRepository(db)
	staffRepo := sqlite.NewStaffRepository(db)
	messageRepo := sqlite.NewMessageRepository(db)

	var store ports.SessionStore = sessions.NewMemoryStore()
	if cfg.Redis.Addr != "" {
		shared, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			appLog.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, using in-memory sessions")
		} else {
			store = shared
		}
	}

	imageStore, err := storage.NewImageStore(cfg.StaticDir, appLog)
	if err != nil {
		appLog.Fatal().Err(err).Str("dir", cfg.StaticDir).Msg("failed to prepare asset storage")
	}

	sessionManager := service.NewSessionManager(store, accountRepo, appLog)
	authService := service.NewAuthService(accountRepo, appLog)
	adminService := service.NewAdminService(accountRepo, entityRepo, staffRepo, messageRepo, imageStore, appLog)
	siteService := service.NewSiteService(entityRepo, staffRepo)
	mailer := mail.NewSMTPMailer(cfg.Mail, appLog)
	mailingService := service.NewMailingService(accountRepo, mailer, cfg.SiteName, cfg.Mail.ContactEmail, appLog)

	if err := authService.EnsureAdmin(ctx, cfg.Admin.FullName, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		appLog.Fatal().Err(err).Msg("failed to seed administrator")
	}

	renderer, err := render.New(cfg.Templates)
	if err != nil {
		appLog.Fatal().Err(err).Str("dir", cfg.Templates).Msg("failed to load templates")
	}

	e := api.NewRouter(api.RouterConfig{
		Sessions:     sessionManager,
		Auth:         authService,
		Admin:        adminService,
		Site:         siteService,
		Mailing:      mailingService,
		Renderer:     renderer,
		Logger:       appLog,
		SiteName:     cfg.SiteName,
		StaticDir:    cfg.StaticDir,
		CookieSecure: cfg.Env != "development",
	})

	appLog.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
	if err := e.Start(":" + cfg.Port); err != nil {
		appLog.Fatal().Err(err).Msg("server stopped")
	}
}

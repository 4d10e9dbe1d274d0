package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/digitalget/services-site/internal/api/handler"
	"github.com/digitalget/services-site/internal/api/middleware"
	"github.com/digitalget/services-site/internal/core/domain"
	"github.com/digitalget/services-site/internal/core/ports"
)

// RouterConfig bundles everything the HTTP layer depends on.
type RouterConfig struct {
	Sessions ports.SessionManager
	Auth     ports.AuthService
	Admin    ports.AdminService
	Site     ports.SiteService
	Mailing  ports.MailingService

	Renderer  echo.Renderer
	Logger    zerolog.Logger
	SiteName  string
	StaticDir string
	// CookieSecure marks session cookies Secure; off only for plain-HTTP
	// development.
	CookieSecure bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Renderer = cfg.Renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("site"))
	e.Use(middleware.LoadActor(cfg.Sessions, cfg.CookieSecure, cfg.Logger))

	e.GET("/metrics", echoprometheus.NewHandler())
	e.Static("/static", cfg.StaticDir)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(cfg.Auth, cfg.Sessions, cfg.SiteName, cfg.Logger)
	siteHandler := handler.NewSiteHandler(cfg.Site, cfg.Mailing, cfg.Sessions, cfg.SiteName, cfg.Logger)
	adminHandler := handler.NewAdminHandler(cfg.Admin, cfg.Mailing, cfg.Sessions, cfg.SiteName, cfg.Logger)

	csrf := middleware.VerifyCSRF(cfg.Sessions)
	authed := middleware.RequireAuthenticated()

	// --- Public site ---
	home := func(c echo.Context) error { return c.Redirect(http.StatusSeeOther, "/site/home") }
	e.GET("/", home)
	e.GET("/site", home)
	e.GET("/site/logout", authHandler.Logout)
	e.POST("/site/login", authHandler.Login, csrf)
	e.POST("/site/register", authHandler.Register, csrf)
	e.POST("/site/account", authHandler.UpdateAccount, authed, csrf)
	e.POST("/site/contact", siteHandler.SubmitContact, authed, csrf)
	e.GET("/site/:page", siteHandler.Page)

	// --- Backoffice ---
	e.GET("/backoffice/login", authHandler.BackofficeLoginPage)
	e.POST("/backoffice/login", authHandler.BackofficeLogin, csrf)
	e.GET("/backoffice/logout", authHandler.BackofficeLogout)

	admin := e.Group("/backoffice", middleware.RequireAdmin())
	admin.GET("", adminHandler.Dashboard)
	admin.GET("/users", adminHandler.UsersPage)
	admin.POST("/users", adminHandler.UsersAction, csrf)

	for _, p := range []struct {
		path    string
		kind    domain.EntityKind
		view    string
		listKey string
		active  string
	}{
		{"/services", domain.KindService, "admin/services.html", "services", "services"},
		{"/projects", domain.KindProject, "admin/projects.html", "projects", "projects"},
		{"/members", domain.KindTeamMember, "admin/members.html", "members", "members"},
		{"/domains", domain.KindHomeDomain, "admin/domains.html", "domains", "domains"},
		{"/about", domain.KindAboutMember, "admin/about.html", "members", "about"},
	} {
		admin.GET(p.path, adminHandler.EntityPage(p.kind, p.view, p.listKey, p.active))
		admin.POST(p.path, adminHandler.EntityAction(p.kind, "/backoffice"+p.path), csrf)
	}

	admin.GET("/people", adminHandler.StaffPage)
	admin.POST("/people", adminHandler.StaffAction, csrf)
	admin.GET("/mailing", adminHandler.MailingPage)
	admin.POST("/mailing", adminHandler.MailingAction, csrf)
	admin.GET("/chat", adminHandler.ChatPage)

	return e
}

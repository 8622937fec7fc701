// Package app wires repositories, services and handlers into one HTTP handler.
package app

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"atrium/internal/config"
	"atrium/internal/domain/auth"
	"atrium/internal/domain/doctype"
	"atrium/internal/domain/employee"
	"atrium/internal/domain/events"
	"atrium/internal/domain/explorer"
	"atrium/internal/domain/importantdoc"
	"atrium/internal/middleware"
	"atrium/internal/pkg/jwt"
	"atrium/internal/pkg/response"
	"atrium/internal/storage"
)

type App struct {
	Handler http.Handler
	Hub     *events.Hub
	Auth    *auth.Service
}

func New(cfg *config.Config, db *gorm.DB, store storage.Storage, logger *slog.Logger) *App {
	j := jwt.New(cfg.JWTSecret, cfg.JWTTTL)
	hub := events.NewHub(logger)

	employeeService := employee.NewService(employee.NewRepository(db), logger)
	doctypeService := doctype.NewService(doctype.NewRepository(db), logger)
	authService := auth.NewService(auth.NewUserRepository(db), j, logger)

	explorerService := explorer.NewService(
		explorer.NewRepository(db),
		store,
		employeeService,
		hub,
		logger,
		cfg.MaxUploadBytes(),
	)
	importantService := importantdoc.NewService(
		importantdoc.NewRepository(db),
		store,
		employeeService,
		doctypeService,
		logger,
		cfg.MaxUploadBytes(),
		cfg.ExpiryWarning(),
	)

	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandler(employeeService)
	doctypeHandler := doctype.NewHandler(doctypeService)
	explorerHandler := explorer.NewHandler(explorerService)
	importantHandler := importantdoc.NewHandler(importantService)
	eventsHandler := events.NewHandler(hub, employeeService, cfg.CORSOrigins)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.ErrorLogger(logger))
	if !cfg.IsProduction() {
		r.Use(gin.Logger())
	}
	r.MaxMultipartMemory = 8 << 20

	r.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	authHandler.RegisterPublicRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.JWTAuth(j))
	{
		authHandler.RegisterProtectedRoutes(protected)
		employeeHandler.RegisterRoutes(protected, middleware.AdminOrHR())
		doctypeHandler.RegisterRoutes(protected, middleware.AdminOrHR())
		explorerHandler.RegisterRoutes(protected)
		importantHandler.RegisterRoutes(protected)
		eventsHandler.RegisterRoutes(protected)
	}

	return &App{
		Handler: middleware.CORS(cfg.CORSOrigins, r),
		Hub:     hub,
		Auth:    authService,
	}
}

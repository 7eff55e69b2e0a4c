package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/securecontent/workspace-api/docs"
	"github.com/securecontent/workspace-api/internal/api/handler"
	"github.com/securecontent/workspace-api/internal/api/middleware"
	"github.com/securecontent/workspace-api/internal/core/domain"
	"github.com/securecontent/workspace-api/internal/core/service"
	"github.com/securecontent/workspace-api/internal/infrastructure/config"
	mongodb "github.com/securecontent/workspace-api/internal/infrastructure/db/mongo"
	redisdb "github.com/securecontent/workspace-api/internal/infrastructure/db/redis"
	"github.com/securecontent/workspace-api/internal/infrastructure/storage"
	"github.com/securecontent/workspace-api/internal/pkg/credentials"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
	}))
	e.Use(echoprometheus.NewMiddleware("workspace"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Env, log)

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	articleRepo := mongodb.NewArticleRepository(db)

	tokens := credentials.NewTokenCodec(cfg.JWTSecret, cfg.JWTTTL)
	uploads, err := storage.NewLocalStore(cfg.Upload.Dir, cfg.Upload.MaxBytes, log)
	if err != nil {
		return nil, err
	}

	authService := service.NewAuthService(userRepo, tokens, log)
	articleService := service.NewArticleService(articleRepo, userRepo, cfg.Pagination.MaxLimit, log)

	authHandler := handler.NewAuthHandler(authService)
	articleHandler := handler.NewArticleHandler(articleService, uploads, log)
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	authRequired := middleware.Auth(tokens, userRepo)
	contributorOnly := middleware.RBAC(domain.RoleAdmin, domain.RoleEditor)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	counter := redisdb.NewWindowCounter(rdb)
	authRateLimit := middleware.RateLimit(counter, int64(cfg.RateLimit.Requests), cfg.RateLimit.Window, log)

	// --- Operational endpoints ---
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"message": "Content Workspace API",
			"endpoints": map[string]string{
				"auth":     "/api/auth",
				"articles": "/api/articles",
				"health":   "/api/health",
				"docs":     "/swagger/index.html",
			},
		})
	})
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)
	e.Static("/uploads", uploads.Dir())

	api := e.Group("/api")
	api.GET("/health", healthHandler.Liveness)
	api.GET("/health/ready", readinessHandler.Readiness)

	// --- Auth routes ---
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register, authRateLimit)
	auth.POST("/login", authHandler.Login, authRateLimit)
	auth.GET("/me", authHandler.Me, authRequired)

	// --- Article routes ---
	articles := api.Group("/articles")
	articles.GET("", articleHandler.List)
	articles.GET("/:id", articleHandler.Get)
	articles.POST("", articleHandler.Create, authRequired, contributorOnly)
	articles.PUT("/:id", articleHandler.Update, authRequired, contributorOnly)
	articles.DELETE("/:id", articleHandler.Delete, authRequired, adminOnly)

	return e, nil
}

package api

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/tradingportal/companies-api/docs"
	"github.com/tradingportal/companies-api/internal/api/handler"
	"github.com/tradingportal/companies-api/internal/api/middleware"
	"github.com/tradingportal/companies-api/internal/core/service"
	"github.com/tradingportal/companies-api/internal/infrastructure/db/postgres"
	redisdb "github.com/tradingportal/companies-api/internal/infrastructure/db/redis"
	"github.com/tradingportal/companies-api/internal/infrastructure/http/handlers"
	"github.com/tradingportal/companies-api/internal/infrastructure/oauth"
	"github.com/tradingportal/companies-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(pool *pgxpool.Pool, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("portal"))

	// --- Repositories ---
	userRepo := postgres.NewUserRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	watchlistRepo := postgres.NewWatchlistRepository(pool)
	tokenStore := redisdb.NewRefreshTokenStore(rdb)

	// --- Services ---
	googleVerifier := oauth.NewGoogleVerifier(oauth.Config{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		RedirectURL:  cfg.Google.RedirectURL,
	})
	authService := service.NewAuthService(userRepo, tokenStore, googleVerifier,
		cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	companyService := service.NewCompanyService(companyRepo, log)
	watchlistService := service.NewWatchlistService(watchlistRepo, companyRepo, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	companyHandler := handler.NewCompanyHandler(companyService)
	watchlistHandler := handler.NewWatchlistHandler(watchlistService)

	authRequired := middleware.Auth(cfg.JWTSecret)

	// --- Auth routes (public) ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/refresh", authHandler.Refresh)
	e.POST("/auth/google", authHandler.GoogleLogin)

	// --- Company routes ---
	// Reads are open to any authenticated user; writes need a superuser.
	companies := e.Group("/companies", authRequired)
	companies.GET("", companyHandler.List)
	companies.GET("/:id", companyHandler.Get)
	companies.POST("", companyHandler.Create, middleware.Superuser())
	companies.PATCH("/:id", companyHandler.Update, middleware.Superuser())
	companies.DELETE("/:id", companyHandler.Delete, middleware.Superuser())

	// --- Watchlist routes (owner-scoped) ---
	watchlists := e.Group("/watchlists", authRequired)
	watchlists.GET("", watchlistHandler.List)
	watchlists.POST("", watchlistHandler.Create)
	watchlists.DELETE("/:id", watchlistHandler.Delete)
	watchlists.GET("/:id/items", watchlistHandler.ListItems)
	watchlists.POST("/items/add", watchlistHandler.AddItem)
	watchlists.POST("/items/remove", watchlistHandler.RemoveItem)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(pool, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

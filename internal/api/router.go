package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/cinevault/movie-catalog/docs"
	"github.com/cinevault/movie-catalog/internal/api/handler"
	"github.com/cinevault/movie-catalog/internal/api/middleware"
	"github.com/cinevault/movie-catalog/internal/core/ports"
	"github.com/cinevault/movie-catalog/internal/core/service"
	mongodb "github.com/cinevault/movie-catalog/internal/infrastructure/db/mongo"
	"github.com/cinevault/movie-catalog/internal/infrastructure/http/handlers"
	"github.com/cinevault/movie-catalog/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, posters ports.PosterStore, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("moviecatalog"))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{cfg.FrontendURL},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	// --- Dependencies ---
	authRepo := mongodb.NewAuthRepository(db)
	authService := service.NewAuthService(authRepo, cfg.JWTSecret, 24*time.Hour)
	authHandler := handler.NewAuthHandler(authService)

	movieRepo := mongodb.NewMovieRepository(db)
	movieService := service.NewMovieService(movieRepo, authRepo, posters, log)
	movieHandler := handler.NewMovieHandler(movieService)
	uploadHandler := handler.NewUploadHandler(posters)

	authGuard := middleware.Auth(cfg.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Movie routes (bearer token required) ---
	movies := e.Group("/movies", authGuard)
	movies.POST("", movieHandler.Create)
	movies.GET("", movieHandler.List)
	movies.POST("/upload-poster", uploadHandler.UploadPoster)
	movies.GET("/:id", movieHandler.Get)
	movies.PATCH("/:id", movieHandler.Update)
	movies.DELETE("/:id", movieHandler.Remove)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler(db)
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Health)              // liveness + database status
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability / docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}

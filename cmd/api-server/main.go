package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"filmboard/database"
	"filmboard/internal/api/handler"
	"filmboard/internal/api/repository"
	"filmboard/internal/api/service"
	"filmboard/internal/config"
	"filmboard/internal/ingestion/tmdb"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	db, err := database.OpenGorm(cfg, logger)
	if err != nil {
		log.Fatalf("could not open database: %v", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	movieRepo := repository.NewMovieRepo(db)
	collectionRepo := repository.NewCollectionRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	followRepo := repository.NewFollowRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	followerCache, err := repository.NewFollowerCountCache(
		cfg.RedisAddr, cfg.RedisPassword, time.Duration(cfg.CacheTTL)*time.Second)
	if err != nil {
		// Counts fall back to the database when Redis is unreachable.
		logger.Warn("redis unavailable, follower counts uncached", "error", err)
		followerCache = nil
	}

	// Services
	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	activityService := service.NewActivityService(activityRepo, logger)
	collectionService := service.NewCollectionService(collectionRepo, activityService)
	commentService := service.NewCommentService(commentRepo, activityService)
	followService := service.NewFollowService(followRepo, userRepo, followerCache)
	posterClient := tmdb.NewClient(cfg.TMDBAPIURL, cfg.TMDBAPIKey)
	movieService := service.NewMovieService(movieRepo, posterClient, logger)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, cfg)
	profileHandler := handler.NewProfileHandler(authService)
	movieHandler := handler.NewMovieHandler(movieService, authService)
	collectionHandler := handler.NewCollectionHandler(collectionService, authService)
	commentHandler := handler.NewCommentHandler(commentService, authService)
	followHandler := handler.NewFollowHandler(followService, authService)
	activityHandler := handler.NewActivityHandler(activityService, authService)

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	corsConfig.AllowCredentials = true
	corsConfig.MaxAge = 12 * time.Hour
	r.Use(cors.New(corsConfig))

	r.GET("/check-conn", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "API is alive and database connected"})
	})

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.RefreshToken)
	auth.POST("/revoke", authHandler.RevokeToken)

	profile := auth.Group("/profile")
	profileHandler.RegisterRoutes(profile)
	collectionHandler.RegisterRoutes(profile)

	movieHandler.RegisterRoutes(api)
	commentHandler.RegisterRoutes(api)
	followHandler.RegisterRoutes(api)
	activityHandler.RegisterRoutes(api)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: r,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
	followerCache.Close()
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error", "fatal", "panic":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

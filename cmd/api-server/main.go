package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"webtoonhub/database"
	"webtoonhub/internal/cache"
	"webtoonhub/internal/config"
	"webtoonhub/internal/logging"
	"webtoonhub/internal/microservices/http-api/handler"
	"webtoonhub/internal/microservices/http-api/middleware"
	"webtoonhub/internal/microservices/http-api/repository"
	"webtoonhub/internal/microservices/http-api/service"
	"webtoonhub/internal/storage"

	"github.com/gin-gonic/gin"
)

const uploadURLPrefix = "/static/uploads"

func main() {
	// 1. Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// 2. Connect to the database
	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("database unavailable", "error", err)
		os.Exit(1)
	}
	defer database.Close(db)

	// 3. Redis is optional; a nil cache turns caching off
	responseCache, err := cache.New(cfg.RedisURL, cfg.CacheDuration())
	if err != nil {
		logger.Warn("redis unavailable, continuing without cache", "error", err)
		responseCache = nil
	}
	defer responseCache.Close()

	maxUpload, err := cfg.UploadMaxBytes()
	if err != nil {
		logger.Error("invalid upload size", "error", err)
		os.Exit(1)
	}
	images, err := storage.NewImageStore(cfg.UploadDir, uploadURLPrefix, maxUpload)
	if err != nil {
		logger.Error("upload directory unavailable", "dir", cfg.UploadDir, "error", err)
		os.Exit(1)
	}

	// 4. Repositories
	userRepo := repository.NewUserRepository(db)
	webtoonRepo := repository.NewWebtoonRepository(db)
	episodeRepo := repository.NewEpisodeRepository(db)
	sceneRepo := repository.NewSceneRepository(db)
	chatRepo := repository.NewChatRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)

	// 5. Services
	authService := service.NewAuthService(userRepo, cfg, logger)
	userService := service.NewUserService(userRepo)
	webtoonService := service.NewWebtoonService(webtoonRepo, likeRepo, responseCache, logger)
	episodeService := service.NewEpisodeService(episodeRepo, webtoonService, images, logger)
	sceneService := service.NewSceneService(sceneRepo, webtoonService)
	chatService := service.NewChatService(chatRepo, webtoonService, service.NewCannedReplies(), cfg.ChatCharacterName, responseCache, logger)
	interactionService := service.NewInteractionService(likeRepo, commentRepo, webtoonService, responseCache, logger)

	// 6. Router
	router := handler.SetupRouter(handler.Handlers{
		Auth:        handler.NewAuthHandler(authService, logger),
		User:        handler.NewUserHandler(userService, logger),
		Webtoon:     handler.NewWebtoonHandler(webtoonService, logger),
		Episode:     handler.NewEpisodeHandler(episodeService, maxUpload, logger),
		Scene:       handler.NewSceneHandler(sceneService, logger),
		Chat:        handler.NewChatHandler(chatService, logger),
		Interaction: handler.NewInteractionHandler(interactionService, logger),
	}, handler.RouterOptions{
		AuthService: authService,
		Limiter:     middleware.NewIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		CORSOrigins: cfg.CORSOrigins,
		StaticDir:   images.Dir(),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("API server listening", "addr", srv.Addr, "env", cfg.GoEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutting down API server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
	logger.Info("API server stopped")
}

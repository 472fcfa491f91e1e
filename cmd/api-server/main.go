package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"mangareader/database"
	"mangareader/internal/cache"
	"mangareader/internal/config"
	"mangareader/internal/http-api/handler"
	"mangareader/internal/http-api/middleware"
	"mangareader/internal/http-api/repository"
	"mangareader/internal/http-api/service"
	"mangareader/internal/upstream"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	db, err := database.Connect(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	// Redis is the optional hot path for reading progress; without it the
	// hybrid repo goes straight to postgres.
	var progressRedis *repository.ProgressRedisRepo
	if cfg.RedisAddr != "" {
		progressRedis, err = repository.NewProgressRedisRepo(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			logger.Warn("redis unavailable, progress reads fall back to postgres", "error", err)
			progressRedis = nil
		} else {
			defer progressRedis.Close()
		}
	}

	// Upstream clients
	source := upstream.NewSourceClient(cfg.SourceBaseURL)
	bookmarks := upstream.NewBookmarkClient(cfg.BookmarkBaseURL)
	anilist := upstream.NewAniListClient(cfg.AniListAPIURL)
	mal := upstream.NewMALClient(cfg.MALAPIURL)
	mapping := upstream.NewMappingClient(cfg.MappingAPIURL)

	// One response cache per process; entries are re-derivable views of
	// upstream content.
	store := cache.New()
	ttls := service.CacheTTLs{
		Search:  cfg.SearchCacheTTL,
		Browse:  cfg.BrowseCacheTTL,
		Chapter: cfg.ChapterCacheTTL,
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	libraryRepo := repository.NewLibraryRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	metaRepo := repository.NewMetaRepository(db)
	progressRepo := repository.NewHybridProgressRepo(
		repository.NewProgressPostgresRepo(db), progressRedis, logger)

	// Services
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry)
	mangaSvc := service.NewMangaService(source, store, ttls)
	bookmarkSvc := service.NewBookmarkService(bookmarks)
	librarySvc := service.NewLibraryService(libraryRepo)
	progressSvc := service.NewProgressService(progressRepo)
	commentSvc := service.NewCommentService(commentRepo)
	metaSvc := service.NewMetaService(anilist, mal, mapping, metaRepo, store)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	api := r.Group("/api")
	handler.NewMangaHandler(mangaSvc, ttls).RegisterRoutes(api)
	handler.NewBookmarkHandler(bookmarkSvc, logger).RegisterRoutes(api)
	handler.NewAuthHandler(authSvc).RegisterRoutes(api)
	handler.NewCommentHandler(commentSvc, authSvc).RegisterRoutes(api)
	handler.NewMetaHandler(metaSvc, authSvc).RegisterRoutes(api)

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(authSvc))
	handler.NewLibraryHandler(librarySvc).RegisterRoutes(authed)
	handler.NewProgressHandler(progressSvc).RegisterRoutes(authed)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("api server listening", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

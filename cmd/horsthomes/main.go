package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/timhorst/horsthomes/internal/cache"
	"github.com/timhorst/horsthomes/internal/config"
	"github.com/timhorst/horsthomes/internal/handler"
	"github.com/timhorst/horsthomes/internal/logging"
	"github.com/timhorst/horsthomes/internal/middleware"
	"github.com/timhorst/horsthomes/internal/scheduler"
	"github.com/timhorst/horsthomes/internal/service"
	"github.com/timhorst/horsthomes/internal/session"
	"github.com/timhorst/horsthomes/internal/storage"
	"github.com/timhorst/horsthomes/internal/store"
	"github.com/timhorst/horsthomes/internal/version"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Horst Home Improvements content service\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  HORST_SESSION_SECRET    Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  HORST_DB_PATH           SQLite database path (default: ./data/horsthomes.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  HORST_SERVER_PORT       Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  HORST_ENV               Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  HORST_UPLOADS_DIR       Local uploads directory (default: ./uploads)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  HORST_S3_ENDPOINT       S3-compatible endpoint; enables S3 storage when set\n")
		_, _ = fmt.Fprintf(os.Stderr, "  HORST_REDIS_URL         Redis URL for the listing cache (optional)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Printf("horsthomes %s (commit: %s, built: %s)\n",
			version.Version, version.GitCommit, version.BuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := slog.LevelInfo
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}
	baseHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(baseHandler))

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}
	slog.Info("database ready", "path", cfg.DBPath)

	// Upgrade the logger so WARN and ERROR records land in the event log
	slog.SetDefault(slog.New(logging.NewEventLogHandler(baseHandler, db)))

	sessionManager := session.New(db, cfg.IsDevelopment())

	// Object storage: S3-compatible when configured, local disk otherwise
	var objects storage.ObjectStore
	if cfg.UseS3() {
		s3Store, err := storage.NewS3Store(context.Background(), storage.S3Config{
			Endpoint:     cfg.S3Endpoint,
			Region:       cfg.S3Region,
			AccessKey:    cfg.S3AccessKey,
			SecretKey:    cfg.S3SecretKey,
			PublicPrefix: cfg.S3PublicPrefix,
		})
		if err != nil {
			return fmt.Errorf("configuring S3 storage: %w", err)
		}
		objects = s3Store
		slog.Info("object storage ready", "backend", "s3", "endpoint", cfg.S3Endpoint)
	} else {
		objects = storage.NewLocalStore(cfg.UploadsDir, cfg.PublicBaseURL)
		slog.Info("object storage ready", "backend", "local", "dir", cfg.UploadsDir)
	}

	// Listing cache: Redis when configured, process memory otherwise
	var listingCache cache.Cache
	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second
	if cfg.UseRedisCache() {
		redisCache, err := cache.NewRedis(context.Background(), cfg.RedisURL, cfg.CachePrefix, cacheTTL)
		if err != nil {
			return fmt.Errorf("configuring redis cache: %w", err)
		}
		defer func() { _ = redisCache.Close() }()
		listingCache = redisCache
		slog.Info("listing cache ready", "backend", "redis")
	} else {
		listingCache = cache.NewMemory(cacheTTL)
		slog.Info("listing cache ready", "backend", "memory")
	}

	// Services
	events := service.NewEventService(db)
	capabilities := service.NewCapabilityService(db)
	authService := service.NewAuthService(db, events, cfg.AdminEmailDomain)
	content := service.NewContentService(db, events, listingCache)
	images := service.NewImageService(objects)
	inquiries := service.NewInquiryService(db, events)

	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	publicLimiter := middleware.NewGlobalRateLimiter(1, 10)

	h := handler.New(sessionManager, authService, content, images, inquiries, events, loginProtection)

	// Router
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(middleware.RequestPath)
	r.Use(sessionManager.LoadAndSave)
	r.Use(middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment())))
	r.Use(middleware.LoadUser(sessionManager, db, capabilities))

	h.Routes(r, publicLimiter)

	// Serve locally stored uploads
	if !cfg.UseS3() {
		fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir)))
		r.Get("/uploads/*", fileServer.ServeHTTP)
	}

	// Orphaned-upload sweep
	var sched *scheduler.Scheduler
	if cfg.SweepSchedule != "" {
		sched = scheduler.New(db, objects, slog.Default())
		if err := sched.Start(cfg.SweepSchedule); err != nil {
			return fmt.Errorf("starting scheduler: %w", err)
		}
		defer sched.Stop()
	}

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second, // Longer to allow for large uploads
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

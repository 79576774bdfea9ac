package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gitglimpse-core/internal/application/service"
	"gitglimpse-core/internal/config"
	"gitglimpse-core/internal/database"
	"gitglimpse-core/internal/domain/session"
	"gitglimpse-core/internal/github"
	"gitglimpse-core/internal/infrastructure/encryption"
	"gitglimpse-core/internal/infrastructure/gemini"
	infraGitHub "gitglimpse-core/internal/infrastructure/github"
	"gitglimpse-core/internal/infrastructure/persistence"
	"gitglimpse-core/internal/logging"
	"gitglimpse-core/internal/middleware"
	"gitglimpse-core/internal/presentation/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// @title GitGlimpse Core API
// @version 1.0
// @description GitHub activity dashboard backend with AI summaries

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:5000
// @BasePath /

// @securityDefinitions.apikey SessionAuth
// @in header
// @name Authorization
// @description Session token as "Bearer <token>"; the session cookie is accepted too

const sessionPurgeInterval = 15 * time.Minute

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(os.Stderr, logging.ParseLevel(cfg.Log.Level))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Session storage
	sessions, closeSessions, err := newSessionRepository(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize session storage", "error", err)
		os.Exit(1)
	}
	defer closeSessions()

	// Initialize infrastructure layer
	githubClient, err := github.NewClient(cfg.GitHub.APIURL)
	if err != nil {
		logger.Error("failed to create GitHub client", "error", err)
		os.Exit(1)
	}
	githubService := infraGitHub.NewGitHubService(githubClient)
	summarizer := gemini.NewClient(&cfg.Summary, logger)
	if cfg.Summary.APIKey == "" {
		logger.Warn("GEMINI_API_KEY not set, summaries will be reported as unavailable")
	}

	// Initialize application layer
	authService := service.NewAuthService(service.NewOAuthConfig(&cfg.GitHub), githubService, sessions, &cfg.Session, logger)
	repositoryService := service.NewRepositoryService(githubService, summarizer, logger)
	commitService := service.NewCommitService(githubService, summarizer, logger)
	issueService := service.NewIssueService(githubService, summarizer, cfg.Aggregation.OwnerConcurrency, logger)
	pullRequestService := service.NewPullRequestService(githubService, summarizer, cfg.Aggregation.OwnerConcurrency, logger)

	// Initialize presentation layer
	h := handlers.Handlers{
		Health:       handlers.NewHealthHandler(cfg.Summary.APIKey != ""),
		Auth:         handlers.NewAuthHandler(authService, cfg.Session, cfg.Server.FrontendURL),
		Repositories: handlers.NewRepositoryHandler(repositoryService),
		Commits:      handlers.NewCommitHandler(commitService),
		Issues:       handlers.NewIssueHandler(issueService),
		PullRequests: handlers.NewPullRequestHandler(pullRequestService),
	}
	authMiddleware := middleware.NewAuthMiddleware(authService, cfg.Session.CookieName)

	// Set Gin mode
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.Server.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Retry-After", middleware.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	handlers.RegisterRoutes(router, h, authMiddleware.RequireSession())

	go purgeExpiredSessions(ctx, authService, logger)

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		logger.Info("server starting", "address", cfg.GetServerAddress(), "persistent_sessions", cfg.UsesDatabase())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}

// newSessionRepository returns the PostgreSQL store when DB_DSN is set and
// the in-memory store otherwise
func newSessionRepository(ctx context.Context, cfg *config.Config, logger *slog.Logger) (session.Repository, func(), error) {
	if !cfg.UsesDatabase() {
		logger.Warn("DB_DSN not set, sessions are kept in memory and lost on restart")
		return persistence.NewMemorySessionRepository(), func() {}, nil
	}

	db, err := database.NewConnection(ctx, &cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	if err := db.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}

	enc, err := encryption.NewEncryptionService(cfg.Database.EncryptionKey)
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	closeDB := func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}
	return persistence.NewSessionRepository(db, enc), closeDB, nil
}

func purgeExpiredSessions(ctx context.Context, authService *service.AuthService, logger *slog.Logger) {
	ticker := time.NewTicker(sessionPurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := authService.PurgeExpiredSessions(ctx); err != nil && ctx.Err() == nil {
				logger.Error("failed to purge expired sessions", "error", err)
			}
		}
	}
}

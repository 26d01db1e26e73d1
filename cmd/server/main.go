// Package main initializes and starts the Hearthwood site backend,
// setting up configuration, logging, the database and Redis connections,
// repositories, services, handlers, and the HTTP server.
package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/hearthwood/site/internal/config"
	"github.com/hearthwood/site/internal/db"
	"github.com/hearthwood/site/internal/logger"
	"github.com/hearthwood/site/internal/mediastore"
	"github.com/hearthwood/site/internal/middleware"
	"github.com/hearthwood/site/internal/repository"
	"github.com/hearthwood/site/internal/server/handler/http"
	"github.com/hearthwood/site/internal/service"
	"github.com/hearthwood/site/internal/session"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

const (
	// identityCacheTTL bounds how long a resolved identity is reused
	// across requests before the session store is consulted again.
	identityCacheTTL = 3 * time.Second

	// contactLimit and contactWindow throttle contact form submissions
	// per remote address.
	contactLimit  = 5
	contactWindow = time.Hour

	// maxHeroUploadBytes caps hero media uploads.
	maxHeroUploadBytes = 64 << 20
)

func main() {
	// Load .env if present; real environments set variables directly.
	_ = godotenv.Load()

	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize PostgreSQL connection.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Prune expired session audit rows in the background.
	db.StartSessionAuditPruner(ctx, postgresDB,
		time.Hour,       // interval
		30*24*time.Hour, // retention: 30 days
		zapLogger,
	)

	// Initialize Redis for sessions and rate limiting.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     options.RedisAddr,
		Password: options.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		zapLogger.Fatal("cannot reach redis", zap.Error(err))
	}

	// Initialize repositories.
	userRepo := repository.NewPostgresUserRepository(postgresDB)
	productRepo := repository.NewPostgresProductRepository(postgresDB)
	contentRepo := repository.NewPostgresContentRepository(postgresDB)

	// Initialize business-logic services.
	sessionStore := session.NewRedisStore(redisClient)
	authService := service.NewAuthService(userRepo, sessionStore,
		time.Duration(options.SessionTTLHours)*time.Hour)
	catalogService := service.NewCatalogService(productRepo)
	limiter := service.NewRedisLimiter(redisClient, contactLimit, contactWindow)
	contentService := service.NewContentService(contentRepo, limiter)

	// Initialize the hero media store.
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		zapLogger.Fatal("cannot load aws config", zap.Error(err))
	}
	mediaBaseURL := fmt.Sprintf("https://%s.s3.amazonaws.com", options.MediaBucket)
	mediaStore := mediastore.New(s3.NewFromConfig(awsCfg),
		options.MediaBucket, options.MediaPrefix, mediaBaseURL, maxHeroUploadBytes)

	// Per-request identity cache in front of the session store.
	identityCache := middleware.NewIdentityCache(authService, identityCacheTTL)
	identityCache.StartJanitor(ctx, identityCacheTTL)
	gate := middleware.NewGate(identityCache, options.AdminID)

	// Create HTTP handlers.
	authHandler := &http.AuthHandler{AuthService: authService, CookieSecure: true}
	catalogHandler := &http.CatalogHandler{Catalog: catalogService}
	adminProducts := &http.AdminProductHandler{Catalog: catalogService}
	contentHandler := &http.ContentHandler{Content: contentService, Media: mediaStore}

	// Build the router with middleware and routes.
	registry := prometheus.NewRegistry()
	router := http.NewRouter(gate, authHandler, catalogHandler, adminProducts,
		contentHandler, zapLogger, registry)

	server := &nethttp.Server{
		Addr:    options.Port,
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			zapLogger.Error("server shutdown", zap.Error(err))
		}
	}()

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Port))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
	zapLogger.Info("server stopped")
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"admin-console/config"
	"admin-console/database"
	"admin-console/firebase"
	"admin-console/localstore"
	"admin-console/logger"
	"admin-console/middleware"
	"admin-console/promotions"
	"admin-console/remote"
	"admin-console/routes"
	"admin-console/session"
	"admin-console/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load environment variables
	config.LoadEnv()

	cfg := config.Load()
	appLogger := logger.New(cfg.Mode)
	logger.SetGlobalLogger(appLogger)
	defer appLogger.Sync()
	log := appLogger.Logger

	// Validate critical environment variables
	if err := config.ValidateEnv(); err != nil {
		log.Fatal("Environment validation failed", zap.Error(err))
	}

	ctx := context.Background()

	// Local slot store
	slots, closeSlots, err := openSlots(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to open local store", zap.String("backend", cfg.SlotBackend), zap.Error(err))
	}

	// Firebase storage for promotion videos; optional
	var storage firebase.StorageClient
	fb, err := firebase.NewStorage(ctx, cfg.StorageBucket, os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	switch {
	case errors.Is(err, firebase.ErrStorageDisabled):
		log.Warn("Video uploads disabled: no storage bucket configured")
	case err != nil:
		log.Warn("Firebase init failed, video uploads disabled", zap.Error(err))
	default:
		storage = fb
	}

	// Remote API client and operator session
	client := remote.New(cfg.RemoteBaseURL, cfg.RemoteTimeout, remote.WithLogger(appLogger))
	sess := session.New(slots, remote.NewAuthService(client))
	client.SetTokenSource(sess)
	client.OnUnauthorized(sess.Clear)

	restoreCtx, cancelRestore := context.WithTimeout(ctx, cfg.RemoteTimeout)
	if user, err := sess.Restore(restoreCtx); err == nil {
		log.Info("Restored operator session", zap.String("user_id", user.ID))
	} else if !errors.Is(err, session.ErrNoSession) {
		log.Warn("Could not restore operator session", zap.Error(err))
	}
	cancelRestore()

	// Promotion store
	store := promotions.NewStore(slots, remote.NewMediaService(client), promotions.WithLogger(appLogger))
	loadCtx, cancelLoad := context.WithTimeout(ctx, 2*cfg.RemoteTimeout)
	if err := store.Load(loadCtx); err != nil {
		log.Warn("Initial promotion load failed", zap.Error(err))
	}
	cancelLoad()

	if cfg.Mode == logger.ProductionMode {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggingMiddleware(appLogger))
	r.Use(gin.Recovery())

	// Multipart memory covers one video upload
	r.MaxMultipartMemory = utils.MaxVideoUploadSize

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
	}))

	loginLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Setup routes
	routes.SetupRoutes(r, routes.Dependencies{
		Session:      sess,
		Promotions:   store,
		Storage:      storage,
		Remote:       client,
		LoginLimiter: loginLimiter,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Run server in a goroutine
	go func() {
		log.Info("Server starting", zap.String("port", cfg.Port), zap.String("remote", cfg.RemoteBaseURL))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	loginLimiter.Stop()

	if err := closeSlots(); err != nil {
		log.Error("Error closing local store", zap.Error(err))
	} else {
		log.Info("Local store closed")
	}

	log.Info("Server exited gracefully")
}

// openSlots opens the configured slot backend and returns its closer.
func openSlots(ctx context.Context, cfg *config.Config) (localstore.Store, func() error, error) {
	if cfg.SlotBackend == config.SlotBackendRedis {
		rdb := localstore.NewRedisClient(localstore.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		store := localstore.NewRedisStore(rdb)
		if err := store.Ping(ctx); err != nil {
			rdb.Close()
			return nil, nil, err
		}
		return store, rdb.Close, nil
	}

	dsn := cfg.DatabaseURL
	if dsn == "" {
		dsn = "admin_console.db"
	}
	db, err := database.Connect(dsn)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, nil, err
	}
	return localstore.NewGormStore(db), func() error { return database.Close(db) }, nil
}

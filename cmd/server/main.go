package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ambutrack/internal/cache"
	"ambutrack/internal/config"
	"ambutrack/internal/database"
	"ambutrack/internal/logger"
	"ambutrack/internal/routes"
	"ambutrack/internal/seed"
	"ambutrack/internal/spatial"
)

var rootCmd = &cobra.Command{
	Use:   "ambutrack",
	Short: "Ambulance and hospital proximity service",
	Long:  `Tracks ambulances and hospitals as geolocated entities and answers nearest-ambulance queries with a TTL result cache.`,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Run:   runServe,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load starter hospitals and ambulances",
	Run:   runSeed,
}

func init() {
	rootCmd.AddCommand(serveCmd, seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildStore picks the spatial store backend from config. The returned
// cleanup closes the database pool when one was opened.
func buildStore(cfg *config.Config, logr *logger.Logger) (spatial.Store, func(), error) {
	if cfg.Store == "memory" {
		logr.Warn("using in-memory spatial store; data will not survive restarts")
		return spatial.NewMemoryStore(), func() {}, nil
	}

	db, err := database.New(cfg.DatabaseURL, cfg)
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.InitSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	return spatial.NewPostgresStore(db), func() { _ = db.Close() }, nil
}

// buildCache pairs the memory store with the memory cache; otherwise Redis.
func buildCache(cfg *config.Config, logr *logger.Logger) (cache.Cache, func()) {
	if cfg.Store == "memory" {
		return cache.NewMemory(), func() {}
	}

	rc := cache.NewRedis(cfg.RedisAddr(), cfg.RedisPass, cfg.StoreTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx); err != nil {
		// Cache failures degrade to fresh computation, so an unreachable
		// Redis at boot is not fatal.
		logr.Warn("redis unreachable, proximity results will not be cached until it recovers",
			zap.String("addr", cfg.RedisAddr()), zap.Error(err))
	}
	return rc, func() { _ = rc.Close() }
}

func runServe(_ *cobra.Command, _ []string) {
	cfg := config.Load()
	logr := logger.New(cfg)
	defer logr.Sync()

	store, closeStore, err := buildStore(cfg, logr)
	if err != nil {
		logr.Fatal("failed to build spatial store", zap.Error(err))
	}
	defer closeStore()

	resultCache, closeCache := buildCache(cfg, logr)
	defer closeCache()

	r := routes.NewRouter(store, resultCache, cfg, logr)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logr.Info("server started", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logr.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logr.Fatal("server forced to shutdown", zap.Error(err))
	}

	logr.Info("server exited gracefully")
}

func runSeed(_ *cobra.Command, _ []string) {
	cfg := config.Load()
	logr := logger.New(cfg)
	defer logr.Sync()

	store, closeStore, err := buildStore(cfg, logr)
	if err != nil {
		logr.Fatal("failed to build spatial store", zap.Error(err))
	}
	defer closeStore()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := seed.Run(ctx, store, logr.Logger); err != nil {
		logr.Fatal("seed failed", zap.Error(err))
	}
}

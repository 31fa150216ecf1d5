package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/statuswatch/statuswatch/internal/cache"
	"github.com/statuswatch/statuswatch/internal/cache/leveldb"
	"github.com/statuswatch/statuswatch/internal/cache/memory"
	"github.com/statuswatch/statuswatch/internal/cache/postgres"
	"github.com/statuswatch/statuswatch/internal/checker"
	"github.com/statuswatch/statuswatch/internal/config"
	"github.com/statuswatch/statuswatch/internal/httpapi"
	"github.com/statuswatch/statuswatch/internal/logging"
	"github.com/statuswatch/statuswatch/internal/observer"
	"github.com/statuswatch/statuswatch/internal/probe"
	"github.com/statuswatch/statuswatch/internal/region"
)

func main() {
	_ = godotenv.Load()

	cfg := config.FromEnv()
	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	store, closeStore, err := buildStore(cfg, logger)
	if err != nil {
		logger.Fatal("cache_store_init", zap.Error(err))
	}
	defer closeStore()

	gateway := cache.NewGateway(store, logger, cfg.CacheFresh, cfg.CacheTTL)
	aggregator := observer.NewAggregator(logger, gateway,
		observer.NewJustMe(),
		observer.NewRightNow(),
		observer.NewPlanet(),
	)

	probes := probe.NewSet(
		probe.NewDNSProber(cfg.Resolvers),
		probe.NewHTTPProber(10*time.Second),
		probe.NewPortProber(),
	)
	local := checker.New(logger, probes, aggregator, cfg.Region)
	orchestrator := region.NewOrchestrator(logger, local, cfg.Peers, region.NewHTTPInvoker(cfg.PeerTimeout))

	api := httpapi.NewServer(logger, local, orchestrator)
	srv := &http.Server{Addr: cfg.Addr, Handler: api.Router()}

	go func() {
		logger.Info("api_listen",
			zap.String("addr", cfg.Addr),
			zap.String("region", cfg.Region),
			zap.Int("peers", len(cfg.Peers)),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("api_serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("api_shutdown")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("api_shutdown_error", zap.Error(err))
	}
}

// buildStore picks the cache backend: postgres when DATABASE_URL is set,
// leveldb when CACHE_PATH is set, otherwise in-memory.
func buildStore(cfg config.Config, logger *zap.Logger) (cache.Store, func(), error) {
	switch {
	case cfg.DatabaseURL != "":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		pg, err := postgres.New(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("cache_store", zap.String("backend", "postgres"))
		return pg, pg.Close, nil
	case cfg.CachePath != "":
		ldb, err := leveldb.Open(cfg.CachePath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("cache_store", zap.String("backend", "leveldb"), zap.String("path", cfg.CachePath))
		return ldb, func() { _ = ldb.Close() }, nil
	default:
		logger.Info("cache_store", zap.String("backend", "memory"))
		return memory.New(), func() {}, nil
	}
}

package app

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	router "msgrelay/internal/app/adapters/http"
	"msgrelay/internal/app/adapters/metrics"
	"msgrelay/internal/app/infrastructure/config"
	"msgrelay/internal/app/infrastructure/storage"
	"msgrelay/internal/app/infrastructure/token"
	"msgrelay/pkg/logger"
)

const configPath = "config.json"

func New() error {
	log := logger.New()

	manager, err := config.New(configPath)
	if err != nil {
		log.Fatal("Error loading config", err)
	}

	cfg := manager.Get()
	log.SetLogLevel(cfg.App.LogLevel)
	gin.SetMode(cfg.App.GinMode)

	prometheus.MustRegister(metrics.RequestDuration)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := storage.New(
		logger.NewPrefixedLogger(log, "sweeper"),
		token.New(cfg.Relay.TokenBytes),
		cfg.Relay.Shards,
		storage.WithSweepObserver(func(removed int) {
			metrics.MessagesSwept.Add(float64(removed))
		}),
	)
	go store.Run(ctx, cfg.Relay.SweepInterval)

	go func() {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				metrics.LiveMessages.Set(float64(store.Len()))
			}
		}
	}()

	r := router.NewRouter(log, manager, store)
	log.Info("relay started", "addr", cfg.App.ListenAddr)
	return r.Run(ctx)
}

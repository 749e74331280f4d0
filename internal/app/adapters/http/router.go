package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"msgrelay/internal/app/adapters/http/handlers"
	"msgrelay/internal/app/adapters/http/middlewares"
	"msgrelay/internal/app/infrastructure/config"
	"msgrelay/internal/app/ports"
	"msgrelay/pkg/logger"
)

type Router struct {
	router      *gin.Engine
	handlers    *handlers.Handlers
	middlewares *middlewares.Middlewares

	log     logger.Logger
	manager *config.Manager
}

func NewRouter(log logger.Logger, manager *config.Manager, relay ports.RelayPort) *Router {
	cfg := manager.Get()

	r := &Router{
		router:      gin.New(),
		handlers:    handlers.New(log, manager, relay),
		middlewares: middlewares.New(cfg.Limiter.Requests, cfg.Limiter.Per, cfg.Limiter.Burst),
		log:         log,
		manager:     manager,
	}
	r.router.Use(gin.Recovery(), r.middlewares.Observe())

	ops := r.router.Group("/")
	if cfg.App.AuthToken != "" {
		ops.Use(gin.BasicAuth(gin.Accounts{"admin": cfg.App.AuthToken}))
	}
	ops.GET("/metrics", gin.WrapH(promhttp.Handler()))
	pprof.RouteRegister(ops)

	limited := r.router.Group("/", r.middlewares.RateLimit())
	limited.POST("/send", r.handlers.SendHandler)
	limited.GET("/recv/:id", r.handlers.RecvHandler)

	r.router.GET("/", r.handlers.IndexHandler)
	r.router.GET("/recv/:id/view", r.handlers.ViewHandler)
	r.router.GET("/recv/:id/watch", r.handlers.WatchHandler)
	r.router.GET("/health", r.handlers.HealthHandler)

	return r
}

// Handler exposes the engine for tests.
func (r *Router) Handler() http.Handler {
	return r.router
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (r *Router) Run(ctx context.Context) error {
	srv := r.newServer(r.manager.Get().App.ListenAddr, r.router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	r.log.Info("shutting down http server")
	sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (r *Router) newServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}
}

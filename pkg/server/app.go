package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"AstroChart/internal/domain/repository"
	"AstroChart/internal/service/ratelimit"
	"AstroChart/internal/usecase"
	"AstroChart/pkg/config"
	xhttp "AstroChart/pkg/http"
	applogger "AstroChart/pkg/logger"
)

const janitorInterval = time.Minute

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	httpServer *xhttp.Server
	sessions   *usecase.Sessions
	limiter    *ratelimit.Limiter
	cache      repository.PayloadCache
}

// sweeper is implemented by in-process caches that expire lazily.
type sweeper interface {
	Sweep() int
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	httpServer *xhttp.Server,
	sessions *usecase.Sessions,
	limiter *ratelimit.Limiter,
	cache repository.PayloadCache,
) *App {
	return &App{
		cfg:        cfg,
		log:        l,
		httpServer: httpServer,
		sessions:   sessions,
		limiter:    limiter,
		cache:      cache,
	}
}

// HTTP exposes the configured server, mainly for tests.
func (a *App) HTTP() *xhttp.Server { return a.httpServer }

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

// RunContext serves until ctx is cancelled or the listener fails.
func (a *App) RunContext(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.sessions.Run(ctx, janitorInterval)
	go a.janitor(ctx)

	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}
	a.log.Info("astrochart started",
		applogger.String("env", a.cfg.Environment),
		applogger.String("model", a.cfg.Gemini.Model),
		applogger.Bool("cache", a.cfg.Cache.Enabled),
	)

	var runErr error
	select {
	case <-ctx.Done():
		a.log.Info("shutdown signal received")
	case err := <-a.httpServer.Errors():
		runErr = fmt.Errorf("http server: %w", err)
		a.log.Error("http server error", applogger.Error(err))
	}

	return a.shutdown(runErr)
}

// janitor drops idle rate limiter buckets and expired in-process cache entries.
func (a *App) janitor(ctx context.Context) {
	t := time.NewTicker(janitorInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			a.sweep()
		}
	}
}

func (a *App) sweep() {
	if a.limiter != nil {
		if n := a.limiter.Prune(10 * time.Minute); n > 0 {
			a.log.Debug("rate limiter pruned", applogger.Int("keys", n))
		}
	}
	if s, ok := a.cache.(sweeper); ok {
		if n := s.Sweep(); n > 0 {
			a.log.Debug("payload cache swept", applogger.Int("entries", n))
		}
	}
}

// shutdown gracefully stops all services.
func (a *App) shutdown(runErr error) error {
	a.log.Info("shutting down...")
	if err := a.httpServer.Stop(context.Background()); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
		if runErr == nil {
			runErr = err
		}
	}
	a.log.Info("shutdown complete")
	return runErr
}

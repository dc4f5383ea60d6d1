package di

import (
	"context"
	"fmt"

	"github.com/sony/gobreaker"

	"AstroChart/internal/domain/repository"
	"AstroChart/internal/handler/api"
	"AstroChart/internal/handler/web"
	"AstroChart/internal/service/breaker"
	"AstroChart/internal/service/cache"
	"AstroChart/internal/service/gemini"
	"AstroChart/internal/service/ratelimit"
	"AstroChart/internal/services/geometry"
	"AstroChart/internal/services/wheel"
	"AstroChart/internal/usecase"
	"AstroChart/pkg/config"
	xhttp "AstroChart/pkg/http"
	applogger "AstroChart/pkg/logger"
	"AstroChart/pkg/metrics"
	"AstroChart/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideGeminiClient creates the model client. A missing key is logged, not
// fatal, so the page still renders and reports the failure per request.
func ProvideGeminiClient(cfg *config.Config, l *applogger.Logger) (*gemini.Client, error) {
	if cfg.Gemini.APIKey == "" {
		l.Warn("GEMINI_API_KEY is not set; chart requests will fail")
	}
	c, err := gemini.New(context.Background(), gemini.Options{
		APIKey:  cfg.Gemini.APIKey,
		Model:   cfg.Gemini.Model,
		BaseURL: cfg.Gemini.BaseURL,
		Timeout: cfg.Gemini.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return c, nil
}

// ProvideChartModel puts the circuit breaker in front of the model client.
func ProvideChartModel(cfg *config.Config, client *gemini.Client, m repository.Metrics, l *applogger.Logger) repository.ChartModel {
	if !cfg.Breaker.Enabled {
		return client
	}
	return breaker.New(client, breaker.Config{
		Name:         "gemini",
		MaxRequests:  cfg.Breaker.MaxRequests,
		Interval:     cfg.Breaker.Interval,
		Timeout:      cfg.Breaker.Timeout,
		MinRequests:  cfg.Breaker.MinRequests,
		FailureRatio: cfg.Breaker.FailureRatio,
	}, m, l)
}

// ProvidePayloadCache selects the cache backend. The cleanup closes Redis.
func ProvidePayloadCache(cfg *config.Config, l *applogger.Logger) (repository.PayloadCache, func(), error) {
	if !cfg.Cache.Enabled {
		return cache.Nop{}, func() {}, nil
	}
	switch cfg.Cache.Backend {
	case "redis", "layered":
		rc := cache.NewRedisCache(cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			Prefix:   cfg.Cache.Redis.Prefix,
		})
		cleanup := func() {
			if err := rc.Close(); err != nil {
				l.Warn("redis close error", applogger.Error(err))
			}
		}
		l.Info("payload cache: "+cfg.Cache.Backend, applogger.String("addr", cfg.Cache.Redis.Addr))
		if cfg.Cache.Backend == "layered" {
			return cache.NewLayeredCache(rc, cfg.Cache.L1TTL), cleanup, nil
		}
		return rc, cleanup, nil
	default:
		l.Info("payload cache: memory")
		return cache.NewTTLCache(), func() {}, nil
	}
}

// ProvideChartGenerator creates the chart use case.
func ProvideChartGenerator(
	cfg *config.Config,
	model repository.ChartModel,
	pc repository.PayloadCache,
	m repository.Metrics,
	l *applogger.Logger,
) *usecase.ChartGenerator {
	return usecase.NewChartGenerator(model, pc, cfg.Cache.TTL, m, l)
}

func ProvideSessions(cfg *config.Config) *usecase.Sessions {
	return usecase.NewSessions(cfg.Session.IdleTTL)
}

// ProvideLayout maps the chart section of the config onto the wheel geometry.
func ProvideLayout(cfg *config.Config) geometry.Layout {
	return geometry.Layout{
		Size:         cfg.Chart.Size,
		OuterRadius:  cfg.Chart.OuterRadius,
		ZodiacRadius: cfg.Chart.ZodiacRadius,
		InnerRadius:  cfg.Chart.InnerRadius,
	}
}

func ProvideWheel(layout geometry.Layout) *wheel.Renderer {
	return wheel.New(layout)
}

// ProvideLimiter returns nil when rate limiting is disabled.
func ProvideLimiter(cfg *config.Config) *ratelimit.Limiter {
	if !cfg.RateLimit.Enabled {
		return nil
	}
	return ratelimit.New(cfg.RateLimit.Burst, cfg.RateLimit.RefillPerSec)
}

func ProvideWebHandler(
	l *applogger.Logger,
	gen *usecase.ChartGenerator,
	sessions *usecase.Sessions,
	renderer *wheel.Renderer,
	limiter *ratelimit.Limiter,
) *web.Handler {
	return web.NewHandler(l, gen, sessions, renderer, limiter)
}

func ProvideAPIHandler(
	l *applogger.Logger,
	gen *usecase.ChartGenerator,
	renderer *wheel.Renderer,
	limiter *ratelimit.Limiter,
) *api.ChartEchoHandler {
	return api.NewChartEchoHandler(l, gen, renderer, limiter)
}

// ProvideHTTPServer assembles the echo server with both handlers.
func ProvideHTTPServer(
	cfg *config.Config,
	l *applogger.Logger,
	webH *web.Handler,
	apiH *api.ChartEchoHandler,
	pc repository.PayloadCache,
	model repository.ChartModel,
) *xhttp.Server {
	opts := []xhttp.ServerOption{
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithSlowThreshold(cfg.Server.SlowThreshold),
		xhttp.WithLogger(l),
		xhttp.WithRenderer(web.NewRenderer()),
	}
	if !cfg.Metrics.Enabled {
		opts = append(opts, xhttp.WithMetricsPath(""))
	} else {
		opts = append(opts, xhttp.WithMetricsPath(cfg.Metrics.Path))
	}
	if p, ok := pc.(cache.Pinger); ok {
		opts = append(opts, xhttp.WithHealthCheck("cache", p.Ping))
	}
	if b, ok := model.(*breaker.Model); ok {
		opts = append(opts, xhttp.WithHealthCheck("model", func(context.Context) error {
			if b.State() == gobreaker.StateOpen {
				return breaker.ErrOpen
			}
			return nil
		}))
	}
	return xhttp.NewServer([]xhttp.Handler{webH, apiH}, opts...)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	srv *xhttp.Server,
	sessions *usecase.Sessions,
	limiter *ratelimit.Limiter,
	pc repository.PayloadCache,
) *server.App {
	return server.New(cfg, l, srv, sessions, limiter, pc)
}

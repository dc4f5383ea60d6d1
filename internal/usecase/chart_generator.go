package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"AstroChart/internal/domain/models"
	drepo "AstroChart/internal/domain/repository"
	"AstroChart/internal/service/cache"
	"AstroChart/internal/services/payload"
	applogger "AstroChart/pkg/logger"
)

var (
	// ErrRequestFailed means the model could not be reached or answered with an error.
	ErrRequestFailed = errors.New("chart request failed")
	// ErrInvalidPayload means the model answered but the payload failed validation.
	ErrInvalidPayload = errors.New("chart payload invalid")
)

// FailureMessage is the one message users see for any failed calculation.
const FailureMessage = "เกิดข้อผิดพลาดในการคำนวณ กรุณาลองใหม่อีกครั้ง หรือตรวจสอบ API Key"

const (
	SourceModel = "model"
	SourceCache = "cache"
)

// ChartGenerator turns one birth record into a validated ChartSnapshot.
type ChartGenerator struct {
	model    drepo.ChartModel
	cache    drepo.PayloadCache
	cacheTTL time.Duration
	metrics  drepo.Metrics
	log      *applogger.Logger
}

// NewChartGenerator creates a generator. cache may be nil to disable caching.
func NewChartGenerator(
	model drepo.ChartModel,
	pc drepo.PayloadCache,
	cacheTTL time.Duration,
	metrics drepo.Metrics,
	log *applogger.Logger,
) *ChartGenerator {
	if pc == nil {
		pc = cache.Nop{}
	}
	if log == nil {
		log = applogger.Nop()
	}
	return &ChartGenerator{model: model, cache: pc, cacheTTL: cacheTTL, metrics: metrics, log: log}
}

// Generate calls the model once, with no retry, and validates its answer.
// A cached payload for the same input is re-validated and used instead.
func (g *ChartGenerator) Generate(ctx context.Context, b models.BirthData) (*models.ChartSnapshot, error) {
	b.Normalize()
	key := cache.Key(g.model.Name(), b)
	log := applogger.FromContext(ctx, g.log)

	if raw, ok, err := g.cache.GetBytes(ctx, key); err != nil {
		log.Warn("payload cache read failed", applogger.Error(err))
		g.metrics.RecordError("cache_read")
	} else if ok {
		if snap, perr := payload.Parse(raw); perr == nil {
			g.metrics.RecordChart(SourceCache)
			return snap, nil
		}
		log.Warn("discarding unreadable cached payload", applogger.String("key", key))
	}

	start := time.Now()
	raw, err := g.model.Generate(ctx, b)
	g.metrics.RecordLatency("generate", time.Since(start).Seconds())
	if err != nil {
		g.metrics.RecordError("request_failed")
		log.Error("chart model call failed",
			applogger.String("model", g.model.Name()),
			applogger.Duration("duration_ms", time.Since(start)),
			applogger.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}

	snap, err := payload.Parse(raw)
	if err != nil {
		g.metrics.RecordError("invalid_payload")
		log.Error("chart payload rejected",
			applogger.String("model", g.model.Name()),
			applogger.Int("bytes", len(raw)),
			applogger.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	if err := g.cache.SetBytes(ctx, key, raw, g.cacheTTL); err != nil {
		log.Warn("payload cache write failed", applogger.Error(err))
		g.metrics.RecordError("cache_write")
	}
	g.metrics.RecordChart(SourceModel)
	log.Info("chart generated",
		applogger.String("model", g.model.Name()),
		applogger.Int("planets", snap.PlanetCount()),
		applogger.Duration("duration_ms", time.Since(start)),
	)
	return snap, nil
}

// FromPayload validates a payload supplied directly, bypassing the model.
func (g *ChartGenerator) FromPayload(raw []byte) (*models.ChartSnapshot, error) {
	snap, err := payload.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	return snap, nil
}

// IsChartFailure reports whether err should be shown as FailureMessage.
func IsChartFailure(err error) bool {
	return errors.Is(err, ErrRequestFailed) || errors.Is(err, ErrInvalidPayload)
}

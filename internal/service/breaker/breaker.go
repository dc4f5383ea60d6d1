// Package breaker guards the chart model with a circuit breaker so a failing
// upstream is not hammered by every submission.
package breaker

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"

	"AstroChart/internal/domain/models"
	drepo "AstroChart/internal/domain/repository"
	applogger "AstroChart/pkg/logger"
)

// ErrOpen is returned while the breaker rejects calls.
var ErrOpen = errors.New("chart model temporarily unavailable")

type Config struct {
	Name         string
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	MinRequests  uint32
	FailureRatio float64
}

// Model wraps a ChartModel with a gobreaker.CircuitBreaker.
type Model struct {
	next drepo.ChartModel
	cb   *gobreaker.CircuitBreaker
}

var _ drepo.ChartModel = (*Model)(nil)

func New(next drepo.ChartModel, cfg Config, m drepo.Metrics, l *applogger.Logger) *Model {
	if l == nil {
		l = applogger.Nop()
	}
	if cfg.Name == "" {
		cfg.Name = next.Name()
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= cfg.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			l.Warn("circuit breaker state changed",
				applogger.String("breaker", name),
				applogger.String("from", from.String()),
				applogger.String("to", to.String()),
			)
			if m != nil {
				m.RecordBreakerState(name, int(to))
			}
		},
		// a client hanging up says nothing about the upstream
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})
	if m != nil {
		m.RecordBreakerState(cfg.Name, int(gobreaker.StateClosed))
	}
	return &Model{next: next, cb: cb}
}

func (b *Model) Name() string { return b.next.Name() }

// State exposes the current breaker state for health reporting.
func (b *Model) State() gobreaker.State { return b.cb.State() }

func (b *Model) Generate(ctx context.Context, in models.BirthData) ([]byte, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Generate(ctx, in)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, errors.Join(ErrOpen, err)
		}
		return nil, err
	}
	return out.([]byte), nil
}

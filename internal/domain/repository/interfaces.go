package repository

import (
	"context"
	"time"

	"AstroChart/internal/domain/models"
)

// ChartModel is the hosted generative model that imitates the astrological
// calculation. Generate returns the raw JSON text it produced.
type ChartModel interface {
	Generate(ctx context.Context, b models.BirthData) ([]byte, error)
	Name() string
}

// PayloadCache keeps raw, already validated model payloads.
type PayloadCache interface {
	GetBytes(ctx context.Context, key string) ([]byte, bool, error)
	SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type Metrics interface {
	RecordChart(source string)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
	RecordBreakerState(name string, state int)
}

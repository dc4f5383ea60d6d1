// Package cache stores raw model payloads so an identical birth record does
// not cost a second model call.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"AstroChart/internal/domain/models"
	drepo "AstroChart/internal/domain/repository"
)

// BytesCache stores raw bytes with a TTL.
type BytesCache = drepo.PayloadCache

// Pinger is implemented by backends with a remote connection.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Key identifies a payload by model name and normalised birth data.
func Key(model string, b models.BirthData) string {
	b.Normalize()
	h := sha256.New()
	for _, part := range []string{model, b.Name, b.Date, b.Time, b.Province} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return "chart:" + hex.EncodeToString(h.Sum(nil))
}

// Nop never stores anything. It is used when caching is disabled.
type Nop struct{}

func (Nop) GetBytes(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (Nop) SetBytes(context.Context, string, []byte, time.Duration) error { return nil }

func prefixed(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return strings.TrimSuffix(prefix, ":") + ":" + key
}

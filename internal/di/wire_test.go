package di

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AstroChart/internal/service/cache"
	"AstroChart/pkg/config"
	applogger "AstroChart/pkg/logger"
)

func TestInitializeAppServesForm(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Level = "error"

	app, cleanup, err := InitializeApp(cfg)
	require.NoError(t, err)
	defer cleanup()

	e := app.HTTP().Echo()

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="birth-form"`)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProvidePayloadCacheBackends(t *testing.T) {
	cfg := config.Default()

	pc, cleanup, err := ProvidePayloadCache(cfg, applogger.Nop())
	require.NoError(t, err)
	cleanup()
	assert.IsType(t, cache.Nop{}, pc)

	cfg.Cache.Enabled = true
	pc, cleanup, err = ProvidePayloadCache(cfg, applogger.Nop())
	require.NoError(t, err)
	cleanup()
	assert.IsType(t, &cache.TTLCache{}, pc)

	cfg.Cache.Backend = "layered"
	pc, cleanup, err = ProvidePayloadCache(cfg, applogger.Nop())
	require.NoError(t, err)
	cleanup()
	assert.IsType(t, &cache.LayeredCache{}, pc)
}

func TestProvideLimiterDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.RateLimit.Enabled = false
	assert.Nil(t, ProvideLimiter(cfg))
}

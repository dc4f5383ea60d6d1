//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"AstroChart/internal/services/wheel"
	"AstroChart/pkg/config"
	"AstroChart/pkg/server"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, func(), error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Model boundary
		ProvideGeminiClient,
		ProvideChartModel,
		ProvidePayloadCache,

		// Use cases
		ProvideChartGenerator,
		ProvideSessions,
		ProvideLimiter,

		// Rendering
		ProvideLayout,
		ProvideWheel,

		// HTTP
		ProvideWebHandler,
		ProvideAPIHandler,
		ProvideHTTPServer,

		// Application server
		ProvideApp,
	)
	return nil, nil, nil
}

// InitializeRenderer builds only the wheel renderer for offline use.
func InitializeRenderer(cfg *config.Config) *wheel.Renderer {
	wire.Build(ProvideLayout, ProvideWheel)
	return nil
}

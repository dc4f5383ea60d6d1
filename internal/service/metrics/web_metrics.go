package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "astrochart",
			Subsystem: "web",
			Name:      "sessions_active",
			Help:      "Browser sessions currently held in memory",
		},
	)

	Rejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "astrochart",
			Subsystem: "web",
			Name:      "rejections_total",
			Help:      "Submissions refused before reaching the model, by reason",
		},
		[]string{"reason"},
	)
)

// Register adds the web collectors to the default registry once.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(ActiveSessions, Rejections)
	})
}

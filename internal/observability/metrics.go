package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics - счётчики, гистограммы и gauge'и конвейера анализа.
type Metrics struct {
	CyclesRun     prometheus.Counter
	CycleRunning  prometheus.Gauge
	CycleDuration prometheus.Histogram

	// Метрики загрузки тайлов.
	TilesDownloaded prometheus.Counter
	TilesFailed     prometheus.Counter
	TileCache       *prometheus.CounterVec // labels: result={hit,miss}

	// Метрики классификации.
	Outcomes         *prometheus.CounterVec // labels: status={completed,night,no_data,thick_cloud,insufficient_pixels,error,download_failed}
	AnalysisDuration prometheus.Histogram
}

// NewMetrics создает метрики конвейера и регистрирует их в
// реестре Prometheus по умолчанию.
func NewMetrics() *Metrics {
	m := &Metrics{
		CyclesRun: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "oceancolor",
			Name:      "cycles_run_total",
			Help:      "Total scheduler cycles executed.",
		}),
		CycleRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "oceancolor",
			Name:      "cycle_running",
			Help:      "1 while a cycle is in progress, 0 otherwise.",
		}),
		CycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "oceancolor",
			Name:      "cycle_duration_seconds",
			Help:      "Duration of a complete list-filter-analyze cycle.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		}),
		TilesDownloaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "oceancolor",
			Name:      "tiles_downloaded_total",
			Help:      "Total tiles fetched from the imagery server.",
		}),
		TilesFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "oceancolor",
			Name:      "tiles_failed_total",
			Help:      "Total tile fetches that failed and were replaced with black tiles.",
		}),
		TileCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "oceancolor",
			Name:      "tile_cache_total",
			Help:      "Tile cache lookups by result.",
		}, []string{"result"}),
		Outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "oceancolor",
			Name:      "analysis_outcomes_total",
			Help:      "Analysis outcomes by status.",
		}, []string{"status"}),
		AnalysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "oceancolor",
			Name:      "analysis_duration_seconds",
			Help:      "Duration of a single timestamp analysis.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
	}

	prometheus.MustRegister(
		m.CyclesRun,
		m.CycleRunning,
		m.CycleDuration,
		m.TilesDownloaded,
		m.TilesFailed,
		m.TileCache,
		m.Outcomes,
		m.AnalysisDuration,
	)

	return m
}

// NewMetricsForTesting создает метрики без регистрации в общем реестре:
// повторная регистрация из параллельных тестов паникует.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		CyclesRun:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "oceancolor", Name: "cycles_run_total"}),
		CycleRunning:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "oceancolor", Name: "cycle_running"}),
		CycleDuration:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "oceancolor", Name: "cycle_duration_seconds"}),
		TilesDownloaded:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "oceancolor", Name: "tiles_downloaded_total"}),
		TilesFailed:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "oceancolor", Name: "tiles_failed_total"}),
		TileCache:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "oceancolor", Name: "tile_cache_total"}, []string{"result"}),
		Outcomes:         prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "oceancolor", Name: "analysis_outcomes_total"}, []string{"status"}),
		AnalysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "oceancolor", Name: "analysis_duration_seconds"}),
	}
}

package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// hazard prediction service.
type Metrics struct {
	PredictionsTotal   prometheus.Counter
	FindingsTotal      *prometheus.CounterVec // labels: family, severity
	RangeCorrections   prometheus.Counter
	PredictionDuration prometheus.Histogram

	// Location resolution metrics.
	LocationResolutions *prometheus.CounterVec // labels: method={canonical,alias,fuzzy,unmodified}

	// Learning metrics.
	LearningUpdates  prometheus.Counter
	LearningSkips    prometheus.Counter
	CoefficientValue *prometheus.GaugeVec // labels: family
	RefresherRunning prometheus.Gauge

	// External collaborator metrics.
	WeatherFetchDuration prometheus.Histogram
	AlertsPublished      prometheus.Counter
	AlertErrors          prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.PredictionsTotal,
		m.FindingsTotal,
		m.RangeCorrections,
		m.PredictionDuration,
		m.LocationResolutions,
		m.LearningUpdates,
		m.LearningSkips,
		m.CoefficientValue,
		m.RefresherRunning,
		m.WeatherFetchDuration,
		m.AlertsPublished,
		m.AlertErrors,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		PredictionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rescuex",
			Name:      "predictions_total",
			Help:      "Total prediction requests evaluated by the engine.",
		}),
		FindingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rescuex",
			Name:      "findings_total",
			Help:      "Hazard findings emitted, by family and severity.",
		}, []string{"family", "severity"}),
		RangeCorrections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rescuex",
			Name:      "range_corrections_total",
			Help:      "Observation values clamped into their valid range.",
		}),
		PredictionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "rescuex",
			Name:      "prediction_duration_seconds",
			Help:      "Duration of a complete normalize-validate-score-tier pass.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
		LocationResolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rescuex",
			Name:      "location_resolutions_total",
			Help:      "Location name resolutions by method.",
		}, []string{"method"}),
		LearningUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rescuex",
			Name:      "learning_updates_total",
			Help:      "Successful coefficient recomputations from feedback history.",
		}),
		LearningSkips: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rescuex",
			Name:      "learning_skips_total",
			Help:      "Coefficient updates skipped for insufficient feedback.",
		}),
		CoefficientValue: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "rescuex",
			Name:      "learning_coefficient",
			Help:      "Current learning coefficient per hazard family.",
		}, []string{"family"}),
		RefresherRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "rescuex",
			Name:      "learning_refresher_running",
			Help:      "1 when the learning refresher loop is active.",
		}),
		WeatherFetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "rescuex",
			Name:      "weather_fetch_duration_seconds",
			Help:      "Weather provider request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		AlertsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rescuex",
			Name:      "alerts_published_total",
			Help:      "Severe and extreme findings published to the alert topic.",
		}),
		AlertErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rescuex",
			Name:      "alert_errors_total",
			Help:      "Alert publish failures.",
		}),
	}
}

package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the prediction service.
type Metrics struct {
	Predictions        *prometheus.CounterVec // labels: status={success,miss,error}
	PredictionDuration prometheus.Histogram
	ArtifactsLoaded    prometheus.Gauge
	HistoryWrites      *prometheus.CounterVec // labels: outcome={ok,error}
	HistoryPruned      prometheus.Counter
}

func newMetrics() *Metrics {
	return &Metrics{
		Predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crop_recommender",
			Name:      "predictions_total",
			Help:      "Prediction requests by outcome status.",
		}, []string{"status"}),
		PredictionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "crop_recommender",
			Name:      "prediction_duration_seconds",
			Help:      "Time spent parsing, scaling and classifying one request.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),
		ArtifactsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "crop_recommender",
			Name:      "artifacts_loaded",
			Help:      "1 once the scalers and model are loaded.",
		}),
		HistoryWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crop_recommender",
			Name:      "history_writes_total",
			Help:      "Prediction history writes by outcome.",
		}, []string{"outcome"}),
		HistoryPruned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "crop_recommender",
			Name:      "history_records_pruned_total",
			Help:      "History records removed by the retention worker.",
		}),
	}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.Predictions,
		m.PredictionDuration,
		m.ArtifactsLoaded,
		m.HistoryWrites,
		m.HistoryPruned,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, so tests can
// build as many as they need.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

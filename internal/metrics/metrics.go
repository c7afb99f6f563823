// Package metrics exposes viewer activity as Prometheus metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Status label values.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

var (
	// Asset loading
	LoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockbars_loads_total",
			Help: "Model and dataset load attempts",
		},
		[]string{"kind", "status"},
	)

	LoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stockbars_load_duration_seconds",
			Help:    "Time spent fetching and parsing an asset",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"kind"},
	)

	ModelVertices = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stockbars_model_vertices",
			Help: "Vertex count of the loaded bar model",
		},
	)

	DataPoints = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stockbars_data_points",
			Help: "Number of data points currently published",
		},
	)

	// Rendering
	FramesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stockbars_frames_total",
			Help: "Frames rendered",
		},
	)

	BarsDrawn = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stockbars_bars_drawn",
			Help: "Bars drawn in the last frame",
		},
	)

	PointsSkipped = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stockbars_points_skipped",
			Help: "Data points skipped in the last frame because their value was invalid",
		},
	)

	RefreshesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stockbars_refreshes_total",
			Help: "Simulated data refreshes",
		},
	)
)

// Load kinds.
const (
	KindModel   = "model"
	KindDataset = "dataset"
)

// Recorder records viewer events.
type Recorder struct{}

// NewRecorder creates a recorder backed by the package metrics.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// RecordLoad records one asset load of the given kind.
func (r *Recorder) RecordLoad(kind string, err error, duration time.Duration) {
	status := StatusOK
	if err != nil {
		status = StatusError
	}
	LoadsTotal.WithLabelValues(kind, status).Inc()
	LoadDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordModel records the size of a freshly published model.
func (r *Recorder) RecordModel(vertices int) {
	ModelVertices.Set(float64(vertices))
}

// RecordData records the size of a freshly published data set.
func (r *Recorder) RecordData(points int) {
	DataPoints.Set(float64(points))
}

// RecordFrame records one rendered frame.
func (r *Recorder) RecordFrame(bars, skipped int) {
	FramesTotal.Inc()
	BarsDrawn.Set(float64(bars))
	PointsSkipped.Set(float64(skipped))
}

// RecordRefresh records a data refresh.
func (r *Recorder) RecordRefresh() {
	RefreshesTotal.Inc()
}

// Timer measures elapsed time.
type Timer struct {
	start time.Time
}

// NewTimer starts a timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Duration returns the time since the timer started.
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

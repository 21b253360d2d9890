package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Result labels for OperationsTotal.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Recorder holds the counters for one fid invocation on a private registry,
// so the textfile only ever contains fid's own series.
type Recorder struct {
	registry *prometheus.Registry

	// OperationsTotal counts CLI operations by name and result.
	OperationsTotal *prometheus.CounterVec

	// BytesHashedTotal counts bytes read to compute content hashes.
	BytesHashedTotal prometheus.Counter

	// RemovedTotal counts removed targets by type (file, directory).
	RemovedTotal *prometheus.CounterVec

	// LastRunTimestamp records the Unix time the invocation finished.
	LastRunTimestamp prometheus.Gauge
}

// NewRecorder creates and registers all fid metrics.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		OperationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fid_operations_total",
			Help: "Total fid operations by operation and result.",
		}, []string{"operation", "result"}),
		BytesHashedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fid_bytes_hashed_total",
			Help: "Total bytes read to compute content hashes.",
		}),
		RemovedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fid_removed_total",
			Help: "Total paths removed by target type.",
		}, []string{"type"}),
		LastRunTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fid_last_run_timestamp_seconds",
			Help: "Unix time of the last fid invocation.",
		}),
	}

	r.registry.MustRegister(r.OperationsTotal, r.BytesHashedTotal, r.RemovedTotal, r.LastRunTimestamp)
	return r
}

// Operation records one operation outcome.
func (r *Recorder) Operation(name string, err error) {
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	r.OperationsTotal.WithLabelValues(name, result).Inc()
}

// Hashed records size bytes read for hashing.
func (r *Recorder) Hashed(size int64) {
	if size > 0 {
		r.BytesHashedTotal.Add(float64(size))
	}
}

// Removed records the removal of a target of the given type.
func (r *Recorder) Removed(targetType string) {
	r.RemovedTotal.WithLabelValues(targetType).Inc()
}

// Registry exposes the private registry, e.g. for tests or an HTTP handler.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile stamps LastRunTimestamp with now and writes all metrics in
// the text exposition format for the node_exporter textfile collector.
// The file is replaced atomically.
func (r *Recorder) WriteTextfile(path string, now time.Time) error {
	r.LastRunTimestamp.Set(float64(now.Unix()))
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}

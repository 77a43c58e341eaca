package telemetry

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// PacketsCaptured counts total packets received by the sniffer
	PacketsCaptured = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wmap",
			Name:      "packets_captured_total",
			Help:      "Total number of packets captured by the sniffer",
		},
		[]string{"interface"},
	)

	// PacketsProcessed counts packets successfully processed by the application
	PacketsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wmap",
			Name:      "packets_processed_total",
			Help:      "Total number of packets processed by the application",
		},
		[]string{"interface"},
	)

	// PacketsDropped counts packets dropped due to buffer full or errors
	PacketsDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wmap",
			Name:      "packets_dropped_total",
			Help:      "Total number of packets dropped",
		},
		[]string{"interface", "reason"},
	)

	// InjectionsTotal counts total injection attempts
	InjectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wmap",
			Name:      "injection_total",
			Help:      "Total number of packet injection attempts",
		},
		[]string{"interface", "type"},
	)

	// InjectionErrors counts failed injection attempts
	InjectionErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wmap",
			Name:      "injection_errors_total",
			Help:      "Total number of failed packet injection attempts",
		},
		[]string{"interface", "type"},
	)

	// CandidatesTried counts passphrase candidates verified against a
	// handshake record, labeled by job id.
	CandidatesTried = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wpacrack",
			Name:      "candidates_tried_total",
			Help:      "Total number of passphrase candidates verified",
		},
		[]string{"job"},
	)

	// ActiveWorkers reports the number of worker goroutines currently
	// running a crack job.
	ActiveWorkers = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "wpacrack",
			Name:      "active_workers",
			Help:      "Number of worker goroutines currently verifying candidates",
		},
		[]string{"job"},
	)

	// MatchesFound counts completed crack jobs that recovered a
	// passphrase.
	MatchesFound = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wpacrack",
			Name:      "matches_found_total",
			Help:      "Total number of crack jobs that recovered a passphrase",
		},
		[]string{"job"},
	)

	// Ensure metrics are only registered once
	once sync.Once
)

// InitMetrics registers all metrics with the global Prometheus registry
// This function is idempotent and can be called multiple times safely
func InitMetrics() {
	once.Do(func() {
		// Register metrics, ignoring errors if already registered
		// This prevents panics when metrics are already in the registry
		prometheus.DefaultRegisterer.Register(PacketsCaptured)
		prometheus.DefaultRegisterer.Register(PacketsProcessed)
		prometheus.DefaultRegisterer.Register(PacketsDropped)
		prometheus.DefaultRegisterer.Register(InjectionsTotal)
		prometheus.DefaultRegisterer.Register(InjectionErrors)
		prometheus.DefaultRegisterer.Register(CandidatesTried)
		prometheus.DefaultRegisterer.Register(ActiveWorkers)
		prometheus.DefaultRegisterer.Register(MatchesFound)
	})
}

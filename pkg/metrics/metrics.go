// Package metrics holds the Prometheus collectors shared by both solvers.
// Each run gets its own registry; nothing is registered globally.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "aoc"

// Metrics bundles the collectors for one run. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	Registry *prometheus.Registry

	SearchExpanded   *prometheus.CounterVec
	SearchGenerated  *prometheus.CounterVec
	SearchDuplicates *prometheus.CounterVec
	SearchPruned     *prometheus.CounterVec
	SearchFrontier   *prometheus.GaugeVec
	SearchMoves      prometheus.Gauge

	VMInstructions *prometheus.CounterVec

	RunSeconds *prometheus.HistogramVec
}

// New creates a Metrics with a private registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		SearchExpanded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rtg",
			Name:      "states_expanded_total",
			Help:      "Configurations popped from the frontier and expanded, by search direction.",
		}, []string{"direction"}),
		SearchGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rtg",
			Name:      "states_generated_total",
			Help:      "Valid successor configurations produced, by search direction.",
		}, []string{"direction"}),
		SearchDuplicates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rtg",
			Name:      "states_duplicate_total",
			Help:      "Successors discarded because their canonical key was already closed.",
		}, []string{"direction"}),
		SearchPruned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rtg",
			Name:      "states_pruned_total",
			Help:      "Successors discarded by move pruning.",
		}, []string{"direction"}),
		SearchFrontier: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "rtg",
			Name:      "frontier_max",
			Help:      "Largest frontier size seen, by search direction.",
		}, []string{"direction"}),
		SearchMoves: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "rtg",
			Name:      "moves",
			Help:      "Minimum number of elevator moves found.",
		}),
		VMInstructions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "assembunny",
			Name:      "instructions_total",
			Help:      "Instructions executed, by opcode.",
		}, []string{"opcode"}),
		RunSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_seconds",
			Help:      "Wall time spent solving, by puzzle.",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"puzzle"}),
	}
	m.Registry.MustRegister(
		m.SearchExpanded,
		m.SearchGenerated,
		m.SearchDuplicates,
		m.SearchPruned,
		m.SearchFrontier,
		m.SearchMoves,
		m.VMInstructions,
		m.RunSeconds,
	)
	return m
}

// SearchStats is the per-direction summary the search reports.
type SearchStats struct {
	Direction   string
	Expanded    int
	Generated   int
	Duplicates  int
	Pruned      int
	MaxFrontier int
}

// ObserveSearch records one search worker's totals.
func (m *Metrics) ObserveSearch(s SearchStats) {
	if m == nil {
		return
	}
	m.SearchExpanded.WithLabelValues(s.Direction).Add(float64(s.Expanded))
	m.SearchGenerated.WithLabelValues(s.Direction).Add(float64(s.Generated))
	m.SearchDuplicates.WithLabelValues(s.Direction).Add(float64(s.Duplicates))
	m.SearchPruned.WithLabelValues(s.Direction).Add(float64(s.Pruned))
	m.SearchFrontier.WithLabelValues(s.Direction).Set(float64(s.MaxFrontier))
}

// ObserveMoves records the search answer.
func (m *Metrics) ObserveMoves(n int) {
	if m == nil {
		return
	}
	m.SearchMoves.Set(float64(n))
}

// ObserveInstructions adds executed instruction counts for one opcode.
func (m *Metrics) ObserveInstructions(opcode string, n uint64) {
	if m == nil {
		return
	}
	m.VMInstructions.WithLabelValues(opcode).Add(float64(n))
}

// ObserveRun records how long a puzzle took.
func (m *Metrics) ObserveRun(puzzle string, seconds float64) {
	if m == nil {
		return
	}
	m.RunSeconds.WithLabelValues(puzzle).Observe(seconds)
}

// WriteFile writes the registry in the Prometheus text format, atomically
// replacing path.
func (m *Metrics) WriteFile(path string) error {
	if m == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.Registry)
}

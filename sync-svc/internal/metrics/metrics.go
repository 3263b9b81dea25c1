package metrics

import (
	"net/http"

	"overcooked-menusync/sync-svc/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Cycle outcomes recorded by the propagation engine.
const (
	OutcomeNoop      = "noop"
	OutcomeUnchanged = "unchanged"
	OutcomeCommitted = "committed"
	OutcomeRejected  = "rejected"
)

// Collector owns the service's Prometheus collectors on a private registry.
// A nil *Collector is valid and records nothing.
type Collector struct {
	registry *prometheus.Registry

	propagationCycles *prometheus.CounterVec
	costItemsUpdated  *prometheus.CounterVec
	posWrites         *prometheus.CounterVec
	orphansRemoved    *prometheus.CounterVec
	emergencyResets   *prometheus.CounterVec
	activeEngines     prometheus.Gauge
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		propagationCycles: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "menusync_propagation_cycles_total",
				Help: "Cost propagation cycles by outcome",
			},
			[]string{"scope", "outcome"},
		),
		costItemsUpdated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "menusync_cost_items_updated_total",
				Help: "Menu items whose cost was rewritten by propagation",
			},
			[]string{"scope"},
		),
		posWrites: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "menusync_pos_writes_total",
				Help: "POS catalog writes by operation and result",
			},
			[]string{"scope", "op", "result"},
		),
		orphansRemoved: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "menusync_orphans_removed_total",
				Help: "Orphaned POS items deleted by cleanup",
			},
			[]string{"scope"},
		),
		emergencyResets: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "menusync_emergency_resets_total",
				Help: "Emergency resets executed",
			},
			[]string{"scope"},
		),
		activeEngines: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "menusync_active_engines",
			Help: "Cost propagation engines currently active",
		}),
	}

	c.registry.MustRegister(
		c.propagationCycles,
		c.costItemsUpdated,
		c.posWrites,
		c.orphansRemoved,
		c.emergencyResets,
		c.activeEngines,
	)
	return c
}

func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

func (c *Collector) Handler() http.Handler {
	if c == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func (c *Collector) PropagationCycle(scope domain.Scope, outcome string) {
	if c == nil {
		return
	}
	c.propagationCycles.WithLabelValues(scope.String(), outcome).Inc()
}

func (c *Collector) CostItemsUpdated(scope domain.Scope, n int) {
	if c == nil || n <= 0 {
		return
	}
	c.costItemsUpdated.WithLabelValues(scope.String()).Add(float64(n))
}

func (c *Collector) POSWrite(scope domain.Scope, op string, err error) {
	if c == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.posWrites.WithLabelValues(scope.String(), op, result).Inc()
}

func (c *Collector) OrphansRemoved(scope domain.Scope, n int) {
	if c == nil || n <= 0 {
		return
	}
	c.orphansRemoved.WithLabelValues(scope.String()).Add(float64(n))
}

func (c *Collector) EmergencyReset(scope domain.Scope) {
	if c == nil {
		return
	}
	c.emergencyResets.WithLabelValues(scope.String()).Inc()
}

func (c *Collector) EngineStarted() {
	if c == nil {
		return
	}
	c.activeEngines.Inc()
}

func (c *Collector) EngineStopped() {
	if c == nil {
		return
	}
	c.activeEngines.Dec()
}

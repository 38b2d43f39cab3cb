package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/inventario-dashboard/internal/application/inventory"
	"github.com/jhoicas/inventario-dashboard/internal/domain/entity"
)

var _ inventory.MovementObserver = (*MovementMetrics)(nil)

// MovementMetrics contadores Prometheus de movimientos registrados y rechazados.
type MovementMetrics struct {
	registry *prometheus.Registry
	recorded *prometheus.CounterVec
	rejected *prometheus.CounterVec
}

// NewMovementMetrics registra los contadores en un registro propio (más los collectors de Go y proceso).
func NewMovementMetrics() *MovementMetrics {
	reg := prometheus.NewRegistry()
	m := &MovementMetrics{
		registry: reg,
		recorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "inventory",
			Name:      "stock_movements_recorded_total",
			Help:      "Movimientos de stock registrados, por tipo.",
		}, []string{"type"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "inventory",
			Name:      "stock_movements_rejected_total",
			Help:      "Movimientos de stock rechazados, por motivo.",
		}, []string{"reason"}),
	}
	reg.MustRegister(
		m.recorded,
		m.rejected,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	for _, t := range entity.MovementTypes {
		m.recorded.WithLabelValues(string(t))
	}
	return m
}

func (m *MovementMetrics) MovementRecorded(t entity.MovementType) {
	m.recorded.WithLabelValues(string(t)).Inc()
}

func (m *MovementMetrics) MovementRejected(reason string) {
	m.rejected.WithLabelValues(reason).Inc()
}

// Handler expone el registro en formato de scraping.
func (m *MovementMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry para tests y para registrar collectors adicionales.
func (m *MovementMetrics) Registry() *prometheus.Registry {
	return m.registry
}

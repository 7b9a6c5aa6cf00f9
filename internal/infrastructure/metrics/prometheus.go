// Package metrics contadores de negocio expuestos para Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/jhoicas/boutique-api/internal/application/ports"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

// Nombres de métricas.
const (
	MetricOrderTransitions  = "boutique_order_transitions_total"
	MetricInventoryPurchase = "boutique_inventory_purchases_total"
	MetricFinanceReversals  = "boutique_finance_reversals_total"
	MetricOutboxEvents      = "boutique_outbox_dispatch_total"
)

var _ ports.Metrics = (*Prometheus)(nil)

// Prometheus implementa ports.Metrics y los contadores del outbox sobre un registry propio.
// Seguro para uso concurrente (los collectors de client_golang lo son).
type Prometheus struct {
	registry *prometheus.Registry

	orderTransitions *prometheus.CounterVec
	purchases        prometheus.Counter
	reversals        prometheus.Counter
	outboxEvents     *prometheus.CounterVec
}

// NewPrometheus registra los contadores de negocio y los collectors de runtime.
func NewPrometheus() *Prometheus {
	reg := prometheus.NewRegistry()
	p := &Prometheus{
		registry: reg,
		orderTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricOrderTransitions,
			Help: "Transiciones de estado de pedidos aplicadas.",
		}, []string{"from", "to"}),
		purchases: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricInventoryPurchase,
			Help: "Compras de inventario registradas.",
		}),
		reversals: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricFinanceReversals,
			Help: "Movimientos de caja reversados.",
		}),
		outboxEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricOutboxEvents,
			Help: "Notificaciones del outbox por resultado de publicación.",
		}, []string{"result"}),
	}
	reg.MustRegister(
		p.orderTransitions, p.purchases, p.reversals, p.outboxEvents,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return p
}

func (p *Prometheus) OrderTransition(from, to entity.OrderStatus) {
	p.orderTransitions.WithLabelValues(string(from), string(to)).Inc()
}

func (p *Prometheus) InventoryPurchase() { p.purchases.Inc() }

func (p *Prometheus) FinanceReversal() { p.reversals.Inc() }

func (p *Prometheus) OutboxPublished() { p.outboxEvents.WithLabelValues("published").Inc() }

func (p *Prometheus) OutboxFailed() { p.outboxEvents.WithLabelValues("failed").Inc() }

// Registry expone el registry (tests).
func (p *Prometheus) Registry() *prometheus.Registry { return p.registry }

// Handler handler HTTP de /metrics.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}

// Package outbox publica las notificaciones de pedidos escritas en la bandeja de salida.
// Entrega al menos una vez: un evento se marca publicado solo después de que el publicador lo acepta.
package outbox

import (
	"context"
	"time"

	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
	"github.com/jhoicas/boutique-api/pkg/logger"
)

// Publisher destino de las notificaciones (Kafka o log).
type Publisher interface {
	Publish(ctx context.Context, e *entity.OutboxEvent) error
	Close() error
}

// Metrics contadores del despachador.
type Metrics interface {
	OutboxPublished()
	OutboxFailed()
}

type nopMetrics struct{}

func (nopMetrics) OutboxPublished() {}
func (nopMetrics) OutboxFailed()    {}

// DefaultMaxAttempts tope de reintentos cuando la configuración no trae uno válido.
const DefaultMaxAttempts = 10

// Config parámetros del sondeo.
type Config struct {
	PollInterval time.Duration
	BatchSize    int
	MaxAttempts  int
}

// Dispatcher sondea el outbox y publica en orden de creación.
type Dispatcher struct {
	repo    repository.OutboxRepository
	pub     Publisher
	cfg     Config
	metrics Metrics
	log     *logger.Logger
	now     func() time.Time
}

// NewDispatcher construye el despachador. metrics nil = sin métricas.
func NewDispatcher(repo repository.OutboxRepository, pub Publisher, cfg Config, metrics Metrics, log *logger.Logger) *Dispatcher {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &Dispatcher{repo: repo, pub: pub, cfg: cfg, metrics: metrics, log: log.Component("outbox"), now: func() time.Time { return time.Now().UTC() }}
}

// Run sondea hasta que ctx se cancele.
func (d *Dispatcher) Run(ctx context.Context) error {
	d.log.Info().Dur("interval", d.cfg.PollInterval).Int("batch", d.cfg.BatchSize).Msg("outbox dispatcher iniciado")
	ticker := time.NewTicker(d.cfg.PollInterval)
	defer ticker.Stop()
	for {
		if _, err := d.DispatchOnce(ctx); err != nil && ctx.Err() == nil {
			d.log.Error().Err(err).Msg("outbox: error leyendo pendientes")
		}
		select {
		case <-ctx.Done():
			d.log.Info().Msg("outbox dispatcher detenido")
			return nil
		case <-ticker.C:
		}
	}
}

// DispatchOnce publica un lote. Se detiene en el primer fallo para no adelantar eventos posteriores del mismo pedido.
func (d *Dispatcher) DispatchOnce(ctx context.Context) (int, error) {
	events, err := d.repo.FetchPending(ctx, d.cfg.BatchSize, d.cfg.MaxAttempts)
	if err != nil {
		return 0, err
	}
	published := 0
	for _, e := range events {
		if err := d.pub.Publish(ctx, e); err != nil {
			d.metrics.OutboxFailed()
			d.log.Warn().Err(err).Str("event_id", e.ID).Str("event_type", e.EventType).Int("attempts", e.Attempts+1).Msg("outbox: publicación fallida")
			if merr := d.repo.MarkFailed(ctx, e.ID, err.Error()); merr != nil {
				return published, merr
			}
			return published, nil
		}
		if err := d.repo.MarkPublished(ctx, e.ID, d.now()); err != nil {
			return published, err
		}
		d.metrics.OutboxPublished()
		published++
	}
	return published, nil
}

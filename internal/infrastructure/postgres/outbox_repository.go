package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

var _ repository.OutboxRepository = (*OutboxRepo)(nil)

// OutboxRepo bandeja de salida de notificaciones.
type OutboxRepo struct {
	q Querier
}

// NewOutboxRepository construye el adaptador del outbox.
func NewOutboxRepository(q Querier) *OutboxRepo {
	return &OutboxRepo{q: q}
}

func (r *OutboxRepo) Create(ctx context.Context, e *entity.OutboxEvent) error {
	query := `
		INSERT INTO outbox_events (id, event_type, aggregate_id, payload, attempts, last_error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, e.ID, e.EventType, e.AggregateID, []byte(e.Payload), e.Attempts, e.LastError, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert outbox event: %w", err)
	}
	return nil
}

func (r *OutboxRepo) FetchPending(ctx context.Context, limit, maxAttempts int) ([]*entity.OutboxEvent, error) {
	query := `
		SELECT id, event_type, aggregate_id, payload, attempts, last_error, created_at, published_at
		FROM outbox_events
		WHERE published_at IS NULL AND ($2 <= 0 OR attempts < $2)
		ORDER BY seq
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limitArg(limit), maxAttempts)
	if err != nil {
		return nil, fmt.Errorf("fetch outbox: %w", err)
	}
	defer rows.Close()

	var list []*entity.OutboxEvent
	for rows.Next() {
		var e entity.OutboxEvent
		var payload []byte
		if err := rows.Scan(&e.ID, &e.EventType, &e.AggregateID, &payload, &e.Attempts, &e.LastError, &e.CreatedAt, &e.PublishedAt); err != nil {
			return nil, fmt.Errorf("scan outbox event: %w", err)
		}
		e.Payload = payload
		list = append(list, &e)
	}
	return list, rows.Err()
}

func (r *OutboxRepo) MarkPublished(ctx context.Context, id string, at time.Time) error {
	return r.exec(ctx, `UPDATE outbox_events SET published_at = $2, attempts = attempts + 1, last_error = '' WHERE id = $1`, id, at)
}

func (r *OutboxRepo) MarkFailed(ctx context.Context, id string, lastError string) error {
	return r.exec(ctx, `UPDATE outbox_events SET attempts = attempts + 1, last_error = $2 WHERE id = $1`, id, lastError)
}

func (r *OutboxRepo) exec(ctx context.Context, query string, args ...any) error {
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update outbox event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

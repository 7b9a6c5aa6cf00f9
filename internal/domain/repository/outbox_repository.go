package repository

import (
	"context"
	"time"

	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

// OutboxRepository puerto de la bandeja de salida de notificaciones.
type OutboxRepository interface {
	Create(ctx context.Context, e *entity.OutboxEvent) error
	// FetchPending devuelve eventos sin publicar con menos de maxAttempts intentos, en orden de creación.
	FetchPending(ctx context.Context, limit, maxAttempts int) ([]*entity.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, at time.Time) error
	MarkFailed(ctx context.Context, id string, lastError string) error
}

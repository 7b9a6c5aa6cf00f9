package ports

import (
	"context"

	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

// Repos agrupa los repositorios atados a una misma transacción.
// Los casos de uso los reciben explícitamente; ninguno usa un cliente global.
type Repos struct {
	Products      repository.ProductRepository
	Variants      repository.VariantRepository
	InventoryLogs repository.InventoryLogRepository
	Finance       repository.FinanceEntryRepository
	Orders        repository.OrderRepository
	Outbox        repository.OutboxRepository
}

// TxRunner ejecuta fn dentro de una transacción de BD, con repositorios atados a esa tx.
// Si fn devuelve error se hace rollback de todo; si no, commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}

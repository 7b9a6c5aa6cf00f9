// Package memory implementa todos los repositorios y el TxRunner en memoria.
// Se usa en las pruebas de los casos de uso y con STORAGE_DRIVER=memory.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/boutique-api/internal/application/ports"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

var _ ports.TxRunner = (*TxRunner)(nil)

type state struct {
	products map[string]*entity.Product
	variants map[string]*entity.Variant
	logs     []*entity.InventoryLogEntry
	finance  []*entity.FinanceEntry
	orders   []*entity.Order
	outbox   []*entity.OutboxEvent
	settings *entity.StoreSettings
	users    []*entity.User
}

func newState() *state {
	return &state{
		products: make(map[string]*entity.Product),
		variants: make(map[string]*entity.Variant),
	}
}

// clone copia profunda del estado, usada como punto de restauración de una transacción.
func (st *state) clone() *state {
	c := newState()
	for id, p := range st.products {
		c.products[id] = cloneProduct(p)
	}
	for id, v := range st.variants {
		c.variants[id] = cloneVariant(v)
	}
	c.logs = make([]*entity.InventoryLogEntry, len(st.logs))
	for i, l := range st.logs {
		c.logs[i] = cloneLog(l)
	}
	c.finance = make([]*entity.FinanceEntry, len(st.finance))
	for i, e := range st.finance {
		c.finance[i] = cloneEntry(e)
	}
	c.orders = make([]*entity.Order, len(st.orders))
	for i, o := range st.orders {
		c.orders[i] = cloneOrder(o)
	}
	c.outbox = make([]*entity.OutboxEvent, len(st.outbox))
	for i, e := range st.outbox {
		c.outbox[i] = cloneEvent(e)
	}
	if st.settings != nil {
		s := *st.settings
		c.settings = &s
	}
	c.users = make([]*entity.User, len(st.users))
	for i, u := range st.users {
		cu := *u
		c.users[i] = &cu
	}
	return c
}

// Store estado compartido protegido por un único mutex: cada operación es una sección crítica.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// view acceso al estado. locked indica que el llamador ya tiene el mutex (dentro de una transacción).
type view struct {
	s      *Store
	locked bool
}

func (v view) do(fn func(st *state) error) error {
	if !v.locked {
		v.s.mu.Lock()
		defer v.s.mu.Unlock()
	}
	return fn(v.s.st)
}

func (s *Store) repos(locked bool) ports.Repos {
	v := view{s: s, locked: locked}
	return ports.Repos{
		Products:      &ProductRepo{v},
		Variants:      &VariantRepo{v},
		InventoryLogs: &InventoryLogRepo{v},
		Finance:       &FinanceEntryRepo{v},
		Orders:        &OrderRepo{v},
		Outbox:        &OutboxRepo{v},
	}
}

// Repos devuelve repositorios fuera de transacción (cada llamada bloquea por su cuenta).
func (s *Store) Repos() ports.Repos {
	return s.repos(false)
}

// Settings devuelve el repositorio de ajustes.
func (s *Store) Settings() *SettingsRepo {
	return &SettingsRepo{view{s: s}}
}

// Users devuelve el repositorio de usuarios del back-office.
func (s *Store) Users() *UserRepo {
	return &UserRepo{view{s: s}}
}

// TxRunner ejecuta callbacks con el mutex tomado y restaura el estado si fn falla.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el almacén.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run bloquea todo el almacén durante fn. Un error devuelve el estado al punto de inicio.
func (r *TxRunner) Run(ctx context.Context, fn func(repos ports.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	snapshot := r.s.st.clone()
	if err := fn(r.s.repos(true)); err != nil {
		r.s.st = snapshot
		return err
	}
	return nil
}

func cloneProduct(p *entity.Product) *entity.Product {
	c := *p
	return &c
}

func cloneVariant(v *entity.Variant) *entity.Variant {
	c := *v
	if v.PriceOverride != nil {
		po := *v.PriceOverride
		c.PriceOverride = &po
	}
	return &c
}

func cloneLog(l *entity.InventoryLogEntry) *entity.InventoryLogEntry {
	c := *l
	return &c
}

func cloneEntry(e *entity.FinanceEntry) *entity.FinanceEntry {
	c := *e
	if e.RelatedID != nil {
		id := *e.RelatedID
		c.RelatedID = &id
	}
	if e.ReversedAt != nil {
		t := *e.ReversedAt
		c.ReversedAt = &t
	}
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func cloneOrder(o *entity.Order) *entity.Order {
	c := *o
	if o.ShippingCostActual != nil {
		sc := *o.ShippingCostActual
		c.ShippingCostActual = &sc
	}
	c.PaidAt = cloneTime(o.PaidAt)
	c.ShippedAt = cloneTime(o.ShippedAt)
	c.DeliveredAt = cloneTime(o.DeliveredAt)
	c.CancelledAt = cloneTime(o.CancelledAt)
	c.Items = make([]*entity.OrderItem, len(o.Items))
	for i, it := range o.Items {
		item := *it
		c.Items[i] = &item
	}
	return &c
}

func cloneEvent(e *entity.OutboxEvent) *entity.OutboxEvent {
	c := *e
	c.Payload = append([]byte(nil), e.Payload...)
	c.PublishedAt = cloneTime(e.PublishedAt)
	return &c
}

// page aplica limit/offset sobre n elementos. limit <= 0 = sin límite.
func page(n, limit, offset int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if offset > n {
		offset = n
	}
	end := n
	if limit > 0 && offset+limit < n {
		end = offset + limit
	}
	return offset, end
}

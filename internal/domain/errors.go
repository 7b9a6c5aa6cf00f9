package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")

	// Usuarios
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")

	// Inventario
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrReservationMismatch = errors.New("la reserva es menor que la cantidad a descontar")
	ErrInvalidQuantity     = errors.New("cantidad o costo inválido")
	ErrVariantNotFound     = errors.New("variante no encontrada")
	ErrProductNotFound     = errors.New("producto no encontrado")
	ErrPurchaseHasExpense  = errors.New("la compra tiene egreso vigente: se reversa desde caja")

	// Finanzas
	ErrEntryNotFound = errors.New("movimiento financiero no encontrado")

	// Pedidos
	ErrOrderNotFound       = errors.New("pedido no encontrado")
	ErrAlreadyFinalized    = errors.New("el pedido ya está finalizado")
	ErrOrderNotShippable   = errors.New("el pedido no se puede despachar en su estado actual")
	ErrOrderNotCancellable = errors.New("el pedido no se puede cancelar en su estado actual")
	ErrInvalidTransition   = errors.New("transición de estado no permitida")
)

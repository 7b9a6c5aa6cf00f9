package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/pkg/logger"
)

type errorMapping struct {
	err     error
	status  int
	code    string
	message string
}

// errorTable traduce los errores de dominio a status + código. El orden importa solo para errores envueltos.
var errorTable = []errorMapping{
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION", "datos inválidos"},
	{domain.ErrInvalidQuantity, fiber.StatusBadRequest, "INVALID_QUANTITY", "cantidad o costo inválido"},
	{domain.ErrOrderNotFound, fiber.StatusNotFound, "ORDER_NOT_FOUND", "pedido no encontrado"},
	{domain.ErrVariantNotFound, fiber.StatusNotFound, "VARIANT_NOT_FOUND", "variante no encontrada"},
	{domain.ErrProductNotFound, fiber.StatusNotFound, "PRODUCT_NOT_FOUND", "producto no encontrado"},
	{domain.ErrEntryNotFound, fiber.StatusNotFound, "ENTRY_NOT_FOUND", "movimiento no encontrado o ya reversado"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "USER_NOT_FOUND", "usuario no encontrado"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", "recurso no encontrado"},
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK", "stock insuficiente"},
	{domain.ErrReservationMismatch, fiber.StatusConflict, "RESERVATION_MISMATCH", "la reserva no cubre la cantidad"},
	{domain.ErrAlreadyFinalized, fiber.StatusConflict, "ALREADY_FINALIZED", "el pedido ya está finalizado"},
	{domain.ErrOrderNotShippable, fiber.StatusConflict, "NOT_SHIPPABLE", "el pedido no se puede despachar"},
	{domain.ErrOrderNotCancellable, fiber.StatusConflict, "NOT_CANCELLABLE", "el pedido no se puede cancelar"},
	{domain.ErrInvalidTransition, fiber.StatusConflict, "INVALID_TRANSITION", "transición de estado no permitida"},
	{domain.ErrPurchaseHasExpense, fiber.StatusConflict, "PURCHASE_HAS_EXPENSE", "la compra tiene egreso vigente: reversar el movimiento de caja"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE", "recurso duplicado"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS", "el email ya está registrado"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciales inválidas"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN", "cuenta inactiva o sin permiso"},
}

// respondError escribe la respuesta de error de dominio. Cualquier otro error sube al ErrorHandler de la app
// (se registra en el log y se responde 500 sin detalles internos).
func respondError(c *fiber.Ctx, err error) error {
	for _, m := range errorTable {
		if errors.Is(err, m.err) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: m.message})
		}
	}
	return err
}

// ErrorHandler manejador final de Fiber.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: fe.Message})
		}
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error no controlado")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/application/order"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

// CheckoutHandler rutas públicas de la tienda: checkout y webhook de la pasarela de pagos.
type CheckoutHandler struct {
	orders *order.Service
}

// NewCheckoutHandler construye el handler.
func NewCheckoutHandler(orders *order.Service) *CheckoutHandler {
	return &CheckoutHandler{orders: orders}
}

// Checkout godoc
// @Summary      Crear pedido
// @Description  Reserva stock de cada línea y devuelve el pedido pendiente de pago. Precios y costos se leen del catálogo.
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CheckoutRequest  true  "cliente e ítems"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/checkout [post]
func (h *CheckoutHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	lines := make([]order.CheckoutLine, 0, len(in.Items))
	for _, it := range in.Items {
		lines = append(lines, order.CheckoutLine{VariantID: it.VariantID, Quantity: it.Quantity})
	}
	o, err := h.orders.CreateOrder(c.UserContext(), order.CheckoutInput{
		Customer: entity.CustomerInfo{
			Name:            in.Customer.Name,
			Email:           in.Customer.Email,
			Phone:           in.Customer.Phone,
			ShippingAddress: in.Customer.ShippingAddress,
		},
		Items: lines,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toOrderResponse(o))
}

// PaymentWebhook godoc
// @Summary      Resultado de pago
// @Description  Confirma (descuenta stock) o rechaza (libera reservas) el pago de un pedido pendiente. Idempotente.
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        X-Webhook-Secret  header    string                     true  "secreto compartido"
// @Param        body              body      dto.PaymentWebhookRequest  true  "order_id, success"
// @Success      200               {object}  dto.PaymentWebhookResponse
// @Failure      401               {object}  dto.ErrorResponse
// @Failure      404               {object}  dto.ErrorResponse
// @Failure      409               {object}  dto.ErrorResponse
// @Router       /api/webhooks/payment [post]
func (h *CheckoutHandler) PaymentWebhook(c *fiber.Ctx) error {
	var in dto.PaymentWebhookRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	o, changed, err := h.orders.HandlePayment(c.UserContext(), in.OrderID, *in.Success)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.PaymentWebhookResponse{OrderID: o.ID, Status: string(o.Status), Changed: changed})
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/application/order"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

// OrderHandler gestión de pedidos desde el back-office (protegido).
type OrderHandler struct {
	orders *order.Service
}

// NewOrderHandler construye el handler.
func NewOrderHandler(orders *order.Service) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// List godoc
// @Summary      Listar pedidos
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        status  query     string  false  "pending|paid|processing|shipped|delivered|cancelled"
// @Param        limit   query     int     false  "máx. 100"
// @Param        offset  query     int     false  "desplazamiento"
// @Success      200     {object}  dto.OrderListResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/admin/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	page, ok, err := parsePage(c)
	if !ok {
		return err
	}
	list, err := h.orders.ListOrders(c.UserContext(), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, toOrderResponse(o))
	}
	return c.JSON(dto.OrderListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}})
}

// GetByID godoc
// @Summary      Obtener pedido
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	o, err := h.orders.GetOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toOrderResponse(o))
}

// MarkProcessing pasa el pedido pagado a preparación.
// @Router /api/admin/orders/{id}/processing [post]
func (h *OrderHandler) MarkProcessing(c *fiber.Ctx) error {
	o, err := h.orders.MarkProcessing(c.UserContext(), c.Params("id"))
	return h.transition(c, o, err)
}

// Ship godoc
// @Summary      Despachar pedido
// @Description  Registra la guía y el egreso de envío. Solo una vez por pedido.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "ID del pedido"
// @Param        body  body      dto.ShipOrderRequest  true  "tracking_number"
// @Success      200   {object}  dto.OrderResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/orders/{id}/ship [post]
func (h *OrderHandler) Ship(c *fiber.Ctx) error {
	var in dto.ShipOrderRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	o, err := h.orders.ShipOrder(c.UserContext(), c.Params("id"), in.TrackingNumber)
	return h.transition(c, o, err)
}

// Deliver confirma la entrega.
// @Router /api/admin/orders/{id}/deliver [post]
func (h *OrderHandler) Deliver(c *fiber.Ctx) error {
	o, err := h.orders.DeliverOrder(c.UserContext(), c.Params("id"))
	return h.transition(c, o, err)
}

// Cancel godoc
// @Summary      Cancelar pedido
// @Description  Pendiente: libera reservas. Pagado o posterior: reingresa stock y registra el reembolso.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                  true   "ID del pedido"
// @Param        body  body      dto.CancelOrderRequest  false  "motivo"
// @Success      200   {object}  dto.OrderResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	var in dto.CancelOrderRequest
	if len(c.Body()) > 0 {
		if ok, err := bindJSON(c, &in); !ok {
			return err
		}
	}
	o, err := h.orders.CancelOrder(c.UserContext(), c.Params("id"), in.Reason)
	return h.transition(c, o, err)
}

func (h *OrderHandler) transition(c *fiber.Ctx, o *entity.Order, err error) error {
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toOrderResponse(o))
}

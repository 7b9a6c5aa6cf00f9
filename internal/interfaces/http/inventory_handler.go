package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/application/inventory"
)

// InventoryHandler compras, ajustes manuales y libro de movimientos por variante.
type InventoryHandler struct {
	purchases   *inventory.RecordPurchaseUseCase
	adjustments *inventory.AdjustStockUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(purchases *inventory.RecordPurchaseUseCase, adjustments *inventory.AdjustStockUseCase) *InventoryHandler {
	return &InventoryHandler{purchases: purchases, adjustments: adjustments}
}

// RecordPurchase godoc
// @Summary      Registrar compra de inventario
// @Description  Suma stock y recalcula el costo promedio ponderado. Opcionalmente registra el egreso.
// @Description  Con egreso se deshace reversando el movimiento de caja; sin egreso, con POST /purchases/{id}/reverse.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RecordPurchaseRequest  true  "variante, cantidad, costo unitario"
// @Success      201   {object}  dto.PurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/inventory/purchases [post]
func (h *InventoryHandler) RecordPurchase(c *fiber.Ctx) error {
	var in dto.RecordPurchaseRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	res, err := h.purchases.RecordPurchase(c.UserContext(), inventory.PurchaseInput{
		VariantID:       in.VariantID,
		Quantity:        in.Quantity,
		UnitCost:        in.UnitCost,
		Description:     in.Description,
		RegisterExpense: in.RegisterExpense,
	})
	if err != nil {
		return respondError(c, err)
	}
	out := dto.PurchaseResponse{
		Variant: toVariantResponse(res.Variant),
		Log:     toLogResponse(res.Log),
	}
	if res.Expense != nil {
		out.FinanceEntryID = res.Expense.ID
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ReversePurchase godoc
// @Summary      Reversar compra sin egreso
// @Description  Deshace stock y costo promedio de una compra registrada sin egreso de caja. Agrega un ajuste compensatorio.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "id del movimiento de compra"
// @Success      200  {object}  dto.VariantResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/admin/inventory/purchases/{id}/reverse [post]
func (h *InventoryHandler) ReversePurchase(c *fiber.Ctx) error {
	v, err := h.purchases.ReversePurchase(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toVariantResponse(v))
}

// AdjustStock godoc
// @Summary      Ajuste manual de stock
// @Description  Corrige el stock (merma, conteo). No cambia el costo promedio ni puede dejar el stock por debajo de lo reservado.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.AdjustStockRequest  true  "variante, delta, motivo"
// @Success      200   {object}  dto.VariantResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/inventory/adjustments [post]
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	v, err := h.adjustments.AdjustStock(c.UserContext(), in.VariantID, in.Delta, in.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toVariantResponse(v))
}

// ListLogs movimientos de una variante, del más reciente al más antiguo.
// @Router /api/admin/inventory/variants/{id}/logs [get]
func (h *InventoryHandler) ListLogs(c *fiber.Ctx) error {
	page, ok, err := parsePage(c)
	if !ok {
		return err
	}
	logs, err := h.adjustments.ListLogs(c.UserContext(), c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.InventoryLogResponse, 0, len(logs))
	for _, l := range logs {
		items = append(items, toLogResponse(l))
	}
	return c.JSON(dto.InventoryLogListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}})
}

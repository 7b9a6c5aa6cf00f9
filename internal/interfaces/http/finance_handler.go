package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/application/finance"
)

// FinanceHandler libro de caja y estado de resultados.
type FinanceHandler struct {
	ledger *finance.LedgerUseCase
	stats  *finance.StatsUseCase
	now    func() time.Time
}

// NewFinanceHandler construye el handler.
func NewFinanceHandler(ledger *finance.LedgerUseCase, stats *finance.StatsUseCase) *FinanceHandler {
	return &FinanceHandler{ledger: ledger, stats: stats, now: func() time.Time { return time.Now().UTC() }}
}

// CreateEntry godoc
// @Summary      Registrar movimiento manual
// @Tags         finance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateFinanceEntryRequest  true  "tipo, categoría, monto"
// @Success      201   {object}  dto.FinanceEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/finance/entries [post]
func (h *FinanceHandler) CreateEntry(c *fiber.Ctx) error {
	var in dto.CreateFinanceEntryRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	e, err := h.ledger.AddManualEntry(c.UserContext(), finance.ManualEntryInput{
		Type:        in.Type,
		Category:    in.Category,
		Amount:      in.Amount,
		Date:        in.Date,
		Description: in.Description,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toFinanceEntryResponse(e))
}

// ListEntries godoc
// @Summary      Listar movimientos vigentes
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Param        from    query     string  false  "YYYY-MM-DD o RFC3339"
// @Param        to      query     string  false  "YYYY-MM-DD o RFC3339"
// @Param        limit   query     int     false  "máx. 100"
// @Param        offset  query     int     false  "desplazamiento"
// @Success      200     {object}  dto.FinanceEntryListResponse
// @Router       /api/admin/finance/entries [get]
func (h *FinanceHandler) ListEntries(c *fiber.Ctx) error {
	page, ok, err := parsePage(c)
	if !ok {
		return err
	}
	from, to, ok, err := parseRange(c)
	if !ok {
		return err
	}
	list, err := h.ledger.ListEntries(c.UserContext(), from, to, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.FinanceEntryResponse, 0, len(list))
	for _, e := range list {
		items = append(items, toFinanceEntryResponse(e))
	}
	return c.JSON(dto.FinanceEntryListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}})
}

// Reverse godoc
// @Summary      Revertir movimiento
// @Description  Marca el movimiento como revertido. Si era una compra de inventario, deshace también el stock y el costo.
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del movimiento"
// @Success      200  {object}  dto.FinanceEntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/admin/finance/entries/{id}/reverse [post]
func (h *FinanceHandler) Reverse(c *fiber.Ctx) error {
	e, err := h.ledger.ReverseTransaction(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toFinanceEntryResponse(e))
}

// statsRange por defecto cubre desde el inicio del mes en curso hasta ahora.
func (h *FinanceHandler) statsRange(c *fiber.Ctx) (time.Time, time.Time, bool, error) {
	from, to, ok, err := parseRange(c)
	if !ok {
		return time.Time{}, time.Time{}, false, err
	}
	now := h.now()
	if to == nil {
		to = &now
	}
	if from == nil {
		start := time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, time.UTC)
		from = &start
	}
	return *from, *to, true, nil
}

// Stats godoc
// @Summary      Estado de resultados
// @Description  Ingresos, costo de ventas, IVA, gastos operativos, utilidad neta, margen y saldo de caja del rango.
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Param        from  query     string  false  "por defecto, inicio del mes"
// @Param        to    query     string  false  "por defecto, ahora"
// @Success      200   {object}  dto.StatsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/finance/stats [get]
func (h *FinanceHandler) Stats(c *fiber.Ctx) error {
	from, to, ok, err := h.statsRange(c)
	if !ok {
		return err
	}
	s, err := h.stats.ComputeStats(c.UserContext(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toStatsResponse(s))
}

// StatsPDF mismo reporte que Stats, como PDF descargable.
// @Produce application/pdf
// @Router  /api/admin/finance/stats/pdf [get]
func (h *FinanceHandler) StatsPDF(c *fiber.Ctx) error {
	from, to, ok, err := h.statsRange(c)
	if !ok {
		return err
	}
	pdf, err := h.stats.RenderStatsPDF(c.UserContext(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="estado-resultados-`+from.Format("20060102")+"-"+to.Format("20060102")+`.pdf"`)
	return c.Send(pdf)
}

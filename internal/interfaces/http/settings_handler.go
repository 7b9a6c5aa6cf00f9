package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/application/settings"
)

// SettingsHandler lectura y actualización de los ajustes de la tienda.
type SettingsHandler struct {
	provider *settings.Provider
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(provider *settings.Provider) *SettingsHandler {
	return &SettingsHandler{provider: provider}
}

// Get godoc
// @Summary      Ajustes vigentes
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SettingsResponse
// @Router       /api/admin/settings [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	s, err := h.provider.Get(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toSettingsResponse(s))
}

// Update godoc
// @Summary      Actualizar ajustes
// @Description  Cambios parciales. vat_rate acepta fracción (0.19) o porcentaje (19).
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.UpdateSettingsRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.SettingsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/settings [put]
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSettingsRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	s, err := h.provider.Update(c.UserContext(), settings.UpdateInput{
		ShippingFee:           in.ShippingFee,
		FreeShippingThreshold: in.FreeShippingThreshold,
		VATRate:               in.VATRate,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toSettingsResponse(s))
}

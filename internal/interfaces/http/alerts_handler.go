package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/MultiTienda-api/internal/application/alerts"
	"github.com/jhoicas/MultiTienda-api/internal/application/dto"
)

// AlertsHandler preferencias y disparo de alertas de stock bajo.
type AlertsHandler struct {
	uc *alerts.AlertsUseCase
}

// NewAlertsHandler construye el handler.
func NewAlertsHandler(uc *alerts.AlertsUseCase) *AlertsHandler {
	return &AlertsHandler{uc: uc}
}

// GetPreferences godoc
// @Summary      Preferencias de notificación de la tienda
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=dto.PreferencesResponse}
// @Router       /api/alerts/preferences [get]
func (h *AlertsHandler) GetPreferences(c *fiber.Ctx) error {
	out, err := h.uc.GetPreferences(c.UserContext(), shopScope(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// UpdatePreferences godoc
// @Summary      Actualizar preferencias (parcial)
// @Tags         alerts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdatePreferencesRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.Envelope{data=dto.PreferencesResponse}
// @Failure      400   {object}  dto.Envelope
// @Router       /api/alerts/preferences [put]
func (h *AlertsHandler) UpdatePreferences(c *fiber.Ctx) error {
	var in dto.UpdatePreferencesRequest
	if err := parseBody(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.UpdatePreferences(c.UserContext(), shopScope(c), in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// SendTest godoc
// @Summary      Enviar alerta de prueba
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=dto.SuccessResponse}
// @Router       /api/alerts/test [post]
func (h *AlertsHandler) SendTest(c *fiber.Ctx) error {
	out, err := h.uc.SendTestAlert(c.UserContext(), shopScope(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// TriggerLowStock godoc
// @Summary      Disparar alerta de stock bajo para un producto
// @Tags         alerts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LowStockAlertRequest  true  "productId"
// @Success      200   {object}  dto.Envelope{data=dto.LowStockAlertResponse}
// @Failure      404   {object}  dto.Envelope
// @Router       /api/alerts/low-stock [post]
func (h *AlertsHandler) TriggerLowStock(c *fiber.Ctx) error {
	var in dto.LowStockAlertRequest
	if err := parseBody(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.TriggerLowStockAlert(c.UserContext(), shopScope(c), in.ProductID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

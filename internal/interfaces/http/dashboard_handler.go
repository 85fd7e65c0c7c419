package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/MultiTienda-api/internal/application/analytics"
)

// DashboardHandler resumen de la tienda activa.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Get godoc
// @Summary      Dashboard de la tienda
// @Description  Totales, stock bajo (críticos primero) y ventas recientes.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=dto.DashboardResponse}
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetDashboard(c.UserContext(), shopScope(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Categories godoc
// @Summary      Stock por categoría
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=[]dto.CategoryBreakdown}
// @Router       /api/analytics/categories [get]
func (h *DashboardHandler) Categories(c *fiber.Ctx) error {
	out, err := h.uc.GetCategoryBreakdown(c.UserContext(), shopScope(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

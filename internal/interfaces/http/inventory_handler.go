package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/MultiTienda-api/internal/application/dto"
	"github.com/jhoicas/MultiTienda-api/internal/application/ports"
)

// InventoryHandler maneja ajustes de stock y consultas del ledger.
type InventoryHandler struct {
	store ports.InventoryStore
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(store ports.InventoryStore) *InventoryHandler {
	return &InventoryHandler{store: store}
}

// List godoc
// @Summary      Inventario de la tienda activa
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=dto.ListResponse[dto.ProductResponse]}
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	out, err := h.store.ListInventory(c.UserContext(), shopScope(c))
	if err != nil {
		return fail(c, err)
	}
	return okList(c, out)
}

// Adjust godoc
// @Summary      Ajustar stock
// @Description  quantityChange con signo. Si el stock quedaría negativo responde 409 y no cambia nada.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "productId, quantityChange, type, reason, notes"
// @Success      200   {object}  dto.Envelope{data=dto.AdjustStockResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope  "INSUFFICIENT_STOCK"
// @Router       /api/inventory/adjust [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := parseBody(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.store.AdjustStock(c.UserContext(), shopScope(c), in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// BulkAdjust godoc
// @Summary      Ajuste de stock por lote
// @Description  Por defecto cada ajuste es independiente. Con atomic=true el lote se aplica completo o no se aplica.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkAdjustRequest  true  "adjustments, atomic"
// @Success      200   {object}  dto.Envelope{data=dto.BulkAdjustResponse}
// @Failure      400   {object}  dto.Envelope
// @Router       /api/inventory/bulk-adjust [post]
func (h *InventoryHandler) BulkAdjust(c *fiber.Ctx) error {
	var in dto.BulkAdjustRequest
	if err := parseBody(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.store.BulkAdjustStock(c.UserContext(), shopScope(c), in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Transactions godoc
// @Summary      Historial de transacciones (más reciente primero)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productId  query  string  false  "Filtrar por producto"
// @Success      200  {object}  dto.Envelope{data=dto.ListResponse[dto.TransactionResponse]}
// @Router       /api/inventory/transactions [get]
func (h *InventoryHandler) Transactions(c *fiber.Ctx) error {
	out, err := h.store.GetTransactionHistory(c.UserContext(), shopScope(c), c.Query("productId"))
	if err != nil {
		return fail(c, err)
	}
	return okList(c, out)
}

// Reconcile godoc
// @Summary      Verificar stock contra el ledger
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.Envelope{data=dto.ReconcileResponse}
// @Failure      404  {object}  dto.Envelope
// @Router       /api/inventory/{productId}/reconcile [get]
func (h *InventoryHandler) Reconcile(c *fiber.Ctx) error {
	out, err := h.store.Reconcile(c.UserContext(), shopScope(c), c.Params("productId"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

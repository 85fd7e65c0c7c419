package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/MultiTienda-api/internal/application/dto"
	"github.com/jhoicas/MultiTienda-api/internal/application/ports"
	"github.com/jhoicas/MultiTienda-api/internal/application/sales"
)

// SalesHandler registro de ventas, estadísticas y comprobantes.
type SalesHandler struct {
	store    ports.SalesStore
	receipts *sales.ReceiptUseCase
}

// NewSalesHandler construye el handler. receipts puede ser nil (sin comprobantes PDF).
func NewSalesHandler(store ports.SalesStore, receipts *sales.ReceiptUseCase) *SalesHandler {
	return &SalesHandler{store: store, receipts: receipts}
}

// List godoc
// @Summary      Listar ventas (más reciente primero)
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        startDate  query  string  false  "Desde (RFC3339 o YYYY-MM-DD)"
// @Param        endDate    query  string  false  "Hasta (RFC3339 o YYYY-MM-DD, día completo)"
// @Param        productId  query  string  false  "Producto"
// @Success      200  {object}  dto.Envelope{data=dto.ListResponse[dto.SaleResponse]}
// @Failure      400  {object}  dto.Envelope
// @Router       /api/sales [get]
func (h *SalesHandler) List(c *fiber.Ctx) error {
	var filter dto.SaleFilter
	if err := parseQuery(c, &filter); err != nil {
		return fail(c, err)
	}
	out, err := h.store.ListSales(c.UserContext(), shopScope(c), filter)
	if err != nil {
		return fail(c, err)
	}
	return okList(c, out)
}

// Record godoc
// @Summary      Registrar venta
// @Description  Descuenta el stock en el ledger (OUT/sale) y guarda la foto del producto.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordSaleRequest  true  "productId, quantity"
// @Success      201   {object}  dto.Envelope{data=dto.SaleResponse}
// @Failure      404   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope  "INSUFFICIENT_STOCK"
// @Router       /api/sales [post]
func (h *SalesHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordSaleRequest
	if err := parseBody(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.store.RecordSale(c.UserContext(), shopScope(c), in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, out)
}

// GetByID godoc
// @Summary      Obtener venta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.Envelope{data=dto.SaleResponse}
// @Failure      404  {object}  dto.Envelope
// @Router       /api/sales/{id} [get]
func (h *SalesHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.store.GetSale(c.UserContext(), shopScope(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Stats godoc
// @Summary      Estadísticas de ventas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        period  query  string  false  "today | week | month"  default(today)
// @Success      200  {object}  dto.Envelope{data=dto.SalesStatsResponse}
// @Failure      400  {object}  dto.Envelope
// @Router       /api/sales/stats [get]
func (h *SalesHandler) Stats(c *fiber.Ctx) error {
	out, err := h.store.GetSalesStats(c.UserContext(), shopScope(c), c.Query("period"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// TopProducts godoc
// @Summary      Productos más vendidos por ingresos
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo de productos"  default(5)
// @Success      200  {object}  dto.Envelope{data=[]dto.TopProductResponse}
// @Router       /api/sales/top-products [get]
func (h *SalesHandler) TopProducts(c *fiber.Ctx) error {
	out, err := h.store.GetTopSellingProducts(c.UserContext(), shopScope(c), c.QueryInt("limit"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Trend godoc
// @Summary      Tendencia diaria de ventas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "Días hacia atrás, hoy incluido"  default(7)
// @Success      200  {object}  dto.Envelope{data=[]dto.TrendPoint}
// @Failure      400  {object}  dto.Envelope
// @Router       /api/sales/trend [get]
func (h *SalesHandler) Trend(c *fiber.Ctx) error {
	out, err := h.store.GetSalesTrend(c.UserContext(), shopScope(c), c.QueryInt("days"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Receipt godoc
// @Summary      Comprobante PDF de la venta
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.Envelope
// @Router       /api/sales/{id}/receipt [get]
func (h *SalesHandler) Receipt(c *fiber.Ctx) error {
	if h.receipts == nil {
		return fiber.ErrNotFound
	}
	shopName := ""
	if shop := GetShop(c); shop != nil {
		shopName = shop.Name
	}
	saleID := c.Params("id")
	pdf, err := h.receipts.Render(c.UserContext(), shopScope(c), shopName, saleID)
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="venta-`+saleID+`.pdf"`)
	return c.Status(fiber.StatusOK).Send(pdf)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/MultiTienda-api/internal/application/dto"
	"github.com/jhoicas/MultiTienda-api/internal/application/ports"
)

// ShopHandler registro de tiendas del propietario.
type ShopHandler struct {
	store ports.ShopStore
}

// NewShopHandler construye el handler.
func NewShopHandler(store ports.ShopStore) *ShopHandler {
	return &ShopHandler{store: store}
}

// List godoc
// @Summary      Listar tiendas
// @Tags         shops
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=dto.ShopListResponse}
// @Router       /api/shops [get]
func (h *ShopHandler) List(c *fiber.Ctx) error {
	out, err := h.store.ListShops(c.UserContext(), userScope(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Create godoc
// @Summary      Crear tienda
// @Description  Máximo 5 tiendas por propietario.
// @Tags         shops
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateShopRequest  true  "Datos de la tienda"
// @Success      201   {object}  dto.Envelope{data=dto.ShopResponse}
// @Failure      409   {object}  dto.Envelope  "SHOP_LIMIT_REACHED"
// @Router       /api/shops [post]
func (h *ShopHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateShopRequest
	if err := parseBody(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.store.CreateShop(c.UserContext(), userScope(c), in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, out)
}

// Update godoc
// @Summary      Actualizar tienda
// @Tags         shops
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la tienda"
// @Param        body  body  dto.UpdateShopRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.Envelope{data=dto.ShopResponse}
// @Failure      404   {object}  dto.Envelope
// @Router       /api/shops/{id} [put]
func (h *ShopHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateShopRequest
	if err := parseBody(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.store.UpdateShop(c.UserContext(), userScope(c), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Delete godoc
// @Summary      Eliminar tienda y todos sus datos
// @Tags         shops
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la tienda"
// @Success      200  {object}  dto.Envelope
// @Failure      409  {object}  dto.Envelope  "CANNOT_DELETE_ONLY_SHOP"
// @Router       /api/shops/{id} [delete]
func (h *ShopHandler) Delete(c *fiber.Ctx) error {
	if err := h.store.DeleteShop(c.UserContext(), userScope(c), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return okMessage(c, "tienda eliminada")
}

// SetActive godoc
// @Summary      Seleccionar tienda activa
// @Tags         shops
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la tienda"
// @Success      200  {object}  dto.Envelope{data=dto.ShopResponse}
// @Router       /api/shops/{id}/active [put]
func (h *ShopHandler) SetActive(c *fiber.Ctx) error {
	out, err := h.store.SetActiveShop(c.UserContext(), userScope(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

package repository

import (
	"context"

	"github.com/jhoicas/MultiTienda-api/internal/domain/entity"
)

// ShopRepository define el puerto de persistencia para Shop (DIP).
// Los métodos Get* devuelven (nil, nil) si no existe.
type ShopRepository interface {
	Create(ctx context.Context, shop *entity.Shop) error
	GetByID(ctx context.Context, id string) (*entity.Shop, error)
	Update(ctx context.Context, shop *entity.Shop) error
	// Delete elimina la tienda y en cascada sus productos, transacciones, ventas y preferencias.
	Delete(ctx context.Context, id string) error
	// ListByOwner devuelve las tiendas en orden de creación.
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Shop, error)
	CountByOwner(ctx context.Context, ownerID string) (int, error)
}

package repository

import (
	"context"
	"time"

	"github.com/jhoicas/MultiTienda-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	GetByShopAndSKU(ctx context.Context, shopID, sku string) (*entity.Product, error)
	// Update persiste campos de catálogo; nunca toca CurrentStock.
	Update(ctx context.Context, product *entity.Product) error
	UpdateStock(ctx context.Context, productID string, stock int, updatedAt time.Time) error
	// ListByShop ordena por nombre.
	ListByShop(ctx context.Context, shopID string) ([]*entity.Product, error)
	ListCategories(ctx context.Context, shopID string) ([]string, error)
	Delete(ctx context.Context, id string) error
}

package repository

import (
	"context"

	"github.com/jhoicas/MultiTienda-api/internal/domain/entity"
)

// TransactionRepository ledger append-only de inventario.
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.InventoryTransaction) error
	// ListByShop devuelve la más reciente primero; productID vacío = todas.
	ListByShop(ctx context.Context, shopID, productID string) ([]*entity.InventoryTransaction, error)
	SumByProduct(ctx context.Context, productID string) (int, error)
}

package inventory

import (
	"context"

	"github.com/jhoicas/MultiTienda-api/internal/domain/entity"
)

// LowStockObserver recibe cada producto cuyo stock cambió tras un commit.
// Lo implementa el caso de uso de alertas; sus errores se registran y no afectan al ajuste.
type LowStockObserver interface {
	StockChanged(ctx context.Context, product *entity.Product) error
}

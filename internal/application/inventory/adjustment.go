package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/MultiTienda-api/internal/application/dto"
	"github.com/jhoicas/MultiTienda-api/internal/domain"
	"github.com/jhoicas/MultiTienda-api/internal/domain/entity"
	domaininv "github.com/jhoicas/MultiTienda-api/internal/domain/inventory"
	"github.com/jhoicas/MultiTienda-api/internal/domain/repository"
)

// Adjustment cambio de stock ya validado.
type Adjustment struct {
	ShopID      string
	ProductID   string
	Change      int
	Type        string
	Reason      string
	Notes       string
	PerformedBy string
	At          time.Time
}

// NewAdjustment valida la petición y deriva tipo y motivo por defecto.
func NewAdjustment(shopID, userID string, req dto.AdjustStockRequest, at time.Time) (Adjustment, error) {
	if req.ProductID == "" {
		return Adjustment{}, domain.Invalid("productId", "es obligatorio")
	}
	if req.QuantityChange == 0 {
		return Adjustment{}, domain.Invalid("quantityChange", "no puede ser 0")
	}
	derived := entity.TypeForChange(req.QuantityChange)
	if req.Type != "" && req.Type != derived {
		return Adjustment{}, domain.Invalid("type", "no coincide con el signo de quantityChange")
	}
	reason := req.Reason
	if reason == "" {
		reason = entity.ReasonAdjustment
	}
	if !entity.IsValidReason(reason) {
		return Adjustment{}, domain.Invalid("reason", "no es un motivo válido")
	}
	return Adjustment{
		ShopID:      shopID,
		ProductID:   req.ProductID,
		Change:      req.QuantityChange,
		Type:        derived,
		Reason:      reason,
		Notes:       req.Notes,
		PerformedBy: userID,
		At:          at,
	}, nil
}

// ApplyAdjustment bloquea el producto, verifica que el stock no quede negativo, lo
// actualiza y agrega la transacción al ledger. Debe llamarse dentro de TxRunner.Run
// con ports.ProductLockKey(adj.ProductID) entre las claves.
func ApplyAdjustment(ctx context.Context, tx repository.Tx, adj Adjustment) (*entity.Product, *entity.InventoryTransaction, error) {
	product, err := tx.Products.GetForUpdate(ctx, adj.ProductID)
	if err != nil {
		return nil, nil, err
	}
	if product == nil || product.ShopID != adj.ShopID {
		return nil, nil, domain.ErrNotFound
	}
	// la tienda pudo borrarse en cascada con otro bloqueo (el del propietario)
	shop, err := tx.Shops.GetByID(ctx, adj.ShopID)
	if err != nil {
		return nil, nil, err
	}
	if shop == nil {
		return nil, nil, domain.ErrNotFound
	}

	next, ok := domaininv.ApplyChange(product.CurrentStock, adj.Change)
	if !ok {
		return nil, nil, &domain.InsufficientStockError{
			ProductID: product.ID,
			Available: product.CurrentStock,
			Requested: -adj.Change,
		}
	}

	if err := tx.Products.UpdateStock(ctx, product.ID, next, adj.At); err != nil {
		return nil, nil, err
	}
	record := &entity.InventoryTransaction{
		ID:             uuid.New().String(),
		ProductID:      product.ID,
		ShopID:         product.ShopID,
		QuantityChange: adj.Change,
		Type:           adj.Type,
		Reason:         adj.Reason,
		Notes:          adj.Notes,
		PerformedBy:    adj.PerformedBy,
		Timestamp:      adj.At,
	}
	if err := tx.Transactions.Create(ctx, record); err != nil {
		return nil, nil, err
	}

	product.CurrentStock = next
	product.UpdatedAt = adj.At
	return product, record, nil
}

package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/MultiTienda-api/internal/domain/entity"
	"github.com/jhoicas/MultiTienda-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo ledger en memoria; se antepone cada transacción (más reciente primero).
type TransactionRepo struct {
	s *Store
	j *journal
}

// Create antepone la transacción al ledger.
func (r *TransactionRepo) Create(_ context.Context, tx *entity.InventoryTransaction) error {
	c := cloneTransaction(tx)
	r.s.write(r.j, func() {
		r.s.transactions = append([]*entity.InventoryTransaction{c}, r.s.transactions...)
	}, func() {
		r.s.transactions, _ = partitionTransactions(r.s.transactions, func(t *entity.InventoryTransaction) bool {
			return t.ID == c.ID
		})
	})
	return nil
}

// ListByShop transacciones de la tienda, más reciente primero; productID vacío = todas.
func (r *TransactionRepo) ListByShop(_ context.Context, shopID, productID string) ([]*entity.InventoryTransaction, error) {
	defer r.s.rlock(r.j)()
	out := make([]*entity.InventoryTransaction, 0)
	for _, t := range r.s.transactions {
		if t.ShopID != shopID {
			continue
		}
		if productID != "" && t.ProductID != productID {
			continue
		}
		out = append(out, cloneTransaction(t))
	}
	return out, nil
}

// SumByProduct suma de QuantityChange del producto.
func (r *TransactionRepo) SumByProduct(_ context.Context, productID string) (int, error) {
	defer r.s.rlock(r.j)()
	sum := 0
	for _, t := range r.s.transactions {
		if t.ProductID == productID {
			sum += t.QuantityChange
		}
	}
	return sum, nil
}

// partitionTransactions separa los elementos que cumplen match. No modifica list.
func partitionTransactions(list []*entity.InventoryTransaction, match func(*entity.InventoryTransaction) bool) (kept, removed []*entity.InventoryTransaction) {
	kept = make([]*entity.InventoryTransaction, 0, len(list))
	for _, t := range list {
		if match(t) {
			removed = append(removed, t)
			continue
		}
		kept = append(kept, t)
	}
	return kept, removed
}

// restoreTransactions reinserta transacciones eliminadas manteniendo el orden por fecha descendente.
func restoreTransactions(list, removed []*entity.InventoryTransaction) []*entity.InventoryTransaction {
	if len(removed) == 0 {
		return list
	}
	out := append(append(make([]*entity.InventoryTransaction, 0, len(list)+len(removed)), list...), removed...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out
}

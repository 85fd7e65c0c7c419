package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/MultiTienda-api/internal/domain/entity"
	"github.com/jhoicas/MultiTienda-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo ledger append-only sobre PostgreSQL. El orden es el de inserción (seq).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

func (r *TransactionRepo) Create(ctx context.Context, t *entity.InventoryTransaction) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory_transactions (id, product_id, shop_id, quantity_change, type, reason, notes, performed_by, ts)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		t.ID, t.ProductID, t.ShopID, t.QuantityChange, t.Type, t.Reason, t.Notes, t.PerformedBy, t.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert inventory transaction: %w", err)
	}
	return nil
}

func (r *TransactionRepo) ListByShop(ctx context.Context, shopID, productID string) ([]*entity.InventoryTransaction, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, product_id, shop_id, quantity_change, type, reason, notes, performed_by, ts
		FROM inventory_transactions
		WHERE shop_id = $1 AND ($2 = '' OR product_id = $2)
		ORDER BY seq DESC`, shopID, productID)
	if err != nil {
		return nil, fmt.Errorf("list inventory transactions: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.InventoryTransaction, 0)
	for rows.Next() {
		var t entity.InventoryTransaction
		if err := rows.Scan(&t.ID, &t.ProductID, &t.ShopID, &t.QuantityChange, &t.Type, &t.Reason,
			&t.Notes, &t.PerformedBy, &t.Timestamp); err != nil {
			return nil, fmt.Errorf("scan inventory transaction: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

func (r *TransactionRepo) SumByProduct(ctx context.Context, productID string) (int, error) {
	var sum int
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity_change), 0)::int FROM inventory_transactions WHERE product_id = $1`,
		productID).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum inventory transactions: %w", err)
	}
	return sum, nil
}

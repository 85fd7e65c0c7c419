package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/MultiTienda-api/internal/domain/repository"
)

var _ repository.ActiveShopStore = (*ActiveShopRepo)(nil)

// ActiveShopRepo tienda activa por propietario, persistida entre reinicios.
type ActiveShopRepo struct {
	q Querier
}

// NewActiveShopRepository construye el adaptador.
func NewActiveShopRepository(q Querier) *ActiveShopRepo {
	return &ActiveShopRepo{q: q}
}

func (r *ActiveShopRepo) Get(ctx context.Context, ownerID string) (string, error) {
	var shopID string
	err := r.q.QueryRow(ctx, `SELECT shop_id FROM active_shops WHERE owner_id = $1`, ownerID).Scan(&shopID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("get active shop: %w", err)
	}
	return shopID, nil
}

func (r *ActiveShopRepo) Set(ctx context.Context, ownerID, shopID string) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO active_shops (owner_id, shop_id) VALUES ($1, $2)
		ON CONFLICT (owner_id) DO UPDATE SET shop_id = EXCLUDED.shop_id`, ownerID, shopID)
	if err != nil {
		return fmt.Errorf("set active shop: %w", err)
	}
	return nil
}

func (r *ActiveShopRepo) Clear(ctx context.Context, ownerID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM active_shops WHERE owner_id = $1`, ownerID); err != nil {
		return fmt.Errorf("clear active shop: %w", err)
	}
	return nil
}

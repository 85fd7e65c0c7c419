package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/MultiTienda-api/internal/domain"
	"github.com/jhoicas/MultiTienda-api/internal/domain/entity"
	"github.com/jhoicas/MultiTienda-api/internal/domain/repository"
)

var _ repository.ShopRepository = (*ShopRepo)(nil)

const shopColumns = `id, owner_id, name, address, phone, email, notification_email, notification_phone, created_at, updated_at`

// ShopRepo implementación de ShopRepository sobre PostgreSQL (usable con pool o tx).
type ShopRepo struct {
	q Querier
}

// NewShopRepository construye el adaptador. Pasar pool o tx (Querier).
func NewShopRepository(q Querier) *ShopRepo {
	return &ShopRepo{q: q}
}

func (r *ShopRepo) Create(ctx context.Context, s *entity.Shop) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO shops (`+shopColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		s.ID, s.OwnerID, s.Name, s.Address, s.Phone, s.Email, s.NotificationEmail, s.NotificationPhone, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert shop: %w", err)
	}
	return nil
}

func (r *ShopRepo) GetByID(ctx context.Context, id string) (*entity.Shop, error) {
	s, err := scanShop(r.q.QueryRow(ctx, `SELECT `+shopColumns+` FROM shops WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shop: %w", err)
	}
	return s, nil
}

func (r *ShopRepo) Update(ctx context.Context, s *entity.Shop) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE shops SET name = $2, address = $3, phone = $4, email = $5,
			notification_email = $6, notification_phone = $7, updated_at = $8
		WHERE id = $1`,
		s.ID, s.Name, s.Address, s.Phone, s.Email, s.NotificationEmail, s.NotificationPhone, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update shop: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra la tienda; productos, ledger, ventas y preferencias caen por ON DELETE CASCADE.
func (r *ShopRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM shops WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete shop: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ShopRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Shop, error) {
	rows, err := r.q.Query(ctx, `SELECT `+shopColumns+` FROM shops WHERE owner_id = $1 ORDER BY created_at, seq`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list shops: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.Shop, 0)
	for rows.Next() {
		s, err := scanShop(rows)
		if err != nil {
			return nil, fmt.Errorf("scan shop: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *ShopRepo) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM shops WHERE owner_id = $1`, ownerID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count shops: %w", err)
	}
	return n, nil
}

func scanShop(row pgx.Row) (*entity.Shop, error) {
	var s entity.Shop
	err := row.Scan(&s.ID, &s.OwnerID, &s.Name, &s.Address, &s.Phone, &s.Email,
		&s.NotificationEmail, &s.NotificationPhone, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

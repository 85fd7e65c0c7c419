package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/MultiTienda-api/internal/domain/entity"
	"github.com/jhoicas/MultiTienda-api/internal/domain/repository"
)

var _ repository.PreferencesRepository = (*PreferencesRepo)(nil)

// PreferencesRepo preferencias de notificación por tienda.
type PreferencesRepo struct {
	q Querier
}

// NewPreferencesRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPreferencesRepository(q Querier) *PreferencesRepo {
	return &PreferencesRepo{q: q}
}

func (r *PreferencesRepo) Get(ctx context.Context, shopID string) (*entity.NotificationPreferences, error) {
	var p entity.NotificationPreferences
	err := r.q.QueryRow(ctx, `
		SELECT shop_id, email_enabled, sms_enabled, email, phone, low_stock_threshold_percent
		FROM notification_preferences WHERE shop_id = $1`, shopID).Scan(
		&p.ShopID, &p.EmailEnabled, &p.SMSEnabled, &p.Email, &p.Phone, &p.LowStockThresholdPercent,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get preferences: %w", err)
	}
	return &p, nil
}

func (r *PreferencesRepo) Upsert(ctx context.Context, p *entity.NotificationPreferences) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO notification_preferences (shop_id, email_enabled, sms_enabled, email, phone, low_stock_threshold_percent)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (shop_id) DO UPDATE SET
			email_enabled = EXCLUDED.email_enabled,
			sms_enabled = EXCLUDED.sms_enabled,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			low_stock_threshold_percent = EXCLUDED.low_stock_threshold_percent`,
		p.ShopID, p.EmailEnabled, p.SMSEnabled, p.Email, p.Phone, p.LowStockThresholdPercent,
	)
	if err != nil {
		return fmt.Errorf("upsert preferences: %w", err)
	}
	return nil
}

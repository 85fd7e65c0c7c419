package repository

import (
	"context"

	"github.com/jhoicas/MultiTienda-api/internal/domain/entity"
)

// PreferencesRepository preferencias de notificación por tienda.
type PreferencesRepository interface {
	// Get devuelve (nil, nil) si la tienda aún no tiene preferencias guardadas.
	Get(ctx context.Context, shopID string) (*entity.NotificationPreferences, error)
	Upsert(ctx context.Context, prefs *entity.NotificationPreferences) error
}

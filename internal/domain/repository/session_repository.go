package repository

import (
	"context"
	"time"
)

// ActiveShopStore persiste la tienda seleccionada por propietario entre sesiones.
type ActiveShopStore interface {
	// Get devuelve "" si no hay selección.
	Get(ctx context.Context, ownerID string) (string, error)
	Set(ctx context.Context, ownerID, shopID string) error
	Clear(ctx context.Context, ownerID string) error
}

// TokenRevocationStore lista de tokens revocados (jti) hasta su vencimiento.
type TokenRevocationStore interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

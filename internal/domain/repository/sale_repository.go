package repository

import (
	"context"
	"time"

	"github.com/jhoicas/MultiTienda-api/internal/domain/entity"
)

// SaleFilter filtros de listado; límites inclusivos, nil = sin límite.
type SaleFilter struct {
	ShopID    string
	ProductID string
	From      *time.Time
	To        *time.Time
}

// Matches aplica el filtro a una venta.
func (f SaleFilter) Matches(s *entity.Sale) bool {
	if f.ShopID != "" && s.ShopID != f.ShopID {
		return false
	}
	if f.ProductID != "" && s.ProductID != f.ProductID {
		return false
	}
	if f.From != nil && s.Timestamp.Before(*f.From) {
		return false
	}
	if f.To != nil && s.Timestamp.After(*f.To) {
		return false
	}
	return true
}

// SaleRepository define el puerto de persistencia para Sale.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// List devuelve ordenado por Timestamp descendente.
	List(ctx context.Context, filter SaleFilter) ([]*entity.Sale, error)
}

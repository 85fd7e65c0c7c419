package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de una tienda.
// CurrentStock solo cambia a través del ledger de inventario; OpeningStock es el stock
// con el que se creó y sirve como base para reproducir el ledger.
type Product struct {
	ID               string
	ShopID           string
	Name             string
	SKU              string
	Category         string
	UnitPrice        decimal.Decimal
	CurrentStock     int
	OpeningStock     int
	ReorderThreshold int
	Location         string
	Description      string
	ImageURL         string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

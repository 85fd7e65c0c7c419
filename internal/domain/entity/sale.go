package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale venta inmutable. ProductName, ProductSKU y UnitPrice son una foto del producto
// al momento de la venta.
type Sale struct {
	ID          string
	ShopID      string
	ProductID   string
	ProductName string
	ProductSKU  string
	Quantity    int
	UnitPrice   decimal.Decimal
	TotalAmount decimal.Decimal
	Timestamp   time.Time
	PerformedBy string
}

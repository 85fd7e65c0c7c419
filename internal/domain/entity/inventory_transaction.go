package entity

import "time"

// Tipos de transacción de inventario.
const (
	TransactionTypeIN  = "IN"  // entrada, QuantityChange > 0
	TransactionTypeOUT = "OUT" // salida, QuantityChange < 0
)

// Motivos de transacción.
const (
	ReasonPurchase   = "purchase"
	ReasonSale       = "sale"
	ReasonAdjustment = "adjustment"
	ReasonWastage    = "wastage"
	ReasonReturn     = "return"
)

// InventoryTransaction registro inmutable del ledger de un producto.
type InventoryTransaction struct {
	ID             string
	ProductID      string
	ShopID         string
	QuantityChange int
	Type           string
	Reason         string
	Notes          string
	PerformedBy    string
	Timestamp      time.Time
}

// TypeForChange deriva el tipo a partir del signo del cambio.
func TypeForChange(change int) string {
	if change < 0 {
		return TransactionTypeOUT
	}
	return TransactionTypeIN
}

// IsValidReason indica si el motivo pertenece al catálogo.
func IsValidReason(reason string) bool {
	switch reason {
	case ReasonPurchase, ReasonSale, ReasonAdjustment, ReasonWastage, ReasonReturn:
		return true
	}
	return false
}

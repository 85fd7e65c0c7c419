package dto

import "time"

// AdjustStockRequest body para POST /inventory/adjust.
// Type es opcional; si viene debe coincidir con el signo de QuantityChange.
type AdjustStockRequest struct {
	ProductID      string `json:"productId" validate:"required"`
	QuantityChange int    `json:"quantityChange" validate:"required"`
	Type           string `json:"type,omitempty" validate:"omitempty,oneof=IN OUT"`
	Reason         string `json:"reason,omitempty" validate:"omitempty,oneof=purchase sale adjustment wastage return"`
	Notes          string `json:"notes,omitempty" validate:"max=500"`
}

// BulkAdjustRequest body para POST /inventory/bulk-adjust.
// Atomic=true aplica todo o nada.
type BulkAdjustRequest struct {
	Adjustments []AdjustStockRequest `json:"adjustments" validate:"required,min=1"`
	Atomic      bool                 `json:"atomic,omitempty"`
}

// TransactionResponse salida de una transacción del ledger.
type TransactionResponse struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"productId"`
	ShopID         string    `json:"shopId"`
	QuantityChange int       `json:"quantityChange"`
	Type           string    `json:"type"`
	Reason         string    `json:"reason"`
	Notes          string    `json:"notes,omitempty"`
	PerformedBy    string    `json:"performedBy"`
	Timestamp      time.Time `json:"timestamp"`
}

// AdjustStockResponse producto actualizado y la transacción creada.
type AdjustStockResponse struct {
	Product     ProductResponse     `json:"product"`
	Transaction TransactionResponse `json:"transaction"`
}

// BulkAdjustError fallo de un elemento del lote.
type BulkAdjustError struct {
	Index     int    `json:"index"`
	ProductID string `json:"productId"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

// BulkAdjustResponse resumen del lote.
type BulkAdjustResponse struct {
	Success   bool              `json:"success"`
	Processed int               `json:"processed"`
	Failed    int               `json:"failed"`
	Atomic    bool              `json:"atomic"`
	Errors    []BulkAdjustError `json:"errors"`
}

// ReconcileResponse comprobación del ledger de un producto.
type ReconcileResponse struct {
	ProductID    string `json:"productId"`
	OpeningStock int    `json:"openingStock"`
	LedgerSum    int    `json:"ledgerSum"`
	CurrentStock int    `json:"currentStock"`
	Consistent   bool   `json:"consistent"`
}

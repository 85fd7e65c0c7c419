package ports

import (
	"context"
	"time"

	"github.com/jhoicas/MultiTienda-api/internal/application/dto"
)

// LowStockAlert evento de stock bajo de un producto.
type LowStockAlert struct {
	ShopID           string    `json:"shopId"`
	ShopName         string    `json:"shopName"`
	ProductID        string    `json:"productId"`
	ProductName      string    `json:"productName"`
	SKU              string    `json:"sku"`
	CurrentStock     int       `json:"currentStock"`
	ReorderThreshold int       `json:"reorderThreshold"`
	Deficit          int       `json:"deficit"`
	Critical         bool      `json:"critical"`
	Channels         []string  `json:"channels"`
	Recipients       []string  `json:"recipients"`
	Test             bool      `json:"test,omitempty"`
	OccurredAt       time.Time `json:"occurredAt"`
}

// AlertNotifier puerto de salida de alertas (log, Kafka, ...).
type AlertNotifier interface {
	Notify(ctx context.Context, alert LowStockAlert) error
}

// ReceiptRenderer genera el comprobante PDF de una venta.
type ReceiptRenderer interface {
	RenderReceipt(shopName string, sale dto.SaleResponse) ([]byte, error)
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordSaleRequest body para POST /sales.
type RecordSaleRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// SaleFilter filtros de GET /sales (RFC3339 o YYYY-MM-DD, inclusivos).
type SaleFilter struct {
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
	ProductID string `query:"productId"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID          string          `json:"id"`
	ShopID      string          `json:"shopId"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	ProductSKU  string          `json:"productSku"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Timestamp   time.Time       `json:"timestamp"`
	PerformedBy string          `json:"performedBy"`
}

// SalesStatsResponse agregados de un periodo.
type SalesStatsResponse struct {
	Period            string          `json:"period"`
	TotalSales        int             `json:"totalSales"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
}

// TopProductResponse producto más vendido por ingresos.
type TopProductResponse struct {
	ProductID     string          `json:"productId"`
	ProductName   string          `json:"productName"`
	TotalQuantity int             `json:"totalQuantity"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
}

// TrendPoint ingresos de un día.
type TrendPoint struct {
	Date       string          `json:"date"` // YYYY-MM-DD
	SalesCount int             `json:"salesCount"`
	Revenue    decimal.Decimal `json:"revenue"`
}

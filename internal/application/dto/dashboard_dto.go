package dto

import "github.com/shopspring/decimal"

// DashboardStats indicadores principales de la tienda.
type DashboardStats struct {
	TotalProducts    int             `json:"totalProducts"`
	TotalStockUnits  int             `json:"totalStockUnits"`
	LowStockCount    int             `json:"lowStockCount"`
	CriticalCount    int             `json:"criticalCount"`
	TodaySalesValue  decimal.Decimal `json:"todaySalesValue"`
	RecentSalesValue decimal.Decimal `json:"recentSalesValue"`
}

// LowStockItem producto por debajo del umbral.
type LowStockItem struct {
	Product  ProductResponse `json:"product"`
	Deficit  int             `json:"deficit"`
	Critical bool            `json:"critical"`
}

// DashboardResponse respuesta de GET /dashboard.
type DashboardResponse struct {
	Stats       DashboardStats `json:"stats"`
	LowStock    []LowStockItem `json:"lowStock"`
	RecentSales []SaleResponse `json:"recentSales"`
}

// CategoryBreakdown unidades y valor por categoría.
type CategoryBreakdown struct {
	Category     string          `json:"category"`
	ProductCount int             `json:"productCount"`
	StockUnits   int             `json:"stockUnits"`
	StockValue   decimal.Decimal `json:"stockValue"`
}

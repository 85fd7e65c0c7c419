package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. CurrentStock es el stock inicial.
type CreateProductRequest struct {
	Name             string          `json:"name" validate:"required,min=1,max=200"`
	SKU              string          `json:"sku" validate:"required,min=1,max=100"`
	Category         string          `json:"category" validate:"required,min=1,max=100"`
	UnitPrice        decimal.Decimal `json:"unitPrice"`
	CurrentStock     int             `json:"currentStock" validate:"min=0"`
	ReorderThreshold int             `json:"reorderThreshold" validate:"min=0"`
	Location         string          `json:"location,omitempty" validate:"max=200"`
	Description      string          `json:"description,omitempty"`
	ImageURL         string          `json:"imageUrl,omitempty" validate:"omitempty,url"`
}

// UpdateProductRequest entrada para actualizar un producto (sin stock: eso va por el ledger).
type UpdateProductRequest struct {
	Name             *string          `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	SKU              *string          `json:"sku,omitempty" validate:"omitempty,min=1,max=100"`
	Category         *string          `json:"category,omitempty" validate:"omitempty,min=1,max=100"`
	UnitPrice        *decimal.Decimal `json:"unitPrice,omitempty"`
	ReorderThreshold *int             `json:"reorderThreshold,omitempty" validate:"omitempty,min=0"`
	Location         *string          `json:"location,omitempty"`
	Description      *string          `json:"description,omitempty"`
	ImageURL         *string          `json:"imageUrl,omitempty" validate:"omitempty,url"`
}

// ProductFilter filtros de GET /products.
type ProductFilter struct {
	Search       string `query:"search"`
	Category     string `query:"category"`
	LowStockOnly bool   `query:"lowStockOnly"`
}

// StockStatus clasificación derivada del stock.
type StockStatus struct {
	IsLowStock         bool            `json:"isLowStock"`
	IsCritical         bool            `json:"isCritical"`
	Deficit            int             `json:"deficit"`
	EffectiveThreshold decimal.Decimal `json:"effectiveThreshold"`
}

// ProductResponse salida de un producto con su estado de stock.
type ProductResponse struct {
	ID               string          `json:"id"`
	ShopID           string          `json:"shopId"`
	Name             string          `json:"name"`
	SKU              string          `json:"sku"`
	Category         string          `json:"category"`
	UnitPrice        decimal.Decimal `json:"unitPrice"`
	CurrentStock     int             `json:"currentStock"`
	ReorderThreshold int             `json:"reorderThreshold"`
	Location         string          `json:"location,omitempty"`
	Description      string          `json:"description,omitempty"`
	ImageURL         string          `json:"imageUrl,omitempty"`
	Status           StockStatus     `json:"status"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

package ports

import (
	"context"

	"github.com/jhoicas/MultiTienda-api/internal/application/dto"
)

// Scope contexto de una llamada: usuario autenticado, tienda activa y token a reenviar.
type Scope struct {
	UserID string
	ShopID string
	Token  string
}

// Los stores son los puertos de capacidad que consume la capa HTTP. Hay dos adaptadores:
// local (casos de uso sobre repositorios memory/postgres) y remoto (cliente HTTP).
// Se elige uno al arrancar según BACKEND_MODE.

// InventoryStore ledger de inventario de la tienda activa.
type InventoryStore interface {
	ListInventory(ctx context.Context, scope Scope) ([]dto.ProductResponse, error)
	AdjustStock(ctx context.Context, scope Scope, req dto.AdjustStockRequest) (*dto.AdjustStockResponse, error)
	BulkAdjustStock(ctx context.Context, scope Scope, req dto.BulkAdjustRequest) (*dto.BulkAdjustResponse, error)
	GetTransactionHistory(ctx context.Context, scope Scope, productID string) ([]dto.TransactionResponse, error)
	Reconcile(ctx context.Context, scope Scope, productID string) (*dto.ReconcileResponse, error)
}

// SalesStore registro y consultas de ventas.
type SalesStore interface {
	RecordSale(ctx context.Context, scope Scope, req dto.RecordSaleRequest) (*dto.SaleResponse, error)
	GetSale(ctx context.Context, scope Scope, saleID string) (*dto.SaleResponse, error)
	ListSales(ctx context.Context, scope Scope, filter dto.SaleFilter) ([]dto.SaleResponse, error)
	GetSalesStats(ctx context.Context, scope Scope, period string) (*dto.SalesStatsResponse, error)
	GetTopSellingProducts(ctx context.Context, scope Scope, limit int) ([]dto.TopProductResponse, error)
	GetSalesTrend(ctx context.Context, scope Scope, days int) ([]dto.TrendPoint, error)
}

// ShopStore tiendas del propietario y selección activa.
type ShopStore interface {
	ListShops(ctx context.Context, scope Scope) (*dto.ShopListResponse, error)
	CreateShop(ctx context.Context, scope Scope, req dto.CreateShopRequest) (*dto.ShopResponse, error)
	UpdateShop(ctx context.Context, scope Scope, shopID string, req dto.UpdateShopRequest) (*dto.ShopResponse, error)
	DeleteShop(ctx context.Context, scope Scope, shopID string) error
	SetActiveShop(ctx context.Context, scope Scope, shopID string) (*dto.ShopResponse, error)
	// ResolveShop devuelve la tienda solicitada si pertenece al usuario, si no la activa
	// persistida, si no la primera. domain.ErrNoActiveShop si no tiene ninguna.
	ResolveShop(ctx context.Context, scope Scope, requestedID string) (*dto.ShopResponse, error)
}

// CatalogStore CRUD de productos de la tienda activa.
type CatalogStore interface {
	ListProducts(ctx context.Context, scope Scope, filter dto.ProductFilter) ([]dto.ProductResponse, error)
	GetProduct(ctx context.Context, scope Scope, productID string) (*dto.ProductResponse, error)
	CreateProduct(ctx context.Context, scope Scope, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	UpdateProduct(ctx context.Context, scope Scope, productID string, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	DeleteProduct(ctx context.Context, scope Scope, productID string) error
	ListCategories(ctx context.Context, scope Scope) ([]string, error)
}

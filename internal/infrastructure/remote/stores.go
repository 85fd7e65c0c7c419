package remote

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jhoicas/MultiTienda-api/internal/application/dto"
	"github.com/jhoicas/MultiTienda-api/internal/application/ports"
	"github.com/jhoicas/MultiTienda-api/internal/domain"
)

// Inventario

func (c *Client) ListInventory(ctx context.Context, scope ports.Scope) ([]dto.ProductResponse, error) {
	var out dto.ListResponse[dto.ProductResponse]
	if err := c.do(ctx, scope, http.MethodGet, "/inventory", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *Client) AdjustStock(ctx context.Context, scope ports.Scope, req dto.AdjustStockRequest) (*dto.AdjustStockResponse, error) {
	var out dto.AdjustStockResponse
	if err := c.do(ctx, scope, http.MethodPost, "/inventory/adjust", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) BulkAdjustStock(ctx context.Context, scope ports.Scope, req dto.BulkAdjustRequest) (*dto.BulkAdjustResponse, error) {
	var out dto.BulkAdjustResponse
	if err := c.do(ctx, scope, http.MethodPost, "/inventory/bulk-adjust", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetTransactionHistory(ctx context.Context, scope ports.Scope, productID string) ([]dto.TransactionResponse, error) {
	q := url.Values{}
	if productID != "" {
		q.Set("productId", productID)
	}
	var out dto.ListResponse[dto.TransactionResponse]
	if err := c.do(ctx, scope, http.MethodGet, "/inventory/transactions", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *Client) Reconcile(ctx context.Context, scope ports.Scope, productID string) (*dto.ReconcileResponse, error) {
	var out dto.ReconcileResponse
	if err := c.do(ctx, scope, http.MethodGet, pathID("/inventory", productID, "reconcile"), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Ventas

func (c *Client) RecordSale(ctx context.Context, scope ports.Scope, req dto.RecordSaleRequest) (*dto.SaleResponse, error) {
	var out dto.SaleResponse
	if err := c.do(ctx, scope, http.MethodPost, "/sales", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetSale(ctx context.Context, scope ports.Scope, saleID string) (*dto.SaleResponse, error) {
	var out dto.SaleResponse
	if err := c.do(ctx, scope, http.MethodGet, pathID("/sales", saleID), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListSales(ctx context.Context, scope ports.Scope, filter dto.SaleFilter) ([]dto.SaleResponse, error) {
	q := url.Values{}
	if filter.StartDate != "" {
		q.Set("startDate", filter.StartDate)
	}
	if filter.EndDate != "" {
		q.Set("endDate", filter.EndDate)
	}
	if filter.ProductID != "" {
		q.Set("productId", filter.ProductID)
	}
	var out dto.ListResponse[dto.SaleResponse]
	if err := c.do(ctx, scope, http.MethodGet, "/sales", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *Client) GetSalesStats(ctx context.Context, scope ports.Scope, period string) (*dto.SalesStatsResponse, error) {
	q := url.Values{}
	if period != "" {
		q.Set("period", period)
	}
	var out dto.SalesStatsResponse
	if err := c.do(ctx, scope, http.MethodGet, "/sales/stats", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetTopSellingProducts(ctx context.Context, scope ports.Scope, limit int) ([]dto.TopProductResponse, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var out []dto.TopProductResponse
	if err := c.do(ctx, scope, http.MethodGet, "/sales/top-products", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetSalesTrend(ctx context.Context, scope ports.Scope, days int) ([]dto.TrendPoint, error) {
	q := url.Values{}
	if days > 0 {
		q.Set("days", strconv.Itoa(days))
	}
	var out []dto.TrendPoint
	if err := c.do(ctx, scope, http.MethodGet, "/sales/trend", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Tiendas

func (c *Client) ListShops(ctx context.Context, scope ports.Scope) (*dto.ShopListResponse, error) {
	var out dto.ShopListResponse
	if err := c.do(ctx, scope, http.MethodGet, "/shops", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateShop(ctx context.Context, scope ports.Scope, req dto.CreateShopRequest) (*dto.ShopResponse, error) {
	var out dto.ShopResponse
	if err := c.do(ctx, scope, http.MethodPost, "/shops", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateShop(ctx context.Context, scope ports.Scope, shopID string, req dto.UpdateShopRequest) (*dto.ShopResponse, error) {
	var out dto.ShopResponse
	if err := c.do(ctx, scope, http.MethodPut, pathID("/shops", shopID), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteShop(ctx context.Context, scope ports.Scope, shopID string) error {
	return c.do(ctx, scope, http.MethodDelete, pathID("/shops", shopID), nil, nil, nil)
}

func (c *Client) SetActiveShop(ctx context.Context, scope ports.Scope, shopID string) (*dto.ShopResponse, error) {
	var out dto.ShopResponse
	if err := c.do(ctx, scope, http.MethodPut, pathID("/shops", shopID, "active"), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResolveShop se resuelve sobre el listado remoto: solicitada si es del usuario,
// si no la activa remota, si no la primera.
func (c *Client) ResolveShop(ctx context.Context, scope ports.Scope, requestedID string) (*dto.ShopResponse, error) {
	list, err := c.ListShops(ctx, ports.Scope{UserID: scope.UserID, Token: scope.Token})
	if err != nil {
		return nil, err
	}
	if len(list.Shops) == 0 {
		return nil, domain.ErrNoActiveShop
	}
	for _, id := range []string{requestedID, list.ActiveShopID} {
		if id == "" {
			continue
		}
		for i := range list.Shops {
			if list.Shops[i].ID == id {
				return &list.Shops[i], nil
			}
		}
	}
	return &list.Shops[0], nil
}

// Catálogo

func (c *Client) ListProducts(ctx context.Context, scope ports.Scope, filter dto.ProductFilter) ([]dto.ProductResponse, error) {
	q := url.Values{}
	if filter.Search != "" {
		q.Set("search", filter.Search)
	}
	if filter.Category != "" {
		q.Set("category", filter.Category)
	}
	if filter.LowStockOnly {
		q.Set("lowStockOnly", "true")
	}
	var out dto.ListResponse[dto.ProductResponse]
	if err := c.do(ctx, scope, http.MethodGet, "/products", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *Client) GetProduct(ctx context.Context, scope ports.Scope, productID string) (*dto.ProductResponse, error) {
	var out dto.ProductResponse
	if err := c.do(ctx, scope, http.MethodGet, pathID("/products", productID), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateProduct(ctx context.Context, scope ports.Scope, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	var out dto.ProductResponse
	if err := c.do(ctx, scope, http.MethodPost, "/products", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProduct(ctx context.Context, scope ports.Scope, productID string, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	var out dto.ProductResponse
	if err := c.do(ctx, scope, http.MethodPut, pathID("/products", productID), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, scope ports.Scope, productID string) error {
	return c.do(ctx, scope, http.MethodDelete, pathID("/products", productID), nil, nil, nil)
}

func (c *Client) ListCategories(ctx context.Context, scope ports.Scope) ([]string, error) {
	var out []string
	if err := c.do(ctx, scope, http.MethodGet, "/products/categories", nil, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

// Package analytics contiene los casos de uso del dashboard de la tienda activa.
package analytics

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/MultiTienda-api/internal/application/dto"
	"github.com/jhoicas/MultiTienda-api/internal/application/ports"
)

const dashboardRecentSales = 5 // ventas recientes en el widget del dashboard

// DashboardUseCase resume catálogo, stock y ventas de la tienda activa.
//
// Fuente de datos: los stores de catálogo y ventas, de modo que funciona igual con
// backend local o remoto.
type DashboardUseCase struct {
	catalog ports.CatalogStore
	sales   ports.SalesStore
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(catalog ports.CatalogStore, sales ports.SalesStore) *DashboardUseCase {
	return &DashboardUseCase{catalog: catalog, sales: sales}
}

// GetDashboard construye el DashboardResponse.
//
// Cuatro llamadas en paralelo:
//  1. ListProducts          → totales y stock bajo
//  2. GetSalesStats(today)  → TodaySalesValue
//  3. GetSalesStats(week)   → RecentSalesValue
//  4. ListSales             → RecentSales
func (uc *DashboardUseCase) GetDashboard(ctx context.Context, scope ports.Scope) (*dto.DashboardResponse, error) {
	type productsResult struct {
		items []dto.ProductResponse
		err   error
	}
	type statsResult struct {
		stats *dto.SalesStatsResponse
		err   error
	}
	type salesResult struct {
		items []dto.SaleResponse
		err   error
	}

	productsCh := make(chan productsResult, 1)
	todayCh := make(chan statsResult, 1)
	weekCh := make(chan statsResult, 1)
	salesCh := make(chan salesResult, 1)

	go func() {
		items, err := uc.catalog.ListProducts(ctx, scope, dto.ProductFilter{})
		productsCh <- productsResult{items, err}
	}()
	go func() {
		stats, err := uc.sales.GetSalesStats(ctx, scope, "today")
		todayCh <- statsResult{stats, err}
	}()
	go func() {
		stats, err := uc.sales.GetSalesStats(ctx, scope, "week")
		weekCh <- statsResult{stats, err}
	}()
	go func() {
		items, err := uc.sales.ListSales(ctx, scope, dto.SaleFilter{})
		salesCh <- salesResult{items, err}
	}()

	products := <-productsCh
	today := <-todayCh
	week := <-weekCh
	recent := <-salesCh

	if products.err != nil {
		return nil, fmt.Errorf("dashboard: productos: %w", products.err)
	}
	if today.err != nil {
		return nil, fmt.Errorf("dashboard: ventas de hoy: %w", today.err)
	}
	if week.err != nil {
		return nil, fmt.Errorf("dashboard: ventas de la semana: %w", week.err)
	}
	if recent.err != nil {
		return nil, fmt.Errorf("dashboard: ventas recientes: %w", recent.err)
	}

	resp := &dto.DashboardResponse{
		Stats: dto.DashboardStats{
			TotalProducts:    len(products.items),
			TodaySalesValue:  today.stats.TotalRevenue.Round(2),
			RecentSalesValue: week.stats.TotalRevenue.Round(2),
		},
		LowStock:    []dto.LowStockItem{},
		RecentSales: recent.items,
	}
	for _, p := range products.items {
		resp.Stats.TotalStockUnits += p.CurrentStock
		if !p.Status.IsLowStock {
			continue
		}
		resp.Stats.LowStockCount++
		if p.Status.IsCritical {
			resp.Stats.CriticalCount++
		}
		resp.LowStock = append(resp.LowStock, dto.LowStockItem{
			Product:  p,
			Deficit:  p.Status.Deficit,
			Critical: p.Status.IsCritical,
		})
	}
	// Críticos primero, luego mayor déficit.
	sort.SliceStable(resp.LowStock, func(i, j int) bool {
		a, b := resp.LowStock[i], resp.LowStock[j]
		if a.Critical != b.Critical {
			return a.Critical
		}
		return a.Deficit > b.Deficit
	})
	if len(resp.RecentSales) > dashboardRecentSales {
		resp.RecentSales = resp.RecentSales[:dashboardRecentSales]
	}
	if resp.RecentSales == nil {
		resp.RecentSales = []dto.SaleResponse{}
	}
	return resp, nil
}

// GetCategoryBreakdown unidades y valor de inventario por categoría, ordenado por nombre.
func (uc *DashboardUseCase) GetCategoryBreakdown(ctx context.Context, scope ports.Scope) ([]dto.CategoryBreakdown, error) {
	products, err := uc.catalog.ListProducts(ctx, scope, dto.ProductFilter{})
	if err != nil {
		return nil, fmt.Errorf("categorías: %w", err)
	}
	byCategory := make(map[string]*dto.CategoryBreakdown)
	for _, p := range products {
		c, ok := byCategory[p.Category]
		if !ok {
			c = &dto.CategoryBreakdown{Category: p.Category, StockValue: decimal.Zero}
			byCategory[p.Category] = c
		}
		c.ProductCount++
		c.StockUnits += p.CurrentStock
		c.StockValue = c.StockValue.Add(p.UnitPrice.Mul(decimal.NewFromInt(int64(p.CurrentStock))))
	}
	out := make([]dto.CategoryBreakdown, 0, len(byCategory))
	for _, c := range byCategory {
		c.StockValue = c.StockValue.Round(2)
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

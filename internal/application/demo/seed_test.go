package demo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/MultiTienda-api/internal/app"
	"github.com/jhoicas/MultiTienda-api/internal/application/demo"
	"github.com/jhoicas/MultiTienda-api/internal/application/dto"
	"github.com/jhoicas/MultiTienda-api/internal/application/ports"
	"github.com/jhoicas/MultiTienda-api/pkg/config"
)

func newContainer(t *testing.T) *app.Container {
	t.Helper()
	c, err := app.NewContainer(context.Background(), &config.Config{
		JWT:   config.JWTConfig{Secret: "secreto-demo", Expiration: 60, Issuer: "test"},
		Store: config.StoreConfig{Mode: config.BackendMemory},
	}, nil, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestSeeder_CargaDemo(t *testing.T) {
	c := newContainer(t)
	ctx := context.Background()

	res, err := c.Seeder().Run(ctx, demo.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 5, res.ProductsCreated)
	assert.Equal(t, 3, res.SalesRecorded)

	scope := ports.Scope{UserID: res.UserID, ShopID: res.ShopID}
	low, err := c.Catalog.ListProducts(ctx, scope, dto.ProductFilter{LowStockOnly: true})
	require.NoError(t, err)
	skus := make([]string, 0, len(low))
	for _, p := range low {
		skus = append(skus, p.SKU)
	}
	assert.ElementsMatch(t, []string{"TEV-020", "ARR-1KG"}, skus)

	stats, err := c.Sales.GetSalesStats(ctx, scope, "today")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalSales)
	// 3*18.50 + 4*4.20 + 2*5.00
	assert.Equal(t, "82.3", stats.TotalRevenue.String())
}

func TestSeeder_Idempotente(t *testing.T) {
	c := newContainer(t)
	ctx := context.Background()

	first, err := c.Seeder().Run(ctx, demo.DefaultOptions())
	require.NoError(t, err)
	second, err := c.Seeder().Run(ctx, demo.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, first.ShopID, second.ShopID)
	assert.Equal(t, 0, second.ProductsCreated)
	assert.Equal(t, 5, second.ProductsSkipped)
	assert.Equal(t, 0, second.SalesRecorded)
}

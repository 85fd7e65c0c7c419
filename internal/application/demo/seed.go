// Package demo carga un propietario, una tienda y un catálogo de ejemplo usando los
// mismos casos de uso que la API, de modo que el ledger y las ventas quedan consistentes.
package demo

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/MultiTienda-api/internal/application/auth"
	"github.com/jhoicas/MultiTienda-api/internal/application/dto"
	"github.com/jhoicas/MultiTienda-api/internal/application/ports"
	"github.com/jhoicas/MultiTienda-api/internal/domain"
	"github.com/jhoicas/MultiTienda-api/pkg/logger"
)

// Options datos a cargar. SalesBySKU registra una venta por SKU con esa cantidad.
type Options struct {
	Email      string
	Password   string
	ShopName   string
	Products   []dto.CreateProductRequest
	SalesBySKU map[string]int
}

// Result resumen de lo cargado.
type Result struct {
	UserID          string
	ShopID          string
	ProductsCreated int
	ProductsSkipped int
	SalesRecorded   int
}

// Seeder orquesta la carga sobre los stores configurados.
type Seeder struct {
	auth    *auth.AuthUseCase
	shops   ports.ShopStore
	catalog ports.CatalogStore
	sales   ports.SalesStore
	log     *logger.Logger
}

// NewSeeder construye el seeder.
func NewSeeder(authUC *auth.AuthUseCase, shops ports.ShopStore, catalog ports.CatalogStore, sales ports.SalesStore, log *logger.Logger) *Seeder {
	if log == nil {
		log = logger.NewNop()
	}
	return &Seeder{auth: authUC, shops: shops, catalog: catalog, sales: sales, log: log.Named("seed")}
}

// Run es idempotente: si el email ya existe inicia sesión, y los SKU repetidos se omiten.
// Las ventas solo se registran para productos creados en esta ejecución.
func (s *Seeder) Run(ctx context.Context, opts Options) (*Result, error) {
	session, err := s.auth.SignUp(ctx, dto.SignUpRequest{Email: opts.Email, Password: opts.Password, ShopName: opts.ShopName})
	if errors.Is(err, domain.ErrEmailAlreadyExists) {
		session, err = s.auth.SignIn(ctx, dto.SignInRequest{Email: opts.Email, Password: opts.Password})
	}
	if err != nil {
		return nil, fmt.Errorf("sesión demo: %w", err)
	}

	scope := ports.Scope{UserID: session.User.ID, Token: session.Token}
	shop := session.Shop
	if shop == nil {
		shop, err = s.shops.CreateShop(ctx, scope, dto.CreateShopRequest{Name: opts.ShopName})
		if err != nil {
			return nil, fmt.Errorf("tienda demo: %w", err)
		}
	}
	scope.ShopID = shop.ID

	res := &Result{UserID: session.User.ID, ShopID: shop.ID}
	created := make(map[string]string, len(opts.Products))
	for _, p := range opts.Products {
		out, err := s.catalog.CreateProduct(ctx, scope, p)
		if errors.Is(err, domain.ErrDuplicate) {
			res.ProductsSkipped++
			continue
		}
		if err != nil {
			return res, fmt.Errorf("producto %s: %w", p.SKU, err)
		}
		created[out.SKU] = out.ID
		res.ProductsCreated++
	}

	for sku, qty := range opts.SalesBySKU {
		id, ok := created[sku]
		if !ok {
			continue
		}
		if _, err := s.sales.RecordSale(ctx, scope, dto.RecordSaleRequest{ProductID: id, Quantity: qty}); err != nil {
			s.log.Warn().Err(err).Str("sku", sku).Msg("venta demo omitida")
			continue
		}
		res.SalesRecorded++
	}

	s.log.Info().
		Str("shop_id", res.ShopID).
		Int("products", res.ProductsCreated).
		Int("skipped", res.ProductsSkipped).
		Int("sales", res.SalesRecorded).
		Msg("datos demo cargados")
	return res, nil
}

// DefaultOptions catálogo pequeño con un producto bajo umbral y otro crítico.
func DefaultOptions() Options {
	return Options{
		Email:    "demo@multitienda.local",
		Password: "demo12345",
		ShopName: "Tienda Demo",
		Products: []dto.CreateProductRequest{
			{Name: "Café de Huila 500g", SKU: "CAF-500", Category: "Bebidas", UnitPrice: decimal.RequireFromString("18.50"), CurrentStock: 40, ReorderThreshold: 10, Location: "A1"},
			{Name: "Té verde 20 sobres", SKU: "TEV-020", Category: "Bebidas", UnitPrice: decimal.RequireFromString("6.90"), CurrentStock: 8, ReorderThreshold: 10, Location: "A2"},
			{Name: "Panela orgánica 1kg", SKU: "PAN-1KG", Category: "Despensa", UnitPrice: decimal.RequireFromString("4.20"), CurrentStock: 25, ReorderThreshold: 5, Location: "B1"},
			{Name: "Arroz integral 1kg", SKU: "ARR-1KG", Category: "Despensa", UnitPrice: decimal.RequireFromString("3.75"), CurrentStock: 2, ReorderThreshold: 12, Location: "B2"},
			{Name: "Jabón de avena", SKU: "JAB-AVE", Category: "Cuidado personal", UnitPrice: decimal.RequireFromString("5.00"), CurrentStock: 30, ReorderThreshold: 6, Location: "C1"},
		},
		SalesBySKU: map[string]int{"CAF-500": 3, "PAN-1KG": 4, "JAB-AVE": 2},
	}
}

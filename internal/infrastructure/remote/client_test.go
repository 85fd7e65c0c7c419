package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/MultiTienda-api/internal/application/dto"
	"github.com/jhoicas/MultiTienda-api/internal/application/ports"
	"github.com/jhoicas/MultiTienda-api/internal/domain"
	"github.com/jhoicas/MultiTienda-api/pkg/config"
)

func writeEnvelope(w http.ResponseWriter, status int, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewClient(config.RemoteConfig{BaseURL: srv.URL, APIToken: "service-token"}, nil)
	require.NoError(t, err)
	return c
}

func TestClient_ReenviaTokenYTienda(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer user-token", r.Header.Get("Authorization"))
		assert.Equal(t, "shop-1", r.Header.Get("X-Shop-ID"))
		assert.Equal(t, "/sales", r.URL.Path)
		assert.Equal(t, "2026-01-01", r.URL.Query().Get("startDate"))
		writeEnvelope(w, http.StatusOK, map[string]any{"data": dto.NewList([]dto.SaleResponse{
			{ID: "s1", Quantity: 2, TotalAmount: decimal.RequireFromString("10.00")},
		})})
	})

	sales, err := c.ListSales(context.Background(),
		ports.Scope{UserID: "u1", ShopID: "shop-1", Token: "user-token"},
		dto.SaleFilter{StartDate: "2026-01-01"})
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, "s1", sales[0].ID)
	assert.True(t, sales[0].TotalAmount.Equal(decimal.RequireFromString("10")))
}

func TestClient_SinTokenUsaElDeServicio(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer service-token", r.Header.Get("Authorization"))
		writeEnvelope(w, http.StatusOK, map[string]any{"data": []string{"bebidas"}})
	})
	cats, err := c.ListCategories(context.Background(), ports.Scope{ShopID: "shop-1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"bebidas"}, cats)
}

func TestClient_CodigoDeErrorSeTraduceAlSentinel(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusConflict, map[string]any{
			"error":   domain.CodeInsufficientStock,
			"message": "stock insuficiente",
		})
	})
	_, err := c.AdjustStock(context.Background(), ports.Scope{ShopID: "s"}, dto.AdjustStockRequest{ProductID: "p", QuantityChange: -5})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestClient_ErroresDeNegocioNoAbrenElCircuito(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeEnvelope(w, http.StatusNotFound, map[string]any{"error": domain.CodeNotFound, "message": "no existe"})
	})
	for i := 0; i < breakerFailureThreshold+2; i++ {
		_, err := c.GetProduct(context.Background(), ports.Scope{ShopID: "s"}, "p")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	}
	assert.Equal(t, int32(breakerFailureThreshold+2), atomic.LoadInt32(&calls))
}

func TestClient_FallosDelServidorAbrenElCircuito(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeEnvelope(w, http.StatusInternalServerError, map[string]any{"error": domain.CodeInternal, "message": "boom"})
	})
	for i := 0; i < breakerFailureThreshold; i++ {
		_, err := c.ListInventory(context.Background(), ports.Scope{ShopID: "s"})
		assert.ErrorIs(t, err, domain.ErrUnavailable)
	}
	_, err := c.ListInventory(context.Background(), ports.Scope{ShopID: "s"})
	assert.ErrorIs(t, err, domain.ErrUnavailable)
	assert.Equal(t, int32(breakerFailureThreshold), atomic.LoadInt32(&calls), "con el circuito abierto no se llama al servidor")
}

func TestClient_ResolveShop(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("X-Shop-ID"))
		writeEnvelope(w, http.StatusOK, map[string]any{"data": dto.ShopListResponse{
			Shops:        []dto.ShopResponse{{ID: "a"}, {ID: "b"}},
			ActiveShopID: "b",
			ShopLimit:    5,
		}})
	})
	ctx := context.Background()

	shop, err := c.ResolveShop(ctx, ports.Scope{UserID: "u"}, "a")
	require.NoError(t, err)
	assert.Equal(t, "a", shop.ID)

	shop, err = c.ResolveShop(ctx, ports.Scope{UserID: "u"}, "ajena")
	require.NoError(t, err)
	assert.Equal(t, "b", shop.ID)
}

func TestClient_ResolveShopSinTiendas(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, map[string]any{"data": dto.ShopListResponse{Shops: []dto.ShopResponse{}}})
	})
	_, err := c.ResolveShop(context.Background(), ports.Scope{UserID: "u"}, "")
	assert.ErrorIs(t, err, domain.ErrNoActiveShop)
}

func TestNewClient_RequiereBaseURL(t *testing.T) {
	_, err := NewClient(config.RemoteConfig{}, nil)
	assert.Error(t, err)
}

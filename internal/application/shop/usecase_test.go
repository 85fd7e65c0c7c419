package shop_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/MultiTienda-api/internal/application/dto"
	"github.com/jhoicas/MultiTienda-api/internal/application/ports"
	"github.com/jhoicas/MultiTienda-api/internal/application/shop"
	"github.com/jhoicas/MultiTienda-api/internal/domain"
	"github.com/jhoicas/MultiTienda-api/internal/infrastructure/memory"
)

func newShopUseCase(t *testing.T) (*shop.ShopUseCase, *memory.Store, *memory.ActiveShopStore) {
	t.Helper()
	store := memory.NewStore()
	active := memory.NewActiveShopStore()
	uc := shop.NewShopUseCase(memory.NewTxRunner(store), store.Repos().Shops, active, 0, nil, nil)
	return uc, store, active
}

func owner(id string) ports.Scope { return ports.Scope{UserID: id} }

func TestCreateShop_PrimeraQuedaActiva(t *testing.T) {
	uc, _, active := newShopUseCase(t)
	ctx := context.Background()

	first, err := uc.CreateShop(ctx, owner("u1"), dto.CreateShopRequest{Name: "  Centro  "})
	require.NoError(t, err)
	assert.Equal(t, "Centro", first.Name)
	assert.Equal(t, "u1", first.OwnerID)

	_, err = uc.CreateShop(ctx, owner("u1"), dto.CreateShopRequest{Name: "Norte"})
	require.NoError(t, err)

	id, err := active.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, id, "crear otra tienda no cambia la activa")
}

func TestCreateShop_CreaPreferenciasPorDefecto(t *testing.T) {
	uc, store, _ := newShopUseCase(t)
	ctx := context.Background()

	s, err := uc.CreateShop(ctx, owner("u1"), dto.CreateShopRequest{Name: "Centro"})
	require.NoError(t, err)
	prefs, err := store.Repos().Preferences.Get(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, prefs)
	assert.True(t, prefs.EmailEnabled)
	assert.Equal(t, 100, prefs.LowStockThresholdPercent)
}

func TestCreateShop_CuotaDeCinco(t *testing.T) {
	uc, _, _ := newShopUseCase(t)
	ctx := context.Background()

	for i := 0; i < shop.DefaultShopLimit; i++ {
		_, err := uc.CreateShop(ctx, owner("u1"), dto.CreateShopRequest{Name: fmt.Sprintf("Tienda %d", i)})
		require.NoError(t, err)
	}
	_, err := uc.CreateShop(ctx, owner("u1"), dto.CreateShopRequest{Name: "Sexta"})
	require.ErrorIs(t, err, domain.ErrShopLimitReached)

	list, err := uc.ListShops(ctx, owner("u1"))
	require.NoError(t, err)
	assert.Len(t, list.Shops, 5)
	assert.False(t, list.CanCreateShop)
	assert.Equal(t, 0, list.RemainingShops)

	_, err = uc.CreateShop(ctx, owner("u2"), dto.CreateShopRequest{Name: "Otra cuenta"})
	assert.NoError(t, err, "la cuota es por propietario")
}

func TestCreateShop_CuotaBajoConcurrencia(t *testing.T) {
	uc, store, _ := newShopUseCase(t)
	ctx := context.Background()

	var ok atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := uc.CreateShop(ctx, owner("u1"), dto.CreateShopRequest{Name: fmt.Sprintf("T%d", i)}); err == nil {
				ok.Add(1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(5), ok.Load())
	n, err := store.Repos().Shops.CountByOwner(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestCreateShop_NombreObligatorio(t *testing.T) {
	uc, _, _ := newShopUseCase(t)
	_, err := uc.CreateShop(context.Background(), owner("u1"), dto.CreateShopRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeleteShop_NoSePuedeBorrarLaUnica(t *testing.T) {
	uc, _, _ := newShopUseCase(t)
	ctx := context.Background()

	s, err := uc.CreateShop(ctx, owner("u1"), dto.CreateShopRequest{Name: "Centro"})
	require.NoError(t, err)
	err = uc.DeleteShop(ctx, owner("u1"), s.ID)
	require.ErrorIs(t, err, domain.ErrCannotDeleteOnlyShop)

	list, err := uc.ListShops(ctx, owner("u1"))
	require.NoError(t, err)
	assert.Len(t, list.Shops, 1)
}

func TestDeleteShop_ReasignaLaActiva(t *testing.T) {
	uc, _, active := newShopUseCase(t)
	ctx := context.Background()

	a, err := uc.CreateShop(ctx, owner("u1"), dto.CreateShopRequest{Name: "A"})
	require.NoError(t, err)
	b, err := uc.CreateShop(ctx, owner("u1"), dto.CreateShopRequest{Name: "B"})
	require.NoError(t, err)
	c, err := uc.CreateShop(ctx, owner("u1"), dto.CreateShopRequest{Name: "C"})
	require.NoError(t, err)

	_, err = uc.SetActiveShop(ctx, owner("u1"), b.ID)
	require.NoError(t, err)
	require.NoError(t, uc.DeleteShop(ctx, owner("u1"), b.ID))

	id, err := active.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, a.ID, id)

	// borrar una no activa no toca la selección
	require.NoError(t, uc.DeleteShop(ctx, owner("u1"), c.ID))
	id, _ = active.Get(ctx, "u1")
	assert.Equal(t, a.ID, id)
}

func TestDeleteShop_AjenaEsNotFound(t *testing.T) {
	uc, _, _ := newShopUseCase(t)
	ctx := context.Background()

	s, err := uc.CreateShop(ctx, owner("u1"), dto.CreateShopRequest{Name: "A"})
	require.NoError(t, err)
	_, err = uc.CreateShop(ctx, owner("u2"), dto.CreateShopRequest{Name: "B"})
	require.NoError(t, err)
	_, err = uc.CreateShop(ctx, owner("u2"), dto.CreateShopRequest{Name: "C"})
	require.NoError(t, err)

	assert.ErrorIs(t, uc.DeleteShop(ctx, owner("u2"), s.ID), domain.ErrNotFound)
	assert.ErrorIs(t, uc.DeleteShop(ctx, owner("u2"), "missing"), domain.ErrNotFound)
}

func TestResolveShop_Fallbacks(t *testing.T) {
	uc, _, active := newShopUseCase(t)
	ctx := context.Background()

	_, err := uc.ResolveShop(ctx, owner("u1"), "")
	require.ErrorIs(t, err, domain.ErrNoActiveShop)

	a, _ := uc.CreateShop(ctx, owner("u1"), dto.CreateShopRequest{Name: "A"})
	b, _ := uc.CreateShop(ctx, owner("u1"), dto.CreateShopRequest{Name: "B"})
	other, _ := uc.CreateShop(ctx, owner("u2"), dto.CreateShopRequest{Name: "Ajena"})

	got, err := uc.ResolveShop(ctx, owner("u1"), b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID, "la solicitada gana si es propia")

	got, err = uc.ResolveShop(ctx, owner("u1"), other.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID, "una tienda ajena cae a la activa")

	require.NoError(t, active.Clear(ctx, "u1"))
	got, err = uc.ResolveShop(ctx, owner("u1"), "")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	id, _ := active.Get(ctx, "u1")
	assert.Equal(t, a.ID, id, "la primera tienda queda persistida como activa")
}

func TestSetActiveShop_SoloPropias(t *testing.T) {
	uc, _, _ := newShopUseCase(t)
	ctx := context.Background()

	_, _ = uc.CreateShop(ctx, owner("u1"), dto.CreateShopRequest{Name: "A"})
	other, _ := uc.CreateShop(ctx, owner("u2"), dto.CreateShopRequest{Name: "B"})

	_, err := uc.SetActiveShop(ctx, owner("u1"), other.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateShop_CambioParcial(t *testing.T) {
	uc, _, _ := newShopUseCase(t)
	ctx := context.Background()

	s, _ := uc.CreateShop(ctx, owner("u1"), dto.CreateShopRequest{Name: "A", Phone: "123"})
	email := "alertas@tienda.co"
	updated, err := uc.UpdateShop(ctx, owner("u1"), s.ID, dto.UpdateShopRequest{NotificationEmail: &email})
	require.NoError(t, err)
	assert.Equal(t, "A", updated.Name)
	assert.Equal(t, "123", updated.Phone)
	assert.Equal(t, email, updated.NotificationEmail)

	empty := " "
	_, err = uc.UpdateShop(ctx, owner("u1"), s.ID, dto.UpdateShopRequest{Name: &empty})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

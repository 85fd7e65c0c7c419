package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/MultiTienda-api/internal/application/ports"
	"github.com/jhoicas/MultiTienda-api/internal/domain"
	"github.com/jhoicas/MultiTienda-api/internal/domain/entity"
	"github.com/jhoicas/MultiTienda-api/internal/domain/repository"
)

func seedShop(t *testing.T, s *Store, id, owner string, at time.Time) {
	t.Helper()
	require.NoError(t, s.Repos().Shops.Create(context.Background(), &entity.Shop{
		ID: id, OwnerID: owner, Name: id, CreatedAt: at, UpdatedAt: at,
	}))
}

func seedProduct(t *testing.T, s *Store, id, shopID string, stock int) {
	t.Helper()
	require.NoError(t, s.Repos().Products.Create(context.Background(), &entity.Product{
		ID: id, ShopID: shopID, Name: id, SKU: "SKU-" + id, Category: "general",
		UnitPrice: decimal.NewFromInt(5), CurrentStock: stock, OpeningStock: stock,
	}))
}

func TestTxRunner_ErrorDeshaceTodasLasEscrituras(t *testing.T) {
	s := NewStore()
	seedShop(t, s, "shop", "owner", time.Now())
	seedProduct(t, s, "p1", "shop", 10)
	ctx := context.Background()
	boom := errors.New("boom")

	err := NewTxRunner(s).Run(ctx, []string{ports.ProductLockKey("p1")}, func(tx repository.Tx) error {
		require.NoError(t, tx.Products.UpdateStock(ctx, "p1", 3, time.Now()))
		require.NoError(t, tx.Transactions.Create(ctx, &entity.InventoryTransaction{
			ID: "t1", ProductID: "p1", ShopID: "shop", QuantityChange: -7, Type: entity.TransactionTypeOUT,
			Reason: entity.ReasonSale, Timestamp: time.Now(),
		}))
		require.NoError(t, tx.Sales.Create(ctx, &entity.Sale{ID: "s1", ShopID: "shop", ProductID: "p1", Quantity: 7}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	p, err := s.Repos().Products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 10, p.CurrentStock)
	txs, err := s.Repos().Transactions.ListByShop(ctx, "shop", "")
	require.NoError(t, err)
	assert.Empty(t, txs)
	sales, err := s.Repos().Sales.List(ctx, repository.SaleFilter{ShopID: "shop"})
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestTxRunner_PanicDeshaceYPropaga(t *testing.T) {
	s := NewStore()
	seedShop(t, s, "shop", "owner", time.Now())
	seedProduct(t, s, "p1", "shop", 4)
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = NewTxRunner(s).Run(ctx, []string{ports.ProductLockKey("p1")}, func(tx repository.Tx) error {
			_ = tx.Products.UpdateStock(ctx, "p1", 0, time.Now())
			panic("fallo inesperado")
		})
	})
	p, _ := s.Repos().Products.GetByID(ctx, "p1")
	assert.Equal(t, 4, p.CurrentStock)

	// el bloqueo quedó liberado
	err := NewTxRunner(s).Run(ctx, []string{ports.ProductLockKey("p1")}, func(repository.Tx) error { return nil })
	assert.NoError(t, err)
}

func TestTxRunner_MismaClaveSerializa(t *testing.T) {
	s := NewStore()
	seedShop(t, s, "shop", "owner", time.Now())
	seedProduct(t, s, "p1", "shop", 0)
	ctx := context.Background()
	runner := NewTxRunner(s)

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := runner.Run(ctx, []string{ports.ProductLockKey("p1")}, func(tx repository.Tx) error {
				p, err := tx.Products.GetForUpdate(ctx, "p1")
				if err != nil {
					return err
				}
				return tx.Products.UpdateStock(ctx, "p1", p.CurrentStock+1, time.Now())
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	p, _ := s.Repos().Products.GetByID(ctx, "p1")
	assert.Equal(t, workers, p.CurrentStock)
}

func TestTxRunner_LectoresNoVenEscriturasAMedias(t *testing.T) {
	s := NewStore()
	seedShop(t, s, "shop", "owner", time.Now())
	seedProduct(t, s, "p1", "shop", 20)
	ctx := context.Background()
	paused := make(chan struct{})
	release := make(chan struct{})

	done := make(chan error, 1)
	go func() {
		done <- NewTxRunner(s).Run(ctx, []string{ports.ProductLockKey("p1")}, func(tx repository.Tx) error {
			if err := tx.Products.UpdateStock(ctx, "p1", 17, time.Now()); err != nil {
				return err
			}
			close(paused)
			<-release
			return tx.Sales.Create(ctx, &entity.Sale{ID: "s1", ShopID: "shop", ProductID: "p1", Quantity: 3, Timestamp: time.Now()})
		})
	}()
	<-paused

	type snapshot struct{ stock, sales int }
	seen := make(chan snapshot, 1)
	go func() {
		p, _ := s.Repos().Products.GetByID(ctx, "p1")
		list, _ := s.Repos().Sales.List(ctx, repository.SaleFilter{ShopID: "shop"})
		seen <- snapshot{p.CurrentStock, len(list)}
	}()

	assert.Never(t, func() bool { return len(seen) > 0 }, 50*time.Millisecond, 5*time.Millisecond,
		"la lectura espera a que la transacción termine")
	close(release)
	require.NoError(t, <-done)
	got := <-seen
	assert.Equal(t, snapshot{stock: 17, sales: 1}, got)
}

func TestTxRunner_RollbackConservaEdicionConcurrente(t *testing.T) {
	s := NewStore()
	seedShop(t, s, "shop", "owner", time.Now())
	seedProduct(t, s, "a", "shop", 10)
	ctx := context.Background()
	started := make(chan struct{})
	edited := make(chan error, 1)

	err := NewTxRunner(s).Run(ctx, []string{ports.ProductLockKey("a")}, func(tx repository.Tx) error {
		require.NoError(t, tx.Products.UpdateStock(ctx, "a", 11, time.Now()))
		go func() {
			close(started)
			p, _ := s.Repos().Products.GetByID(ctx, "a")
			p.Name = "nuevo-a"
			p.UnitPrice = decimal.NewFromInt(99)
			edited <- s.Repos().Products.Update(ctx, p)
		}()
		<-started
		return errors.New("falla el lote")
	})
	require.Error(t, err)
	require.NoError(t, <-edited)

	p, _ := s.Repos().Products.GetByID(ctx, "a")
	assert.Equal(t, "nuevo-a", p.Name)
	assert.True(t, decimal.NewFromInt(99).Equal(p.UnitPrice))
	assert.Equal(t, 10, p.CurrentStock)
}

func TestProductRepo_UndoDeStockNoPisaElCatalogo(t *testing.T) {
	s := NewStore()
	seedShop(t, s, "shop", "owner", time.Now())
	seedProduct(t, s, "a", "shop", 10)
	ctx := context.Background()

	err := NewTxRunner(s).Run(ctx, []string{ports.ProductLockKey("a")}, func(tx repository.Tx) error {
		require.NoError(t, tx.Products.UpdateStock(ctx, "a", 4, time.Now()))
		p, err := tx.Products.GetByID(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, 4, p.CurrentStock, "la transacción lee sus propias escrituras")
		p.Name = "renombrado"
		require.NoError(t, tx.Products.Update(ctx, p))
		return errors.New("abortar")
	})
	require.Error(t, err)

	p, _ := s.Repos().Products.GetByID(ctx, "a")
	assert.Equal(t, "a", p.Name)
	assert.Equal(t, 10, p.CurrentStock)
}

func TestKeyedLocker_RespetaCancelacion(t *testing.T) {
	l := newKeyedLocker()
	release, err := l.lockAll(context.Background(), []string{"a"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.lockAll(ctx, []string{"b", "a"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	release()
	// "b" se liberó al fallar "a"; ambas quedan libres
	release, err = l.lockAll(context.Background(), []string{"a", "b", "a"})
	require.NoError(t, err)
	release()
	assert.Empty(t, l.locks)
}

func TestShopRepo_DeleteEnCascadaYRollback(t *testing.T) {
	s := NewStore()
	now := time.Now()
	seedShop(t, s, "a", "owner", now)
	seedShop(t, s, "b", "owner", now)
	seedProduct(t, s, "pa", "a", 5)
	seedProduct(t, s, "pb", "b", 5)
	ctx := context.Background()
	repos := s.Repos()
	require.NoError(t, repos.Transactions.Create(ctx, &entity.InventoryTransaction{ID: "ta", ProductID: "pa", ShopID: "a", QuantityChange: 1, Timestamp: now}))
	require.NoError(t, repos.Sales.Create(ctx, &entity.Sale{ID: "sa", ShopID: "a", ProductID: "pa", Timestamp: now}))
	require.NoError(t, repos.Preferences.Upsert(ctx, entity.DefaultNotificationPreferences("a")))

	// rollback: todo vuelve
	err := NewTxRunner(s).Run(ctx, []string{ports.OwnerLockKey("owner")}, func(tx repository.Tx) error {
		require.NoError(t, tx.Shops.Delete(ctx, "a"))
		return errors.New("abortar")
	})
	require.Error(t, err)
	shop, _ := repos.Shops.GetByID(ctx, "a")
	require.NotNil(t, shop)
	p, _ := repos.Products.GetByID(ctx, "pa")
	require.NotNil(t, p)
	txs, _ := repos.Transactions.ListByShop(ctx, "a", "")
	assert.Len(t, txs, 1)
	prefs, _ := repos.Preferences.Get(ctx, "a")
	assert.NotNil(t, prefs)

	// borrado real
	require.NoError(t, repos.Shops.Delete(ctx, "a"))
	shop, _ = repos.Shops.GetByID(ctx, "a")
	assert.Nil(t, shop)
	p, _ = repos.Products.GetByID(ctx, "pa")
	assert.Nil(t, p)
	sales, _ := repos.Sales.List(ctx, repository.SaleFilter{ShopID: "a"})
	assert.Empty(t, sales)
	p, _ = repos.Products.GetByID(ctx, "pb")
	assert.NotNil(t, p, "la otra tienda no se toca")
}

func TestShopRepo_ListByOwnerEnOrdenDeCreacion(t *testing.T) {
	s := NewStore()
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	seedShop(t, s, "z", "owner", at)
	seedShop(t, s, "a", "owner", at)
	seedShop(t, s, "m", "otro", at)

	shops, err := s.Repos().Shops.ListByOwner(context.Background(), "owner")
	require.NoError(t, err)
	require.Len(t, shops, 2)
	assert.Equal(t, "z", shops[0].ID)
	assert.Equal(t, "a", shops[1].ID)
	n, _ := s.Repos().Shops.CountByOwner(context.Background(), "owner")
	assert.Equal(t, 2, n)
}

func TestProductRepo_SKUUnicoPorTienda(t *testing.T) {
	s := NewStore()
	seedShop(t, s, "a", "owner", time.Now())
	seedShop(t, s, "b", "owner", time.Now())
	seedProduct(t, s, "p1", "a", 1)
	ctx := context.Background()

	err := s.Repos().Products.Create(ctx, &entity.Product{ID: "p2", ShopID: "a", SKU: "sku-p1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	err = s.Repos().Products.Create(ctx, &entity.Product{ID: "p3", ShopID: "b", SKU: "SKU-p1"})
	assert.NoError(t, err)
}

func TestProductRepo_UpdateNoTocaElStock(t *testing.T) {
	s := NewStore()
	seedShop(t, s, "a", "owner", time.Now())
	seedProduct(t, s, "p1", "a", 7)
	ctx := context.Background()

	p, _ := s.Repos().Products.GetByID(ctx, "p1")
	p.Name = "Nuevo"
	p.CurrentStock = 999
	require.NoError(t, s.Repos().Products.Update(ctx, p))

	got, _ := s.Repos().Products.GetByID(ctx, "p1")
	assert.Equal(t, "Nuevo", got.Name)
	assert.Equal(t, 7, got.CurrentStock)
}

func TestRepos_DevuelvenCopias(t *testing.T) {
	s := NewStore()
	seedShop(t, s, "a", "owner", time.Now())
	seedProduct(t, s, "p1", "a", 7)
	ctx := context.Background()

	p, _ := s.Repos().Products.GetByID(ctx, "p1")
	p.CurrentStock = 0
	again, _ := s.Repos().Products.GetByID(ctx, "p1")
	assert.Equal(t, 7, again.CurrentStock)
}

func TestUserRepo_EmailUnico(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.Repos().Users.Create(ctx, &entity.User{ID: "u1", Email: "ana@tienda.co"}))
	err := s.Repos().Users.Create(ctx, &entity.User{ID: "u2", Email: "ANA@tienda.co"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	u, err := s.Repos().Users.GetByEmail(ctx, "Ana@Tienda.co")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "u1", u.ID)
}

func TestTokenRevocationStore_Vencimiento(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewTokenRevocationStore()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Revoke(ctx, "jti", now.Add(time.Minute)))
	revoked, _ := store.IsRevoked(ctx, "jti")
	assert.True(t, revoked)

	now = now.Add(2 * time.Minute)
	revoked, _ = store.IsRevoked(ctx, "jti")
	assert.False(t, revoked)
}

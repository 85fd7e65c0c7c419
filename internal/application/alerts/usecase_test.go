package alerts_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/MultiTienda-api/internal/application/alerts"
	"github.com/jhoicas/MultiTienda-api/internal/application/dto"
	"github.com/jhoicas/MultiTienda-api/internal/application/inventory"
	"github.com/jhoicas/MultiTienda-api/internal/application/ports"
	"github.com/jhoicas/MultiTienda-api/internal/application/usecase"
	"github.com/jhoicas/MultiTienda-api/internal/domain"
	"github.com/jhoicas/MultiTienda-api/internal/domain/entity"
	"github.com/jhoicas/MultiTienda-api/internal/infrastructure/memory"
)

type recordingNotifier struct {
	mu     sync.Mutex
	alerts []ports.LowStockAlert
	err    error
}

func (n *recordingNotifier) Notify(_ context.Context, a ports.LowStockAlert) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.alerts = append(n.alerts, a)
	return nil
}

type alertsFixture struct {
	store    *memory.Store
	ledger   *inventory.LedgerUseCase
	uc       *alerts.AlertsUseCase
	notifier *recordingNotifier
	scope    ports.Scope
}

func newAlertsFixture(t *testing.T) *alertsFixture {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	ctx := context.Background()
	require.NoError(t, repos.Shops.Create(ctx, &entity.Shop{ID: "shop-1", OwnerID: "owner", Name: "Centro", Email: "centro@tienda.co"}))
	require.NoError(t, repos.Preferences.Upsert(ctx, entity.DefaultNotificationPreferences("shop-1")))
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{
		ID: "p1", ShopID: "shop-1", Name: "Café", SKU: "CAF-1", Category: "bebidas",
		UnitPrice: decimal.NewFromInt(3), CurrentStock: 12, OpeningStock: 12, ReorderThreshold: 10,
	}))

	runner := memory.NewTxRunner(store)
	policy := inventory.NewPolicyResolver(repos.Preferences, decimal.Zero)
	catalog := usecase.NewProductUseCase(runner, repos.Products, policy)
	notifier := &recordingNotifier{}
	uc := alerts.NewAlertsUseCase(repos.Preferences, repos.Shops, catalog, policy, notifier, nil, nil)
	ledger := inventory.NewLedgerUseCase(runner, repos.Products, repos.Transactions, policy, nil, nil)
	ledger.SetObserver(uc)
	return &alertsFixture{store: store, ledger: ledger, uc: uc, notifier: notifier, scope: ports.Scope{UserID: "owner", ShopID: "shop-1"}}
}

func (f *alertsFixture) adjust(t *testing.T, change int) {
	t.Helper()
	_, err := f.ledger.AdjustStock(context.Background(), f.scope, dto.AdjustStockRequest{ProductID: "p1", QuantityChange: change})
	require.NoError(t, err)
}

func TestStockChanged_SoloDisparaConStockBajo(t *testing.T) {
	f := newAlertsFixture(t)

	f.adjust(t, -1) // 11, no es bajo
	assert.Empty(t, f.notifier.alerts)

	f.adjust(t, -3) // 8 < 10
	require.Len(t, f.notifier.alerts, 1)
	a := f.notifier.alerts[0]
	assert.Equal(t, "p1", a.ProductID)
	assert.Equal(t, "Centro", a.ShopName)
	assert.Equal(t, 8, a.CurrentStock)
	assert.Equal(t, 2, a.Deficit)
	assert.False(t, a.Critical)
	assert.Equal(t, []string{alerts.ChannelEmail}, a.Channels)
	assert.Equal(t, []string{"centro@tienda.co"}, a.Recipients)

	f.adjust(t, -5) // 3 < 5 crítico
	require.Len(t, f.notifier.alerts, 2)
	assert.True(t, f.notifier.alerts[1].Critical)
}

func TestStockChanged_SinCanalesNoEnvia(t *testing.T) {
	f := newAlertsFixture(t)
	off := false
	_, err := f.uc.UpdatePreferences(context.Background(), f.scope, dto.UpdatePreferencesRequest{EmailEnabled: &off})
	require.NoError(t, err)

	f.adjust(t, -10)
	assert.Empty(t, f.notifier.alerts)
}

func TestStockChanged_ErrorDelNotificadorNoRevierteElAjuste(t *testing.T) {
	f := newAlertsFixture(t)
	f.notifier.err = errors.New("broker caído")

	f.adjust(t, -10)
	p, err := f.store.Repos().Products.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 2, p.CurrentStock)
}

func TestUpdatePreferences_CambioParcialYRango(t *testing.T) {
	f := newAlertsFixture(t)
	ctx := context.Background()

	on := true
	phone := "+57 300 000 0000"
	prefs, err := f.uc.UpdatePreferences(ctx, f.scope, dto.UpdatePreferencesRequest{SMSEnabled: &on, Phone: &phone})
	require.NoError(t, err)
	assert.True(t, prefs.EmailEnabled)
	assert.True(t, prefs.SMSEnabled)
	assert.Equal(t, 100, prefs.LowStockThresholdPercent)

	bad := 0
	_, err = f.uc.UpdatePreferences(ctx, f.scope, dto.UpdatePreferencesRequest{LowStockThresholdPercent: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := f.uc.GetPreferences(ctx, f.scope)
	require.NoError(t, err)
	assert.Equal(t, phone, got.Phone)
}

func TestGetPreferences_PorDefectoSiNoExisten(t *testing.T) {
	f := newAlertsFixture(t)
	prefs, err := f.uc.GetPreferences(context.Background(), ports.Scope{UserID: "owner", ShopID: "sin-prefs"})
	require.NoError(t, err)
	assert.True(t, prefs.EmailEnabled)
	assert.False(t, prefs.SMSEnabled)
}

func TestSendTestAlert(t *testing.T) {
	f := newAlertsFixture(t)
	ctx := context.Background()

	resp, err := f.uc.SendTestAlert(ctx, f.scope)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	require.Len(t, f.notifier.alerts, 1)
	assert.True(t, f.notifier.alerts[0].Test)

	off := false
	_, err = f.uc.UpdatePreferences(ctx, f.scope, dto.UpdatePreferencesRequest{EmailEnabled: &off})
	require.NoError(t, err)
	resp, err = f.uc.SendTestAlert(ctx, f.scope)
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Len(t, f.notifier.alerts, 1)
}

func TestTriggerLowStockAlert_Manual(t *testing.T) {
	f := newAlertsFixture(t)
	ctx := context.Background()

	resp, err := f.uc.TriggerLowStockAlert(ctx, f.scope, "p1")
	require.NoError(t, err)
	assert.True(t, resp.Sent)
	assert.Equal(t, []string{alerts.ChannelEmail}, resp.Channels)

	_, err = f.uc.TriggerLowStockAlert(ctx, f.scope, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.uc.TriggerLowStockAlert(ctx, f.scope, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

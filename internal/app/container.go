// Package app arma los adaptadores según BACKEND_MODE y expone las dependencias del router.
package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/jhoicas/MultiTienda-api/internal/application/alerts"
	"github.com/jhoicas/MultiTienda-api/internal/application/analytics"
	"github.com/jhoicas/MultiTienda-api/internal/application/auth"
	"github.com/jhoicas/MultiTienda-api/internal/application/demo"
	"github.com/jhoicas/MultiTienda-api/internal/application/inventory"
	"github.com/jhoicas/MultiTienda-api/internal/application/ports"
	"github.com/jhoicas/MultiTienda-api/internal/application/sales"
	"github.com/jhoicas/MultiTienda-api/internal/application/shop"
	"github.com/jhoicas/MultiTienda-api/internal/application/usecase"
	"github.com/jhoicas/MultiTienda-api/internal/domain/repository"
	"github.com/jhoicas/MultiTienda-api/internal/infrastructure/memory"
	"github.com/jhoicas/MultiTienda-api/internal/infrastructure/notifier"
	infrapdf "github.com/jhoicas/MultiTienda-api/internal/infrastructure/pdf"
	"github.com/jhoicas/MultiTienda-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/MultiTienda-api/internal/infrastructure/redis"
	"github.com/jhoicas/MultiTienda-api/internal/infrastructure/remote"
	httpRouter "github.com/jhoicas/MultiTienda-api/internal/interfaces/http"
	"github.com/jhoicas/MultiTienda-api/pkg/config"
	"github.com/jhoicas/MultiTienda-api/pkg/logger"
	"github.com/jhoicas/MultiTienda-api/pkg/metrics"
)

// Container recursos de larga vida y casos de uso del proceso.
type Container struct {
	cfg *config.Config
	log *logger.Logger
	reg *prometheus.Registry

	storeMetrics *metrics.StoreMetrics
	httpMetrics  *metrics.HTTPMetrics

	// repositorios locales; en modo remoto solo usuarios y preferencias
	users    repository.UserRepository
	prefs    repository.PreferencesRepository
	shopRepo repository.ShopRepository
	active   repository.ActiveShopStore
	revoked  repository.TokenRevocationStore

	Shops     ports.ShopStore
	Catalog   ports.CatalogStore
	Inventory ports.InventoryStore
	Sales     ports.SalesStore

	AuthUC      *auth.AuthUseCase
	AlertsUC    *alerts.AlertsUseCase
	DashboardUC *analytics.DashboardUseCase
	Receipts    *sales.ReceiptUseCase

	closers []func() error
}

// NewContainer construye todo. Ante un error libera lo ya abierto.
func NewContainer(ctx context.Context, cfg *config.Config, log *logger.Logger, reg *prometheus.Registry) (*Container, error) {
	if log == nil {
		log = logger.NewNop()
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	c := &Container{
		cfg:          cfg,
		log:          log,
		reg:          reg,
		storeMetrics: metrics.NewStoreMetrics(reg),
		httpMetrics:  metrics.NewHTTPMetrics(reg),
	}
	abort := func(err error) (*Container, error) {
		_ = c.Close()
		return nil, err
	}

	if err := c.setupSession(ctx); err != nil {
		return abort(err)
	}
	alertNotifier, err := c.setupNotifier()
	if err != nil {
		return abort(err)
	}
	policy, ledger, salesUC, err := c.setupBackend(ctx)
	if err != nil {
		return abort(err)
	}

	c.AuthUC = auth.NewAuthUseCase(c.users, c.Shops, c.revoked, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)
	c.AlertsUC = alerts.NewAlertsUseCase(c.prefs, c.shopRepo, c.Catalog, policy, alertNotifier, c.storeMetrics, log)
	c.DashboardUC = analytics.NewDashboardUseCase(c.Catalog, c.Sales)
	c.Receipts = sales.NewReceiptUseCase(c.Sales, infrapdf.NewReceiptGenerator())

	// Con backend local las alertas automáticas salen de ajustes y ventas; en modo
	// remoto las dispara el backend remoto.
	if ledger != nil {
		ledger.SetObserver(c.AlertsUC)
	}
	if salesUC != nil {
		salesUC.SetObserver(c.AlertsUC)
	}

	log.Info().
		Str("mode", cfg.Store.Mode).
		Int("shop_limit", cfg.Store.ShopLimit).
		Bool("redis", cfg.Redis.Enabled()).
		Bool("kafka", len(cfg.Alerts.KafkaBrokers) > 0).
		Msg("contenedor inicializado")
	return c, nil
}

func (c *Container) setupSession(ctx context.Context) error {
	if !c.cfg.Redis.Enabled() {
		c.active = memory.NewActiveShopStore()
		c.revoked = memory.NewTokenRevocationStore()
		return nil
	}
	client, err := infraredis.New(ctx, c.cfg.Redis)
	if err != nil {
		return fmt.Errorf("conexión a Redis: %w", err)
	}
	c.closers = append(c.closers, client.Close)
	c.active = client
	c.revoked = client
	return nil
}

func (c *Container) setupNotifier() (ports.AlertNotifier, error) {
	if len(c.cfg.Alerts.KafkaBrokers) == 0 {
		return notifier.NewLogNotifier(c.log), nil
	}
	pub, err := notifier.NewKafkaPublisher(c.cfg.Alerts.KafkaBrokers, c.cfg.Alerts.KafkaTopic, c.log)
	if err != nil {
		return nil, fmt.Errorf("publicador Kafka: %w", err)
	}
	c.closers = append(c.closers, pub.Close)
	return pub, nil
}

// setupBackend elige los adaptadores de los stores. Devuelve los casos de uso locales
// (nil en modo remoto) para registrar el observador de alertas.
func (c *Container) setupBackend(ctx context.Context) (*inventory.PolicyResolver, *inventory.LedgerUseCase, *sales.SalesUseCase, error) {
	switch c.cfg.Store.Mode {
	case config.BackendRemote:
		client, err := remote.NewClient(c.cfg.Remote, c.log)
		if err != nil {
			return nil, nil, nil, err
		}
		// Usuarios y preferencias siguen siendo locales; el token se reenvía.
		store := memory.NewStore()
		repos := store.Repos()
		c.users = repos.Users
		c.prefs = repos.Preferences
		c.Shops, c.Catalog, c.Inventory, c.Sales = client, client, client, client
		return inventory.NewPolicyResolver(c.prefs, c.cfg.Store.CriticalStockRatio), nil, nil, nil

	case config.BackendPostgres:
		pool, err := postgres.NewPool(ctx, c.cfg.DB)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		c.closers = append(c.closers, func() error { pool.Close(); return nil })
		if err := postgres.Migrate(ctx, pool); err != nil {
			return nil, nil, nil, fmt.Errorf("migraciones: %w", err)
		}
		return c.wireLocal(postgresRepos(pool, c.active))

	default:
		store := memory.NewStore()
		repos := store.Repos()
		return c.wireLocal(localRepos{
			txRunner:     memory.NewTxRunner(store),
			users:        repos.Users,
			shops:        repos.Shops,
			products:     repos.Products,
			transactions: repos.Transactions,
			sales:        repos.Sales,
			prefs:        repos.Preferences,
			active:       c.active,
		})
	}
}

type localRepos struct {
	txRunner     ports.TxRunner
	users        repository.UserRepository
	shops        repository.ShopRepository
	products     repository.ProductRepository
	transactions repository.TransactionRepository
	sales        repository.SaleRepository
	prefs        repository.PreferencesRepository
	active       repository.ActiveShopStore
}

// postgresRepos con Redis configurado la tienda activa vive en Redis; si no, en la tabla active_shops.
func postgresRepos(pool *pgxpool.Pool, active repository.ActiveShopStore) localRepos {
	if _, ok := active.(*memory.ActiveShopStore); ok {
		active = postgres.NewActiveShopRepository(pool)
	}
	return localRepos{
		txRunner:     postgres.NewTxRunner(pool),
		users:        postgres.NewUserRepository(pool),
		shops:        postgres.NewShopRepository(pool),
		products:     postgres.NewProductRepository(pool),
		transactions: postgres.NewTransactionRepository(pool),
		sales:        postgres.NewSaleRepository(pool),
		prefs:        postgres.NewPreferencesRepository(pool),
		active:       active,
	}
}

func (c *Container) wireLocal(r localRepos) (*inventory.PolicyResolver, *inventory.LedgerUseCase, *sales.SalesUseCase, error) {
	c.users = r.users
	c.prefs = r.prefs
	c.shopRepo = r.shops
	c.active = r.active

	policy := inventory.NewPolicyResolver(r.prefs, c.cfg.Store.CriticalStockRatio)
	ledger := inventory.NewLedgerUseCase(r.txRunner, r.products, r.transactions, policy, c.storeMetrics, c.log)
	salesUC := sales.NewSalesUseCase(r.txRunner, r.sales, c.storeMetrics, c.log)

	c.Shops = shop.NewShopUseCase(r.txRunner, r.shops, r.active, c.cfg.Store.ShopLimit, c.storeMetrics, c.log)
	c.Catalog = usecase.NewProductUseCase(r.txRunner, r.products, policy)
	c.Inventory = ledger
	c.Sales = salesUC
	return policy, ledger, salesUC, nil
}

// RouterDeps dependencias para httpRouter.Router.
func (c *Container) RouterDeps() httpRouter.RouterDeps {
	return httpRouter.RouterDeps{
		AuthUC:      c.AuthUC,
		Shops:       c.Shops,
		Catalog:     c.Catalog,
		Inventory:   c.Inventory,
		Sales:       c.Sales,
		Receipts:    c.Receipts,
		AlertsUC:    c.AlertsUC,
		DashboardUC: c.DashboardUC,
		Logger:      c.log,
		HTTPMetrics: c.httpMetrics,
		Gatherer:    c.reg,
	}
}

// Seeder carga de datos demo sobre los stores configurados.
func (c *Container) Seeder() *demo.Seeder {
	return demo.NewSeeder(c.AuthUC, c.Shops, c.Catalog, c.Sales, c.log)
}

// Close libera conexiones en orden inverso de apertura.
func (c *Container) Close() error {
	var errs error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = multierr.Append(errs, c.closers[i]())
	}
	c.closers = nil
	return errs
}

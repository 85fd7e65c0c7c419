package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/MultiTienda-api/internal/application/alerts"
	"github.com/jhoicas/MultiTienda-api/internal/application/analytics"
	"github.com/jhoicas/MultiTienda-api/internal/application/auth"
	"github.com/jhoicas/MultiTienda-api/internal/application/ports"
	"github.com/jhoicas/MultiTienda-api/internal/application/sales"
	"github.com/jhoicas/MultiTienda-api/internal/domain/entity"
	"github.com/jhoicas/MultiTienda-api/pkg/logger"
	"github.com/jhoicas/MultiTienda-api/pkg/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	Shops       ports.ShopStore
	Catalog     ports.CatalogStore
	Inventory   ports.InventoryStore
	Sales       ports.SalesStore
	Receipts    *sales.ReceiptUseCase
	AlertsUC    *alerts.AlertsUseCase
	DashboardUC *analytics.DashboardUseCase

	Logger      *logger.Logger
	HTTPMetrics *metrics.HTTPMetrics
	Gatherer    prometheus.Gatherer // nil: sin /metrics
}

// Router registra middlewares globales y las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.NewNop()
	}

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{ContextKey: LocalRequestID}))
	app.Use(RequestLogger(log.Named("http"), deps.HTTPMetrics))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/signup", authHandler.SignUp)
	authGroup.Post("/signin", authHandler.SignIn)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("", AuthMiddleware(deps.AuthUC))
	protected.Post("/auth/signout", authHandler.SignOut)
	protected.Get("/auth/me", authHandler.Me)

	// Shops: registro del propietario, no dependen de la tienda activa
	shopHandler := NewShopHandler(deps.Shops)
	shops := protected.Group("/shops")
	shops.Get("/", shopHandler.List)
	shops.Post("/", RequireRole(entity.RoleOwner), shopHandler.Create)
	shops.Put("/:id", RequireRole(entity.RoleOwner), shopHandler.Update)
	shops.Delete("/:id", RequireRole(entity.RoleOwner), shopHandler.Delete)
	shops.Put("/:id/active", shopHandler.SetActive)

	// A partir de aquí todo opera sobre la tienda activa (o X-Shop-ID)
	scoped := protected.Group("", ShopContext(deps.Shops))

	productHandler := NewProductHandler(deps.Catalog)
	products := scoped.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/categories", productHandler.Categories)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	inventoryHandler := NewInventoryHandler(deps.Inventory)
	inv := scoped.Group("/inventory")
	inv.Get("/", inventoryHandler.List)
	inv.Post("/adjust", inventoryHandler.Adjust)
	inv.Post("/bulk-adjust", inventoryHandler.BulkAdjust)
	inv.Get("/transactions", inventoryHandler.Transactions)
	inv.Get("/:productId/reconcile", inventoryHandler.Reconcile)

	salesHandler := NewSalesHandler(deps.Sales, deps.Receipts)
	salesGroup := scoped.Group("/sales")
	salesGroup.Get("/", salesHandler.List)
	salesGroup.Post("/", salesHandler.Record)
	salesGroup.Get("/stats", salesHandler.Stats)
	salesGroup.Get("/top-products", salesHandler.TopProducts)
	salesGroup.Get("/trend", salesHandler.Trend)
	salesGroup.Get("/:id", salesHandler.GetByID)
	salesGroup.Get("/:id/receipt", salesHandler.Receipt)

	alertsHandler := NewAlertsHandler(deps.AlertsUC)
	alertsGroup := scoped.Group("/alerts")
	alertsGroup.Get("/preferences", alertsHandler.GetPreferences)
	alertsGroup.Put("/preferences", alertsHandler.UpdatePreferences)
	alertsGroup.Post("/test", alertsHandler.SendTest)
	alertsGroup.Post("/low-stock", alertsHandler.TriggerLowStock)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	scoped.Get("/dashboard", dashboardHandler.Get)
	scoped.Get("/analytics/categories", dashboardHandler.Categories)
}

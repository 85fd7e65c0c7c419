package alerts

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/MultiTienda-api/internal/application/dto"
	"github.com/jhoicas/MultiTienda-api/internal/application/inventory"
	"github.com/jhoicas/MultiTienda-api/internal/application/ports"
	"github.com/jhoicas/MultiTienda-api/internal/domain"
	"github.com/jhoicas/MultiTienda-api/internal/domain/entity"
	domaininv "github.com/jhoicas/MultiTienda-api/internal/domain/inventory"
	"github.com/jhoicas/MultiTienda-api/internal/domain/repository"
	"github.com/jhoicas/MultiTienda-api/pkg/logger"
	"github.com/jhoicas/MultiTienda-api/pkg/metrics"
)

var _ inventory.LowStockObserver = (*AlertsUseCase)(nil)

// Canales de notificación.
const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

// AlertsUseCase preferencias de notificación y envío de alertas de stock bajo.
type AlertsUseCase struct {
	prefsRepo repository.PreferencesRepository
	shopRepo  repository.ShopRepository
	catalog   ports.CatalogStore
	policy    *inventory.PolicyResolver
	notifier  ports.AlertNotifier
	metrics   *metrics.StoreMetrics
	log       *logger.Logger
	now       func() time.Time
}

// NewAlertsUseCase construye el caso de uso.
func NewAlertsUseCase(
	prefsRepo repository.PreferencesRepository,
	shopRepo repository.ShopRepository,
	catalog ports.CatalogStore,
	policy *inventory.PolicyResolver,
	notifier ports.AlertNotifier,
	m *metrics.StoreMetrics,
	log *logger.Logger,
) *AlertsUseCase {
	if log == nil {
		log = logger.NewNop()
	}
	return &AlertsUseCase{
		prefsRepo: prefsRepo,
		shopRepo:  shopRepo,
		catalog:   catalog,
		policy:    policy,
		notifier:  notifier,
		metrics:   m,
		log:       log.Named("alerts"),
		now:       time.Now,
	}
}

// GetPreferences preferencias de la tienda; valores por defecto si nunca se guardaron.
func (uc *AlertsUseCase) GetPreferences(ctx context.Context, scope ports.Scope) (*dto.PreferencesResponse, error) {
	prefs, err := uc.load(ctx, scope.ShopID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToPreferencesResponse(prefs)
	return &resp, nil
}

// UpdatePreferences aplica un cambio parcial.
func (uc *AlertsUseCase) UpdatePreferences(ctx context.Context, scope ports.Scope, req dto.UpdatePreferencesRequest) (*dto.PreferencesResponse, error) {
	prefs, err := uc.load(ctx, scope.ShopID)
	if err != nil {
		return nil, err
	}
	if req.EmailEnabled != nil {
		prefs.EmailEnabled = *req.EmailEnabled
	}
	if req.SMSEnabled != nil {
		prefs.SMSEnabled = *req.SMSEnabled
	}
	if req.Email != nil {
		prefs.Email = *req.Email
	}
	if req.Phone != nil {
		prefs.Phone = *req.Phone
	}
	if req.LowStockThresholdPercent != nil {
		p := *req.LowStockThresholdPercent
		if p < 1 || p > 1000 {
			return nil, domain.Invalid("lowStockThresholdPercent", "debe estar entre 1 y 1000")
		}
		prefs.LowStockThresholdPercent = p
	}
	if err := uc.prefsRepo.Upsert(ctx, prefs); err != nil {
		return nil, err
	}
	resp := dto.ToPreferencesResponse(prefs)
	return &resp, nil
}

// SendTestAlert envía una alerta de prueba por los canales habilitados.
func (uc *AlertsUseCase) SendTestAlert(ctx context.Context, scope ports.Scope) (*dto.SuccessResponse, error) {
	prefs, err := uc.load(ctx, scope.ShopID)
	if err != nil {
		return nil, err
	}
	if !prefs.AnyChannelEnabled() {
		return &dto.SuccessResponse{Success: false, Message: "No hay canales de notificación habilitados"}, nil
	}
	alert := uc.baseAlert(ctx, scope.ShopID, prefs)
	alert.ProductName = "Producto de prueba"
	alert.Test = true
	if err := uc.send(ctx, alert); err != nil {
		return nil, err
	}
	return &dto.SuccessResponse{Success: true, Message: fmt.Sprintf("Alerta de prueba enviada por %v", alert.Channels)}, nil
}

// TriggerLowStockAlert envía manualmente la alerta de un producto. Sent=false si no hay canales.
func (uc *AlertsUseCase) TriggerLowStockAlert(ctx context.Context, scope ports.Scope, productID string) (*dto.LowStockAlertResponse, error) {
	if productID == "" {
		return nil, domain.Invalid("productId", "es obligatorio")
	}
	product, err := uc.catalog.GetProduct(ctx, scope, productID)
	if err != nil {
		return nil, err
	}
	prefs, err := uc.load(ctx, scope.ShopID)
	if err != nil {
		return nil, err
	}
	if !prefs.AnyChannelEnabled() {
		return &dto.LowStockAlertResponse{Sent: false, Channels: []string{}}, nil
	}
	alert := uc.baseAlert(ctx, scope.ShopID, prefs)
	alert.ProductID = product.ID
	alert.ProductName = product.Name
	alert.SKU = product.SKU
	alert.CurrentStock = product.CurrentStock
	alert.ReorderThreshold = product.ReorderThreshold
	alert.Deficit = product.Status.Deficit
	alert.Critical = product.Status.IsCritical
	if err := uc.send(ctx, alert); err != nil {
		return nil, err
	}
	return &dto.LowStockAlertResponse{Sent: true, Channels: alert.Channels}, nil
}

// StockChanged despacha la alerta si el producto quedó con stock bajo y hay canales activos.
func (uc *AlertsUseCase) StockChanged(ctx context.Context, product *entity.Product) error {
	policy, err := uc.policy.Resolve(ctx, product.ShopID)
	if err != nil {
		return err
	}
	level := domaininv.ClassifyProduct(product, policy)
	if !level.Low {
		return nil
	}
	prefs, err := uc.load(ctx, product.ShopID)
	if err != nil {
		return err
	}
	if !prefs.AnyChannelEnabled() {
		return nil
	}
	alert := uc.baseAlert(ctx, product.ShopID, prefs)
	alert.ProductID = product.ID
	alert.ProductName = product.Name
	alert.SKU = product.SKU
	alert.CurrentStock = product.CurrentStock
	alert.ReorderThreshold = product.ReorderThreshold
	alert.Deficit = level.Deficit
	alert.Critical = level.Critical
	return uc.send(ctx, alert)
}

func (uc *AlertsUseCase) send(ctx context.Context, alert ports.LowStockAlert) error {
	if err := uc.notifier.Notify(ctx, alert); err != nil {
		return fmt.Errorf("enviar alerta: %w", err)
	}
	for _, ch := range alert.Channels {
		uc.metrics.IncAlert(ch)
	}
	uc.log.Info().
		Str("shop_id", alert.ShopID).
		Str("product_id", alert.ProductID).
		Bool("critical", alert.Critical).
		Bool("test", alert.Test).
		Strs("channels", alert.Channels).
		Msg("alerta de stock enviada")
	return nil
}

func (uc *AlertsUseCase) baseAlert(ctx context.Context, shopID string, prefs *entity.NotificationPreferences) ports.LowStockAlert {
	alert := ports.LowStockAlert{ShopID: shopID, ShopName: shopID, OccurredAt: uc.now()}
	var shop *entity.Shop
	if uc.shopRepo != nil {
		s, err := uc.shopRepo.GetByID(ctx, shopID)
		if err != nil {
			uc.log.Warn().Err(err).Str("shop_id", shopID).Msg("no se pudo leer la tienda de la alerta")
		}
		shop = s
	}
	if shop != nil {
		alert.ShopName = shop.Name
	}
	if prefs.EmailEnabled {
		alert.Channels = append(alert.Channels, ChannelEmail)
		if to := firstNonEmpty(prefs.Email, notificationEmail(shop)); to != "" {
			alert.Recipients = append(alert.Recipients, to)
		}
	}
	if prefs.SMSEnabled {
		alert.Channels = append(alert.Channels, ChannelSMS)
		if to := firstNonEmpty(prefs.Phone, notificationPhone(shop)); to != "" {
			alert.Recipients = append(alert.Recipients, to)
		}
	}
	return alert
}

func (uc *AlertsUseCase) load(ctx context.Context, shopID string) (*entity.NotificationPreferences, error) {
	prefs, err := uc.prefsRepo.Get(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if prefs == nil {
		prefs = entity.DefaultNotificationPreferences(shopID)
	}
	return prefs, nil
}

func notificationEmail(s *entity.Shop) string {
	if s == nil {
		return ""
	}
	return firstNonEmpty(s.NotificationEmail, s.Email)
}

func notificationPhone(s *entity.Shop) string {
	if s == nil {
		return ""
	}
	return firstNonEmpty(s.NotificationPhone, s.Phone)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

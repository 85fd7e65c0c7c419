package entity

// DefaultLowStockThresholdPercent 100% = el umbral efectivo es el reorderThreshold del producto.
const DefaultLowStockThresholdPercent = 100

// NotificationPreferences configuración de alertas, una por tienda.
type NotificationPreferences struct {
	ShopID                   string
	EmailEnabled             bool
	SMSEnabled               bool
	Email                    string
	Phone                    string
	LowStockThresholdPercent int
}

// DefaultNotificationPreferences valores iniciales de una tienda.
func DefaultNotificationPreferences(shopID string) *NotificationPreferences {
	return &NotificationPreferences{
		ShopID:                   shopID,
		EmailEnabled:             true,
		LowStockThresholdPercent: DefaultLowStockThresholdPercent,
	}
}

// AnyChannelEnabled true si hay algún canal activo.
func (p *NotificationPreferences) AnyChannelEnabled() bool {
	return p.EmailEnabled || p.SMSEnabled
}

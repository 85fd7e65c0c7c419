// Package notifier adaptadores de salida de alertas de stock bajo.
package notifier

import (
	"context"
	"strings"

	"github.com/jhoicas/MultiTienda-api/internal/application/ports"
	"github.com/jhoicas/MultiTienda-api/pkg/logger"
)

var _ ports.AlertNotifier = (*LogNotifier)(nil)

// LogNotifier registra la alerta como evento estructurado. Es el canal por defecto
// cuando no hay brokers Kafka configurados.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier construye el notifier.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	if log == nil {
		log = logger.NewNop()
	}
	return &LogNotifier{log: log.Named("alert-notifier")}
}

func (n *LogNotifier) Notify(_ context.Context, a ports.LowStockAlert) error {
	ev := n.log.Warn()
	if a.Test {
		ev = n.log.Info()
	}
	ev.Str("shop_id", a.ShopID).
		Str("shop_name", a.ShopName).
		Str("product_id", a.ProductID).
		Str("sku", a.SKU).
		Int("stock", a.CurrentStock).
		Int("reorder_threshold", a.ReorderThreshold).
		Int("deficit", a.Deficit).
		Bool("critical", a.Critical).
		Bool("test", a.Test).
		Str("channels", strings.Join(a.Channels, ",")).
		Strs("recipients", a.Recipients).
		Msg("alerta de stock bajo")
	return nil
}

package sales

import (
	"context"
	"fmt"

	"github.com/jhoicas/MultiTienda-api/internal/application/ports"
)

// ReceiptUseCase genera el comprobante PDF de una venta. Funciona con cualquier SalesStore.
type ReceiptUseCase struct {
	sales    ports.SalesStore
	renderer ports.ReceiptRenderer
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(sales ports.SalesStore, renderer ports.ReceiptRenderer) *ReceiptUseCase {
	return &ReceiptUseCase{sales: sales, renderer: renderer}
}

// Render devuelve el PDF de la venta saleID de la tienda activa.
func (uc *ReceiptUseCase) Render(ctx context.Context, scope ports.Scope, shopName, saleID string) ([]byte, error) {
	sale, err := uc.sales.GetSale(ctx, scope, saleID)
	if err != nil {
		return nil, err
	}
	pdf, err := uc.renderer.RenderReceipt(shopName, *sale)
	if err != nil {
		return nil, fmt.Errorf("generar comprobante: %w", err)
	}
	return pdf, nil
}

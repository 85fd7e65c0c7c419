package inventory

import (
	"github.com/jhoicas/MultiTienda-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// DefaultCriticalRatio fracción del umbral efectivo por debajo de la cual el stock es crítico.
var DefaultCriticalRatio = decimal.NewFromFloat(0.5)

// StockPolicy parámetros de clasificación de stock de una tienda.
// LowStockPercent escala el reorderThreshold de cada producto (100 = sin cambio).
type StockPolicy struct {
	LowStockPercent int
	CriticalRatio   decimal.Decimal
}

// DefaultStockPolicy 100% del umbral y ratio crítico 0.5.
func DefaultStockPolicy() StockPolicy {
	return StockPolicy{LowStockPercent: entity.DefaultLowStockThresholdPercent, CriticalRatio: DefaultCriticalRatio}
}

// StockLevel clasificación derivada de un producto.
type StockLevel struct {
	EffectiveThreshold decimal.Decimal
	Low                bool
	Critical           bool
	Deficit            int
}

// Classify es la única definición de stock bajo / crítico / déficit.
//
//	efectivo = reorderThreshold * percent / 100
//	bajo     = stock < efectivo
//	crítico  = bajo && stock < efectivo * ratio
//	déficit  = ceil(efectivo - stock) si es bajo, 0 si no
//
// El límite crítico es estricto: con umbral 10 y ratio 0.5, 5 es bajo pero no crítico, y
// con umbral 8, 4 tampoco lo es (una comparación con <= los marcaría críticos).
func Classify(currentStock, reorderThreshold int, policy StockPolicy) StockLevel {
	percent := policy.LowStockPercent
	if percent <= 0 {
		percent = entity.DefaultLowStockThresholdPercent
	}
	ratio := policy.CriticalRatio
	if !ratio.IsPositive() {
		ratio = DefaultCriticalRatio
	}

	effective := decimal.NewFromInt(int64(reorderThreshold)).
		Mul(decimal.NewFromInt(int64(percent))).
		Div(decimal.NewFromInt(100))
	stock := decimal.NewFromInt(int64(currentStock))

	level := StockLevel{EffectiveThreshold: effective}
	if !stock.LessThan(effective) {
		return level
	}
	level.Low = true
	level.Critical = stock.LessThan(effective.Mul(ratio))
	level.Deficit = int(effective.Sub(stock).Ceil().IntPart())
	return level
}

// ClassifyProduct atajo sobre entity.Product.
func ClassifyProduct(p *entity.Product, policy StockPolicy) StockLevel {
	return Classify(p.CurrentStock, p.ReorderThreshold, policy)
}

// ApplyChange devuelve el stock resultante y false si quedaría negativo.
func ApplyChange(currentStock, change int) (int, bool) {
	next := currentStock + change
	if next < 0 {
		return currentStock, false
	}
	return next, true
}

// ReplayStock reproduce el stock a partir del stock inicial y el ledger del producto.
func ReplayStock(opening int, txs []*entity.InventoryTransaction) int {
	stock := opening
	for _, tx := range txs {
		stock += tx.QuantityChange
	}
	return stock
}

package sales

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/MultiTienda-api/internal/application/dto"
	"github.com/jhoicas/MultiTienda-api/internal/application/inventory"
	"github.com/jhoicas/MultiTienda-api/internal/application/ports"
	"github.com/jhoicas/MultiTienda-api/internal/domain"
	"github.com/jhoicas/MultiTienda-api/internal/domain/entity"
	"github.com/jhoicas/MultiTienda-api/internal/domain/repository"
	"github.com/jhoicas/MultiTienda-api/pkg/logger"
	"github.com/jhoicas/MultiTienda-api/pkg/metrics"
)

var _ ports.SalesStore = (*SalesUseCase)(nil)

// Periodos de GetSalesStats.
const (
	PeriodToday = "today"
	PeriodWeek  = "week"
	PeriodMonth = "month"
)

const (
	defaultTopLimit  = 5
	maxTopLimit      = 100
	defaultTrendDays = 7
	maxTrendDays     = 366
)

// SalesUseCase registra ventas junto con su salida de inventario y calcula agregados.
type SalesUseCase struct {
	txRunner ports.TxRunner
	saleRepo repository.SaleRepository
	observer inventory.LowStockObserver
	metrics  *metrics.StoreMetrics
	log      *logger.Logger
	now      func() time.Time
}

// NewSalesUseCase construye el caso de uso.
func NewSalesUseCase(txRunner ports.TxRunner, saleRepo repository.SaleRepository, m *metrics.StoreMetrics, log *logger.Logger) *SalesUseCase {
	if log == nil {
		log = logger.NewNop()
	}
	return &SalesUseCase{
		txRunner: txRunner,
		saleRepo: saleRepo,
		metrics:  m,
		log:      log.Named("sales"),
		now:      time.Now,
	}
}

// SetObserver registra quién recibe los productos cuyo stock bajó por una venta.
func (uc *SalesUseCase) SetObserver(o inventory.LowStockObserver) {
	uc.observer = o
}

// RecordSale descuenta el stock, agrega la transacción OUT/sale al ledger y guarda la venta,
// todo en la misma transacción. Si algo falla no queda ni venta ni cambio de stock.
func (uc *SalesUseCase) RecordSale(ctx context.Context, scope ports.Scope, req dto.RecordSaleRequest) (*dto.SaleResponse, error) {
	if req.ProductID == "" {
		return nil, domain.Invalid("productId", "es obligatorio")
	}
	if req.Quantity <= 0 {
		return nil, domain.Invalid("quantity", "debe ser mayor que 0")
	}

	saleID := uuid.New().String()
	var (
		sale    *entity.Sale
		product *entity.Product
	)
	err := uc.txRunner.Run(ctx, []string{ports.ProductLockKey(req.ProductID)}, func(tx repository.Tx) error {
		now := uc.now()
		p, _, err := inventory.ApplyAdjustment(ctx, tx, inventory.Adjustment{
			ShopID:      scope.ShopID,
			ProductID:   req.ProductID,
			Change:      -req.Quantity,
			Type:        entity.TransactionTypeOUT,
			Reason:      entity.ReasonSale,
			Notes:       "venta " + saleID,
			PerformedBy: scope.UserID,
			At:          now,
		})
		if err != nil {
			return err
		}
		s := &entity.Sale{
			ID:          saleID,
			ShopID:      p.ShopID,
			ProductID:   p.ID,
			ProductName: p.Name,
			ProductSKU:  p.SKU,
			Quantity:    req.Quantity,
			UnitPrice:   p.UnitPrice,
			TotalAmount: p.UnitPrice.Mul(decimal.NewFromInt(int64(req.Quantity))),
			Timestamp:   now,
			PerformedBy: scope.UserID,
		}
		if err := tx.Sales.Create(ctx, s); err != nil {
			return err
		}
		sale, product = s, p
		return nil
	})
	if err != nil {
		uc.log.Debug().Err(err).Str("product_id", req.ProductID).Int("quantity", req.Quantity).Msg("venta rechazada")
		return nil, err
	}

	uc.metrics.ObserveSale(sale.TotalAmount)
	uc.log.Info().
		Str("shop_id", sale.ShopID).
		Str("sale_id", sale.ID).
		Str("product_id", sale.ProductID).
		Int("quantity", sale.Quantity).
		Str("total", sale.TotalAmount.StringFixed(2)).
		Msg("venta registrada")

	inventory.NotifyObserver(ctx, uc.observer, uc.log, product)
	resp := dto.ToSaleResponse(sale)
	return &resp, nil
}

// GetSale obtiene una venta de la tienda.
func (uc *SalesUseCase) GetSale(ctx context.Context, scope ports.Scope, saleID string) (*dto.SaleResponse, error) {
	s, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if s == nil || s.ShopID != scope.ShopID {
		return nil, domain.ErrNotFound
	}
	resp := dto.ToSaleResponse(s)
	return &resp, nil
}

// ListSales ventas de la tienda filtradas por rango inclusivo y producto, más recientes primero.
func (uc *SalesUseCase) ListSales(ctx context.Context, scope ports.Scope, filter dto.SaleFilter) ([]dto.SaleResponse, error) {
	from, err := ParseBound(filter.StartDate, false)
	if err != nil {
		return nil, domain.Invalid("startDate", "fecha inválida")
	}
	to, err := ParseBound(filter.EndDate, true)
	if err != nil {
		return nil, domain.Invalid("endDate", "fecha inválida")
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, domain.Invalid("startDate", "es posterior a endDate")
	}

	list, err := uc.saleRepo.List(ctx, repository.SaleFilter{
		ShopID:    scope.ShopID,
		ProductID: filter.ProductID,
		From:      from,
		To:        to,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.ToSaleResponse(s))
	}
	return out, nil
}

// GetSalesStats total, ingresos y ticket promedio del periodo (today, week, month).
func (uc *SalesUseCase) GetSalesStats(ctx context.Context, scope ports.Scope, period string) (*dto.SalesStatsResponse, error) {
	if period == "" {
		period = PeriodToday
	}
	now := uc.now()
	from, err := PeriodStart(period, now)
	if err != nil {
		return nil, err
	}
	list, err := uc.saleRepo.List(ctx, repository.SaleFilter{ShopID: scope.ShopID, From: &from, To: &now})
	if err != nil {
		return nil, err
	}

	revenue := decimal.Zero
	for _, s := range list {
		revenue = revenue.Add(s.TotalAmount)
	}
	return &dto.SalesStatsResponse{
		Period:            period,
		TotalSales:        len(list),
		TotalRevenue:      revenue,
		AverageOrderValue: AverageOrderValue(revenue, len(list)),
	}, nil
}

// GetTopSellingProducts productos agregados por ingresos, de mayor a menor. Los empates
// conservan el orden en que el producto vendió por primera vez.
func (uc *SalesUseCase) GetTopSellingProducts(ctx context.Context, scope ports.Scope, limit int) ([]dto.TopProductResponse, error) {
	if limit <= 0 {
		limit = defaultTopLimit
	}
	if limit > maxTopLimit {
		limit = maxTopLimit
	}
	list, err := uc.saleRepo.List(ctx, repository.SaleFilter{ShopID: scope.ShopID})
	if err != nil {
		return nil, err
	}
	return TopProducts(list, limit), nil
}

// GetSalesTrend ingresos diarios de los últimos days días (hoy incluido), el más antiguo primero.
func (uc *SalesUseCase) GetSalesTrend(ctx context.Context, scope ports.Scope, days int) ([]dto.TrendPoint, error) {
	if days <= 0 {
		days = defaultTrendDays
	}
	if days > maxTrendDays {
		return nil, domain.Invalid("days", "máximo 366")
	}
	now := uc.now()
	start := startOfDay(now).AddDate(0, 0, -(days - 1))
	list, err := uc.saleRepo.List(ctx, repository.SaleFilter{ShopID: scope.ShopID, From: &start, To: &now})
	if err != nil {
		return nil, err
	}
	return Trend(list, start, days), nil
}

// AverageOrderValue ingresos / ventas redondeado a 2 decimales; 0 si no hay ventas.
func AverageOrderValue(revenue decimal.Decimal, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return revenue.Div(decimal.NewFromInt(int64(count))).Round(2)
}

// PeriodStart inicio del periodo en la zona horaria de now.
func PeriodStart(period string, now time.Time) (time.Time, error) {
	switch period {
	case PeriodToday:
		return startOfDay(now), nil
	case PeriodWeek:
		return now.Add(-7 * 24 * time.Hour), nil
	case PeriodMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), nil
	default:
		return time.Time{}, domain.Invalid("period", "debe ser today, week o month")
	}
}

// TopProducts agrega ventas por producto. list puede venir en cualquier orden.
func TopProducts(list []*entity.Sale, limit int) []dto.TopProductResponse {
	chronological := make([]*entity.Sale, len(list))
	copy(chronological, list)
	sort.SliceStable(chronological, func(i, j int) bool {
		return chronological[i].Timestamp.Before(chronological[j].Timestamp)
	})

	index := make(map[string]int)
	out := []dto.TopProductResponse{}
	for _, s := range chronological {
		i, ok := index[s.ProductID]
		if !ok {
			i = len(out)
			index[s.ProductID] = i
			out = append(out, dto.TopProductResponse{ProductID: s.ProductID, ProductName: s.ProductName, TotalRevenue: decimal.Zero})
		}
		out[i].TotalQuantity += s.Quantity
		out[i].TotalRevenue = out[i].TotalRevenue.Add(s.TotalAmount)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalRevenue.GreaterThan(out[j].TotalRevenue)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Trend arma days buckets diarios desde start; los días sin ventas quedan en 0.
func Trend(list []*entity.Sale, start time.Time, days int) []dto.TrendPoint {
	points := make([]dto.TrendPoint, days)
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i).Format(time.DateOnly)
		points[i] = dto.TrendPoint{Date: day, Revenue: decimal.Zero}
		index[day] = i
	}
	for _, s := range list {
		day := s.Timestamp.In(start.Location()).Format(time.DateOnly)
		i, ok := index[day]
		if !ok {
			continue
		}
		points[i].SalesCount++
		points[i].Revenue = points[i].Revenue.Add(s.TotalAmount)
	}
	return points
}

// ParseBound interpreta RFC3339 o YYYY-MM-DD. Con endOfDay una fecha sin hora cubre el día completo.
func ParseBound(raw string, endOfDay bool) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return &t, nil
	}
	d, err := time.ParseInLocation(time.DateOnly, raw, time.Local)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		d = d.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return &d, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

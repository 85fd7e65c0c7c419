package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/multierr"

	"github.com/jhoicas/MultiTienda-api/internal/application/dto"
	"github.com/jhoicas/MultiTienda-api/internal/application/ports"
	"github.com/jhoicas/MultiTienda-api/internal/domain"
	"github.com/jhoicas/MultiTienda-api/internal/domain/entity"
	domaininv "github.com/jhoicas/MultiTienda-api/internal/domain/inventory"
	"github.com/jhoicas/MultiTienda-api/internal/domain/repository"
	"github.com/jhoicas/MultiTienda-api/pkg/logger"
	"github.com/jhoicas/MultiTienda-api/pkg/metrics"
)

var _ ports.InventoryStore = (*LedgerUseCase)(nil)

// LedgerUseCase dueño del stock de cada producto y de su ledger append-only.
// Todo cambio de stock pasa por TxRunner con el bloqueo del producto.
type LedgerUseCase struct {
	txRunner    ports.TxRunner
	productRepo repository.ProductRepository
	txRepo      repository.TransactionRepository
	policy      *PolicyResolver
	observer    LowStockObserver
	metrics     *metrics.StoreMetrics
	log         *logger.Logger
	now         func() time.Time
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner ports.TxRunner,
	productRepo repository.ProductRepository,
	txRepo repository.TransactionRepository,
	policy *PolicyResolver,
	m *metrics.StoreMetrics,
	log *logger.Logger,
) *LedgerUseCase {
	if log == nil {
		log = logger.NewNop()
	}
	return &LedgerUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		txRepo:      txRepo,
		policy:      policy,
		metrics:     m,
		log:         log.Named("ledger"),
		now:         time.Now,
	}
}

// SetObserver registra quién recibe los productos modificados (alertas).
func (uc *LedgerUseCase) SetObserver(o LowStockObserver) {
	uc.observer = o
}

// ListInventory productos de la tienda con su clasificación de stock.
func (uc *LedgerUseCase) ListInventory(ctx context.Context, scope ports.Scope) ([]dto.ProductResponse, error) {
	products, err := uc.productRepo.ListByShop(ctx, scope.ShopID)
	if err != nil {
		return nil, err
	}
	policy, err := uc.policy.Resolve(ctx, scope.ShopID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, dto.ToProductResponse(p, domaininv.ClassifyProduct(p, policy)))
	}
	return out, nil
}

// AdjustStock aplica un cambio firmado de stock. Todo o nada: si el stock quedaría
// negativo devuelve ErrInsufficientStock y no cambia ni el producto ni el ledger.
func (uc *LedgerUseCase) AdjustStock(ctx context.Context, scope ports.Scope, req dto.AdjustStockRequest) (*dto.AdjustStockResponse, error) {
	adj, err := NewAdjustment(scope.ShopID, scope.UserID, req, uc.now())
	if err != nil {
		uc.metrics.ObserveAdjustment(err)
		return nil, err
	}
	// política antes del commit: después de confirmar nada puede fallar
	policy, err := uc.policy.Resolve(ctx, scope.ShopID)
	if err != nil {
		return nil, err
	}

	var (
		product *entity.Product
		record  *entity.InventoryTransaction
	)
	err = uc.txRunner.Run(ctx, []string{ports.ProductLockKey(adj.ProductID)}, func(tx repository.Tx) error {
		var txErr error
		adj.At = uc.now()
		product, record, txErr = ApplyAdjustment(ctx, tx, adj)
		return txErr
	})
	uc.metrics.ObserveAdjustment(err)
	if err != nil {
		uc.log.Debug().Err(err).Str("product_id", adj.ProductID).Int("change", adj.Change).Msg("ajuste rechazado")
		return nil, err
	}

	uc.log.Info().
		Str("shop_id", adj.ShopID).
		Str("product_id", product.ID).
		Int("change", adj.Change).
		Int("stock", product.CurrentStock).
		Str("reason", adj.Reason).
		Msg("stock ajustado")

	uc.notify(ctx, product)
	return &dto.AdjustStockResponse{
		Product:     dto.ToProductResponse(product, domaininv.ClassifyProduct(product, policy)),
		Transaction: dto.ToTransactionResponse(record),
	}, nil
}

// BulkAdjustStock aplica un lote de ajustes. Por defecto cada elemento es independiente
// y los fallos no deshacen los anteriores. Con Atomic=true el lote completo corre en
// una sola transacción y cualquier fallo lo revierte (processed=0).
func (uc *LedgerUseCase) BulkAdjustStock(ctx context.Context, scope ports.Scope, req dto.BulkAdjustRequest) (*dto.BulkAdjustResponse, error) {
	if len(req.Adjustments) == 0 {
		return nil, domain.Invalid("adjustments", "debe contener al menos un ajuste")
	}
	if req.Atomic {
		return uc.bulkAtomic(ctx, scope, req.Adjustments)
	}

	resp := &dto.BulkAdjustResponse{Errors: []dto.BulkAdjustError{}}
	var errs error
	for i, item := range req.Adjustments {
		if _, err := uc.AdjustStock(ctx, scope, item); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("ajuste %d (%s): %w", i, item.ProductID, err))
			resp.Errors = append(resp.Errors, bulkError(i, item.ProductID, err))
			continue
		}
		resp.Processed++
	}
	resp.Failed = len(resp.Errors)
	resp.Success = errs == nil
	if errs != nil {
		uc.log.Warn().Err(errs).Int("processed", resp.Processed).Int("failed", resp.Failed).Msg("lote de ajustes con fallos")
	}
	return resp, nil
}

func (uc *LedgerUseCase) bulkAtomic(ctx context.Context, scope ports.Scope, items []dto.AdjustStockRequest) (*dto.BulkAdjustResponse, error) {
	resp := &dto.BulkAdjustResponse{Atomic: true, Errors: []dto.BulkAdjustError{}}
	now := uc.now()

	adjustments := make([]Adjustment, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	keys := make([]string, 0, len(items))
	for i, item := range items {
		adj, err := NewAdjustment(scope.ShopID, scope.UserID, item, now)
		if err != nil {
			resp.Errors = append(resp.Errors, bulkError(i, item.ProductID, err))
			continue
		}
		adjustments = append(adjustments, adj)
		if _, ok := seen[adj.ProductID]; !ok {
			seen[adj.ProductID] = struct{}{}
			keys = append(keys, ports.ProductLockKey(adj.ProductID))
		}
	}
	if len(resp.Errors) > 0 {
		resp.Failed = len(items)
		return resp, nil
	}

	applied := make(map[string]*entity.Product, len(keys))
	err := uc.txRunner.Run(ctx, keys, func(tx repository.Tx) error {
		var errs error
		at := uc.now()
		for i, adj := range adjustments {
			adj.At = at
			product, _, err := ApplyAdjustment(ctx, tx, adj)
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("ajuste %d (%s): %w", i, adj.ProductID, err))
				resp.Errors = append(resp.Errors, bulkError(i, adj.ProductID, err))
				continue
			}
			applied[product.ID] = product
		}
		return errs
	})
	if err != nil {
		if len(resp.Errors) == 0 {
			return nil, err
		}
		uc.log.Warn().Err(err).Int("items", len(items)).Msg("lote atómico revertido")
		resp.Failed = len(items)
		return resp, nil
	}

	resp.Processed = len(adjustments)
	resp.Success = true
	for range adjustments {
		uc.metrics.ObserveAdjustment(nil)
	}
	ids := make([]string, 0, len(applied))
	for id := range applied {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		uc.notify(ctx, applied[id])
	}
	uc.log.Info().Str("shop_id", scope.ShopID).Int("processed", resp.Processed).Msg("lote atómico aplicado")
	return resp, nil
}

// GetTransactionHistory ledger de la tienda, la más reciente primero; productID opcional.
func (uc *LedgerUseCase) GetTransactionHistory(ctx context.Context, scope ports.Scope, productID string) ([]dto.TransactionResponse, error) {
	txs, err := uc.txRepo.ListByShop(ctx, scope.ShopID, productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransactionResponse, 0, len(txs))
	for _, t := range txs {
		out = append(out, dto.ToTransactionResponse(t))
	}
	return out, nil
}

// Reconcile reproduce el ledger del producto desde su stock inicial y lo compara con el actual.
func (uc *LedgerUseCase) Reconcile(ctx context.Context, scope ports.Scope, productID string) (*dto.ReconcileResponse, error) {
	var resp *dto.ReconcileResponse
	err := uc.txRunner.Run(ctx, []string{ports.ProductLockKey(productID)}, func(tx repository.Tx) error {
		product, err := tx.Products.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil || product.ShopID != scope.ShopID {
			return domain.ErrNotFound
		}
		sum, err := tx.Transactions.SumByProduct(ctx, productID)
		if err != nil {
			return err
		}
		resp = &dto.ReconcileResponse{
			ProductID:    product.ID,
			OpeningStock: product.OpeningStock,
			LedgerSum:    sum,
			CurrentStock: product.CurrentStock,
			Consistent:   product.OpeningStock+sum == product.CurrentStock,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !resp.Consistent {
		uc.log.Error().Str("product_id", productID).Int("opening", resp.OpeningStock).
			Int("ledger_sum", resp.LedgerSum).Int("stock", resp.CurrentStock).Msg("ledger inconsistente")
	}
	return resp, nil
}

func (uc *LedgerUseCase) notify(ctx context.Context, p *entity.Product) {
	NotifyObserver(ctx, uc.observer, uc.log, p)
}

// NotifyObserver entrega el producto al observador; sus errores solo se registran.
func NotifyObserver(ctx context.Context, o LowStockObserver, log *logger.Logger, p *entity.Product) {
	if o == nil || p == nil {
		return
	}
	if err := o.StockChanged(ctx, p); err != nil {
		log.Warn().Err(err).Str("product_id", p.ID).Msg("no se pudo despachar alerta de stock")
	}
}

func bulkError(index int, productID string, err error) dto.BulkAdjustError {
	return dto.BulkAdjustError{
		Index:     index,
		ProductID: productID,
		Code:      domain.Code(err),
		Message:   err.Error(),
	}
}

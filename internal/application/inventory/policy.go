package inventory

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/MultiTienda-api/internal/domain/entity"
	domaininv "github.com/jhoicas/MultiTienda-api/internal/domain/inventory"
	"github.com/jhoicas/MultiTienda-api/internal/domain/repository"
)

// PolicyResolver obtiene la política de stock de una tienda: porcentaje desde sus
// preferencias de notificación y ratio crítico desde configuración.
type PolicyResolver struct {
	prefsRepo     repository.PreferencesRepository
	criticalRatio decimal.Decimal
}

// NewPolicyResolver construye el resolver. Un ratio no positivo usa el valor por defecto.
func NewPolicyResolver(prefsRepo repository.PreferencesRepository, criticalRatio decimal.Decimal) *PolicyResolver {
	if !criticalRatio.IsPositive() {
		criticalRatio = domaininv.DefaultCriticalRatio
	}
	return &PolicyResolver{prefsRepo: prefsRepo, criticalRatio: criticalRatio}
}

// Resolve devuelve la política vigente para shopID.
func (r *PolicyResolver) Resolve(ctx context.Context, shopID string) (domaininv.StockPolicy, error) {
	policy := domaininv.StockPolicy{
		LowStockPercent: entity.DefaultLowStockThresholdPercent,
		CriticalRatio:   r.criticalRatio,
	}
	if r.prefsRepo == nil {
		return policy, nil
	}
	prefs, err := r.prefsRepo.Get(ctx, shopID)
	if err != nil {
		return policy, fmt.Errorf("preferencias de tienda: %w", err)
	}
	if prefs != nil && prefs.LowStockThresholdPercent > 0 {
		policy.LowStockPercent = prefs.LowStockThresholdPercent
	}
	return policy, nil
}

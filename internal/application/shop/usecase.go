package shop

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/MultiTienda-api/internal/application/dto"
	"github.com/jhoicas/MultiTienda-api/internal/application/ports"
	"github.com/jhoicas/MultiTienda-api/internal/domain"
	"github.com/jhoicas/MultiTienda-api/internal/domain/entity"
	"github.com/jhoicas/MultiTienda-api/internal/domain/repository"
	"github.com/jhoicas/MultiTienda-api/pkg/logger"
	"github.com/jhoicas/MultiTienda-api/pkg/metrics"
)

var _ ports.ShopStore = (*ShopUseCase)(nil)

// DefaultShopLimit cuota de tiendas por propietario.
const DefaultShopLimit = 5

// ShopUseCase registro de tiendas del propietario: cuota, alta/baja y tienda activa.
type ShopUseCase struct {
	txRunner ports.TxRunner
	shopRepo repository.ShopRepository
	active   repository.ActiveShopStore
	limit    int
	metrics  *metrics.StoreMetrics
	log      *logger.Logger
	now      func() time.Time
}

// NewShopUseCase construye el caso de uso. limit <= 0 usa DefaultShopLimit.
func NewShopUseCase(
	txRunner ports.TxRunner,
	shopRepo repository.ShopRepository,
	active repository.ActiveShopStore,
	limit int,
	m *metrics.StoreMetrics,
	log *logger.Logger,
) *ShopUseCase {
	if limit <= 0 {
		limit = DefaultShopLimit
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &ShopUseCase{
		txRunner: txRunner,
		shopRepo: shopRepo,
		active:   active,
		limit:    limit,
		metrics:  m,
		log:      log.Named("shops"),
		now:      time.Now,
	}
}

// Limit cuota configurada.
func (uc *ShopUseCase) Limit() int { return uc.limit }

// ListShops tiendas del propietario con la selección activa y la cuota restante.
func (uc *ShopUseCase) ListShops(ctx context.Context, scope ports.Scope) (*dto.ShopListResponse, error) {
	shops, err := uc.shopRepo.ListByOwner(ctx, scope.UserID)
	if err != nil {
		return nil, err
	}
	resp := &dto.ShopListResponse{
		Shops:          make([]dto.ShopResponse, 0, len(shops)),
		ShopLimit:      uc.limit,
		CanCreateShop:  len(shops) < uc.limit,
		RemainingShops: max(uc.limit-len(shops), 0),
	}
	for _, s := range shops {
		resp.Shops = append(resp.Shops, dto.ToShopResponse(s))
	}
	if active := uc.restore(ctx, scope.UserID, shops); active != nil {
		resp.ActiveShopID = active.ID
	}
	return resp, nil
}

// CreateShop crea una tienda si el propietario no alcanzó la cuota. La verificación y el
// alta corren bajo el bloqueo del propietario. La primera tienda sin selección previa queda activa.
func (uc *ShopUseCase) CreateShop(ctx context.Context, scope ports.Scope, req dto.CreateShopRequest) (*dto.ShopResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		uc.metrics.ObserveShopOp("create", domain.ErrInvalidInput)
		return nil, domain.Invalid("name", "es obligatorio")
	}

	now := uc.now()
	shop := &entity.Shop{
		ID:        uuid.New().String(),
		Name:      name,
		OwnerID:   scope.UserID,
		Address:   strings.TrimSpace(req.Address),
		Phone:     strings.TrimSpace(req.Phone),
		Email:     strings.TrimSpace(req.Email),
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := uc.txRunner.Run(ctx, []string{ports.OwnerLockKey(scope.UserID)}, func(tx repository.Tx) error {
		count, err := tx.Shops.CountByOwner(ctx, scope.UserID)
		if err != nil {
			return err
		}
		if count >= uc.limit {
			return domain.ErrShopLimitReached
		}
		if err := tx.Shops.Create(ctx, shop); err != nil {
			return err
		}
		return tx.Preferences.Upsert(ctx, entity.DefaultNotificationPreferences(shop.ID))
	})
	uc.metrics.ObserveShopOp("create", err)
	if err != nil {
		return nil, err
	}

	current, err := uc.active.Get(ctx, scope.UserID)
	if err != nil {
		uc.log.Warn().Err(err).Str("owner_id", scope.UserID).Msg("no se pudo leer la tienda activa")
	}
	if current == "" {
		uc.persistActive(ctx, scope.UserID, shop.ID)
	}

	uc.log.Info().Str("owner_id", scope.UserID).Str("shop_id", shop.ID).Msg("tienda creada")
	resp := dto.ToShopResponse(shop)
	return &resp, nil
}

// UpdateShop aplica un cambio parcial. ErrNotFound si no existe o no es del propietario.
func (uc *ShopUseCase) UpdateShop(ctx context.Context, scope ports.Scope, shopID string, req dto.UpdateShopRequest) (*dto.ShopResponse, error) {
	shop, err := uc.owned(ctx, scope.UserID, shopID)
	if err != nil {
		uc.metrics.ObserveShopOp("update", err)
		return nil, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.Invalid("name", "no puede quedar vacío")
		}
		shop.Name = name
	}
	if req.Address != nil {
		shop.Address = strings.TrimSpace(*req.Address)
	}
	if req.Phone != nil {
		shop.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Email != nil {
		shop.Email = strings.TrimSpace(*req.Email)
	}
	if req.NotificationEmail != nil {
		shop.NotificationEmail = strings.TrimSpace(*req.NotificationEmail)
	}
	if req.NotificationPhone != nil {
		shop.NotificationPhone = strings.TrimSpace(*req.NotificationPhone)
	}
	shop.UpdatedAt = uc.now()

	err = uc.shopRepo.Update(ctx, shop)
	uc.metrics.ObserveShopOp("update", err)
	if err != nil {
		return nil, err
	}
	resp := dto.ToShopResponse(shop)
	return &resp, nil
}

// DeleteShop elimina la tienda y sus datos. Nunca deja al propietario sin tiendas ni con la
// selección activa apuntando a una tienda eliminada.
func (uc *ShopUseCase) DeleteShop(ctx context.Context, scope ports.Scope, shopID string) error {
	err := uc.txRunner.Run(ctx, []string{ports.OwnerLockKey(scope.UserID)}, func(tx repository.Tx) error {
		shop, err := tx.Shops.GetByID(ctx, shopID)
		if err != nil {
			return err
		}
		if shop == nil || shop.OwnerID != scope.UserID {
			return domain.ErrNotFound
		}
		count, err := tx.Shops.CountByOwner(ctx, scope.UserID)
		if err != nil {
			return err
		}
		if count <= 1 {
			return domain.ErrCannotDeleteOnlyShop
		}
		return tx.Shops.Delete(ctx, shopID)
	})
	uc.metrics.ObserveShopOp("delete", err)
	if err != nil {
		return err
	}

	current, err := uc.active.Get(ctx, scope.UserID)
	if err != nil {
		uc.log.Warn().Err(err).Str("owner_id", scope.UserID).Msg("no se pudo leer la tienda activa")
	}
	if current == "" || current == shopID {
		shops, err := uc.shopRepo.ListByOwner(ctx, scope.UserID)
		if err != nil {
			return err
		}
		if len(shops) > 0 {
			uc.persistActive(ctx, scope.UserID, shops[0].ID)
		}
	}

	uc.log.Info().Str("owner_id", scope.UserID).Str("shop_id", shopID).Msg("tienda eliminada")
	return nil
}

// SetActiveShop persiste la selección del propietario.
func (uc *ShopUseCase) SetActiveShop(ctx context.Context, scope ports.Scope, shopID string) (*dto.ShopResponse, error) {
	shop, err := uc.owned(ctx, scope.UserID, shopID)
	if err != nil {
		return nil, err
	}
	if err := uc.active.Set(ctx, scope.UserID, shop.ID); err != nil {
		return nil, err
	}
	resp := dto.ToShopResponse(shop)
	return &resp, nil
}

// ResolveShop tienda de contexto para una petición: la solicitada si es del usuario, si no
// la activa persistida, si no la primera (que pasa a quedar activa).
func (uc *ShopUseCase) ResolveShop(ctx context.Context, scope ports.Scope, requestedID string) (*dto.ShopResponse, error) {
	shops, err := uc.shopRepo.ListByOwner(ctx, scope.UserID)
	if err != nil {
		return nil, err
	}
	if len(shops) == 0 {
		return nil, domain.ErrNoActiveShop
	}
	if requestedID != "" {
		for _, s := range shops {
			if s.ID == requestedID {
				resp := dto.ToShopResponse(s)
				return &resp, nil
			}
		}
		uc.log.Debug().Str("owner_id", scope.UserID).Str("shop_id", requestedID).Msg("tienda solicitada ajena, se usa la activa")
	}
	active := uc.restore(ctx, scope.UserID, shops)
	resp := dto.ToShopResponse(active)
	return &resp, nil
}

// restore devuelve la tienda activa persistida si sigue existiendo, si no la primera y la persiste.
func (uc *ShopUseCase) restore(ctx context.Context, ownerID string, shops []*entity.Shop) *entity.Shop {
	if len(shops) == 0 {
		return nil
	}
	current, err := uc.active.Get(ctx, ownerID)
	if err != nil {
		uc.log.Warn().Err(err).Str("owner_id", ownerID).Msg("no se pudo leer la tienda activa")
	}
	for _, s := range shops {
		if s.ID == current {
			return s
		}
	}
	uc.persistActive(ctx, ownerID, shops[0].ID)
	return shops[0]
}

func (uc *ShopUseCase) persistActive(ctx context.Context, ownerID, shopID string) {
	if err := uc.active.Set(ctx, ownerID, shopID); err != nil {
		uc.log.Warn().Err(err).Str("owner_id", ownerID).Str("shop_id", shopID).Msg("no se pudo guardar la tienda activa")
	}
}

func (uc *ShopUseCase) owned(ctx context.Context, ownerID, shopID string) (*entity.Shop, error) {
	shop, err := uc.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if shop == nil || shop.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}
	return shop, nil
}

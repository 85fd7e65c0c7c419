package usecase

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/MultiTienda-api/internal/application/dto"
	"github.com/jhoicas/MultiTienda-api/internal/application/inventory"
	"github.com/jhoicas/MultiTienda-api/internal/application/ports"
	"github.com/jhoicas/MultiTienda-api/internal/domain"
	"github.com/jhoicas/MultiTienda-api/internal/domain/entity"
	domaininv "github.com/jhoicas/MultiTienda-api/internal/domain/inventory"
	"github.com/jhoicas/MultiTienda-api/internal/domain/repository"
)

var _ ports.CatalogStore = (*ProductUseCase)(nil)

// ProductUseCase casos de uso CRUD para productos. El stock solo cambia vía ledger;
// CurrentStock de la creación queda como stock inicial y no genera transacción.
type ProductUseCase struct {
	txRunner ports.TxRunner
	repo     repository.ProductRepository
	policy   *inventory.PolicyResolver
	now      func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(txRunner ports.TxRunner, repo repository.ProductRepository, policy *inventory.PolicyResolver) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, repo: repo, policy: policy, now: time.Now}
}

// ListProducts productos de la tienda filtrados por búsqueda (nombre o SKU, sin distinguir
// mayúsculas ni acentos), categoría y solo stock bajo.
func (uc *ProductUseCase) ListProducts(ctx context.Context, scope ports.Scope, filter dto.ProductFilter) ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListByShop(ctx, scope.ShopID)
	if err != nil {
		return nil, err
	}
	policy, err := uc.policy.Resolve(ctx, scope.ShopID)
	if err != nil {
		return nil, err
	}

	search := foldText(strings.TrimSpace(filter.Search))
	category := strings.TrimSpace(filter.Category)
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		if search != "" && !strings.Contains(foldText(p.Name), search) && !strings.Contains(foldText(p.SKU), search) {
			continue
		}
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		level := domaininv.ClassifyProduct(p, policy)
		if filter.LowStockOnly && !level.Low {
			continue
		}
		out = append(out, dto.ToProductResponse(p, level))
	}
	return out, nil
}

// GetProduct obtiene un producto de la tienda.
func (uc *ProductUseCase) GetProduct(ctx context.Context, scope ports.Scope, productID string) (*dto.ProductResponse, error) {
	product, err := uc.inShop(ctx, scope.ShopID, productID)
	if err != nil {
		return nil, err
	}
	return uc.response(ctx, product)
}

// CreateProduct crea un producto. El SKU es único por tienda.
func (uc *ProductUseCase) CreateProduct(ctx context.Context, scope ports.Scope, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	sku := strings.TrimSpace(in.SKU)
	category := strings.TrimSpace(in.Category)
	switch {
	case name == "":
		return nil, domain.Invalid("name", "es obligatorio")
	case sku == "":
		return nil, domain.Invalid("sku", "es obligatorio")
	case category == "":
		return nil, domain.Invalid("category", "es obligatoria")
	case in.UnitPrice.IsNegative():
		return nil, domain.Invalid("unitPrice", "no puede ser negativo")
	case !hasCents(in.UnitPrice):
		return nil, domain.Invalid("unitPrice", "admite como máximo 2 decimales")
	case in.CurrentStock < 0:
		return nil, domain.Invalid("currentStock", "no puede ser negativo")
	case in.ReorderThreshold < 0:
		return nil, domain.Invalid("reorderThreshold", "no puede ser negativo")
	}

	existing, err := uc.repo.GetByShopAndSKU(ctx, scope.ShopID, sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	policy, err := uc.policy.Resolve(ctx, scope.ShopID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	product := &entity.Product{
		ID:               uuid.New().String(),
		ShopID:           scope.ShopID,
		Name:             name,
		SKU:              sku,
		Category:         category,
		UnitPrice:        in.UnitPrice,
		CurrentStock:     in.CurrentStock,
		OpeningStock:     in.CurrentStock,
		ReorderThreshold: in.ReorderThreshold,
		Location:         strings.TrimSpace(in.Location),
		Description:      in.Description,
		ImageURL:         strings.TrimSpace(in.ImageURL),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	resp := dto.ToProductResponse(product, domaininv.ClassifyProduct(product, policy))
	return &resp, nil
}

// UpdateProduct actualiza campos de catálogo. No toca el stock ni escribe en el ledger.
// Corre con el bloqueo del producto, igual que los ajustes de stock.
func (uc *ProductUseCase) UpdateProduct(ctx context.Context, scope ports.Scope, productID string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := validateUpdate(in); err != nil {
		return nil, err
	}
	policy, err := uc.policy.Resolve(ctx, scope.ShopID)
	if err != nil {
		return nil, err
	}

	var product *entity.Product
	err = uc.txRunner.Run(ctx, []string{ports.ProductLockKey(productID)}, func(tx repository.Tx) error {
		p, err := tx.Products.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if p == nil || p.ShopID != scope.ShopID {
			return domain.ErrNotFound
		}
		if in.SKU != nil {
			sku := strings.TrimSpace(*in.SKU)
			if sku != p.SKU {
				existing, err := tx.Products.GetByShopAndSKU(ctx, scope.ShopID, sku)
				if err != nil {
					return err
				}
				if existing != nil && existing.ID != p.ID {
					return domain.ErrDuplicate
				}
			}
		}
		applyUpdate(p, in)
		p.UpdatedAt = uc.now()
		if err := tx.Products.Update(ctx, p); err != nil {
			return err
		}
		product = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := dto.ToProductResponse(product, domaininv.ClassifyProduct(product, policy))
	return &resp, nil
}

func validateUpdate(in dto.UpdateProductRequest) error {
	switch {
	case in.Name != nil && strings.TrimSpace(*in.Name) == "":
		return domain.Invalid("name", "no puede quedar vacío")
	case in.SKU != nil && strings.TrimSpace(*in.SKU) == "":
		return domain.Invalid("sku", "no puede quedar vacío")
	case in.Category != nil && strings.TrimSpace(*in.Category) == "":
		return domain.Invalid("category", "no puede quedar vacía")
	case in.UnitPrice != nil && in.UnitPrice.LessThan(decimal.Zero):
		return domain.Invalid("unitPrice", "no puede ser negativo")
	case in.UnitPrice != nil && !hasCents(*in.UnitPrice):
		return domain.Invalid("unitPrice", "admite como máximo 2 decimales")
	case in.ReorderThreshold != nil && *in.ReorderThreshold < 0:
		return domain.Invalid("reorderThreshold", "no puede ser negativo")
	}
	return nil
}

func applyUpdate(p *entity.Product, in dto.UpdateProductRequest) {
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.SKU != nil {
		p.SKU = strings.TrimSpace(*in.SKU)
	}
	if in.Category != nil {
		p.Category = strings.TrimSpace(*in.Category)
	}
	if in.UnitPrice != nil {
		p.UnitPrice = *in.UnitPrice
	}
	if in.ReorderThreshold != nil {
		p.ReorderThreshold = *in.ReorderThreshold
	}
	if in.Location != nil {
		p.Location = strings.TrimSpace(*in.Location)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.ImageURL != nil {
		p.ImageURL = strings.TrimSpace(*in.ImageURL)
	}
}

// hasCents el precio se guarda como NUMERIC(14,2); más decimales se redondearían en silencio.
func hasCents(v decimal.Decimal) bool {
	return v.Equal(v.Round(2))
}

// DeleteProduct elimina el producto y su ledger. Las ventas conservan su foto del producto.
func (uc *ProductUseCase) DeleteProduct(ctx context.Context, scope ports.Scope, productID string) error {
	return uc.txRunner.Run(ctx, []string{ports.ProductLockKey(productID)}, func(tx repository.Tx) error {
		product, err := tx.Products.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil || product.ShopID != scope.ShopID {
			return domain.ErrNotFound
		}
		return tx.Products.Delete(ctx, productID)
	})
}

// ListCategories categorías distintas de la tienda, ordenadas.
func (uc *ProductUseCase) ListCategories(ctx context.Context, scope ports.Scope) ([]string, error) {
	cats, err := uc.repo.ListCategories(ctx, scope.ShopID)
	if err != nil {
		return nil, err
	}
	if cats == nil {
		cats = []string{}
	}
	return cats, nil
}

func (uc *ProductUseCase) inShop(ctx context.Context, shopID, productID string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.ShopID != shopID {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

func (uc *ProductUseCase) response(ctx context.Context, p *entity.Product) (*dto.ProductResponse, error) {
	policy, err := uc.policy.Resolve(ctx, p.ShopID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToProductResponse(p, domaininv.ClassifyProduct(p, policy))
	return &resp, nil
}

// foldText minúsculas sin marcas diacríticas ("Café" -> "cafe").
func foldText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}

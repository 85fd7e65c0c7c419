package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/MultiTienda-api/internal/domain"
	"github.com/jhoicas/MultiTienda-api/internal/domain/entity"
	"github.com/jhoicas/MultiTienda-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria.
type ProductRepo struct {
	s *Store
	j *journal
}

// Create persiste un nuevo producto. El SKU es único por tienda.
func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	runlock := r.s.rlock(r.j)
	_, exists := r.s.products[product.ID]
	dup := exists || r.skuTaken(product.ShopID, product.SKU, "")
	runlock()
	if dup {
		return domain.ErrDuplicate
	}
	c := cloneProduct(product)
	r.s.write(r.j, func() { r.s.products[c.ID] = c }, func() { delete(r.s.products, c.ID) })
	return nil
}

// GetByID obtiene un producto; (nil, nil) si no existe.
func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	defer r.s.rlock(r.j)()
	if v, ok := r.s.products[id]; ok {
		return cloneProduct(v), nil
	}
	return nil, nil
}

// GetForUpdate en memoria la exclusión la da el bloqueo por clave del TxRunner.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

// GetByShopAndSKU busca por tienda y SKU.
func (r *ProductRepo) GetByShopAndSKU(_ context.Context, shopID, sku string) (*entity.Product, error) {
	defer r.s.rlock(r.j)()
	for _, v := range r.s.products {
		if v.ShopID == shopID && strings.EqualFold(v.SKU, sku) {
			return cloneProduct(v), nil
		}
	}
	return nil, nil
}

// Update persiste campos de catálogo conservando el stock actual e inicial.
func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	runlock := r.s.rlock(r.j)
	prev, ok := r.s.products[product.ID]
	dup := ok && r.skuTaken(prev.ShopID, product.SKU, product.ID)
	runlock()
	if !ok {
		return domain.ErrNotFound
	}
	if dup {
		return domain.ErrDuplicate
	}
	r.s.write(r.j, func() {
		current, ok := r.s.products[product.ID]
		if !ok {
			return
		}
		c := cloneProduct(product)
		c.ShopID = current.ShopID
		c.CurrentStock = current.CurrentStock
		c.OpeningStock = current.OpeningStock
		c.CreatedAt = current.CreatedAt
		r.s.products[c.ID] = c
	}, func() {
		// solo los campos de catálogo; el stock lo deshace su propio undo
		current, ok := r.s.products[prev.ID]
		if !ok {
			return
		}
		c := cloneProduct(prev)
		c.CurrentStock = current.CurrentStock
		r.s.products[c.ID] = c
	})
	return nil
}

// UpdateStock fija el stock actual. El undo restaura solo stock y fecha de actualización.
func (r *ProductRepo) UpdateStock(_ context.Context, productID string, stock int, updatedAt time.Time) error {
	runlock := r.s.rlock(r.j)
	prev, ok := r.s.products[productID]
	runlock()
	if !ok {
		return domain.ErrNotFound
	}
	prevStock, prevUpdatedAt := prev.CurrentStock, prev.UpdatedAt
	r.s.write(r.j, func() {
		c := cloneProduct(r.s.products[productID])
		c.CurrentStock = stock
		c.UpdatedAt = updatedAt
		r.s.products[productID] = c
	}, func() {
		current, ok := r.s.products[productID]
		if !ok {
			return
		}
		c := cloneProduct(current)
		c.CurrentStock = prevStock
		c.UpdatedAt = prevUpdatedAt
		r.s.products[productID] = c
	})
	return nil
}

// ListByShop productos de la tienda ordenados por nombre.
func (r *ProductRepo) ListByShop(_ context.Context, shopID string) ([]*entity.Product, error) {
	defer r.s.rlock(r.j)()
	out := make([]*entity.Product, 0)
	for _, v := range r.s.products {
		if v.ShopID == shopID {
			out = append(out, cloneProduct(v))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
		if a != b {
			return a < b
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// ListCategories categorías distintas de la tienda, ordenadas.
func (r *ProductRepo) ListCategories(_ context.Context, shopID string) ([]string, error) {
	defer r.s.rlock(r.j)()
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, v := range r.s.products {
		if v.ShopID != shopID || v.Category == "" {
			continue
		}
		if _, ok := seen[v.Category]; ok {
			continue
		}
		seen[v.Category] = struct{}{}
		out = append(out, v.Category)
	}
	sort.Strings(out)
	return out, nil
}

// Delete elimina el producto y su ledger.
func (r *ProductRepo) Delete(_ context.Context, id string) error {
	unlock := r.s.lock(r.j)
	prev, ok := r.s.products[id]
	if !ok {
		unlock()
		return domain.ErrNotFound
	}
	delete(r.s.products, id)
	var removed []*entity.InventoryTransaction
	r.s.transactions, removed = partitionTransactions(r.s.transactions, func(t *entity.InventoryTransaction) bool {
		return t.ProductID == id
	})
	unlock()

	r.j.record(func() {
		r.s.products[id] = prev
		r.s.transactions = restoreTransactions(r.s.transactions, removed)
	})
	return nil
}

// skuTaken requiere r.s.mu tomado.
func (r *ProductRepo) skuTaken(shopID, sku, exceptID string) bool {
	for _, v := range r.s.products {
		if v.ID != exceptID && v.ShopID == shopID && strings.EqualFold(v.SKU, sku) {
			return true
		}
	}
	return false
}

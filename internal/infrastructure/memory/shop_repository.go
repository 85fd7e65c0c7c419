package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/MultiTienda-api/internal/domain"
	"github.com/jhoicas/MultiTienda-api/internal/domain/entity"
	"github.com/jhoicas/MultiTienda-api/internal/domain/repository"
)

var _ repository.ShopRepository = (*ShopRepo)(nil)

// ShopRepo tiendas en memoria.
type ShopRepo struct {
	s *Store
	j *journal
}

// Create persiste una nueva tienda.
func (r *ShopRepo) Create(_ context.Context, shop *entity.Shop) error {
	runlock := r.s.rlock(r.j)
	_, exists := r.s.shops[shop.ID]
	runlock()
	if exists {
		return domain.ErrDuplicate
	}
	c := cloneShop(shop)
	r.s.write(r.j, func() {
		r.s.nextSeq++
		r.s.shops[c.ID] = c
		r.s.shopSeq[c.ID] = r.s.nextSeq
	}, func() {
		delete(r.s.shops, c.ID)
		delete(r.s.shopSeq, c.ID)
	})
	return nil
}

// GetByID obtiene una tienda por ID; (nil, nil) si no existe.
func (r *ShopRepo) GetByID(_ context.Context, id string) (*entity.Shop, error) {
	defer r.s.rlock(r.j)()
	if v, ok := r.s.shops[id]; ok {
		return cloneShop(v), nil
	}
	return nil, nil
}

// Update reemplaza los datos de la tienda.
func (r *ShopRepo) Update(_ context.Context, shop *entity.Shop) error {
	runlock := r.s.rlock(r.j)
	prev, ok := r.s.shops[shop.ID]
	runlock()
	if !ok {
		return domain.ErrNotFound
	}
	c := cloneShop(shop)
	r.s.write(r.j, func() { r.s.shops[c.ID] = c }, func() { r.s.shops[prev.ID] = prev })
	return nil
}

// Delete elimina la tienda y en cascada sus productos, transacciones, ventas y preferencias.
func (r *ShopRepo) Delete(_ context.Context, id string) error {
	unlock := r.s.lock(r.j)
	shop, ok := r.s.shops[id]
	if !ok {
		unlock()
		return domain.ErrNotFound
	}
	seq := r.s.shopSeq[id]
	removedProducts := make([]*entity.Product, 0)
	for pid, p := range r.s.products {
		if p.ShopID == id {
			removedProducts = append(removedProducts, p)
			delete(r.s.products, pid)
		}
	}
	var removedTxs []*entity.InventoryTransaction
	r.s.transactions, removedTxs = partitionTransactions(r.s.transactions, func(t *entity.InventoryTransaction) bool {
		return t.ShopID == id
	})
	var removedSales []*entity.Sale
	r.s.sales, removedSales = partitionSales(r.s.sales, func(s *entity.Sale) bool { return s.ShopID == id })
	prefs := r.s.prefs[id]
	delete(r.s.prefs, id)
	delete(r.s.shops, id)
	delete(r.s.shopSeq, id)
	unlock()

	r.j.record(func() {
		r.s.shops[id] = shop
		r.s.shopSeq[id] = seq
		for _, p := range removedProducts {
			r.s.products[p.ID] = p
		}
		r.s.transactions = restoreTransactions(r.s.transactions, removedTxs)
		r.s.sales = restoreSales(r.s.sales, removedSales)
		if prefs != nil {
			r.s.prefs[id] = prefs
		}
	})
	return nil
}

// ListByOwner tiendas del propietario en orden de creación.
func (r *ShopRepo) ListByOwner(_ context.Context, ownerID string) ([]*entity.Shop, error) {
	defer r.s.rlock(r.j)()
	out := make([]*entity.Shop, 0)
	for _, v := range r.s.shops {
		if v.OwnerID == ownerID {
			out = append(out, cloneShop(v))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return r.s.shopSeq[out[i].ID] < r.s.shopSeq[out[j].ID]
	})
	return out, nil
}

// CountByOwner número de tiendas del propietario.
func (r *ShopRepo) CountByOwner(_ context.Context, ownerID string) (int, error) {
	defer r.s.rlock(r.j)()
	n := 0
	for _, v := range r.s.shops {
		if v.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

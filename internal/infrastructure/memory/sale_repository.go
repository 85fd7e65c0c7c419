package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/MultiTienda-api/internal/domain"
	"github.com/jhoicas/MultiTienda-api/internal/domain/entity"
	"github.com/jhoicas/MultiTienda-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas en memoria.
type SaleRepo struct {
	s *Store
	j *journal
}

// Create antepone la venta al historial.
func (r *SaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	runlock := r.s.rlock(r.j)
	for _, v := range r.s.sales {
		if v.ID == sale.ID {
			runlock()
			return domain.ErrDuplicate
		}
	}
	runlock()
	c := cloneSale(sale)
	r.s.write(r.j, func() {
		r.s.sales = append([]*entity.Sale{c}, r.s.sales...)
	}, func() {
		r.s.sales, _ = partitionSales(r.s.sales, func(v *entity.Sale) bool { return v.ID == c.ID })
	})
	return nil
}

// GetByID obtiene una venta; (nil, nil) si no existe.
func (r *SaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	defer r.s.rlock(r.j)()
	for _, v := range r.s.sales {
		if v.ID == id {
			return cloneSale(v), nil
		}
	}
	return nil, nil
}

// List ventas que cumplen el filtro, ordenadas por fecha descendente.
func (r *SaleRepo) List(_ context.Context, filter repository.SaleFilter) ([]*entity.Sale, error) {
	runlock := r.s.rlock(r.j)
	out := make([]*entity.Sale, 0)
	for _, v := range r.s.sales {
		if filter.Matches(v) {
			out = append(out, cloneSale(v))
		}
	}
	runlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

func partitionSales(list []*entity.Sale, match func(*entity.Sale) bool) (kept, removed []*entity.Sale) {
	kept = make([]*entity.Sale, 0, len(list))
	for _, s := range list {
		if match(s) {
			removed = append(removed, s)
			continue
		}
		kept = append(kept, s)
	}
	return kept, removed
}

func restoreSales(list, removed []*entity.Sale) []*entity.Sale {
	if len(removed) == 0 {
		return list
	}
	out := append(append(make([]*entity.Sale, 0, len(list)+len(removed)), list...), removed...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out
}

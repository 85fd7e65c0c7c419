package memory

import (
	"context"

	"github.com/jhoicas/MultiTienda-api/internal/domain/entity"
	"github.com/jhoicas/MultiTienda-api/internal/domain/repository"
)

var _ repository.PreferencesRepository = (*PreferencesRepo)(nil)

// PreferencesRepo preferencias de notificación en memoria.
type PreferencesRepo struct {
	s *Store
	j *journal
}

// Get devuelve (nil, nil) si la tienda no tiene preferencias.
func (r *PreferencesRepo) Get(_ context.Context, shopID string) (*entity.NotificationPreferences, error) {
	defer r.s.rlock(r.j)()
	if v, ok := r.s.prefs[shopID]; ok {
		return clonePrefs(v), nil
	}
	return nil, nil
}

// Upsert crea o reemplaza las preferencias.
func (r *PreferencesRepo) Upsert(_ context.Context, prefs *entity.NotificationPreferences) error {
	runlock := r.s.rlock(r.j)
	prev := r.s.prefs[prefs.ShopID]
	runlock()
	c := clonePrefs(prefs)
	r.s.write(r.j, func() { r.s.prefs[c.ShopID] = c }, func() {
		if prev == nil {
			delete(r.s.prefs, c.ShopID)
			return
		}
		r.s.prefs[c.ShopID] = prev
	})
	return nil
}

// Package memory implementa los repositorios sobre estructuras en proceso.
// Un Store se construye por proceso (o por test) y se inyecta; no hay estado global.
package memory

import (
	"sync"

	"github.com/jhoicas/MultiTienda-api/internal/domain/entity"
)

// Store estado compartido por todos los repositorios en memoria.
type Store struct {
	mu           sync.RWMutex
	shops        map[string]*entity.Shop
	shopSeq      map[string]uint64
	nextSeq      uint64
	products     map[string]*entity.Product
	transactions []*entity.InventoryTransaction // más reciente primero
	sales        []*entity.Sale                 // más reciente primero
	prefs        map[string]*entity.NotificationPreferences
	users        map[string]*entity.User

	locks *keyedLocker
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		shops:    make(map[string]*entity.Shop),
		shopSeq:  make(map[string]uint64),
		products: make(map[string]*entity.Product),
		prefs:    make(map[string]*entity.NotificationPreferences),
		users:    make(map[string]*entity.User),
		locks:    newKeyedLocker(),
	}
}

// Repos repositorios sin transacción sobre el store.
func (s *Store) Repos() Repos {
	return Repos{
		Shops:        &ShopRepo{s: s},
		Products:     &ProductRepo{s: s},
		Transactions: &TransactionRepo{s: s},
		Sales:        &SaleRepo{s: s},
		Preferences:  &PreferencesRepo{s: s},
		Users:        &UserRepo{s: s},
	}
}

// Repos agrupa los adaptadores de un Store.
type Repos struct {
	Shops        *ShopRepo
	Products     *ProductRepo
	Transactions *TransactionRepo
	Sales        *SaleRepo
	Preferences  *PreferencesRepo
	Users        *UserRepo
}

// lock toma Store.mu en exclusiva. Dentro de una transacción (j != nil) no hace nada:
// TxRunner.Run ya lo tiene tomado hasta confirmar o deshacer.
func (s *Store) lock(j *journal) func() {
	if j != nil {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// rlock igual que lock pero de lectura.
func (s *Store) rlock(j *journal) func() {
	if j != nil {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

func (s *Store) write(j *journal, apply func(), undo func()) {
	unlock := s.lock(j)
	apply()
	unlock()
	j.record(undo)
}

func cloneShop(v *entity.Shop) *entity.Shop {
	c := *v
	return &c
}

func cloneProduct(v *entity.Product) *entity.Product {
	c := *v
	return &c
}

func cloneTransaction(v *entity.InventoryTransaction) *entity.InventoryTransaction {
	c := *v
	return &c
}

func cloneSale(v *entity.Sale) *entity.Sale {
	c := *v
	return &c
}

func clonePrefs(v *entity.NotificationPreferences) *entity.NotificationPreferences {
	c := *v
	return &c
}

func cloneUser(v *entity.User) *entity.User {
	c := *v
	return &c
}

package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/MultiTienda-api/internal/domain/repository"
)

var (
	_ repository.ActiveShopStore      = (*ActiveShopStore)(nil)
	_ repository.TokenRevocationStore = (*TokenRevocationStore)(nil)
)

// ActiveShopStore selección de tienda activa por propietario, en proceso.
type ActiveShopStore struct {
	mu     sync.RWMutex
	active map[string]string
}

// NewActiveShopStore construye el store vacío.
func NewActiveShopStore() *ActiveShopStore {
	return &ActiveShopStore{active: make(map[string]string)}
}

func (a *ActiveShopStore) Get(_ context.Context, ownerID string) (string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.active[ownerID], nil
}

func (a *ActiveShopStore) Set(_ context.Context, ownerID, shopID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.active[ownerID] = shopID
	return nil
}

func (a *ActiveShopStore) Clear(_ context.Context, ownerID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.active, ownerID)
	return nil
}

// TokenRevocationStore tokens revocados hasta su vencimiento, en proceso.
type TokenRevocationStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

// NewTokenRevocationStore construye el store vacío.
func NewTokenRevocationStore() *TokenRevocationStore {
	return &TokenRevocationStore{revoked: make(map[string]time.Time), now: time.Now}
}

func (t *TokenRevocationStore) Revoke(_ context.Context, jti string, until time.Time) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.revoked[jti] = until
	return nil
}

// IsRevoked además purga las entradas vencidas.
func (t *TokenRevocationStore) IsRevoked(_ context.Context, jti string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	for id, until := range t.revoked {
		if now.After(until) {
			delete(t.revoked, id)
		}
	}
	_, ok := t.revoked[jti]
	return ok, nil
}

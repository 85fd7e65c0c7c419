package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/MultiTienda-api/internal/application/ports"
	"github.com/jhoicas/MultiTienda-api/internal/domain/repository"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner transacciones sobre el Store: bloqueos por clave y journal de undo.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run adquiere las claves y después Store.mu en exclusiva hasta terminar: fuera de la
// transacción nadie ve escrituras a medias. Si fn falla o entra en pánico se deshace todo
// antes de soltar el store.
func (r *TxRunner) Run(ctx context.Context, lockKeys []string, fn func(tx repository.Tx) error) (err error) {
	unlock, err := r.s.locks.lockAll(ctx, lockKeys)
	if err != nil {
		return fmt.Errorf("adquirir bloqueo: %w", err)
	}
	defer unlock()

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	j := &journal{}
	defer func() {
		if p := recover(); p != nil {
			j.rollback()
			panic(p)
		}
	}()

	tx := repository.Tx{
		Shops:        &ShopRepo{s: r.s, j: j},
		Products:     &ProductRepo{s: r.s, j: j},
		Transactions: &TransactionRepo{s: r.s, j: j},
		Sales:        &SaleRepo{s: r.s, j: j},
		Preferences:  &PreferencesRepo{s: r.s, j: j},
	}
	if err := fn(tx); err != nil {
		j.rollback()
		return err
	}
	return nil
}

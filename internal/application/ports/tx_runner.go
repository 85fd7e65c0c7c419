package ports

import (
	"context"

	"github.com/jhoicas/MultiTienda-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con los repositorios atados a ella.
// Antes de llamar a fn adquiere en orden los bloqueos de lockKeys, de modo que dos
// operaciones sobre la misma clave se serializan. Si fn devuelve error no queda
// ningún cambio aplicado.
type TxRunner interface {
	Run(ctx context.Context, lockKeys []string, fn func(tx repository.Tx) error) error
}

// ProductLockKey serializa lectura-modificación-escritura del stock de un producto.
func ProductLockKey(productID string) string { return "product:" + productID }

// OwnerLockKey serializa la verificación de cuota y alta/baja de tiendas.
func OwnerLockKey(ownerID string) string { return "owner:" + ownerID }

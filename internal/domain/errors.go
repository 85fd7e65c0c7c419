package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrUserNotFound         = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists   = errors.New("el email ya está registrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
	ErrInsufficientStock    = errors.New("stock insuficiente")
	ErrShopLimitReached     = errors.New("se alcanzó el límite de tiendas")
	ErrCannotDeleteOnlyShop = errors.New("no se puede eliminar la única tienda")
	ErrNoActiveShop         = errors.New("no hay una tienda activa")
	ErrUnavailable          = errors.New("servicio remoto no disponible")
)

// ValidationError describe el campo rechazado. errors.Is(err, ErrInvalidInput) es true.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidInput.Error(), e.Reason)
	}
	return fmt.Sprintf("%s: %s %s", ErrInvalidInput.Error(), e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Invalid construye un ValidationError.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// InsufficientStockError conserva el stock disponible y lo solicitado.
type InsufficientStockError struct {
	ProductID string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: producto %s disponible %d, solicitado %d",
		ErrInsufficientStock.Error(), e.ProductID, e.Available, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// Códigos estables expuestos en el campo "error" de las respuestas.
const (
	CodeNotFound             = "NOT_FOUND"
	CodeInsufficientStock    = "INSUFFICIENT_STOCK"
	CodeShopLimitReached     = "SHOP_LIMIT_REACHED"
	CodeCannotDeleteOnlyShop = "CANNOT_DELETE_ONLY_SHOP"
	CodeValidation           = "VALIDATION"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeForbidden            = "FORBIDDEN"
	CodeDuplicate            = "DUPLICATE"
	CodeEmailExists          = "EMAIL_ALREADY_EXISTS"
	CodeNoActiveShop         = "NO_ACTIVE_SHOP"
	CodeUnavailable          = "SERVICE_UNAVAILABLE"
	CodeInternal             = "INTERNAL"
)

// Code traduce un error a su código estable.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrUserNotFound):
		return CodeNotFound
	case errors.Is(err, ErrInsufficientStock):
		return CodeInsufficientStock
	case errors.Is(err, ErrShopLimitReached):
		return CodeShopLimitReached
	case errors.Is(err, ErrCannotDeleteOnlyShop):
		return CodeCannotDeleteOnlyShop
	case errors.Is(err, ErrInvalidInput):
		return CodeValidation
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case errors.Is(err, ErrEmailAlreadyExists):
		return CodeEmailExists
	case errors.Is(err, ErrDuplicate):
		return CodeDuplicate
	case errors.Is(err, ErrNoActiveShop):
		return CodeNoActiveShop
	case errors.Is(err, ErrUnavailable):
		return CodeUnavailable
	default:
		return CodeInternal
	}
}

// FromCode es el inverso de Code; lo usa el cliente remoto para reconstruir el sentinel.
func FromCode(code string) error {
	switch code {
	case CodeNotFound:
		return ErrNotFound
	case CodeInsufficientStock:
		return ErrInsufficientStock
	case CodeShopLimitReached:
		return ErrShopLimitReached
	case CodeCannotDeleteOnlyShop:
		return ErrCannotDeleteOnlyShop
	case CodeValidation:
		return ErrInvalidInput
	case CodeUnauthorized:
		return ErrUnauthorized
	case CodeForbidden:
		return ErrForbidden
	case CodeEmailExists:
		return ErrEmailAlreadyExists
	case CodeDuplicate:
		return ErrDuplicate
	case CodeNoActiveShop:
		return ErrNoActiveShop
	case CodeUnavailable:
		return ErrUnavailable
	default:
		return nil
	}
}

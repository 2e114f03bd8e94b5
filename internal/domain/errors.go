package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrProductInactive   = errors.New("producto inactivo")
	ErrUpstream          = errors.New("servicio externo no disponible")
)

// IsValidation indica si el error es una falla de validación de negocio
// (entrada inválida, producto inactivo o stock insuficiente).
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrProductInactive) ||
		errors.Is(err, ErrInsufficientStock)
}

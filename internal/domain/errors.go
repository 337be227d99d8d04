package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicateCode     = errors.New("ya existe un producto con ese código")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrPersistence       = errors.New("fallo de persistencia")
	ErrUsernameTaken     = errors.New("el usuario ya existe")
	ErrEmailTaken        = errors.New("el email ya está registrado")
	ErrUnauthorized      = errors.New("no autorizado")
)

var kinds = []error{
	ErrNotFound, ErrInvalidInput, ErrDuplicateCode, ErrInsufficientStock,
	ErrPersistence, ErrUsernameTaken, ErrEmailTaken, ErrUnauthorized,
}

// IsKnown indica si err pertenece a alguno de los errores de dominio.
func IsKnown(err error) bool {
	for _, k := range kinds {
		if errors.Is(err, k) {
			return true
		}
	}
	return false
}

// Persistence clasifica un error de infraestructura como ErrPersistence conservando la causa.
// Los errores de dominio pasan sin cambios.
func Persistence(err error) error {
	if err == nil || IsKnown(err) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrPersistence, err)
}

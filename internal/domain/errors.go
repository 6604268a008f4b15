package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas salvo decimal).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrInvalidTransition  = errors.New("transición de estado inválida")
	ErrOrderRejected      = errors.New("pedido rechazado por validación BOM")
)

// InsufficientStockError detalla el primer componente sin stock suficiente.
// errors.Is(err, ErrInsufficientStock) es verdadero.
type InsufficientStockError struct {
	ComponentID   string
	ComponentName string
	Available     decimal.Decimal
	Required      decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return InsufficientStockMessage(e.ComponentName, e.Available, e.Required)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// InsufficientStockMessage mensaje mostrado al cajero, igual en verificación y descuento.
func InsufficientStockMessage(componentName string, available, required decimal.Decimal) string {
	return fmt.Sprintf("stock insuficiente para el componente '%s'. Disponible: %s, Requerido: %s",
		componentName, available.String(), required.String())
}

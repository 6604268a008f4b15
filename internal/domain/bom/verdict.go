package bom

import (
	"github.com/jhoicas/pos-bom/internal/domain"
	"github.com/shopspring/decimal"
)

// Verdict resultado transitorio de una verificación de stock. Nunca se persiste.
// Si Valid es falso, los campos del componente describen el primer faltante encontrado.
type Verdict struct {
	Valid         bool            `json:"valid"`
	Bypassed      bool            `json:"bypassed,omitempty"` // validación deshabilitada en el punto de venta
	ComponentID   string          `json:"component_id,omitempty"`
	ComponentName string          `json:"component_name,omitempty"`
	Available     decimal.Decimal `json:"available"`
	Required      decimal.Decimal `json:"required"`
	Message       string          `json:"message,omitempty"`
}

// ValidVerdict veredicto positivo.
func ValidVerdict() Verdict {
	return Verdict{Valid: true}
}

// BypassedVerdict veredicto positivo sin consultar stock (interruptor apagado).
func BypassedVerdict() Verdict {
	return Verdict{Valid: true, Bypassed: true}
}

// Rejected veredicto negativo sin componente asociado (producto inexistente, fallo de consulta, etc.).
func Rejected(message string) Verdict {
	return Verdict{Valid: false, Message: message}
}

// Shortfall veredicto negativo para un componente sin stock suficiente.
func Shortfall(c Component, available, required decimal.Decimal) Verdict {
	return Verdict{
		Valid:         false,
		ComponentID:   c.ComponentID,
		ComponentName: c.ComponentName,
		Available:     available,
		Required:      required,
		Message:       domain.InsufficientStockMessage(c.ComponentName, available, required),
	}
}

// Err convierte un veredicto de faltante en *domain.InsufficientStockError (nil si es válido).
func (v Verdict) Err() error {
	if v.Valid {
		return nil
	}
	if v.ComponentID == "" {
		return domain.ErrNotFound
	}
	return &domain.InsufficientStockError{
		ComponentID:   v.ComponentID,
		ComponentName: v.ComponentName,
		Available:     v.Available,
		Required:      v.Required,
	}
}

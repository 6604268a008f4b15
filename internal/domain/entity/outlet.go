package entity

import "time"

// Outlet configuración de un punto de venta (terminal POS).
// BOMValidation nil significa "no configurado" y se interpreta como habilitado.
type Outlet struct {
	ID              string
	CompanyID       string
	Name            string
	StockLocationID string // ubicación origen de las salidas del POS
	BOMValidation   *bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// BOMValidationEnabled devuelve el valor efectivo del interruptor de validación BOM.
func (o *Outlet) BOMValidationEnabled() bool {
	return o.BOMValidationEnabledOr(true)
}

// BOMValidationEnabledOr igual que BOMValidationEnabled pero con un valor por defecto explícito.
func (o *Outlet) BOMValidationEnabledOr(def bool) bool {
	if o == nil || o.BOMValidation == nil {
		return def
	}
	return *o.BOMValidation
}
